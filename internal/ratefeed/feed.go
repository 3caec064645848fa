// Package ratefeed downloads and parses the daily rack price CSV.
//
// The feed has a header row naming at least the Date, Location, Fuel Type
// and Price columns. Column order is free and unknown columns are ignored.
// Every non-blank row must have as many fields as the header. Values are
// returned as raw strings; resolving names and parsing prices is left to the
// caller so that each bad row can be reported on its own.
package ratefeed

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

var (
	ErrFeedURLMissing  = errors.New("rack prices URL not configured")
	ErrFeedUnavailable = errors.New("failed to fetch rack prices")
	ErrFeedMalformed   = errors.New("failed to parse rack prices CSV")
)

const (
	ColumnDate     = "Date"
	ColumnLocation = "Location"
	ColumnFuelType = "Fuel Type"
	ColumnPrice    = "Price"
)

var requiredColumns = []string{ColumnDate, ColumnLocation, ColumnFuelType, ColumnPrice}

// Row is one data line of the feed.
type Row struct {
	Line     int
	Date     string
	Location string
	FuelType string
	Price    string
}

// Client fetches the feed over HTTP.
type Client struct {
	url        string
	httpClient *http.Client
}

func NewClient(url string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		url:        strings.TrimSpace(url),
		httpClient: &http.Client{Timeout: timeout},
	}
}

// Fetch downloads and parses the feed.
func (c *Client) Fetch(ctx context.Context) ([]Row, error) {
	if c.url == "" {
		return nil, ErrFeedURLMissing
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFeedUnavailable, err)
	}
	req.Header.Set("Accept", "text/csv, text/plain, */*")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFeedUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: %s", ErrFeedUnavailable, resp.Status)
	}

	return Parse(resp.Body)
}

// Parse reads a feed from r. Blank lines are skipped.
func Parse(r io.Reader) ([]Row, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("%w: empty feed", ErrFeedMalformed)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFeedMalformed, err)
	}

	index := make(map[string]int, len(header))
	for i, name := range header {
		name = strings.TrimSpace(name)
		if i == 0 {
			name = strings.TrimPrefix(name, "\ufeff")
		}
		if _, seen := index[name]; !seen {
			index[name] = i
		}
	}
	for _, col := range requiredColumns {
		if _, ok := index[col]; !ok {
			return nil, fmt.Errorf("%w: missing column %q", ErrFeedMalformed, col)
		}
	}

	field := func(record []string, col string) string {
		i := index[col]
		if i >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[i])
	}

	rows := make([]Row, 0)
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrFeedMalformed, err)
		}
		if isBlank(record) {
			continue
		}

		line, _ := reader.FieldPos(0)
		if len(record) != len(header) {
			return nil, fmt.Errorf("%w: line %d has %d fields, expected %d", ErrFeedMalformed, line, len(record), len(header))
		}
		rows = append(rows, Row{
			Line:     line,
			Date:     field(record, ColumnDate),
			Location: field(record, ColumnLocation),
			FuelType: field(record, ColumnFuelType),
			Price:    field(record, ColumnPrice),
		})
	}

	return rows, nil
}

func isBlank(record []string) bool {
	for _, v := range record {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
