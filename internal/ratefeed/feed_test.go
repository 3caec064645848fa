package ratefeed_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"fuelprice/internal/ratefeed"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleFeed = "Date,Location,Fuel Type,Price\n" +
	"2026-10-19,\"Toronto, ON\",REG 87,1.0000\n" +
	"2026-10-19,\"Toronto, ON\",SUP 91,1.2000\n"

func TestParse(t *testing.T) {
	rows, err := ratefeed.Parse(strings.NewReader(sampleFeed))
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, ratefeed.Row{Line: 2, Date: "2026-10-19", Location: "Toronto, ON", FuelType: "REG 87", Price: "1.0000"}, rows[0])
	assert.Equal(t, "SUP 91", rows[1].FuelType)
	assert.Equal(t, 3, rows[1].Line)
}

func TestParse_ReorderedAndExtraColumns(t *testing.T) {
	feed := "\ufeffPrice , Terminal,Fuel Type,Location,Date\n" +
		"0.9876,North,DSL,Ottawa,2026-10-19\n"

	rows, err := ratefeed.Parse(strings.NewReader(feed))
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "0.9876", rows[0].Price)
	assert.Equal(t, "DSL", rows[0].FuelType)
	assert.Equal(t, "Ottawa", rows[0].Location)
}

func TestParse_SkipsBlankLinesAndKeepsRawValues(t *testing.T) {
	feed := "Date,Location,Fuel Type,Price\n" +
		"\n" +
		",,,\n" +
		"2026-10-19,Nowhere,REG 87,abc\n" +
		"2026-10-19,Toronto,DSL,\n"

	rows, err := ratefeed.Parse(strings.NewReader(feed))
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "abc", rows[0].Price)
	assert.Equal(t, "Toronto", rows[1].Location)
	assert.Equal(t, "", rows[1].Price)
}

func TestParse_RaggedRows(t *testing.T) {
	for name, feed := range map[string]string{
		"too few":  "Date,Location,Fuel Type,Price\n2026-10-19,Toronto,REG 87,1.0\n2026-10-19,Toronto\n",
		"too many": "Date,Location,Fuel Type,Price\n2026-10-19,Toronto,REG 87,1.0,extra\n",
	} {
		t.Run(name, func(t *testing.T) {
			_, err := ratefeed.Parse(strings.NewReader(feed))
			require.Error(t, err)
			assert.True(t, errors.Is(err, ratefeed.ErrFeedMalformed))
			assert.Contains(t, err.Error(), "fields, expected 4")
		})
	}
}

func TestParse_MissingColumn(t *testing.T) {
	_, err := ratefeed.Parse(strings.NewReader("Date,Location,Price\n2026-10-19,Toronto,1\n"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ratefeed.ErrFeedMalformed))
	assert.Contains(t, err.Error(), "Fuel Type")
}

func TestParse_Empty(t *testing.T) {
	_, err := ratefeed.Parse(strings.NewReader(""))
	assert.True(t, errors.Is(err, ratefeed.ErrFeedMalformed))
}

func TestParse_BrokenQuoting(t *testing.T) {
	_, err := ratefeed.Parse(strings.NewReader("Date,Location,Fuel Type,Price\n2026-10-19,\"Toronto,REG 87,1\n"))
	assert.True(t, errors.Is(err, ratefeed.ErrFeedMalformed))
}

func TestClientFetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/csv")
		_, _ = w.Write([]byte(sampleFeed))
	}))
	defer srv.Close()

	rows, err := ratefeed.NewClient(srv.URL, time.Second).Fetch(context.Background())
	require.NoError(t, err)
	assert.Len(t, rows, 2)
}

func TestClientFetch_Errors(t *testing.T) {
	_, err := ratefeed.NewClient("  ", time.Second).Fetch(context.Background())
	assert.True(t, errors.Is(err, ratefeed.ErrFeedURLMissing))

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusBadGateway)
	}))
	defer srv.Close()

	_, err = ratefeed.NewClient(srv.URL, time.Second).Fetch(context.Background())
	assert.True(t, errors.Is(err, ratefeed.ErrFeedUnavailable))
	assert.Contains(t, err.Error(), "502")

	_, err = ratefeed.NewClient("http://127.0.0.1:1/feed.csv", time.Second).Fetch(context.Background())
	assert.True(t, errors.Is(err, ratefeed.ErrFeedUnavailable))
}
