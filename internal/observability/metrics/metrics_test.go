package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestHelpersAreSafeBeforeInit(t *testing.T) {
	assert.NotPanics(t, func() {
		if emailsTotal == nil {
			IncEmail("sent")
			ObserveHTTP("", "GET", "200", time.Millisecond)
		}
	})
}

func TestCounters(t *testing.T) {
	Init()
	Init()

	before := testutil.ToFloat64(emailsTotal.WithLabelValues("error"))
	IncEmail("error")
	assert.Equal(t, before+1, testutil.ToFloat64(emailsTotal.WithLabelValues("error")))

	beforeErr := testutil.ToFloat64(dailyJobTotal.WithLabelValues(resultError))
	ObserveDailyJob(errors.New("boom"), time.Second)
	assert.Equal(t, beforeErr+1, testutil.ToFloat64(dailyJobTotal.WithLabelValues(resultError)))

	beforeRows := testutil.ToFloat64(ingestRowsTotal.WithLabelValues("inserted"))
	AddIngestRows("inserted", 3)
	AddIngestRows("inserted", 0)
	assert.Equal(t, beforeRows+3, testutil.ToFloat64(ingestRowsTotal.WithLabelValues("inserted")))

	beforeExport := testutil.ToFloat64(exportTotal.WithLabelValues("xlsx", resultSuccess))
	IncExport("xlsx", nil)
	assert.Equal(t, beforeExport+1, testutil.ToFloat64(exportTotal.WithLabelValues("xlsx", resultSuccess)))
}
