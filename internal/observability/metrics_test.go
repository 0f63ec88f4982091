package observability

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type widget struct {
	ID   uint
	Name string
}

func sampleCount(t *testing.T, operation, table string) uint64 {
	t.Helper()
	m, ok := DatabaseQueryLatency.WithLabelValues(operation, table).(prometheus.Metric)
	require.True(t, ok)
	var out dto.Metric
	require.NoError(t, m.Write(&out))
	return out.GetHistogram().GetSampleCount()
}

func TestRegisterQueryMetrics_ObservesStatements(t *testing.T) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, RegisterQueryMetrics(db))
	require.NoError(t, db.AutoMigrate(&widget{}))

	inserts := sampleCount(t, "insert", "widgets")
	selects := sampleCount(t, "select", "widgets")

	require.NoError(t, db.Create(&widget{Name: "a"}).Error)
	var got []widget
	require.NoError(t, db.Find(&got).Error)

	assert.Len(t, got, 1)
	assert.Equal(t, inserts+1, sampleCount(t, "insert", "widgets"))
	assert.Equal(t, selects+1, sampleCount(t, "select", "widgets"))
}

func TestStartSpan_NoopTracer(t *testing.T) {
	ctx, finish := StartSpan(t.Context(), "store", "query")
	assert.NotNil(t, ctx)
	finish(assert.AnError)
}
