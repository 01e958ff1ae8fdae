package client

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"mindtrack-chi/internal/aggregator"
	"mindtrack-chi/internal/fusion"
	httpapi "mindtrack-chi/internal/http"
	"mindtrack-chi/internal/pipeline"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func setupServer(t *testing.T) *CHIClient {
	t.Helper()
	logger := zap.NewNop()

	engine, err := fusion.NewEngine(fusion.DefaultWeights)
	require.NoError(t, err)
	source := aggregator.FromPipeline(pipeline.NewPipeline(engine, logger))
	agg := aggregator.NewAggregator(source, logger,
		aggregator.WithClock(func() time.Time { return time.Date(2024, 3, 10, 8, 0, 0, 0, time.UTC) }),
	)
	router := httpapi.NewRouter(logger)
	router.RegisterCHIRoutes(httpapi.NewCHIHandler(source, agg, engine.Weights(), nil, logger))

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)
	return NewCHIClient(srv.URL+"/", 5*time.Second, logger)
}

func TestCHIClient_State(t *testing.T) {
	c := setupServer(t)

	state, err := c.State(context.Background(), "2024-03-10")
	require.NoError(t, err)

	expected, err := pipeline.StateForDate("2024-03-10")
	require.NoError(t, err)
	assert.Equal(t, expected.CHIScore, state.CHIScore)
	assert.Equal(t, expected.RiskLevel, state.RiskLevel)
}

func TestCHIClient_State_BusinessError(t *testing.T) {
	c := setupServer(t)

	_, err := c.State(context.Background(), "not-a-date")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "code: -1")
}

func TestCHIClient_HTTPError(t *testing.T) {
	c := setupServer(t)

	_, err := c.Daily(context.Background(), "2024-03-10/extra")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "HTTP 404")
}

func TestCHIClient_Summaries(t *testing.T) {
	c := setupServer(t)
	ctx := context.Background()

	daily, err := c.Daily(ctx, "2024-03-10")
	require.NoError(t, err)
	assert.Equal(t, "2024-03-10", daily.Date)

	weekly, err := c.Weekly(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, "2024-03-10", weekly.EndDate)

	monthly, err := c.Monthly(ctx, -2)
	require.NoError(t, err)
	assert.Equal(t, "January", monthly.Month)
	assert.Len(t, monthly.Days, 31)

	weights, err := c.Weights(ctx)
	require.NoError(t, err)
	assert.Equal(t, 100, weights.Total)
}

func TestCHIClient_ExportMonthly(t *testing.T) {
	c := setupServer(t)

	data, err := c.ExportMonthly(context.Background(), 0)
	require.NoError(t, err)
	// xlsx 是 zip 文件
	require.Greater(t, len(data), 4)
	assert.Equal(t, []byte("PK"), data[:2])
}

func TestCHIClient_ExportMonthly_Fail(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"code":-1,"type":"error","message":"boom","result":null}`))
	}))
	t.Cleanup(srv.Close)

	c := NewCHIClient(srv.URL, time.Second, zap.NewNop())
	_, err := c.ExportMonthly(context.Background(), 0)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "boom")
}

func TestCHIClient_Alerts(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chi/api/v1/alerts", r.URL.Path)
		assert.Equal(t, "2024-03-10", r.URL.Query().Get("date"))
		assert.Equal(t, "10", r.URL.Query().Get("limit"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"code":2000,"type":"success","message":"ok","result":{"items":[{"alert_id":"a1","rule_id":"KR2","alert_level":"CRITICAL"}],"total":1}}`))
	}))
	t.Cleanup(srv.Close)

	c := NewCHIClient(srv.URL, time.Second, zap.NewNop())
	alerts, err := c.Alerts(context.Background(), "2024-03-10", 10)
	require.NoError(t, err)
	require.Len(t, alerts, 1)
	assert.Equal(t, "KR2", alerts[0].RuleID)
	assert.Equal(t, "CRITICAL", alerts[0].AlertLevel)
}

func TestCHIClient_Alerts_NotEnabled(t *testing.T) {
	c := setupServer(t)

	_, err := c.Alerts(context.Background(), "", 10)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "alert log is not enabled")
}
