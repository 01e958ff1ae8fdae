package main

import (
	"bytes"
	"context"
	"fmt"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"mindtrack-chi/internal/aggregator"
	"mindtrack-chi/internal/fusion"
	httpapi "mindtrack-chi/internal/http"
	"mindtrack-chi/internal/models"
	"mindtrack-chi/internal/pipeline"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeAlertLister struct {
	alerts []*models.RuleAlert
	date   string
	limit  int
}

func (f *fakeAlertLister) ListRuleAlerts(ctx context.Context, date string, limit int) ([]*models.RuleAlert, error) {
	f.date, f.limit = date, limit
	return f.alerts, nil
}

func setupServer(t *testing.T) string {
	t.Helper()
	return setupServerWithAlerts(t, nil)
}

func setupServerWithAlerts(t *testing.T, alerts httpapi.AlertLister) string {
	t.Helper()
	logger := zap.NewNop()

	engine, err := fusion.NewEngine(fusion.DefaultWeights)
	require.NoError(t, err)
	source := aggregator.FromPipeline(pipeline.NewPipeline(engine, logger))
	agg := aggregator.NewAggregator(source, logger,
		aggregator.WithClock(func() time.Time { return time.Date(2024, 3, 10, 8, 0, 0, 0, time.UTC) }),
	)
	router := httpapi.NewRouter(logger)
	router.RegisterCHIRoutes(httpapi.NewCHIHandler(source, agg, engine.Weights(), alerts, logger))

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)
	return srv.URL
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestStateCommand(t *testing.T) {
	url := setupServer(t)

	out, err := run(t, "--server", url, "state", "2024-03-10")
	require.NoError(t, err)
	assert.Contains(t, out, "date: 2024-03-10")
	assert.Contains(t, out, "sleep")
}

func TestStateCommand_RequiresDate(t *testing.T) {
	_, err := run(t, "state")
	assert.Error(t, err)
}

func TestDailyCommand(t *testing.T) {
	url := setupServer(t)

	state, err := pipeline.StateForDate("2024-03-09")
	require.NoError(t, err)

	out, err := run(t, "--server", url, "daily", "2024-03-09")
	require.NoError(t, err)
	assert.Contains(t, out, "date: 2024-03-09\n")
	assert.Contains(t, out, fmt.Sprintf("chi: %d (", state.CHIScore))
	assert.Contains(t, out, "rules: ")
	assert.Contains(t, out, "recommendation: ")
}

func TestDailyCommand_InvalidDate(t *testing.T) {
	url := setupServer(t)

	_, err := run(t, "--server", url, "daily", "2024-02-30")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "CHI API error")
}

func TestAlertsCommand(t *testing.T) {
	lister := &fakeAlertLister{alerts: []*models.RuleAlert{
		{AlertID: "a1", Date: "2024-03-10", RuleID: "KR2", RuleName: "Sleep & Mood Crisis", AlertLevel: models.AlertLevelCritical, CHIScore: 42},
		{AlertID: "a2", Date: "2024-03-10", RuleID: "KR3", RuleName: "Cognitive Fatigue Detection", AlertLevel: models.AlertLevelWarning, CHIScore: 42},
	}}
	url := setupServerWithAlerts(t, lister)

	out, err := run(t, "--server", url, "alerts", "--date", "2024-03-10", "--limit", "5")
	require.NoError(t, err)
	assert.Equal(t, "2024-03-10", lister.date)
	assert.Equal(t, 5, lister.limit)
	assert.Contains(t, out, "2024-03-10\tKR2\tCRITICAL\tSleep & Mood Crisis\tchi=42\n")
	assert.Contains(t, out, "2024-03-10\tKR3\tWARNING \tCognitive Fatigue Detection\tchi=42\n")

	out, err = run(t, "--server", url, "--json", "alerts")
	require.NoError(t, err)
	assert.Contains(t, out, `"rule_id": "KR3"`)
	assert.Equal(t, 50, lister.limit)
	assert.Equal(t, "", lister.date)
}

func TestAlertsCommand_Empty(t *testing.T) {
	url := setupServerWithAlerts(t, &fakeAlertLister{})

	out, err := run(t, "--server", url, "alerts")
	require.NoError(t, err)
	assert.Equal(t, "no alerts\n", out)
}

func TestAlertsCommand_NotEnabled(t *testing.T) {
	url := setupServer(t)

	_, err := run(t, "--server", url, "alerts")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "alert log is not enabled")
}

func TestWeeklyCommand_JSON(t *testing.T) {
	url := setupServer(t)

	out, err := run(t, "--server", url, "--json", "weekly", "--end", "2024-03-10")
	require.NoError(t, err)
	assert.Contains(t, out, `"start_date": "2024-03-04"`)
}

func TestMonthlyCommand(t *testing.T) {
	url := setupServer(t)

	out, err := run(t, "--server", url, "monthly", "--offset", "-1")
	require.NoError(t, err)
	assert.Contains(t, out, "month: February 2024")
}

func TestExportCommand(t *testing.T) {
	url := setupServer(t)
	path := filepath.Join(t.TempDir(), "march.xlsx")

	out, err := run(t, "--server", url, "export", "--out", path)
	require.NoError(t, err)
	assert.Contains(t, out, "wrote "+path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, []byte("PK"), data[:2])
}

func TestExportCommand_RequiresOut(t *testing.T) {
	_, err := run(t, "export")
	assert.EqualError(t, err, "--out is required")
}

func TestWeightsCommand(t *testing.T) {
	url := setupServer(t)

	out, err := run(t, "--server", url, "weights")
	require.NoError(t, err)
	assert.Equal(t, "sleep=35,biometric=25,facial=20,voice=15,behavioral=5 (total 100)\n", out)
}
