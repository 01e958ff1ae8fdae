package aggregator

import (
	"context"
	"fmt"
	"time"

	"mindtrack-chi/internal/evaluator"
	"mindtrack-chi/internal/fusion"
	"mindtrack-chi/internal/models"
	"mindtrack-chi/internal/pipeline"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Aggregator 日/周/月视图；每个日期独立计算，可并行
type Aggregator struct {
	source      StateSource
	concurrency int
	now         func() time.Time
	logger      *zap.Logger
}

// Option 聚合器选项
type Option func(*Aggregator)

// WithConcurrency 单次聚合最多同时计算的日期数
func WithConcurrency(n int) Option {
	return func(a *Aggregator) {
		if n > 0 {
			a.concurrency = n
		}
	}
}

// WithClock 注入时钟，仅用于确定“今天”和“本月”
func WithClock(now func() time.Time) Option {
	return func(a *Aggregator) {
		if now != nil {
			a.now = now
		}
	}
}

// NewAggregator 创建聚合器
func NewAggregator(source StateSource, logger *zap.Logger, opts ...Option) *Aggregator {
	a := &Aggregator{
		source:      source,
		concurrency: 8,
		now:         time.Now,
		logger:      logger,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Today 当前 UTC 日期
func (a *Aggregator) Today() string {
	return a.now().UTC().Format(pipeline.DateLayout)
}

// collect 并行计算多个日期，结果按输入顺序返回
func (a *Aggregator) collect(ctx context.Context, dates []string) ([]*models.SystemState, error) {
	states := make([]*models.SystemState, len(dates))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(a.concurrency)
	for i, date := range dates {
		i, date := i, date
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			state, err := a.source.StateForDate(gctx, date)
			if err != nil {
				return fmt.Errorf("failed to compute state for %s: %w", date, err)
			}
			states[i] = state
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return states, nil
}

// Daily 日视图
func (a *Aggregator) Daily(ctx context.Context, date string) (*models.DailySummary, error) {
	if date == "" {
		date = a.Today()
	}
	state, err := a.source.StateForDate(ctx, date)
	if err != nil {
		return nil, err
	}

	return &models.DailySummary{
		Date:           date,
		State:          state,
		Recommendation: fusion.RecommendationFor(state.CHIResult),
		Risk:           fusion.RiskDescriptor(state.RiskLevel),
		FiredRules:     evaluator.FiredRules(state.FiredRules),
		RuleSummary:    evaluator.RuleSummary(state.FiredRules),
		Timeline:       Timeline(state),
	}, nil
}

// Weekly 以 endDate 结尾的 7 天；endDate 为空时取今天
func (a *Aggregator) Weekly(ctx context.Context, endDate string) (*models.WeeklySummary, error) {
	if endDate == "" {
		endDate = a.Today()
	}
	end, err := pipeline.ParseDate(endDate)
	if err != nil {
		return nil, err
	}
	start := end.AddDate(0, 0, -6)

	// 前 7 天（对比窗口）与本周一起计算
	dates := DateRange(start.AddDate(0, 0, -7), 14)
	all, err := a.collect(ctx, dates)
	if err != nil {
		return nil, err
	}
	previous, current := all[:7], all[7:]

	counts := CountRisk(current)
	stats := ComputeStats(current)
	summary := &models.WeeklySummary{
		StartDate:        start.Format(pipeline.DateLayout),
		EndDate:          endDate,
		Days:             DailyPoints(current),
		Stats:            stats,
		RiskCounts:       counts,
		HighRiskDays:     counts.High,
		LongestLowStreak: LongestLowStreak(current),
		TopContributors:  TopContributors(current, TopContributorLimit),
		Comparison:       Compare(stats.AvgCHI, AverageCHI(previous)),
	}

	a.logger.Info("Weekly summary computed",
		zap.String("start_date", summary.StartDate),
		zap.String("end_date", summary.EndDate),
		zap.Int("avg_chi", stats.AvgCHI),
		zap.String("direction", string(summary.Comparison.Direction)),
	)
	return summary, nil
}

// Monthly 相对本月偏移 monthOffset 个月的自然月（0 = 本月，-1 = 上月）
func (a *Aggregator) Monthly(ctx context.Context, monthOffset int) (*models.MonthlySummary, error) {
	now := a.now().UTC()
	first := time.Date(now.Year(), now.Month()+time.Month(monthOffset), 1, 0, 0, 0, 0, time.UTC)
	days := first.AddDate(0, 1, -1).Day()
	prevFirst := first.AddDate(0, -1, 0)
	prevDays := first.AddDate(0, 0, -1).Day()

	dates := append(DateRange(prevFirst, prevDays), DateRange(first, days)...)
	all, err := a.collect(ctx, dates)
	if err != nil {
		return nil, err
	}
	previous, current := all[:prevDays], all[prevDays:]

	points := DailyPoints(current)
	counts := CountRisk(current)
	stats := ComputeStats(current)
	summary := &models.MonthlySummary{
		Month:            first.Month().String(),
		Year:             first.Year(),
		StartDate:        current[0].Date,
		EndDate:          current[len(current)-1].Date,
		Days:             points,
		CHITrend:         SampleTrend(points),
		Stats:            stats,
		RiskCounts:       counts,
		RiskDistribution: RiskDistribution(counts),
		HighRiskDays:     counts.High,
		LongestLowStreak: LongestLowStreak(current),
		Comparison:       Compare(stats.AvgCHI, AverageCHI(previous)),
	}

	a.logger.Info("Monthly summary computed",
		zap.String("month", summary.Month),
		zap.Int("year", summary.Year),
		zap.Int("avg_chi", stats.AvgCHI),
		zap.Int("longest_low_streak", summary.LongestLowStreak),
	)
	return summary, nil
}
