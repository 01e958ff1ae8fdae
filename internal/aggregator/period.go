package aggregator

import (
	"sort"
	"time"

	"mindtrack-chi/internal/calc"
	"mindtrack-chi/internal/fusion"
	"mindtrack-chi/internal/models"
	"mindtrack-chi/internal/pipeline"
)

// 环比死区（百分比）
const comparisonDeadBand = 2.0

// TopContributorLimit 周视图中保留的规则数
const TopContributorLimit = 3

// DateRange 从 start 起连续 days 天
func DateRange(start time.Time, days int) []string {
	dates := make([]string, 0, days)
	for i := 0; i < days; i++ {
		dates = append(dates, start.AddDate(0, 0, i).Format(pipeline.DateLayout))
	}
	return dates
}

// AverageCHI 区间 CHI 均值（四舍五入）
func AverageCHI(states []*models.SystemState) int {
	if len(states) == 0 {
		return 0
	}
	total := 0
	for _, s := range states {
		total += s.CHIScore
	}
	return calc.Round(float64(total) / float64(len(states)))
}

// ComputeStats CHI、睡眠、HRV、生理压力的均值
func ComputeStats(states []*models.SystemState) models.PeriodStats {
	if len(states) == 0 {
		return models.PeriodStats{}
	}
	var sleep float64
	var hrv, stress int
	for _, s := range states {
		sleep += s.SensorSnapshot.Sleep.Hours
		hrv += s.SensorSnapshot.Biometrics.HRV
		stress += s.SensorSnapshot.Biometrics.StressLevel
	}
	n := float64(len(states))
	return models.PeriodStats{
		AvgCHI:    AverageCHI(states),
		AvgSleep:  calc.Round1(sleep / n),
		AvgHRV:    calc.Round(float64(hrv) / n),
		AvgStress: calc.Round(float64(stress) / n),
	}
}

// CountRisk 风险等级计数
func CountRisk(states []*models.SystemState) models.RiskCounts {
	var counts models.RiskCounts
	for _, s := range states {
		switch s.RiskLevel {
		case models.RiskLow:
			counts.Low++
		case models.RiskModerate:
			counts.Moderate++
		case models.RiskHigh:
			counts.High++
		}
	}
	return counts
}

// LongestLowStreak 最长连续 Low 风险天数
func LongestLowStreak(states []*models.SystemState) int {
	longest, current := 0, 0
	for _, s := range states {
		if s.RiskLevel != models.RiskLow {
			current = 0
			continue
		}
		current++
		longest = max(longest, current)
	}
	return longest
}

// Compare 与上一区间对比：百分比变化，±2% 以内视为持平
func Compare(current, previous int) models.Comparison {
	var pct float64
	switch {
	case previous != 0:
		pct = calc.Round1(float64(current-previous) / float64(previous) * 100)
	case current != 0:
		pct = 100
	}

	direction := models.DirectionStable
	switch {
	case pct > comparisonDeadBand:
		direction = models.DirectionUp
	case pct < -comparisonDeadBand:
		direction = models.DirectionDown
	}

	return models.Comparison{
		PreviousAvgCHI: previous,
		Percentage:     pct,
		Direction:      direction,
	}
}

// TopContributors 触发次数最多的规则，次数降序，同次数按首次出现顺序
func TopContributors(states []*models.SystemState, limit int) []models.RuleContributor {
	var ranked []models.RuleContributor
	index := make(map[string]int)
	for _, s := range states {
		for _, exec := range s.FiredRules {
			if !exec.Fired {
				continue
			}
			if i, ok := index[exec.RuleName]; ok {
				ranked[i].Count++
				continue
			}
			index[exec.RuleName] = len(ranked)
			ranked = append(ranked, models.RuleContributor{RuleName: exec.RuleName, Count: 1})
		}
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Count > ranked[j].Count
	})

	if len(ranked) > limit {
		ranked = ranked[:limit]
	}
	if ranked == nil {
		ranked = []models.RuleContributor{}
	}
	return ranked
}

// DailyPoints 趋势图数据
func DailyPoints(states []*models.SystemState) []models.DailyPoint {
	points := make([]models.DailyPoint, 0, len(states))
	for _, s := range states {
		points = append(points, models.DailyPoint{
			Date:      s.Date,
			Day:       s.Date[8:10],
			CHIScore:  s.CHIScore,
			RiskLevel: s.RiskLevel,
		})
	}
	return points
}

// SampleTrend 每 3 天取一个点，并保证包含最后一天
func SampleTrend(points []models.DailyPoint) []models.DailyPoint {
	sampled := make([]models.DailyPoint, 0, len(points)/3+2)
	for i, p := range points {
		if i%3 == 0 || i == len(points)-1 {
			sampled = append(sampled, p)
		}
	}
	return sampled
}

// RiskDistribution 非空的风险分布，顺序 Low / Moderate / High
func RiskDistribution(counts models.RiskCounts) []models.RiskSlice {
	slices := make([]models.RiskSlice, 0, 3)
	for _, item := range []struct {
		level models.RiskLevel
		count int
	}{
		{models.RiskLow, counts.Low},
		{models.RiskModerate, counts.Moderate},
		{models.RiskHigh, counts.High},
	} {
		if item.count == 0 {
			continue
		}
		slices = append(slices, models.RiskSlice{
			Level: item.level,
			Count: item.count,
			Hex:   fusion.RiskDescriptor(item.level).Hex,
		})
	}
	return slices
}
