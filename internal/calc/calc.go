// Package calc 放置评分、合成和聚合共用的取整/截断函数
package calc

import "math"

// Round 四舍五入（.5 向上），负数同样向 +∞ 方向
func Round(x float64) int {
	return int(math.Floor(x + 0.5))
}

// Round1 保留一位小数
func Round1(x float64) float64 {
	return math.Floor(x*10+0.5) / 10
}

// Clamp 截断到 [lo, hi]
func Clamp(x, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, x))
}

// ClampInt 截断到 [lo, hi]
func ClampInt(x, lo, hi int) int {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}
