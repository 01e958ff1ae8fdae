package synthesizer

import (
	"math"
	"strings"
	"time"
)

const dateLayout = "2006-01-02"

// Draw 以 (日期, 种子) 为键的确定性伪随机数，范围 [0,1)
// 日期去掉 '-' 后按十进制解析前导数字，无法解析时视为 0
func Draw(date string, seed Seed) float64 {
	h := math.Sin(float64(dateNumber(date))*float64(seed)) * 10000
	return h - math.Floor(h)
}

func dateNumber(date string) int64 {
	digits := strings.ReplaceAll(date, "-", "")
	var n int64
	for _, c := range digits {
		if c < '0' || c > '9' {
			break
		}
		n = n*10 + int64(c-'0')
	}
	return n
}

// At 返回日期当天 UTC 的 hh:mm 时刻；日期非法时返回零值
func At(date string, hour, minute int) time.Time {
	day, err := time.Parse(dateLayout, date)
	if err != nil {
		return time.Time{}
	}
	return day.Add(time.Duration(hour)*time.Hour + time.Duration(minute)*time.Minute)
}
