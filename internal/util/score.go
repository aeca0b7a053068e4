package util

import (
	"math"
	"regexp"
	"strconv"
)

// 模型输出中分数的常见写法，按优先级匹配
var scorePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)score\s*[:：]?\s*(\d+(?:\.\d+)?)\s*/\s*10`),
	regexp.MustCompile(`(?i)(\d+(?:\.\d+)?)\s*out\s*of\s*10`),
	regexp.MustCompile(`(?i)score\s*[:：]\s*(\d+(?:\.\d+)?)`),
	regexp.MustCompile(`(?i)rating\s*[:：]\s*(\d+(?:\.\d+)?)`),
}

// ExtractScore 从模型的自由文本中解析分数，并按 [floor, max] 截断保留一位小数。
// 未匹配到任何分数写法时返回 false。
func ExtractScore(text string, floor, max float64) (float64, bool) {
	for _, p := range scorePatterns {
		m := p.FindStringSubmatch(text)
		if len(m) < 2 {
			continue
		}
		v, err := strconv.ParseFloat(m[1], 64)
		if err != nil {
			continue
		}
		return ClampScore(v, floor, max), true
	}
	return 0, false
}

func ClampScore(v, floor, max float64) float64 {
	if v < floor {
		v = floor
	}
	if v > max {
		v = max
	}
	return Round1(v)
}

// Round1 保留一位小数
func Round1(v float64) float64 {
	return math.Round(v*10) / 10
}
