package util

import (
	"regexp"
	"strings"
	"unicode"
)

// MaxPromptLength 单次输入文本的长度上限（字符数）
const MaxPromptLength = 10000

var (
	injectionPattern = regexp.MustCompile(`(?i)<\s*script|javascript\s*:|on(load|error|click|focus)\s*=`)
	multiBlankLines  = regexp.MustCompile(`\n{3,}`)
)

// SanitizeText 清理用户输入：去除控制字符、压缩多余空行、裁剪到 maxLen 个字符
func SanitizeText(s string, maxLen int) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r == '\n' || r == '\t' || !unicode.IsControl(r) {
			b.WriteRune(r)
		}
	}
	out := multiBlankLines.ReplaceAllString(b.String(), "\n\n")
	out = strings.TrimSpace(out)

	if maxLen > 0 {
		runes := []rune(out)
		if len(runes) > maxLen {
			out = string(runes[:maxLen])
		}
	}
	return out
}

// ContainsInjection 检测常见的脚本注入片段
func ContainsInjection(s string) bool {
	return injectionPattern.MatchString(s)
}

// IsBlank 判断文本去除空白后是否为空
func IsBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}
