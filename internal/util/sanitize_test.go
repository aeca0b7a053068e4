package util

import "testing"

func TestSanitizeTextStripsControlCharacters(t *testing.T) {
	got := SanitizeText("hello\x00wor\x07ld", 0)
	if got != "helloworld" {
		t.Errorf("SanitizeText = %q, want %q", got, "helloworld")
	}
}

func TestSanitizeTextKeepsNewlinesAndTabs(t *testing.T) {
	got := SanitizeText("line one\n\tline two", 0)
	if got != "line one\n\tline two" {
		t.Errorf("SanitizeText = %q, want newline and tab preserved", got)
	}
}

func TestSanitizeTextCollapsesBlankLines(t *testing.T) {
	got := SanitizeText("para one\n\n\n\n\npara two", 0)
	if got != "para one\n\npara two" {
		t.Errorf("SanitizeText = %q, want at most one blank line", got)
	}
}

func TestSanitizeTextTrimsAndTruncates(t *testing.T) {
	got := SanitizeText("   héllo wörld   ", 5)
	if got != "héllo" {
		t.Errorf("SanitizeText = %q, want %q", got, "héllo")
	}

	// maxLen 以字符计，多字节字符不能被截断一半
	got = SanitizeText("面试问题回答", 3)
	if got != "面试问" {
		t.Errorf("SanitizeText = %q, want %q", got, "面试问")
	}

	if got := SanitizeText("short", 100); got != "short" {
		t.Errorf("SanitizeText = %q, want unchanged", got)
	}
}

func TestContainsInjection(t *testing.T) {
	tests := []struct {
		text string
		want bool
	}{
		{"<script>alert(1)</script>", true},
		{"< SCRIPT src=x>", true},
		{"javascript:void(0)", true},
		{"javascript :alert(1)", true},
		{"onload=stealCookies()", true},
		{"onerror = run()", true},
		{"I have used JavaScript professionally for years", false},
		{"the onloading dock", false},
		{"plain interview answer about goroutines", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := ContainsInjection(tt.text); got != tt.want {
			t.Errorf("ContainsInjection(%q) = %v, want %v", tt.text, got, tt.want)
		}
	}
}

func TestIsBlank(t *testing.T) {
	for _, s := range []string{"", "   ", "\n\t  \n"} {
		if !IsBlank(s) {
			t.Errorf("IsBlank(%q) = false, want true", s)
		}
	}
	for _, s := range []string{" answer ", "a", "。"} {
		if IsBlank(s) {
			t.Errorf("IsBlank(%q) = true, want false", s)
		}
	}
}
