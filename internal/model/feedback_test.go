package model

import "testing"

func TestFeedbackTypeNegative(t *testing.T) {
	tests := []struct {
		ft   FeedbackType
		want bool
	}{
		{FeedbackHelpful, false},
		{FeedbackNotHelpful, true},
		{FeedbackIncorrect, true},
		{FeedbackInappropriate, true},
	}
	for _, tt := range tests {
		if got := tt.ft.Negative(); got != tt.want {
			t.Errorf("%s.Negative() = %v, want %v", tt.ft, got, tt.want)
		}
	}
}

func TestValidFeedbackType(t *testing.T) {
	for _, ft := range []FeedbackType{FeedbackHelpful, FeedbackNotHelpful, FeedbackIncorrect, FeedbackInappropriate} {
		if !ValidFeedbackType(ft) {
			t.Errorf("ValidFeedbackType(%s) = false, want true", ft)
		}
	}
	if ValidFeedbackType("love_it") {
		t.Error("ValidFeedbackType(\"love_it\") = true, want false")
	}
}

func TestValidAnalysisType(t *testing.T) {
	for _, at := range []AnalysisType{AnalysisSentiment, AnalysisKeywords, AnalysisSummary, AnalysisPerformance} {
		if !ValidAnalysisType(at) {
			t.Errorf("ValidAnalysisType(%s) = false, want true", at)
		}
	}
	if ValidAnalysisType("vibes") {
		t.Error("ValidAnalysisType(\"vibes\") = true, want false")
	}
}
