package util

import (
	"bytes"
	"strings"
	"testing"
)

// mp4 文件头：size(24) + "ftyp" + major brand "mp42"
var mp4Header = []byte{
	0x00, 0x00, 0x00, 0x18, 'f', 't', 'y', 'p',
	'm', 'p', '4', '2', 0x00, 0x00, 0x00, 0x00,
	'm', 'p', '4', '2', 'i', 's', 'o', 'm',
}

var wavHeader = []byte{
	'R', 'I', 'F', 'F', 0x24, 0x08, 0x00, 0x00,
	'W', 'A', 'V', 'E', 'f', 'm', 't', ' ',
}

func TestValidateMimeTypeAcceptsVideoAndAudio(t *testing.T) {
	allowed := []string{MimeVideo, MimeAudio}

	got, err := ValidateMimeType(bytes.NewReader(mp4Header), allowed)
	if err != nil {
		t.Fatalf("ValidateMimeType(mp4) error = %v", err)
	}
	if got != "video/mp4" {
		t.Errorf("ValidateMimeType(mp4) = %q, want %q", got, "video/mp4")
	}

	got, err = ValidateMimeType(bytes.NewReader(wavHeader), allowed)
	if err != nil {
		t.Fatalf("ValidateMimeType(wav) error = %v", err)
	}
	if !strings.HasPrefix(got, "audio/") {
		t.Errorf("ValidateMimeType(wav) = %q, want audio/* type", got)
	}
}

func TestValidateMimeTypeRejectsOtherContent(t *testing.T) {
	got, err := ValidateMimeType(strings.NewReader("just a plain text answer"), []string{MimeVideo, MimeAudio})
	if err == nil {
		t.Fatal("ValidateMimeType(text) error = nil, want rejection")
	}
	// 拒绝时仍返回探测到的类型，便于上层记录
	if !strings.HasPrefix(got, "text/plain") {
		t.Errorf("ValidateMimeType(text) detected = %q, want text/plain", got)
	}
}

func TestValidateMimeTypeExactMatch(t *testing.T) {
	if _, err := ValidateMimeType(strings.NewReader("plain"), []string{"text/plain; charset=utf-8"}); err != nil {
		t.Errorf("ValidateMimeType exact match error = %v", err)
	}
}

func TestIsAllowedRecordingExt(t *testing.T) {
	tests := []struct {
		filename string
		want     bool
	}{
		{"answer.mp4", true},
		{"ANSWER.MP4", true},
		{"take2.webm", true},
		{"voice.m4a", true},
		{"voice.wav", true},
		{"notes.txt", false},
		{"archive.zip", false},
		{"noextension", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := IsAllowedRecordingExt(tt.filename); got != tt.want {
			t.Errorf("IsAllowedRecordingExt(%q) = %v, want %v", tt.filename, got, tt.want)
		}
	}
}
