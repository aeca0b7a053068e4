package util

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"mock_interview_backend/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	logger.Log = zap.NewNop()
	os.Exit(m.Run())
}

func respond(t *testing.T, err error) (*httptest.ResponseRecorder, Response) {
	t.Helper()
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	RespondError(c, err)

	var body Response
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal response body: %v", err)
	}
	return w, body
}

func TestRespondErrorStatusMapping(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"invalid configuration", ErrInvalidConfiguration, http.StatusBadRequest},
		{"comment required", ErrCommentRequired, http.StatusBadRequest},
		{"prompt rejected", ErrPromptRejected, http.StatusBadRequest},
		{"session not found", ErrSessionNotFound, http.StatusNotFound},
		{"conversation not found", ErrConversationNotFound, http.StatusNotFound},
		{"analysis not found", ErrAnalysisNotFound, http.StatusNotFound},
		{"recording not found", ErrRecordingNotFound, http.StatusNotFound},
		{"report not ready", ErrReportNotReady, http.StatusNotFound},
		{"session expired", ErrSessionExpired, http.StatusGone},
		{"unsupported media", ErrUnsupportedMedia, http.StatusUnsupportedMediaType},
		{"recording too large", ErrRecordingTooLarge, http.StatusRequestEntityTooLarge},
		{"stale turn", ErrStaleTurn, http.StatusConflict},
		{"invalid transition", ErrInvalidTransition, http.StatusConflict},
		{"session busy", ErrSessionBusy, http.StatusTooManyRequests},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, body := respond(t, tt.err)
			if w.Code != tt.want {
				t.Errorf("status = %d, want %d", w.Code, tt.want)
			}
			if body.Code != tt.want {
				t.Errorf("body code = %d, want %d", body.Code, tt.want)
			}
			if body.Message != tt.err.Error() {
				t.Errorf("message = %q, want %q", body.Message, tt.err.Error())
			}
		})
	}
}

func TestRespondErrorUnwrapsWrappedErrors(t *testing.T) {
	w, body := respond(t, fmt.Errorf("%w: expected turn 3, got 1", ErrStaleTurn))
	if w.Code != http.StatusConflict {
		t.Errorf("status = %d, want %d", w.Code, http.StatusConflict)
	}
	if body.Message == "" {
		t.Error("message is empty, want wrapped error text")
	}
}

func TestRespondErrorUnknownErrorIsInternal(t *testing.T) {
	w, body := respond(t, fmt.Errorf("driver: bad connection"))
	if w.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want %d", w.Code, http.StatusInternalServerError)
	}
	// 未识别错误不向客户端透出细节
	if body.Message != "Internal server error" {
		t.Errorf("message = %q, want generic internal error", body.Message)
	}
}

func TestSuccessEnvelope(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	Success(c, map[string]string{"id": "abc"})

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	var body Response
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if body.Code != http.StatusOK || body.Message != "success" {
		t.Errorf("envelope = %+v, want code 200 message success", body)
	}
	if body.Data == nil {
		t.Error("data is nil, want payload")
	}
}

func TestCreatedEnvelope(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	Created(c, "x")

	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201", w.Code)
	}
	var body Response
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if body.Code != http.StatusCreated || body.Message != "created" {
		t.Errorf("envelope = %+v, want code 201 message created", body)
	}
}
