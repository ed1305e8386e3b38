// File: handlers/recurrence_test.go
package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"voluntree/services/schedule"
	"voluntree/utils"
)

func TestRespondScheduleErrorStatusMapping(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cases := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"validation", schedule.NewValidationError("name", "is required"), http.StatusBadRequest},
		{"not found", &schedule.NotFoundError{Resource: "recurrence", ID: "rec-1"}, http.StatusNotFound},
		{"storage", &schedule.StorageError{Op: "recurrence fetch", Err: errors.New("connection reset")}, http.StatusInternalServerError},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			respondScheduleError(c, tc.err, "Failed to fetch recurrence")
			if w.Code != tc.wantStatus {
				t.Fatalf("status = %d, want %d", w.Code, tc.wantStatus)
			}
		})
	}
}

// Unclassified errors render the shared ErrorResponse envelope.
func TestRespondScheduleErrorInternalShape(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	respondScheduleError(c, errors.New("connection reset"), "Failed to remap slots")

	var resp utils.ErrorResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Message != "Failed to remap slots" {
		t.Errorf("message = %q, want %q", resp.Message, "Failed to remap slots")
	}
	if resp.Details != "connection reset" {
		t.Errorf("details = %q, want %q", resp.Details, "connection reset")
	}
}
