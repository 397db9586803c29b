package errors

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"testing"
)

func TestAppErrorStatusCodes(t *testing.T) {
	tests := []struct {
		name       string
		err        *AppError
		wantCode   string
		wantStatus int
	}{
		{"not found", NotFound("Booking"), CodeNotFound, http.StatusNotFound},
		{"validation", Validation("bad input", nil), CodeValidation, http.StatusBadRequest},
		{"invalid input", InvalidInput("bad id"), CodeInvalidInput, http.StatusBadRequest},
		{"unauthorized", Unauthorized("authentication required"), CodeUnauthorized, http.StatusUnauthorized},
		{"forbidden", Forbidden("insufficient role"), CodeForbidden, http.StatusForbidden},
		{"conflict", Conflict("already attached"), CodeConflict, http.StatusConflict},
		{"internal", Internal("storage failed", errors.New("boom")), CodeInternal, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.err.Code != tt.wantCode {
				t.Errorf("expected code %s, got %s", tt.wantCode, tt.err.Code)
			}
			if tt.err.StatusCode() != tt.wantStatus {
				t.Errorf("expected status %d, got %d", tt.wantStatus, tt.err.StatusCode())
			}
		})
	}
}

func TestUnauthorizedAndForbiddenStayDistinguishable(t *testing.T) {
	unauth := Unauthorized("authentication required")
	forbidden := Forbidden("admin role required")

	if unauth.Code == forbidden.Code {
		t.Fatal("unauthorized and forbidden must carry distinct codes")
	}
	if unauth.StatusCode() == forbidden.StatusCode() {
		t.Fatal("unauthorized and forbidden must carry distinct statuses")
	}
}

func TestInternalCauseNeverSerialized(t *testing.T) {
	cause := fmt.Errorf("pq: connection refused host=db-internal")
	err := Internal("Failed to create booking", cause)

	payload := err.ToJSON()
	if strings.Contains(string(payload), "db-internal") {
		t.Errorf("internal cause leaked into client payload: %s", payload)
	}

	var resp ErrorResponse
	if jsonErr := json.Unmarshal(payload, &resp); jsonErr != nil {
		t.Fatalf("payload is not valid JSON: %v", jsonErr)
	}
	if resp.Code != CodeInternal {
		t.Errorf("expected code %s, got %s", CodeInternal, resp.Code)
	}

	// The cause stays reachable for server-side logging.
	if !errors.Is(err, cause) {
		t.Error("wrapped cause should unwrap for logging")
	}
}

func TestNotFoundWithIDDetails(t *testing.T) {
	err := NotFoundWithID("Enquiry", "abc123")
	if err.Details["id"] != "abc123" {
		t.Errorf("expected id detail abc123, got %v", err.Details["id"])
	}
	if err.Details["resource"] != "Enquiry" {
		t.Errorf("expected resource detail Enquiry, got %v", err.Details["resource"])
	}
}

func TestAsAppErrorWrapsUnknownErrors(t *testing.T) {
	plain := errors.New("driver timeout")
	appErr := AsAppError(plain)

	if appErr.Code != CodeInternal {
		t.Errorf("expected %s, got %s", CodeInternal, appErr.Code)
	}
	if strings.Contains(appErr.Message, "driver timeout") {
		t.Error("unknown error detail must not become the client message")
	}

	same := Conflict("duplicate")
	if AsAppError(same) != same {
		t.Error("AsAppError should pass AppError values through unchanged")
	}
}
