package auth

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	apperrors "theworks/pkg/errors"
	"theworks/pkg/logger"
	"theworks/pkg/model"

	"github.com/julienschmidt/httprouter"
)

type mockVerifier struct {
	identity model.Identity
	err      error
}

func (m *mockVerifier) Verify(raw string) (model.Identity, error) {
	if m.err != nil {
		return model.Identity{}, m.err
	}
	return m.identity, nil
}

func testLogger() *logger.Logger {
	return logger.New(logger.Config{Level: "error", Format: logger.JSON, Service: "test"})
}

func decodeErrorCode(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var resp apperrors.ErrorResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode error response: %v", err)
	}
	return resp.Code
}

func TestGuardRejectsInvalidCredential(t *testing.T) {
	guard := NewGuard(&mockVerifier{err: errors.New("bad signature")}, testLogger())

	handlerCalled := false
	protected := guard.Protect(Authenticated(), func(w http.ResponseWriter, r *http.Request, ps httprouter.Params, id model.Identity) {
		handlerCalled = true
	})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/bookings", nil)
	req.Header.Set("Authorization", "Bearer whatever")
	w := httptest.NewRecorder()

	protected(w, req, nil)

	if handlerCalled {
		t.Error("handler must not run after failed verification")
	}
	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", w.Code)
	}
	body := w.Body.String()
	if code := decodeErrorCode(t, w); code != apperrors.CodeUnauthorized {
		t.Errorf("expected %s, got %s", apperrors.CodeUnauthorized, code)
	}
	if body == "" || w.Code != http.StatusUnauthorized {
		t.Error("client must receive a generic unauthorized payload")
	}
}

func TestGuardRejectsInsufficientRole(t *testing.T) {
	guard := NewGuard(&mockVerifier{identity: model.Identity{Subject: "user-1", Role: model.RoleUser}}, testLogger())

	handlerCalled := false
	protected := guard.Protect(RequireRole(model.RoleAdmin), func(w http.ResponseWriter, r *http.Request, ps httprouter.Params, id model.Identity) {
		handlerCalled = true
	})

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/enquiries/id/abc", nil)
	req.Header.Set("Authorization", "Bearer token")
	w := httptest.NewRecorder()

	protected(w, req, nil)

	if handlerCalled {
		t.Error("handler must not run for insufficient role")
	}
	if w.Code != http.StatusForbidden {
		t.Errorf("expected 403, got %d", w.Code)
	}
	if code := decodeErrorCode(t, w); code != apperrors.CodeForbidden {
		t.Errorf("expected %s, got %s", apperrors.CodeForbidden, code)
	}
}

func TestGuardPassesIdentityExplicitly(t *testing.T) {
	want := model.Identity{Subject: "admin-7", Role: model.RoleAdmin}
	guard := NewGuard(&mockVerifier{identity: want}, testLogger())

	var got model.Identity
	protected := guard.Protect(RequireRole(model.RoleAdmin), func(w http.ResponseWriter, r *http.Request, ps httprouter.Params, id model.Identity) {
		got = id
		w.WriteHeader(http.StatusNoContent)
	})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/bookings", nil)
	req.Header.Set("Authorization", "Bearer token")
	w := httptest.NewRecorder()

	protected(w, req, nil)

	if got != want {
		t.Errorf("expected identity %+v, got %+v", want, got)
	}
	if w.Code != http.StatusNoContent {
		t.Errorf("expected 204, got %d", w.Code)
	}
}

func TestGuardPublicPolicyAdmitsAnonymous(t *testing.T) {
	guard := NewGuard(&mockVerifier{err: errors.New("token contains an invalid number of segments")}, testLogger())

	var got model.Identity
	handlerCalled := false
	protected := guard.Protect(Public(), func(w http.ResponseWriter, r *http.Request, ps httprouter.Params, id model.Identity) {
		handlerCalled = true
		got = id
		w.WriteHeader(http.StatusCreated)
	})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/enquiries", nil)
	w := httptest.NewRecorder()

	protected(w, req, nil)

	if !handlerCalled {
		t.Fatal("public route must run without a credential")
	}
	if got != (model.Identity{}) {
		t.Errorf("anonymous caller must get a zero identity, got %+v", got)
	}
}

func TestGuardPublicPolicyRejectsInvalidCredential(t *testing.T) {
	guard := NewGuard(&mockVerifier{err: errors.New("signature mismatch")}, testLogger())

	handlerCalled := false
	protected := guard.Protect(Public(), func(w http.ResponseWriter, r *http.Request, ps httprouter.Params, id model.Identity) {
		handlerCalled = true
	})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/classes", nil)
	req.Header.Set("Authorization", "Bearer tampered")
	w := httptest.NewRecorder()

	protected(w, req, nil)

	if handlerCalled {
		t.Error("a presented credential that fails verification must not be downgraded to anonymous")
	}
	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", w.Code)
	}
	if code := decodeErrorCode(t, w); code != apperrors.CodeUnauthorized {
		t.Errorf("expected %s, got %s", apperrors.CodeUnauthorized, code)
	}
}

func TestGuardPublicPolicyKeepsVerifiedIdentity(t *testing.T) {
	want := model.Identity{Subject: "admin-7", Role: model.RoleAdmin}
	guard := NewGuard(&mockVerifier{identity: want}, testLogger())

	var got model.Identity
	protected := guard.Protect(Public(), func(w http.ResponseWriter, r *http.Request, ps httprouter.Params, id model.Identity) {
		got = id
	})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/enquiries", nil)
	req.Header.Set("Authorization", "Bearer token")
	w := httptest.NewRecorder()

	protected(w, req, nil)

	if got != want {
		t.Errorf("a valid credential on a public route must still yield its identity, got %+v", got)
	}
}

func TestPolicyExactRoleMatch(t *testing.T) {
	tests := []struct {
		name     string
		policy   Policy
		identity model.Identity
		wantErr  bool
	}{
		{"admin passes admin gate", RequireRole(model.RoleAdmin), model.Identity{Subject: "a", Role: model.RoleAdmin}, false},
		{"trainer fails admin gate", RequireRole(model.RoleAdmin), model.Identity{Subject: "t", Role: model.RoleTrainer}, true},
		{"admin fails trainer gate, no hierarchy", RequireRole(model.RoleTrainer), model.Identity{Subject: "a", Role: model.RoleAdmin}, true},
		{"any role passes authenticated", Authenticated(), model.Identity{Subject: "u", Role: model.RoleUser}, false},
		{"any role passes owner-or-admin gate", OwnerOrAdmin(), model.Identity{Subject: "u", Role: model.RoleUser}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.policy.Authorize(tt.identity)
			if tt.wantErr && err == nil {
				t.Error("expected policy to deny")
			}
			if !tt.wantErr && err != nil {
				t.Errorf("expected policy to allow, got %v", err)
			}
		})
	}
}
