package view

import (
	"encoding/json"
	"testing"
	"time"

	"theworks/pkg/model"
)

func asKeys(t *testing.T, v any) map[string]any {
	t.Helper()
	data, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("failed to marshal view: %v", err)
	}
	keys := map[string]any{}
	if err := json.Unmarshal(data, &keys); err != nil {
		t.Fatalf("failed to unmarshal view: %v", err)
	}
	return keys
}

func TestTrainerPublicViewHidesContactDetails(t *testing.T) {
	trainer := &model.Trainer{
		ID:    "t1",
		Name:  "Maya",
		Phone: "555-1234",
		Email: "maya@example.com",
	}

	for _, role := range []model.Role{model.RoleUser, model.RoleTrainer} {
		keys := asKeys(t, Trainer(trainer, role))
		if _, ok := keys["phone"]; ok {
			t.Errorf("role %s: public trainer view must not contain key phone", role)
		}
		if _, ok := keys["email"]; ok {
			t.Errorf("role %s: public trainer view must not contain key email", role)
		}
		if keys["name"] != "Maya" {
			t.Errorf("role %s: expected name in public view", role)
		}
	}
}

func TestTrainerAdminViewIncludesContactDetails(t *testing.T) {
	trainer := &model.Trainer{
		ID:    "t1",
		Name:  "Maya",
		Phone: "555-1234",
		Email: "maya@example.com",
	}

	keys := asKeys(t, Trainer(trainer, model.RoleAdmin))
	if keys["phone"] != "555-1234" {
		t.Errorf("expected phone in admin view, got %v", keys["phone"])
	}
	if keys["email"] != "maya@example.com" {
		t.Errorf("expected email in admin view, got %v", keys["email"])
	}
}

func TestEnquiryReceiptHidesSubmission(t *testing.T) {
	enquiry := &model.Enquiry{
		ID:        "e1",
		Name:      "Sam",
		Email:     "sam@example.com",
		Phone:     "+15551234567",
		Message:   "interested in classes",
		CreatedAt: time.Now(),
	}

	keys := asKeys(t, Enquiry(enquiry, model.RoleUser))
	for _, forbidden := range []string{"name", "email", "phone", "message"} {
		if _, ok := keys[forbidden]; ok {
			t.Errorf("receipt view must not contain key %s", forbidden)
		}
	}
	if keys["id"] != "e1" {
		t.Error("receipt view should reference the created enquiry")
	}

	adminKeys := asKeys(t, Enquiry(enquiry, model.RoleAdmin))
	if adminKeys["email"] != "sam@example.com" {
		t.Error("admin view should contain the submitted email")
	}
}

func TestBookingViewNormalizesEmptyAddonSet(t *testing.T) {
	b := &model.Booking{ID: "b1", UserID: "u1", ClassID: "c1", Status: model.StatusPending}

	data, err := json.Marshal(Booking(b, nil))
	if err != nil {
		t.Fatalf("failed to marshal view: %v", err)
	}
	var keys map[string]any
	if err := json.Unmarshal(data, &keys); err != nil {
		t.Fatalf("failed to unmarshal view: %v", err)
	}
	if _, ok := keys["addon_ids"].([]any); !ok {
		t.Errorf("addon_ids should serialize as an empty array, got %v", keys["addon_ids"])
	}
}
