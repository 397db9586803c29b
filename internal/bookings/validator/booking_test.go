package validator

import (
	"fmt"
	"strings"
	"testing"

	"theworks/pkg/logger"
	"theworks/pkg/model"
)

func newTestValidator() *BookingValidator {
	log := logger.New(logger.Config{Level: "error", Format: logger.JSON, Service: "test"})
	return NewBookingValidator(log)
}

const validID = "65a000000000000000000001"

func TestValidateCreate(t *testing.T) {
	v := newTestValidator()

	if err := v.ValidateCreate(&model.BookingCreate{ClassID: validID}); err != nil {
		t.Errorf("valid input rejected: %v", err)
	}

	tests := []struct {
		name    string
		input   *model.BookingCreate
		wantErr string
	}{
		{
			name:    "missing class id",
			input:   &model.BookingCreate{},
			wantErr: "required",
		},
		{
			name:    "malformed class id",
			input:   &model.BookingCreate{ClassID: "zzz"},
			wantErr: "object ID",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.ValidateCreate(tt.input)
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("expected error mentioning %q, got %q", tt.wantErr, err.Error())
			}
		})
	}
}

func TestValidateStatusUpdate(t *testing.T) {
	v := newTestValidator()

	for _, status := range []string{model.StatusPending, model.StatusConfirmed, model.StatusCancelled} {
		if err := v.ValidateStatusUpdate(&model.BookingStatusUpdate{Status: status}); err != nil {
			t.Errorf("valid status %q rejected: %v", status, err)
		}
	}

	if err := v.ValidateStatusUpdate(&model.BookingStatusUpdate{Status: "archived"}); err == nil {
		t.Error("unknown status must be rejected")
	}
	if err := v.ValidateStatusUpdate(&model.BookingStatusUpdate{}); err == nil {
		t.Error("empty status must be rejected")
	}
}

func TestValidateAttach(t *testing.T) {
	v := newTestValidator()

	if err := v.ValidateAttach(&model.AttachAddonsRequest{AddonIDs: []string{validID}}); err != nil {
		t.Errorf("valid input rejected: %v", err)
	}

	tests := []struct {
		name  string
		input *model.AttachAddonsRequest
	}{
		{"empty batch", &model.AttachAddonsRequest{AddonIDs: []string{}}},
		{"nil batch", &model.AttachAddonsRequest{}},
		{"duplicate ids", &model.AttachAddonsRequest{AddonIDs: []string{validID, validID}}},
		{"malformed id", &model.AttachAddonsRequest{AddonIDs: []string{"zzz"}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := v.ValidateAttach(tt.input); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestValidateAttachBatchLimit(t *testing.T) {
	v := newTestValidator()

	ids := make([]string, 21)
	for i := range ids {
		// Distinct, well-formed ObjectIDs.
		ids[i] = fmt.Sprintf("%024x", i+1)
	}

	if err := v.ValidateAttach(&model.AttachAddonsRequest{AddonIDs: ids}); err == nil {
		t.Error("oversized batch must be rejected")
	}
}

func TestValidateDetach(t *testing.T) {
	v := newTestValidator()

	if err := v.ValidateDetach(&model.DetachAddonsRequest{AddonIDs: []string{validID}}); err != nil {
		t.Errorf("valid input rejected: %v", err)
	}
	if err := v.ValidateDetach(&model.DetachAddonsRequest{}); err == nil {
		t.Error("empty batch must be rejected")
	}
}
