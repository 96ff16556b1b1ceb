package validation

import (
	"errors"
	"testing"

	"github.com/RubachokBoss/worker-portal/internal/models"
)

func TestRunShortCircuits(t *testing.T) {
	calls := 0
	counting := func() *FieldError {
		calls++
		return nil
	}

	err := Run(
		counting,
		Required("email", "", "Email is required"),
		counting,
	)

	var fe *FieldError
	if !errors.As(err, &fe) {
		t.Fatalf("expected *FieldError, got %v", err)
	}
	if fe.Field != "email" || fe.Message != "Email is required" {
		t.Errorf("unexpected failure: %+v", fe)
	}
	if calls != 1 {
		t.Errorf("checks after the failure ran: calls = %d", calls)
	}
}

func TestRunAllPass(t *testing.T) {
	err := Run(
		Required("name", "Ada", "Full name is required"),
		Email("email", "ada@example.com", "Invalid email format"),
		MinLength("password", "secret", 6, "too short"),
		PositiveID("worker_id", "12", "Invalid worker ID"),
		NotBlank("text", "  done  ", "empty"),
		Present("work_id", true, "missing"),
		AllRequired("incomplete", map[string]string{"a": "1", "b": "2"}),
	)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
}

func TestChecks(t *testing.T) {
	tests := []struct {
		name  string
		check Check
		fail  bool
	}{
		{"email valid", Email("email", "worker@example.com", "bad"), false},
		{"email invalid", Email("email", "not-an-email", "bad"), true},
		{"email empty", Email("email", "", "bad"), true},
		{"min ok", MinLength("password", "123456", 6, "short"), false},
		{"min short", MinLength("password", "12345", 6, "short"), true},
		{"id zero", PositiveID("id", "0", "bad id"), true},
		{"id negative", PositiveID("id", "-4", "bad id"), true},
		{"id text", PositiveID("id", "abc", "bad id"), true},
		{"id fraction", PositiveID("id", "2.5", "bad id"), true},
		{"id ok", PositiveID("id", models.FlexID("31"), "bad id"), false},
		{"blank spaces", NotBlank("text", " \n\t ", "empty"), true},
		{"required spaces", Required("phone", "  ", "req"), false},
		{"absent", Present("worker_id", false, "missing"), true},
		{"all required missing", AllRequired("incomplete", map[string]string{"a": "x", "b": ""}), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fe := tt.check()
			if (fe != nil) != tt.fail {
				t.Errorf("fail = %v, want %v (%v)", fe != nil, tt.fail, fe)
			}
		})
	}
}
