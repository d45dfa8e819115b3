package validate

import (
	"strings"
	"testing"
)

func TestCheck(t *testing.T) {
	type payload struct {
		Email string `validate:"required,email"`
		Price int    `validate:"gte=1"`
	}

	if err := Check(payload{Email: "user@test.com", Price: 10}); err != nil {
		t.Fatalf("valid payload rejected: %v", err)
	}

	err := Check(payload{Email: "not-an-email", Price: 10})
	if err == nil {
		t.Fatal("invalid email accepted")
	}
	if !strings.Contains(err.Error(), "email") {
		t.Fatalf("expected a translated email message, got %q", err)
	}
}

func TestCheckID(t *testing.T) {
	if err := CheckID(GenerateID()); err != nil {
		t.Fatalf("generated ID rejected: %v", err)
	}
	if err := CheckID("42"); err == nil {
		t.Fatal("non-uuid accepted")
	}
}
