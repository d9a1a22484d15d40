package validation

import (
	"errors"
	"testing"

	"github.com/go-playground/validator/v10"
)

type sampleInput struct {
	Email    string `json:"email" validate:"required,email"`
	Amount   int    `json:"amount" validate:"gt=0"`
	Gateway  string `json:"active_gateway" validate:"oneof=duitku tripay"`
	Internal string `json:"-" validate:"max=3"`
}

func TestFromBindError(t *testing.T) {
	v := validator.New()

	err := v.Struct(sampleInput{Email: "not-an-email", Amount: 0, Gateway: "stripe", Internal: "toolong"})
	if err == nil {
		t.Fatal("expected validation error")
	}

	fields := FromBindError(err, &sampleInput{})

	if fields["email"] != "Enter a valid email address." {
		t.Errorf("email: got %q", fields["email"])
	}
	if fields["amount"] != "Must be greater than 0." {
		t.Errorf("amount: got %q", fields["amount"])
	}
	if fields["active_gateway"] != "Must be one of: duitku tripay." {
		t.Errorf("active_gateway: got %q", fields["active_gateway"])
	}
	// json:"-" falls back to the lowercased struct field name
	if _, ok := fields["internal"]; !ok {
		t.Errorf("expected key for Internal field, got %v", fields)
	}
}

func TestFromBindErrorRequired(t *testing.T) {
	v := validator.New()
	err := v.Struct(sampleInput{Gateway: "duitku", Internal: ""})
	if err == nil {
		t.Fatal("expected validation error")
	}
	fields := FromBindError(err, &sampleInput{})
	if fields["email"] != "This field is required." {
		t.Errorf("email: got %q", fields["email"])
	}
}

func TestFromBindErrorNonValidation(t *testing.T) {
	fields := FromBindError(errors.New("unexpected EOF"), &sampleInput{})
	if fields["_"] == "" {
		t.Errorf("expected generic body error, got %v", fields)
	}
}
