package validator

import (
	stderrors "errors"
	"strings"
	"testing"

	"stayhub/errors"
)

type sample struct {
	Name   string  `json:"name" binding:"required"`
	Email  string  `json:"email" binding:"omitempty,email"`
	Kind   string  `json:"kind" binding:"required,oneof=Hostel PG Both"`
	Amount float64 `json:"amount" binding:"gt=0"`
}

func TestStructReportsJSONNames(t *testing.T) {
	err := Struct(sample{Email: "not-an-email", Kind: "Villa"})
	if !errors.HasCode(err, errors.ErrCodeValidation) {
		t.Fatalf("err = %v", err)
	}
	msg := errors.GetAppError(err).Message
	for _, want := range []string{
		"name is required",
		"email must be a valid email",
		"kind must be one of [Hostel PG Both]",
		"amount must be greater than 0",
	} {
		if !strings.Contains(msg, want) {
			t.Errorf("message %q missing %q", msg, want)
		}
	}
}

func TestStructValid(t *testing.T) {
	if err := Struct(sample{Name: "x", Kind: "PG", Amount: 1}); err != nil {
		t.Fatalf("err = %v", err)
	}
}

func TestFromBindErrorWrapsDecodeErrors(t *testing.T) {
	err := FromBindError(stderrors.New("unexpected EOF"))
	app := errors.GetAppError(err)
	if app == nil || app.Code != errors.ErrCodeValidation || !strings.Contains(app.Message, "unexpected EOF") {
		t.Fatalf("err = %v", err)
	}
}

func TestFormatValidators(t *testing.T) {
	cases := []struct {
		name string
		fn   func(string) error
		in   string
		ok   bool
	}{
		{"phone", ValidatePhone, "9876543210", true},
		{"phone short", ValidatePhone, "98765", false},
		{"phone letters", ValidatePhone, "98765abcde", false},
		{"pincode", ValidatePincode, "560034", true},
		{"pincode long", ValidatePincode, "5600341", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if err := tc.fn(tc.in); (err == nil) != tc.ok {
				t.Errorf("%s(%q) = %v", tc.name, tc.in, err)
			}
		})
	}
}
