package validators

import (
	"net/http/httptest"
	"strings"
	"testing"

	pkgerrors "github.com/crunchperks/crunchperks-backend/pkg/errors"
)

type sampleBody struct {
	Name    string `json:"name" validate:"required,max=50"`
	Email   string `json:"email" validate:"required,email"`
	EIN     string `json:"ein" validate:"required,ein"`
	ZipCode string `json:"zip_code" validate:"required,zipcode"`
}

func TestDecodeJSONBodyValid(t *testing.T) {
	body := `{"name":"Taco Loco","email":"owner@tacoloco.com","ein":"12-3456789","zip_code":"75201"}`
	r := httptest.NewRequest("POST", "/", strings.NewReader(body))

	var dest sampleBody
	if err := DecodeJSONBody(r, &dest); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if dest.Name != "Taco Loco" {
		t.Fatalf("unexpected name %q", dest.Name)
	}
}

func TestDecodeJSONBodyRejectsUnknownFields(t *testing.T) {
	body := `{"name":"x","email":"a@b.co","ein":"12-3456789","zip_code":"75201","extra":true}`
	r := httptest.NewRequest("POST", "/", strings.NewReader(body))

	var dest sampleBody
	err := DecodeJSONBody(r, &dest)
	if err == nil {
		t.Fatal("expected error for unknown field")
	}
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestDecodeJSONBodyFieldMessages(t *testing.T) {
	body := `{"name":"","email":"not-an-email","ein":"123","zip_code":"abcde"}`
	r := httptest.NewRequest("POST", "/", strings.NewReader(body))

	var dest sampleBody
	err := DecodeJSONBody(r, &dest)
	if err == nil {
		t.Fatal("expected validation error")
	}

	typed := pkgerrors.As(err)
	if typed == nil {
		t.Fatalf("expected typed error, got %v", err)
	}
	details, ok := typed.Details().(map[string]string)
	if !ok {
		t.Fatalf("expected field details, got %T", typed.Details())
	}
	for _, field := range []string{"name", "email", "ein", "zip_code"} {
		if _, present := details[field]; !present {
			t.Errorf("missing detail for field %q", field)
		}
	}
}

func TestEINValidator(t *testing.T) {
	valid := []string{"12-3456789", "123456789"}
	invalid := []string{"1-23456789", "12-345678", "ab-cdefghi", "12-34567890"}

	for _, ein := range valid {
		dest := sampleBody{Name: "x", Email: "a@b.co", EIN: ein, ZipCode: "75201"}
		if err := ValidateStruct(&dest); err != nil {
			t.Errorf("expected %q to be valid: %v", ein, err)
		}
	}
	for _, ein := range invalid {
		dest := sampleBody{Name: "x", Email: "a@b.co", EIN: ein, ZipCode: "75201"}
		if err := ValidateStruct(&dest); err == nil {
			t.Errorf("expected %q to be rejected", ein)
		}
	}
}

func TestZipCodeValidator(t *testing.T) {
	valid := []string{"75201", "75201-1234"}
	invalid := []string{"7520", "752011", "75201-12", "ABCDE"}

	for _, zip := range valid {
		dest := sampleBody{Name: "x", Email: "a@b.co", EIN: "12-3456789", ZipCode: zip}
		if err := ValidateStruct(&dest); err != nil {
			t.Errorf("expected %q to be valid: %v", zip, err)
		}
	}
	for _, zip := range invalid {
		dest := sampleBody{Name: "x", Email: "a@b.co", EIN: "12-3456789", ZipCode: zip}
		if err := ValidateStruct(&dest); err == nil {
			t.Errorf("expected %q to be rejected", zip)
		}
	}
}

func TestSanitizeString(t *testing.T) {
	if got := SanitizeString("  hello  ", 0); got != "hello" {
		t.Fatalf("unexpected result %q", got)
	}
	if got := SanitizeString("abcdef", 3); got != "abc" {
		t.Fatalf("unexpected truncation %q", got)
	}
}
