package validator

import (
	"errors"
	"testing"
)

type venueForm struct {
	Name    string `form:"name" validate:"required,max=120"`
	State   string `form:"state" validate:"required,usstate"`
	Phone   string `form:"phone" validate:"required,phone"`
	Website string `form:"website_link" validate:"omitempty,url,max=120"`
}

type questionBody struct {
	Difficulty int `json:"difficulty" validate:"gte=1,lte=5"`
}

func TestStruct_Valid(t *testing.T) {
	f := venueForm{Name: "The Musical Hop", State: "CA", Phone: "(415) 000-1234"}
	if err := Struct(f); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestStruct_FieldMessages(t *testing.T) {
	f := venueForm{State: "XX", Phone: "12345", Website: "not a url"}
	err := Struct(f)

	var verrs Errors
	if !errors.As(err, &verrs) {
		t.Fatalf("expected Errors, got %T (%v)", err, err)
	}
	msgs := verrs.Messages()
	want := map[string]string{
		"name":         "this field is required",
		"state":        "must be a US state code",
		"phone":        "must be a phone number like 123-456-7890",
		"website_link": "must be a valid URL",
	}
	for field, msg := range want {
		if msgs[field] != msg {
			t.Errorf("%s: got %q, want %q", field, msgs[field], msg)
		}
	}
}

func TestStruct_JSONFieldNames(t *testing.T) {
	err := Struct(questionBody{Difficulty: 9})
	var verrs Errors
	if !errors.As(err, &verrs) {
		t.Fatalf("expected Errors, got %v", err)
	}
	if verrs[0].Field != "difficulty" || verrs[0].Tag != "lte" {
		t.Errorf("got %+v", verrs[0])
	}
}

func TestPhonePattern(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"123-123-1234", true},
		{"123.123.1234", true},
		{"1231231234", true},
		{"(914) 003-1132", true},
		{"123-1234", false},
		{"phone", false},
	}
	for _, tt := range tests {
		if got := phoneRegex.MatchString(tt.in); got != tt.want {
			t.Errorf("phone %q = %v, want %v", tt.in, got, tt.want)
		}
	}
}
