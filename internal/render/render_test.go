package render

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
)

func TestFormatDateTime(t *testing.T) {
	at := time.Date(2019, 5, 21, 21, 30, 0, 0, time.UTC)
	tests := []struct {
		format string
		want   string
	}{
		{"medium", "Tue 05, 21, 2019 9:30PM"},
		{"full", "Tuesday May, 21, 2019 at 9:30PM"},
		{"", "Tue 05, 21, 2019 9:30PM"},
	}
	for _, tt := range tests {
		if got := FormatDateTime(at, tt.format); got != tt.want {
			t.Errorf("FormatDateTime(%q) = %q, want %q", tt.format, got, tt.want)
		}
	}
}

func TestRenderer_PagesParse(t *testing.T) {
	r, err := New()
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	for _, name := range []string{
		"pages/home", "pages/venues", "pages/show_venue", "pages/artists", "pages/show_artist",
		"pages/shows", "pages/search_venues", "pages/search_artists",
		"forms/new_venue", "forms/edit_venue", "forms/new_artist", "forms/edit_artist", "forms/new_show",
		"errors/400", "errors/404", "errors/500",
	} {
		if !r.Has(name) {
			t.Errorf("missing page %s", name)
		}
	}
}

func TestRenderer_HomeShowsFlash(t *testing.T) {
	r, err := New()
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	var buf bytes.Buffer
	data := echo.Map{"flash": []string{"Venue The Hop was successfully listed!"}}
	if err := r.Render(&buf, "pages/home", data, nil); err != nil {
		t.Fatalf("Render: %v", err)
	}
	if !strings.Contains(buf.String(), "Venue The Hop was successfully listed!") {
		t.Errorf("flash missing from output:\n%s", buf.String())
	}
	if err := r.Render(&buf, "pages/nope", nil, nil); err == nil {
		t.Error("expected error for unknown page")
	}
}
