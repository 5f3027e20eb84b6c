package queue

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/goccy/go-json"
)

func TestHandleMessage_AppendsLine(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "logs")
	at := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	for _, ev := range []Event{
		{Type: VenueCreated, Service: "fyyur", EntityID: 7, Name: "The Musical Hop", OccurredAt: at},
		{Type: QuestionDeleted, Service: "trivia", EntityID: 12, OccurredAt: at},
		{Type: ShowCreated, Service: "fyyur", EntityID: 7, ArtistID: 4, Name: "2035-04-01 20:00:00", OccurredAt: at},
	} {
		body, err := json.Marshal(ev)
		if err != nil {
			t.Fatal(err)
		}
		if err := handleMessage(body, dir); err != nil {
			t.Fatalf("handleMessage: %v", err)
		}
	}

	data, err := os.ReadFile(filepath.Join(dir, "audit.log"))
	if err != nil {
		t.Fatalf("read audit log: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 3 {
		t.Fatalf("got %d lines:\n%s", len(lines), data)
	}
	want := `[2026-03-01T12:00:00Z] venue.created | service=fyyur | id=7 | name="The Musical Hop"`
	if lines[0] != want {
		t.Errorf("line = %q\nwant   %q", lines[0], want)
	}
	if !strings.Contains(lines[1], "question.deleted | service=trivia | id=12") {
		t.Errorf("line = %q", lines[1])
	}
	if want := `[2026-03-01T12:00:00Z] show.created | service=fyyur | id=7 | name="2035-04-01 20:00:00" | artist=4`; lines[2] != want {
		t.Errorf("line = %q\nwant   %q", lines[2], want)
	}
}

func TestHandleMessage_RejectsGarbage(t *testing.T) {
	dir := t.TempDir()
	for _, body := range []string{"not json", `{"service":"fyyur"}`} {
		if err := handleMessage([]byte(body), dir); err == nil {
			t.Errorf("expected error for %q", body)
		}
	}
	if _, err := os.Stat(filepath.Join(dir, "audit.log")); !os.IsNotExist(err) {
		t.Error("audit.log should not be created for rejected messages")
	}
}
