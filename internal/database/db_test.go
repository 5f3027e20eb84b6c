package database

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stagebook/stagebook/internal/config"
	"github.com/stagebook/stagebook/internal/model"
)

func TestMySQLDSN(t *testing.T) {
	dsn := MySQLDSN(config.DBConfig{User: "fyyur", Pass: "secret", Host: "db", Port: "3306", Name: "fyyur"})
	for _, want := range []string{"fyyur:secret@tcp(db:3306)/fyyur", "parseTime=true", "charset=utf8mb4"} {
		if !strings.Contains(dsn, want) {
			t.Errorf("dsn %q missing %q", dsn, want)
		}
	}
}

func TestSQLiteDSN(t *testing.T) {
	if got := SQLiteDSN("app.db"); got != "app.db?_foreign_keys=on" {
		t.Errorf("SQLiteDSN = %q", got)
	}
	if got := SQLiteDSN("file:x?mode=memory"); got != "file:x?mode=memory&_foreign_keys=on" {
		t.Errorf("SQLiteDSN = %q", got)
	}
}

func TestSeed_IsIdempotent(t *testing.T) {
	path := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := Open(config.DBConfig{Driver: config.DriverSQLite, SQLitePath: path})
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if err := Migrate(db); err != nil {
		t.Fatalf("Migrate: %v", err)
	}
	ctx := context.Background()
	for i := 0; i < 2; i++ {
		if err := Seed(ctx, db); err != nil {
			t.Fatalf("Seed #%d: %v", i+1, err)
		}
	}

	counts := map[string]struct {
		m    interface{}
		want int64
	}{
		"genres":     {&model.Genre{}, int64(len(GenreNames))},
		"categories": {&model.Category{}, int64(len(CategoryTypes))},
		"venues":     {&model.Venue{}, 3},
		"artists":    {&model.Artist{}, 3},
		"shows":      {&model.Show{}, 5},
	}
	for name, c := range counts {
		var n int64
		if err := db.Model(c.m).Count(&n).Error; err != nil {
			t.Fatalf("count %s: %v", name, err)
		}
		if n != c.want {
			t.Errorf("%s = %d, want %d", name, n, c.want)
		}
	}

	var hop model.Venue
	if err := db.Preload("Genres").Where("name = ?", "The Musical Hop").First(&hop).Error; err != nil {
		t.Fatalf("load venue: %v", err)
	}
	if len(hop.Genres) != 5 {
		t.Errorf("The Musical Hop has %d genres, want 5", len(hop.Genres))
	}
}
