package repository

import (
	"strings"
	"time"

	"gorm.io/gorm"
)

// Summary is the compact row used by search results and area listings.
type Summary struct {
	ID               uint64 `json:"id"`
	Name             string `json:"name"`
	NumUpcomingShows int64  `json:"num_upcoming_shows"`
}

// Choice is an id/label pair for select inputs.
type Choice struct {
	ID   uint64
	Name string
}

// likeEscaper escapes LIKE metacharacters with '!' so a term only ever
// matches itself.  A backslash escape would read differently in MySQL and
// SQLite string literals.
var likeEscaper = strings.NewReplacer("!", "!!", "%", "!%", "_", "!_")

// likeClause is a case-insensitive substring match on column; bind it to
// likeTerm(term).
func likeClause(column string) string {
	return "LOWER(" + column + ") LIKE ? ESCAPE '!'"
}

// likeTerm lowercases and escapes the term and wraps it for likeClause.
func likeTerm(term string) string {
	return "%" + likeEscaper.Replace(strings.ToLower(strings.TrimSpace(term))) + "%"
}

type showCount struct {
	OwnerID uint64
	N       int64
}

// upcomingCounts returns the number of shows after now keyed by the value
// of column (venue_id or artist_id).
func upcomingCounts(db *gorm.DB, column string, now time.Time) (map[uint64]int64, error) {
	var rows []showCount
	err := db.Table("shows").
		Select(column+" AS owner_id, COUNT(*) AS n").
		Where("start_time > ?", now.UTC()).
		Group(column).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	out := make(map[uint64]int64, len(rows))
	for _, r := range rows {
		out[r.OwnerID] = r.N
	}
	return out, nil
}
