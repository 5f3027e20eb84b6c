package model

// Genre is a music style used to tag venues and artists.  The association
// is many-to-many and carries no ordering.
type Genre struct {
    ID   uint64 `gorm:"primaryKey"`       // genres.id
    Name string `gorm:"size:50;not null"` // genres.name
}

func (Genre) TableName() string { return "genres" }

func genreNames(gs []Genre) []string {
    out := make([]string, 0, len(gs))
    for _, g := range gs {
        out = append(out, g.Name)
    }
    return out
}

func genreIDs(gs []Genre) []uint64 {
    out := make([]uint64, 0, len(gs))
    for _, g := range gs {
        out = append(out, g.ID)
    }
    return out
}
