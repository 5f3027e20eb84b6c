package repository

import (
    "context"

    "gorm.io/gorm"

    "github.com/stagebook/stagebook/internal/model"
)

// GenreRepo reads the fixed genre vocabulary.
type GenreRepo struct {
    db *gorm.DB
}

func NewGenreRepo(db *gorm.DB) *GenreRepo {
    return &GenreRepo{db: db}
}

// List returns every genre ordered by name.
func (r *GenreRepo) List(ctx context.Context) ([]model.Genre, error) {
    var out []model.Genre
    if err := r.db.WithContext(ctx).Order("name").Find(&out).Error; err != nil {
        return nil, err
    }
    return out, nil
}

// findGenres loads the genres with the given ids inside tx.
// ErrInvalidReference is returned when any id is unknown.
func findGenres(db *gorm.DB, ids []uint64) ([]model.Genre, error) {
    if len(ids) == 0 {
        return nil, nil
    }
    uniq := make(map[uint64]struct{}, len(ids))
    for _, id := range ids {
        uniq[id] = struct{}{}
    }
    var out []model.Genre
    if err := db.Where("id IN ?", ids).Order("id").Find(&out).Error; err != nil {
        return nil, err
    }
    if len(out) != len(uniq) {
        return nil, ErrInvalidReference
    }
    return out, nil
}
