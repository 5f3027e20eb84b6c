package repository

import (
    "context"

    "gorm.io/gorm"

    "github.com/stagebook/stagebook/internal/model"
)

// CategoryRepo reads trivia categories.
type CategoryRepo struct {
    db *gorm.DB
}

func NewCategoryRepo(db *gorm.DB) *CategoryRepo {
    return &CategoryRepo{db: db}
}

// List returns all categories ordered by id.
func (r *CategoryRepo) List(ctx context.Context) ([]model.Category, error) {
    var out []model.Category
    if err := r.db.WithContext(ctx).Order("id").Find(&out).Error; err != nil {
        return nil, err
    }
    return out, nil
}

// GetByID returns ErrCategoryNotFound when id is unknown.
func (r *CategoryRepo) GetByID(ctx context.Context, id uint64) (*model.Category, error) {
    var c model.Category
    if err := r.db.WithContext(ctx).First(&c, id).Error; err != nil {
        return nil, notFound(err, ErrCategoryNotFound)
    }
    return &c, nil
}
