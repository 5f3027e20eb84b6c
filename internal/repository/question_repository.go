package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/stagebook/stagebook/internal/model"
)

// QuestionFilter narrows a question listing.  Zero values disable a filter.
type QuestionFilter struct {
	CategoryID uint64 // only questions of this category
	Search     string // case-insensitive substring of the question text
}

// QuestionRepo encapsulates queries on the questions table.
type QuestionRepo struct {
	db *gorm.DB
}

// NewQuestionRepo constructs a QuestionRepo with the provided gorm handle.
func NewQuestionRepo(db *gorm.DB) *QuestionRepo {
	return &QuestionRepo{db: db}
}

func (r *QuestionRepo) filtered(ctx context.Context, f QuestionFilter) *gorm.DB {
	q := r.db.WithContext(ctx).Model(&model.Question{})
	if f.CategoryID != 0 {
		q = q.Where("category = ?", f.CategoryID)
	}
	if f.Search != "" {
		q = q.Where(likeClause("question"), likeTerm(f.Search))
	}
	return q
}

// Page returns the questions of page (1-based) ordered by id together with
// the total number of rows matching f.  A page past the end yields an
// empty slice, not an error.
func (r *QuestionRepo) Page(ctx context.Context, f QuestionFilter, page, size int) ([]model.Question, int64, error) {
	if page < 1 {
		page = 1
	}
	var total int64
	if err := r.filtered(ctx, f).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	out := []model.Question{}
	err := r.filtered(ctx, f).
		Order("id").
		Limit(size).
		Offset((page - 1) * size).
		Find(&out).Error
	if err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

// GetByID returns ErrQuestionNotFound if no row is found.
func (r *QuestionRepo) GetByID(ctx context.Context, id uint64) (*model.Question, error) {
	var q model.Question
	if err := r.db.WithContext(ctx).First(&q, id).Error; err != nil {
		return nil, notFound(err, ErrQuestionNotFound)
	}
	return &q, nil
}

// Create inserts q after checking that its category exists.
func (r *QuestionRepo) Create(ctx context.Context, q *model.Question) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var n int64
		if err := tx.Model(&model.Category{}).Where("id = ?", q.CategoryID).Count(&n).Error; err != nil {
			return err
		}
		if n == 0 {
			return ErrCategoryNotFound
		}
		if err := tx.Create(q).Error; err != nil {
			return fmt.Errorf("insert question: %w", err)
		}
		return nil
	})
}

// Delete removes the question with id.  It returns ErrQuestionNotFound
// when no row is affected.
func (r *QuestionRepo) Delete(ctx context.Context, id uint64) error {
	res := r.db.WithContext(ctx).Delete(&model.Question{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrQuestionNotFound
	}
	return nil
}

// Count returns how many questions belong to categoryID (0 counts all).
func (r *QuestionRepo) Count(ctx context.Context, categoryID uint64) (int64, error) {
	var n int64
	err := r.filtered(ctx, QuestionFilter{CategoryID: categoryID}).Count(&n).Error
	return n, err
}

// QuizCandidates returns the questions of categoryID (0 means every
// category) whose ids are not in exclude.
func (r *QuestionRepo) QuizCandidates(ctx context.Context, categoryID uint64, exclude []uint64) ([]model.Question, error) {
	q := r.filtered(ctx, QuestionFilter{CategoryID: categoryID})
	// NOT IN with an empty list renders as NOT IN (NULL) which matches nothing
	if len(exclude) > 0 {
		q = q.Where("id NOT IN ?", exclude)
	}
	var out []model.Question
	if err := q.Order("id").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}
