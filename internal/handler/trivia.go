package handler

import (
	"bytes"
	"context"
	"errors"
	"math/rand"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/stagebook/stagebook/internal/model"
	"github.com/stagebook/stagebook/internal/queue"
	"github.com/stagebook/stagebook/internal/repository"
	"github.com/stagebook/stagebook/internal/validator"
)

// QuestionsPerPage is the trivia page size.
const QuestionsPerPage = 10

// TriviaHandler serves the trivia JSON API.
type TriviaHandler struct {
	Questions  *repository.QuestionRepo
	Categories *repository.CategoryRepo
	Hooks      Hooks
	PageSize   int
	Pick       func(n int) int // uniform index in [0, n); replaced in tests
}

// NewTriviaHandler constructs a TriviaHandler and panics if a repository is nil.
func NewTriviaHandler(questions *repository.QuestionRepo, categories *repository.CategoryRepo, hooks Hooks) *TriviaHandler {
	if questions == nil || categories == nil {
		panic("nil repository passed to NewTriviaHandler")
	}
	return &TriviaHandler{
		Questions:  questions,
		Categories: categories,
		Hooks:      hooks,
		PageSize:   QuestionsPerPage,
		Pick:       rand.Intn,
	}
}

// flexID decodes a JSON number or a numeric string; the trivia frontend
// sends category ids as strings.
type flexID uint64

func (f *flexID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*f = 0
		return nil
	}
	s := strings.Trim(string(b), `"`)
	n, err := strconv.ParseUint(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return errors.New("expected a non-negative integer")
	}
	*f = flexID(n)
	return nil
}

type questionBody struct {
	Question   string `json:"question" validate:"required"`
	Answer     string `json:"answer" validate:"required"`
	Category   flexID `json:"category" validate:"required"`
	Difficulty flexID `json:"difficulty" validate:"required,gte=1,lte=5"`
}

type searchBody struct {
	SearchTerm *string `json:"searchTerm"`
}

type quizBody struct {
	PreviousQuestions []flexID `json:"previous_questions"`
	QuizCategory      *struct {
		ID   *flexID `json:"id"`
		Type string `json:"type"`
	} `json:"quiz_category"`
}

// pageParam reads ?page=N.  A missing value means 1; anything that is not
// a positive integer is a bad request.
func pageParam(c echo.Context) (int, error) {
	raw := c.QueryParam("page")
	if raw == "" {
		return 1, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return 0, echo.NewHTTPError(http.StatusBadRequest)
	}
	return n, nil
}

func (h *TriviaHandler) pageSize() int {
	if h.PageSize > 0 {
		return h.PageSize
	}
	return QuestionsPerPage
}

// categoryMap returns {id: type} with ids as JSON object keys.
func (h *TriviaHandler) categoryMap(ctx context.Context) (map[string]string, error) {
	cats, err := h.Categories.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make(map[string]string, len(cats))
	for _, cat := range cats {
		out[strconv.FormatUint(cat.ID, 10)] = cat.Type
	}
	return out, nil
}

// listing runs one page of f and shapes the common listing body.
func (h *TriviaHandler) listing(ctx context.Context, f repository.QuestionFilter, page int) (echo.Map, int, error) {
	qs, total, err := h.Questions.Page(ctx, f, page, h.pageSize())
	if err != nil {
		return nil, 0, err
	}
	cats, err := h.categoryMap(ctx)
	if err != nil {
		return nil, 0, err
	}
	var current interface{}
	if f.CategoryID != 0 {
		current = f.CategoryID
	}
	return echo.Map{
		"success":          true,
		"questions":        qs,
		"total_questions":  total,
		"current_category": current,
		"categories":       cats,
	}, len(qs), nil
}

// GetCategories handles GET /categories.
func (h *TriviaHandler) GetCategories(c echo.Context) error {
	ctx, cancel := requestCtx(c)
	defer cancel()
	cats, err := h.categoryMap(ctx)
	if err != nil {
		return err
	}
	if len(cats) == 0 {
		return echo.ErrNotFound
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "categories": cats})
}

// ListQuestions handles GET /questions?page=N.  An empty page is 404.
func (h *TriviaHandler) ListQuestions(c echo.Context) error {
	page, err := pageParam(c)
	if err != nil {
		return err
	}
	ctx, cancel := requestCtx(c)
	defer cancel()
	body, n, err := h.listing(ctx, repository.QuestionFilter{}, page)
	if err != nil {
		return err
	}
	if n == 0 {
		return echo.ErrNotFound
	}
	return c.JSON(http.StatusOK, body)
}

// GetQuestion handles GET /questions/:id.
func (h *TriviaHandler) GetQuestion(c echo.Context) error {
	id, ok := parseID(c, "id")
	if !ok {
		return echo.ErrNotFound
	}
	ctx, cancel := requestCtx(c)
	defer cancel()
	q, err := h.Questions.GetByID(ctx, id)
	if errors.Is(err, repository.ErrQuestionNotFound) {
		return echo.ErrNotFound
	}
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "question": q})
}

// DeleteQuestion handles DELETE /questions/:id.  Deleting a missing
// question is unprocessable.  The response carries the requested page of
// what is left, which may be empty.
func (h *TriviaHandler) DeleteQuestion(c echo.Context) error {
	id, ok := parseID(c, "id")
	if !ok {
		return echo.NewHTTPError(http.StatusUnprocessableEntity)
	}
	page, err := pageParam(c)
	if err != nil {
		return err
	}
	ctx, cancel := requestCtx(c)
	defer cancel()
	if err := h.Questions.Delete(ctx, id); err != nil {
		if !errors.Is(err, repository.ErrQuestionNotFound) {
			h.Hooks.Log.Error().Err(err).Uint64("question_id", id).Msg("delete question failed")
		}
		return echo.NewHTTPError(http.StatusUnprocessableEntity)
	}
	h.Hooks.committed(ctx, queue.Event{Type: queue.QuestionDeleted, EntityID: id})

	body, _, err := h.listing(ctx, repository.QuestionFilter{}, page)
	if err != nil {
		return err
	}
	body["deleted_id"] = id
	return c.JSON(http.StatusOK, body)
}

// CreateQuestion handles POST /questions.
func (h *TriviaHandler) CreateQuestion(c echo.Context) error {
	var in questionBody
	if err := c.Bind(&in); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest).SetInternal(err)
	}
	in.Question = strings.TrimSpace(in.Question)
	in.Answer = strings.TrimSpace(in.Answer)
	if err := validator.Struct(in); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity).SetInternal(err)
	}
	page, err := pageParam(c)
	if err != nil {
		return err
	}

	q := model.Question{
		Question:   in.Question,
		Answer:     in.Answer,
		CategoryID: uint64(in.Category),
		Difficulty: int(in.Difficulty),
	}
	ctx, cancel := requestCtx(c)
	defer cancel()
	if err := h.Questions.Create(ctx, &q); err != nil {
		if !errors.Is(err, repository.ErrCategoryNotFound) {
			h.Hooks.Log.Error().Err(err).Msg("create question failed")
		}
		return echo.NewHTTPError(http.StatusUnprocessableEntity).SetInternal(err)
	}
	h.Hooks.committed(ctx, queue.Event{Type: queue.QuestionCreated, EntityID: q.ID, Name: q.Question})

	body, _, err := h.listing(ctx, repository.QuestionFilter{}, page)
	if err != nil {
		return err
	}
	body["created_id"] = q.ID
	return c.JSON(http.StatusOK, body)
}

// SearchQuestions handles POST /questions-search.  total_questions is the
// number of matches, not the size of the page.
func (h *TriviaHandler) SearchQuestions(c echo.Context) error {
	var in searchBody
	if err := c.Bind(&in); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest).SetInternal(err)
	}
	if in.SearchTerm == nil {
		return echo.NewHTTPError(http.StatusBadRequest)
	}
	page, err := pageParam(c)
	if err != nil {
		return err
	}
	ctx, cancel := requestCtx(c)
	defer cancel()
	body, _, err := h.listing(ctx, repository.QuestionFilter{Search: *in.SearchTerm}, page)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, body)
}

// QuestionsByCategory handles GET /categories/:id/questions.
func (h *TriviaHandler) QuestionsByCategory(c echo.Context) error {
	id, ok := parseID(c, "id")
	if !ok {
		return echo.ErrNotFound
	}
	page, err := pageParam(c)
	if err != nil {
		return err
	}
	ctx, cancel := requestCtx(c)
	defer cancel()
	body, n, err := h.listing(ctx, repository.QuestionFilter{CategoryID: id}, page)
	if err != nil {
		return err
	}
	if n == 0 {
		return echo.ErrNotFound
	}
	return c.JSON(http.StatusOK, body)
}

// PlayQuiz handles POST /quizzes: a uniformly random question of the
// category (0 = all) that is not in previous_questions, or question:false
// once every question has been seen.
func (h *TriviaHandler) PlayQuiz(c echo.Context) error {
	var in quizBody
	if err := c.Bind(&in); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest).SetInternal(err)
	}
	// id 0 means every category; an absent id is not the same thing
	if in.QuizCategory == nil || in.QuizCategory.ID == nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity)
	}
	category := uint64(*in.QuizCategory.ID)

	ctx, cancel := requestCtx(c)
	defer cancel()
	n, err := h.Questions.Count(ctx, category)
	if err != nil {
		return err
	}
	if n == 0 {
		return echo.NewHTTPError(http.StatusUnprocessableEntity)
	}

	exclude := make([]uint64, 0, len(in.PreviousQuestions))
	for _, id := range in.PreviousQuestions {
		exclude = append(exclude, uint64(id))
	}
	candidates, err := h.Questions.QuizCandidates(ctx, category, exclude)
	if err != nil {
		return err
	}
	if len(candidates) == 0 {
		return c.JSON(http.StatusOK, echo.Map{"success": true, "question": false})
	}
	pick := h.Pick
	if pick == nil {
		pick = rand.Intn
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "question": candidates[pick(len(candidates))]})
}
