package router

import (
	"github.com/labstack/echo/v4"

	"github.com/stagebook/stagebook/internal/handler"
)

// RegisterTrivia registers the trivia API.  cache wraps the GET endpoints;
// admin guards question creation and deletion.
func RegisterTrivia(e *echo.Echo, h *handler.TriviaHandler, cache, admin echo.MiddlewareFunc) {
	e.GET("/categories", h.GetCategories, cache)
	e.GET("/categories/:id/questions", h.QuestionsByCategory, cache)

	e.GET("/questions", h.ListQuestions, cache)
	e.POST("/questions", h.CreateQuestion, admin)
	e.GET("/questions/:id", h.GetQuestion, cache)
	e.DELETE("/questions/:id", h.DeleteQuestion, admin)
	e.POST("/questions-search", h.SearchQuestions)

	e.POST("/quizzes", h.PlayQuiz)
}
