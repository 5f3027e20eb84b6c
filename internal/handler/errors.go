package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/stagebook/stagebook/internal/logging"
)

// errorMessages are the messages of the JSON error body.
var errorMessages = map[int]string{
	http.StatusBadRequest:          "bad request",
	http.StatusUnauthorized:        "unauthorized",
	http.StatusForbidden:           "forbidden",
	http.StatusNotFound:            "resource not found",
	http.StatusMethodNotAllowed:    "method not allowed",
	http.StatusUnprocessableEntity: "unprocessable",
	http.StatusTooManyRequests:     "too many requests",
	http.StatusInternalServerError: "internal server error",
}

func errorMessage(code int) string {
	if msg, ok := errorMessages[code]; ok {
		return msg
	}
	return http.StatusText(code)
}

// jsonError writes {success:false, error:code, message}.
func jsonError(c echo.Context, code int) error {
	return c.JSON(code, echo.Map{"success": false, "error": code, "message": errorMessage(code)})
}

func statusOf(err error) int {
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code
	}
	return http.StatusInternalServerError
}

// JSONErrorHandler renders every error as the trivia error body.
// Unknown errors become 500 and are logged.
func JSONErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	code := statusOf(err)
	if code >= http.StatusInternalServerError {
		logging.Error().Err(err).Str("path", c.Request().URL.Path).Msg("request failed")
	}
	var werr error
	if c.Request().Method == http.MethodHead {
		werr = c.NoContent(code)
	} else {
		werr = jsonError(c, code)
	}
	if werr != nil {
		logging.Error().Err(werr).Msg("write error response")
	}
}

// HTMLErrorHandler renders the listing site's error pages.  DELETE routes
// answer JSON like their successful responses do.
func HTMLErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	code := statusOf(err)
	if code >= http.StatusInternalServerError {
		logging.Error().Err(err).Str("path", c.Request().URL.Path).Msg("request failed")
	}
	if c.Request().Method == http.MethodDelete {
		_ = jsonError(c, code)
		return
	}

	page := "errors/500"
	switch {
	case code == http.StatusNotFound || code == http.StatusMethodNotAllowed:
		page = "errors/404"
	case code < http.StatusInternalServerError:
		page = "errors/400"
	}
	data := echo.Map{"code": code, "message": errorMessage(code)}
	if rerr := c.Render(code, page, data); rerr != nil {
		logging.Error().Err(rerr).Str("page", page).Msg("render error page")
		_ = c.String(code, errorMessage(code))
	}
}
