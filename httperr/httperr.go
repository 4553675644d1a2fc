package httperr

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"menuva/authz"
	"menuva/statemachine"
	"menuva/store"
)

// Render recovers a core error into the uniform wire shape
// {success:false, code, message}. Nothing past this point leaks stack traces
// or raw database errors to clients.
func Render(c *gin.Context, err error) {
	status, code := classify(err)
	message := err.Error()
	if status == http.StatusInternalServerError {
		message = "internal error"
	}
	c.JSON(status, gin.H{
		"success": false,
		"code":    code,
		"message": message,
	})
}

func classify(err error) (int, string) {
	switch {
	case errors.Is(err, statemachine.ErrTerminalState):
		return http.StatusBadRequest, "TERMINAL_STATE"
	case errors.Is(err, statemachine.ErrInvalidTransition):
		return http.StatusBadRequest, "INVALID_TRANSITION"
	case errors.Is(err, authz.ErrForbidden):
		return http.StatusForbidden, "FORBIDDEN"
	case errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound, "NOT_FOUND"
	case errors.Is(err, store.ErrConflict):
		return http.StatusConflict, "CONFLICT"
	default:
		return http.StatusInternalServerError, "INTERNAL"
	}
}

// Validation renders a malformed-input failure with field-level detail from
// the binding error.
func Validation(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{
		"success": false,
		"code":    "VALIDATION",
		"message": err.Error(),
	})
}
