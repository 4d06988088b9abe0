package httpapi

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mpetrov/taskkeeper/internal/common"
)

// envelope is the server-side (any-typed) counterpart of api.Envelope.
type envelope struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Message string `json:"message,omitempty"`
}

func respondData(c *gin.Context, status int, data any) {
	c.JSON(status, envelope{Success: true, Data: data})
}

func respondMessage(c *gin.Context, status int, message string) {
	c.JSON(status, envelope{Success: true, Message: message})
}

// respondError maps the sentinel taxonomy onto HTTP status codes. Anything
// unrecognized is reported as an internal error without leaking detail.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, common.ErrValidation):
		c.JSON(http.StatusBadRequest, envelope{Message: err.Error()})
	case errors.Is(err, common.ErrUnauthorized),
		errors.Is(err, common.ErrInvalidToken),
		errors.Is(err, common.ErrTokenExpired):
		c.JSON(http.StatusUnauthorized, envelope{Message: common.ErrUnauthorized.Error()})
	case errors.Is(err, common.ErrConflict):
		c.JSON(http.StatusConflict, envelope{Message: err.Error()})
	case errors.Is(err, common.ErrNotFound):
		c.JSON(http.StatusNotFound, envelope{Message: err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, envelope{Message: common.ErrInternal.Error()})
	}
}
