package util

import (
	"errors"
	"net/http"

	"github.com/docthru/docthru/internal/database"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Response struct {
	Code    int         `json:"code"`
	Data    interface{} `json:"data"`
	Message string      `json:"message"`
}

func Success(c *gin.Context, data interface{}, message string) {
	c.JSON(http.StatusOK, Response{
		Code:    0,
		Data:    data,
		Message: message,
	})
}

func Error(c *gin.Context, code int, err interface{}) {
	msg := ""
	switch e := err.(type) {
	case string:
		msg = e
	case error:
		msg = e.Error()
	default:
		msg = "Internal Server Error"
	}

	zap.S().Errorf("API Error: %s", msg)

	c.JSON(code, Response{
		Code:    -1,
		Data:    nil,
		Message: msg,
	})
}

// DomainError maps the store's error taxonomy to an HTTP status.
func DomainError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, database.ErrNotFound):
		Error(c, http.StatusNotFound, err)
	case errors.Is(err, database.ErrConflict):
		Error(c, http.StatusConflict, err)
	case errors.Is(err, database.ErrForbidden):
		Error(c, http.StatusForbidden, err)
	default:
		Error(c, http.StatusInternalServerError, err)
	}
}
