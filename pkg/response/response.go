package response

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"assetledger/pkg/apperr"
)

// APIResponse is the envelope for every endpoint. UserMsg is meant for
// display; DevMsg carries the detail a client developer needs.
type APIResponse struct {
	Success bool   `json:"success"`
	UserMsg string `json:"userMsg"`
	DevMsg  string `json:"devMsg"`
	Data    any    `json:"data,omitempty"`
}

func Send(c *gin.Context, code int, success bool, userMsg, devMsg string, data any) {
	c.JSON(code, APIResponse{
		Success: success,
		UserMsg: userMsg,
		DevMsg:  devMsg,
		Data:    data,
	})
}

func OK(c *gin.Context, msg string, data any) {
	Send(c, http.StatusOK, true, msg, msg, data)
}

func Created(c *gin.Context, msg string, data any) {
	Send(c, http.StatusCreated, true, msg, msg, data)
}

// SendError maps the error taxonomy to transport statuses: validation
// failures 400, missing references 404, code collisions 409, everything
// else 500. Unexpected errors are logged in full and surfaced with a
// generic user message.
func SendError(c *gin.Context, err error) {
	userMsg, devMsg := apperr.Messages(err)

	switch apperr.KindOf(err) {
	case apperr.KindValidate:
		Send(c, http.StatusBadRequest, false, userMsg, devMsg, nil)
	case apperr.KindNotFound:
		Send(c, http.StatusNotFound, false, userMsg, devMsg, nil)
	case apperr.KindConflict:
		Send(c, http.StatusConflict, false, userMsg, devMsg, nil)
	default:
		log.Printf("unexpected error: %v", err)
		Send(c, http.StatusInternalServerError, false, userMsg, "internal server error", nil)
	}
}
