package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/focusgrove/focusgrove-backend/internal/apierr"
)

type APIError struct {
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

type ErrorEnvelope struct {
	Error APIError `json:"error"`
}

// RespondAPIError maps a service error onto the HTTP status and stable code
// carried by apierr. Errors outside the taxonomy become opaque 500s.
func RespondAPIError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	code := apierr.CodeInternal
	msg := "internal error"
	if ae, ok := apierr.As(err); ok {
		status = ae.Status
		code = ae.Code
		msg = ae.Error()
	}
	c.JSON(status, ErrorEnvelope{
		Error: APIError{
			Message: msg,
			Code:    code,
		},
	})
}

func RespondError(c *gin.Context, status int, code string, err error) {
	msg := "unknown error"
	if err != nil {
		msg = err.Error()
	}
	c.JSON(status, ErrorEnvelope{
		Error: APIError{
			Message: msg,
			Code:    code,
		},
	})
}

func RespondOK(c *gin.Context, payload any) {
	c.JSON(http.StatusOK, payload)
}

func RespondCreated(c *gin.Context, payload any) {
	c.JSON(http.StatusCreated, payload)
}
