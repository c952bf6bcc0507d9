package handlers

import (
  "errors"
  "net/http"

  "github.com/gin-gonic/gin"

  "github.com/yungbote/linguabridge-backend/internal/apierr"
  "github.com/yungbote/linguabridge-backend/internal/services"
)

// Every endpoint answers with the same envelope so clients never branch on
// response shape: {success, data?, message?}.
type Envelope struct {
  Success bool   `json:"success"`
  Data    any    `json:"data,omitempty"`
  Message string `json:"message,omitempty"`
}

func RespondOK(c *gin.Context, data any) {
  c.JSON(http.StatusOK, Envelope{Success: true, Data: data})
}

func RespondCreated(c *gin.Context, data any) {
  c.JSON(http.StatusCreated, Envelope{Success: true, Data: data})
}

func RespondError(c *gin.Context, status int, message string) {
  c.JSON(status, Envelope{Success: false, Message: message})
}

// RespondServiceError maps service error classes onto statuses. Storage
// failures only leak their detail in non-release mode; clients get a generic
// retryable message.
func RespondServiceError(c *gin.Context, err error) {
  var apiErr *apierr.Error
  if errors.As(err, &apiErr) && apiErr.Status != 0 {
    RespondError(c, apiErr.Status, apiErr.Error())
    return
  }
  switch {
  case errors.Is(err, services.ErrInvalidInput):
    RespondError(c, http.StatusBadRequest, err.Error())
  case errors.Is(err, services.ErrNotFound):
    RespondError(c, http.StatusNotFound, err.Error())
  default:
    msg := "temporary storage failure, please retry"
    if gin.Mode() != gin.ReleaseMode {
      msg = err.Error()
    }
    RespondError(c, http.StatusInternalServerError, msg)
  }
}
