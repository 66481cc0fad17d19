package controller

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"interviewiq-server/internal/apperr"
	"interviewiq-server/internal/dto"
)

// RespondError maps a service error onto the wire error shape. Domain errors
// carry their own status code and retryable flag; anything else is a 500.
func RespondError(c *gin.Context, err error) {
	var appErr *apperr.Error
	if errors.As(err, &appErr) {
		c.JSON(apperr.HTTPStatus(appErr), dto.ErrorResponse{
			Code:      string(appErr.Code),
			Message:   appErr.Message,
			Retryable: apperr.Retryable(appErr),
		})
		return
	}
	c.JSON(http.StatusInternalServerError, dto.ErrorResponse{
		Code:    "internal_error",
		Message: "internal server error",
	})
}

// ParseID parses a numeric path parameter, responding 400 on failure.
func ParseID(c *gin.Context, param string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(param), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Code:    string(apperr.CodeInvalidInput),
			Message: "invalid " + param + " format",
		})
		return 0, false
	}
	return uint(id), true
}
