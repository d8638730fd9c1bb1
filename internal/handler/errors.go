package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stemsi/codesprint-backend/internal/model"
	"github.com/stemsi/codesprint-backend/internal/response"
	"github.com/stemsi/codesprint-backend/internal/service"
)

var fieldLabels = map[model.UniqueField]string{
	model.FieldEmail:      "Email",
	model.FieldPhone:      "Phone number",
	model.FieldRollNumber: "Roll number",
}

// writeError maps a service error onto the response envelope. Anything
// outside the service taxonomy is logged in full and reported as a bare 500.
func writeError(c *gin.Context, log zerolog.Logger, err error) {
	var ve *service.ValidationError
	var de *service.DuplicateError

	switch {
	case errors.As(err, &ve):
		response.FailField(c, http.StatusBadRequest, response.ErrValidation, ve.Field, ve.Message)
	case errors.As(err, &de):
		response.FailField(c, http.StatusConflict, response.ErrDuplicate,
			string(de.Field), fieldLabels[de.Field]+" is already registered.")
	case errors.Is(err, service.ErrNotFound):
		response.Fail(c, http.StatusNotFound, response.ErrNotFound)
	case errors.Is(err, service.ErrInvalidCredentials):
		response.Fail(c, http.StatusUnauthorized, response.ErrInvalidCredentials)
	case errors.Is(err, service.ErrUnauthorized):
		response.Fail(c, http.StatusUnauthorized, response.ErrUnauthorized)
	default:
		_ = c.Error(err)
		log.Error().Err(err).
			Str("method", c.Request.Method).
			Str("path", c.FullPath()).
			Str("request_id", response.RequestID(c)).
			Msg("Request failed")
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
	}
}

// bindJSON decodes the body into dst. Malformed JSON gets a 400 and false.
func bindJSON(c *gin.Context, dst interface{}) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidPayload)
		return false
	}
	return true
}
