package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stemsi/codesprint-backend/internal/model"
	"github.com/stemsi/codesprint-backend/internal/response"
	"github.com/stemsi/codesprint-backend/internal/service"
)

// RegistrationHandler handles the public registration endpoints.
type RegistrationHandler struct {
	registrationService *service.RegistrationService
	log                 zerolog.Logger
}

// NewRegistrationHandler creates a new RegistrationHandler.
func NewRegistrationHandler(registrationService *service.RegistrationService, log zerolog.Logger) *RegistrationHandler {
	return &RegistrationHandler{
		registrationService: registrationService,
		log:                 log.With().Str("component", "registration_handler").Logger(),
	}
}

// Register godoc
// POST /api/registration/register
// Admits a new registrant. The confirmation mail is dispatched only after
// the 201 has been written.
func (h *RegistrationHandler) Register(c *gin.Context) {
	var req model.RegisterRequest
	if !bindJSON(c, &req) {
		return
	}

	summary, err := h.registrationService.Submit(c.Request.Context(), req)
	if err != nil {
		writeError(c, h.log, err)
		return
	}

	response.Success(c, http.StatusCreated, "Registration successful", summaryPayload(*summary))
	h.registrationService.ConfirmAsync(*summary)
}

// Count godoc
// GET /api/registration/count
func (h *RegistrationHandler) Count(c *gin.Context) {
	count, err := h.registrationService.Count(c.Request.Context())
	if err != nil {
		writeError(c, h.log, err)
		return
	}

	response.Success(c, http.StatusOK, "Registration count", gin.H{"count": count})
}

// CheckEmail godoc
// GET /api/registration/check/:email
// Reports whether an email is already registered, for inline form feedback.
func (h *RegistrationHandler) CheckEmail(c *gin.Context) {
	email := strings.TrimSpace(c.Param("email"))

	exists, err := h.registrationService.EmailExists(c.Request.Context(), email)
	if err != nil {
		writeError(c, h.log, err)
		return
	}

	response.Success(c, http.StatusOK, "Email checked", gin.H{"exists": exists})
}

// Branches godoc
// GET /api/registration/branches
// Lists the branches the form offers. Registration does not enforce them.
func (h *RegistrationHandler) Branches(c *gin.Context) {
	response.Success(c, http.StatusOK, "Branches", gin.H{"branches": model.Branches})
}

// summaryPayload spreads a registrant echo across the top level of the
// envelope.
func summaryPayload(s model.RegistrantSummary) gin.H {
	return gin.H{
		"id":         s.ID,
		"name":       s.Name,
		"email":      s.Email,
		"phone":      s.Phone,
		"rollNumber": s.RollNumber,
		"branch":     s.Branch,
	}
}
