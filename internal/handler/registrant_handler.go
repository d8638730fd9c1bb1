package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stemsi/codesprint-backend/internal/middleware"
	"github.com/stemsi/codesprint-backend/internal/model"
	"github.com/stemsi/codesprint-backend/internal/response"
	"github.com/stemsi/codesprint-backend/internal/service"
)

// RegistrantHandler handles admin-facing registrant management.
type RegistrantHandler struct {
	adminService *service.RegistrantAdminService
	log          zerolog.Logger
}

// NewRegistrantHandler creates a new RegistrantHandler.
func NewRegistrantHandler(adminService *service.RegistrantAdminService, log zerolog.Logger) *RegistrantHandler {
	return &RegistrantHandler{
		adminService: adminService,
		log:          log.With().Str("component", "registrant_handler").Logger(),
	}
}

// ListRegistrants godoc
// GET /api/admin/users
// Lists every registrant, newest first. No pagination.
func (h *RegistrantHandler) ListRegistrants(c *gin.Context) {
	registrants, err := h.adminService.List(c.Request.Context())
	if err != nil {
		writeError(c, h.log, err)
		return
	}

	response.Success(c, http.StatusOK, "Registrants", gin.H{
		"count": len(registrants),
		"users": registrants,
	})
}

// UpdateRegistrant godoc
// PUT /api/admin/users/:id
// Replaces all five mutable fields. Partial bodies fail validation.
func (h *RegistrantHandler) UpdateRegistrant(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req model.UpdateRegistrantRequest
	if !bindJSON(c, &req) {
		return
	}

	updated, err := h.adminService.Update(c.Request.Context(), id, req)
	if err != nil {
		writeError(c, h.log, err)
		return
	}

	h.audit(c, "update", id)
	payload := summaryPayload(updated.Summary())
	payload["createdAt"] = updated.CreatedAt
	response.Success(c, http.StatusOK, "Registrant updated", payload)
}

// DeleteRegistrant godoc
// DELETE /api/admin/users/:id
func (h *RegistrantHandler) DeleteRegistrant(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.adminService.Delete(c.Request.Context(), id); err != nil {
		writeError(c, h.log, err)
		return
	}

	h.audit(c, "delete", id)
	response.Success(c, http.StatusOK, "Registrant deleted", nil)
}

func (h *RegistrantHandler) audit(c *gin.Context, action string, id int) {
	event := h.log.Info().Str("action", action).Int("registrant_id", id)
	if claims := middleware.GetClaims(c); claims != nil {
		event = event.Str("admin", claims.Email)
	}
	event.Msg("Registrant changed")
}

func parseID(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return 0, false
	}
	return id, true
}
