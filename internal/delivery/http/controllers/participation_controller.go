package controllers

import (
	"log/slog"
	"net/http"

	"agoraun/internal/delivery/http/helpers"
	"agoraun/internal/delivery/http/middleware"
	"agoraun/internal/domain"
)

// ListMyParticipationsSuccessResponse is the success response envelope for GET /participations/me (200).
type ListMyParticipationsSuccessResponse struct {
	Data  []*domain.ParticipationWithEvent `json:"data"`
	Error *helpers.APIError                `json:"error"`
}

type ParticipationController struct {
	Logger  *slog.Logger
	Service domain.ParticipationService
}

func NewParticipationController(logger *slog.Logger, svc domain.ParticipationService) *ParticipationController {
	return &ParticipationController{
		Logger:  logger,
		Service: svc,
	}
}

func (c *ParticipationController) writeError(w http.ResponseWriter, r *http.Request, err error) {
	if helpers.WriteDomainError(w, err) {
		return
	}
	c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
	helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
}

// Confirm godoc
// @Summary Confirm a pending participation
// @Description Moves a PENDING participation to CONFIRMED. Capacity is re-checked under the event lock; a full event rejects the confirmation. CONFIRMED and CANCELLED are terminal for further confirms. Returns 503 when the lock cannot be acquired in time.
// @Tags participations
// @Produce json
// @Security BearerAuth
// @Param participationID path string true "Participation ID (UUID)"
// @Success 200 {object} controllers.ParticipationSuccessResponse "data contains the confirmed participation"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request (invalid transition or capacity exceeded)"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 503 {object} helpers.APIResponse "error.code: busy (lock wait timed out, retry)"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /participations/{participationID}/confirm [post]
func (c *ParticipationController) Confirm(w http.ResponseWriter, r *http.Request) {
	participationID := r.PathValue("participationID")
	if !uuidRegex.MatchString(participationID) {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "invalid participationID")
		return
	}
	participation, err := c.Service.Confirm(r.Context(), participationID)
	if err != nil {
		c.writeError(w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, participation)
}

// Cancel godoc
// @Summary Cancel a participation
// @Description Moves a PENDING or CONFIRMED participation to CANCELLED, freeing the seat. CANCELLED is terminal. Returns 503 when the lock cannot be acquired in time.
// @Tags participations
// @Produce json
// @Security BearerAuth
// @Param participationID path string true "Participation ID (UUID)"
// @Success 200 {object} controllers.ParticipationSuccessResponse "data contains the cancelled participation"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request (invalid transition)"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 503 {object} helpers.APIResponse "error.code: busy (lock wait timed out, retry)"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /participations/{participationID}/cancel [post]
func (c *ParticipationController) Cancel(w http.ResponseWriter, r *http.Request) {
	participationID := r.PathValue("participationID")
	if !uuidRegex.MatchString(participationID) {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "invalid participationID")
		return
	}
	participation, err := c.Service.Cancel(r.Context(), participationID)
	if err != nil {
		c.writeError(w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, participation)
}

// ListMyParticipations godoc
// @Summary List the current user's participations
// @Description Returns the authenticated user's participations together with their events.
// @Tags participations
// @Produce json
// @Security BearerAuth
// @Success 200 {object} controllers.ListMyParticipationsSuccessResponse "data is an array of participations with events"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /participations/me [get]
func (c *ParticipationController) ListMyParticipations(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	participations, err := c.Service.ListMyParticipations(r.Context(), userID)
	if err != nil {
		c.writeError(w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, participations)
}
