package controllers

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"agoraun/internal/delivery/http/helpers"
	"agoraun/internal/delivery/http/middleware"
	"agoraun/internal/domain"
)

// CreateEventRequest is the request body for POST /events.
type CreateEventRequest struct {
	GroupID     string    `json:"group_id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	StartTime   time.Time `json:"start_time"`
	EndTime     time.Time `json:"end_time"`
	Location    string    `json:"location"`
	Capacity    int       `json:"capacity"`
}

// Validate implements Validator. Returns error messages for required and format rules.
func (c CreateEventRequest) Validate() []string {
	var errs []string
	if c.GroupID == "" {
		errs = append(errs, "group_id is required")
	} else if !uuidRegex.MatchString(c.GroupID) {
		errs = append(errs, "group_id must be a UUID")
	}
	if strings.TrimSpace(c.Name) == "" {
		errs = append(errs, "name is required")
	}
	if c.StartTime.IsZero() {
		errs = append(errs, "start_time is required")
	}
	if c.EndTime.IsZero() {
		errs = append(errs, "end_time is required")
	}
	if !c.StartTime.IsZero() && !c.EndTime.IsZero() && !c.EndTime.After(c.StartTime) {
		errs = append(errs, "end_time must be after start_time")
	}
	if c.Capacity <= 0 {
		errs = append(errs, "capacity must be positive")
	}
	return errs
}

// UpdateEventRequest is the request body for PATCH /events/{eventID}. All fields optional; omitted fields are unchanged.
type UpdateEventRequest struct {
	Name        *string    `json:"name"`
	Description *string    `json:"description"`
	StartTime   *time.Time `json:"start_time"`
	EndTime     *time.Time `json:"end_time"`
	Location    *string    `json:"location"`
	Capacity    *int       `json:"capacity"`
	Status      *string    `json:"status"`
}

// Validate implements Validator.
func (u UpdateEventRequest) Validate() []string {
	var errs []string
	if u.Name != nil && strings.TrimSpace(*u.Name) == "" {
		errs = append(errs, "name cannot be empty")
	}
	if u.Capacity != nil && *u.Capacity <= 0 {
		errs = append(errs, "capacity must be positive")
	}
	return errs
}

// RegisterParticipationRequest is the request body for POST /events/{eventID}/register.
type RegisterParticipationRequest struct {
	Comment string `json:"comment"`
}

// Validate implements Validator. Comment length is enforced by the service.
func (r RegisterParticipationRequest) Validate() []string {
	return nil
}

// EventSuccessResponse is the success response envelope for event endpoints returning a single event.
type EventSuccessResponse struct {
	Data  *domain.Event     `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// ListEventsSuccessResponse is the success response envelope for GET /events (200).
type ListEventsSuccessResponse struct {
	Data  []*domain.Event   `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// ParticipationSuccessResponse is the success response envelope for endpoints returning a single participation.
type ParticipationSuccessResponse struct {
	Data  *domain.Participation `json:"data"`
	Error *helpers.APIError     `json:"error"`
}

// ListParticipationsSuccessResponse is the success response envelope for GET /events/{eventID}/participations (200).
type ListParticipationsSuccessResponse struct {
	Data  []*domain.Participation `json:"data"`
	Error *helpers.APIError       `json:"error"`
}

type EventController struct {
	Logger         *slog.Logger
	Service        domain.EventService
	Participations domain.ParticipationService
}

func NewEventController(logger *slog.Logger, svc domain.EventService, participations domain.ParticipationService) *EventController {
	return &EventController{
		Logger:         logger,
		Service:        svc,
		Participations: participations,
	}
}

func (c *EventController) writeError(w http.ResponseWriter, r *http.Request, err error) {
	if helpers.WriteDomainError(w, err) {
		return
	}
	c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
	helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
}

// CreateEvent godoc
// @Summary Create an event
// @Description Creates a SCHEDULED event for a group with a mandatory positive seat capacity and end_time after start_time.
// @Tags events
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body CreateEventRequest true "Event data"
// @Success 201 {object} controllers.EventSuccessResponse "data contains the created event"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found (group)"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events [post]
func (c *EventController) CreateEvent(w http.ResponseWriter, r *http.Request) {
	var req CreateEventRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	event := domain.NewEvent(req.GroupID, req.Name, req.Description, req.Location,
		req.StartTime, req.EndTime, req.Capacity, time.Now())
	created, err := c.Service.Create(r.Context(), event)
	if err != nil {
		c.writeError(w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, created)
}

// GetEventByID godoc
// @Summary Get an event by ID
// @Description Returns a single event. Requires authentication.
// @Tags events
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID (UUID)"
// @Success 200 {object} controllers.EventSuccessResponse "data contains the event"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID} [get]
func (c *EventController) GetEventByID(w http.ResponseWriter, r *http.Request) {
	eventID := r.PathValue("eventID")
	if !uuidRegex.MatchString(eventID) {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "invalid eventID")
		return
	}
	event, err := c.Service.GetByID(r.Context(), eventID)
	if err != nil {
		c.writeError(w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, event)
}

// ListEvents godoc
// @Summary List events
// @Description Returns events filtered by group, status, and an optional lower bound on start_time (RFC 3339). Use page and page_size query params. Requires authentication.
// @Tags events
// @Produce json
// @Security BearerAuth
// @Param group_id query string false "Filter by group ID (UUID)"
// @Param status query string false "Filter by status (SCHEDULED, IN_PROGRESS, FINISHED, CANCELLED)"
// @Param from query string false "Only events starting at or after this RFC 3339 timestamp"
// @Param page query int false "Page number (default 1)"
// @Param page_size query int false "Page size (default 20, max 100)"
// @Success 200 {object} controllers.ListEventsSuccessResponse "data is an array of events"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events [get]
func (c *EventController) ListEvents(w http.ResponseWriter, r *http.Request) {
	filter := domain.EventFilter{
		GroupID:    strings.TrimSpace(r.URL.Query().Get("group_id")),
		Status:     strings.TrimSpace(r.URL.Query().Get("status")),
		Pagination: helpers.ParsePagination(r),
	}
	if s := r.URL.Query().Get("from"); s != "" {
		from, err := time.Parse(time.RFC3339, s)
		if err != nil {
			helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "from must be an RFC 3339 timestamp")
			return
		}
		filter.From = &from
	}
	events, err := c.Service.List(r.Context(), filter)
	if err != nil {
		c.writeError(w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, events)
}

// UpdateEvent godoc
// @Summary Update event details
// @Description Updates event fields. Optional fields omitted from body are unchanged. The resulting times and capacity must stay valid.
// @Tags events
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID (UUID)"
// @Param body body UpdateEventRequest true "Fields to update (all optional)"
// @Success 200 {object} controllers.EventSuccessResponse "data contains the updated event"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID} [patch]
func (c *EventController) UpdateEvent(w http.ResponseWriter, r *http.Request) {
	eventID := r.PathValue("eventID")
	if !uuidRegex.MatchString(eventID) {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "invalid eventID")
		return
	}
	var req UpdateEventRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	update := domain.EventUpdate{
		Name:        req.Name,
		Description: req.Description,
		StartTime:   req.StartTime,
		EndTime:     req.EndTime,
		Location:    req.Location,
		Capacity:    req.Capacity,
		Status:      req.Status,
	}
	event, err := c.Service.Update(r.Context(), eventID, update)
	if err != nil {
		c.writeError(w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, event)
}

// CancelEvent godoc
// @Summary Cancel an event
// @Description Moves the event to CANCELLED and notifies every registered participant by in-app notification and email.
// @Tags events
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID (UUID)"
// @Success 200 {object} controllers.EventSuccessResponse "data contains the cancelled event"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID}/cancel [post]
func (c *EventController) CancelEvent(w http.ResponseWriter, r *http.Request) {
	eventID := r.PathValue("eventID")
	if !uuidRegex.MatchString(eventID) {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "invalid eventID")
		return
	}
	event, err := c.Service.Cancel(r.Context(), eventID)
	if err != nil {
		c.writeError(w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, event)
}

// Register godoc
// @Summary Register for an event
// @Description Registers the authenticated user for the event in PENDING status. Registration is rejected when the user is already registered, when CONFIRMED participants already fill the capacity, or when the event is cancelled or finished. Returns 503 when the seat-allocation lock cannot be acquired in time.
// @Tags events
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID (UUID)"
// @Param body body RegisterParticipationRequest true "Optional comment (max 100 chars)"
// @Success 201 {object} controllers.ParticipationSuccessResponse "data contains the participation"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request (duplicate registration, capacity exceeded, comment too long, or event not open)"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden (inactive account)"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found (event)"
// @Failure 503 {object} helpers.APIResponse "error.code: busy (lock wait timed out, retry)"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID}/register [post]
func (c *EventController) Register(w http.ResponseWriter, r *http.Request) {
	eventID := r.PathValue("eventID")
	if !uuidRegex.MatchString(eventID) {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "invalid eventID")
		return
	}
	var req RegisterParticipationRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	participation, err := c.Participations.Register(r.Context(), eventID, userID, req.Comment)
	if err != nil {
		c.writeError(w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, participation)
}

// ListParticipations godoc
// @Summary List participations for an event
// @Description Returns the event's participations, optionally filtered by status (PENDING, CONFIRMED, CANCELLED). Requires authentication.
// @Tags events
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID (UUID)"
// @Param status query string false "Filter by participation status"
// @Success 200 {object} controllers.ListParticipationsSuccessResponse "data is an array of participations"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID}/participations [get]
func (c *EventController) ListParticipations(w http.ResponseWriter, r *http.Request) {
	eventID := r.PathValue("eventID")
	if !uuidRegex.MatchString(eventID) {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "invalid eventID")
		return
	}
	status := strings.TrimSpace(r.URL.Query().Get("status"))
	participations, err := c.Participations.ListByEvent(r.Context(), eventID, status)
	if err != nil {
		c.writeError(w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, participations)
}
