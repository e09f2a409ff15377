package controllers

import (
	"log/slog"
	"net/http"
	"strings"

	"agoraun/internal/delivery/http/helpers"
	"agoraun/internal/delivery/http/middleware"
	"agoraun/internal/domain"
)

// SendNotificationRequest is the request body for POST /notifications.
type SendNotificationRequest struct {
	UserIDs []string `json:"user_ids"`
	Type    string   `json:"type"`
	Message string   `json:"message"`
}

// Validate implements Validator.
func (s SendNotificationRequest) Validate() []string {
	var errs []string
	if len(s.UserIDs) == 0 {
		errs = append(errs, "user_ids is required")
	}
	for _, id := range s.UserIDs {
		if !uuidRegex.MatchString(id) {
			errs = append(errs, "user_ids must contain only UUIDs")
			break
		}
	}
	if strings.TrimSpace(s.Message) == "" {
		errs = append(errs, "message is required")
	}
	return errs
}

// NotificationSuccessResponse is the success response envelope for POST /notifications (201).
type NotificationSuccessResponse struct {
	Data  *domain.Notification `json:"data"`
	Error *helpers.APIError    `json:"error"`
}

// ListMyNotificationsSuccessResponse is the success response envelope for GET /notifications/me (200).
type ListMyNotificationsSuccessResponse struct {
	Data  []*domain.UserNotification `json:"data"`
	Error *helpers.APIError          `json:"error"`
}

// MarkReadResponse is the data payload for POST /notifications/{notificationID}/read (200).
type MarkReadResponse struct {
	Status string `json:"status"`
}

// MarkReadSuccessResponse is the success response envelope for POST /notifications/{notificationID}/read (200).
type MarkReadSuccessResponse struct {
	Data  MarkReadResponse  `json:"data"`
	Error *helpers.APIError `json:"error"`
}

type NotificationController struct {
	Logger  *slog.Logger
	Service domain.NotificationService
}

func NewNotificationController(logger *slog.Logger, svc domain.NotificationService) *NotificationController {
	return &NotificationController{
		Logger:  logger,
		Service: svc,
	}
}

func (c *NotificationController) writeError(w http.ResponseWriter, r *http.Request, err error) {
	if helpers.WriteDomainError(w, err) {
		return
	}
	c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
	helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
}

// SendNotification godoc
// @Summary Send a notification to users
// @Description Creates a notification and fans it out unread to each recipient.
// @Tags notifications
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body SendNotificationRequest true "Recipients, type, and message"
// @Success 201 {object} controllers.NotificationSuccessResponse "data contains the notification"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found (unknown recipient)"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /notifications [post]
func (c *NotificationController) SendNotification(w http.ResponseWriter, r *http.Request) {
	var req SendNotificationRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	notification, err := c.Service.Send(r.Context(), req.UserIDs, req.Type, req.Message)
	if err != nil {
		c.writeError(w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, notification)
}

// ListMyNotifications godoc
// @Summary List the current user's notifications
// @Description Returns the authenticated user's notifications, newest first, with read flags.
// @Tags notifications
// @Produce json
// @Security BearerAuth
// @Success 200 {object} controllers.ListMyNotificationsSuccessResponse "data is an array of notifications"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /notifications/me [get]
func (c *NotificationController) ListMyNotifications(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	notifications, err := c.Service.ListMine(r.Context(), userID)
	if err != nil {
		c.writeError(w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, notifications)
}

// MarkRead godoc
// @Summary Mark a notification as read
// @Description Flips the read flag on the authenticated user's copy of the notification.
// @Tags notifications
// @Produce json
// @Security BearerAuth
// @Param notificationID path string true "Notification ID (UUID)"
// @Success 200 {object} controllers.MarkReadSuccessResponse "data contains status"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /notifications/{notificationID}/read [post]
func (c *NotificationController) MarkRead(w http.ResponseWriter, r *http.Request) {
	notificationID := r.PathValue("notificationID")
	if !uuidRegex.MatchString(notificationID) {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "invalid notificationID")
		return
	}
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	if err := c.Service.MarkRead(r.Context(), userID, notificationID); err != nil {
		c.writeError(w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, MarkReadResponse{Status: "read"})
}
