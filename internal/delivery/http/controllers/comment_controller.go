package controllers

import (
	"log/slog"
	"net/http"
	"strings"

	"agoraun/internal/delivery/http/helpers"
	"agoraun/internal/delivery/http/middleware"
	"agoraun/internal/domain"
)

// CreateCommentRequest is the request body for POST /comments.
type CreateCommentRequest struct {
	Message string `json:"message"`
}

// Validate implements Validator.
func (c CreateCommentRequest) Validate() []string {
	if strings.TrimSpace(c.Message) == "" {
		return []string{"message is required"}
	}
	return nil
}

// CommentSuccessResponse is the success response envelope for POST /comments (201).
type CommentSuccessResponse struct {
	Data  *domain.Comment   `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// ListCommentsSuccessResponse is the success response envelope for GET /comments (200).
type ListCommentsSuccessResponse struct {
	Data  []*domain.Comment `json:"data"`
	Error *helpers.APIError `json:"error"`
}

type CommentController struct {
	Logger  *slog.Logger
	Service domain.CommentService
}

func NewCommentController(logger *slog.Logger, svc domain.CommentService) *CommentController {
	return &CommentController{
		Logger:  logger,
		Service: svc,
	}
}

// CreateComment godoc
// @Summary Post a comment
// @Description Creates a comment for the authenticated user.
// @Tags comments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body CreateCommentRequest true "Comment message"
// @Success 201 {object} controllers.CommentSuccessResponse "data contains the created comment"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /comments [post]
func (c *CommentController) CreateComment(w http.ResponseWriter, r *http.Request) {
	var req CreateCommentRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	comment, err := c.Service.Create(r.Context(), userID, req.Message)
	if err != nil {
		if helpers.WriteDomainError(w, err) {
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, comment)
}

// ListComments godoc
// @Summary List comments
// @Description Returns comments, optionally filtered by status (PUBLISHED, PENDING, REJECTED). Requires authentication.
// @Tags comments
// @Produce json
// @Security BearerAuth
// @Param status query string false "Filter by status"
// @Success 200 {object} controllers.ListCommentsSuccessResponse "data is an array of comments"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /comments [get]
func (c *CommentController) ListComments(w http.ResponseWriter, r *http.Request) {
	status := strings.TrimSpace(r.URL.Query().Get("status"))
	comments, err := c.Service.List(r.Context(), status)
	if err != nil {
		if helpers.WriteDomainError(w, err) {
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, comments)
}
