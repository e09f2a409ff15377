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

// CreateGroupRequest is the request body for POST /groups.
type CreateGroupRequest struct {
	Name         string `json:"name"`
	Category     string `json:"category"`
	ContactEmail string `json:"contact_email"`
	Description  string `json:"description"`
}

// Validate implements Validator.
func (c CreateGroupRequest) Validate() []string {
	var errs []string
	if strings.TrimSpace(c.Name) == "" {
		errs = append(errs, "name is required")
	}
	if c.ContactEmail != "" && !emailRegex.MatchString(strings.TrimSpace(c.ContactEmail)) {
		errs = append(errs, "contact_email must be a valid email address")
	}
	return errs
}

// UpdateGroupRequest is the request body for PATCH /groups/{groupID}. All fields optional; omitted fields are unchanged.
type UpdateGroupRequest struct {
	Name         *string `json:"name"`
	Category     *string `json:"category"`
	ContactEmail *string `json:"contact_email"`
	Description  *string `json:"description"`
}

// Validate implements Validator.
func (u UpdateGroupRequest) Validate() []string {
	var errs []string
	if u.Name != nil && strings.TrimSpace(*u.Name) == "" {
		errs = append(errs, "name cannot be empty")
	}
	if u.ContactEmail != nil && !emailRegex.MatchString(strings.TrimSpace(*u.ContactEmail)) {
		errs = append(errs, "contact_email must be a valid email address")
	}
	return errs
}

// RejectGroupRequest is the request body for POST /groups/{groupID}/reject.
type RejectGroupRequest struct {
	Reason string `json:"reason"`
}

// Validate implements Validator.
func (r RejectGroupRequest) Validate() []string {
	if strings.TrimSpace(r.Reason) == "" {
		return []string{"reason is required"}
	}
	return nil
}

// AddMemberRequest is the request body for POST /groups/{groupID}/members.
type AddMemberRequest struct {
	UserID string `json:"user_id"`
	Role   string `json:"role"`
}

// Validate implements Validator.
func (a AddMemberRequest) Validate() []string {
	var errs []string
	if a.UserID == "" {
		errs = append(errs, "user_id is required")
	} else if !uuidRegex.MatchString(a.UserID) {
		errs = append(errs, "user_id must be a UUID")
	}
	return errs
}

// GroupSuccessResponse is the success response envelope for group endpoints returning a single group.
type GroupSuccessResponse struct {
	Data  *domain.Group     `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// ListGroupsSuccessResponse is the success response envelope for GET /groups (200).
type ListGroupsSuccessResponse struct {
	Data  []*domain.Group   `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// MembershipSuccessResponse is the success response envelope for POST /groups/{groupID}/members (201).
type MembershipSuccessResponse struct {
	Data  *domain.Membership `json:"data"`
	Error *helpers.APIError  `json:"error"`
}

// ListMembersSuccessResponse is the success response envelope for GET /groups/{groupID}/members (200).
type ListMembersSuccessResponse struct {
	Data  []*domain.GroupMember `json:"data"`
	Error *helpers.APIError     `json:"error"`
}

// GroupStatusResponse is the data payload for group endpoints returning a bare status.
type GroupStatusResponse struct {
	Status string `json:"status"`
}

// GroupStatusSuccessResponse is the success response envelope for DELETE /groups/{groupID} and member removal.
type GroupStatusSuccessResponse struct {
	Data  GroupStatusResponse `json:"data"`
	Error *helpers.APIError   `json:"error"`
}

type GroupController struct {
	Logger      *slog.Logger
	Service     domain.GroupService
	Memberships domain.MembershipService
}

func NewGroupController(logger *slog.Logger, svc domain.GroupService, memberships domain.MembershipService) *GroupController {
	return &GroupController{
		Logger:      logger,
		Service:     svc,
		Memberships: memberships,
	}
}

func (c *GroupController) writeError(w http.ResponseWriter, r *http.Request, err error) {
	if helpers.WriteDomainError(w, err) {
		return
	}
	c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
	helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
}

// CreateGroup godoc
// @Summary Create a student group
// @Description Creates a group in PENDING status awaiting approval. The authenticated user becomes the group's first ADMIN member. Group names are unique.
// @Tags groups
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body CreateGroupRequest true "Group data"
// @Success 201 {object} controllers.GroupSuccessResponse "data contains the created group"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request (invalid fields, duplicate name, or group limit reached)"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /groups [post]
func (c *GroupController) CreateGroup(w http.ResponseWriter, r *http.Request) {
	var req CreateGroupRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	group := domain.NewGroup(req.Name, req.Category, req.ContactEmail, req.Description, userID, time.Now())
	created, err := c.Service.Create(r.Context(), group, userID)
	if err != nil {
		c.writeError(w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, created)
}

// GetGroupByID godoc
// @Summary Get a group by ID
// @Description Returns a single group. Requires authentication.
// @Tags groups
// @Produce json
// @Security BearerAuth
// @Param groupID path string true "Group ID (UUID)"
// @Success 200 {object} controllers.GroupSuccessResponse "data contains the group"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /groups/{groupID} [get]
func (c *GroupController) GetGroupByID(w http.ResponseWriter, r *http.Request) {
	groupID := r.PathValue("groupID")
	if !uuidRegex.MatchString(groupID) {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "invalid groupID")
		return
	}
	group, err := c.Service.GetByID(r.Context(), groupID)
	if err != nil {
		c.writeError(w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, group)
}

// ListGroups godoc
// @Summary List groups
// @Description Returns groups filtered by category, status, and an optional name search. Use page and page_size query params. Requires authentication.
// @Tags groups
// @Produce json
// @Security BearerAuth
// @Param category query string false "Filter by category"
// @Param status query string false "Filter by status (PENDING, APPROVED, REJECTED)"
// @Param search query string false "Filter by name substring (case-insensitive)"
// @Param page query int false "Page number (default 1)"
// @Param page_size query int false "Page size (default 20, max 100)"
// @Success 200 {object} controllers.ListGroupsSuccessResponse "data is an array of groups"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /groups [get]
func (c *GroupController) ListGroups(w http.ResponseWriter, r *http.Request) {
	filter := domain.GroupFilter{
		Category:   strings.TrimSpace(r.URL.Query().Get("category")),
		Status:     strings.TrimSpace(r.URL.Query().Get("status")),
		Search:     strings.TrimSpace(r.URL.Query().Get("search")),
		Pagination: helpers.ParsePagination(r),
	}
	groups, err := c.Service.List(r.Context(), filter)
	if err != nil {
		c.writeError(w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, groups)
}

// UpdateGroup godoc
// @Summary Update group details
// @Description Updates group name, category, contact email, and description. Optional fields omitted from body are unchanged. Requires authentication.
// @Tags groups
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param groupID path string true "Group ID (UUID)"
// @Param body body UpdateGroupRequest true "Fields to update (all optional)"
// @Success 200 {object} controllers.GroupSuccessResponse "data contains the updated group"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /groups/{groupID} [patch]
func (c *GroupController) UpdateGroup(w http.ResponseWriter, r *http.Request) {
	groupID := r.PathValue("groupID")
	if !uuidRegex.MatchString(groupID) {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "invalid groupID")
		return
	}
	var req UpdateGroupRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	update := domain.GroupUpdate{
		Name:         req.Name,
		Category:     req.Category,
		ContactEmail: req.ContactEmail,
		Description:  req.Description,
	}
	group, err := c.Service.Update(r.Context(), groupID, update)
	if err != nil {
		c.writeError(w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, group)
}

// ApproveGroup godoc
// @Summary Approve a pending group
// @Description Moves a PENDING group to APPROVED. Requires authentication.
// @Tags groups
// @Produce json
// @Security BearerAuth
// @Param groupID path string true "Group ID (UUID)"
// @Success 200 {object} controllers.GroupSuccessResponse "data contains the approved group"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /groups/{groupID}/approve [post]
func (c *GroupController) ApproveGroup(w http.ResponseWriter, r *http.Request) {
	groupID := r.PathValue("groupID")
	if !uuidRegex.MatchString(groupID) {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "invalid groupID")
		return
	}
	group, err := c.Service.Approve(r.Context(), groupID)
	if err != nil {
		c.writeError(w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, group)
}

// RejectGroup godoc
// @Summary Reject a pending group
// @Description Moves a PENDING group to REJECTED with a mandatory reason. Requires authentication.
// @Tags groups
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param groupID path string true "Group ID (UUID)"
// @Param body body RejectGroupRequest true "Rejection reason"
// @Success 200 {object} controllers.GroupSuccessResponse "data contains the rejected group"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /groups/{groupID}/reject [post]
func (c *GroupController) RejectGroup(w http.ResponseWriter, r *http.Request) {
	groupID := r.PathValue("groupID")
	if !uuidRegex.MatchString(groupID) {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "invalid groupID")
		return
	}
	var req RejectGroupRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	group, err := c.Service.Reject(r.Context(), groupID, req.Reason)
	if err != nil {
		c.writeError(w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, group)
}

// DeleteGroup godoc
// @Summary Delete a group
// @Description Deletes a group and its memberships. Requires authentication.
// @Tags groups
// @Produce json
// @Security BearerAuth
// @Param groupID path string true "Group ID (UUID)"
// @Success 200 {object} controllers.GroupStatusSuccessResponse "data contains status"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /groups/{groupID} [delete]
func (c *GroupController) DeleteGroup(w http.ResponseWriter, r *http.Request) {
	groupID := r.PathValue("groupID")
	if !uuidRegex.MatchString(groupID) {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "invalid groupID")
		return
	}
	if err := c.Service.Delete(r.Context(), groupID); err != nil {
		c.writeError(w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, GroupStatusResponse{Status: "deleted"})
}

// AddMember godoc
// @Summary Add a member to a group
// @Description Adds a user to the group with the given role (defaults to MEMBER). A user cannot join the same group twice and cannot exceed the per-user group limit.
// @Tags groups
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param groupID path string true "Group ID (UUID)"
// @Param body body AddMemberRequest true "User and role"
// @Success 201 {object} controllers.MembershipSuccessResponse "data contains the membership"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request (duplicate membership, unknown role, or group limit reached)"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found (group or user)"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /groups/{groupID}/members [post]
func (c *GroupController) AddMember(w http.ResponseWriter, r *http.Request) {
	groupID := r.PathValue("groupID")
	if !uuidRegex.MatchString(groupID) {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "invalid groupID")
		return
	}
	var req AddMemberRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	membership, err := c.Memberships.AddMember(r.Context(), groupID, req.UserID, req.Role)
	if err != nil {
		c.writeError(w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, membership)
}

// RemoveMember godoc
// @Summary Remove a member from a group
// @Description Removes the user's membership in the group. Requires authentication.
// @Tags groups
// @Produce json
// @Security BearerAuth
// @Param groupID path string true "Group ID (UUID)"
// @Param userID path string true "User ID (UUID)"
// @Success 200 {object} controllers.GroupStatusSuccessResponse "data contains status"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found (membership)"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /groups/{groupID}/members/{userID} [delete]
func (c *GroupController) RemoveMember(w http.ResponseWriter, r *http.Request) {
	groupID := r.PathValue("groupID")
	userID := r.PathValue("userID")
	if !uuidRegex.MatchString(groupID) || !uuidRegex.MatchString(userID) {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "invalid groupID or userID")
		return
	}
	if err := c.Memberships.RemoveMember(r.Context(), groupID, userID); err != nil {
		c.writeError(w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, GroupStatusResponse{Status: "removed"})
}

// ListMembers godoc
// @Summary List members of a group
// @Description Returns the group's members with their roles and public profile fields. Requires authentication.
// @Tags groups
// @Produce json
// @Security BearerAuth
// @Param groupID path string true "Group ID (UUID)"
// @Success 200 {object} controllers.ListMembersSuccessResponse "data is an array of members"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /groups/{groupID}/members [get]
func (c *GroupController) ListMembers(w http.ResponseWriter, r *http.Request) {
	groupID := r.PathValue("groupID")
	if !uuidRegex.MatchString(groupID) {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "invalid groupID")
		return
	}
	members, err := c.Memberships.ListMembers(r.Context(), groupID)
	if err != nil {
		c.writeError(w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, members)
}
