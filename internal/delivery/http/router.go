package http

import (
	"log/slog"
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger"

	"agoraun/internal/delivery/http/controllers"
	"agoraun/internal/delivery/http/middleware"
	"agoraun/internal/domain"
)

// Controllers bundles the controllers the router mounts.
type Controllers struct {
	Auth           *controllers.AuthController
	Users          *controllers.UserController
	Groups         *controllers.GroupController
	Events         *controllers.EventController
	Participations *controllers.ParticipationController
	Comments       *controllers.CommentController
	Notifications  *controllers.NotificationController
}

// NewRouter initializes the HTTP router with all application routes.
// Everything except /auth/* and /swagger/ requires a Bearer token.
func NewRouter(c Controllers, verifier domain.TokenVerifier, logger *slog.Logger) *http.ServeMux {
	mux := http.NewServeMux()
	auth := middleware.RequireAuth(verifier, logger)

	// Auth
	mux.HandleFunc("POST /auth/signup", c.Auth.SignUp)
	mux.HandleFunc("POST /auth/login", c.Auth.Login)

	// Users
	mux.HandleFunc("GET /users/me", auth(c.Users.GetMe))
	mux.HandleFunc("GET /users/{userID}", auth(c.Users.GetUserByID))
	mux.HandleFunc("GET /users", auth(c.Users.ListUsers))

	// Groups and memberships
	mux.HandleFunc("POST /groups", auth(c.Groups.CreateGroup))
	mux.HandleFunc("GET /groups", auth(c.Groups.ListGroups))
	mux.HandleFunc("GET /groups/{groupID}", auth(c.Groups.GetGroupByID))
	mux.HandleFunc("PATCH /groups/{groupID}", auth(c.Groups.UpdateGroup))
	mux.HandleFunc("DELETE /groups/{groupID}", auth(c.Groups.DeleteGroup))
	mux.HandleFunc("POST /groups/{groupID}/approve", auth(c.Groups.ApproveGroup))
	mux.HandleFunc("POST /groups/{groupID}/reject", auth(c.Groups.RejectGroup))
	mux.HandleFunc("POST /groups/{groupID}/members", auth(c.Groups.AddMember))
	mux.HandleFunc("GET /groups/{groupID}/members", auth(c.Groups.ListMembers))
	mux.HandleFunc("DELETE /groups/{groupID}/members/{userID}", auth(c.Groups.RemoveMember))

	// Events and registration
	mux.HandleFunc("POST /events", auth(c.Events.CreateEvent))
	mux.HandleFunc("GET /events", auth(c.Events.ListEvents))
	mux.HandleFunc("GET /events/{eventID}", auth(c.Events.GetEventByID))
	mux.HandleFunc("PATCH /events/{eventID}", auth(c.Events.UpdateEvent))
	mux.HandleFunc("POST /events/{eventID}/cancel", auth(c.Events.CancelEvent))
	mux.HandleFunc("POST /events/{eventID}/register", auth(c.Events.Register))
	mux.HandleFunc("GET /events/{eventID}/participations", auth(c.Events.ListParticipations))

	// Participation state machine
	mux.HandleFunc("POST /participations/{participationID}/confirm", auth(c.Participations.Confirm))
	mux.HandleFunc("POST /participations/{participationID}/cancel", auth(c.Participations.Cancel))
	mux.HandleFunc("GET /participations/me", auth(c.Participations.ListMyParticipations))

	// Comments
	mux.HandleFunc("POST /comments", auth(c.Comments.CreateComment))
	mux.HandleFunc("GET /comments", auth(c.Comments.ListComments))

	// Notifications
	mux.HandleFunc("POST /notifications", auth(c.Notifications.SendNotification))
	mux.HandleFunc("GET /notifications/me", auth(c.Notifications.ListMyNotifications))
	mux.HandleFunc("POST /notifications/{notificationID}/read", auth(c.Notifications.MarkRead))

	// Swagger
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	return mux
}
