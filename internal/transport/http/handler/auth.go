package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/ErlanBelekov/friendlist/internal/domain"
	"github.com/ErlanBelekov/friendlist/internal/metrics"
	"github.com/ErlanBelekov/friendlist/internal/transport/http/middleware"
	"github.com/ErlanBelekov/friendlist/internal/usecase"
	"github.com/gin-gonic/gin"
)

// authUsecaser is the subset of AuthUsecase the handler needs.
// Defined here (point of use) so tests can inject a fake.
type authUsecaser interface {
	Register(ctx context.Context, input usecase.RegisterInput) (*usecase.AuthResult, error)
	Login(ctx context.Context, input usecase.LoginInput) (*usecase.AuthResult, error)
	Profile(ctx context.Context, userID string) (*domain.User, error)
}

type AuthHandler struct {
	authUsecase authUsecaser
	logger      *slog.Logger
}

func NewAuthHandler(authUsecase authUsecaser, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{
		authUsecase: authUsecase,
		logger:      logger.With("component", "auth_handler"),
	}
}

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type userResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
}

type authResponse struct {
	Message string       `json:"message"`
	Token   string       `json:"token"`
	User    userResponse `json:"user"`
}

func newUserResponse(u *domain.User) userResponse {
	return userResponse{ID: u.ID, Name: u.Name, Email: u.Email, CreatedAt: u.CreatedAt}
}

// POST /api/auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	var req registerRequest
	if !bindJSON(c, &req) {
		return
	}

	res, err := h.authUsecase.Register(c.Request.Context(), usecase.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
	metrics.AuthEventsTotal.WithLabelValues("register", metrics.Outcome(err)).Inc()
	if err != nil {
		respondError(c, h.logger, "register", err)
		return
	}

	h.logger.InfoContext(c.Request.Context(), "user registered", "user_id", res.User.ID)
	c.JSON(http.StatusCreated, authResponse{
		Message: msgUserCreated,
		Token:   res.Token,
		User:    newUserResponse(res.User),
	})
}

// POST /api/auth/login
// Unknown email and wrong password get the same 400.
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if !bindJSON(c, &req) {
		return
	}

	res, err := h.authUsecase.Login(c.Request.Context(), usecase.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	})
	metrics.AuthEventsTotal.WithLabelValues("login", metrics.Outcome(err)).Inc()
	if err != nil {
		respondError(c, h.logger, "login", err)
		return
	}

	c.JSON(http.StatusOK, authResponse{
		Message: msgLoginSuccessful,
		Token:   res.Token,
		User:    newUserResponse(res.User),
	})
}

// GET /api/auth/me
func (h *AuthHandler) Me(c *gin.Context) {
	user, err := h.authUsecase.Profile(c.Request.Context(), c.GetString(middleware.UserIDKey))
	if err != nil {
		respondError(c, h.logger, "get profile", err)
		return
	}
	c.JSON(http.StatusOK, newUserResponse(user))
}
