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

type friendUsecaser interface {
	List(ctx context.Context, ownerID string) ([]*domain.Friend, error)
	Create(ctx context.Context, ownerID string, input usecase.FriendInput) (*domain.Friend, error)
	Update(ctx context.Context, ownerID, id string, input usecase.FriendInput) (*domain.Friend, error)
	Delete(ctx context.Context, ownerID, id string) error
}

type FriendHandler struct {
	friendUsecase friendUsecaser
	logger        *slog.Logger
}

func NewFriendHandler(friendUsecase friendUsecaser, logger *slog.Logger) *FriendHandler {
	return &FriendHandler{friendUsecase: friendUsecase, logger: logger.With("component", "friend_handler")}
}

type friendRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Company string `json:"company"`
	Notes   string `json:"notes"`
}

func (r friendRequest) input() usecase.FriendInput {
	return usecase.FriendInput{
		Name:    r.Name,
		Email:   r.Email,
		Phone:   r.Phone,
		Company: r.Company,
		Notes:   r.Notes,
	}
}

// friendResponse keeps the owner under "userId", which is what the web client reads.
type friendResponse struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	Company   string    `json:"company"`
	Notes     string    `json:"notes"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func newFriendResponse(f *domain.Friend) friendResponse {
	return friendResponse{
		ID:        f.ID,
		UserID:    f.OwnerID,
		Name:      f.Name,
		Email:     f.Email,
		Phone:     f.Phone,
		Company:   f.Company,
		Notes:     f.Notes,
		CreatedAt: f.CreatedAt,
		UpdatedAt: f.UpdatedAt,
	}
}

// GET /api/friends
func (h *FriendHandler) List(c *gin.Context) {
	friends, err := h.friendUsecase.List(c.Request.Context(), c.GetString(middleware.UserIDKey))
	if err != nil {
		respondError(c, h.logger, "list friends", err)
		return
	}

	resp := make([]friendResponse, 0, len(friends))
	for _, f := range friends {
		resp = append(resp, newFriendResponse(f))
	}
	c.JSON(http.StatusOK, resp)
}

// POST /api/friends
func (h *FriendHandler) Create(c *gin.Context) {
	var req friendRequest
	if !bindJSON(c, &req) {
		return
	}

	friend, err := h.friendUsecase.Create(c.Request.Context(), c.GetString(middleware.UserIDKey), req.input())
	metrics.FriendOperationsTotal.WithLabelValues("create", metrics.Outcome(err)).Inc()
	if err != nil {
		respondError(c, h.logger, "create friend", err)
		return
	}
	c.JSON(http.StatusCreated, newFriendResponse(friend))
}

// PUT /api/friends/:id
func (h *FriendHandler) Update(c *gin.Context) {
	var req friendRequest
	if !bindJSON(c, &req) {
		return
	}

	friendID := c.Param("id")
	friend, err := h.friendUsecase.Update(c.Request.Context(), c.GetString(middleware.UserIDKey), friendID, req.input())
	metrics.FriendOperationsTotal.WithLabelValues("update", metrics.Outcome(err)).Inc()
	if err != nil {
		respondError(c, h.logger, "update friend", err)
		return
	}
	c.JSON(http.StatusOK, newFriendResponse(friend))
}

// DELETE /api/friends/:id
func (h *FriendHandler) Delete(c *gin.Context) {
	friendID := c.Param("id")
	err := h.friendUsecase.Delete(c.Request.Context(), c.GetString(middleware.UserIDKey), friendID)
	metrics.FriendOperationsTotal.WithLabelValues("delete", metrics.Outcome(err)).Inc()
	if err != nil {
		respondError(c, h.logger, "delete friend", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": msgFriendDeleted})
}
