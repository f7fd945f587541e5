package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"comicdash/internal/dto"
	"comicdash/internal/middleware"
	"comicdash/internal/repository"
	"comicdash/internal/service"

	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	svc service.UserService
}

func NewUserHandler(svc service.UserService) *UserHandler {
	return &UserHandler{svc: svc}
}

// RegisterRoutes mounts /profile for any staff member and the roster under
// /users for admins.
func (h *UserHandler) RegisterRoutes(rg, users *gin.RouterGroup) {
	rg.GET("/profile", h.Profile)

	users.GET("", middleware.RequireAdmin(), h.List)
	users.PATCH("/:user_id/subscription", middleware.RequireAdmin(), h.UpdateSubscription)
	users.DELETE("/:user_id", middleware.RequireAdmin(), h.Delete)
}

func (h *UserHandler) Profile(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	user, err := h.svc.Profile(ctx)
	if err != nil {
		if errors.Is(err, service.ErrNoProfile) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "no active session"})
			return
		}
		// session existed but the profile row is missing or unreadable
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, dto.FromUserModel(*user))
}

func (h *UserHandler) List(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	list, err := h.svc.List(ctx)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	resp := make([]dto.UserResponse, 0, len(list))
	for _, u := range list {
		resp = append(resp, dto.FromUserModel(u))
	}
	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (h *UserHandler) UpdateSubscription(c *gin.Context) {
	var in dto.UpdateSubscriptionDTO
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	user, err := h.svc.SetSubscribed(ctx, c.Param("user_id"), *in.Subscribed)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, dto.FromUserModel(*user))
}

func (h *UserHandler) Delete(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	if err := h.svc.Delete(ctx, c.Param("user_id")); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "user deleted"})
}
