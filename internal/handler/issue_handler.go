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

type IssueHandler struct {
	svc service.IssueService
}

func NewIssueHandler(svc service.IssueService) *IssueHandler {
	return &IssueHandler{svc: svc}
}

// RegisterRoutes mounts the per-book collection routes on the books group and
// the id-addressed routes on their own group.
func (h *IssueHandler) RegisterRoutes(books, issues *gin.RouterGroup) {
	books.GET("/:book_id/issues", h.ListForBook)
	books.POST("/:book_id/issues", middleware.RequireAdmin(), h.Create)

	issues.PUT("/:issue_id", middleware.RequireAdmin(), h.Update)
	issues.DELETE("/:issue_id", middleware.RequireAdmin(), h.Delete)
}

func (h *IssueHandler) ListForBook(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	list, err := h.svc.ListForBook(ctx, c.Param("book_id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	resp := make([]dto.IssueResponse, 0, len(list))
	for _, i := range list {
		resp = append(resp, dto.FromIssueModel(i))
	}
	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (h *IssueHandler) Create(c *gin.Context) {
	var in dto.CreateIssueDTO
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	issue := in.ToModel(c.Param("book_id"))
	created, err := h.svc.Create(ctx, &issue)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "book not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, dto.FromIssueModel(*created))
}

func (h *IssueHandler) Update(c *gin.Context) {
	var in dto.UpdateIssueDTO
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	id := c.Param("issue_id")
	existing, err := h.svc.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "issue not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	in.ApplyTo(existing)
	updated, err := h.svc.Update(ctx, id, existing)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, dto.FromIssueModel(*updated))
}

func (h *IssueHandler) Delete(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	if err := h.svc.Delete(ctx, c.Param("issue_id")); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "issue not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "issue deleted"})
}
