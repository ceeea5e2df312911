package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type newCategoryRequest struct {
	Name string `json:"name" binding:"required"`
}

func (h *Handler) GetCategories(c *gin.Context) {
	categories, err := h.Ledger.GetCategories(c.Request.Context())
	if err != nil {
		h.writeError(c, "GetCategories", err)
		return
	}
	c.JSON(http.StatusOK, categories)
}

func (h *Handler) CreateCategory(c *gin.Context) {
	var req newCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.writeBindError(c, err)
		return
	}
	category, err := h.Ledger.CreateCategory(c.Request.Context(), req.Name)
	if err != nil {
		h.writeError(c, "CreateCategory", err)
		return
	}
	c.JSON(http.StatusCreated, category)
}

func (h *Handler) DeleteCategory(c *gin.Context) {
	if err := h.Ledger.DeleteCategory(c.Request.Context(), c.Param("id")); err != nil {
		h.writeError(c, "DeleteCategory", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": true})
}
