package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/quanlykho/kho_backend/models"
)

func (h *Handler) GetProducts(c *gin.Context) {
	products, err := h.Ledger.GetProducts(c.Request.Context())
	if err != nil {
		h.writeError(c, "GetProducts", err)
		return
	}
	c.JSON(http.StatusOK, products)
}

func (h *Handler) GetProduct(c *gin.Context) {
	product, err := h.Ledger.GetProduct(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.writeError(c, "GetProduct", err)
		return
	}
	c.JSON(http.StatusOK, product)
}

func (h *Handler) CreateProduct(c *gin.Context) {
	var input models.NewProduct
	if err := c.ShouldBindJSON(&input); err != nil {
		h.writeBindError(c, err)
		return
	}
	product, err := h.Ledger.CreateProduct(c.Request.Context(), &input)
	if err != nil {
		h.writeError(c, "CreateProduct", err)
		return
	}
	c.JSON(http.StatusCreated, product)
}

// CreateProductsBulk takes the spreadsheet-import rows in one request.
func (h *Handler) CreateProductsBulk(c *gin.Context) {
	var inputs []*models.NewProduct
	if err := c.ShouldBindJSON(&inputs); err != nil {
		h.writeBindError(c, err)
		return
	}
	count, err := h.Ledger.CreateProductsBulk(c.Request.Context(), inputs)
	if err != nil {
		h.writeError(c, "CreateProductsBulk", err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"imported": count})
}

func (h *Handler) UpdateProduct(c *gin.Context) {
	var input models.NewProduct
	if err := c.ShouldBindJSON(&input); err != nil {
		h.writeBindError(c, err)
		return
	}
	product, err := h.Ledger.UpdateProduct(c.Request.Context(), c.Param("id"), &input)
	if err != nil {
		h.writeError(c, "UpdateProduct", err)
		return
	}
	c.JSON(http.StatusOK, product)
}

func (h *Handler) DeleteProduct(c *gin.Context) {
	if err := h.Ledger.DeleteProduct(c.Request.Context(), c.Param("id")); err != nil {
		h.writeError(c, "DeleteProduct", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": true})
}
