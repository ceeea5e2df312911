package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/quanlykho/kho_backend/models"
)

func (h *Handler) ImportStock(c *gin.Context) {
	var input models.NewStockImport
	if err := c.ShouldBindJSON(&input); err != nil {
		h.writeBindError(c, err)
		return
	}
	record, err := h.Ledger.ImportStock(c.Request.Context(), &input)
	if err != nil {
		h.writeError(c, "ImportStock", err)
		return
	}
	c.JSON(http.StatusCreated, record)
}

func (h *Handler) GetImports(c *gin.Context) {
	records, err := h.Ledger.GetImports(c.Request.Context())
	if err != nil {
		h.writeError(c, "GetImports", err)
		return
	}
	c.JSON(http.StatusOK, records)
}

func (h *Handler) GetExports(c *gin.Context) {
	records, err := h.Ledger.GetExports(c.Request.Context())
	if err != nil {
		h.writeError(c, "GetExports", err)
		return
	}
	c.JSON(http.StatusOK, records)
}

// GetReserved exposes the derived open-order reservations so the inventory
// screen can show available = stock - reserved.
func (h *Handler) GetReserved(c *gin.Context) {
	reserved, err := h.Ledger.ReservedQuantities(c.Request.Context())
	if err != nil {
		h.writeError(c, "GetReserved", err)
		return
	}
	c.JSON(http.StatusOK, reserved)
}
