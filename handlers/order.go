package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/quanlykho/kho_backend/models"
)

func (h *Handler) GetOrders(c *gin.Context) {
	orders, err := h.Ledger.GetOrders(c.Request.Context())
	if err != nil {
		h.writeError(c, "GetOrders", err)
		return
	}
	c.JSON(http.StatusOK, orders)
}

func (h *Handler) GetOrder(c *gin.Context) {
	order, err := h.Ledger.GetOrder(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.writeError(c, "GetOrder", err)
		return
	}
	c.JSON(http.StatusOK, order)
}

func (h *Handler) CreateOrder(c *gin.Context) {
	var input models.NewOrder
	if err := c.ShouldBindJSON(&input); err != nil {
		h.writeBindError(c, err)
		return
	}
	order, err := h.Ledger.CreateOrder(c.Request.Context(), &input)
	if err != nil {
		h.writeError(c, "CreateOrder", err)
		return
	}
	c.JSON(http.StatusCreated, order)
}

type orderStatusRequest struct {
	Status       models.OrderStatus `json:"status" binding:"required"`
	CancelReason string             `json:"cancelReason"`
}

// SetOrderStatus treats a terminal-state hit as success: the order is
// returned unchanged so a double-submitted completion stays idempotent from
// the operator's point of view.
func (h *Handler) SetOrderStatus(c *gin.Context) {
	var req orderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.writeBindError(c, err)
		return
	}
	order, err := h.Ledger.SetOrderStatus(c.Request.Context(), c.Param("id"), req.Status, req.CancelReason)
	if errors.Is(err, models.ErrorTerminalStatus) {
		c.JSON(http.StatusOK, order)
		return
	}
	if err != nil {
		h.writeError(c, "SetOrderStatus", err)
		return
	}
	c.JSON(http.StatusOK, order)
}

type orderNoteRequest struct {
	Note string `json:"note"`
}

func (h *Handler) SetOrderNote(c *gin.Context) {
	var req orderNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.writeBindError(c, err)
		return
	}
	order, err := h.Ledger.SetOrderNote(c.Request.Context(), c.Param("id"), req.Note)
	if err != nil {
		h.writeError(c, "SetOrderNote", err)
		return
	}
	c.JSON(http.StatusOK, order)
}

func (h *Handler) DeleteOrder(c *gin.Context) {
	if err := h.Ledger.DeleteOrder(c.Request.Context(), c.Param("id")); err != nil {
		h.writeError(c, "DeleteOrder", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": true})
}
