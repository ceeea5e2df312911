package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/quanlykho/kho_backend/models"
)

func (h *Handler) GetPayments(c *gin.Context) {
	payments, err := h.Ledger.GetPayments(c.Request.Context())
	if err != nil {
		h.writeError(c, "GetPayments", err)
		return
	}
	c.JSON(http.StatusOK, payments)
}

func (h *Handler) AddOrderPayment(c *gin.Context) {
	var input models.NewPayment
	if err := c.ShouldBindJSON(&input); err != nil {
		h.writeBindError(c, err)
		return
	}
	payment, err := h.Ledger.AddOrderPayment(c.Request.Context(), c.Param("id"), &input)
	if err != nil {
		h.writeError(c, "AddOrderPayment", err)
		return
	}
	c.JSON(http.StatusCreated, payment)
}

func (h *Handler) AddPayablePayment(c *gin.Context) {
	var input models.NewPayment
	if err := c.ShouldBindJSON(&input); err != nil {
		h.writeBindError(c, err)
		return
	}
	payment, err := h.Ledger.AddPayablePayment(c.Request.Context(), c.Param("id"), &input)
	if err != nil {
		h.writeError(c, "AddPayablePayment", err)
		return
	}
	c.JSON(http.StatusCreated, payment)
}

func (h *Handler) GetReceivables(c *gin.Context) {
	balances, err := h.Ledger.GetReceivables(c.Request.Context())
	if err != nil {
		h.writeError(c, "GetReceivables", err)
		return
	}
	c.JSON(http.StatusOK, balances)
}

func (h *Handler) GetPayables(c *gin.Context) {
	balances, err := h.Ledger.GetPayables(c.Request.Context())
	if err != nil {
		h.writeError(c, "GetPayables", err)
		return
	}
	c.JSON(http.StatusOK, balances)
}
