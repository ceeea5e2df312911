package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/quanlykho/kho_backend/models"
)

func (h *Handler) GetCustomers(c *gin.Context) {
	customers, err := h.Ledger.GetCustomers(c.Request.Context())
	if err != nil {
		h.writeError(c, "GetCustomers", err)
		return
	}
	c.JSON(http.StatusOK, customers)
}

func (h *Handler) CreateCustomer(c *gin.Context) {
	var input models.NewCustomer
	if err := c.ShouldBindJSON(&input); err != nil {
		h.writeBindError(c, err)
		return
	}
	customer, err := h.Ledger.CreateCustomer(c.Request.Context(), &input)
	if err != nil {
		h.writeError(c, "CreateCustomer", err)
		return
	}
	c.JSON(http.StatusCreated, customer)
}

func (h *Handler) UpdateCustomer(c *gin.Context) {
	var input models.NewCustomer
	if err := c.ShouldBindJSON(&input); err != nil {
		h.writeBindError(c, err)
		return
	}
	customer, err := h.Ledger.UpdateCustomer(c.Request.Context(), c.Param("id"), &input)
	if err != nil {
		h.writeError(c, "UpdateCustomer", err)
		return
	}
	c.JSON(http.StatusOK, customer)
}

func (h *Handler) DeleteCustomer(c *gin.Context) {
	if err := h.Ledger.DeleteCustomer(c.Request.Context(), c.Param("id")); err != nil {
		h.writeError(c, "DeleteCustomer", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": true})
}

func (h *Handler) GetCustomerOrders(c *gin.Context) {
	orders, err := h.Ledger.GetCustomerOrders(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.writeError(c, "GetCustomerOrders", err)
		return
	}
	c.JSON(http.StatusOK, orders)
}
