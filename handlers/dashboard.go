package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (h *Handler) GetDashboardStats(c *gin.Context) {
	stats, err := h.Ledger.GetDashboardStats(c.Request.Context())
	if err != nil {
		h.writeError(c, "GetDashboardStats", err)
		return
	}
	c.JSON(http.StatusOK, stats)
}
