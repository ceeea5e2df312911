package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/quanlykho/kho_backend/models/reports"
)

// ExportExcel streams the full-ledger workbook.
func (h *Handler) ExportExcel(c *gin.Context) {
	f, err := reports.BuildWorkbook(c.Request.Context(), h.Ledger)
	if err != nil {
		h.writeError(c, "ExportExcel", err)
		return
	}
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", "attachment; filename=export.xlsx")
	if err := f.Write(c.Writer); err != nil {
		c.String(http.StatusInternalServerError, "Failed to write file")
	}
}
