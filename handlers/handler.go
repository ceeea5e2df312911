package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"

	"github.com/quanlykho/kho_backend/config"
	"github.com/quanlykho/kho_backend/models"
	"github.com/quanlykho/kho_backend/store"
	"github.com/quanlykho/kho_backend/utils"
)

// Handler binds the HTTP surface to the ledger.
type Handler struct {
	Ledger *models.Ledger
	Logger *logrus.Logger
}

func New(ledger *models.Ledger, logger *logrus.Logger) *Handler {
	return &Handler{Ledger: ledger, Logger: logger}
}

// writeError maps ledger errors onto HTTP statuses. Store outages surface as
// 503 with a generic connectivity message; the underlying URL and attempt
// detail only go to the log.
func (h *Handler) writeError(c *gin.Context, funcName string, err error) {
	switch {
	case errors.Is(err, models.ErrorProductNotFound),
		errors.Is(err, models.ErrorOrderNotFound),
		errors.Is(err, models.ErrorImportNotFound),
		errors.Is(err, models.ErrorCustomerNotFound),
		errors.Is(err, models.ErrorCategoryNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, models.ErrorEmptyCart),
		errors.Is(err, models.ErrorInvalidQuantity),
		errors.Is(err, models.ErrorInvalidAmount),
		errors.Is(err, models.ErrorInvalidStatus),
		errors.Is(err, models.ErrorInvalidMethod),
		errors.Is(err, models.ErrorInsufficientStock),
		errors.Is(err, models.ErrorImportHasNoCost):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, models.ErrorOrderNotCompleted),
		errors.Is(err, models.ErrorOverpayment):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, store.ErrorStoreUnavailable):
		config.LogError(h.Logger, "handlers", funcName, "store", nil, err)
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "data store is unreachable, please retry"})
	default:
		config.LogError(h.Logger, "handlers", funcName, "internal", nil, err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	}
}

func (h *Handler) writeBindError(c *gin.Context, err error) {
	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "validation failed", "fields": utils.ProcessValidationErrors(err)})
		return
	}
	c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
}
