package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/nsubra/account-ledger/internal/apperrors"
	"github.com/nsubra/account-ledger/internal/core/domain"
	"github.com/nsubra/account-ledger/internal/core/services"
	"github.com/nsubra/account-ledger/internal/dto"
	"github.com/nsubra/account-ledger/internal/middleware"
)

type MovementHandler struct {
	ledgerService *services.LedgerService
}

func NewMovementHandler(ledgerService *services.LedgerService) *MovementHandler {
	return &MovementHandler{ledgerService: ledgerService}
}

// SubmitMovement godoc
// @Summary Apply a movement to an account
// @Description Applies a credit or debit to the account identified by the composite key, creating the account at the opening balance on first use
// @Tags movements
// @Accept  json
// @Produce  json
// @Param   movement body dto.SubmitMovementRequest true "Movement"
// @Success 200 {object} dto.AccountResponse
// @Failure 400 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Failure 503 {object} map[string]string
// @Router /movements [post]
func (h *MovementHandler) SubmitMovement(c *gin.Context) {
	var req dto.SubmitMovementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "movement rejected: " + err.Error()})
		return
	}

	movement, err := domain.NewMovement(req.AccountKey(), req.Amount, req.Direction, req.RequestID, req.Channel, time.Now().UTC())
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "movement rejected: " + err.Error()})
		return
	}

	account, err := h.ledgerService.ApplyWithRetry(c.Request.Context(), movement)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToAccountResponse(account))
}

func (h *MovementHandler) respondError(c *gin.Context, err error) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	switch {
	case errors.Is(err, apperrors.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": "movement rejected: " + err.Error()})
	case errors.Is(err, apperrors.ErrDuplicate):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrConflict):
		// Both retry exhaustion and a raw conflict: transient, caller may retry.
		logger.Warn("Movement not applied due to contention", slog.String("error", err.Error()))
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "temporarily unable to apply movement, retry later"})
	case errors.Is(err, apperrors.ErrStoreUnavailable):
		logger.Error("Store unavailable", slog.String("error", err.Error()))
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "temporarily unable to apply movement, retry later"})
	default:
		logger.Error("Failed to apply movement", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
