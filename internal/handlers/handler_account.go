package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nsubra/account-ledger/internal/apperrors"
	"github.com/nsubra/account-ledger/internal/core/domain"
	"github.com/nsubra/account-ledger/internal/core/services"
	"github.com/nsubra/account-ledger/internal/dto"
)

type AccountHandler struct {
	ledgerService *services.LedgerService
}

func NewAccountHandler(ledgerService *services.LedgerService) *AccountHandler {
	return &AccountHandler{ledgerService: ledgerService}
}

// GetAccount godoc
// @Summary Get an account by its composite identity
// @Description Retrieves the account for the given account number, product number and currency code
// @Tags accounts
// @Produce  json
// @Param   accountNumber path string true "Account number"
// @Param   productNumber path string true "Product number"
// @Param   currencyCode path string true "Currency code"
// @Success 200 {object} dto.AccountResponse
// @Failure 404 {object} map[string]string
// @Router /accounts/{accountNumber}/{productNumber}/{currencyCode} [get]
func (h *AccountHandler) GetAccount(c *gin.Context) {
	key := domain.AccountKey{
		AccountNumber: c.Param("accountNumber"),
		ProductNumber: c.Param("productNumber"),
		CurrencyCode:  c.Param("currencyCode"),
	}

	account, err := h.ledgerService.GetAccount(c.Request.Context(), key)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "account not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, dto.ToAccountResponse(account))
}
