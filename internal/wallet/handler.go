package wallet

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/yarkinbusiness/New-GymFlexItalia-folder-sub000/internal/api"
	"github.com/yarkinbusiness/New-GymFlexItalia-folder-sub000/internal/metrics"
	"github.com/yarkinbusiness/New-GymFlexItalia-folder-sub000/internal/persist"
)

type Handler struct {
	ledger *Ledger
}

func NewHandler(ledger *Ledger) *Handler {
	return &Handler{ledger: ledger}
}

type TopUpRequest struct {
	AmountCents    int64  `json:"amount_cents" binding:"required,gt=0"`
	IdempotencyKey string `json:"idempotency_key"`
}

// GetWallet godoc
// @Summary      Wallet balance
// @Tags         wallet
// @Security     BearerAuth
// @Produce      json
// @Success      200  {object}  Account
// @Router       /wallet [get]
func (h *Handler) GetWallet(c *gin.Context) {
	c.JSON(http.StatusOK, h.ledger.Balance())
}

// TopUp godoc
// @Summary      Top up wallet
// @Description  Credits the wallet with a deposit. Retries carrying the same
// @Description  idempotency key return the original transaction.
// @Tags         wallet
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        request  body      TopUpRequest  true  "Top-up amount"
// @Success      201      {object}  Transaction
// @Failure      400      {object}  api.ErrorResponse
// @Failure      500      {object}  api.ErrorResponse
// @Router       /wallet/topup [post]
func (h *Handler) TopUp(c *gin.Context) {
	var req TopUpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		return
	}

	key := req.IdempotencyKey
	if key == "" {
		key = uuid.NewString()
	}

	tx, err := h.ledger.Credit(c.Request.Context(), req.AmountCents, KindDeposit, key)
	if err != nil {
		var pe *persist.Error
		if errors.As(err, &pe) {
			c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "failed to persist wallet state"})
			return
		}
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		return
	}

	metrics.RecordWalletTopUp()
	c.JSON(http.StatusCreated, tx)
}

// ListTransactions godoc
// @Summary      Transaction history
// @Tags         wallet
// @Security     BearerAuth
// @Produce      json
// @Success      200  {array}  Transaction
// @Router       /wallet/transactions [get]
func (h *Handler) ListTransactions(c *gin.Context) {
	c.JSON(http.StatusOK, h.ledger.Transactions())
}

// Integrity godoc
// @Summary      Ledger integrity check
// @Description  Recomputes the balance from the transaction log and compares
// @Description  it to the cached balance.
// @Tags         wallet
// @Security     BearerAuth
// @Produce      json
// @Success      200  {object}  api.MessageResponse
// @Failure      500  {object}  api.ErrorResponse
// @Router       /wallet/integrity [get]
func (h *Handler) Integrity(c *gin.Context) {
	if err := h.ledger.ValidateIntegrity(); err != nil {
		metrics.RecordIntegrityFailure()
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: err.Error()})
		return
	}
	c.JSON(http.StatusOK, api.MessageResponse{Message: "ledger consistent"})
}
