package handler

import (
	"net/http"
	"strconv"

	errs "github.com/amirhossein-jamali/socialhub/internal/domain/error"
	coreport "github.com/amirhossein-jamali/socialhub/internal/domain/port/core"
	"github.com/amirhossein-jamali/socialhub/internal/domain/port/usecase"
	"github.com/amirhossein-jamali/socialhub/internal/infrastructure/adapter/api/dto"
	"github.com/gin-gonic/gin"
)

// WalletHandler handles balance, history and transfer requests
type WalletHandler struct {
	ledger usecase.LedgerUseCase
	logger coreport.Logger
}

// NewWalletHandler creates a new wallet handler instance
func NewWalletHandler(ledger usecase.LedgerUseCase, logger coreport.Logger) *WalletHandler {
	return &WalletHandler{ledger: ledger, logger: logger}
}

// GetBalance handles GET /wallet
func (h *WalletHandler) GetBalance(c *gin.Context) {
	a := actor(c)
	balance, err := h.ledger.GetBalance(c.Request.Context(), a.UserID)
	if err != nil {
		respondError(c, h.logger, "get_balance", err)
		return
	}

	c.JSON(http.StatusOK, dto.BalanceResponse{
		UserID:  a.UserID,
		Balance: dto.FormatAmount(balance),
	})
}

// History handles GET /wallet/transactions?limit=&userId=
func (h *WalletHandler) History(c *gin.Context) {
	a := actor(c)
	userID := a.UserID
	if raw := c.Query("userId"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			badRequest(c, errs.ErrInvalidUserID, "Invalid userId format")
			return
		}
		userID = id
	}
	limit, _ := strconv.Atoi(c.Query("limit"))

	txns, err := h.ledger.History(c.Request.Context(), a, userID, limit)
	if err != nil {
		respondError(c, h.logger, "history", err)
		return
	}
	c.JSON(http.StatusOK, dto.NewTransactionList(txns))
}

// Transfer handles POST /wallet/transfer
func (h *WalletHandler) Transfer(c *gin.Context) {
	var req dto.TransferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, errs.ErrInvalidRequest, "Invalid request format: "+err.Error())
		return
	}
	amount, err := dto.ParseAmount(req.Amount)
	if err != nil {
		respondError(c, h.logger, "transfer", err)
		return
	}

	result, err := h.ledger.Transfer(c.Request.Context(), actor(c), req.ToUserID, amount)
	if err != nil {
		respondError(c, h.logger, "transfer", err)
		return
	}

	h.logger.Info("Transfer completed successfully", map[string]any{
		"from_user_id": result.Debit.UserID,
		"to_user_id":   result.Credit.UserID,
		"amount":       req.Amount,
	})
	c.JSON(http.StatusOK, dto.TransferResponse{
		Debit:  dto.NewTransactionResponse(result.Debit),
		Credit: dto.NewTransactionResponse(result.Credit),
	})
}

// Credit handles POST /admin/users/:userId/credit
func (h *WalletHandler) Credit(c *gin.Context) {
	userID, ok := idParam(c, "userId", errs.ErrInvalidUserID)
	if !ok {
		return
	}
	var req dto.AmountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, errs.ErrInvalidRequest, "Invalid request format: "+err.Error())
		return
	}
	amount, err := dto.ParseAmount(req.Amount)
	if err != nil {
		respondError(c, h.logger, "admin_credit", err)
		return
	}

	txn, err := h.ledger.AdminCredit(c.Request.Context(), actor(c), userID, amount)
	if err != nil {
		respondError(c, h.logger, "admin_credit", err)
		return
	}
	c.JSON(http.StatusOK, dto.NewTransactionResponse(txn))
}
