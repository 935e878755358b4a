package handlers

import (
	"log/slog"
	"net/http"

	"github.com/SscSPs/bank_backoffice/internal/core/domain"
	portssvc "github.com/SscSPs/bank_backoffice/internal/core/ports/services"
	"github.com/SscSPs/bank_backoffice/internal/dto"
	"github.com/SscSPs/bank_backoffice/internal/middleware"
	"github.com/gin-gonic/gin"
)

// ledgerHandler handles postings and journal reads.
type ledgerHandler struct {
	ledgerService portssvc.LedgerSvcFacade
}

func newLedgerHandler(ls portssvc.LedgerSvcFacade) *ledgerHandler {
	return &ledgerHandler{ledgerService: ls}
}

// registerLedgerRoutes registers posting and journal routes.
func registerLedgerRoutes(rg *gin.RouterGroup, ledgerService portssvc.LedgerSvcFacade) {
	h := newLedgerHandler(ledgerService)

	accounts := rg.Group("/accounts/:accno")
	{
		accounts.POST("/deposits", h.postDeposit)
		accounts.POST("/withdrawals", h.postWithdrawal)
		accounts.GET("/transactions", h.listTransactionsByAccount)
	}

	transactions := rg.Group("/transactions")
	{
		transactions.GET("", h.listRecentTransactions)
		transactions.GET("/:transactionID", h.getTransaction)
		transactions.POST("/:transactionID/reverse", h.reverseTransaction)
	}
}

// postDeposit godoc
// @Summary Deposit into an account
// @Description Credits the account and journals a DEPOSIT entry in one unit of work
// @Tags ledger
// @Accept  json
// @Produce  json
// @Param   accno path string true "Account number"
// @Param   entry body dto.PostEntryRequest true "Amount and optional checker"
// @Success 201 {object} dto.TransactionResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid amount"
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Failure 404 {object} dto.ErrorResponse "Account not found"
// @Failure 503 {object} dto.ErrorResponse "Account busy"
// @Security BearerAuth
// @Router /accounts/{accno}/deposits [post]
func (h *ledgerHandler) postDeposit(c *gin.Context) {
	h.post(c, domain.Deposit)
}

// postWithdrawal godoc
// @Summary Withdraw from an account
// @Description Debits the account and journals a WITHDRAW entry. The balance never goes negative.
// @Tags ledger
// @Accept  json
// @Produce  json
// @Param   accno path string true "Account number"
// @Param   entry body dto.PostEntryRequest true "Amount and optional checker"
// @Success 201 {object} dto.TransactionResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid amount"
// @Failure 404 {object} dto.ErrorResponse "Account not found"
// @Failure 422 {object} dto.ErrorResponse "Insufficient funds"
// @Failure 503 {object} dto.ErrorResponse "Account busy"
// @Security BearerAuth
// @Router /accounts/{accno}/withdrawals [post]
func (h *ledgerHandler) postWithdrawal(c *gin.Context) {
	h.post(c, domain.Withdraw)
}

func (h *ledgerHandler) post(c *gin.Context, kind domain.TransactionKind) {
	accno := c.Param("accno")
	logger := middleware.GetLoggerFromCtx(c.Request.Context()).With(slog.String("accno", accno), slog.String("kind", string(kind)))

	var req dto.PostEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, logger, err)
		return
	}
	identity, ok := caller(c)
	if !ok {
		return
	}

	var (
		txn *domain.Transaction
		err error
	)
	if kind == domain.Deposit {
		txn, err = h.ledgerService.PostDeposit(c.Request.Context(), identity, accno, req.Amount, req.CheckerID)
	} else {
		txn, err = h.ledgerService.PostWithdrawal(c.Request.Context(), identity, accno, req.Amount, req.CheckerID)
	}
	if err != nil {
		respondError(c, logger, err, "Failed to post "+string(kind))
		return
	}

	logger.Info("Entry posted", slog.String("transaction_id", txn.TransactionID))
	c.JSON(http.StatusCreated, dto.ToTransactionResponse(txn))
}

// reverseTransaction godoc
// @Summary Reverse a deposit or withdrawal
// @Description Posts the compensating entry for a committed entry. Transfer legs cannot be reversed. Staff only.
// @Tags ledger
// @Produce  json
// @Param   transactionID path string true "Transaction ID"
// @Success 201 {object} dto.TransactionResponse
// @Failure 400 {object} dto.ErrorResponse "Entry cannot be reversed"
// @Failure 404 {object} dto.ErrorResponse "Transaction not found"
// @Failure 409 {object} dto.ErrorResponse "Already reversed"
// @Failure 422 {object} dto.ErrorResponse "Insufficient funds"
// @Security BearerAuth
// @Router /transactions/{transactionID}/reverse [post]
func (h *ledgerHandler) reverseTransaction(c *gin.Context) {
	id := c.Param("transactionID")
	logger := middleware.GetLoggerFromCtx(c.Request.Context()).With(slog.String("transaction_id", id))
	identity, ok := caller(c)
	if !ok {
		return
	}

	reversal, err := h.ledgerService.ReverseTransaction(c.Request.Context(), identity, id)
	if err != nil {
		respondError(c, logger, err, "Failed to reverse transaction")
		return
	}

	logger.Info("Transaction reversed", slog.String("reversal_id", reversal.TransactionID))
	c.JSON(http.StatusCreated, dto.ToTransactionResponse(reversal))
}

// getTransaction godoc
// @Summary Get a journal entry
// @Tags ledger
// @Produce  json
// @Param   transactionID path string true "Transaction ID"
// @Success 200 {object} dto.TransactionResponse
// @Failure 404 {object} dto.ErrorResponse "Transaction not found"
// @Security BearerAuth
// @Router /transactions/{transactionID} [get]
func (h *ledgerHandler) getTransaction(c *gin.Context) {
	id := c.Param("transactionID")
	logger := middleware.GetLoggerFromCtx(c.Request.Context()).With(slog.String("transaction_id", id))
	identity, ok := caller(c)
	if !ok {
		return
	}

	txn, err := h.ledgerService.GetTransaction(c.Request.Context(), identity, id)
	if err != nil {
		respondError(c, logger, err, "Failed to retrieve transaction")
		return
	}
	c.JSON(http.StatusOK, dto.ToTransactionResponse(txn))
}

// listTransactionsByAccount godoc
// @Summary List an account's journal
// @Description Returns entries newest first. Pass nextToken from the previous page to continue.
// @Tags ledger
// @Produce  json
// @Param   accno path string true "Account number"
// @Param   limit query int false "Page size" default(20)
// @Param   nextToken query string false "Continuation token"
// @Success 200 {object} dto.ListTransactionsResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid token"
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Failure 404 {object} dto.ErrorResponse "Account not found"
// @Security BearerAuth
// @Router /accounts/{accno}/transactions [get]
func (h *ledgerHandler) listTransactionsByAccount(c *gin.Context) {
	accno := c.Param("accno")
	logger := middleware.GetLoggerFromCtx(c.Request.Context()).With(slog.String("accno", accno))

	var params dto.ListTransactionsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondBindError(c, logger, err)
		return
	}
	identity, ok := caller(c)
	if !ok {
		return
	}

	txns, next, err := h.ledgerService.ListTransactionsByAccount(c.Request.Context(), identity, accno, params.Limit, params.NextToken)
	if err != nil {
		respondError(c, logger, err, "Failed to list transactions")
		return
	}
	c.JSON(http.StatusOK, dto.ListTransactionsResponse{
		Transactions: dto.ToListTransactionResponse(txns),
		NextToken:    next,
	})
}

// listRecentTransactions godoc
// @Summary List the latest entries across all accounts
// @Description Staff only.
// @Tags ledger
// @Produce  json
// @Param   limit query int false "Number of entries" default(20)
// @Success 200 {object} dto.ListTransactionsResponse
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Security BearerAuth
// @Router /transactions [get]
func (h *ledgerHandler) listRecentTransactions(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var params dto.LimitParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondBindError(c, logger, err)
		return
	}
	identity, ok := caller(c)
	if !ok {
		return
	}

	txns, err := h.ledgerService.ListRecentTransactions(c.Request.Context(), identity, params.Limit)
	if err != nil {
		respondError(c, logger, err, "Failed to list recent transactions")
		return
	}
	c.JSON(http.StatusOK, dto.ListTransactionsResponse{Transactions: dto.ToListTransactionResponse(txns)})
}
