package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/bank_backoffice/internal/core/ports/services"
	"github.com/SscSPs/bank_backoffice/internal/dto"
	"github.com/SscSPs/bank_backoffice/internal/middleware"
	"github.com/gin-gonic/gin"
)

type transferHandler struct {
	transferService portssvc.TransferSvcFacade
}

func registerTransferRoutes(rg *gin.RouterGroup, transferService portssvc.TransferSvcFacade) {
	h := &transferHandler{transferService: transferService}

	rg.POST("/transfers", h.transfer)
	rg.GET("/transfers/:transferID", h.getTransfer)
	rg.GET("/accounts/:accno/transfers", h.listTransfersByAccount)
}

// transfer godoc
// @Summary Transfer between two accounts
// @Description Debits the source and credits the destination atomically. Customers may only transfer from their own accounts.
// @Tags transfers
// @Accept  json
// @Produce  json
// @Param   transfer body dto.TransferRequest true "Transfer details"
// @Success 201 {object} dto.TransferResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid amount or same account"
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Failure 404 {object} dto.ErrorResponse "Account not found"
// @Failure 422 {object} dto.ErrorResponse "Insufficient funds"
// @Failure 503 {object} dto.ErrorResponse "Account busy"
// @Security BearerAuth
// @Router /transfers [post]
func (h *transferHandler) transfer(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.TransferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, logger, err)
		return
	}
	identity, ok := caller(c)
	if !ok {
		return
	}

	logger = logger.With(slog.String("from_accno", req.FromAccount), slog.String("to_accno", req.ToAccount))
	transfer, err := h.transferService.Transfer(c.Request.Context(), identity, req.FromAccount, req.ToAccount, req.Amount)
	if err != nil {
		respondError(c, logger, err, "Failed to transfer")
		return
	}

	logger.Info("Transfer completed", slog.String("transfer_id", transfer.TransferID))
	c.JSON(http.StatusCreated, dto.ToTransferResponse(transfer))
}

// getTransfer godoc
// @Summary Get a transfer by id
// @Tags transfers
// @Produce  json
// @Param   transferID path string true "Transfer ID"
// @Success 200 {object} dto.TransferResponse
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Failure 404 {object} dto.ErrorResponse "Transfer not found"
// @Security BearerAuth
// @Router /transfers/{transferID} [get]
func (h *transferHandler) getTransfer(c *gin.Context) {
	transferID := c.Param("transferID")
	logger := middleware.GetLoggerFromCtx(c.Request.Context()).With(slog.String("transfer_id", transferID))
	identity, ok := caller(c)
	if !ok {
		return
	}

	transfer, err := h.transferService.GetTransfer(c.Request.Context(), identity, transferID)
	if err != nil {
		respondError(c, logger, err, "Failed to get transfer")
		return
	}
	c.JSON(http.StatusOK, dto.ToTransferResponse(transfer))
}

// listTransfersByAccount godoc
// @Summary List transfers touching an account
// @Tags transfers
// @Produce  json
// @Param   accno path string true "Account number"
// @Param   limit query int false "Number of transfers" default(20)
// @Success 200 {array} dto.TransferResponse
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Failure 404 {object} dto.ErrorResponse "Account not found"
// @Security BearerAuth
// @Router /accounts/{accno}/transfers [get]
func (h *transferHandler) listTransfersByAccount(c *gin.Context) {
	accno := c.Param("accno")
	logger := middleware.GetLoggerFromCtx(c.Request.Context()).With(slog.String("accno", accno))
	var params dto.LimitParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondBindError(c, logger, err)
		return
	}
	identity, ok := caller(c)
	if !ok {
		return
	}

	transfers, err := h.transferService.ListTransfersByAccount(c.Request.Context(), identity, accno, params.Limit)
	if err != nil {
		respondError(c, logger, err, "Failed to list transfers")
		return
	}
	c.JSON(http.StatusOK, dto.ToListTransferResponse(transfers))
}
