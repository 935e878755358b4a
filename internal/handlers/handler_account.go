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

// accountHandler handles HTTP requests related to accounts.
type accountHandler struct {
	accountService portssvc.AccountSvcFacade
}

// newAccountHandler creates a new accountHandler.
func newAccountHandler(as portssvc.AccountSvcFacade) *accountHandler {
	return &accountHandler{
		accountService: as,
	}
}

// registerAccountRoutes registers routes related to accounts.
func registerAccountRoutes(rg *gin.RouterGroup, accountService portssvc.AccountSvcFacade) {
	h := newAccountHandler(accountService)

	accounts := rg.Group("/accounts")
	{
		accounts.POST("", h.openAccount)
		accounts.GET("", h.listAccounts)
		accounts.GET("/:accno", h.getAccount)
	}
	rg.GET("/customers/:cif/accounts", h.listCustomerAccounts)
}

// openAccount godoc
// @Summary Open a new account
// @Description Opens a zero-balance account for a customer. Staff only.
// @Tags accounts
// @Accept  json
// @Produce  json
// @Param   account body dto.OpenAccountRequest true "Account details"
// @Success 201 {object} dto.AccountResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid input format or validation error"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Failure 409 {object} dto.ErrorResponse "Account number already exists"
// @Security BearerAuth
// @Router /accounts [post]
func (h *accountHandler) openAccount(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.OpenAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, logger, err)
		return
	}
	identity, ok := caller(c)
	if !ok {
		return
	}

	logger = logger.With(slog.String("accno", req.AccountNumber), slog.String("cif", req.CIF))
	logger.Info("Received request to open account", slog.String("account_type", string(req.AccountType)))

	account, err := h.accountService.OpenAccount(c.Request.Context(), identity, req)
	if err != nil {
		respondError(c, logger, err, "Failed to open account")
		return
	}

	logger.Info("Account opened successfully")
	c.JSON(http.StatusCreated, dto.ToAccountResponse(account))
}

// getAccount godoc
// @Summary Get an account
// @Description Retrieves an account and its current balance. Customers may only read their own accounts.
// @Tags accounts
// @Produce  json
// @Param   accno path string true "Account number"
// @Success 200 {object} dto.AccountResponse
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Failure 404 {object} dto.ErrorResponse "Account not found"
// @Security BearerAuth
// @Router /accounts/{accno} [get]
func (h *accountHandler) getAccount(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context()).With(slog.String("accno", c.Param("accno")))
	identity, ok := caller(c)
	if !ok {
		return
	}

	account, err := h.accountService.GetAccount(c.Request.Context(), identity, c.Param("accno"))
	if err != nil {
		respondError(c, logger, err, "Failed to retrieve account")
		return
	}
	c.JSON(http.StatusOK, dto.ToAccountResponse(account))
}

// listAccounts godoc
// @Summary List accounts
// @Description Lists all accounts page by page, or a single customer's accounts when cif is given.
// @Tags accounts
// @Produce  json
// @Param   cif query string false "Customer CIF"
// @Param   limit query int false "Limit number of results" default(20)
// @Param   offset query int false "Offset for pagination" default(0)
// @Success 200 {object} dto.ListAccountsResponse
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Security BearerAuth
// @Router /accounts [get]
func (h *accountHandler) listAccounts(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var params dto.ListAccountsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondBindError(c, logger, err)
		return
	}
	identity, ok := caller(c)
	if !ok {
		return
	}

	if params.CIF != "" {
		h.respondCustomerAccounts(c, identity, params.CIF)
		return
	}

	accounts, err := h.accountService.ListAllAccounts(c.Request.Context(), identity, params.Limit, params.Offset)
	if err != nil {
		respondError(c, logger, err, "Failed to list accounts")
		return
	}
	logger.Debug("Accounts listed", slog.Int("count", len(accounts)))
	c.JSON(http.StatusOK, dto.ListAccountsResponse{Accounts: dto.ToListAccountResponse(accounts)})
}

// listCustomerAccounts godoc
// @Summary List a customer's accounts
// @Tags accounts
// @Produce  json
// @Param   cif path string true "Customer CIF"
// @Success 200 {object} dto.ListAccountsResponse
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Security BearerAuth
// @Router /customers/{cif}/accounts [get]
func (h *accountHandler) listCustomerAccounts(c *gin.Context) {
	identity, ok := caller(c)
	if !ok {
		return
	}
	h.respondCustomerAccounts(c, identity, c.Param("cif"))
}

func (h *accountHandler) respondCustomerAccounts(c *gin.Context, identity domain.Identity, cif string) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context()).With(slog.String("cif", cif))
	accounts, err := h.accountService.ListAccountsByCustomer(c.Request.Context(), identity, cif)
	if err != nil {
		respondError(c, logger, err, "Failed to list customer accounts")
		return
	}
	c.JSON(http.StatusOK, dto.ListAccountsResponse{Accounts: dto.ToListAccountResponse(accounts)})
}
