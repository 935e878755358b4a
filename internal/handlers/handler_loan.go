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

// loanHandler handles loan applications, decisions and the interest calculator.
type loanHandler struct {
	loanService      portssvc.LoanSvcFacade
	reportingService portssvc.ReportingService
}

func newLoanHandler(ls portssvc.LoanSvcFacade, rs portssvc.ReportingService) *loanHandler {
	return &loanHandler{loanService: ls, reportingService: rs}
}

// registerLoanRoutes registers routes related to loans.
func registerLoanRoutes(rg *gin.RouterGroup, loanService portssvc.LoanSvcFacade, reportingService portssvc.ReportingService) {
	h := newLoanHandler(loanService, reportingService)

	loans := rg.Group("/loans")
	{
		loans.POST("", h.applyLoan)
		loans.GET("", h.listLoans)
		loans.GET("/:loanID", h.getLoan)
		loans.POST("/:loanID/approve", h.approveLoan)
		loans.POST("/:loanID/reject", h.rejectLoan)
	}
	rg.GET("/interest", h.calculateInterest)
}

// applyLoan godoc
// @Summary Apply for a loan
// @Description Creates a PENDING application against one of the customer's accounts
// @Tags loans
// @Accept  json
// @Produce  json
// @Param   loan body dto.ApplyLoanRequest true "Loan application"
// @Success 201 {object} dto.LoanResponse
// @Failure 400 {object} dto.ErrorResponse "Validation error"
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Failure 404 {object} dto.ErrorResponse "Account not found"
// @Failure 409 {object} dto.ErrorResponse "Loan ID already used"
// @Security BearerAuth
// @Router /loans [post]
func (h *loanHandler) applyLoan(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.ApplyLoanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, logger, err)
		return
	}
	identity, ok := caller(c)
	if !ok {
		return
	}

	logger = logger.With(slog.String("loan_id", req.LoanID), slog.String("cif", req.CIF))
	loan, err := h.loanService.ApplyLoan(c.Request.Context(), identity, req)
	if err != nil {
		respondError(c, logger, err, "Failed to apply for loan")
		return
	}

	logger.Info("Loan application received")
	c.JSON(http.StatusCreated, dto.ToLoanResponse(loan))
}

// approveLoan godoc
// @Summary Approve a pending loan
// @Description Admin only. A loan can be decided once.
// @Tags loans
// @Produce  json
// @Param   loanID path string true "Loan ID"
// @Success 200 {object} dto.LoanResponse
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Failure 404 {object} dto.ErrorResponse "Loan not found"
// @Failure 409 {object} dto.ErrorResponse "Loan already decided"
// @Security BearerAuth
// @Router /loans/{loanID}/approve [post]
func (h *loanHandler) approveLoan(c *gin.Context) {
	h.decide(c, domain.LoanApproved)
}

// rejectLoan godoc
// @Summary Reject a pending loan
// @Description Admin only. A loan can be decided once.
// @Tags loans
// @Produce  json
// @Param   loanID path string true "Loan ID"
// @Success 200 {object} dto.LoanResponse
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Failure 404 {object} dto.ErrorResponse "Loan not found"
// @Failure 409 {object} dto.ErrorResponse "Loan already decided"
// @Security BearerAuth
// @Router /loans/{loanID}/reject [post]
func (h *loanHandler) rejectLoan(c *gin.Context) {
	h.decide(c, domain.LoanRejected)
}

func (h *loanHandler) decide(c *gin.Context, status domain.LoanStatus) {
	loanID := c.Param("loanID")
	logger := middleware.GetLoggerFromCtx(c.Request.Context()).With(slog.String("loan_id", loanID), slog.String("decision", string(status)))
	identity, ok := caller(c)
	if !ok {
		return
	}

	var (
		loan *domain.Loan
		err  error
	)
	if status == domain.LoanApproved {
		loan, err = h.loanService.ApproveLoan(c.Request.Context(), identity, loanID)
	} else {
		loan, err = h.loanService.RejectLoan(c.Request.Context(), identity, loanID)
	}
	if err != nil {
		respondError(c, logger, err, "Failed to decide loan")
		return
	}

	logger.Info("Loan decided")
	c.JSON(http.StatusOK, dto.ToLoanResponse(loan))
}

// getLoan godoc
// @Summary Get a loan
// @Tags loans
// @Produce  json
// @Param   loanID path string true "Loan ID"
// @Success 200 {object} dto.LoanResponse
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Failure 404 {object} dto.ErrorResponse "Loan not found"
// @Security BearerAuth
// @Router /loans/{loanID} [get]
func (h *loanHandler) getLoan(c *gin.Context) {
	loanID := c.Param("loanID")
	logger := middleware.GetLoggerFromCtx(c.Request.Context()).With(slog.String("loan_id", loanID))
	identity, ok := caller(c)
	if !ok {
		return
	}

	loan, err := h.loanService.GetLoan(c.Request.Context(), identity, loanID)
	if err != nil {
		respondError(c, logger, err, "Failed to retrieve loan")
		return
	}
	c.JSON(http.StatusOK, dto.ToLoanResponse(loan))
}

// listLoans godoc
// @Summary List loans
// @Description Customers only see their own applications.
// @Tags loans
// @Produce  json
// @Param   cif query string false "Customer CIF"
// @Param   accno query string false "Account number"
// @Param   status query string false "PENDING, APPROVED or REJECTED"
// @Success 200 {array} dto.LoanResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid status"
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Security BearerAuth
// @Router /loans [get]
func (h *loanHandler) listLoans(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var params dto.ListLoansParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondBindError(c, logger, err)
		return
	}
	identity, ok := caller(c)
	if !ok {
		return
	}

	loans, err := h.loanService.ListLoans(c.Request.Context(), identity, domain.LoanFilter{
		CIF:           params.CIF,
		AccountNumber: params.AccountNumber,
		Status:        params.Status,
	})
	if err != nil {
		respondError(c, logger, err, "Failed to list loans")
		return
	}
	c.JSON(http.StatusOK, dto.ToListLoanResponse(loans))
}

// calculateInterest godoc
// @Summary Simple interest calculator
// @Description interest = principal * rate/100 * months/12, rounded to the minor unit
// @Tags loans
// @Produce  json
// @Param   principal query number true "Principal"
// @Param   rate query number true "Annual rate in percent"
// @Param   months query int true "Tenure in months"
// @Success 200 {object} dto.InterestResponse
// @Failure 400 {object} dto.ErrorResponse "Validation error"
// @Security BearerAuth
// @Router /interest [get]
func (h *loanHandler) calculateInterest(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var q dto.InterestQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		respondBindError(c, logger, err)
		return
	}
	if _, ok := caller(c); !ok {
		return
	}

	interest, err := h.reportingService.CalculateInterest(c.Request.Context(), q.Principal, q.Rate, q.Months)
	if err != nil {
		respondError(c, logger, err, "Failed to calculate interest")
		return
	}
	c.JSON(http.StatusOK, dto.InterestResponse{
		Principal: q.Principal,
		Rate:      q.Rate,
		Months:    q.Months,
		Interest:  interest,
	})
}
