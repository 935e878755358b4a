package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/bank_backoffice/internal/core/ports/services"
	"github.com/SscSPs/bank_backoffice/internal/dto"
	"github.com/SscSPs/bank_backoffice/internal/middleware"
	"github.com/gin-gonic/gin"
)

// reportingHandler handles HTTP requests for ledger reports and the audit log.
type reportingHandler struct {
	reportingService portssvc.ReportingService
	auditService     portssvc.AuditSvc
}

// newReportingHandler creates a new reportingHandler
func newReportingHandler(rs portssvc.ReportingService, as portssvc.AuditSvc) *reportingHandler {
	return &reportingHandler{
		reportingService: rs,
		auditService:     as,
	}
}

// registerReportingRoutes registers report and audit routes.
func registerReportingRoutes(rg *gin.RouterGroup, reportingService portssvc.ReportingService, auditService portssvc.AuditSvc) {
	h := newReportingHandler(reportingService, auditService)

	reportingGroup := rg.Group("/reports")
	{
		reportingGroup.GET("/summary", h.getSummary)
		reportingGroup.GET("/high-value", h.getHighValue)
		reportingGroup.GET("/deposit-totals", h.getDepositTotals)
		reportingGroup.GET("/reconcile", h.getReconcile)
	}
	rg.GET("/audit", h.listAuditLog)
}

// getSummary godoc
// @Summary Ledger dashboard totals
// @Description Account and loan counts and the total balance held. Staff only.
// @Tags reports
// @Produce json
// @Success 200 {object} domain.LedgerSummary
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Security BearerAuth
// @Router /reports/summary [get]
func (h *reportingHandler) getSummary(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	identity, ok := caller(c)
	if !ok {
		return
	}

	summary, err := h.reportingService.Summary(c.Request.Context(), identity)
	if err != nil {
		respondError(c, logger, err, "Failed to generate summary")
		return
	}
	c.JSON(http.StatusOK, summary)
}

// getHighValue godoc
// @Summary Accounts above a balance threshold
// @Description Omitting threshold applies the configured default. Staff only.
// @Tags reports
// @Produce json
// @Param threshold query number false "Balance threshold"
// @Success 200 {object} dto.HighValueResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid threshold"
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Security BearerAuth
// @Router /reports/high-value [get]
func (h *reportingHandler) getHighValue(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var params dto.HighValueParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondBindError(c, logger, err)
		return
	}
	identity, ok := caller(c)
	if !ok {
		return
	}

	accounts, threshold, err := h.reportingService.HighValueAccounts(c.Request.Context(), identity, params.Threshold)
	if err != nil {
		respondError(c, logger, err, "Failed to generate high value report")
		return
	}
	logger.Info("High value report generated", slog.String("threshold", threshold.String()), slog.Int("count", len(accounts)))
	c.JSON(http.StatusOK, dto.HighValueResponse{
		Threshold: threshold,
		Accounts:  dto.ToListAccountResponse(accounts),
	})
}

// getDepositTotals godoc
// @Summary Total deposits per account
// @Tags reports
// @Produce json
// @Success 200 {object} dto.DepositTotalsResponse
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Security BearerAuth
// @Router /reports/deposit-totals [get]
func (h *reportingHandler) getDepositTotals(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	identity, ok := caller(c)
	if !ok {
		return
	}

	rows, err := h.reportingService.DepositTotals(c.Request.Context(), identity)
	if err != nil {
		respondError(c, logger, err, "Failed to generate deposit totals")
		return
	}
	c.JSON(http.StatusOK, dto.DepositTotalsResponse{Rows: rows})
}

// getReconcile godoc
// @Summary Recompute balances from the journal
// @Description Lists accounts whose stored balance differs from the sum of their entries. Staff only.
// @Tags reports
// @Produce json
// @Success 200 {object} dto.ReconcileResponse
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Security BearerAuth
// @Router /reports/reconcile [get]
func (h *reportingHandler) getReconcile(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	identity, ok := caller(c)
	if !ok {
		return
	}

	mismatches, err := h.reportingService.Reconcile(c.Request.Context(), identity)
	if err != nil {
		respondError(c, logger, err, "Failed to reconcile")
		return
	}
	c.JSON(http.StatusOK, dto.ReconcileResponse{
		Consistent: len(mismatches) == 0,
		Mismatches: mismatches,
	})
}

// listAuditLog godoc
// @Summary List the audit log
// @Description Newest entries first. Admin only.
// @Tags audit
// @Produce json
// @Param limit query int false "Number of entries" default(20)
// @Success 200 {array} dto.AuditEntryResponse
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Security BearerAuth
// @Router /audit [get]
func (h *reportingHandler) listAuditLog(c *gin.Context) {
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

	entries, err := h.auditService.ListAuditLog(c.Request.Context(), identity, params.Limit)
	if err != nil {
		respondError(c, logger, err, "Failed to list audit log")
		return
	}
	c.JSON(http.StatusOK, dto.ToListAuditEntryResponse(entries))
}
