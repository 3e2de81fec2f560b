package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/tamkeenlabs/facility_management_app/internal/apperrors"
	portssvc "github.com/tamkeenlabs/facility_management_app/internal/core/ports/services"
	"github.com/tamkeenlabs/facility_management_app/internal/dto"
	"github.com/tamkeenlabs/facility_management_app/internal/middleware"
)

// loanHandler handles HTTP requests for loans and their payments.
type loanHandler struct {
	loanService    portssvc.LoanSvcFacade
	paymentService portssvc.PaymentSvcFacade
}

func newLoanHandler(ls portssvc.LoanSvcFacade, ps portssvc.PaymentSvcFacade) *loanHandler {
	return &loanHandler{
		loanService:    ls,
		paymentService: ps,
	}
}

// registerLoanRoutes registers loan and payment routes under a specific
// organization. Payments are recorded and listed against their loan;
// individual payment lookup is under /payments.
func registerLoanRoutes(rg *gin.RouterGroup, loanService portssvc.LoanSvcFacade, paymentService portssvc.PaymentSvcFacade) {
	h := newLoanHandler(loanService, paymentService)

	loans := rg.Group("/loans")
	{
		loans.POST("", h.createLoan)
		loans.GET("", h.listLoans)
		loans.GET("/:loan_id", h.getLoan)
		loans.POST("/:loan_id/revolve", h.revolveLoan)
		loans.POST("/:loan_id/settle", h.settleLoan)
		loans.POST("/:loan_id/cancel", h.cancelLoan)

		loans.POST("/:loan_id/payments", h.recordPayment)
		loans.GET("/:loan_id/payments", h.listPayments)
	}

	payments := rg.Group("/payments")
	{
		payments.GET("/:payment_id", h.getPayment)
	}
}

// createLoan godoc
// @Summary Draw a new loan
// @Description Draws a loan against a facility or one of its credit lines. Rejected when the draw would breach the facility or credit line limit.
// @Tags loans
// @Accept  json
// @Produce  json
// @Param   organization_id path string true "Organization ID"
// @Param   loan body dto.CreateLoanRequest true "Loan details"
// @Success 201 {object} dto.LoanResponse
// @Failure 400 {object} map[string]string "Invalid input or limit breached"
// @Failure 404 {object} map[string]string "Facility not found"
// @Failure 409 {object} map[string]string "Reference number already used"
// @Security BearerAuth
// @Router /organizations/{organization_id}/loans [post]
func (h *loanHandler) createLoan(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	organizationID := c.Param("organization_id")

	var req dto.CreateLoanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	loan, err := h.loanService.CreateLoan(c.Request.Context(), organizationID, req, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		if errors.Is(err, apperrors.ErrForbidden) {
			c.JSON(http.StatusForbidden, gin.H{"error": "Forbidden"})
			return
		}
		if errors.Is(err, apperrors.ErrDuplicate) {
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
			return
		}
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		logger.Error("Failed to create loan", slog.String("error", err.Error()), slog.String("organization_id", organizationID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create loan"})
		return
	}

	logger.Info("Loan created", slog.String("loan_id", loan.LoanID), slog.String("reference_number", loan.ReferenceNumber))
	c.JSON(http.StatusCreated, dto.ToLoanResponse(loan))
}

// listLoans godoc
// @Summary List loans
// @Description Retrieves loans ordered by due date, optionally filtered by status, with keyset pagination.
// @Tags loans
// @Produce  json
// @Param   organization_id path string true "Organization ID"
// @Param   status query string false "Loan status filter" Enums(ACTIVE, SETTLED, OVERDUE, CANCELLED)
// @Param   limit query int false "Page size (default 20)"
// @Param   nextToken query string false "Pagination token from a previous response"
// @Success 200 {object} dto.ListLoansResponse
// @Failure 400 {object} map[string]string "Invalid query parameters"
// @Security BearerAuth
// @Router /organizations/{organization_id}/loans [get]
func (h *loanHandler) listLoans(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	organizationID := c.Param("organization_id")

	var params dto.ListLoansParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	loans, nextToken, err := h.loanService.ListLoans(c.Request.Context(), organizationID, params, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrForbidden) {
			c.JSON(http.StatusForbidden, gin.H{"error": "Forbidden"})
			return
		}
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		logger.Error("Failed to list loans", slog.String("error", err.Error()), slog.String("organization_id", organizationID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list loans"})
		return
	}

	c.JSON(http.StatusOK, dto.ToListLoansResponse(loans, nextToken))
}

// getLoan godoc
// @Summary Get loan details
// @Description Retrieves a specific loan including its outstanding balance buckets.
// @Tags loans
// @Produce  json
// @Param   organization_id path string true "Organization ID"
// @Param   loan_id path string true "Loan ID"
// @Success 200 {object} dto.LoanResponse
// @Failure 404 {object} map[string]string "Loan not found"
// @Security BearerAuth
// @Router /organizations/{organization_id}/loans/{loan_id} [get]
func (h *loanHandler) getLoan(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	organizationID := c.Param("organization_id")
	loanID := c.Param("loan_id")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	loan, err := h.loanService.GetLoanByID(c.Request.Context(), organizationID, loanID, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Loan not found"})
			return
		}
		if errors.Is(err, apperrors.ErrForbidden) {
			c.JSON(http.StatusForbidden, gin.H{"error": "Forbidden"})
			return
		}
		logger.Error("Failed to get loan", slog.String("error", err.Error()), slog.String("loan_id", loanID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get loan"})
		return
	}

	c.JSON(http.StatusOK, dto.ToLoanResponse(loan))
}

// revolveLoan godoc
// @Summary Revolve a loan
// @Description Rolls an outstanding loan into a new period with fresh dates and SIBOR rate. Amount and reference number are preserved.
// @Tags loans
// @Accept  json
// @Produce  json
// @Param   organization_id path string true "Organization ID"
// @Param   loan_id path string true "Loan ID"
// @Param   revolve body dto.RevolveLoanRequest true "New period details"
// @Success 200 {object} dto.LoanResponse
// @Failure 400 {object} map[string]string "Loan is not outstanding"
// @Failure 404 {object} map[string]string "Loan not found"
// @Security BearerAuth
// @Router /organizations/{organization_id}/loans/{loan_id}/revolve [post]
func (h *loanHandler) revolveLoan(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	organizationID := c.Param("organization_id")
	loanID := c.Param("loan_id")

	var req dto.RevolveLoanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	loan, err := h.loanService.RevolveLoan(c.Request.Context(), organizationID, loanID, req, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Loan not found"})
			return
		}
		if errors.Is(err, apperrors.ErrForbidden) {
			c.JSON(http.StatusForbidden, gin.H{"error": "Forbidden"})
			return
		}
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		logger.Error("Failed to revolve loan", slog.String("error", err.Error()), slog.String("loan_id", loanID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to revolve loan"})
		return
	}

	logger.Info("Loan revolved", slog.String("loan_id", loanID))
	c.JSON(http.StatusOK, dto.ToLoanResponse(loan))
}

// settleLoan godoc
// @Summary Settle a loan
// @Description Terminates an outstanding loan as settled, recording the settlement amount and date.
// @Tags loans
// @Accept  json
// @Produce  json
// @Param   organization_id path string true "Organization ID"
// @Param   loan_id path string true "Loan ID"
// @Param   settlement body dto.SettleLoanRequest true "Settlement details"
// @Success 200 {object} dto.LoanResponse
// @Failure 400 {object} map[string]string "Loan is not outstanding"
// @Failure 404 {object} map[string]string "Loan not found"
// @Security BearerAuth
// @Router /organizations/{organization_id}/loans/{loan_id}/settle [post]
func (h *loanHandler) settleLoan(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	organizationID := c.Param("organization_id")
	loanID := c.Param("loan_id")

	var req dto.SettleLoanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	loan, err := h.loanService.SettleLoan(c.Request.Context(), organizationID, loanID, req, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Loan not found"})
			return
		}
		if errors.Is(err, apperrors.ErrForbidden) {
			c.JSON(http.StatusForbidden, gin.H{"error": "Forbidden"})
			return
		}
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		logger.Error("Failed to settle loan", slog.String("error", err.Error()), slog.String("loan_id", loanID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to settle loan"})
		return
	}

	logger.Info("Loan settled", slog.String("loan_id", loanID))
	c.JSON(http.StatusOK, dto.ToLoanResponse(loan))
}

// cancelLoan godoc
// @Summary Cancel a loan
// @Description Terminates a loan as cancelled. Cancelled loans never contribute to exposure.
// @Tags loans
// @Produce  json
// @Param   organization_id path string true "Organization ID"
// @Param   loan_id path string true "Loan ID"
// @Success 204 "No Content"
// @Failure 400 {object} map[string]string "Loan is already terminated"
// @Failure 404 {object} map[string]string "Loan not found"
// @Security BearerAuth
// @Router /organizations/{organization_id}/loans/{loan_id}/cancel [post]
func (h *loanHandler) cancelLoan(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	organizationID := c.Param("organization_id")
	loanID := c.Param("loan_id")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	err := h.loanService.CancelLoan(c.Request.Context(), organizationID, loanID, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Loan not found"})
			return
		}
		if errors.Is(err, apperrors.ErrForbidden) {
			c.JSON(http.StatusForbidden, gin.H{"error": "Forbidden"})
			return
		}
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		logger.Error("Failed to cancel loan", slog.String("error", err.Error()), slog.String("loan_id", loanID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to cancel loan"})
		return
	}

	logger.Info("Loan cancelled", slog.String("loan_id", loanID))
	c.Status(http.StatusNoContent)
}

// recordPayment godoc
// @Summary Record a payment
// @Description Allocates a payment across the loan's fee, interest, and principal buckets and applies it atomically.
// @Tags payments
// @Accept  json
// @Produce  json
// @Param   organization_id path string true "Organization ID"
// @Param   loan_id path string true "Loan ID"
// @Param   payment body dto.CreatePaymentRequest true "Payment details"
// @Success 201 {object} dto.PaymentResponse
// @Failure 400 {object} map[string]string "Invalid input or loan not outstanding"
// @Failure 404 {object} map[string]string "Loan not found"
// @Failure 422 {object} map[string]string "Overpayment or allocation mismatch"
// @Security BearerAuth
// @Router /organizations/{organization_id}/loans/{loan_id}/payments [post]
func (h *loanHandler) recordPayment(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	organizationID := c.Param("organization_id")
	loanID := c.Param("loan_id")

	var req dto.CreatePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	payment, err := h.paymentService.RecordPayment(c.Request.Context(), organizationID, loanID, req, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Loan not found"})
			return
		}
		if errors.Is(err, apperrors.ErrForbidden) {
			c.JSON(http.StatusForbidden, gin.H{"error": "Forbidden"})
			return
		}
		if errors.Is(err, apperrors.ErrOverpayment) || errors.Is(err, apperrors.ErrInvalidAllocation) {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
			return
		}
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		logger.Error("Failed to record payment", slog.String("error", err.Error()), slog.String("loan_id", loanID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to record payment"})
		return
	}

	logger.Info("Payment recorded", slog.String("payment_id", payment.PaymentID), slog.String("loan_id", loanID))
	c.JSON(http.StatusCreated, dto.ToPaymentResponse(payment))
}

// listPayments godoc
// @Summary List payments for a loan
// @Description Retrieves payments recorded against a loan, most recent first.
// @Tags payments
// @Produce  json
// @Param   organization_id path string true "Organization ID"
// @Param   loan_id path string true "Loan ID"
// @Success 200 {object} dto.ListPaymentsResponse
// @Failure 404 {object} map[string]string "Loan not found"
// @Security BearerAuth
// @Router /organizations/{organization_id}/loans/{loan_id}/payments [get]
func (h *loanHandler) listPayments(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	organizationID := c.Param("organization_id")
	loanID := c.Param("loan_id")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	payments, err := h.paymentService.ListPaymentsByLoan(c.Request.Context(), organizationID, loanID, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Loan not found"})
			return
		}
		if errors.Is(err, apperrors.ErrForbidden) {
			c.JSON(http.StatusForbidden, gin.H{"error": "Forbidden"})
			return
		}
		logger.Error("Failed to list payments", slog.String("error", err.Error()), slog.String("loan_id", loanID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list payments"})
		return
	}

	c.JSON(http.StatusOK, dto.ToListPaymentsResponse(payments))
}

// getPayment godoc
// @Summary Get payment details
// @Description Retrieves a specific payment including its allocation breakdown.
// @Tags payments
// @Produce  json
// @Param   organization_id path string true "Organization ID"
// @Param   payment_id path string true "Payment ID"
// @Success 200 {object} dto.PaymentResponse
// @Failure 404 {object} map[string]string "Payment not found"
// @Security BearerAuth
// @Router /organizations/{organization_id}/payments/{payment_id} [get]
func (h *loanHandler) getPayment(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	organizationID := c.Param("organization_id")
	paymentID := c.Param("payment_id")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	payment, err := h.paymentService.GetPaymentByID(c.Request.Context(), organizationID, paymentID, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Payment not found"})
			return
		}
		if errors.Is(err, apperrors.ErrForbidden) {
			c.JSON(http.StatusForbidden, gin.H{"error": "Forbidden"})
			return
		}
		logger.Error("Failed to get payment", slog.String("error", err.Error()), slog.String("payment_id", paymentID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get payment"})
		return
	}

	c.JSON(http.StatusOK, dto.ToPaymentResponse(payment))
}
