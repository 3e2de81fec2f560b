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

// bankHandler handles HTTP requests related to lending banks.
type bankHandler struct {
	bankService portssvc.BankSvcFacade
}

func newBankHandler(bs portssvc.BankSvcFacade) *bankHandler {
	return &bankHandler{
		bankService: bs,
	}
}

// registerBankRoutes registers bank routes under a specific organization.
func registerBankRoutes(rg *gin.RouterGroup, bankService portssvc.BankSvcFacade) {
	h := newBankHandler(bankService)

	banks := rg.Group("/banks")
	{
		banks.POST("", h.createBank)
		banks.GET("", h.listBanks)
		banks.GET("/:bank_id", h.getBank)
		banks.PUT("/:bank_id", h.updateBank)
		banks.DELETE("/:bank_id", h.deactivateBank)
	}
}

// createBank godoc
// @Summary Create a new bank
// @Description Registers a lending bank within the organization.
// @Tags banks
// @Accept  json
// @Produce  json
// @Param   organization_id path string true "Organization ID"
// @Param   bank body dto.CreateBankRequest true "Bank details"
// @Success 201 {object} dto.BankResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 409 {object} map[string]string "Bank already exists"
// @Security BearerAuth
// @Router /organizations/{organization_id}/banks [post]
func (h *bankHandler) createBank(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	organizationID := c.Param("organization_id")

	var req dto.CreateBankRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	bank, err := h.bankService.CreateBank(c.Request.Context(), organizationID, req, userID)
	if err != nil {
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
		logger.Error("Failed to create bank", slog.String("error", err.Error()), slog.String("organization_id", organizationID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create bank"})
		return
	}

	c.JSON(http.StatusCreated, dto.ToBankResponse(bank))
}

// listBanks godoc
// @Summary List banks
// @Description Retrieves all banks registered for the organization.
// @Tags banks
// @Produce  json
// @Param   organization_id path string true "Organization ID"
// @Success 200 {object} dto.ListBanksResponse
// @Failure 403 {object} map[string]string "Forbidden"
// @Security BearerAuth
// @Router /organizations/{organization_id}/banks [get]
func (h *bankHandler) listBanks(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	organizationID := c.Param("organization_id")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	banks, err := h.bankService.ListBanks(c.Request.Context(), organizationID, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrForbidden) {
			c.JSON(http.StatusForbidden, gin.H{"error": "Forbidden"})
			return
		}
		logger.Error("Failed to list banks", slog.String("error", err.Error()), slog.String("organization_id", organizationID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list banks"})
		return
	}

	c.JSON(http.StatusOK, dto.ToListBanksResponse(banks))
}

// getBank godoc
// @Summary Get bank details
// @Description Retrieves a specific bank by ID.
// @Tags banks
// @Produce  json
// @Param   organization_id path string true "Organization ID"
// @Param   bank_id path string true "Bank ID"
// @Success 200 {object} dto.BankResponse
// @Failure 404 {object} map[string]string "Bank not found"
// @Security BearerAuth
// @Router /organizations/{organization_id}/banks/{bank_id} [get]
func (h *bankHandler) getBank(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	organizationID := c.Param("organization_id")
	bankID := c.Param("bank_id")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	bank, err := h.bankService.GetBankByID(c.Request.Context(), organizationID, bankID, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Bank not found"})
			return
		}
		if errors.Is(err, apperrors.ErrForbidden) {
			c.JSON(http.StatusForbidden, gin.H{"error": "Forbidden"})
			return
		}
		logger.Error("Failed to get bank", slog.String("error", err.Error()), slog.String("bank_id", bankID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get bank"})
		return
	}

	c.JSON(http.StatusOK, dto.ToBankResponse(bank))
}

// updateBank godoc
// @Summary Update a bank
// @Description Updates a bank's details.
// @Tags banks
// @Accept  json
// @Produce  json
// @Param   organization_id path string true "Organization ID"
// @Param   bank_id path string true "Bank ID"
// @Param   bank body dto.UpdateBankRequest true "Fields to update"
// @Success 200 {object} dto.BankResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 404 {object} map[string]string "Bank not found"
// @Security BearerAuth
// @Router /organizations/{organization_id}/banks/{bank_id} [put]
func (h *bankHandler) updateBank(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	organizationID := c.Param("organization_id")
	bankID := c.Param("bank_id")

	var req dto.UpdateBankRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	bank, err := h.bankService.UpdateBank(c.Request.Context(), organizationID, bankID, req, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Bank not found"})
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
		logger.Error("Failed to update bank", slog.String("error", err.Error()), slog.String("bank_id", bankID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update bank"})
		return
	}

	c.JSON(http.StatusOK, dto.ToBankResponse(bank))
}

// deactivateBank godoc
// @Summary Deactivate a bank
// @Description Marks a bank as inactive. Fails while active facilities exist under it.
// @Tags banks
// @Produce  json
// @Param   organization_id path string true "Organization ID"
// @Param   bank_id path string true "Bank ID"
// @Success 204 "No Content"
// @Failure 400 {object} map[string]string "Bank has active facilities"
// @Failure 404 {object} map[string]string "Bank not found"
// @Security BearerAuth
// @Router /organizations/{organization_id}/banks/{bank_id} [delete]
func (h *bankHandler) deactivateBank(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	organizationID := c.Param("organization_id")
	bankID := c.Param("bank_id")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	err := h.bankService.DeactivateBank(c.Request.Context(), organizationID, bankID, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Bank not found"})
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
		logger.Error("Failed to deactivate bank", slog.String("error", err.Error()), slog.String("bank_id", bankID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to deactivate bank"})
		return
	}

	c.Status(http.StatusNoContent)
}
