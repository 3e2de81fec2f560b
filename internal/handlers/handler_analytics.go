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

// analyticsHandler serves derived portfolio views. Everything here is
// read-only and recomputed per request from current loan and collateral state.
type analyticsHandler struct {
	analyticsService portssvc.AnalyticsSvcFacade
}

func newAnalyticsHandler(as portssvc.AnalyticsSvcFacade) *analyticsHandler {
	return &analyticsHandler{
		analyticsService: as,
	}
}

// registerAnalyticsRoutes registers analytics routes under a specific organization.
func registerAnalyticsRoutes(rg *gin.RouterGroup, analyticsService portssvc.AnalyticsSvcFacade) {
	h := newAnalyticsHandler(analyticsService)

	analytics := rg.Group("/analytics")
	{
		analytics.GET("/bank-exposures", h.getBankExposures)
		analytics.GET("/facility-availability", h.getFacilityAvailability)
		analytics.GET("/portfolio-summary", h.getPortfolioSummary)
		analytics.GET("/due-loans", h.getDueLoans)
	}
}

// getBankExposures godoc
// @Summary Per-bank exposure
// @Description Computes outstanding exposure, aggregate limit, and utilization for each bank.
// @Tags analytics
// @Produce  json
// @Param   organization_id path string true "Organization ID"
// @Success 200 {object} dto.BankExposuresResponse
// @Failure 403 {object} map[string]string "Forbidden"
// @Security BearerAuth
// @Router /organizations/{organization_id}/analytics/bank-exposures [get]
func (h *analyticsHandler) getBankExposures(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	organizationID := c.Param("organization_id")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	exposures, err := h.analyticsService.BankExposures(c.Request.Context(), organizationID, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrForbidden) {
			c.JSON(http.StatusForbidden, gin.H{"error": "Forbidden"})
			return
		}
		logger.Error("Failed to compute bank exposures", slog.String("error", err.Error()), slog.String("organization_id", organizationID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute bank exposures"})
		return
	}

	c.JSON(http.StatusOK, dto.BankExposuresResponse{Exposures: exposures})
}

// getFacilityAvailability godoc
// @Summary Facility availability
// @Description Computes remaining headroom on each facility after outstanding draws.
// @Tags analytics
// @Produce  json
// @Param   organization_id path string true "Organization ID"
// @Success 200 {object} dto.FacilityAvailabilityResponse
// @Failure 403 {object} map[string]string "Forbidden"
// @Security BearerAuth
// @Router /organizations/{organization_id}/analytics/facility-availability [get]
func (h *analyticsHandler) getFacilityAvailability(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	organizationID := c.Param("organization_id")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	facilities, err := h.analyticsService.FacilityAvailability(c.Request.Context(), organizationID, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrForbidden) {
			c.JSON(http.StatusForbidden, gin.H{"error": "Forbidden"})
			return
		}
		logger.Error("Failed to compute facility availability", slog.String("error", err.Error()), slog.String("organization_id", organizationID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute facility availability"})
		return
	}

	c.JSON(http.StatusOK, dto.FacilityAvailabilityResponse{Facilities: facilities})
}

// getPortfolioSummary godoc
// @Summary Portfolio summary
// @Description Computes organization-wide totals, collateral coverage, and loan-to-value.
// @Tags analytics
// @Produce  json
// @Param   organization_id path string true "Organization ID"
// @Success 200 {object} dto.PortfolioSummaryResponse
// @Failure 403 {object} map[string]string "Forbidden"
// @Security BearerAuth
// @Router /organizations/{organization_id}/analytics/portfolio-summary [get]
func (h *analyticsHandler) getPortfolioSummary(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	organizationID := c.Param("organization_id")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	summary, err := h.analyticsService.PortfolioSummary(c.Request.Context(), organizationID, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrForbidden) {
			c.JSON(http.StatusForbidden, gin.H{"error": "Forbidden"})
			return
		}
		logger.Error("Failed to compute portfolio summary", slog.String("error", err.Error()), slog.String("organization_id", organizationID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute portfolio summary"})
		return
	}

	c.JSON(http.StatusOK, dto.ToPortfolioSummaryResponse(summary))
}

// getDueLoans godoc
// @Summary Loans due soon
// @Description Lists outstanding loans due within the horizon, bucketed by urgency.
// @Tags analytics
// @Produce  json
// @Param   organization_id path string true "Organization ID"
// @Param   horizonDays query int false "Horizon in days (default 30)"
// @Success 200 {object} dto.DueLoansResponse
// @Failure 400 {object} map[string]string "Invalid horizon"
// @Failure 403 {object} map[string]string "Forbidden"
// @Security BearerAuth
// @Router /organizations/{organization_id}/analytics/due-loans [get]
func (h *analyticsHandler) getDueLoans(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	organizationID := c.Param("organization_id")

	var params dto.DueLoansParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	dueLoans, err := h.analyticsService.DueLoans(c.Request.Context(), organizationID, params.HorizonDays, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrForbidden) {
			c.JSON(http.StatusForbidden, gin.H{"error": "Forbidden"})
			return
		}
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		logger.Error("Failed to compute due loans", slog.String("error", err.Error()), slog.String("organization_id", organizationID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute due loans"})
		return
	}

	c.JSON(http.StatusOK, dto.ToDueLoansResponse(dueLoans))
}
