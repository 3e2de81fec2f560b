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

// facilityHandler handles HTTP requests for credit facilities and their lines.
type facilityHandler struct {
	facilityService portssvc.FacilitySvcFacade
}

func newFacilityHandler(fs portssvc.FacilitySvcFacade) *facilityHandler {
	return &facilityHandler{
		facilityService: fs,
	}
}

// registerFacilityRoutes registers facility and credit line routes under a
// specific organization. Credit line creation and listing are nested under
// the parent facility; deactivation addresses the line directly.
func registerFacilityRoutes(rg *gin.RouterGroup, facilityService portssvc.FacilitySvcFacade) {
	h := newFacilityHandler(facilityService)

	facilities := rg.Group("/facilities")
	{
		facilities.POST("", h.createFacility)
		facilities.GET("", h.listFacilities)
		facilities.GET("/:facility_id", h.getFacility)
		facilities.PUT("/:facility_id", h.updateFacility)
		facilities.DELETE("/:facility_id", h.deactivateFacility)

		facilities.POST("/:facility_id/credit-lines", h.createCreditLine)
		facilities.GET("/:facility_id/credit-lines", h.listCreditLines)
	}

	creditLines := rg.Group("/credit-lines")
	{
		creditLines.DELETE("/:credit_line_id", h.deactivateCreditLine)
	}
}

// createFacility godoc
// @Summary Create a credit facility
// @Description Opens a new credit facility under a bank.
// @Tags facilities
// @Accept  json
// @Produce  json
// @Param   organization_id path string true "Organization ID"
// @Param   facility body dto.CreateFacilityRequest true "Facility details"
// @Success 201 {object} dto.FacilityResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 404 {object} map[string]string "Bank not found"
// @Security BearerAuth
// @Router /organizations/{organization_id}/facilities [post]
func (h *facilityHandler) createFacility(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	organizationID := c.Param("organization_id")

	var req dto.CreateFacilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	facility, err := h.facilityService.CreateFacility(c.Request.Context(), organizationID, req, userID)
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
		logger.Error("Failed to create facility", slog.String("error", err.Error()), slog.String("organization_id", organizationID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create facility"})
		return
	}

	c.JSON(http.StatusCreated, dto.ToFacilityResponse(facility))
}

// listFacilities godoc
// @Summary List facilities
// @Description Retrieves all credit facilities for the organization.
// @Tags facilities
// @Produce  json
// @Param   organization_id path string true "Organization ID"
// @Success 200 {object} dto.ListFacilitiesResponse
// @Failure 403 {object} map[string]string "Forbidden"
// @Security BearerAuth
// @Router /organizations/{organization_id}/facilities [get]
func (h *facilityHandler) listFacilities(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	organizationID := c.Param("organization_id")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	facilities, err := h.facilityService.ListFacilities(c.Request.Context(), organizationID, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrForbidden) {
			c.JSON(http.StatusForbidden, gin.H{"error": "Forbidden"})
			return
		}
		logger.Error("Failed to list facilities", slog.String("error", err.Error()), slog.String("organization_id", organizationID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list facilities"})
		return
	}

	c.JSON(http.StatusOK, dto.ToListFacilitiesResponse(facilities))
}

// getFacility godoc
// @Summary Get facility details
// @Description Retrieves a specific credit facility by ID.
// @Tags facilities
// @Produce  json
// @Param   organization_id path string true "Organization ID"
// @Param   facility_id path string true "Facility ID"
// @Success 200 {object} dto.FacilityResponse
// @Failure 404 {object} map[string]string "Facility not found"
// @Security BearerAuth
// @Router /organizations/{organization_id}/facilities/{facility_id} [get]
func (h *facilityHandler) getFacility(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	organizationID := c.Param("organization_id")
	facilityID := c.Param("facility_id")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	facility, err := h.facilityService.GetFacilityByID(c.Request.Context(), organizationID, facilityID, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Facility not found"})
			return
		}
		if errors.Is(err, apperrors.ErrForbidden) {
			c.JSON(http.StatusForbidden, gin.H{"error": "Forbidden"})
			return
		}
		logger.Error("Failed to get facility", slog.String("error", err.Error()), slog.String("facility_id", facilityID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get facility"})
		return
	}

	c.JSON(http.StatusOK, dto.ToFacilityResponse(facility))
}

// updateFacility godoc
// @Summary Update a facility
// @Description Updates a facility's type, limits, or review dates.
// @Tags facilities
// @Accept  json
// @Produce  json
// @Param   organization_id path string true "Organization ID"
// @Param   facility_id path string true "Facility ID"
// @Param   facility body dto.UpdateFacilityRequest true "Fields to update"
// @Success 200 {object} dto.FacilityResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 404 {object} map[string]string "Facility not found"
// @Security BearerAuth
// @Router /organizations/{organization_id}/facilities/{facility_id} [put]
func (h *facilityHandler) updateFacility(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	organizationID := c.Param("organization_id")
	facilityID := c.Param("facility_id")

	var req dto.UpdateFacilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	facility, err := h.facilityService.UpdateFacility(c.Request.Context(), organizationID, facilityID, req, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Facility not found"})
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
		logger.Error("Failed to update facility", slog.String("error", err.Error()), slog.String("facility_id", facilityID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update facility"})
		return
	}

	c.JSON(http.StatusOK, dto.ToFacilityResponse(facility))
}

// deactivateFacility godoc
// @Summary Deactivate a facility
// @Description Marks a facility as inactive. Fails while outstanding loans exist against it.
// @Tags facilities
// @Produce  json
// @Param   organization_id path string true "Organization ID"
// @Param   facility_id path string true "Facility ID"
// @Success 204 "No Content"
// @Failure 400 {object} map[string]string "Facility has outstanding loans"
// @Failure 404 {object} map[string]string "Facility not found"
// @Security BearerAuth
// @Router /organizations/{organization_id}/facilities/{facility_id} [delete]
func (h *facilityHandler) deactivateFacility(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	organizationID := c.Param("organization_id")
	facilityID := c.Param("facility_id")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	err := h.facilityService.DeactivateFacility(c.Request.Context(), organizationID, facilityID, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Facility not found"})
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
		logger.Error("Failed to deactivate facility", slog.String("error", err.Error()), slog.String("facility_id", facilityID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to deactivate facility"})
		return
	}

	c.Status(http.StatusNoContent)
}

// createCreditLine godoc
// @Summary Create a credit line
// @Description Carves a sub-limit out of a facility. Sub-limit totals may not exceed the facility limit.
// @Tags facilities
// @Accept  json
// @Produce  json
// @Param   organization_id path string true "Organization ID"
// @Param   facility_id path string true "Facility ID"
// @Param   credit_line body dto.CreateCreditLineRequest true "Credit line details"
// @Success 201 {object} dto.CreditLineResponse
// @Failure 400 {object} map[string]string "Sub-limits would exceed facility limit"
// @Failure 404 {object} map[string]string "Facility not found"
// @Security BearerAuth
// @Router /organizations/{organization_id}/facilities/{facility_id}/credit-lines [post]
func (h *facilityHandler) createCreditLine(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	organizationID := c.Param("organization_id")
	facilityID := c.Param("facility_id")

	var req dto.CreateCreditLineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	creditLine, err := h.facilityService.CreateCreditLine(c.Request.Context(), organizationID, facilityID, req, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Facility not found"})
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
		logger.Error("Failed to create credit line", slog.String("error", err.Error()), slog.String("facility_id", facilityID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create credit line"})
		return
	}

	c.JSON(http.StatusCreated, dto.ToCreditLineResponse(creditLine))
}

// listCreditLines godoc
// @Summary List credit lines
// @Description Retrieves the credit lines carved out of a facility.
// @Tags facilities
// @Produce  json
// @Param   organization_id path string true "Organization ID"
// @Param   facility_id path string true "Facility ID"
// @Success 200 {object} dto.ListCreditLinesResponse
// @Failure 404 {object} map[string]string "Facility not found"
// @Security BearerAuth
// @Router /organizations/{organization_id}/facilities/{facility_id}/credit-lines [get]
func (h *facilityHandler) listCreditLines(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	organizationID := c.Param("organization_id")
	facilityID := c.Param("facility_id")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	creditLines, err := h.facilityService.ListCreditLines(c.Request.Context(), organizationID, facilityID, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Facility not found"})
			return
		}
		if errors.Is(err, apperrors.ErrForbidden) {
			c.JSON(http.StatusForbidden, gin.H{"error": "Forbidden"})
			return
		}
		logger.Error("Failed to list credit lines", slog.String("error", err.Error()), slog.String("facility_id", facilityID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list credit lines"})
		return
	}

	c.JSON(http.StatusOK, dto.ToListCreditLinesResponse(creditLines))
}

// deactivateCreditLine godoc
// @Summary Deactivate a credit line
// @Description Marks a credit line as inactive. Fails while outstanding loans exist against it.
// @Tags facilities
// @Produce  json
// @Param   organization_id path string true "Organization ID"
// @Param   credit_line_id path string true "Credit line ID"
// @Success 204 "No Content"
// @Failure 400 {object} map[string]string "Credit line has outstanding loans"
// @Failure 404 {object} map[string]string "Credit line not found"
// @Security BearerAuth
// @Router /organizations/{organization_id}/credit-lines/{credit_line_id} [delete]
func (h *facilityHandler) deactivateCreditLine(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	organizationID := c.Param("organization_id")
	creditLineID := c.Param("credit_line_id")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	err := h.facilityService.DeactivateCreditLine(c.Request.Context(), organizationID, creditLineID, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Credit line not found"})
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
		logger.Error("Failed to deactivate credit line", slog.String("error", err.Error()), slog.String("credit_line_id", creditLineID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to deactivate credit line"})
		return
	}

	c.Status(http.StatusNoContent)
}
