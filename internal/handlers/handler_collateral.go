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

// collateralHandler handles HTTP requests for collateral assets and pledges.
type collateralHandler struct {
	collateralService portssvc.CollateralSvcFacade
}

func newCollateralHandler(cs portssvc.CollateralSvcFacade) *collateralHandler {
	return &collateralHandler{
		collateralService: cs,
	}
}

// registerCollateralRoutes registers collateral routes under a specific organization.
func registerCollateralRoutes(rg *gin.RouterGroup, collateralService portssvc.CollateralSvcFacade) {
	h := newCollateralHandler(collateralService)

	assets := rg.Group("/collateral-assets")
	{
		assets.POST("", h.createAsset)
		assets.GET("", h.listAssets)
		assets.GET("/:asset_id", h.getAsset)
		assets.PUT("/:asset_id/value", h.revalueAsset)
		assets.DELETE("/:asset_id", h.deactivateAsset)

		assets.POST("/:asset_id/assignment", h.assignAsset)
		assets.DELETE("/:asset_id/assignment", h.unassignAsset)
	}
}

// createAsset godoc
// @Summary Create a collateral asset
// @Description Registers a collateral asset (real estate, deposit, equities, guarantee, or other).
// @Tags collateral
// @Accept  json
// @Produce  json
// @Param   organization_id path string true "Organization ID"
// @Param   asset body dto.CreateCollateralAssetRequest true "Asset details"
// @Success 201 {object} dto.CollateralAssetResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 403 {object} map[string]string "Forbidden"
// @Security BearerAuth
// @Router /organizations/{organization_id}/collateral-assets [post]
func (h *collateralHandler) createAsset(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	organizationID := c.Param("organization_id")

	var req dto.CreateCollateralAssetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	asset, err := h.collateralService.CreateAsset(c.Request.Context(), organizationID, req, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrForbidden) {
			c.JSON(http.StatusForbidden, gin.H{"error": "Forbidden"})
			return
		}
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		logger.Error("Failed to create collateral asset", slog.String("error", err.Error()), slog.String("organization_id", organizationID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create asset"})
		return
	}

	c.JSON(http.StatusCreated, dto.ToCollateralAssetResponse(asset))
}

// listAssets godoc
// @Summary List collateral assets
// @Description Retrieves all collateral assets for the organization.
// @Tags collateral
// @Produce  json
// @Param   organization_id path string true "Organization ID"
// @Success 200 {object} dto.ListCollateralAssetsResponse
// @Failure 403 {object} map[string]string "Forbidden"
// @Security BearerAuth
// @Router /organizations/{organization_id}/collateral-assets [get]
func (h *collateralHandler) listAssets(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	organizationID := c.Param("organization_id")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	assets, err := h.collateralService.ListAssets(c.Request.Context(), organizationID, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrForbidden) {
			c.JSON(http.StatusForbidden, gin.H{"error": "Forbidden"})
			return
		}
		logger.Error("Failed to list collateral assets", slog.String("error", err.Error()), slog.String("organization_id", organizationID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list assets"})
		return
	}

	c.JSON(http.StatusOK, dto.ToListCollateralAssetsResponse(assets))
}

// getAsset godoc
// @Summary Get collateral asset details
// @Description Retrieves a specific collateral asset by ID.
// @Tags collateral
// @Produce  json
// @Param   organization_id path string true "Organization ID"
// @Param   asset_id path string true "Asset ID"
// @Success 200 {object} dto.CollateralAssetResponse
// @Failure 404 {object} map[string]string "Asset not found"
// @Security BearerAuth
// @Router /organizations/{organization_id}/collateral-assets/{asset_id} [get]
func (h *collateralHandler) getAsset(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	organizationID := c.Param("organization_id")
	assetID := c.Param("asset_id")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	asset, err := h.collateralService.GetAssetByID(c.Request.Context(), organizationID, assetID, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Asset not found"})
			return
		}
		if errors.Is(err, apperrors.ErrForbidden) {
			c.JSON(http.StatusForbidden, gin.H{"error": "Forbidden"})
			return
		}
		logger.Error("Failed to get collateral asset", slog.String("error", err.Error()), slog.String("asset_id", assetID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get asset"})
		return
	}

	c.JSON(http.StatusOK, dto.ToCollateralAssetResponse(asset))
}

// revalueAsset godoc
// @Summary Revalue a collateral asset
// @Description Updates an asset's current value and valuation date.
// @Tags collateral
// @Accept  json
// @Produce  json
// @Param   organization_id path string true "Organization ID"
// @Param   asset_id path string true "Asset ID"
// @Param   valuation body dto.RevalueCollateralAssetRequest true "New valuation"
// @Success 200 {object} dto.CollateralAssetResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 404 {object} map[string]string "Asset not found"
// @Security BearerAuth
// @Router /organizations/{organization_id}/collateral-assets/{asset_id}/value [put]
func (h *collateralHandler) revalueAsset(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	organizationID := c.Param("organization_id")
	assetID := c.Param("asset_id")

	var req dto.RevalueCollateralAssetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	asset, err := h.collateralService.RevalueAsset(c.Request.Context(), organizationID, assetID, req, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Asset not found"})
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
		logger.Error("Failed to revalue collateral asset", slog.String("error", err.Error()), slog.String("asset_id", assetID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to revalue asset"})
		return
	}

	c.JSON(http.StatusOK, dto.ToCollateralAssetResponse(asset))
}

// deactivateAsset godoc
// @Summary Deactivate a collateral asset
// @Description Marks an asset as inactive. Fails while the asset is still assigned.
// @Tags collateral
// @Produce  json
// @Param   organization_id path string true "Organization ID"
// @Param   asset_id path string true "Asset ID"
// @Success 204 "No Content"
// @Failure 400 {object} map[string]string "Asset is still assigned"
// @Failure 404 {object} map[string]string "Asset not found"
// @Security BearerAuth
// @Router /organizations/{organization_id}/collateral-assets/{asset_id} [delete]
func (h *collateralHandler) deactivateAsset(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	organizationID := c.Param("organization_id")
	assetID := c.Param("asset_id")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	err := h.collateralService.DeactivateAsset(c.Request.Context(), organizationID, assetID, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Asset not found"})
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
		logger.Error("Failed to deactivate collateral asset", slog.String("error", err.Error()), slog.String("asset_id", assetID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to deactivate asset"})
		return
	}

	c.Status(http.StatusNoContent)
}

// assignAsset godoc
// @Summary Pledge a collateral asset
// @Description Pledges an asset to exactly one bank, facility, or credit line. An already-pledged asset must be released first.
// @Tags collateral
// @Accept  json
// @Produce  json
// @Param   organization_id path string true "Organization ID"
// @Param   asset_id path string true "Asset ID"
// @Param   assignment body dto.AssignCollateralRequest true "Assignment target"
// @Success 201 {object} dto.CollateralAssignmentResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 404 {object} map[string]string "Asset or target not found"
// @Failure 409 {object} map[string]string "Asset is already assigned"
// @Security BearerAuth
// @Router /organizations/{organization_id}/collateral-assets/{asset_id}/assignment [post]
func (h *collateralHandler) assignAsset(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	organizationID := c.Param("organization_id")
	assetID := c.Param("asset_id")

	var req dto.AssignCollateralRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	assignment, err := h.collateralService.AssignAsset(c.Request.Context(), organizationID, assetID, req, userID)
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
		logger.Error("Failed to assign collateral asset", slog.String("error", err.Error()), slog.String("asset_id", assetID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to assign asset"})
		return
	}

	logger.Info("Collateral asset assigned", slog.String("asset_id", assetID), slog.String("level", string(assignment.Level)), slog.String("target_id", assignment.TargetID))
	c.JSON(http.StatusCreated, dto.ToCollateralAssignmentResponse(assignment))
}

// unassignAsset godoc
// @Summary Release a collateral pledge
// @Description Removes an asset's current assignment, making it available to pledge elsewhere.
// @Tags collateral
// @Produce  json
// @Param   organization_id path string true "Organization ID"
// @Param   asset_id path string true "Asset ID"
// @Success 204 "No Content"
// @Failure 404 {object} map[string]string "Asset or assignment not found"
// @Security BearerAuth
// @Router /organizations/{organization_id}/collateral-assets/{asset_id}/assignment [delete]
func (h *collateralHandler) unassignAsset(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	organizationID := c.Param("organization_id")
	assetID := c.Param("asset_id")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	err := h.collateralService.UnassignAsset(c.Request.Context(), organizationID, assetID, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Asset has no assignment"})
			return
		}
		if errors.Is(err, apperrors.ErrForbidden) {
			c.JSON(http.StatusForbidden, gin.H{"error": "Forbidden"})
			return
		}
		logger.Error("Failed to unassign collateral asset", slog.String("error", err.Error()), slog.String("asset_id", assetID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to unassign asset"})
		return
	}

	c.Status(http.StatusNoContent)
}
