package handlers

import (
	"errors"

	"pnp-asset-tracker/internal/core/domain"
	"pnp-asset-tracker/internal/core/services"
	"pnp-asset-tracker/internal/pkg/pagination"
	"pnp-asset-tracker/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// AssetHandler handles asset lifecycle endpoints
type AssetHandler struct {
	assetService *services.AssetService
}

// NewAssetHandler creates a new asset handler
func NewAssetHandler(assetService *services.AssetService) *AssetHandler {
	return &AssetHandler{
		assetService: assetService,
	}
}

// Create records a newly received asset. The receiving user is the caller.
func (h *AssetHandler) Create(c *fiber.Ctx) error {
	var req services.CreateAssetInput
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	userID, _ := c.Locals("userID").(uint)

	trackingID, err := h.assetService.Create(c.Context(), &req, userID)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrValidation):
			return response.BadRequest(c, "Branch Name and Asset Name are required")
		case errors.Is(err, domain.ErrUserNotFound):
			return response.NotFound(c, "Receiving user not found")
		case errors.Is(err, domain.ErrSignatureMissing):
			return response.UnprocessableEntity(c, "Could not find signature for receiving user")
		default:
			return response.InternalServerError(c, "Failed to save asset")
		}
	}

	return response.Created(c, "Asset saved successfully", fiber.Map{
		"tracking_id": trackingID,
	})
}

// GetByTrackingID returns the detail view of one asset
func (h *AssetHandler) GetByTrackingID(c *fiber.Ctx) error {
	trackingID := c.Params("tracking_id")

	asset, err := h.assetService.GetByTrackingID(c.Context(), trackingID)
	if err != nil {
		if errors.Is(err, domain.ErrAssetNotFound) {
			return response.NotFound(c, "Asset not found")
		}
		return response.InternalServerError(c, "Failed to load asset")
	}

	return response.Success(c, "", fiber.Map{
		"asset": asset,
	})
}

// Edit replaces the editable fields of an Active asset
func (h *AssetHandler) Edit(c *fiber.Ctx) error {
	trackingID := c.Params("tracking_id")

	var req services.EditAssetInput
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if err := h.assetService.Edit(c.Context(), trackingID, &req); err != nil {
		switch {
		case errors.Is(err, domain.ErrValidation):
			return response.BadRequest(c, "All fields are required")
		case errors.Is(err, domain.ErrAssetNotFound):
			return response.NotFound(c, "Asset not found")
		case errors.Is(err, domain.ErrAssetDispatched):
			return response.Conflict(c, "Dispatched assets can no longer be edited")
		default:
			return response.InternalServerError(c, "Failed to update asset")
		}
	}

	return response.Success(c, "Asset updated successfully", nil)
}

// Dispatch moves an asset to the Dispatched state. The dispatcher is the caller.
func (h *AssetHandler) Dispatch(c *fiber.Ctx) error {
	trackingID := c.Params("tracking_id")
	userID, _ := c.Locals("userID").(uint)

	if err := h.assetService.Dispatch(c.Context(), trackingID, userID); err != nil {
		switch {
		case errors.Is(err, domain.ErrAssetNotFound):
			return response.NotFound(c, "Asset not found")
		case errors.Is(err, domain.ErrAssetDispatched):
			return response.Conflict(c, "Asset has already been dispatched")
		case errors.Is(err, domain.ErrUserNotFound):
			return response.NotFound(c, "Dispatching user not found")
		case errors.Is(err, domain.ErrSignatureMissing):
			return response.UnprocessableEntity(c, "Dispatcher signature not found")
		default:
			return response.InternalServerError(c, "Failed to dispatch asset")
		}
	}

	return response.Success(c, "Asset dispatched successfully", nil)
}

// Delete removes an asset regardless of lifecycle state
func (h *AssetHandler) Delete(c *fiber.Ctx) error {
	trackingID := c.Params("tracking_id")

	if err := h.assetService.Delete(c.Context(), trackingID); err != nil {
		if errors.Is(err, domain.ErrAssetNotFound) {
			return response.NotFound(c, "Asset not found")
		}
		return response.InternalServerError(c, "Failed to delete asset")
	}

	return response.Success(c, "Asset deleted successfully", nil)
}

// ListActive lists assets currently at HQ
func (h *AssetHandler) ListActive(c *fiber.Ctx) error {
	params := pagination.GetParams(c)

	output, err := h.assetService.ListActive(c.Context(), params.Page, params.Limit)
	if err != nil {
		return response.InternalServerError(c, "Failed to list assets")
	}

	return response.Success(c, "", fiber.Map{
		"assets": output.Assets,
		"meta":   pagination.GetMeta(params, output.Total),
	})
}

// ListDispatched lists assets already dispatched to branches
func (h *AssetHandler) ListDispatched(c *fiber.Ctx) error {
	params := pagination.GetParams(c)

	output, err := h.assetService.ListDispatched(c.Context(), params.Page, params.Limit)
	if err != nil {
		return response.InternalServerError(c, "Failed to list assets")
	}

	return response.Success(c, "", fiber.Map{
		"assets": output.Assets,
		"meta":   pagination.GetMeta(params, output.Total),
	})
}

// Search filters one lifecycle scope by a single allow-listed field
func (h *AssetHandler) Search(c *fiber.Ctx) error {
	term := c.Query("term")
	field := c.Query("field")
	scope := c.Query("scope", string(domain.ScopeActive))

	results, err := h.assetService.Search(c.Context(), term, field, scope)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrValidation):
			return response.BadRequest(c, "Please enter a search term")
		case errors.Is(err, domain.ErrInvalidSearchField):
			return response.BadRequest(c, "Search field is not allowed")
		default:
			return response.InternalServerError(c, "Search failed")
		}
	}

	return response.Success(c, "", fiber.Map{
		"assets": results,
	})
}
