package handlers

import (
	"errors"

	"estatefees/internal/logger"
	"estatefees/internal/services/feeregistry"
	"estatefees/internal/utils/response"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type AssetFeeHandler struct {
	manager *feeregistry.Manager
}

func NewAssetFeeHandler(manager *feeregistry.Manager) *AssetFeeHandler {
	return &AssetFeeHandler{
		manager: manager,
	}
}

type validationFailure struct {
	err     error
	field   string
	code    string
	message string
}

var validationFailures = []validationFailure{
	{feeregistry.ErrEmptyName, "name", "empty_name", "Fee name is required"},
	{feeregistry.ErrNegativeValue, "value", "negative_value", "Fee value cannot be negative"},
	{feeregistry.ErrPercentageExceeds100, "value", "percentage_exceeds_100", "Percentage fees cannot exceed 100%"},
	{feeregistry.ErrInvalidValue, "value", "invalid_value", "Fee value must be a finite number"},
	{feeregistry.ErrInvalidFeeType, "type", "invalid_fee_type", "Fee type must be registration, legal, platform or brokerage"},
}

func (h *AssetFeeHandler) registry(c *fiber.Ctx) (*feeregistry.Registry, error) {
	return h.manager.Registry(c.UserContext(), c.Params("assetId"))
}

func (h *AssetFeeHandler) ListFees(c *fiber.Ctx) error {
	reg, err := h.registry(c)
	if err != nil {
		return h.writeError(c, err)
	}
	return response.Success(c, "Fees retrieved", fiber.Map{
		"asset_id": reg.AssetID(),
		"fees":     reg.Buckets(),
	})
}

func (h *AssetFeeHandler) CreateFee(c *fiber.Ctx) error {
	var input feeregistry.Input
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request format")
	}

	reg, err := h.registry(c)
	if err != nil {
		return h.writeError(c, err)
	}
	entry, err := reg.Add(c.UserContext(), input)
	if err != nil {
		return h.writeError(c, err)
	}
	return response.Created(c, "Fee created", entry)
}

func (h *AssetFeeHandler) UpdateFee(c *fiber.Ctx) error {
	var patch feeregistry.Patch
	if err := c.BodyParser(&patch); err != nil {
		return response.BadRequest(c, "Invalid request format")
	}

	reg, err := h.registry(c)
	if err != nil {
		return h.writeError(c, err)
	}
	entry, err := reg.Edit(c.UserContext(), c.Params("feeId"), patch)
	if err != nil {
		return h.writeError(c, err)
	}
	return response.Success(c, "Fee updated", entry)
}

func (h *AssetFeeHandler) ToggleStatus(c *fiber.Ctx) error {
	var input struct {
		Active *bool `json:"active"`
	}
	if err := c.BodyParser(&input); err != nil || input.Active == nil {
		return response.BadRequest(c, "Field 'active' is required")
	}

	reg, err := h.registry(c)
	if err != nil {
		return h.writeError(c, err)
	}
	entry, err := reg.ToggleStatus(c.UserContext(), c.Params("feeId"), *input.Active)
	if err != nil {
		return h.writeError(c, err)
	}
	return response.Success(c, "Fee status updated", entry)
}

func (h *AssetFeeHandler) DeleteFee(c *fiber.Ctx) error {
	reg, err := h.registry(c)
	if err != nil {
		return h.writeError(c, err)
	}
	if err := reg.Remove(c.UserContext(), c.Params("feeId")); err != nil {
		return h.writeError(c, err)
	}
	return response.Success(c, "Fee deleted", nil)
}

func (h *AssetFeeHandler) writeError(c *fiber.Ctx, err error) error {
	for _, f := range validationFailures {
		if errors.Is(err, f.err) {
			return response.ValidationError(c, f.field, f.code, f.message)
		}
	}

	switch {
	case errors.Is(err, feeregistry.ErrEntryNotFound):
		return response.NotFound(c, "Fee not found")
	case errors.Is(err, feeregistry.ErrEntryBusy):
		return response.Conflict(c, "Fee has an operation in progress")
	case errors.Is(err, feeregistry.ErrBackingStore):
		logger.L.WithError(err).WithFields(logrus.Fields{
			"asset_id": c.Params("assetId"),
			"fee_id":   c.Params("feeId"),
		}).Warn("fee backing store failed")
		// next request reloads the confirmed state
		h.manager.Evict(c.Params("assetId"))
		return response.BadGateway(c, "Fee storage is unavailable")
	default:
		logger.L.WithError(err).Error("unexpected fee registry error")
		return response.ServerError(c, "Failed to process fee")
	}
}
