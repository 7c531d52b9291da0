package handlers

import (
	"encoding/json"
	"errors"
	"strconv"
	"strings"

	"estatefees/internal/logger"
	"estatefees/internal/services/calculation"
	"estatefees/internal/utils/response"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type CatalogHandler struct {
	calculationService *calculation.Service
}

func NewCatalogHandler(calculationSvc *calculation.Service) *CatalogHandler {
	return &CatalogHandler{
		calculationService: calculationSvc,
	}
}

func (h *CatalogHandler) ListCategories(c *fiber.Ctx) error {
	return response.Success(c, "Categories retrieved", h.calculationService.Categories())
}

func (h *CatalogHandler) GetCategory(c *fiber.Ctx) error {
	structure, err := h.calculationService.Category(c.Params("id"))
	if err != nil {
		return response.NotFound(c, "Category not found")
	}
	return response.Success(c, "Category retrieved", structure)
}

// calculateRequest accepts base_value either as formatted text or as a JSON number.
type calculateRequest struct {
	BaseValue json.RawMessage `json:"base_value"`
}

// baseValue returns the text form or, for a JSON number, the parsed value.
func (r calculateRequest) baseValue() (text string, value *float64, err error) {
	raw := strings.TrimSpace(string(r.BaseValue))
	if raw == "" || raw == "null" {
		return "", nil, nil
	}
	if strings.HasPrefix(raw, `"`) {
		err = json.Unmarshal(r.BaseValue, &text)
		return text, nil, err
	}
	n, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return "", nil, err
	}
	return "", &n, nil
}

func (h *CatalogHandler) Calculate(c *fiber.Ctx) error {
	var req calculateRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return response.BadRequest(c, "Invalid request format")
		}
	}

	text, value, err := req.baseValue()
	if err != nil {
		return response.ValidationError(c, "base_value", "invalid_base_value", "Base value must be a number or formatted amount")
	}

	var quote *calculation.Quote
	if value != nil {
		quote, err = h.calculationService.CalculateValue(c.UserContext(), c.Params("id"), *value)
	} else {
		quote, err = h.calculationService.Calculate(c.UserContext(), c.Params("id"), text)
	}
	switch {
	case err == nil:
		return response.Success(c, "Fees calculated", quote)
	case errors.Is(err, calculation.ErrCategoryNotFound):
		return response.NotFound(c, "Category not found")
	case errors.Is(err, calculation.ErrInvalidBaseValue):
		return response.ValidationError(c, "base_value", "invalid_base_value", "Base value must be a non-negative amount")
	default:
		logger.L.WithError(err).WithFields(logrus.Fields{"category_id": c.Params("id")}).Error("fee calculation failed")
		return response.ServerError(c, "Failed to calculate fees")
	}
}
