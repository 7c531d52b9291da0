// Package routes defines the API routing configuration.
package routes

import (
	"estatefees/internal/handlers"

	"github.com/gofiber/fiber/v2"
)

// Handlers groups the HTTP handlers mounted by SetupRoutes.
type Handlers struct {
	Health    *handlers.HealthHandler
	Catalog   *handlers.CatalogHandler
	AssetFees *handlers.AssetFeeHandler
}

// SetupRoutes mounts every route. mutate wraps the fee mutation routes,
// typically with a rate limiter; it may be nil.
func SetupRoutes(app *fiber.App, h Handlers, mutate fiber.Handler) {
	app.Get("/health", h.Health.Health)

	api := app.Group("/api")

	// Catalog and calculation
	categories := api.Group("/categories")
	categories.Get("/", h.Catalog.ListCategories)
	categories.Get("/:id", h.Catalog.GetCategory)
	categories.Post("/:id/calculate", h.Catalog.Calculate)

	// Editable asset fees
	fees := api.Group("/assets/:assetId/fees")
	fees.Get("/", h.AssetFees.ListFees)

	write := []fiber.Handler{}
	if mutate != nil {
		write = append(write, mutate)
	}
	fees.Post("/", append(write, h.AssetFees.CreateFee)...)
	fees.Put("/:feeId", append(write, h.AssetFees.UpdateFee)...)
	fees.Patch("/:feeId/status", append(write, h.AssetFees.ToggleStatus)...)
	fees.Delete("/:feeId", append(write, h.AssetFees.DeleteFee)...)
}
