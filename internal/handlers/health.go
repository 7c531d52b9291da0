package handlers

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
)

// HealthCheck pings one dependency.
type HealthCheck func(ctx context.Context) error

// StatsFunc reports runtime statistics of one dependency, e.g. pool stats.
type StatsFunc func() interface{}

type HealthHandler struct {
	checks map[string]HealthCheck
	stats  map[string]StatsFunc
}

func NewHealthHandler(checks map[string]HealthCheck, stats map[string]StatsFunc) *HealthHandler {
	return &HealthHandler{checks: checks, stats: stats}
}

func (h *HealthHandler) Health(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
	defer cancel()

	status := "ok"
	services := fiber.Map{}
	for name, check := range h.checks {
		if err := check(ctx); err != nil {
			services[name] = "unavailable"
			status = "degraded"
			continue
		}
		services[name] = "connected"
	}

	body := fiber.Map{
		"status":   status,
		"version":  "1.0.0",
		"services": services,
	}
	if len(h.stats) > 0 {
		stats := fiber.Map{}
		for name, fn := range h.stats {
			stats[name] = fn()
		}
		body["stats"] = stats
	}

	code := fiber.StatusOK
	if status != "ok" {
		code = fiber.StatusServiceUnavailable
	}
	return c.Status(code).JSON(body)
}
