package handler

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

const healthTimeout = 2 * time.Second

// HealthCheck probes one dependency.
type HealthCheck struct {
	Name  string
	Check func(ctx context.Context) error
}

type HealthHandler struct {
	checks []HealthCheck
	log    *zap.Logger
}

func NewHealthHandler(log *zap.Logger, checks ...HealthCheck) *HealthHandler {
	return &HealthHandler{
		checks: checks,
		log:    log,
	}
}

// Health reports "ok" per dependency, or 503 naming the failing ones.
func (h *HealthHandler) Health(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), healthTimeout)
	defer cancel()

	status := fiber.StatusOK
	report := make(fiber.Map, len(h.checks))
	for _, check := range h.checks {
		if err := check.Check(ctx); err != nil {
			h.log.Warn("health check failed", zap.String("component", check.Name), zap.Error(err))
			report[check.Name] = "unavailable"
			status = fiber.StatusServiceUnavailable
			continue
		}
		report[check.Name] = "ok"
	}

	return c.Status(status).JSON(report)
}
