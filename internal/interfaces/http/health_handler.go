package http

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
)

// Pinger dependencia verificable por /health (store, caché).
type Pinger interface {
	Ping(ctx context.Context) error
}

// PingFunc adapta una función a Pinger.
type PingFunc func(ctx context.Context) error

func (f PingFunc) Ping(ctx context.Context) error { return f(ctx) }

// Health devuelve 200 si todas las dependencias responden, 503 si alguna falla.
// Nunca expone el detalle del error.
func Health(deps map[string]Pinger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.Context(), 2*time.Second)
		defer cancel()

		status := fiber.StatusOK
		checks := make(fiber.Map, len(deps))
		for name, p := range deps {
			if err := p.Ping(ctx); err != nil {
				checks[name] = "error"
				status = fiber.StatusServiceUnavailable
				continue
			}
			checks[name] = "ok"
		}
		overall := "ok"
		if status != fiber.StatusOK {
			overall = "degraded"
		}
		return c.Status(status).JSON(fiber.Map{"status": overall, "checks": checks})
	}
}
