package handler

import (
	"context"
	"net/http"
	"runtime"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/stemsi/codesprint-backend/internal/config"
	"github.com/stemsi/codesprint-backend/internal/response"
)

const readinessTimeout = 2 * time.Second

// Pinger is satisfied by *pgxpool.Pool.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler serves liveness and readiness probes.
type HealthHandler struct {
	db        Pinger
	rdb       *redis.Client
	mailQueue string
	startTime time.Time
	log       zerolog.Logger
}

func NewHealthHandler(db Pinger, rdb *redis.Client, cfg *config.Config, log zerolog.Logger) *HealthHandler {
	return &HealthHandler{
		db:        db,
		rdb:       rdb,
		mailQueue: cfg.MailQueue,
		startTime: time.Now(),
		log:       log.With().Str("component", "health_handler").Logger(),
	}
}

// Live godoc
// GET /health
func (h *HealthHandler) Live(c *gin.Context) {
	response.Success(c, http.StatusOK, "ok", gin.H{
		"status": "ok",
		"uptime": time.Since(h.startTime).Round(time.Second).String(),
	})
}

// Ready godoc
// GET /health/ready
// Checks Postgres and Redis and reports the mail backlog. 503 when either
// dependency is unreachable.
func (h *HealthHandler) Ready(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), readinessTimeout)
	defer cancel()

	checks := gin.H{"postgres": "ok", "redis": "ok"}
	healthy := true

	if err := h.db.Ping(ctx); err != nil {
		h.log.Warn().Err(err).Msg("Postgres ping failed")
		checks["postgres"] = "unreachable"
		healthy = false
	}

	// Nil backlog renders as null: unknown, not empty.
	var backlog *int64
	if err := h.rdb.Ping(ctx).Err(); err != nil {
		h.log.Warn().Err(err).Msg("Redis ping failed")
		checks["redis"] = "unreachable"
		healthy = false
	} else if n, err := h.rdb.LLen(ctx, h.mailQueue).Result(); err != nil {
		h.log.Warn().Err(err).Str("queue", h.mailQueue).Msg("Mail backlog lookup failed")
		checks["mail_queue"] = "unknown"
	} else {
		backlog = &n
	}

	payload := gin.H{
		"checks":       checks,
		"mail_backlog": backlog,
		"goroutines":   runtime.NumGoroutine(),
		"go_version":   runtime.Version(),
	}

	if !healthy {
		payload["status"] = "degraded"
		response.FailWithPayload(c, http.StatusServiceUnavailable, response.ErrUnavailable, payload)
		return
	}
	payload["status"] = "ok"
	response.Success(c, http.StatusOK, "ok", payload)
}
