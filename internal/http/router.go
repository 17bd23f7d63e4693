// Package httpapi wires the Gin transport to the application services. It
// owns the middleware chain (tracing, correlation, redacted logging, panic
// recovery, metrics, idempotency, rate limiting, CORS, security headers)
// and mounts the versioned API routes with their dependencies injected.
package httpapi

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"golang.org/x/text/language"
	"gorm.io/gorm"

	"github.com/DavidCraggs/PropertySwipe-sub001/docs"
	"github.com/DavidCraggs/PropertySwipe-sub001/internal/config"
	"github.com/DavidCraggs/PropertySwipe-sub001/internal/domain"
	"github.com/DavidCraggs/PropertySwipe-sub001/internal/http/handlers"
	"github.com/DavidCraggs/PropertySwipe-sub001/internal/http/middleware"
	"github.com/DavidCraggs/PropertySwipe-sub001/internal/repo"
	"github.com/DavidCraggs/PropertySwipe-sub001/internal/services"
)

// propertyRepoShim adapts the repo package's free functions to the
// services.PropertyRepo interface, keeping RegistryService decoupled from
// the concrete persistence layer.
type propertyRepoShim struct{}

func (propertyRepoShim) CreateProperty(ctx context.Context, db *gorm.DB, p *domain.Property) (*domain.Property, error) {
	return repo.CreateProperty(ctx, db, p)
}

func (propertyRepoShim) GetProperty(ctx context.Context, db *gorm.DB, id string) (*domain.Property, error) {
	return repo.GetProperty(ctx, db, id)
}

func (propertyRepoShim) ListAvailableProperties(ctx context.Context, db *gorm.DB, renterID string, now time.Time, offset, limit int) ([]domain.Property, error) {
	return repo.ListAvailableProperties(ctx, db, renterID, now, offset, limit)
}

func (propertyRepoShim) CountAvailableProperties(ctx context.Context, db *gorm.DB, renterID string, now time.Time) (int64, error) {
	return repo.CountAvailableProperties(ctx, db, renterID, now)
}

func (propertyRepoShim) ListPropertiesByLandlord(ctx context.Context, db *gorm.DB, landlordID string, offset, limit int) ([]domain.Property, error) {
	return repo.ListPropertiesByLandlord(ctx, db, landlordID, offset, limit)
}

func (propertyRepoShim) CountPropertiesByLandlord(ctx context.Context, db *gorm.DB, landlordID string) (int64, error) {
	return repo.CountPropertiesByLandlord(ctx, db, landlordID)
}

func (propertyRepoShim) UpdatePropertyFields(ctx context.Context, db *gorm.DB, id string, updates map[string]any) error {
	return repo.UpdatePropertyFields(ctx, db, id, updates)
}

func (propertyRepoShim) SetPropertyLandlord(ctx context.Context, db *gorm.DB, id, landlordID string) error {
	return repo.SetPropertyLandlord(ctx, db, id, landlordID)
}

func (propertyRepoShim) DeleteProperty(ctx context.Context, db *gorm.DB, id string) error {
	return repo.DeleteProperty(ctx, db, id)
}

// replayLookup answers the idempotency validator's "seen before?" question
// from the idempotency table. Store errors read as no-replay; the write path
// still dedupes on the unique (user, scope, key) tuple.
func replayLookup(db *gorm.DB) middleware.IdempotencyLookup {
	return func(ctx context.Context, userID, scopeID, key string, now time.Time) (bool, error) {
		rec, err := repo.GetIdempotency(ctx, db, userID, scopeID, key, now)
		return err == nil && rec != nil, nil
	}
}

// RegisterRoutes attaches the middleware chain and every endpoint to the Gin
// engine. The chain order is deliberate: tracing wraps everything, RequestID
// runs before the loggers so each line carries a correlation id, recovery
// sits after logging so panics still get recorded, and the idempotency
// validator precedes the rate limiter so a replayed request can skip the
// bucket it already paid for.
func RegisterRoutes(r *gin.Engine, db *gorm.DB, cfg config.Config) {
	r.HandleMethodNotAllowed = true

	r.Use(otelgin.Middleware(cfg.OTEL.ServiceName))
	r.Use(middleware.RequestID())
	r.Use(middleware.RedactingLogger(middleware.RedactOptions{
		MaskHeaders: []string{"X-API-Key"},
	}))
	r.Use(middleware.Recovery())

	// Cap request bodies at 1 MiB and compress responses.
	r.Use(limitBody(1 << 20))
	r.Use(gzip.Gzip(gzip.DefaultCompression))

	r.Use(middleware.Metrics())
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	r.Use(middleware.IdempotencyValidator(
		middleware.IdempotencyOptions{MaxLen: 200},
		replayLookup(db),
	))

	rl := middleware.NewRateLimiter(cfg.RateRPS, cfg.RateBurst, middleware.KeyByUserOrIP())
	r.Use(rl.Handler())

	r.Use(originEcho(cfg.CORS.AllowedOrigins))
	r.Use(cors.New(corsConfig(cfg.CORS.AllowedOrigins)))

	r.Use(middleware.SecurityHeaders(middleware.SecurityOptions{
		EnableHSTS:   cfg.Security.EnableHSTS,
		HSTSMaxAge:   cfg.Security.HSTSMaxAge,
		EnablePolicy: true,
	}))

	r.NoRoute(func(c *gin.Context) {
		handlers.Fail(c, http.StatusNotFound, handlers.ErrCodeNotFound, "route not found")
	})
	r.NoMethod(func(c *gin.Context) {
		handlers.Fail(c, http.StatusMethodNotAllowed, handlers.ErrCodeMethodNotAllowed, "method not allowed")
	})

	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "ok"}) })

	// API docs (behind a flag; the UI leaks route shapes)
	if cfg.SwaggerEnabled {
		docs.SwaggerInfo.BasePath = cfg.APIBasePath
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	regSvc := services.NewRegistryService(db, propertyRepoShim{})
	intSvc := &services.InterestService{
		DB:  db,
		TTL: cfg.InterestTTL,
	}
	matchSvc := &services.MatchService{
		DB:              db,
		Probability:     cfg.MatchProbability,
		MaxMessageRunes: 2000,
		SummaryLocale:   language.English,
	}

	h := handlers.New(regSvc, intSvc, matchSvc)
	h.IdemTTL = cfg.IdempotencyTTL

	api := groupWithPrefix(r, cfg.APIBasePath)
	{
		// Properties
		api.POST("/properties", h.CreateProperty)
		api.GET("/properties", h.ListProperties)
		api.GET("/properties/:id", h.GetProperty)
		api.PATCH("/properties/:id", h.UpdateProperty)
		api.DELETE("/properties/:id", h.DeleteProperty)
		api.POST("/properties/:id/link", h.LinkProperty)
		api.POST("/properties/:id/unlink", h.UnlinkProperty)
		api.POST("/properties/:id/interest", h.ExpressInterest)
		api.POST("/properties/:id/match-roll", h.MatchRoll)

		// Interests
		api.GET("/landlords/me/interests", h.ListInterests)
		api.GET("/landlords/me/interests/count", h.CountInterests)
		api.POST("/interests/:id/confirm", h.ConfirmInterest)
		api.POST("/interests/:id/decline", h.DeclineInterest)

		// Matches
		api.GET("/matches", h.ListMatches)
		api.GET("/matches/:id", h.GetMatch)
		api.GET("/matches/:id/messages", h.ListMatchMessages)
		api.POST("/matches/:id/messages", h.PostMatchMessage)
		api.POST("/matches/:id/messages/read", h.ReadMatchMessages)
		api.POST("/matches/:id/viewing-preference", h.SetViewing)
		api.POST("/matches/:id/viewing", h.ConfirmMatchViewing)
		api.POST("/matches/:id/tenancy", h.SetTenancy)
		api.POST("/matches/:id/ratings", h.RateMatch)
		api.GET("/renters/me/unread", h.UnreadBadge)
	}
}

// corsConfig builds the shared CORS policy. With no allowlist configured the
// API is open to any origin; credentials stay off either way so the wildcard
// remains legal.
func corsConfig(origins []string) cors.Config {
	cc := cors.Config{
		AllowMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders: []string{
			"Origin", "Content-Type", "Accept", "Authorization",
			"X-User-ID", "X-User-Role", "X-User-Name", middleware.HeaderIdempotencyKey,
		},
		ExposeHeaders:    []string{"X-Request-ID", "Content-Length"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}
	if len(origins) == 0 {
		cc.AllowAllOrigins = true
	} else {
		cc.AllowOrigins = origins
	}
	return cc
}

// originEcho stamps Access-Control-Allow-Origin ahead of gin-contrib/cors,
// which only writes the header when the request carries an Origin. Open mode
// always answers "*" so plain health probes see it; allowlist mode echoes a
// recognised Origin and adds Vary.
func originEcho(origins []string) gin.HandlerFunc {
	if len(origins) == 0 {
		return func(c *gin.Context) {
			c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
			c.Next()
		}
	}

	allowed := make(map[string]struct{}, len(origins))
	for _, o := range origins {
		allowed[o] = struct{}{}
	}
	return func(c *gin.Context) {
		if origin := c.GetHeader("Origin"); origin != "" {
			if _, ok := allowed[origin]; ok {
				h := c.Writer.Header()
				h.Set("Access-Control-Allow-Origin", origin)
				h.Add("Vary", "Origin")
			}
		}
		c.Next()
	}
}

// limitBody wraps every request body in http.MaxBytesReader; oversized
// payloads surface as read errors in whatever handler consumes the body.
func limitBody(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		c.Next()
	}
}

// groupWithPrefix mounts a group at prefix, treating "/" and "" as the root.
func groupWithPrefix(r *gin.Engine, prefix string) *gin.RouterGroup {
	if prefix == "" || prefix == "/" {
		return r.Group("")
	}
	return r.Group(prefix)
}
