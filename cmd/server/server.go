package main

import (
	"context"
	"net/http"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/doomlabs/apocalypse-meter/internal/cache"
	"github.com/doomlabs/apocalypse-meter/internal/config"
	"github.com/doomlabs/apocalypse-meter/internal/errors"
	"github.com/doomlabs/apocalypse-meter/internal/evaluation"
	"github.com/doomlabs/apocalypse-meter/internal/i18n"
	"github.com/doomlabs/apocalypse-meter/internal/kv"
	"github.com/doomlabs/apocalypse-meter/internal/monitoring"
	"github.com/doomlabs/apocalypse-meter/internal/ratelimit"
	"github.com/doomlabs/apocalypse-meter/internal/scenario"
	"github.com/doomlabs/apocalypse-meter/internal/security"
	"github.com/doomlabs/apocalypse-meter/internal/store"
	"github.com/doomlabs/apocalypse-meter/internal/types"
)

const evaluateTimeout = 90 * time.Second

// deps bundles everything the router needs, so tests can assemble a
// server around in-memory fakes.
type deps struct {
	cfg         *config.Config
	logger      *monitoring.Logger
	evalClient  *evaluation.Client
	respCache   *cache.ResponseCache
	resultStore store.ResultStore
	limiter     *ratelimit.RateLimiter
	redisClient *kv.RedisClient
}

// storeRequest is the POST /results payload. Score is a pointer so a
// missing field is distinguishable from an explicit zero.
type storeRequest struct {
	ScenarioID     string         `json:"scenarioId"`
	Name           string         `json:"name"`
	Score          *int           `json:"score"`
	Answers        []types.Answer `json:"answers"`
	Analysis       string         `json:"analysis"`
	DeathScene     string         `json:"deathScene"`
	Rationale      string         `json:"rationale"`
	SurvivalTimeMs int64          `json:"survivalTimeMs"`
	Timestamp      string         `json:"timestamp"`
}

func setupRouter(d deps) *gin.Engine {
	r := gin.New()

	r.Use(monitoring.RequestIDMiddleware())
	r.Use(monitoring.MonitoringMiddleware(d.logger))
	r.Use(errors.ErrorHandler())
	r.Use(errors.RecoveryHandler())
	r.Use(security.SecurityHeadersMiddleware())

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = d.cfg.AllowedOrigins
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Accept", "X-Request-ID"}
	r.Use(cors.New(corsConfig))

	r.GET("/health", func(c *gin.Context) {
		redisStatus := "disabled"
		if d.redisClient != nil && d.redisClient.IsEnabled() {
			redisStatus = "ok"
			if err := d.redisClient.HealthCheck(c.Request.Context()); err != nil {
				redisStatus = "unreachable"
			}
		}
		c.JSON(http.StatusOK, gin.H{
			"status":    "ok",
			"timestamp": time.Now().Format(time.RFC3339),
			"uptime":    monitoring.Uptime().String(),
			"mode":      d.evalClient.Mode().String(),
			"redis":     redisStatus,
		})
	})

	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(
		monitoring.GetRegistry(),
		promhttp.HandlerOpts{},
	)))

	r.GET("/cache/stats", func(c *gin.Context) {
		stats := gin.H{"cache_enabled": d.respCache != nil}
		if d.respCache != nil {
			stats["cache"] = d.respCache.Stats()
		}
		if d.limiter != nil {
			stats["rate_limiter"] = d.limiter.GetStats()
		}
		c.JSON(http.StatusOK, stats)
	})

	r.GET("/scenarios", func(c *gin.Context) {
		locale := i18n.Parse(c.Query("locale"))
		c.JSON(http.StatusOK, gin.H{"scenarios": scenario.All(locale)})
	})

	r.GET("/messages/loading", func(c *gin.Context) {
		locale := i18n.Parse(c.Query("locale"))
		c.JSON(http.StatusOK, gin.H{"message": i18n.LoadingMessage(locale)})
	})

	evaluate := r.Group("/")
	if d.limiter != nil {
		evaluate.Use(d.limiter.EvaluateRateLimitMiddleware())
	}
	evaluate.POST("/evaluate", func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), evaluateTimeout)
		defer cancel()

		var req types.Submission
		if err := c.BindJSON(&req); err != nil {
			appErr := errors.NewValidationError("invalid request body")
			errors.LogError(c, appErr)
			c.JSON(appErr.HTTPStatus, appErr)
			return
		}

		req.ScenarioID = strings.TrimSpace(req.ScenarioID)
		if req.ScenarioID == "" || len(req.Answers) == 0 {
			appErr := errors.NewValidationError("scenarioId and answers are required")
			errors.LogError(c, appErr)
			c.JSON(appErr.HTTPStatus, appErr)
			return
		}

		// The frontend may deliver answers in any order.
		sorted := make([]types.Answer, len(req.Answers))
		copy(sorted, req.Answers)
		sort.SliceStable(sorted, func(i, j int) bool {
			return sorted[i].QuestionIndex < sorted[j].QuestionIndex
		})
		texts := make([]string, len(sorted))
		for i, a := range sorted {
			texts[i] = a.Text
		}

		locale := i18n.Parse(req.Locale)

		start := time.Now()
		result, err := d.evalClient.Evaluate(ctx, req.ScenarioID, texts, locale)
		if err != nil {
			appErr := errors.ToAppError(err)
			errors.LogError(c, appErr)
			c.JSON(appErr.HTTPStatus, appErr)
			return
		}
		d.logger.EvaluationLogger(req.ScenarioID, string(locale), d.evalClient.Mode().String(), time.Since(start), false)

		c.JSON(http.StatusOK, gin.H{
			"scenarioId":     req.ScenarioID,
			"answers":        sorted,
			"name":           req.Name,
			"locale":         string(locale),
			"score":          result.Score,
			"analysis":       result.Analysis,
			"deathScene":     result.DeathScene,
			"rationale":      result.Rationale,
			"survivalTimeMs": result.SurvivalTimeMs,
			"timestamp":      time.Now().Format(time.RFC3339),
		})
	})

	r.POST("/results", func(c *gin.Context) {
		var req storeRequest
		if err := c.BindJSON(&req); err != nil {
			appErr := errors.NewValidationError("invalid request body")
			errors.LogError(c, appErr)
			c.JSON(appErr.HTTPStatus, appErr)
			return
		}

		if req.ScenarioID == "" || req.Name == "" || req.Score == nil {
			appErr := errors.NewValidationError("missing required fields: scenarioId, name, score")
			errors.LogError(c, appErr)
			c.JSON(appErr.HTTPStatus, appErr)
			return
		}

		survivalTimeMs := req.SurvivalTimeMs
		if survivalTimeMs <= 0 {
			survivalTimeMs = evaluation.RandomSurvivalTime()
		}

		shareID, err := d.resultStore.StoreResult(c.Request.Context(), types.StoredResult{
			ScenarioID:     req.ScenarioID,
			Name:           req.Name,
			Score:          *req.Score,
			Answers:        req.Answers,
			Analysis:       req.Analysis,
			DeathScene:     req.DeathScene,
			Rationale:      req.Rationale,
			SurvivalTimeMs: survivalTimeMs,
			Timestamp:      req.Timestamp,
		})
		if err != nil {
			appErr := errors.NewStorageError("failed to store result", err)
			errors.LogError(c, appErr)
			c.JSON(appErr.HTTPStatus, appErr)
			return
		}
		monitoring.RecordResultStored(req.ScenarioID)

		c.JSON(http.StatusOK, gin.H{
			"shareId": shareID,
			"url":     "/results/" + shareID,
		})
	})

	r.GET("/results/:shareId", func(c *gin.Context) {
		shareID := c.Param("shareId")

		// Length check happens before any store lookup.
		if len(shareID) != store.ShareIDLength {
			appErr := errors.NewValidationError("invalid share ID")
			errors.LogError(c, appErr)
			c.JSON(appErr.HTTPStatus, appErr)
			return
		}

		result, err := d.resultStore.GetResult(c.Request.Context(), shareID)
		if err != nil || result == nil {
			monitoring.RecordResultNotFound()
			c.JSON(http.StatusNotFound, gin.H{"error": "Result not found or expired"})
			return
		}

		c.JSON(http.StatusOK, result)
	})

	r.GET("/leaderboard/global", func(c *gin.Context) {
		limit := parseLimit(c.Query("limit"), 20)
		entries, err := d.resultStore.GlobalLeaderboard(c.Request.Context(), limit)
		if err != nil {
			appErr := errors.NewStorageError("failed to read leaderboard", err)
			errors.LogError(c, appErr)
			c.JSON(appErr.HTTPStatus, appErr)
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"entries": entries,
			"count":   len(entries),
		})
	})

	r.GET("/leaderboard/:scenarioId", func(c *gin.Context) {
		scenarioID := c.Param("scenarioId")
		limit := parseLimit(c.Query("limit"), 10)
		entries, err := d.resultStore.ScenarioLeaderboard(c.Request.Context(), scenarioID, limit)
		if err != nil {
			appErr := errors.NewStorageError("failed to read leaderboard", err)
			errors.LogError(c, appErr)
			c.JSON(appErr.HTTPStatus, appErr)
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"scenarioId": scenarioID,
			"entries":    entries,
			"count":      len(entries),
		})
	})

	return r
}

// parseLimit reads a ?limit= query value, falling back on garbage or
// absence. The store applies its own cap.
func parseLimit(raw string, fallback int) int {
	if raw == "" {
		return fallback
	}
	limit, err := strconv.Atoi(raw)
	if err != nil || limit <= 0 {
		return fallback
	}
	return limit
}
