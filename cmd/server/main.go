// @title GreenScore API
// @version 1.0
// @description Renewable-energy project viability scoring service.
// @BasePath /
package main

import (
	"context"
	"log/slog"
	"math"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/gridsight/greenscore/internal/analysis"
	"github.com/gridsight/greenscore/internal/cache"
	"github.com/gridsight/greenscore/internal/database"
	"github.com/gridsight/greenscore/internal/errors"
	"github.com/gridsight/greenscore/internal/monitoring"
	"github.com/gridsight/greenscore/internal/scoring"
	"github.com/gridsight/greenscore/internal/security"
	"github.com/gridsight/greenscore/internal/types"
	"github.com/gridsight/greenscore/internal/validation"
)

func main() {
	// Structured logging setup
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	// Configuration from environment with defaults
	port := getEnvOrDefault("PORT", "8080")
	dataPath := getEnvOrDefault("DATA_PATH", "./data/projects_sample.csv")
	dataDir := getEnvOrDefault("DATA_DIR", "./data")
	cacheTTL := getEnvDurationMinutes("CACHE_TTL_MIN", 15*time.Minute)
	rateLimit := getEnvIntOrDefault("RATE_LIMIT_PER_MIN", 60)
	allowedOrigins := getEnvOrDefault("ALLOWED_ORIGINS", "*")

	// Load the historical dataset and train the model. Both are required
	// before the listener starts: a service that cannot score must not
	// accept traffic.
	records, err := scoring.LoadDataset(dataPath)
	if err != nil {
		slog.Error("Failed to load training dataset", "path", dataPath, "error", err)
		os.Exit(1)
	}

	appMetrics := monitoring.NewMetrics()
	appLogger := monitoring.NewLogger()

	trainStart := time.Now()
	model, err := scoring.Train(records)
	if err != nil {
		slog.Error("Failed to train scoring model", "error", err)
		os.Exit(1)
	}
	report := model.Report()
	appLogger.TrainingLogger(report.TrainSamples, report.TestSamples,
		report.R2, report.MAE, report.RMSE, time.Since(trainStart))

	// Evaluation history store
	db, err := database.NewDB(dataDir)
	if err != nil {
		slog.Error("Failed to initialize database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	repo := database.NewRepository(db)

	r := setupRouter(model, repo, appMetrics, appLogger, routerConfig{
		cacheTTL:          cacheTTL,
		maxRequestsPerMin: rateLimit,
		allowedOrigins:    allowedOrigins,
	})

	// Database pool stats endpoint
	r.GET("/pools/database", func(c *gin.Context) {
		stats := db.GetPoolStats()
		c.JSON(http.StatusOK, gin.H{
			"pool":  "database",
			"stats": stats,
		})
	})

	// Start server with graceful shutdown
	srv := &http.Server{
		Addr:    ":" + port,
		Handler: r,
	}

	go func() {
		slog.Info("Starting server", "port", port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("Server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	slog.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("Server forced to shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("Server exited")
}

type routerConfig struct {
	cacheTTL          time.Duration
	maxRequestsPerMin int

	// Comma-separated origin list; empty or "*" allows all.
	allowedOrigins string
}

// setupRouter assembles the middleware chain and routes. The repository may
// be nil, in which case evaluations are not persisted.
func setupRouter(model *scoring.Model, repo *database.Repository, appMetrics *monitoring.Metrics, appLogger *monitoring.Logger, cfg routerConfig) *gin.Engine {
	r := gin.New()

	corsConfig := cors.Config{
		AllowMethods: []string{"GET", "POST", "OPTIONS"},
		AllowHeaders: []string{"Origin", "Content-Type", "Accept", "X-Request-ID"},
		MaxAge:       12 * time.Hour,
	}
	if cfg.allowedOrigins == "" || cfg.allowedOrigins == "*" {
		corsConfig.AllowAllOrigins = true
	} else {
		corsConfig.AllowOrigins = strings.Split(cfg.allowedOrigins, ",")
	}
	r.Use(cors.New(corsConfig))

	r.Use(monitoring.MonitoringMiddleware(appMetrics, appLogger))

	r.Use(errors.ErrorHandler())
	r.Use(errors.RecoveryHandler())

	securityConfig := security.DefaultSecurityConfig()
	if cfg.maxRequestsPerMin > 0 {
		securityConfig.MaxRequestsPerMin = cfg.maxRequestsPerMin
	}
	securityMiddleware := security.NewSecurityMiddleware(securityConfig)

	r.Use(securityMiddleware.SecurityHeaders)
	r.Use(securityMiddleware.RequestTimeout)
	r.Use(securityMiddleware.ValidateContentType)
	r.Use(securityMiddleware.RateLimitByIP)

	appCache := cache.NewCache(cfg.cacheTTL)
	r.Use(appCache.Middleware(appMetrics))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":    "ok",
			"timestamp": time.Now().Format(time.RFC3339),
			"version":   "1.0.0",
			"metrics":   appMetrics.GetStats(),
		})
	})

	r.POST("/evaluate", evaluateHandler(model, repo, appMetrics, appLogger))

	// Training diagnostics captured at startup
	r.GET("/model", func(c *gin.Context) {
		c.JSON(http.StatusOK, model.Report())
	})

	r.GET("/metrics", func(c *gin.Context) {
		c.JSON(http.StatusOK, appMetrics.GetStats())
	})

	r.GET("/cache/stats", func(c *gin.Context) {
		c.JSON(http.StatusOK, appCache.Stats())
	})

	r.GET("/evaluations/recent", func(c *gin.Context) {
		if repo == nil {
			c.JSON(http.StatusOK, gin.H{"evaluations": []database.EvaluationRow{}})
			return
		}

		limit := 20
		if limitStr := c.Query("limit"); limitStr != "" {
			if l, err := strconv.Atoi(limitStr); err == nil && l > 0 && l <= 100 {
				limit = l
			}
		}

		evaluations, err := repo.RecentEvaluations(limit)
		if err != nil {
			appLogger.APIErrorLogger(err, "GET", "/evaluations/recent", c.ClientIP(), http.StatusInternalServerError)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to retrieve evaluations"})
			return
		}
		if evaluations == nil {
			evaluations = []database.EvaluationRow{}
		}

		c.JSON(http.StatusOK, gin.H{"evaluations": evaluations})
	})

	// Swagger documentation routes
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	return r
}

// evaluateHandler scores one project proposal.
//
// @Summary Evaluate a renewable-energy project
// @Description Returns the ML viability score plus cost-benefit, ROI, risk, and social impact analysis.
// @Accept json
// @Produce json
// @Param project body types.ProjectRecord true "Project proposal"
// @Success 200 {object} analysis.Result
// @Failure 400 {object} errors.AppError
// @Failure 500 {object} errors.AppError
// @Router /evaluate [post]
func evaluateHandler(model *scoring.Model, repo *database.Repository, appMetrics *monitoring.Metrics, appLogger *monitoring.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		var rec types.ProjectRecord
		if err := c.BindJSON(&rec); err != nil {
			appErr := errors.NewValidationError("invalid JSON body", err.Error())
			errors.LogError(c, appErr)
			c.JSON(appErr.HTTPStatus, appErr)
			return
		}

		if result := validation.Validate(rec); !result.Valid() {
			appErr := errors.NewValidationErrorWithMap(result.Fields)
			errors.LogError(c, appErr)
			c.JSON(appErr.HTTPStatus, appErr)
			return
		}

		raw, err := model.Predict(rec)
		if err != nil {
			appMetrics.IncrementScoringFailure()
			appErr := errors.NewScoringError(err)
			errors.LogError(c, appErr)
			c.JSON(appErr.HTTPStatus, appErr)
			return
		}

		// The regressor output is unbounded; the API contract is 0-100.
		mlScore := math.Max(0, math.Min(100, raw))

		res := analysis.Analyze(rec, mlScore)

		appMetrics.IncrementEvaluation()
		appLogger.EvaluationLogger(rec.ProjectType, rec.Region, mlScore,
			res.Recommendation.FundingRecommendation, time.Since(start), c.GetBool("cache_hit"))

		if repo != nil {
			go func() {
				if err := repo.SaveEvaluation(rec, res); err != nil {
					slog.Error("Failed to save evaluation", "error", err, "project_type", rec.ProjectType)
				}
			}()
		}

		c.JSON(http.StatusOK, res)
	}
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil && n > 0 {
			return n
		}
		slog.Warn("Ignoring invalid integer environment value", "key", key, "value", value)
	}
	return defaultValue
}

func getEnvDurationMinutes(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil && n > 0 {
			return time.Duration(n) * time.Minute
		}
		slog.Warn("Ignoring invalid duration environment value", "key", key, "value", value)
	}
	return defaultValue
}
