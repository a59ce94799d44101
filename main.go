package main

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/Linkin143/TaskBuddy/config"
	"github.com/Linkin143/TaskBuddy/handlers"
	"github.com/Linkin143/TaskBuddy/insight"
	"github.com/Linkin143/TaskBuddy/logger"
	"github.com/Linkin143/TaskBuddy/middleware"
	"github.com/Linkin143/TaskBuddy/utils"
)

func main() {
	cfg := config.Load()
	log := logger.Init(cfg.LogLevel)

	if cfg.JWTSecret == "" {
		log.Fatal("JWT_SECRET is required")
	}
	utils.InitJWT(cfg.JWTSecret)

	client, err := config.ConnectDB(cfg)
	if err != nil {
		log.WithError(err).Fatal("failed to connect to MongoDB")
	}
	defer client.Disconnect(context.Background())
	log.Info("database connected")

	e := newServer(cfg)

	log.WithField("port", cfg.Port).Info("server starting")
	if err := e.Start(":" + cfg.Port); err != nil && err != http.ErrServerClosed {
		log.WithError(err).Fatal("server stopped")
	}
}

func newServer(cfg *config.Config) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = errorHandler

	e.Use(echomw.Recover())
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins:     []string{cfg.FrontEndURL},
		AllowCredentials: true,
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete},
	}))
	e.Use(middleware.Metrics)
	e.Use(requestLogger)

	e.GET("/check", func(c echo.Context) error {
		return c.JSON(http.StatusOK, echo.Map{"status": "healthy"})
	})
	e.GET("/metrics", middleware.MetricsHandler())
	e.Static("/uploads", cfg.UploadDir)

	authLimiter := middleware.NewRateLimiter(1, 10)

	auth := e.Group("/api/auth")
	auth.POST("/sign-up", handlers.Signup, authLimiter.Middleware)
	auth.POST("/sign-in", handlers.Signin, authLimiter.Middleware)
	auth.POST("/sign-out", handlers.Signout)
	auth.GET("/profile", handlers.Profile, middleware.CookieAuth)
	auth.PUT("/update-profile", handlers.UpdateProfile, middleware.CookieAuth)
	auth.POST("/upload-image", handlers.UploadImage, middleware.CookieAuth)

	users := e.Group("/api/users", middleware.CookieAuth)
	users.GET("/get-users", handlers.GetUsers)
	users.GET("/:id", handlers.GetUserByID)

	tasks := e.Group("/api/tasks", middleware.CookieAuth)
	tasks.GET("", handlers.ListTasks)
	tasks.GET("/user-dashboard-data", handlers.UserDashboardData)
	tasks.GET("/:id", handlers.GetTaskByID)
	tasks.POST("/create", handlers.CreateTask)
	tasks.PUT("/:id", handlers.UpdateTask)
	tasks.PUT("/:id/todo", handlers.UpdateTaskChecklist)
	tasks.DELETE("/:id", handlers.DeleteTask)

	reports := e.Group("/api/reports", middleware.CookieAuth)
	reports.GET("/export/tasks", handlers.ExportTasksReport)
	reports.GET("/export/users", handlers.ExportUsersReport)

	insightHandler := handlers.NewInsightHandler(
		insight.NewOllamaClient(cfg.OllamaURL, cfg.OllamaModel))
	e.GET("/api/user/get-insights", insightHandler.GetTaskInsights, middleware.CookieAuth)

	return e
}

// errorHandler is the single emission point for API errors.
func errorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	code := http.StatusInternalServerError
	message := "Internal Server Error"

	if he, ok := err.(*echo.HTTPError); ok {
		code = he.Code
		if msg, ok := he.Message.(string); ok {
			message = msg
		}
	}

	if err := c.JSON(code, echo.Map{
		"success": false,
		"message": message,
	}); err != nil {
		logger.Log.WithError(err).Error("failed to write error response")
	}
}

func requestLogger(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		err := next(c)

		status := c.Response().Status
		if he, ok := err.(*echo.HTTPError); ok {
			status = he.Code
		}

		entry := logger.Log.WithFields(map[string]interface{}{
			"method": c.Request().Method,
			"path":   c.Request().URL.Path,
			"status": status,
		})
		if err != nil {
			entry.WithError(err).Warn("request failed")
		} else {
			entry.Info("request")
		}
		return err
	}
}
