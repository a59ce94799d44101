package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Linkin143/TaskBuddy/config"
	"github.com/Linkin143/TaskBuddy/insight"
	"github.com/Linkin143/TaskBuddy/logger"
	"github.com/Linkin143/TaskBuddy/middleware"
	"github.com/Linkin143/TaskBuddy/models"
)

const insightSource = "Local Ollama Engine"

// InsightHandler holds the pluggable inference backend.
type InsightHandler struct {
	generator insight.Generator
}

func NewInsightHandler(generator insight.Generator) *InsightHandler {
	return &InsightHandler{generator: generator}
}

// GetTaskInsights gathers the caller's visible tasks and relays a workload
// summary from the local model. With no tasks it answers directly without
// contacting the model.
func (h *InsightHandler) GetTaskInsights(c echo.Context) error {
	viewerID, err := primitive.ObjectIDFromHex(middleware.UserID(c))
	if err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "Unauthorized")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	// Insights are always personal, even for admins.
	filter := models.VisibilityFilter(viewerID, models.RoleUser)

	cursor, err := config.Tasks().Find(ctx, filter,
		options.Find().SetSort(bson.D{{Key: "updatedAt", Value: -1}}))
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to fetch tasks")
	}
	defer cursor.Close(ctx)

	var tasks []models.Task
	if err := cursor.All(ctx, &tasks); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to decode tasks")
	}

	if len(tasks) == 0 {
		return c.JSON(http.StatusOK, echo.Map{"insight": insight.NoTasksMessage})
	}

	user, err := findUserByID(c, middleware.UserID(c))
	if err != nil {
		return err
	}

	prompt := insight.BuildPrompt(user.Name, time.Now(), tasks)

	text, err := h.generator.Generate(c.Request().Context(), prompt)
	if err != nil {
		logger.Log.WithError(err).Error("ollama insight request failed")
		return echo.NewHTTPError(http.StatusInternalServerError,
			"Local AI is offline. Ensure the task-buddy-ai container is running.")
	}

	return c.JSON(http.StatusOK, echo.Map{
		"insight": text,
		"source":  insightSource,
	})
}
