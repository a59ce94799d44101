package handlers

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/Linkin143/TaskBuddy/config"
	"github.com/Linkin143/TaskBuddy/middleware"
	"github.com/Linkin143/TaskBuddy/models"
)

// GetUsers returns the caller's own user-role record together with their
// assigned-task counts per status.
func GetUsers(c echo.Context) error {
	objectID, err := primitive.ObjectIDFromHex(middleware.UserID(c))
	if err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "Unauthorized")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	var user models.User
	err = config.Users().FindOne(ctx, bson.M{"_id": objectID, "role": models.RoleUser}).Decode(&user)
	if err == mongo.ErrNoDocuments {
		return echo.NewHTTPError(http.StatusNotFound, "User not found")
	}
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Database error")
	}

	counts := map[string]int64{}
	for key, status := range map[string]string{
		"pendingTasks":    models.StatusPending,
		"inProgressTasks": models.StatusInProgress,
		"completedTasks":  models.StatusCompleted,
	} {
		count, err := config.Tasks().CountDocuments(ctx, bson.M{
			"assignedTo": user.ID,
			"status":     status,
		})
		if err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, "Failed to count tasks")
		}
		counts[key] = count
	}

	return c.JSON(http.StatusOK, echo.Map{
		"id":              user.ID,
		"name":            user.Name,
		"email":           user.Email,
		"role":            user.Role,
		"profileImageUrl": user.ProfileImageURL,
		"pendingTasks":    counts["pendingTasks"],
		"inProgressTasks": counts["inProgressTasks"],
		"completedTasks":  counts["completedTasks"],
	})
}

// GetUserByID fetches one user, password excluded.
func GetUserByID(c echo.Context) error {
	user, err := findUserByID(c, c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}
