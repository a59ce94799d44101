package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Linkin143/TaskBuddy/config"
	"github.com/Linkin143/TaskBuddy/middleware"
	"github.com/Linkin143/TaskBuddy/models"
)

type CreateTaskRequest struct {
	Title         string            `json:"title"`
	Description   string            `json:"description"`
	Priority      string            `json:"priority"`
	Status        string            `json:"status"`
	DueDate       time.Time         `json:"dueDate"`
	AssignedTo    []string          `json:"assignedTo"`
	TodoChecklist []models.TodoItem `json:"todoChecklist"`
	Attachments   []string          `json:"attachments"`
}

// CreateTask inserts a new task owned by the authenticated user. Checklist
// items always start incomplete regardless of what the client sent.
func CreateTask(c echo.Context) error {
	var req CreateTaskRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request")
	}

	if req.Title == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "Title is required")
	}

	creatorID, err := primitive.ObjectIDFromHex(middleware.UserID(c))
	if err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "Unauthorized")
	}

	assignedTo, err := parseObjectIDs(req.AssignedTo)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid assignedTo id")
	}

	checklist := make([]models.TodoItem, len(req.TodoChecklist))
	for i, item := range req.TodoChecklist {
		checklist[i] = models.TodoItem{Text: item.Text, Completed: false}
	}

	status := req.Status
	if status == "" {
		status = models.StatusPending
	}
	priority := req.Priority
	if priority == "" {
		priority = models.PriorityMedium
	}

	task := models.Task{
		Title:         req.Title,
		Description:   req.Description,
		Priority:      priority,
		Status:        status,
		DueDate:       req.DueDate,
		CreatedBy:     creatorID,
		AssignedTo:    assignedTo,
		TodoChecklist: checklist,
		Attachments:   req.Attachments,
		Progress:      0,
		CreatedAt:     time.Now(),
		UpdatedAt:     time.Now(),
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	result, err := config.Tasks().InsertOne(ctx, task)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to create task")
	}
	task.ID = result.InsertedID.(primitive.ObjectID)

	return c.JSON(http.StatusCreated, task)
}

// ListTasks returns the tasks visible to the caller, optionally filtered by
// status, plus a summary of counts per status over the same visibility set.
func ListTasks(c echo.Context) error {
	viewerID, err := primitive.ObjectIDFromHex(middleware.UserID(c))
	if err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "Unauthorized")
	}

	visibility := models.VisibilityFilter(viewerID, middleware.Role(c))

	filter := bson.M{}
	for k, v := range visibility {
		filter[k] = v
	}
	if status := c.QueryParam("status"); status != "" {
		filter["status"] = status
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	cursor, err := config.Tasks().Find(ctx, filter,
		options.Find().SetSort(bson.D{{Key: "updatedAt", Value: -1}}))
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to fetch tasks")
	}
	defer cursor.Close(ctx)

	tasks := []models.Task{}
	if err := cursor.All(ctx, &tasks); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to decode tasks")
	}

	summary, err := statusSummary(ctx, visibility)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to count tasks")
	}

	return c.JSON(http.StatusOK, echo.Map{
		"tasks":         tasks,
		"statusSummary": summary,
	})
}

// GetTaskByID fetches a single task.
func GetTaskByID(c echo.Context) error {
	task, err := findTaskByID(c, c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, task)
}

type UpdateTaskRequest struct {
	Title         *string            `json:"title"`
	Description   *string            `json:"description"`
	Priority      *string            `json:"priority"`
	Status        *string            `json:"status"`
	DueDate       *time.Time         `json:"dueDate"`
	AssignedTo    *[]string          `json:"assignedTo"`
	TodoChecklist *[]models.TodoItem `json:"todoChecklist"`
	Attachments   *[]string          `json:"attachments"`
}

// UpdateTask applies a partial update. Replacing the checklist recomputes
// progress and may promote or demote the status.
func UpdateTask(c echo.Context) error {
	task, err := findTaskByID(c, c.Param("id"))
	if err != nil {
		return err
	}

	var req UpdateTaskRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request")
	}

	if req.Title != nil {
		task.Title = *req.Title
	}
	if req.Description != nil {
		task.Description = *req.Description
	}
	if req.Priority != nil {
		task.Priority = *req.Priority
	}
	if req.Status != nil {
		task.Status = *req.Status
	}
	if req.DueDate != nil {
		task.DueDate = *req.DueDate
	}
	if req.AssignedTo != nil {
		assignedTo, err := parseObjectIDs(*req.AssignedTo)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "Invalid assignedTo id")
		}
		task.AssignedTo = assignedTo
	}
	if req.Attachments != nil {
		task.Attachments = *req.Attachments
	}
	if req.TodoChecklist != nil {
		task.TodoChecklist = *req.TodoChecklist
		task.RecomputeProgress()
	}
	task.UpdatedAt = time.Now()

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	result, err := config.Tasks().ReplaceOne(ctx, bson.M{"_id": task.ID}, task)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to update task")
	}
	if result.MatchedCount == 0 {
		return echo.NewHTTPError(http.StatusNotFound, "Task not found")
	}

	return c.JSON(http.StatusOK, task)
}

type UpdateChecklistRequest struct {
	TodoChecklist []models.TodoItem `json:"todoChecklist"`
}

// UpdateTaskChecklist replaces the checklist and recomputes progress.
func UpdateTaskChecklist(c echo.Context) error {
	task, err := findTaskByID(c, c.Param("id"))
	if err != nil {
		return err
	}

	var req UpdateChecklistRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request")
	}

	task.TodoChecklist = req.TodoChecklist
	task.RecomputeProgress()
	task.UpdatedAt = time.Now()

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	if _, err := config.Tasks().ReplaceOne(ctx, bson.M{"_id": task.ID}, task); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to update checklist")
	}

	return c.JSON(http.StatusOK, task)
}

// DeleteTask removes the task.
func DeleteTask(c echo.Context) error {
	objectID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Task not found")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	result, err := config.Tasks().DeleteOne(ctx, bson.M{"_id": objectID})
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to delete task")
	}
	if result.DeletedCount == 0 {
		return echo.NewHTTPError(http.StatusNotFound, "Task not found")
	}

	return c.JSON(http.StatusOK, echo.Map{"message": "Task deleted successfully"})
}

// UserDashboardData returns the chart counts and recent tasks the dashboard
// renders. Status keys have spaces stripped to match the chart component.
func UserDashboardData(c echo.Context) error {
	viewerID, err := primitive.ObjectIDFromHex(middleware.UserID(c))
	if err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "Unauthorized")
	}

	visibility := models.VisibilityFilter(viewerID, middleware.Role(c))

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	summary, err := statusSummary(ctx, visibility)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to count tasks")
	}

	priorities := map[string]int64{}
	for _, priority := range []string{models.PriorityLow, models.PriorityMedium, models.PriorityHigh} {
		count, err := countWithStatus(ctx, visibility, "priority", priority)
		if err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, "Failed to count tasks")
		}
		priorities[priority] = count
	}

	cursor, err := config.Tasks().Find(ctx, visibility,
		options.Find().SetSort(bson.D{{Key: "updatedAt", Value: -1}}).SetLimit(10))
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to fetch tasks")
	}
	defer cursor.Close(ctx)

	recentTasks := []models.Task{}
	if err := cursor.All(ctx, &recentTasks); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to decode tasks")
	}

	return c.JSON(http.StatusOK, echo.Map{
		"charts": echo.Map{
			"taskDistribution": echo.Map{
				"All":        summary["all"],
				"Pending":    summary["pendingTasks"],
				"InProgress": summary["inProgressTasks"],
				"Completed":  summary["completedTasks"],
			},
			"taskPriorityLevels": priorities,
		},
		"recentTasks": recentTasks,
	})
}

func statusSummary(ctx context.Context, visibility bson.M) (map[string]int64, error) {
	all, err := config.Tasks().CountDocuments(ctx, visibility)
	if err != nil {
		return nil, err
	}

	summary := map[string]int64{"all": all}
	for key, status := range map[string]string{
		"pendingTasks":    models.StatusPending,
		"inProgressTasks": models.StatusInProgress,
		"completedTasks":  models.StatusCompleted,
	} {
		count, err := countWithStatus(ctx, visibility, "status", status)
		if err != nil {
			return nil, err
		}
		summary[key] = count
	}

	return summary, nil
}

func countWithStatus(ctx context.Context, visibility bson.M, field, value string) (int64, error) {
	filter := bson.M{field: value}
	for k, v := range visibility {
		filter[k] = v
	}
	return config.Tasks().CountDocuments(ctx, filter)
}

func findTaskByID(c echo.Context, id string) (*models.Task, error) {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, echo.NewHTTPError(http.StatusNotFound, "Task not found")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	var task models.Task
	err = config.Tasks().FindOne(ctx, bson.M{"_id": objectID}).Decode(&task)
	if err == mongo.ErrNoDocuments {
		return nil, echo.NewHTTPError(http.StatusNotFound, "Task not found")
	}
	if err != nil {
		return nil, echo.NewHTTPError(http.StatusInternalServerError, "Database error")
	}

	return &task, nil
}

func parseObjectIDs(hexIDs []string) ([]primitive.ObjectID, error) {
	ids := make([]primitive.ObjectID, 0, len(hexIDs))
	for _, hex := range hexIDs {
		id, err := primitive.ObjectIDFromHex(hex)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}
