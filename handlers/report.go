package handlers

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/xuri/excelize/v2"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/Linkin143/TaskBuddy/config"
	"github.com/Linkin143/TaskBuddy/models"
	"github.com/Linkin143/TaskBuddy/report"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ExportTasksReport streams all tasks as a spreadsheet download.
func ExportTasksReport(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	tasks, err := allTasks(ctx)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to fetch tasks")
	}

	users, err := allUsers(ctx)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to fetch users")
	}

	namesByID := make(map[primitive.ObjectID]string, len(users))
	for _, u := range users {
		namesByID[u.ID] = u.Name
	}

	rows := make([]report.TaskRow, 0, len(tasks))
	for _, t := range tasks {
		names := make([]string, 0, len(t.AssignedTo))
		for _, id := range t.AssignedTo {
			if name, ok := namesByID[id]; ok {
				names = append(names, name)
			}
		}
		rows = append(rows, report.TaskRow{Task: t, AssignedNames: names})
	}

	f, err := report.BuildTaskReport(rows)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to build report")
	}

	return sendWorkbook(c, f, report.Filename("tasks"))
}

// ExportUsersReport streams all users with their task counts as a spreadsheet.
func ExportUsersReport(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	users, err := allUsers(ctx)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to fetch users")
	}

	rows := make([]report.UserRow, 0, len(users))
	for _, u := range users {
		row := report.UserRow{User: u}

		row.TotalAssigned, err = config.Tasks().CountDocuments(ctx, bson.M{"assignedTo": u.ID})
		if err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, "Failed to count tasks")
		}
		row.PendingTasks, err = config.Tasks().CountDocuments(ctx,
			bson.M{"assignedTo": u.ID, "status": models.StatusPending})
		if err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, "Failed to count tasks")
		}
		row.InProgressTasks, err = config.Tasks().CountDocuments(ctx,
			bson.M{"assignedTo": u.ID, "status": models.StatusInProgress})
		if err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, "Failed to count tasks")
		}
		row.CompletedTasks, err = config.Tasks().CountDocuments(ctx,
			bson.M{"assignedTo": u.ID, "status": models.StatusCompleted})
		if err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, "Failed to count tasks")
		}

		rows = append(rows, row)
	}

	f, err := report.BuildUserReport(rows)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to build report")
	}

	return sendWorkbook(c, f, report.Filename("users"))
}

func sendWorkbook(c echo.Context, f *excelize.File, filename string) error {
	buf, err := f.WriteToBuffer()
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to write report")
	}

	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Blob(http.StatusOK, xlsxContentType, buf.Bytes())
}

func allTasks(ctx context.Context) ([]models.Task, error) {
	cursor, err := config.Tasks().Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var tasks []models.Task
	if err := cursor.All(ctx, &tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}

func allUsers(ctx context.Context) ([]models.User, error) {
	cursor, err := config.Users().Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var users []models.User
	if err := cursor.All(ctx, &users); err != nil {
		return nil, err
	}
	return users, nil
}
