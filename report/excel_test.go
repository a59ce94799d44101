package report

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Linkin143/TaskBuddy/models"
)

func TestBuildTaskReport(t *testing.T) {
	due := time.Date(2026, time.September, 15, 0, 0, 0, 0, time.UTC)

	rows := []TaskRow{
		{
			Task: models.Task{
				Title:       "Ship release",
				Description: "tag and publish",
				Priority:    models.PriorityHigh,
				Status:      models.StatusInProgress,
				DueDate:     due,
			},
			AssignedNames: []string{"Ada", "Grace"},
		},
	}

	f, err := BuildTaskReport(rows)
	require.NoError(t, err)

	header, err := f.GetCellValue("Sheet1", "A1")
	require.NoError(t, err)
	assert.Equal(t, "Title", header)

	title, err := f.GetCellValue("Sheet1", "A2")
	require.NoError(t, err)
	assert.Equal(t, "Ship release", title)

	dueDate, err := f.GetCellValue("Sheet1", "E2")
	require.NoError(t, err)
	assert.Equal(t, "2026-09-15", dueDate)

	assigned, err := f.GetCellValue("Sheet1", "F2")
	require.NoError(t, err)
	assert.Equal(t, "Ada, Grace", assigned)
}

func TestBuildUserReport(t *testing.T) {
	rows := []UserRow{
		{
			User: models.User{
				Name:  "Ada",
				Email: "ada@example.com",
				Role:  models.RoleUser,
			},
			TotalAssigned:   4,
			PendingTasks:    1,
			InProgressTasks: 2,
			CompletedTasks:  1,
		},
	}

	f, err := BuildUserReport(rows)
	require.NoError(t, err)

	email, err := f.GetCellValue("Sheet1", "B2")
	require.NoError(t, err)
	assert.Equal(t, "ada@example.com", email)

	total, err := f.GetCellValue("Sheet1", "D2")
	require.NoError(t, err)
	assert.Equal(t, "4", total)
}

func TestBuildTaskReportEmpty(t *testing.T) {
	f, err := BuildTaskReport(nil)
	require.NoError(t, err)

	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	assert.NotZero(t, buf.Len())
}

func TestFilename(t *testing.T) {
	assert.Equal(t, "tasks_report.xlsx", Filename("tasks"))
	assert.Equal(t, "users_report.xlsx", Filename("users"))
}
