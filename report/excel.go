package report

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/Linkin143/TaskBuddy/models"
)

// TaskRow is one flattened task for the export sheet.
type TaskRow struct {
	Task          models.Task
	AssignedNames []string
}

// UserRow is one user with their assigned-task counts.
type UserRow struct {
	User            models.User
	TotalAssigned   int64
	PendingTasks    int64
	InProgressTasks int64
	CompletedTasks  int64
}

const sheet = "Sheet1"

// BuildTaskReport renders the task export spreadsheet in memory.
func BuildTaskReport(rows []TaskRow) (*excelize.File, error) {
	f := excelize.NewFile()

	headers := []string{"Title", "Description", "Priority", "Status", "Due Date", "Assigned To"}
	if err := writeHeader(f, headers); err != nil {
		return nil, err
	}

	for i, row := range rows {
		values := []interface{}{
			row.Task.Title,
			row.Task.Description,
			row.Task.Priority,
			row.Task.Status,
			row.Task.DueDate.Format("2006-01-02"),
			strings.Join(row.AssignedNames, ", "),
		}
		if err := writeRow(f, i+2, values); err != nil {
			return nil, err
		}
	}

	return f, nil
}

// BuildUserReport renders the per-user task-count spreadsheet in memory.
func BuildUserReport(rows []UserRow) (*excelize.File, error) {
	f := excelize.NewFile()

	headers := []string{"Name", "Email", "Role", "Total Assigned Tasks", "Pending Tasks", "In Progress Tasks", "Completed Tasks"}
	if err := writeHeader(f, headers); err != nil {
		return nil, err
	}

	for i, row := range rows {
		values := []interface{}{
			row.User.Name,
			row.User.Email,
			row.User.Role,
			row.TotalAssigned,
			row.PendingTasks,
			row.InProgressTasks,
			row.CompletedTasks,
		}
		if err := writeRow(f, i+2, values); err != nil {
			return nil, err
		}
	}

	return f, nil
}

func writeHeader(f *excelize.File, headers []string) error {
	return writeRowValues(f, 1, headers)
}

func writeRow(f *excelize.File, rowNum int, values []interface{}) error {
	for col, value := range values {
		cell, err := excelize.CoordinatesToCellName(col+1, rowNum)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, value); err != nil {
			return err
		}
	}
	return nil
}

func writeRowValues(f *excelize.File, rowNum int, values []string) error {
	converted := make([]interface{}, len(values))
	for i, v := range values {
		converted[i] = v
	}
	return writeRow(f, rowNum, converted)
}

// Filename builds the attachment filename for a report download.
func Filename(kind string) string {
	return fmt.Sprintf("%s_report.xlsx", kind)
}
