package insight

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/Linkin143/TaskBuddy/models"
)

func TestBuildPrompt(t *testing.T) {
	due := time.Date(2026, time.September, 15, 0, 0, 0, 0, time.UTC)
	now := time.Date(2026, time.August, 31, 12, 0, 0, 0, time.UTC)

	tasks := []models.Task{
		{
			Title:       "Ship release",
			Description: "Final pass over the changelog and version bump before tagging",
			Status:      models.StatusInProgress,
			Priority:    models.PriorityHigh,
			DueDate:     due,
			Progress:    50,
			TodoChecklist: []models.TodoItem{
				{Text: "changelog", Completed: true},
				{Text: "tag", Completed: false},
			},
		},
		{
			Title:    "Water plants",
			Status:   models.StatusPending,
			Priority: models.PriorityLow,
			DueDate:  due,
		},
	}

	prompt := BuildPrompt("Ada", now, tasks)

	assert.Contains(t, prompt, "AI Project Manager for Ada")
	assert.Contains(t, prompt, "Current Date: Mon Aug 31 2026")
	assert.Contains(t, prompt, "- [In Progress] Ship release (High Priority)")
	assert.Contains(t, prompt, "Progress: 50% | Checklist: 1/2")
	assert.Contains(t, prompt, "- [Pending] Water plants (Low Priority)")
	assert.Contains(t, prompt, "Context: No description")
	assert.Contains(t, prompt, "Keep it under 150 words.")

	// Long descriptions are truncated to keep the prompt small.
	for _, line := range strings.Split(prompt, "\n") {
		if strings.HasPrefix(strings.TrimSpace(line), "Context:") {
			assert.LessOrEqual(t, len(strings.TrimSpace(line)), len("Context: ")+descriptionLimit)
		}
	}
}

func TestBuildPromptTruncatesDescription(t *testing.T) {
	long := strings.Repeat("a", 200)
	tasks := []models.Task{{Title: "t", Status: models.StatusPending, Priority: models.PriorityLow, Description: long}}

	prompt := BuildPrompt("Ada", time.Now(), tasks)

	assert.Contains(t, prompt, strings.Repeat("a", descriptionLimit))
	assert.NotContains(t, prompt, strings.Repeat("a", descriptionLimit+1))
}
