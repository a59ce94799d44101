package insight

import (
	"fmt"
	"strings"
	"time"

	"github.com/Linkin143/TaskBuddy/models"
)

// NoTasksMessage is returned without contacting the model at all.
const NoTasksMessage = "You don't have any tasks yet. Create some tasks to get local AI insights!"

const descriptionLimit = 50

// BuildPrompt renders the fixed workload-analysis prompt for the model.
// Small local models do better with a pre-digested task list, so each task is
// flattened to status, priority, due date, progress and checklist ratio.
func BuildPrompt(userName string, now time.Time, tasks []models.Task) string {
	var summary strings.Builder

	for _, t := range tasks {
		done, total := t.ChecklistCounts()

		description := t.Description
		if description == "" {
			description = "No description"
		} else if len(description) > descriptionLimit {
			description = description[:descriptionLimit]
		}

		summary.WriteString(fmt.Sprintf("- [%s] %s (%s Priority)\n", t.Status, t.Title, t.Priority))
		summary.WriteString(fmt.Sprintf("  Due: %s\n", t.DueDate.Format("Mon Jan 2 2006")))
		summary.WriteString(fmt.Sprintf("  Progress: %d%% | Checklist: %d/%d\n", t.Progress, done, total))
		summary.WriteString(fmt.Sprintf("  Context: %s\n", description))
	}

	return fmt.Sprintf(`You are an expert AI Project Manager for %s.
Current Date: %s

TASK LIST:
%s
INSTRUCTIONS:
Analyze the workload above. Do not list tasks. Provide a high-impact summary:
1. WORKLOAD SUMMARY: Evaluate if %s is over-leveraged based on High/Medium priorities.
2. RISK ASSESSMENT: Identify "At Risk" tasks (High priority AND Pending AND Due soon).
3. SUB-TASK DRILLDOWN: If tasks have 0%% progress or low checklist completion, highlight the need for sub-task focus.
4. STRATEGIC STEPS: Provide 2 bullet-pointed actions to maximize productivity today.

Tone: Direct and professional. Keep it under 150 words.`,
		userName, now.Format("Mon Jan 2 2006"), summary.String(), userName)
}
