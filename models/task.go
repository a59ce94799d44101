package models

import (
	"math"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	StatusPending    = "Pending"
	StatusInProgress = "In Progress"
	StatusCompleted  = "Completed"

	PriorityLow    = "Low"
	PriorityMedium = "Medium"
	PriorityHigh   = "High"
)

type TodoItem struct {
	Text      string `bson:"text" json:"text"`
	Completed bool   `bson:"completed" json:"completed"`
}

type Task struct {
	ID            primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	Title         string               `bson:"title" json:"title"`
	Description   string               `bson:"description,omitempty" json:"description"`
	Priority      string               `bson:"priority" json:"priority"`
	Status        string               `bson:"status" json:"status"`
	DueDate       time.Time            `bson:"dueDate" json:"dueDate"`
	CreatedBy     primitive.ObjectID   `bson:"createdBy" json:"createdBy"`
	AssignedTo    []primitive.ObjectID `bson:"assignedTo" json:"assignedTo"`
	TodoChecklist []TodoItem           `bson:"todoChecklist" json:"todoChecklist"`
	Attachments   []string             `bson:"attachments" json:"attachments"`
	Progress      int                  `bson:"progress" json:"progress"`
	CreatedAt     time.Time            `bson:"createdAt" json:"createdAt"`
	UpdatedAt     time.Time            `bson:"updatedAt" json:"updatedAt"`
}

// ChecklistCounts returns how many checklist items are done and the total.
func (t *Task) ChecklistCounts() (done, total int) {
	for _, item := range t.TodoChecklist {
		if item.Completed {
			done++
		}
	}
	return done, len(t.TodoChecklist)
}

// RecomputeProgress derives progress from the checklist and applies the
// status transition rule. The server is the single authority here: a fully
// checked list promotes the task to Completed, and an incomplete item demotes
// a Completed task back to In Progress.
func (t *Task) RecomputeProgress() {
	done, total := t.ChecklistCounts()

	if total == 0 {
		t.Progress = 0
	} else {
		t.Progress = int(math.Round(float64(done) / float64(total) * 100))
	}

	if total > 0 && t.Progress == 100 {
		t.Status = StatusCompleted
	} else if t.Status == StatusCompleted {
		t.Status = StatusInProgress
	}
}

// VisibilityFilter builds the Mongo filter for tasks a user may see.
// Admins see everything, everyone else only tasks they created or are
// assigned to.
func VisibilityFilter(userID primitive.ObjectID, role string) bson.M {
	if role == RoleAdmin {
		return bson.M{}
	}
	return bson.M{
		"$or": []bson.M{
			{"createdBy": userID},
			{"assignedTo": userID},
		},
	}
}
