package config

import "github.com/tgienger/tasktree/internal/models"

// DemoTasks is the sample tree loaded by --demo
func DemoTasks() []models.Task {
	return []models.Task{
		{
			ID:     "1",
			Title:  "Moscow trip",
			Status: models.StatusCompleted,
			Tags:   []string{"design"},
			Subtasks: []models.Subtask{
				{
					ID: "1-1", Title: "Book flights", Status: models.StatusCompleted,
					Subtasks: []models.Subtask{
						{ID: "1-1-1", Title: "Compare fares", Status: models.StatusPending},
					},
				},
				{
					ID: "1-2", Title: "Hotel", Status: models.StatusPending,
					Subtasks: []models.Subtask{
						{ID: "1-2-1", Title: "Shortlist", Status: models.StatusPending},
						{ID: "1-2-2", Title: "Reserve", Status: models.StatusPending},
					},
				},
				{ID: "1-3", Title: "Visa", Status: models.StatusPending},
				{ID: "1-4", Title: "Itinerary", Status: models.StatusPending},
			},
		},
	}
}
