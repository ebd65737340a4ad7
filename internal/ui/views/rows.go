package views

import (
	"github.com/tgienger/tasktree/internal/models"
	"github.com/tgienger/tasktree/internal/tree"
)

// treeRow is one line of the tree diagram
type treeRow struct {
	TaskID string
	Path   tree.Path // nil for the task itself
	Prefix string    // connector glyphs drawn before the node
	Title  string
	Status models.Status
}

// flattenTasks lays out every task and its subtask tree in display order
func flattenTasks(tasks []models.Task) []treeRow {
	var rows []treeRow
	for _, t := range tasks {
		rows = append(rows, treeRow{TaskID: t.ID, Title: t.Title, Status: t.Status})
		rows = appendSubtaskRows(rows, t.ID, t.Subtasks, nil, "")
	}
	return rows
}

func appendSubtaskRows(rows []treeRow, taskID string, items []models.Subtask, parent tree.Path, indent string) []treeRow {
	for i, n := range items {
		last := i == len(items)-1
		branch, carry := "├─ ", "│  "
		if last {
			branch, carry = "└─ ", "   "
		}
		p := parent.Child(i)
		rows = append(rows, treeRow{
			TaskID: taskID,
			Path:   p,
			Prefix: indent + branch,
			Title:  n.Title,
			Status: n.Status,
		})
		rows = appendSubtaskRows(rows, taskID, n.Subtasks, p, indent+carry)
	}
	return rows
}

// indexOfRow finds the row for taskID/path, or -1
func indexOfRow(rows []treeRow, taskID string, path tree.Path) int {
	for i, r := range rows {
		if r.TaskID == taskID && r.Path.Equal(path) {
			return i
		}
	}
	return -1
}
