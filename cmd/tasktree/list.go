package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/spf13/cobra"
	"github.com/tgienger/tasktree/internal/models"
	"github.com/tgienger/tasktree/internal/store"
)

func newTagsCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "tags",
		Short: "Print the tag catalog with usage counts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(opts)
			if err != nil {
				return err
			}
			st := newStore(cfg)
			defer st.Close()
			renderTags(cmd.OutOrStdout(), st.Catalog(), st.Tasks())
			return nil
		},
	}
}

func newListCmd(opts *rootOptions) *cobra.Command {
	var tag, status string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "Print the starting tasks with subtask progress",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if status != "" && status != store.All {
				s, ok := models.ParseStatus(status)
				if !ok {
					return fmt.Errorf("unknown status %q", status)
				}
				status = string(s)
			}
			cfg, err := loadConfig(opts)
			if err != nil {
				return err
			}
			st := newStore(cfg)
			defer st.Close()
			st.SetFilter(tag, status)
			renderTaskTable(cmd.OutOrStdout(), st.Visible())
			return nil
		},
	}
	cmd.Flags().StringVarP(&tag, "tag", "t", store.All, "Only tasks carrying this tag")
	cmd.Flags().StringVarP(&status, "status", "s", store.All, "Only tasks in this status (pending, in-progress, completed)")
	return cmd
}

func renderTags(w io.Writer, catalog []models.Tag, tasks []models.Task) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleRounded)
	t.AppendHeader(table.Row{"ID", "Name", "Color", "Tasks"})
	for _, tag := range catalog {
		n := 0
		for _, task := range tasks {
			if task.HasTag(tag.Name) {
				n++
			}
		}
		t.AppendRow(table.Row{tag.ID, "#" + tag.Name, tag.Color, n})
	}
	t.Render()
}

func renderTaskTable(w io.Writer, tasks []models.Task) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleRounded)
	t.AppendHeader(table.Row{"ID", "Title", "Tags", "Status", "Subtasks"})

	for _, task := range tasks {
		done, total := store.Progress(task)
		progress := "-"
		if total > 0 {
			progress = fmt.Sprintf("%d/%d", done, total)
		}
		t.AppendRow(table.Row{
			task.ID,
			task.Title,
			strings.Join(task.Tags, ", "),
			statusColor(task.Status).Sprint(task.Status.Label()),
			progress,
		})
	}

	stats := store.Summarize(tasks)
	var parts []string
	for _, s := range models.Statuses {
		parts = append(parts, fmt.Sprintf("%s %d", s.Label(), stats.ByStatus[s]))
	}
	t.AppendFooter(table.Row{"", fmt.Sprintf("%d tasks", stats.Total), "", strings.Join(parts, " · "), ""})
	t.Style().Format.Footer = text.FormatDefault
	t.Render()
}

func statusColor(s models.Status) text.Colors {
	switch s {
	case models.StatusInProgress:
		return text.Colors{text.FgHiYellow}
	case models.StatusCompleted:
		return text.Colors{text.FgHiGreen}
	default:
		return text.Colors{text.FgHiRed}
	}
}
