package cli

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"gopkg.in/yaml.v3"

	"taskflow/internal/adapter/http/dto"
	"taskflow/internal/client/store"
)

const shortIDLength = 8

func shortID(id string) string {
	if len(id) <= shortIDLength {
		return id
	}
	return id[:shortIDLength]
}

func printTasks(w io.Writer, tasks []store.Task, now time.Time) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tDONE\tPRIORITY\tCATEGORY\tDUE\tTITLE")
	for _, task := range tasks {
		done := " "
		if task.Completed {
			done = "x"
		}

		due := "-"
		if task.DueDate != nil {
			due = task.DueDate.UTC().Format("2006-01-02")
			if !task.Completed && task.DueDate.Before(now) {
				due += " (overdue)"
			}
		}

		title := task.Title
		if task.Sync == store.SyncFailed {
			title += " [not synced]"
		}

		fmt.Fprintf(tw, "%s\t[%s]\t%s\t%s\t%s\t%s\n",
			shortID(task.ID), done, task.Priority, task.Category, due, title)
	}
	return tw.Flush()
}

func printCategories(w io.Writer, categories []store.Category) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "CATEGORY\tTASKS\tCOLOR")
	for _, category := range categories {
		fmt.Fprintf(tw, "%s\t%d\t%s\n", category.Name, category.Count, category.Color)
	}
	return tw.Flush()
}

func printSummary(w io.Writer, summary dto.SummaryItem) {
	fmt.Fprintf(w, "%s  (%d tasks", summary.Date, summary.TaskCount)
	if len(summary.Categories) > 0 {
		fmt.Fprintf(w, ": %s", strings.Join(summary.Categories, ", "))
	}
	fmt.Fprintln(w, ")")
	fmt.Fprintln(w, summary.Summary)
	for _, task := range summary.CompletedTasks {
		fmt.Fprintf(w, "  - %s [%s, %s]\n", task.Title, task.Category, task.Priority)
	}
}

func printYAML(w io.Writer, value any) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(value); err != nil {
		return err
	}
	return enc.Close()
}
