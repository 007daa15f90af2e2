package cli

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"taskflow/internal/adapter/http/dto"
	"taskflow/internal/client/store"
	"taskflow/internal/core/domain"
)

func newSummaryCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Daily and weekly summaries",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := a.setup(cmd); err != nil {
				return err
			}
			return a.requireLogin()
		},
	}

	cmd.AddCommand(newSummaryGenerateCmd(a))
	cmd.AddCommand(newSummarySaveCmd(a))
	cmd.AddCommand(newSummaryShowCmd(a))
	cmd.AddCommand(newSummaryListCmd(a))
	cmd.AddCommand(newSummaryRemoveCmd(a))
	cmd.AddCommand(newSummaryRangeCmd(a))
	cmd.AddCommand(newSummaryWeeklyCmd(a))
	return cmd
}

func newSummaryGenerateCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "generate [date]",
		Short: "Generate a summary of the tasks completed on a day (default today)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			date, err := dateArg(args, 0)
			if err != nil {
				return err
			}

			generated, err := a.client.GenerateSummary(cmd.Context(), date)
			if err != nil {
				return fmt.Errorf("failed to generate summary: %w", err)
			}
			printSummary(cmd.OutOrStdout(), dto.SummaryItem{
				Date:           generated.Date,
				Summary:        generated.Summary,
				TaskCount:      generated.TaskCount,
				Categories:     generated.Categories,
				CompletedTasks: generated.CompletedTasks,
			})
			return nil
		},
	}
}

func newSummarySaveCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "save [date]",
		Short: "Save the summary of a day, generating it unless --text is given",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			date, err := dateArg(args, 0)
			if err != nil {
				return err
			}

			text, _ := cmd.Flags().GetString("text")
			var req dto.UpsertSummaryRequest
			if strings.TrimSpace(text) != "" {
				if err := a.load(cmd); err != nil {
					return err
				}
				snapshots, err := a.tasks.CompletedOn(date)
				if err != nil {
					return err
				}
				req = summaryRequest(date, text, snapshots)
			} else {
				generated, err := a.client.GenerateSummary(cmd.Context(), date)
				if err != nil {
					return fmt.Errorf("failed to generate summary: %w", err)
				}
				count := generated.TaskCount
				req = dto.UpsertSummaryRequest{
					Date:           generated.Date,
					Summary:        generated.Summary,
					TaskCount:      &count,
					Categories:     generated.Categories,
					CompletedTasks: generated.CompletedTasks,
				}
			}

			saved, err := a.client.SaveSummary(cmd.Context(), req)
			if err != nil {
				return fmt.Errorf("failed to save summary: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Saved summary for %s\n", saved.Date)
			return nil
		},
	}
	cmd.Flags().StringP("text", "t", "", "summary text to save instead of generating one")
	return cmd
}

// summaryRequest freezes the given completed tasks into a save request.
func summaryRequest(date, text string, snapshots []store.Snapshot) dto.UpsertSummaryRequest {
	count := len(snapshots)
	completed := make([]domain.CompletedTask, 0, len(snapshots))
	items := make([]dto.CompletedTaskItem, 0, len(snapshots))
	for _, snapshot := range snapshots {
		completed = append(completed, domain.CompletedTask{Category: snapshot.Category})
		completedAt := snapshot.CompletedAt.UTC().Format(time.RFC3339)
		items = append(items, dto.CompletedTaskItem{
			Title:       snapshot.Title,
			Description: snapshot.Description,
			Category:    snapshot.Category,
			Priority:    snapshot.Priority,
			CompletedAt: &completedAt,
		})
	}

	return dto.UpsertSummaryRequest{
		Date:           date,
		Summary:        strings.TrimSpace(text),
		TaskCount:      &count,
		Categories:     domain.DistinctCategories(completed),
		CompletedTasks: items,
	}
}

func newSummaryShowCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show [date]",
		Short: "Show the saved summary of a day (default today)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			date, err := dateArg(args, 0)
			if err != nil {
				return err
			}
			summary, err := a.client.GetSummary(cmd.Context(), date)
			if err != nil {
				return fmt.Errorf("failed to load summary: %w", err)
			}
			printSummary(cmd.OutOrStdout(), summary)
			return nil
		},
	}
}

func newSummaryListCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List recent saved summaries, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			limit, _ := cmd.Flags().GetInt("limit")
			if limit < 1 || limit > domain.MaxSummaryLimit {
				return fmt.Errorf("--limit must be between 1 and %d", domain.MaxSummaryLimit)
			}

			summaries, err := a.client.ListSummaries(cmd.Context(), limit)
			if err != nil {
				return fmt.Errorf("failed to list summaries: %w", err)
			}
			if len(summaries) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No summaries saved yet.")
				return nil
			}
			for i, summary := range summaries {
				if i > 0 {
					fmt.Fprintln(cmd.OutOrStdout())
				}
				printSummary(cmd.OutOrStdout(), summary)
			}
			return nil
		},
	}
	cmd.Flags().IntP("limit", "n", domain.DefaultSummaryLimit, "how many summaries to show")
	return cmd
}

func newSummaryRemoveCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "rm <date>",
		Short: "Delete the saved summary of a day",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			date, err := dateArg(args, 0)
			if err != nil {
				return err
			}
			if err := a.client.DeleteSummary(cmd.Context(), date); err != nil {
				return fmt.Errorf("failed to delete summary: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted summary for %s\n", date)
			return nil
		},
	}
}

func newSummaryRangeCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "range <start-date> <end-date>",
		Short: "List saved summaries between two dates, oldest first",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			start, end, err := dateRangeArgs(args)
			if err != nil {
				return err
			}
			summaries, err := a.client.SummaryRange(cmd.Context(), start, end)
			if err != nil {
				return fmt.Errorf("failed to list summaries: %w", err)
			}
			if len(summaries) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No summaries in this range.")
				return nil
			}
			for i, summary := range summaries {
				if i > 0 {
					fmt.Fprintln(cmd.OutOrStdout())
				}
				printSummary(cmd.OutOrStdout(), summary)
			}
			return nil
		},
	}
}

func newSummaryWeeklyCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "weekly <start-date> <end-date>",
		Short: "Combine the saved daily summaries of a range into one",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			start, end, err := dateRangeArgs(args)
			if err != nil {
				return err
			}
			weekly, err := a.client.WeeklySummary(cmd.Context(), start, end)
			if err != nil {
				return fmt.Errorf("failed to build weekly summary: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s to %s\n%s\n", weekly.StartDate, weekly.EndDate, weekly.Summary)
			return nil
		},
	}
}

// dateArg returns args[i] as a YYYY-MM-DD date, or today in UTC when absent.
func dateArg(args []string, i int) (string, error) {
	if len(args) <= i {
		return time.Now().UTC().Format(domain.SummaryDateLayout), nil
	}
	date := strings.TrimSpace(args[i])
	if !domain.ValidSummaryDate(date) {
		return "", fmt.Errorf("invalid date %q: use YYYY-MM-DD", date)
	}
	return date, nil
}

func dateRangeArgs(args []string) (string, string, error) {
	start, err := dateArg(args, 0)
	if err != nil {
		return "", "", err
	}
	end, err := dateArg(args, 1)
	if err != nil {
		return "", "", err
	}
	if end < start {
		return "", "", errors.New("end date is before start date")
	}
	return start, end, nil
}
