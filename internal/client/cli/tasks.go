package cli

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"taskflow/internal/adapter/http/validation"
	"taskflow/internal/client/api"
	"taskflow/internal/client/store"
)

func newListCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List tasks",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.load(cmd); err != nil {
				return err
			}

			search, _ := cmd.Flags().GetString("search")
			category, _ := cmd.Flags().GetString("category")
			priority, _ := cmd.Flags().GetString("priority")

			tasks := a.tasks.Filter(store.Filter{Search: search, Category: category, Priority: priority})
			if len(tasks) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No tasks found.")
				return nil
			}
			return printTasks(cmd.OutOrStdout(), tasks, time.Now().UTC())
		},
	}
	cmd.Flags().StringP("search", "s", "", "match title or description")
	cmd.Flags().StringP("category", "c", "all", "only this category")
	cmd.Flags().StringP("priority", "p", "all", "only this priority (high, medium, low)")
	return cmd
}

func newAddCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add <title>",
		Short: "Create a task",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.load(cmd); err != nil {
				return err
			}

			draft := api.Draft{Title: strings.Join(args, " ")}
			draft.Priority, _ = cmd.Flags().GetString("priority")
			draft.Category, _ = cmd.Flags().GetString("category")
			if cmd.Flags().Changed("description") {
				description, _ := cmd.Flags().GetString("description")
				draft.Description = &description
			}
			if cmd.Flags().Changed("due") {
				due, err := dueFlag(cmd)
				if err != nil {
					return err
				}
				draft.DueDate = &due
			}

			task, err := a.tasks.Create(cmd.Context(), draft)
			if err != nil {
				return err
			}
			reportSync(cmd, task, "Added")
			return nil
		},
	}
	cmd.Flags().StringP("description", "d", "", "task description")
	cmd.Flags().StringP("priority", "p", "medium", "high, medium or low")
	cmd.Flags().StringP("category", "c", "Personal", "task category")
	cmd.Flags().String("due", "", "due date (YYYY-MM-DD or RFC3339)")
	return cmd
}

func newEditCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Change fields of a task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.load(cmd); err != nil {
				return err
			}
			id, err := a.resolveID(args[0])
			if err != nil {
				return err
			}

			patch, err := patchFromFlags(cmd)
			if err != nil {
				return err
			}
			if patch.IsEmpty() {
				return errors.New("nothing to change, pass at least one field flag")
			}

			task, err := a.tasks.Update(cmd.Context(), id, patch)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated %s %q\n", shortID(task.ID), task.Title)
			return nil
		},
	}
	cmd.Flags().String("title", "", "new title")
	cmd.Flags().StringP("description", "d", "", "new description")
	cmd.Flags().Bool("clear-description", false, "remove the description")
	cmd.Flags().StringP("priority", "p", "", "high, medium or low")
	cmd.Flags().StringP("category", "c", "", "new category")
	cmd.Flags().String("due", "", "due date (YYYY-MM-DD or RFC3339)")
	cmd.Flags().Bool("clear-due", false, "remove the due date")
	cmd.Flags().Bool("completed", false, "mark as completed (use --completed=false to reopen)")
	return cmd
}

func patchFromFlags(cmd *cobra.Command) (api.Patch, error) {
	var patch api.Patch
	flags := cmd.Flags()

	if flags.Changed("title") {
		title, _ := flags.GetString("title")
		patch.Title = &title
	}
	if flags.Changed("description") {
		description, _ := flags.GetString("description")
		patch.Description = &description
	}
	patch.ClearDescription, _ = flags.GetBool("clear-description")
	if flags.Changed("priority") {
		priority, _ := flags.GetString("priority")
		patch.Priority = &priority
	}
	if flags.Changed("category") {
		category, _ := flags.GetString("category")
		patch.Category = &category
	}
	if flags.Changed("due") {
		due, err := dueFlag(cmd)
		if err != nil {
			return api.Patch{}, err
		}
		patch.DueDate = &due
	}
	patch.ClearDueDate, _ = flags.GetBool("clear-due")
	if flags.Changed("completed") {
		completed, _ := flags.GetBool("completed")
		patch.Completed = &completed
	}
	return patch, nil
}

func dueFlag(cmd *cobra.Command) (time.Time, error) {
	value, _ := cmd.Flags().GetString("due")
	due, err := validation.ParseDueDate(value)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid --due %q: use YYYY-MM-DD or RFC3339", value)
	}
	return due, nil
}

func newToggleCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "toggle <id>",
		Aliases: []string{"done"},
		Short:   "Flip a task between open and completed",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.load(cmd); err != nil {
				return err
			}
			id, err := a.resolveID(args[0])
			if err != nil {
				return err
			}

			task, err := a.tasks.Toggle(cmd.Context(), id)
			if err != nil {
				return err
			}
			state := "open"
			if task.Completed {
				state = "completed"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %q is %s\n", shortID(task.ID), task.Title, state)
			return nil
		},
	}
}

func newRemoveCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "rm <id>",
		Aliases: []string{"delete"},
		Short:   "Delete a task",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.load(cmd); err != nil {
				return err
			}
			id, err := a.resolveID(args[0])
			if err != nil {
				return err
			}

			if err := a.tasks.Delete(cmd.Context(), id); err != nil {
				return err
			}
			if _, kept := a.tasks.Get(id); kept {
				fmt.Fprintf(cmd.ErrOrStderr(), "server refused to delete %s, it is still in your list\n", shortID(id))
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s\n", shortID(id))
			return nil
		},
	}
}

func newStatsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Count total, completed, pending and overdue tasks",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.load(cmd); err != nil {
				return err
			}
			stats := a.tasks.Stats(time.Now().UTC())
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Total:     %d\n", stats.Total)
			fmt.Fprintf(out, "Completed: %d\n", stats.Completed)
			fmt.Fprintf(out, "Pending:   %d\n", stats.Pending)
			fmt.Fprintf(out, "Overdue:   %d\n", stats.Overdue)
			return nil
		},
	}
}

func newCategoriesCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "categories",
		Short: "List categories in use",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.load(cmd); err != nil {
				return err
			}
			categories := a.tasks.Categories()
			if len(categories) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No categories yet.")
				return nil
			}
			return printCategories(cmd.OutOrStdout(), categories)
		},
	}
}

// resolveID accepts a full id or an unambiguous prefix of one.
func (a *app) resolveID(arg string) (string, error) {
	arg = strings.TrimSpace(arg)
	if _, ok := a.tasks.Get(arg); ok {
		return arg, nil
	}

	var matches []string
	for _, task := range a.tasks.Tasks() {
		if arg != "" && strings.HasPrefix(task.ID, arg) {
			matches = append(matches, task.ID)
		}
	}
	switch len(matches) {
	case 1:
		return matches[0], nil
	case 0:
		// Let the store reject malformed ids with its own error.
		return arg, nil
	default:
		return "", fmt.Errorf("id prefix %q matches %d tasks", arg, len(matches))
	}
}

func reportSync(cmd *cobra.Command, task store.Task, verb string) {
	switch task.Sync {
	case store.SyncFailed:
		fmt.Fprintf(cmd.ErrOrStderr(), "%s %q locally, but the server did not accept it\n", verb, task.Title)
	default:
		fmt.Fprintf(cmd.OutOrStdout(), "%s %s %q\n", verb, shortID(task.ID), task.Title)
	}
}
