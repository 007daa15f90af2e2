package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"taskflow/internal/adapter/http/dto"
	"taskflow/internal/client/session"
)

func newRegisterCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create an account and sign in",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			name, _ := cmd.Flags().GetString("name")
			email, _ := cmd.Flags().GetString("email")
			password, _ := cmd.Flags().GetString("password")
			if strings.TrimSpace(email) == "" || password == "" {
				return errors.New("--email and --password are required")
			}

			resp, err := a.client.Register(cmd.Context(), name, email, password)
			if err != nil {
				return fmt.Errorf("registration failed: %w", err)
			}
			return a.signIn(cmd, resp)
		},
	}
	cmd.Flags().String("name", "", "display name (default: the part of the email before @)")
	cmd.Flags().String("email", "", "email address")
	cmd.Flags().String("password", "", "password")
	return cmd
}

func newLoginCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			email, _ := cmd.Flags().GetString("email")
			password, _ := cmd.Flags().GetString("password")
			if strings.TrimSpace(email) == "" || password == "" {
				return errors.New("--email and --password are required")
			}

			resp, err := a.client.Login(cmd.Context(), email, password)
			if err != nil {
				return fmt.Errorf("login failed: %w", err)
			}
			return a.signIn(cmd, resp)
		},
	}
	cmd.Flags().String("email", "", "email address")
	cmd.Flags().String("password", "", "password")
	return cmd
}

func (a *app) signIn(cmd *cobra.Command, resp dto.AuthResponse) error {
	user := session.User{ID: resp.User.ID, Name: resp.User.Name, Email: resp.User.Email}
	if err := a.session.Save(resp.Token, user); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Signed in as %s <%s>\n", user.Name, user.Email)
	return nil
}

func newLogoutCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Sign out and forget the local task mirror",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.session.Clear(); err != nil {
				return fmt.Errorf("failed to clear session: %w", err)
			}
			if err := a.mirror.Save(nil); err != nil {
				return fmt.Errorf("failed to clear local mirror: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Signed out")
			return nil
		},
	}
}

func newWhoamiCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the signed-in user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			user, err := a.session.User()
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s <%s> (%s)\n", user.Name, user.Email, user.ID)
			return nil
		},
	}
}
