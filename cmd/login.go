package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/bnema/petit/internal/domain"
	"github.com/spf13/cobra"
)

func newLoginCmd(app *app) *cobra.Command {
	var token string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Store an access token for the feed API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			_, err := app.credentials.Credentials(ctx)
			if err == nil {
				_, err = fmt.Fprintln(cmd.OutOrStdout(), "already logged in")
				return err
			}
			if !errors.Is(err, domain.ErrNotLoggedIn) {
				return err
			}

			if token == "" {
				token, err = promptToken(cmd)
				if err != nil {
					return err
				}
			}

			if _, err := app.credentials.Login(ctx, token); err != nil {
				return err
			}
			app.logger.InfoContext(ctx, "credentials stored")

			_, err = fmt.Fprintln(cmd.OutOrStdout(), "logged in")
			return err
		},
	}

	cmd.Flags().StringVar(&token, "token", "", "Access token (read from stdin when omitted)")

	return cmd
}

func promptToken(cmd *cobra.Command) (string, error) {
	if _, err := fmt.Fprint(cmd.ErrOrStderr(), "Paste access token: "); err != nil {
		return "", err
	}

	line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("read access token: %w", err)
	}

	return strings.TrimSpace(line), nil
}

func newLogoutCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the stored access token",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := app.credentials.Logout(cmd.Context()); err != nil {
				return err
			}

			_, err := fmt.Fprintln(cmd.OutOrStdout(), "logged out")
			return err
		},
	}
}
