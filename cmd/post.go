package cmd

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/bnema/petit/internal/domain"
	"github.com/spf13/cobra"
)

var errEmptyPost = errors.New("post text is empty")

func newPostCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "post <text>",
		Short: "Publish a post",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			text := strings.TrimSpace(strings.Join(args, " "))
			if text == "" {
				return errEmptyPost
			}

			client, err := app.newFeedClient(ctx)
			if err != nil {
				return err
			}

			var published domain.Post
			err = runWithSpinner(ctx, cmd.ErrOrStderr(), "Publishing...", func(ctx context.Context) error {
				callCtx, cancel := context.WithTimeout(ctx, app.cfg.CallTimeout)
				defer cancel()

				post, err := client.Publish(callCtx, text)
				published = post
				return err
			})
			if errors.Is(err, domain.ErrUnauthorized) {
				return fmt.Errorf("%w: run `petit logout` then `petit login` with a fresh token", err)
			}
			if err != nil {
				return err
			}

			app.logger.InfoContext(ctx, "post published", "post_id", string(published.ID))
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "posted %s\n", published.ID)
			return err
		},
	}
}
