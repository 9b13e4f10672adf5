package cmd

import (
	"errors"
	"log/slog"

	"github.com/bnema/petit/internal/logger"
	"github.com/spf13/cobra"
)

func Execute() (err error) {
	rootCmd, app := newRootCmd()
	defer func() {
		err = errors.Join(err, app.close())
	}()

	return rootCmd.Execute()
}

func newRootCmd() (*cobra.Command, *app) {
	app := &app{}

	rootCmd := &cobra.Command{
		Use:           "petit",
		Short:         "petit: a small terminal timeline client",
		Long:          "petit shows your social timeline in the terminal, refreshes it in the background, and lets you like, reshare and publish posts.",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if err := app.load(cmd); err != nil {
				return err
			}
			cmd.SetContext(logger.Ctx(cmd.Context(), slog.String("command", cmd.Name())))
			return nil
		},
	}

	rootCmd.PersistentFlags().StringVar(&app.configFile, "config", "", "Config file (default ~/.config/petit/config.toml)")
	rootCmd.PersistentFlags().BoolVarP(&app.verbose, "verbose", "v", false, "Mirror log records to stderr")

	rootCmd.AddCommand(
		newVersionCmd(),
		newLoginCmd(app),
		newLogoutCmd(app),
		newTimelineCmd(app),
		newPostCmd(app),
		newSearchCmd(app),
	)

	return rootCmd, app
}
