package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/bnema/petit/internal/adapters/render/timeline"
	termadapter "github.com/bnema/petit/internal/adapters/term"
	"github.com/bnema/petit/internal/application"
	"github.com/bnema/petit/internal/events"
	"github.com/spf13/cobra"
	xterm "golang.org/x/term"
)

const defaultPrintWidth = 80

func newTimelineCmd(app *app) *cobra.Command {
	var compact bool
	var printOnce bool

	cmd := &cobra.Command{
		Use:     "timeline",
		Aliases: []string{"tl"},
		Short:   "Show the home timeline",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			session, err := app.newSession(ctx)
			if err != nil {
				return err
			}
			if err := session.Start(ctx); err != nil {
				return err
			}

			if !cmd.Flags().Changed("compact") {
				compact = app.cfg.Compact
			}
			mode := timeline.ParseMode(compact)

			if printOnce {
				return printTimeline(cmd.OutOrStdout(), session.Snapshot(), mode)
			}

			return runTimeline(ctx, app, session, mode)
		},
	}

	cmd.Flags().BoolVar(&compact, "compact", false, "One line per post")
	cmd.Flags().BoolVar(&printOnce, "print", false, "Print the timeline once and exit")

	return cmd
}

func runTimeline(ctx context.Context, app *app, session *application.TimelineSession, mode timeline.Mode) (err error) {
	terminal, err := termadapter.Open(os.Stdin, os.Stdout)
	if err != nil {
		return fmt.Errorf("open terminal: %w", err)
	}
	defer func() {
		err = errors.Join(err, terminal.Close())
	}()

	keys := defaultKeyMap()
	source := events.NewSource(ctx, terminal.Keys(), events.Options{
		TickInterval: app.cfg.TickInterval,
		Logger:       app.logger,
	})
	screen := &terminalScreen{
		terminal:     terminal,
		mode:         mode,
		tickInterval: app.cfg.TickInterval,
		help:         keys.Help(),
	}

	return application.NewRunner(session, source, keys.Lookup(), screen, app.logger).Run(ctx)
}

func printTimeline(out io.Writer, snapshot application.Snapshot, mode timeline.Mode) error {
	rendered, err := timeline.Render(timelineView(snapshot, 0, ""), timeline.Options{
		Width: outputWidth(out),
		Mode:  mode,
	})
	if err != nil {
		return fmt.Errorf("render timeline: %w", err)
	}

	_, err = fmt.Fprintln(out, rendered)
	return err
}

type terminalScreen struct {
	terminal     *termadapter.Terminal
	mode         timeline.Mode
	tickInterval time.Duration
	help         string
}

func (s *terminalScreen) Draw(snapshot application.Snapshot) error {
	width, height := s.terminal.Size()
	frame := timeline.Frame(timelineView(snapshot, s.tickInterval, s.help), timeline.Options{
		Width:  width,
		Height: height,
		Mode:   s.mode,
	})

	return s.terminal.Draw(frame)
}

// timelineView converts a session snapshot into what the renderer draws.
// A zero tickInterval hides the refresh countdown.
func timelineView(snapshot application.Snapshot, tickInterval time.Duration, help string) timeline.View {
	remaining := max(snapshot.RefreshPeriod-snapshot.TickCount, 0)

	return timeline.View{
		Posts:        snapshot.Posts,
		Selection:    snapshot.Selection,
		HasSelection: snapshot.HasSelection,
		RefreshIn:    time.Duration(remaining) * tickInterval,
		Status:       snapshot.Status,
		Help:         help,
	}
}

func outputWidth(out io.Writer) int {
	file, ok := out.(*os.File)
	if !ok || !xterm.IsTerminal(int(file.Fd())) {
		return defaultPrintWidth
	}

	width, _, err := xterm.GetSize(int(file.Fd()))
	if err != nil || width <= 0 {
		return defaultPrintWidth
	}
	return width
}
