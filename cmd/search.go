package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/bnema/petit/internal/adapters/render/timeline"
	"github.com/bnema/petit/internal/domain"
	"github.com/bnema/petit/internal/ports"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

var errSearchQueryRequired = errors.New("search query is required with --print")

type searchFunc func(ctx context.Context, query string) ([]domain.Post, error)

func newSearchCmd(app *app) *cobra.Command {
	var compact bool
	var printOnce bool

	cmd := &cobra.Command{
		Use:   "search [query]",
		Short: "Search posts",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			query := strings.TrimSpace(strings.Join(args, " "))
			if printOnce && query == "" {
				return errSearchQueryRequired
			}

			client, err := app.newFeedClient(ctx)
			if err != nil {
				return err
			}
			search := app.searchWith(client)

			if !cmd.Flags().Changed("compact") {
				compact = app.cfg.Compact
			}
			mode := timeline.ParseMode(compact)

			if printOnce {
				return printSearch(ctx, cmd.OutOrStdout(), search, query, mode)
			}

			p := tea.NewProgram(
				newSearchModel(ctx, search, query, mode),
				tea.WithAltScreen(),
				tea.WithContext(ctx),
				tea.WithInput(cmd.InOrStdin()),
				tea.WithOutput(cmd.OutOrStdout()),
			)
			_, err = p.Run()
			return err
		},
	}

	cmd.Flags().BoolVar(&compact, "compact", false, "One line per result")
	cmd.Flags().BoolVar(&printOnce, "print", false, "Print the results once and exit")

	return cmd
}

// searchWith bounds each search by the call timeout and the fetch limit.
func (a *app) searchWith(searcher ports.Searcher) searchFunc {
	return func(ctx context.Context, query string) ([]domain.Post, error) {
		callCtx, cancel := context.WithTimeout(ctx, a.cfg.CallTimeout)
		defer cancel()

		posts, err := searcher.Search(callCtx, query, a.cfg.FetchLimit)
		if err != nil {
			a.logger.WarnContext(ctx, "search failed", "error", err)
			return nil, err
		}
		a.logger.DebugContext(ctx, "search finished", "results", len(posts))
		return posts, nil
	}
}

func printSearch(ctx context.Context, out io.Writer, search searchFunc, query string, mode timeline.Mode) error {
	posts, err := search(ctx, query)
	if err != nil {
		return err
	}

	if _, err := fmt.Fprintln(out, resultSummary(len(posts), query)); err != nil {
		return err
	}
	if len(posts) == 0 {
		return nil
	}

	_, err = fmt.Fprintln(out, timeline.Results(posts, -1, timeline.Options{Width: outputWidth(out), Mode: mode}))
	return err
}

func resultSummary(n int, query string) string {
	if n == 1 {
		return fmt.Sprintf("1 result for %q", query)
	}
	return fmt.Sprintf("%d results for %q", n, query)
}

type searchKeyMap struct {
	Submit key.Binding
	Quit   key.Binding
	Next   key.Binding
	Prev   key.Binding
}

func defaultSearchKeyMap() searchKeyMap {
	return searchKeyMap{
		Submit: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "search")),
		Quit:   key.NewBinding(key.WithKeys("esc", "ctrl+c"), key.WithHelp("esc", "quit")),
		Next:   key.NewBinding(key.WithKeys("down", "ctrl+n"), key.WithHelp("↓", "next")),
		Prev:   key.NewBinding(key.WithKeys("up", "ctrl+p"), key.WithHelp("↑", "prev")),
	}
}

func (k searchKeyMap) help() string {
	parts := make([]string, 0, 4)
	for _, binding := range []key.Binding{k.Submit, k.Next, k.Prev, k.Quit} {
		h := binding.Help()
		parts = append(parts, h.Key+" "+h.Desc)
	}
	return strings.Join(parts, " · ")
}

type searchResultMsg struct {
	query string
	posts []domain.Post
	err   error
}

type searchModel struct {
	ctx       context.Context
	search    searchFunc
	keys      searchKeyMap
	input     textinput.Model
	mode      timeline.Mode
	width     int
	height    int
	results   []domain.Post
	selection int
	searching bool
	status    string
}

func newSearchModel(ctx context.Context, search searchFunc, query string, mode timeline.Mode) searchModel {
	input := textinput.New()
	input.Prompt = "search> "
	input.Placeholder = "type a query, enter to search"
	input.SetValue(query)
	input.Focus()

	m := searchModel{
		ctx:    ctx,
		search: search,
		keys:   defaultSearchKeyMap(),
		input:  input,
		mode:   mode,
	}
	if strings.TrimSpace(query) != "" {
		m.searching = true
		m.status = "searching..."
	}

	return m
}

func (m searchModel) Init() tea.Cmd {
	if !m.searching {
		return textinput.Blink
	}
	return tea.Batch(textinput.Blink, m.runSearch(strings.TrimSpace(m.input.Value())))
}

func (m searchModel) runSearch(query string) tea.Cmd {
	ctx, search := m.ctx, m.search
	return func() tea.Msg {
		posts, err := search(ctx, query)
		return searchResultMsg{query: query, posts: posts, err: err}
	}
}

func (m searchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.input.Width = max(msg.Width-lipgloss.Width(m.input.Prompt)-1, 10)
		return m, nil
	case searchResultMsg:
		m.searching = false
		if msg.err != nil {
			m.status = msg.err.Error()
			return m, nil
		}
		m.results = msg.posts
		m.selection = 0
		m.status = resultSummary(len(msg.posts), msg.query)
		return m, nil
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Submit):
			query := strings.TrimSpace(m.input.Value())
			if query == "" || m.searching {
				return m, nil
			}
			m.searching = true
			m.status = "searching..."
			return m, m.runSearch(query)
		case key.Matches(msg, m.keys.Next):
			if len(m.results) > 0 {
				m.selection = min(m.selection+1, len(m.results)-1)
			}
			return m, nil
		case key.Matches(msg, m.keys.Prev):
			m.selection = max(m.selection-1, 0)
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m searchModel) View() string {
	budget := 0
	if m.height > 0 {
		budget = max(m.height-3, 1)
	}

	lines := []string{m.input.View()}
	if m.status != "" {
		lines = append(lines, searchStatusStyle.Render(m.status))
	}
	if results := timeline.Results(m.results, m.selection, timeline.Options{Width: m.width, Height: budget, Mode: m.mode}); results != "" {
		lines = append(lines, results)
	}
	lines = append(lines, searchHelpStyle.Render(m.keys.help()))

	return strings.Join(lines, "\n")
}

var (
	searchStatusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	searchHelpStyle   = lipgloss.NewStyle().Faint(true)
)
