package timeline

import (
	"fmt"
	"strings"
	"time"

	"github.com/bnema/petit/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

type Mode int

const (
	ModeExpanded Mode = iota
	ModeCompact
)

func ParseMode(compact bool) Mode {
	if compact {
		return ModeCompact
	}
	return ModeExpanded
}

// View is everything a frame depends on.
type View struct {
	Posts        []domain.Post
	Selection    int
	HasSelection bool
	RefreshIn    time.Duration
	Status       string
	Help         string
}

// Options sizes the frame. A zero Height renders every post.
type Options struct {
	Width  int
	Height int
	Mode   Mode
}

// Frame is the pure projection of a view into terminal text.
func Frame(view View, opts Options) string {
	return renderView(view, opts, newStyles())
}

// Results renders posts as a bare list with the timeline's row transform,
// windowed to opts.Height around selection. A negative selection highlights
// nothing.
func Results(posts []domain.Post, selection int, opts Options) string {
	if len(posts) == 0 {
		return ""
	}

	view := View{Posts: posts, Selection: selection, HasSelection: selection >= 0}
	return renderWindow(view, opts, newStyles(), opts.Height)
}

func renderView(view View, opts Options, s styles) string {
	header := renderHeader(view, s)
	footer := renderFooter(view, opts, s)

	if len(view.Posts) == 0 {
		return joinLines(header, s.empty.Render("No posts yet."), footer)
	}

	budget := 0
	if opts.Height > 0 {
		budget = max(opts.Height-lipgloss.Height(header)-footerHeight(footer), 1)
	}

	return joinLines(header, renderWindow(view, opts, s, budget), footer)
}

func renderHeader(view View, s styles) string {
	meta := fmt.Sprintf("%d posts", len(view.Posts))
	if view.RefreshIn > 0 {
		meta += fmt.Sprintf(" · refresh in %s", view.RefreshIn.Round(time.Second))
	}

	return lipgloss.JoinHorizontal(lipgloss.Top, s.title.Render("petit"), "  ", s.header.Render(meta))
}

func renderFooter(view View, opts Options, s styles) string {
	lines := make([]string, 0, 2)
	if view.Status != "" {
		lines = append(lines, clip(s.status.Render(view.Status), opts.Width))
	}
	if view.Help != "" {
		lines = append(lines, clip(s.help.Render(view.Help), opts.Width))
	}
	return strings.Join(lines, "\n")
}

func footerHeight(footer string) int {
	if footer == "" {
		return 0
	}
	return lipgloss.Height(footer)
}

// renderWindow draws the posts that fit in budget lines, keeping the
// selection visible. Only posts near the selection are rendered.
func renderWindow(view View, opts Options, s styles, budget int) string {
	rendered := make(map[int]string)
	row := func(i int) string {
		if out, ok := rendered[i]; ok {
			return out
		}
		selected := view.HasSelection && i == view.Selection
		out := postRow(view.Posts[i], selected, opts, s)
		rendered[i] = out
		return out
	}

	if budget <= 0 {
		rows := make([]string, 0, len(view.Posts))
		for i := range view.Posts {
			rows = append(rows, row(i))
		}
		return strings.Join(rows, "\n")
	}

	anchor := 0
	if view.HasSelection {
		anchor = min(max(view.Selection, 0), len(view.Posts)-1)
	}

	start, used := anchor, 0
	for i := anchor; i >= 0; i-- {
		h := lipgloss.Height(row(i))
		if used+h > budget && i != anchor {
			break
		}
		used += h
		start = i
	}

	lines := make([]string, 0, budget)
	for i := start; i < len(view.Posts) && len(lines) < budget; i++ {
		rowLines := strings.Split(row(i), "\n")
		if len(lines)+len(rowLines) > budget && i != anchor && i > start {
			break
		}
		lines = append(lines, rowLines[:min(len(rowLines), budget-len(lines))]...)
	}

	return strings.Join(lines, "\n")
}

// postRow turns one post into display lines. Both modes share it.
func postRow(post domain.Post, selected bool, opts Options, s styles) string {
	shown := post.Original()
	name := s.author.Render(shown.Author.Name)
	handle := s.handle.Render("@" + shown.Author.Handle)
	counts := s.counts.Render(fmt.Sprintf("🔁 %d  ♥ %d", post.ReshareCount, post.LikeCount))

	if opts.Mode == ModeCompact {
		cursor := "  "
		if selected {
			cursor = s.cursor.Render("> ")
		}
		if post.IsReshare() {
			cursor += s.reshare.Render("🔁") + " "
		}
		text := strings.Join(strings.Fields(shown.Text), " ")
		line := cursor + name + " " + handle + " " + s.text.Render(text) + "  " + counts
		return clip(line, opts.Width)
	}

	frame := s.idle
	if selected {
		frame = s.selected
	}
	textWidth := 0
	if opts.Width > 0 {
		textWidth = max(opts.Width-frame.GetHorizontalFrameSize(), 10)
	}

	parts := make([]string, 0, 4)
	if post.IsReshare() {
		parts = append(parts, s.reshare.Render(fmt.Sprintf("🔁 %s reshared", post.Author.Name)))
	}
	parts = append(parts, name+" "+handle)
	body := s.text
	if textWidth > 0 {
		body = body.Width(textWidth)
	}
	parts = append(parts, body.Render(shown.Text), counts)

	return frame.Render(lipgloss.JoinVertical(lipgloss.Left, parts...))
}

func clip(line string, width int) string {
	if width <= 0 {
		return line
	}
	return lipgloss.NewStyle().MaxWidth(width).Render(line)
}

func joinLines(parts ...string) string {
	lines := make([]string, 0, len(parts))
	for _, part := range parts {
		if part != "" {
			lines = append(lines, part)
		}
	}
	return strings.Join(lines, "\n")
}
