package cmd

import (
	"strings"

	"github.com/bnema/petit/internal/application"
	"github.com/bnema/petit/internal/events"
	"github.com/charmbracelet/bubbles/key"
)

type keyMap struct {
	Next    key.Binding
	Prev    key.Binding
	Clear   key.Binding
	Like    key.Binding
	Reshare key.Binding
	Quit    key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Next:    key.NewBinding(key.WithKeys("j", "down"), key.WithHelp("j/↓", "next")),
		Prev:    key.NewBinding(key.WithKeys("k", "up"), key.WithHelp("k/↑", "prev")),
		Clear:   key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "unselect")),
		Like:    key.NewBinding(key.WithKeys("l", "f"), key.WithHelp("l", "like")),
		Reshare: key.NewBinding(key.WithKeys("r", "t"), key.WithHelp("r", "reshare")),
		Quit:    key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

type actionBinding struct {
	binding key.Binding
	action  application.Action
}

func (k keyMap) actions() []actionBinding {
	return []actionBinding{
		{k.Next, application.ActionSelectNext},
		{k.Prev, application.ActionSelectPrev},
		{k.Clear, application.ActionClearSelection},
		{k.Like, application.ActionLike},
		{k.Reshare, application.ActionReshare},
		{k.Quit, application.ActionQuit},
	}
}

// Lookup flattens the enabled bindings into a key table. The first binding
// claiming a key wins.
func (k keyMap) Lookup() application.KeyMap {
	table := map[events.Key]application.Action{}
	for _, entry := range k.actions() {
		if !entry.binding.Enabled() {
			continue
		}
		for _, name := range entry.binding.Keys() {
			if _, taken := table[events.Key(name)]; !taken {
				table[events.Key(name)] = entry.action
			}
		}
	}

	return func(pressed events.Key) (application.Action, bool) {
		action, ok := table[pressed]
		return action, ok
	}
}

func (k keyMap) Help() string {
	parts := make([]string, 0, len(k.actions()))
	for _, entry := range k.actions() {
		help := entry.binding.Help()
		if !entry.binding.Enabled() || help.Key == "" {
			continue
		}
		parts = append(parts, help.Key+" "+help.Desc)
	}

	return strings.Join(parts, " · ")
}
