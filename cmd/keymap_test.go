package cmd

import (
	"testing"
	"time"

	"github.com/bnema/petit/internal/application"
	"github.com/bnema/petit/internal/domain"
	"github.com/bnema/petit/internal/events"
	"github.com/stretchr/testify/assert"
)

func TestDefaultKeyMapLookup(t *testing.T) {
	lookup := defaultKeyMap().Lookup()

	tests := []struct {
		key    events.Key
		want   application.Action
		mapped bool
	}{
		{key: "j", want: application.ActionSelectNext, mapped: true},
		{key: "down", want: application.ActionSelectNext, mapped: true},
		{key: "k", want: application.ActionSelectPrev, mapped: true},
		{key: "up", want: application.ActionSelectPrev, mapped: true},
		{key: "esc", want: application.ActionClearSelection, mapped: true},
		{key: "l", want: application.ActionLike, mapped: true},
		{key: "f", want: application.ActionLike, mapped: true},
		{key: "r", want: application.ActionReshare, mapped: true},
		{key: "t", want: application.ActionReshare, mapped: true},
		{key: "q", want: application.ActionQuit, mapped: true},
		{key: "ctrl+c", want: application.ActionQuit, mapped: true},
		{key: "x"},
		{key: "enter"},
	}

	for _, tt := range tests {
		t.Run(string(tt.key), func(t *testing.T) {
			got, ok := lookup(tt.key)
			assert.Equal(t, tt.mapped, ok)
			if tt.mapped {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestKeyMapSkipsDisabledBindings(t *testing.T) {
	keys := defaultKeyMap()
	keys.Reshare.SetEnabled(false)

	_, ok := keys.Lookup()("r")
	assert.False(t, ok)
	assert.NotContains(t, keys.Help(), "reshare")
}

func TestKeyMapHelp(t *testing.T) {
	help := defaultKeyMap().Help()

	assert.Contains(t, help, "j/↓ next")
	assert.Contains(t, help, "l like")
	assert.Contains(t, help, "q quit")
}

func TestTimelineViewCountsDownToRefresh(t *testing.T) {
	snapshot := application.Snapshot{
		Posts:         []domain.Post{{ID: "1"}},
		Selection:     0,
		HasSelection:  true,
		TickCount:     3,
		RefreshPeriod: 60,
		Status:        "like post 1: status 500",
	}

	view := timelineView(snapshot, time.Second, "help")

	assert.Equal(t, 57*time.Second, view.RefreshIn)
	assert.Equal(t, snapshot.Posts, view.Posts)
	assert.True(t, view.HasSelection)
	assert.Equal(t, "like post 1: status 500", view.Status)
	assert.Equal(t, "help", view.Help)
}

func TestTimelineViewWithoutTickIntervalHidesCountdown(t *testing.T) {
	view := timelineView(application.Snapshot{TickCount: 10, RefreshPeriod: 60}, 0, "")

	assert.Zero(t, view.RefreshIn)
}
