package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

func liveTickCmd(interval time.Duration) tea.Cmd {
	return tea.Tick(interval, func(time.Time) tea.Msg {
		return liveTickMsg{}
	})
}

func expireNotificationCmd(ttl time.Duration, seq int) tea.Cmd {
	return tea.Tick(ttl, func(time.Time) tea.Msg {
		return notificationExpiredMsg{seq: seq}
	})
}

func stageTickCmd(delay time.Duration, generation int) tea.Cmd {
	return tea.Tick(delay, func(time.Time) tea.Msg {
		return stageTickMsg{generation: generation}
	})
}
