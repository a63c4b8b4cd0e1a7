package tui

import (
	"github.com/csheth/threadscout/internal/conversation"
	"github.com/csheth/threadscout/internal/feed"
)

type stage int

const (
	stageLanding stage = iota
	stageFeed
	stageDetail
	stageNotFound
)

const heroTagline = "Ask once, scout every thread."

const (
	minContentWidth   = 40
	horizontalPadding = 4
)

// Messages produced by commands and job runners.

type liveTickMsg struct{}

type notificationExpiredMsg struct {
	seq int
}

type batchLoadedMsg struct {
	count int
}

type refreshDoneMsg struct{}

type stageTickMsg struct {
	generation int
}

type activeNotification struct {
	note feed.Notification
	seq  int
}

type keyHint struct {
	Key         string
	Description string
}

func categoryLabel(category conversation.Category) string {
	if category == "" {
		return string(conversation.CategoryConversational)
	}
	return string(category)
}
