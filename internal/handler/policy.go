package handler

import (
	"context"
	"strings"
)

const (
	eventTypeMessage    = "message"
	eventTypeAppMention = "app_mention"
)

// shouldRespond decides whether the bot should produce a reply at all.
// Mentions always qualify; plain messages qualify only in direct-message
// channels. Anything unexpected fails closed: silence, not a crash, is the
// safe default.
func (h *SlackHandler) shouldRespond(ctx context.Context, eventType, channelID string) bool {
	switch eventType {
	case eventTypeAppMention:
		return true
	case eventTypeMessage:
		if h.api.GetChannelInfo(ctx, channelID).IsDirectMessage {
			return true
		}
		// conversations.info can be unavailable (missing scope, transient
		// failure); DM channel ids start with "D".
		return strings.HasPrefix(channelID, "D")
	default:
		return false
	}
}
