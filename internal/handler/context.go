package handler

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"slack_relay/internal/model"
)

const (
	// historyFetchLimit is how many prior messages are requested from Slack;
	// contextWindow is how many of them survive into the prompt.
	historyFetchLimit = 10
	contextWindow     = 6
)

var mentionPattern = regexp.MustCompile(`<@([A-Z0-9]+)>`)

// buildContext assembles a bounded window of prior conversation into a text
// block for the language model. Context is strictly best-effort: every
// failure degrades to an empty string rather than aborting the caller.
func (h *SlackHandler) buildContext(ctx context.Context, channelID, threadTS, currentUserID string) string {
	history := h.api.GetConversationHistory(ctx, channelID, threadTS, historyFetchLimit)
	if len(history) == 0 {
		return ""
	}

	kept := make([]model.HistoryMessage, 0, len(history))
	for _, msg := range history {
		if strings.TrimSpace(msg.Text) != "" {
			kept = append(kept, msg)
		}
	}
	// The final entry is the triggering message itself, already in the prompt.
	if len(kept) > 0 {
		kept = kept[:len(kept)-1]
	}
	if len(kept) > contextWindow {
		kept = kept[len(kept)-contextWindow:]
	}
	if len(kept) == 0 {
		return ""
	}

	// Profile lookups are cached for this build only; nothing is shared
	// across requests.
	profiles := map[string]*model.UserProfile{}
	resolve := func(userID string) *model.UserProfile {
		if p, ok := profiles[userID]; ok {
			return p
		}
		p := h.api.GetUserInfo(ctx, userID)
		profiles[userID] = p
		return p
	}

	botUserID, _ := h.api.BotUserID(ctx)

	var lines []string
	if currentUserID != "" {
		if p := resolve(currentUserID); p != nil && p.Label() != "" {
			lines = append(lines, fmt.Sprintf("[Current user: %s]", p.Label()))
		}
	}

	for _, msg := range kept {
		label := "Bot"
		if msg.BotID == "" {
			label = "User"
			if p := resolve(msg.UserID); p != nil && p.Label() != "" {
				label = p.Label()
			}
		}
		lines = append(lines, fmt.Sprintf("%s: %s", label, h.cleanMentions(msg.Text, botUserID, resolve)))
	}

	return strings.Join(lines, "\n")
}

// cleanMentions rewrites raw <@UXXXX> tokens so the context reads naturally:
// the bot's own mentions are dropped, everyone else becomes @<name>.
func (h *SlackHandler) cleanMentions(text, botUserID string, resolve func(string) *model.UserProfile) string {
	cleaned := mentionPattern.ReplaceAllStringFunc(text, func(token string) string {
		userID := mentionPattern.FindStringSubmatch(token)[1]
		if botUserID != "" && userID == botUserID {
			return ""
		}
		if p := resolve(userID); p != nil && p.Label() != "" {
			return "@" + p.Label()
		}
		return "@someone"
	})
	return strings.TrimSpace(strings.Join(strings.Fields(cleaned), " "))
}
