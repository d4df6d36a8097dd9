// Package slack wraps the Slack Web API behind the small surface the relay
// needs: posting replies, reading history and resolving users and channels.
package slack

import (
	"context"
	"fmt"
	"sync"

	"github.com/slack-go/slack"
	"go.uber.org/zap"

	"slack_relay/internal/logger"
	"slack_relay/internal/model"
)

// API is the client surface consumed by the event handlers. History, user
// and channel lookups are enrichment only and degrade to zero values on
// failure; SendMessage and BotUserID propagate their errors.
type API interface {
	SendMessage(ctx context.Context, msg model.OutboundMessage) error
	GetConversationHistory(ctx context.Context, channelID, threadTS string, limit int) []model.HistoryMessage
	GetUserInfo(ctx context.Context, userID string) *model.UserProfile
	GetChannelInfo(ctx context.Context, channelID string) model.ChannelInfo
	BotUserID(ctx context.Context) (string, error)
}

// Client implements API against the real Slack Web API.
type Client struct {
	api *slack.Client

	mu        sync.Mutex
	botUserID string
}

var _ API = (*Client)(nil)

// NewClient creates a new Slack client with the provided bot token.
func NewClient(token string) *Client {
	return &Client{
		api: slack.New(token),
	}
}

// SendMessage posts msg to its channel, threading when ThreadTS is set.
// Callers must not assume best-effort delivery: a failed post is returned.
func (c *Client) SendMessage(ctx context.Context, msg model.OutboundMessage) error {
	opts := []slack.MsgOption{slack.MsgOptionText(msg.Text, false)}
	if msg.ThreadTS != "" {
		opts = append(opts, slack.MsgOptionTS(msg.ThreadTS))
	}

	_, _, err := c.api.PostMessageContext(ctx, msg.ChannelID, opts...)
	if err != nil {
		return fmt.Errorf("failed to post message: %w", err)
	}
	return nil
}

// GetConversationHistory returns up to limit prior messages in chronological
// order (newest last). Thread timestamps select conversations.replies,
// otherwise the channel's top-level history is used. Any failure yields an
// empty slice: history is an enrichment, not a correctness requirement.
func (c *Client) GetConversationHistory(ctx context.Context, channelID, threadTS string, limit int) []model.HistoryMessage {
	if threadTS != "" {
		return c.threadHistory(ctx, channelID, threadTS, limit)
	}
	return c.channelHistory(ctx, channelID, limit)
}

func (c *Client) threadHistory(ctx context.Context, channelID, threadTS string, limit int) []model.HistoryMessage {
	params := &slack.GetConversationRepliesParameters{
		ChannelID: channelID,
		Timestamp: threadTS,
		Limit:     limit,
		Inclusive: true,
	}

	// conversations.replies returns messages oldest first
	messages, _, _, err := c.api.GetConversationRepliesContext(ctx, params)
	if err != nil {
		logger.GetLogger().Warn("failed to fetch thread history",
			zap.String("channel", channelID), zap.Error(err))
		return nil
	}

	history := make([]model.HistoryMessage, 0, len(messages))
	for i := range messages {
		history = append(history, convertMessage(&messages[i]))
	}
	return history
}

func (c *Client) channelHistory(ctx context.Context, channelID string, limit int) []model.HistoryMessage {
	resp, err := c.api.GetConversationHistoryContext(ctx, &slack.GetConversationHistoryParameters{
		ChannelID: channelID,
		Limit:     limit,
	})
	if err != nil {
		logger.GetLogger().Warn("failed to fetch channel history",
			zap.String("channel", channelID), zap.Error(err))
		return nil
	}
	if !resp.Ok {
		logger.GetLogger().Warn("channel history request rejected",
			zap.String("channel", channelID), zap.String("error", resp.Error))
		return nil
	}

	// conversations.history returns newest first; reverse to chronological
	history := make([]model.HistoryMessage, 0, len(resp.Messages))
	for i := len(resp.Messages) - 1; i >= 0; i-- {
		history = append(history, convertMessage(&resp.Messages[i]))
	}
	return history
}

// GetUserInfo resolves a user id to its profile, or nil when the lookup
// fails for any reason.
func (c *Client) GetUserInfo(ctx context.Context, userID string) *model.UserProfile {
	user, err := c.api.GetUserInfoContext(ctx, userID)
	if err != nil {
		logger.GetLogger().Warn("failed to fetch user info",
			zap.String("user", userID), zap.Error(err))
		return nil
	}

	return &model.UserProfile{
		ID:          user.ID,
		Name:        user.Name,
		RealName:    user.RealName,
		DisplayName: user.Profile.DisplayName,
	}
}

// GetChannelInfo reports whether channelID is a direct-message conversation,
// defaulting to false when the lookup fails.
func (c *Client) GetChannelInfo(ctx context.Context, channelID string) model.ChannelInfo {
	channel, err := c.api.GetConversationInfoContext(ctx, &slack.GetConversationInfoInput{
		ChannelID: channelID,
	})
	if err != nil {
		logger.GetLogger().Warn("failed to fetch channel info",
			zap.String("channel", channelID), zap.Error(err))
		return model.ChannelInfo{}
	}

	return model.ChannelInfo{
		IsDirectMessage: channel.IsIM || channel.IsMpIM,
	}
}

// BotUserID resolves the bot's own user id via auth.test, memoized after the
// first successful resolution for the lifetime of the client.
func (c *Client) BotUserID(ctx context.Context) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.botUserID != "" {
		return c.botUserID, nil
	}

	resp, err := c.api.AuthTestContext(ctx)
	if err != nil {
		return "", fmt.Errorf("auth test failed: %w", err)
	}

	c.botUserID = resp.UserID
	return c.botUserID, nil
}

func convertMessage(msg *slack.Message) model.HistoryMessage {
	return model.HistoryMessage{
		Text:      msg.Text,
		UserID:    msg.User,
		BotID:     msg.BotID,
		Timestamp: msg.Timestamp,
	}
}
