package handler

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/slack-go/slack/slackevents"
	"go.uber.org/zap"

	"slack_relay/internal/logger"
	"slack_relay/internal/model"
)

// deliveryErrorMessage is posted as the one fallback attempt when delivering
// the primary reply fails.
const deliveryErrorMessage = "Sorry, I encountered an error processing your message."

const processTimeout = 2 * time.Minute

// dispatchMessageEvent enqueues processing of a plain message event,
// conditioned on the response policy's direct-message check.
func (h *SlackHandler) dispatchMessageEvent(ev *slackevents.MessageEvent) {
	// Ignore messages from bots to prevent loops
	if ev.BotID != "" || ev.SubType == "bot_message" || ev.SubType == "message_changed" {
		return
	}

	h.background(func() {
		ctx, cancel := context.WithTimeout(context.Background(), processTimeout)
		defer cancel()

		if !h.shouldRespond(ctx, eventTypeMessage, ev.Channel) {
			return
		}
		h.respond(ctx, ev.Channel, ev.User, ev.Text, ev.ThreadTimeStamp, ev.TimeStamp)
	})
}

// dispatchAppMentionEvent enqueues processing of an app_mention event
// unconditionally.
func (h *SlackHandler) dispatchAppMentionEvent(ev *slackevents.AppMentionEvent) {
	if ev.BotID != "" {
		return
	}

	h.background(func() {
		ctx, cancel := context.WithTimeout(context.Background(), processTimeout)
		defer cancel()

		h.respond(ctx, ev.Channel, ev.User, h.stripBotMention(ctx, ev.Text), ev.ThreadTimeStamp, ev.TimeStamp)
	})
}

// respond runs the reply pipeline for one event: build context, generate a
// reply and deliver it. Replies land in the event's thread when it has one,
// otherwise they anchor to the triggering message's own timestamp.
func (h *SlackHandler) respond(ctx context.Context, channelID, userID, text, threadTS, messageTS string) {
	log := logger.GetLogger()

	replyTS := threadTS
	if replyTS == "" {
		replyTS = messageTS
	}

	contextBlock := h.buildContext(ctx, channelID, threadTS, userID)
	reply := h.ai.GenerateResponse(ctx, text, contextBlock)

	err := h.api.SendMessage(ctx, model.OutboundMessage{
		ChannelID: channelID,
		Text:      reply,
		ThreadTS:  replyTS,
	})
	if err == nil {
		return
	}
	log.Error("failed to deliver reply", zap.String("channel", channelID), zap.Error(err))

	// One fallback attempt to the same channel/thread, then give up.
	err = h.api.SendMessage(ctx, model.OutboundMessage{
		ChannelID: channelID,
		Text:      deliveryErrorMessage,
		ThreadTS:  replyTS,
	})
	if err != nil {
		log.Error("failed to deliver fallback message", zap.String("channel", channelID), zap.Error(err))
	}
}

// stripBotMention removes the bot's own <@UXXXX> token from a mention's text
// so the model sees a clean query. The raw text is kept when the bot's user
// id cannot be resolved.
func (h *SlackHandler) stripBotMention(ctx context.Context, text string) string {
	botUserID, err := h.api.BotUserID(ctx)
	if err != nil {
		logger.GetLogger().Warn("failed to resolve bot user id", zap.Error(err))
		return text
	}
	cleaned := strings.ReplaceAll(text, fmt.Sprintf("<@%s>", botUserID), "")
	return strings.TrimSpace(cleaned)
}
