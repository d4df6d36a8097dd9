package handler

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/slack-go/slack/slackevents"
	"go.uber.org/zap"

	"slack_relay/internal/logger"
)

// HandleRequest is the Slack events endpoint. It answers the one-time URL
// verification challenge and fans out message/mention callbacks to the
// background processing pipeline, acknowledging the request before the reply
// is posted so Slack's response deadline is always met.
func (h *SlackHandler) HandleRequest(c *gin.Context) {
	log := logger.GetLogger()

	// Read request body
	body, err := c.GetRawData()
	if err != nil || len(body) == 0 {
		log.Error("empty request body")
		c.String(http.StatusInternalServerError, "Internal Server Error")
		return
	}

	// Parse the Slack event
	eventsAPIEvent, err := slackevents.ParseEvent(
		json.RawMessage(body),
		slackevents.OptionNoVerifyToken(),
	)
	if err != nil {
		log.Error("failed to parse slack event", zap.Error(err))
		c.String(http.StatusInternalServerError, "Internal Server Error")
		return
	}

	// Handle URL verification challenge
	if eventsAPIEvent.Type == slackevents.URLVerification {
		var challenge slackevents.ChallengeResponse
		if err := json.Unmarshal(body, &challenge); err != nil {
			log.Error("failed to unmarshal challenge", zap.Error(err))
			c.String(http.StatusInternalServerError, "Internal Server Error")
			return
		}
		c.Header("Content-Type", "text/plain")
		c.String(http.StatusOK, challenge.Challenge)
		return
	}

	// Handle event callbacks
	if eventsAPIEvent.Type == slackevents.CallbackEvent {
		innerEvent := eventsAPIEvent.InnerEvent
		switch event := innerEvent.Data.(type) {
		case *slackevents.MessageEvent:
			h.dispatchMessageEvent(event)
		case *slackevents.AppMentionEvent:
			h.dispatchAppMentionEvent(event)
		default:
			log.Warn("unsupported event type", zap.String("event_type", fmt.Sprintf("%T", innerEvent.Data)))
		}
	}

	// Return success response
	c.String(http.StatusOK, "OK")
}

// background runs f detached from the HTTP request. Failures are caught and
// logged at the boundary so they never crash the process or surface to the
// already-completed response.
func (h *SlackHandler) background(f func()) {
	h.spawn(func() {
		defer func() {
			if r := recover(); r != nil {
				logger.GetLogger().Error("panic while processing event", zap.Any("panic", r))
			}
		}()
		f()
	})
}
