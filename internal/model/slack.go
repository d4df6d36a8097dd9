package model

// OutboundMessage is the single effect the relay produces against Slack.
// It is never mutated after construction.
type OutboundMessage struct {
	ChannelID string
	Text      string
	ThreadTS  string // empty means a top-level channel message
}

// HistoryMessage is a read-only projection of a prior Slack message,
// ordered chronologically (newest last).
type HistoryMessage struct {
	Text      string
	UserID    string
	BotID     string
	Timestamp string
}

// UserProfile holds the subset of users.info needed to label history
// messages with a human-readable name.
type UserProfile struct {
	ID          string
	Name        string
	RealName    string
	DisplayName string
}

// Label returns the best display label for the user, preferring the
// display name, then the real name, then the account name.
func (p *UserProfile) Label() string {
	if p == nil {
		return ""
	}
	if p.DisplayName != "" {
		return p.DisplayName
	}
	if p.RealName != "" {
		return p.RealName
	}
	return p.Name
}

// ChannelInfo carries the one conversations.info fact the response policy
// depends on.
type ChannelInfo struct {
	IsDirectMessage bool
}
