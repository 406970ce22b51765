package model

import "time"

// Network is the human-readable name of the messaging network a chat lives
// on, derived from the chat's opaque account identifier.
type Network string

const (
	NetworkInstagram      Network = "Instagram"
	NetworkWhatsApp       Network = "WhatsApp"
	NetworkTelegram       Network = "Telegram"
	NetworkSignal         Network = "Signal"
	NetworkIMessage       Network = "iMessage"
	NetworkMessenger      Network = "Messenger"
	NetworkDiscord        Network = "Discord"
	NetworkSlack          Network = "Slack"
	NetworkLinkedIn       Network = "LinkedIn"
	NetworkX              Network = "X"
	NetworkGoogleMessages Network = "Google Messages"
	NetworkOther          Network = "Other"
)

// RawChat is a chat record exactly as the upstream listing endpoint returned
// it. Field names differ per network, so it stays an untyped map; no field
// may be assumed present. Accessors in core/chats resolve the variants.
type RawChat map[string]any

// ID returns the chat id, or "" when the record has none.
func (c RawChat) ID() string {
	id, _ := c["id"].(string)
	return id
}

// Type returns the chat type as reported upstream ("group", "single", …).
func (c RawChat) Type() string {
	t, _ := c["type"].(string)
	return t
}

// ChatMember is one non-self participant of a group chat.
type ChatMember struct {
	Name   string `json:"name"`
	Handle string `json:"handle,omitempty"`
	Avatar string `json:"avatar,omitempty"`
}

// ChatSummary is the canonical, network-agnostic view of one chat. It is
// recomputed from the RawChat on every request and never persisted.
type ChatSummary struct {
	ID      string  `json:"id"`
	Name    string  `json:"name"`
	Avatar  string  `json:"avatar,omitempty"`
	Handle  string  `json:"handle,omitempty"`
	Network Network `json:"network"`

	// LastMessageTime is the instant selected by the directionality
	// heuristic: your preview timestamp when you sent last, otherwise the
	// chat's last activity as an upper bound on your last send.
	LastMessageTime    *time.Time `json:"lastMessageTime,omitempty"`
	DaysSinceYouTexted *int       `json:"daysSinceYouTexted,omitempty"`
	DaysSinceActivity  *int       `json:"daysSinceActivity,omitempty"`
	ISentLast          bool       `json:"iSentLast"`
	Preview            string     `json:"preview"`

	IsGroup     bool         `json:"isGroup"`
	Members     []ChatMember `json:"members,omitempty"`
	MemberCount int          `json:"memberCount"`
}

// Person is a user-configured grouping of chat ids representing one
// real-world contact across networks. Owned by the settings store; the core
// only reads it.
type Person struct {
	ID          string   `json:"id"`
	DisplayName string   `json:"displayName"`
	ChatIDs     []string `json:"chatIds"`
}

// LinkedChat is the per-chat slice carried inside a PersonSignal.
type LinkedChat struct {
	ID          string       `json:"id"`
	Name        string       `json:"name"`
	Network     Network      `json:"network"`
	IsGroup     bool         `json:"isGroup"`
	Members     []ChatMember `json:"members,omitempty"`
	MemberCount int          `json:"memberCount"`
}

// PersonSignal is the ranked per-person output of the aggregator.
type PersonSignal struct {
	ID                 string       `json:"id"`
	DisplayName        string       `json:"displayName"`
	DaysSinceYouTexted *int         `json:"daysSinceYouTexted,omitempty"`
	LastMessageTime    *time.Time   `json:"lastMessageTime,omitempty"`
	Networks           []Network    `json:"networks"`
	Preview            string       `json:"preview"`
	Avatar             string       `json:"avatar,omitempty"`
	Urgency            int          `json:"urgency"`
	WaitingOnYou       bool         `json:"waitingOnYou"`
	LinkedChats        []LinkedChat `json:"linkedChats,omitempty"`
}
