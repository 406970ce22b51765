// Package chats normalizes raw per-network chat payloads into canonical
// summaries: network classification, timestamp normalization, and the
// "days since you texted" heuristic.
package chats

import (
	"time"

	"github.com/antighoster/antighoster/internal/model"
)

// previewLimit caps the preview text carried on a summary, in runes.
const previewLimit = 60

// Summarize turns one raw chat into its canonical summary. It is a pure
// function: now is injected so the same inputs always yield the same output.
func Summarize(raw model.RawChat, isGroup bool, now time.Time) model.ChatSummary {
	preview := mapField(raw, "preview")
	accountID := stringField(raw, "accountID", "account_id")
	others := otherParticipants(raw)

	name := stringField(raw, "name", "title")
	avatar := stringField(raw, "avatar")
	handle := ""
	if !isGroup && len(others) > 0 {
		if name == "" {
			name = stringField(others[0], "fullName", "name", "displayName")
		}
		if avatar == "" {
			avatar = stringField(others[0], "imgURL", "avatar")
		}
		handle = stringField(others[0], "username", "handle", "phoneNumber")
	}
	if name == "" {
		name = "Unknown"
	}

	// Determine when YOU last texted in this chat. If your message is the
	// preview (isSender), its timestamp is an exact measurement. If they
	// replied after you, the list endpoint never exposes your own send
	// time, so lastActivity stands in as a conservative upper bound: you
	// texted at some point no later than this. Known approximation.
	iSent := boolField(preview, "isSender")
	var lastTexted *time.Time
	if iSent {
		if ts, ok := ParseTimestamp(preview["timestamp"]); ok {
			lastTexted = &ts
		}
	} else {
		if ts, ok := ParseTimestamp(raw["lastActivity"]); ok {
			lastTexted = &ts
		}
	}

	var lastActivity *time.Time
	if ts, ok := ParseTimestamp(raw["lastActivity"]); ok {
		lastActivity = &ts
	}

	var members []model.ChatMember
	if isGroup {
		members = make([]model.ChatMember, 0, len(others))
		for _, p := range others {
			members = append(members, model.ChatMember{
				Name:   stringField(p, "fullName", "name", "displayName"),
				Handle: stringField(p, "username", "handle"),
				Avatar: stringField(p, "imgURL", "avatar"),
			})
		}
	}

	memberCount := 0
	if isGroup {
		memberCount = len(others)
	}

	return model.ChatSummary{
		ID:                 raw.ID(),
		Name:               name,
		Avatar:             avatar,
		Handle:             handle,
		Network:            ClassifyNetwork(accountID),
		LastMessageTime:    lastTexted,
		DaysSinceYouTexted: daysSince(lastTexted, now),
		DaysSinceActivity:  daysSince(lastActivity, now),
		ISentLast:          iSent,
		Preview:            truncatePreview(stringField(preview, "text")),
		IsGroup:            isGroup,
		Members:            members,
		MemberCount:        memberCount,
	}
}

// otherParticipants returns participants.items minus any entry flagged as
// self, preserving upstream order.
func otherParticipants(raw model.RawChat) []map[string]any {
	participants := mapField(raw, "participants")
	if participants == nil {
		return nil
	}
	items := sliceField(participants, "items")
	others := make([]map[string]any, 0, len(items))
	for _, it := range items {
		p, ok := it.(map[string]any)
		if !ok {
			continue
		}
		if boolField(p, "isSelf", "is_self") {
			continue
		}
		others = append(others, p)
	}
	return others
}

// daysSince returns whole elapsed days between ts and now, floored. An
// instant in the future (upstream clock skew) clamps to 0 rather than going
// negative.
func daysSince(ts *time.Time, now time.Time) *int {
	if ts == nil {
		return nil
	}
	d := int(now.Sub(*ts) / (24 * time.Hour))
	if d < 0 {
		d = 0
	}
	return &d
}

func truncatePreview(text string) string {
	runes := []rune(text)
	if len(runes) <= previewLimit {
		return text
	}
	return string(runes[:previewLimit]) + "…"
}
