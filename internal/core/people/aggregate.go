// Package people folds the chat summaries belonging to one configured
// contact into a single ranked neglect signal.
package people

import (
	"sort"
	"time"

	"github.com/antighoster/antighoster/internal/core/chats"
	"github.com/antighoster/antighoster/internal/model"
)

const (
	// waitingWindowDays bounds how old the other party's last message may
	// be for the contact to still count as "waiting on you".
	waitingWindowDays = 30
	// staleSentinel stands in for an absent activity age so it can never
	// satisfy the waiting window.
	staleSentinel = 999
)

// BuildSignal resolves a person's configured chat ids against the raw chat
// index and folds the summaries into one signal. Ids missing from the index
// are dropped silently: a chat deleted or renamed upstream must not fail the
// whole request. With zero resolved chats every derived field stays empty
// and urgency is 0.
func BuildSignal(person model.Person, index map[string]model.RawChat, now time.Time) model.PersonSignal {
	summaries := make([]model.ChatSummary, 0, len(person.ChatIDs))
	for _, cid := range person.ChatIDs {
		raw, ok := index[cid]
		if !ok {
			continue
		}
		summaries = append(summaries, chats.Summarize(raw, raw.Type() == "group", now))
	}

	signal := model.PersonSignal{
		ID:          person.ID,
		DisplayName: person.DisplayName,
		Networks:    []model.Network{},
	}
	if len(summaries) == 0 {
		return signal
	}

	freshest := freshestSummary(summaries)
	if freshest != nil {
		signal.DaysSinceYouTexted = freshest.DaysSinceYouTexted
		signal.LastMessageTime = freshest.LastMessageTime
		signal.Preview = freshest.Preview
	}
	if signal.Preview == "" {
		for _, s := range summaries {
			if s.Preview != "" {
				signal.Preview = s.Preview
				break
			}
		}
	}

	signal.WaitingOnYou = freshest != nil && !freshest.ISentLast &&
		activityDays(freshest) < waitingWindowDays

	seen := map[model.Network]bool{}
	for _, s := range summaries {
		if !seen[s.Network] {
			seen[s.Network] = true
			signal.Networks = append(signal.Networks, s.Network)
		}
	}

	signal.Avatar = pickAvatar(summaries)
	signal.Urgency = Urgency(signal.DaysSinceYouTexted, signal.WaitingOnYou)

	signal.LinkedChats = make([]model.LinkedChat, 0, len(summaries))
	for _, s := range summaries {
		signal.LinkedChats = append(signal.LinkedChats, model.LinkedChat{
			ID:          s.ID,
			Name:        s.Name,
			Network:     s.Network,
			IsGroup:     s.IsGroup,
			Members:     s.Members,
			MemberCount: s.MemberCount,
		})
	}
	return signal
}

// Urgency buckets elapsed days into the 0-5 presentation score. First match
// wins, top to bottom.
func Urgency(days *int, waitingOnYou bool) int {
	switch {
	case days == nil && waitingOnYou:
		return 3
	case days == nil:
		return 0
	case *days <= 1:
		return 5
	case *days <= 7:
		return 4
	case *days <= 13:
		return 3
	case *days <= 30:
		return 2
	case *days <= 90:
		return 1
	default:
		return 0
	}
}

// SortSignals orders signals for display: resolvable days descending
// (longest-neglected first), then signals with no resolvable days in their
// original configuration order. Urgency is a presentation hint and is never
// the sort key.
func SortSignals(signals []model.PersonSignal) []model.PersonSignal {
	withDays := make([]model.PersonSignal, 0, len(signals))
	withoutDays := make([]model.PersonSignal, 0)
	for _, s := range signals {
		if s.DaysSinceYouTexted != nil {
			withDays = append(withDays, s)
		} else {
			withoutDays = append(withoutDays, s)
		}
	}
	sort.SliceStable(withDays, func(i, j int) bool {
		return *withDays[i].DaysSinceYouTexted > *withDays[j].DaysSinceYouTexted
	})
	return append(withDays, withoutDays...)
}

// freshestSummary returns the summary with the minimum resolvable
// DaysSinceYouTexted, or nil when none resolves.
func freshestSummary(summaries []model.ChatSummary) *model.ChatSummary {
	var freshest *model.ChatSummary
	for i := range summaries {
		s := &summaries[i]
		if s.DaysSinceYouTexted == nil {
			continue
		}
		if freshest == nil || *s.DaysSinceYouTexted < *freshest.DaysSinceYouTexted {
			freshest = s
		}
	}
	return freshest
}

func activityDays(s *model.ChatSummary) int {
	if s.DaysSinceActivity == nil {
		return staleSentinel
	}
	return *s.DaysSinceActivity
}

// avatarTier ranks networks for avatar selection: Instagram beats WhatsApp
// beats everything else. Ties inside a tier keep original chat order.
func avatarTier(n model.Network) int {
	switch n {
	case model.NetworkInstagram:
		return 0
	case model.NetworkWhatsApp:
		return 1
	default:
		return 2
	}
}

func pickAvatar(summaries []model.ChatSummary) string {
	for tier := 0; tier <= 2; tier++ {
		for _, s := range summaries {
			if avatarTier(s.Network) == tier && s.Avatar != "" {
				return s.Avatar
			}
		}
	}
	return ""
}
