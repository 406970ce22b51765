package people

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/antighoster/antighoster/internal/model"
)

var testNow = time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)

// sentChat builds a direct chat whose preview you sent the given number of
// days before testNow.
func sentChat(id, accountID string, daysAgo int) model.RawChat {
	ts := testNow.Add(-time.Duration(daysAgo)*24*time.Hour - time.Hour)
	return model.RawChat{
		"id":        id,
		"accountID": accountID,
		"name":      "chat " + id,
		"avatar":    "https://img/" + id + ".jpg",
		"preview": map[string]any{
			"text":      "hello from " + id,
			"isSender":  true,
			"timestamp": ts.Format(time.RFC3339),
		},
		"lastActivity": ts.Format(time.RFC3339),
	}
}

func index(chats ...model.RawChat) map[string]model.RawChat {
	out := map[string]model.RawChat{}
	for _, c := range chats {
		out[c.ID()] = c
	}
	return out
}

func intPtr(v int) *int { return &v }

func TestUrgencyBuckets(t *testing.T) {
	cases := []struct {
		days    *int
		waiting bool
		want    int
	}{
		{nil, true, 3},
		{nil, false, 0},
		{intPtr(0), false, 5},
		{intPtr(1), false, 5},
		{intPtr(2), false, 4},
		{intPtr(7), false, 4},
		{intPtr(8), false, 3},
		{intPtr(13), false, 3},
		{intPtr(14), false, 2},
		{intPtr(30), false, 2},
		{intPtr(31), false, 1},
		{intPtr(90), false, 1},
		{intPtr(91), false, 0},
	}
	for _, tc := range cases {
		got := Urgency(tc.days, tc.waiting)
		if got != tc.want {
			if tc.days == nil {
				t.Errorf("Urgency(nil, %v) = %d, want %d", tc.waiting, got, tc.want)
			} else {
				t.Errorf("Urgency(%d, %v) = %d, want %d", *tc.days, tc.waiting, got, tc.want)
			}
		}
	}
}

func TestBuildSignalFreshestWins(t *testing.T) {
	person := model.Person{
		ID:          "p1",
		DisplayName: "Ada",
		ChatIDs:     []string{"old", "recent"},
	}
	idx := index(sentChat("old", "whatsapp1", 40), sentChat("recent", "instagram1", 2))

	sig := BuildSignal(person, idx, testNow)

	require.NotNil(t, sig.DaysSinceYouTexted)
	assert.Equal(t, 2, *sig.DaysSinceYouTexted)
	assert.Len(t, sig.LinkedChats, 2, "linkedChats must list both chats")
	assert.Equal(t, []model.Network{model.NetworkWhatsApp, model.NetworkInstagram}, sig.Networks)
	require.NotNil(t, sig.LastMessageTime)
	assert.Equal(t, 4, sig.Urgency)
}

func TestBuildSignalUnresolvedIDsDropped(t *testing.T) {
	person := model.Person{ID: "p2", DisplayName: "Bob", ChatIDs: []string{"gone", "also-gone"}}

	sig := BuildSignal(person, index(), testNow)

	assert.Nil(t, sig.DaysSinceYouTexted)
	assert.Nil(t, sig.LastMessageTime)
	assert.Equal(t, 0, sig.Urgency)
	assert.False(t, sig.WaitingOnYou, "no resolved chats can never be waiting")
	assert.Empty(t, sig.LinkedChats)
	assert.Empty(t, sig.Networks)
}

func TestBuildSignalWaitingOnYou(t *testing.T) {
	theirReply := model.RawChat{
		"id":        "c1",
		"accountID": "telegram1",
		"name":      "chat",
		"preview": map[string]any{
			"text":     "are you around?",
			"isSender": false,
		},
		"lastActivity": testNow.Add(-3 * 24 * time.Hour).Format(time.RFC3339),
	}
	person := model.Person{ID: "p", DisplayName: "P", ChatIDs: []string{"c1"}}

	sig := BuildSignal(person, index(theirReply), testNow)
	assert.True(t, sig.WaitingOnYou)
	assert.Equal(t, 3, *sig.DaysSinceYouTexted)

	// Same shape but the reply is older than the waiting window.
	theirReply["lastActivity"] = testNow.Add(-45 * 24 * time.Hour).Format(time.RFC3339)
	sig = BuildSignal(person, index(theirReply), testNow)
	assert.False(t, sig.WaitingOnYou, "a 45-day-old reply is outside the window")
}

func TestBuildSignalWaitingRequiresActivityAge(t *testing.T) {
	// No resolvable lastActivity: the absent age defaults to a sentinel
	// that can never satisfy the window, but daysSince is also absent so
	// urgency comes from the waiting branch only when waiting holds.
	noTimestamps := model.RawChat{
		"id":        "c1",
		"accountID": "signal1",
		"preview":   map[string]any{"text": "hey", "isSender": false},
	}
	person := model.Person{ID: "p", DisplayName: "P", ChatIDs: []string{"c1"}}

	sig := BuildSignal(person, index(noTimestamps), testNow)
	assert.Nil(t, sig.DaysSinceYouTexted)
	assert.False(t, sig.WaitingOnYou)
	assert.Equal(t, 0, sig.Urgency)
}

func TestBuildSignalAvatarPriority(t *testing.T) {
	wa := sentChat("wa", "whatsapp1", 5)
	ig := sentChat("ig", "instagram1", 9)
	other := sentChat("tg", "telegram1", 1)
	person := model.Person{ID: "p", DisplayName: "P", ChatIDs: []string{"tg", "wa", "ig"}}

	sig := BuildSignal(person, index(wa, ig, other), testNow)
	assert.Equal(t, "https://img/ig.jpg", sig.Avatar, "Instagram avatar outranks the rest")

	// Without an Instagram avatar, WhatsApp wins over Telegram even though
	// Telegram comes first in chat order.
	delete(ig, "avatar")
	ig["participants"] = map[string]any{"items": []any{}}
	sig = BuildSignal(person, index(wa, ig, other), testNow)
	assert.Equal(t, "https://img/wa.jpg", sig.Avatar)
}

func TestSortSignals(t *testing.T) {
	sigs := []model.PersonSignal{
		{ID: "fresh", DaysSinceYouTexted: intPtr(1), Urgency: 5},
		{ID: "nodata1"},
		{ID: "stale", DaysSinceYouTexted: intPtr(120), Urgency: 0},
		{ID: "mid", DaysSinceYouTexted: intPtr(10), Urgency: 3},
		{ID: "nodata2"},
	}

	got := SortSignals(sigs)

	ids := make([]string, len(got))
	for i, s := range got {
		ids[i] = s.ID
	}
	// Longest-neglected first, then no-data in configuration order.
	// Urgency never participates in ordering.
	assert.Equal(t, []string{"stale", "mid", "fresh", "nodata1", "nodata2"}, ids)
}
