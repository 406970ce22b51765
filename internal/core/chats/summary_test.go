package chats

import (
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/antighoster/antighoster/internal/model"
)

var testNow = time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)

func rawDirectChat() model.RawChat {
	return model.RawChat{
		"id":        "chat-1",
		"accountID": "whatsapp-personal",
		"name":      "Ada",
		"preview": map[string]any{
			"text":      "see you tomorrow",
			"isSender":  true,
			"timestamp": "2024-06-13T09:00:00Z",
		},
		"lastActivity": "2024-06-14T22:00:00Z",
		"participants": map[string]any{
			"items": []any{
				map[string]any{"isSelf": true, "fullName": "Me"},
				map[string]any{"fullName": "Ada Lovelace", "username": "ada", "imgURL": "https://img/ada.jpg"},
			},
		},
	}
}

func TestSummarizeNoTimestampMeansAbsentDays(t *testing.T) {
	raw := model.RawChat{"id": "c", "accountID": "telegram1"}
	s := Summarize(raw, false, testNow)
	if s.DaysSinceYouTexted != nil {
		t.Fatalf("expected absent days, got %d", *s.DaysSinceYouTexted)
	}
	if s.DaysSinceActivity != nil {
		t.Fatalf("expected absent activity days, got %d", *s.DaysSinceActivity)
	}
	if s.LastMessageTime != nil {
		t.Fatal("expected absent last message time")
	}
}

func TestSummarizeSenderPreviewWinsOverLastActivity(t *testing.T) {
	raw := rawDirectChat()
	s1 := Summarize(raw, false, testNow)

	// Vary lastActivity arbitrarily: days since YOU texted must not move
	// when the preview is yours.
	raw["lastActivity"] = "2020-01-01T00:00:00Z"
	s2 := Summarize(raw, false, testNow)

	if *s1.DaysSinceYouTexted != 2 || *s2.DaysSinceYouTexted != 2 {
		t.Fatalf("sender preview must drive days: got %d and %d",
			*s1.DaysSinceYouTexted, *s2.DaysSinceYouTexted)
	}
	if !s1.ISentLast {
		t.Fatal("iSentLast should be true")
	}
}

func TestSummarizeTheirReplyFallsBackToLastActivity(t *testing.T) {
	raw := rawDirectChat()
	raw["preview"] = map[string]any{
		"text":      "sure!",
		"isSender":  false,
		"timestamp": "2024-06-14T22:00:00Z",
	}
	s := Summarize(raw, false, testNow)
	if s.ISentLast {
		t.Fatal("iSentLast should be false")
	}
	// lastActivity 2024-06-14T22:00 is 14h before now: floors to 0 days.
	if s.DaysSinceYouTexted == nil || *s.DaysSinceYouTexted != 0 {
		t.Fatalf("expected 0 days from lastActivity upper bound, got %v", s.DaysSinceYouTexted)
	}
}

func TestSummarizeIdempotent(t *testing.T) {
	raw := rawDirectChat()
	a := Summarize(raw, false, testNow)
	b := Summarize(raw, false, testNow)
	if !reflect.DeepEqual(a, b) {
		t.Fatal("summaries of the same raw chat must be identical")
	}
}

func TestSummarizeDirectFallbacks(t *testing.T) {
	raw := rawDirectChat()
	delete(raw, "name")
	s := Summarize(raw, false, testNow)

	if s.Name != "Ada Lovelace" {
		t.Fatalf("name fallback: got %q", s.Name)
	}
	if s.Avatar != "https://img/ada.jpg" {
		t.Fatalf("avatar fallback: got %q", s.Avatar)
	}
	if s.Handle != "ada" {
		t.Fatalf("handle: got %q", s.Handle)
	}
	if s.Network != model.NetworkWhatsApp {
		t.Fatalf("network: got %q", s.Network)
	}
}

func TestSummarizeAlternateCasedKeys(t *testing.T) {
	raw := model.RawChat{
		"id":         "c2",
		"account_id": "instagram_4",
		"title":      "insta thread",
		"participants": map[string]any{
			"items": []any{
				map[string]any{"is_self": true, "name": "Me"},
				map[string]any{"displayName": "Grace", "handle": "ghopper"},
			},
		},
	}
	s := Summarize(raw, false, testNow)
	if s.Network != model.NetworkInstagram {
		t.Fatalf("account_id variant not resolved: %q", s.Network)
	}
	if s.Name != "insta thread" {
		t.Fatalf("title variant not resolved: %q", s.Name)
	}
	if s.Handle != "ghopper" {
		t.Fatalf("handle variant not resolved: %q", s.Handle)
	}
}

func TestSummarizeUnknownName(t *testing.T) {
	s := Summarize(model.RawChat{"id": "x"}, false, testNow)
	if s.Name != "Unknown" {
		t.Fatalf("got %q", s.Name)
	}
}

func TestSummarizeGroupMembers(t *testing.T) {
	raw := model.RawChat{
		"id":        "g1",
		"accountID": "signal-group",
		"name":      "climbing crew",
		"participants": map[string]any{
			"items": []any{
				map[string]any{"isSelf": true, "fullName": "Me"},
				map[string]any{"fullName": "Ann", "username": "ann", "avatar": "a.png"},
				map[string]any{"name": "Bob", "handle": "bob42"},
			},
		},
	}
	s := Summarize(raw, true, testNow)
	if !s.IsGroup || s.MemberCount != 2 {
		t.Fatalf("expected 2 members, got %d", s.MemberCount)
	}
	want := []model.ChatMember{
		{Name: "Ann", Handle: "ann", Avatar: "a.png"},
		{Name: "Bob", Handle: "bob42"},
	}
	if !reflect.DeepEqual(s.Members, want) {
		t.Fatalf("members = %+v, want %+v", s.Members, want)
	}
	// Group chats never take a participant handle as the chat handle.
	if s.Handle != "" {
		t.Fatalf("group handle should be empty, got %q", s.Handle)
	}
}

func TestSummarizeFutureInstantClampsToZero(t *testing.T) {
	raw := model.RawChat{
		"id":           "c3",
		"lastActivity": testNow.Add(48 * time.Hour).Format(time.RFC3339),
	}
	s := Summarize(raw, false, testNow)
	if s.DaysSinceYouTexted == nil || *s.DaysSinceYouTexted != 0 {
		t.Fatalf("future instant must clamp to 0, got %v", s.DaysSinceYouTexted)
	}
}

func TestSummarizePreviewTruncation(t *testing.T) {
	long := strings.Repeat("a", 80)
	raw := model.RawChat{
		"id":      "c4",
		"preview": map[string]any{"text": long},
	}
	s := Summarize(raw, false, testNow)
	if got := []rune(s.Preview); len(got) != previewLimit+1 || !strings.HasSuffix(s.Preview, "…") {
		t.Fatalf("preview not truncated: %q", s.Preview)
	}
}
