package chats

import (
	"strings"

	"github.com/antighoster/antighoster/internal/model"
)

// networkKeywords is ordered: overlapping keywords resolve to the first
// entry listed, not alphabetically or by length.
var networkKeywords = []struct {
	keyword string
	network model.Network
}{
	{"instagram", model.NetworkInstagram},
	{"whatsapp", model.NetworkWhatsApp},
	{"telegram", model.NetworkTelegram},
	{"signal", model.NetworkSignal},
	{"imessage", model.NetworkIMessage},
	{"apple", model.NetworkIMessage},
	{"messenger", model.NetworkMessenger},
	{"facebook", model.NetworkMessenger},
	{"discord", model.NetworkDiscord},
	{"slack", model.NetworkSlack},
	{"linkedin", model.NetworkLinkedIn},
	{"twitter", model.NetworkX},
	{"x.com", model.NetworkX},
	{"googlemessages", model.NetworkGoogleMessages},
	{"rcs", model.NetworkGoogleMessages},
}

// ClassifyNetwork maps an opaque account identifier to a network name by
// case-insensitive substring matching. Empty or unrecognized ids classify
// as Other.
func ClassifyNetwork(accountID string) model.Network {
	a := strings.ToLower(accountID)
	for _, kw := range networkKeywords {
		if strings.Contains(a, kw.keyword) {
			return kw.network
		}
	}
	return model.NetworkOther
}
