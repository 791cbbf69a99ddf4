package model

import "strings"

type Channel string

const (
	ChannelSMS      Channel = "sms"
	ChannelWhatsApp Channel = "whatsapp"
)

// Channels lists every channel in fan-out order.
var Channels = []Channel{ChannelSMS, ChannelWhatsApp}

// ParseChannel maps a request "type" value to a channel. Anything other than
// "whatsapp" falls back to SMS.
func ParseChannel(raw string) Channel {
	if strings.ToLower(strings.TrimSpace(raw)) == string(ChannelWhatsApp) {
		return ChannelWhatsApp
	}
	return ChannelSMS
}

// Message is a single outbound delivery. To is the bare address; the
// provider applies any channel prefix.
type Message struct {
	Channel Channel
	To      string
	Body    string
}
