package webhook

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"chat-board-api/internal/domain"
	"chat-board-api/internal/response"
)

// Envelope is the minimal common shape every provider event shares.
// Message content varies wildly across message types and provider API
// versions, so entries keep it as raw JSON and run it through the
// content extractors below.
type Envelope struct {
	Event    string       `json:"event"`
	Instance string       `json:"instance"`
	Data     EnvelopeData `json:"data"`
}

// EnvelopeData wraps the message entries of an event
type EnvelopeData struct {
	Messages []MessageEntry `json:"messages"`
}

// MessageKey identifies a message within the provider
type MessageKey struct {
	ID        string `json:"id"`
	RemoteJID string `json:"remoteJid"`
	FromMe    bool   `json:"fromMe"`
}

// MessageEntry is one message inside an inbound event
type MessageEntry struct {
	Key              MessageKey                 `json:"key"`
	Message          map[string]json.RawMessage `json:"message"`
	MessageTimestamp int64                      `json:"messageTimestamp"`
	PushName         string                     `json:"pushName"`
}

// Inbound is the normalized form of one message entry: everything the
// reconciliation pipeline needs, nothing provider-specific left.
type Inbound struct {
	ExternalID string
	Address    string
	Body       string
	Type       domain.MessageType
	Direction  domain.MessageDirection
	SenderName string
	SentAt     time.Time
}

// contentExtractor tries to pull a body and type out of one content variant.
// Extractors are tried in order; the first that recognizes the payload wins.
type contentExtractor struct {
	key     string
	msgType domain.MessageType
	extract func(raw json.RawMessage) (string, bool)
}

func textExtractor(raw json.RawMessage) (string, bool) {
	var s string
	if err := json.Unmarshal(raw, &s); err != nil || s == "" {
		return "", false
	}
	return s, true
}

func nestedTextExtractor(field string) func(raw json.RawMessage) (string, bool) {
	return func(raw json.RawMessage) (string, bool) {
		var v map[string]json.RawMessage
		if err := json.Unmarshal(raw, &v); err != nil {
			return "", false
		}
		inner, ok := v[field]
		if !ok {
			return "", true
		}
		var s string
		if err := json.Unmarshal(inner, &s); err != nil {
			return "", true
		}
		return s, true
	}
}

var extractors = []contentExtractor{
	{"conversation", domain.MessageTypeText, textExtractor},
	{"extendedTextMessage", domain.MessageTypeText, nestedTextExtractor("text")},
	{"imageMessage", domain.MessageTypeImage, nestedTextExtractor("caption")},
	{"videoMessage", domain.MessageTypeVideo, nestedTextExtractor("caption")},
	{"audioMessage", domain.MessageTypeAudio, nestedTextExtractor("caption")},
	{"documentMessage", domain.MessageTypeDocument, nestedTextExtractor("fileName")},
}

// descriptorFor builds the stored body for non-text content
func descriptorFor(msgType domain.MessageType, caption string) string {
	label := "[" + strings.ToLower(string(msgType)) + "]"
	if caption == "" {
		return label
	}
	return label + " " + caption
}

// NormalizeAddress reduces a provider address to its raw digits or handle.
// "5511999999999@s.whatsapp.net" and "5511999999999:12@s.whatsapp.net"
// both normalize to "5511999999999".
func NormalizeAddress(remoteJID string) string {
	addr := remoteJID
	if i := strings.IndexByte(addr, '@'); i >= 0 {
		addr = addr[:i]
	}
	if i := strings.IndexByte(addr, ':'); i >= 0 {
		addr = addr[:i]
	}
	return strings.TrimSpace(addr)
}

// Validate checks the envelope's structural requirements. A failure here
// is the caller's fault and yields a 400; everything past validation is
// accept-and-process (or accept-and-drop).
func (e *Envelope) Validate() error {
	if e.Event == "" {
		return response.NewAppError(response.ErrCodeValidation, "Event type is required", "")
	}
	if e.Instance == "" {
		return response.NewAppError(response.ErrCodeValidation, "Instance identifier is required", "")
	}
	for i, entry := range e.Data.Messages {
		if entry.Key.ID == "" {
			return response.NewAppError(response.ErrCodeValidation, "Message entry is missing key.id", "entry "+strconv.Itoa(i))
		}
		if entry.Key.RemoteJID == "" {
			return response.NewAppError(response.ErrCodeValidation, "Message entry is missing key.remoteJid", "entry "+strconv.Itoa(i))
		}
		if entry.MessageTimestamp <= 0 {
			return response.NewAppError(response.ErrCodeValidation, "Message entry is missing messageTimestamp", "entry "+strconv.Itoa(i))
		}
		if NormalizeAddress(entry.Key.RemoteJID) == "" {
			return response.NewAppError(response.ErrCodeValidation, "Message entry has an empty sender address", "entry "+strconv.Itoa(i))
		}
	}
	return nil
}

// Normalize turns the envelope's entries into normalized inbound messages.
// Validate must have passed first.
func (e *Envelope) Normalize() []Inbound {
	inbound := make([]Inbound, 0, len(e.Data.Messages))
	for _, entry := range e.Data.Messages {
		inbound = append(inbound, normalizeEntry(entry))
	}
	return inbound
}

func normalizeEntry(entry MessageEntry) Inbound {
	msg := Inbound{
		ExternalID: entry.Key.ID,
		Address:    NormalizeAddress(entry.Key.RemoteJID),
		SenderName: entry.PushName,
		SentAt:     time.Unix(entry.MessageTimestamp, 0).UTC(),
		Direction:  domain.DirectionIncoming,
		Type:       domain.MessageTypeOther,
		Body:       "[unsupported]",
	}
	if entry.Key.FromMe {
		msg.Direction = domain.DirectionOutgoing
	}

	for _, ex := range extractors {
		raw, ok := entry.Message[ex.key]
		if !ok {
			continue
		}
		body, recognized := ex.extract(raw)
		if !recognized {
			continue
		}
		msg.Type = ex.msgType
		if ex.msgType == domain.MessageTypeText {
			msg.Body = body
		} else {
			msg.Body = descriptorFor(ex.msgType, body)
		}
		return msg
	}
	return msg
}
