package webhook

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chat-board-api/internal/domain"
	"chat-board-api/internal/response"
)

func TestNormalizeAddress(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"whatsapp jid", "5511999999999@s.whatsapp.net", "5511999999999"},
		{"jid with device suffix", "5511999999999:12@s.whatsapp.net", "5511999999999"},
		{"bare number", "5511999999999", "5511999999999"},
		{"group jid", "123456-7890@g.us", "123456-7890"},
		{"only suffix", "@s.whatsapp.net", ""},
		{"whitespace", "  ", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, NormalizeAddress(tt.input))
		})
	}
}

func validEnvelope() *Envelope {
	return &Envelope{
		Event:    "messages.upsert",
		Instance: "inst-1",
		Data: EnvelopeData{
			Messages: []MessageEntry{
				{
					Key: MessageKey{
						ID:        "MSG1",
						RemoteJID: "5511999999999@s.whatsapp.net",
					},
					Message: map[string]json.RawMessage{
						"conversation": json.RawMessage(`"Hello"`),
					},
					MessageTimestamp: 1700000000,
					PushName:         "Maria",
				},
			},
		},
	}
}

func TestEnvelopeValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Envelope)
		valid  bool
	}{
		{"valid envelope", func(e *Envelope) {}, true},
		{"no messages is valid", func(e *Envelope) { e.Data.Messages = nil }, true},
		{"missing event", func(e *Envelope) { e.Event = "" }, false},
		{"missing instance", func(e *Envelope) { e.Instance = "" }, false},
		{"missing key id", func(e *Envelope) { e.Data.Messages[0].Key.ID = "" }, false},
		{"missing remote jid", func(e *Envelope) { e.Data.Messages[0].Key.RemoteJID = "" }, false},
		{"missing timestamp", func(e *Envelope) { e.Data.Messages[0].MessageTimestamp = 0 }, false},
		{"negative timestamp", func(e *Envelope) { e.Data.Messages[0].MessageTimestamp = -5 }, false},
		{"address empty after normalization", func(e *Envelope) { e.Data.Messages[0].Key.RemoteJID = "@s.whatsapp.net" }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			envelope := validEnvelope()
			tt.mutate(envelope)

			err := envelope.Validate()
			if tt.valid {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			var appErr *response.AppError
			require.ErrorAs(t, err, &appErr)
			assert.Equal(t, response.ErrCodeValidation, appErr.Code)
		})
	}
}

func TestNormalizeTextMessage(t *testing.T) {
	envelope := validEnvelope()
	inbound := envelope.Normalize()
	require.Len(t, inbound, 1)

	msg := inbound[0]
	assert.Equal(t, "MSG1", msg.ExternalID)
	assert.Equal(t, "5511999999999", msg.Address)
	assert.Equal(t, "Hello", msg.Body)
	assert.Equal(t, domain.MessageTypeText, msg.Type)
	assert.Equal(t, domain.DirectionIncoming, msg.Direction)
	assert.Equal(t, "Maria", msg.SenderName)
	assert.Equal(t, time.Unix(1700000000, 0).UTC(), msg.SentAt)
}

func TestNormalizeContentVariants(t *testing.T) {
	tests := []struct {
		name         string
		content      map[string]json.RawMessage
		expectedType domain.MessageType
		expectedBody string
	}{
		{
			"extended text",
			map[string]json.RawMessage{"extendedTextMessage": json.RawMessage(`{"text":"quoted reply"}`)},
			domain.MessageTypeText,
			"quoted reply",
		},
		{
			"image with caption",
			map[string]json.RawMessage{"imageMessage": json.RawMessage(`{"caption":"look at this"}`)},
			domain.MessageTypeImage,
			"[image] look at this",
		},
		{
			"image without caption",
			map[string]json.RawMessage{"imageMessage": json.RawMessage(`{"url":"https://example.com/x.jpg"}`)},
			domain.MessageTypeImage,
			"[image]",
		},
		{
			"video",
			map[string]json.RawMessage{"videoMessage": json.RawMessage(`{"caption":"clip"}`)},
			domain.MessageTypeVideo,
			"[video] clip",
		},
		{
			"audio",
			map[string]json.RawMessage{"audioMessage": json.RawMessage(`{"seconds":12}`)},
			domain.MessageTypeAudio,
			"[audio]",
		},
		{
			"document with file name",
			map[string]json.RawMessage{"documentMessage": json.RawMessage(`{"fileName":"invoice.pdf"}`)},
			domain.MessageTypeDocument,
			"[document] invoice.pdf",
		},
		{
			"unrecognized content",
			map[string]json.RawMessage{"stickerMessage": json.RawMessage(`{}`)},
			domain.MessageTypeOther,
			"[unsupported]",
		},
		{
			"no content at all",
			nil,
			domain.MessageTypeOther,
			"[unsupported]",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			envelope := validEnvelope()
			envelope.Data.Messages[0].Message = tt.content

			inbound := envelope.Normalize()
			require.Len(t, inbound, 1)
			assert.Equal(t, tt.expectedType, inbound[0].Type)
			assert.Equal(t, tt.expectedBody, inbound[0].Body)
		})
	}
}

func TestNormalizeFromMeIsOutgoing(t *testing.T) {
	envelope := validEnvelope()
	envelope.Data.Messages[0].Key.FromMe = true

	inbound := envelope.Normalize()
	require.Len(t, inbound, 1)
	assert.Equal(t, domain.DirectionOutgoing, inbound[0].Direction)
}

func TestNormalizeMultipleEntries(t *testing.T) {
	envelope := validEnvelope()
	envelope.Data.Messages = append(envelope.Data.Messages, MessageEntry{
		Key: MessageKey{
			ID:        "MSG2",
			RemoteJID: "5511888888888@s.whatsapp.net",
		},
		Message:          map[string]json.RawMessage{"conversation": json.RawMessage(`"Second"`)},
		MessageTimestamp: 1700000100,
	})

	inbound := envelope.Normalize()
	require.Len(t, inbound, 2)
	assert.Equal(t, "MSG1", inbound[0].ExternalID)
	assert.Equal(t, "MSG2", inbound[1].ExternalID)
	assert.Equal(t, "5511888888888", inbound[1].Address)
}
