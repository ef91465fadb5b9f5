package metrics

// Webhook event results
const (
	WebhookAccepted = "accepted"
	WebhookDropped  = "dropped"
	WebhookInvalid  = "invalid"
)

// Message record outcomes
const (
	MessageCreated   = "created"
	MessageDuplicate = "duplicate"
)

// IncrementWebhookEvent counts one inbound webhook event by result
func (m *Metrics) IncrementWebhookEvent(result string) {
	m.safeExecute("IncrementWebhookEvent", func() {
		m.WebhookEventsTotal.WithLabelValues(result).Inc()
	})
}

// IncrementMessageRecorded counts one message record attempt by outcome
func (m *Metrics) IncrementMessageRecorded(outcome string) {
	m.safeExecute("IncrementMessageRecorded", func() {
		m.MessagesRecordedTotal.WithLabelValues(outcome).Inc()
	})
}

// IncrementCardCreated increments the card creation counter
func (m *Metrics) IncrementCardCreated() {
	m.safeExecute("IncrementCardCreated", func() {
		m.CardsCreatedTotal.Inc()
	})
}

// IncrementCardMoved increments the card move counter
func (m *Metrics) IncrementCardMoved() {
	m.safeExecute("IncrementCardMoved", func() {
		m.CardsMovedTotal.Inc()
	})
}

// IncrementBoardCreated increments the lazy board creation counter
func (m *Metrics) IncrementBoardCreated() {
	m.safeExecute("IncrementBoardCreated", func() {
		m.BoardsCreatedTotal.Inc()
	})
}

// SetConversationsByStatus sets the per-status conversation gauge
func (m *Metrics) SetConversationsByStatus(status string, count int64) {
	m.safeExecute("SetConversationsByStatus", func() {
		m.ConversationsByStatus.WithLabelValues(status).Set(float64(count))
	})
}

// SetMessagesTotal sets the stored message gauge
func (m *Metrics) SetMessagesTotal(count int64) {
	m.safeExecute("SetMessagesTotal", func() {
		m.MessagesTotal.Set(float64(count))
	})
}
