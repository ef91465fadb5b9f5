package dto

// WebhookAck is the acknowledgement returned to the delivery system.
// Unknown-instance events are acknowledged too; anything but a 2xx makes
// the provider retry forever.
type WebhookAck struct {
	Received  bool   `json:"received"`
	Timestamp string `json:"timestamp"`
}
