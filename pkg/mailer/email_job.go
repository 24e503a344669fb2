package mailer

// EmailJob is the JSON payload put on the RabbitMQ queue for sending
// email. Template selects a known message kind; Data carries the values
// the worker needs to render it. Text/HTML may be set directly instead.
type EmailJob struct {
	To       string         `json:"to"`
	Subject  string         `json:"subject,omitempty"`
	Text     string         `json:"text,omitempty"`
	HTML     string         `json:"html,omitempty"`
	Template string         `json:"template,omitempty"` // e.g. "order_finalized"
	Data     map[string]any `json:"data,omitempty"`
}

// TemplateOrderFinalized is published when an order reaches FINALIZED.
const TemplateOrderFinalized = "order_finalized"
