package mailer

// TemplateVerificationCode renders the 6-digit registration code email.
const TemplateVerificationCode = "verification_code"

// EmailJob is the JSON payload put on the RabbitMQ queue for sending email.
// Either Template+Data or a raw Subject with Text/HTML.
type EmailJob struct {
	To       string         `json:"to"`
	Subject  string         `json:"subject,omitempty"`
	Text     string         `json:"text,omitempty"`
	HTML     string         `json:"html,omitempty"`
	Template string         `json:"template,omitempty"`
	Data     map[string]any `json:"data,omitempty"`
}

// VerificationJob builds the queue payload for a registration code email.
func VerificationJob(to, code string, expiresMinutes int) EmailJob {
	return EmailJob{
		To:       to,
		Template: TemplateVerificationCode,
		Data: map[string]any{
			"Code":           code,
			"ExpiresMinutes": expiresMinutes,
		},
	}
}
