package models

// CampaignMessage — полностью собранное письмо рассылки, публикуемое
// планировщиком в очередь и отправляемое сервисом-отправителем одним
// SMTP-сеансом на весь список получателей.
type CampaignMessage struct {
	Subject    string   `json:"subject"`
	Recipients []string `json:"recipients"`
	TextBody   string   `json:"text_body"`
	HTMLBody   string   `json:"html_body"`
}
