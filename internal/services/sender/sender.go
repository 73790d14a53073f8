// Package sender реализует отправку собранных писем рассылки по SMTP.
//
// Сервис потребляет сообщения из очереди: одно сообщение — один SMTP-сеанс
// на весь список получателей. Подтверждений доставки и повторов на уровне
// сервиса нет, ошибка транспорта возвращается потребителю очереди.
package sender

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"
	"mime/multipart"
	"net/textproto"
	"strings"

	"github.com/magabrotheeeer/campaign-manager/internal/lib/sl"
	"github.com/magabrotheeeer/campaign-manager/internal/lib/smtp"
	"github.com/magabrotheeeer/campaign-manager/internal/models"
)

// SenderService отправляет письма рассылки через SMTP транспорт.
type SenderService struct {
	transport smtp.TransportInterface
	log       *slog.Logger
}

// NewSenderService создает новый экземпляр SenderService.
func NewSenderService(transport smtp.TransportInterface, log *slog.Logger) *SenderService {
	return &SenderService{
		transport: transport,
		log:       log,
	}
}

// SendCampaign разбирает сообщение очереди и отправляет письмо всем получателям.
// Сообщение без получателей отбрасывается без ошибки, чтобы не зациклить
// его возврат в очередь.
func (s *SenderService) SendCampaign(body []byte) error {
	var msg models.CampaignMessage
	if err := json.Unmarshal(body, &msg); err != nil {
		s.log.Error("failed to unmarshal campaign message", sl.Err(err))
		return fmt.Errorf("error unmarshalling message: %w", err)
	}

	if len(msg.Recipients) == 0 {
		s.log.Warn("campaign message without recipients, dropping")
		return nil
	}

	raw, err := s.buildMessage(msg)
	if err != nil {
		s.log.Error("failed to build MIME message", sl.Err(err))
		return err
	}

	return s.sendEmail(msg.Recipients, raw)
}

// buildMessage собирает MIME-письмо multipart/alternative с текстовой
// и HTML-версиями тела. Заголовки пишутся в буфер до первой части:
// multipart.Writer начинает писать только при создании части.
func (s *SenderService) buildMessage(msg models.CampaignMessage) ([]byte, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	buf.WriteString(strings.Join([]string{
		"From: " + s.transport.GetSMTPUser(),
		"To: " + strings.Join(msg.Recipients, ";"),
		"Subject: " + msg.Subject,
		"MIME-Version: 1.0",
		`Content-Type: multipart/alternative; boundary="` + mw.Boundary() + `"`,
		"",
		"",
	}, "\r\n"))

	textPart, err := mw.CreatePart(textproto.MIMEHeader{
		"Content-Type": {`text/plain; charset="UTF-8"`},
	})
	if err != nil {
		return nil, err
	}
	if _, err := textPart.Write([]byte(msg.TextBody)); err != nil {
		return nil, err
	}

	htmlPart, err := mw.CreatePart(textproto.MIMEHeader{
		"Content-Type": {`text/html; charset="UTF-8"`},
	})
	if err != nil {
		return nil, err
	}
	if _, err := htmlPart.Write([]byte(msg.HTMLBody)); err != nil {
		return nil, err
	}

	if err := mw.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (s *SenderService) sendEmail(to []string, raw []byte) error {
	client, err := s.transport.Connect()
	if err != nil {
		s.log.Error("failed to connect to SMTP server", sl.Err(err))
		return err
	}
	defer client.Close()

	if err := client.Mail(s.transport.GetSMTPUser()); err != nil {
		s.log.Error("failed to set MAIL FROM", slog.String("from", s.transport.GetSMTPUser()), sl.Err(err))
		return err
	}

	for _, addr := range to {
		if err := client.Rcpt(addr); err != nil {
			s.log.Error("failed to set RCPT TO", slog.String("recipient", addr), sl.Err(err))
			return err
		}
	}

	wc, err := client.Data()
	if err != nil {
		s.log.Error("failed to get Data writer", sl.Err(err))
		return err
	}

	if _, err = wc.Write(raw); err != nil {
		s.log.Error("failed to write email body", sl.Err(err))
		return err
	}

	if err = wc.Close(); err != nil {
		s.log.Error("failed to close Data writer", sl.Err(err))
		return err
	}

	if err = client.Quit(); err != nil {
		s.log.Error("failed to quit SMTP client", sl.Err(err))
		return err
	}

	s.log.Info("campaign email sent", slog.Int("recipients", len(to)))
	return nil
}
