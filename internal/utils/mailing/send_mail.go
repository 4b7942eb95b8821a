package mailing

import (
	"Pantry-Tracker/internal/utils"
	"fmt"
	"strconv"

	"gopkg.in/gomail.v2"
)

type MailConfig struct {
	AppURL       string
	SMTPHost     string
	SMTPPort     string
	SMTPSender   string
	SMTPEmail    string
	SMTPPassword string
}

func LoadMailConfig() MailConfig {
	return MailConfig{
		AppURL:       utils.GetConfig("APP_URL"),
		SMTPHost:     utils.GetConfig("SMTP_HOST"),
		SMTPPort:     utils.GetConfig("SMTP_PORT"),
		SMTPSender:   utils.GetConfig("SMTP_SENDER_NAME"),
		SMTPEmail:    utils.GetConfig("SMTP_AUTH_EMAIL"),
		SMTPPassword: utils.GetConfig("SMTP_AUTH_PASSWORD"),
	}
}

// Mailer lets services send mail without knowing about SMTP.
type Mailer interface {
	Send(toEmail string, subject string, body string) error
}

type smtpMailer struct {
	cfg MailConfig
}

func NewMailer() Mailer {
	return &smtpMailer{cfg: LoadMailConfig()}
}

func (m *smtpMailer) Send(toEmail string, subject string, body string) error {
	return sendWith(m.cfg, toEmail, subject, body)
}

func SendMail(toEmail string, subject string, body string) error {
	return sendWith(LoadMailConfig(), toEmail, subject, body)
}

func sendWith(cfg MailConfig, toEmail string, subject string, body string) error {
	mailer := gomail.NewMessage()
	if cfg.SMTPSender != "" {
		mailer.SetHeader("From", mailer.FormatAddress(cfg.SMTPEmail, cfg.SMTPSender))
	} else {
		mailer.SetHeader("From", cfg.SMTPEmail)
	}
	mailer.SetHeader("To", toEmail)
	mailer.SetHeader("Subject", subject)
	mailer.SetBody("text/html", body)

	port, err := strconv.Atoi(cfg.SMTPPort)
	if err != nil {
		return fmt.Errorf("invalid SMTP_PORT %q: %w", cfg.SMTPPort, err)
	}
	dialer := gomail.NewDialer(cfg.SMTPHost, port, cfg.SMTPEmail, cfg.SMTPPassword)
	return dialer.DialAndSend(mailer)
}
