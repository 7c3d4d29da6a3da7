package utils

import (
	"crypto/tls"
	"errors"
	"net/smtp"

	"roleplay/api/internal/config"
)

var ErrSMTPNotConfigured = errors.New("SMTP not configured")

var smtpSendMail = smtp.SendMail

// SMTPMailer delivers plain text mail through the configured relay.
type SMTPMailer struct {
	cfg config.SMTPConfig
}

func NewSMTPMailer(cfg config.SMTPConfig) *SMTPMailer {
	return &SMTPMailer{cfg: cfg}
}

func buildMessage(from, to, subject, body string) []byte {
	return []byte("From: \"Roleplay\" <" + from + ">\r\n" +
		"To: " + to + "\r\n" +
		"Subject: " + subject + "\r\n" +
		"MIME-Version: 1.0\r\n" +
		"Content-Type: text/plain; charset=\"utf-8\"\r\n\r\n" +
		body + "\r\n")
}

// Send delivers one message. Port 465 falls back to implicit TLS.
func (m *SMTPMailer) Send(to, subject, body string) error {
	cfg := m.cfg
	if !cfg.Enabled() {
		return ErrSMTPNotConfigured
	}

	addr := cfg.Host + ":" + cfg.Port
	auth := smtp.PlainAuth("", cfg.User, cfg.Pass, cfg.Host)
	msg := buildMessage(cfg.From, to, subject, body)

	err := smtpSendMail(addr, auth, cfg.From, []string{to}, msg)
	if err == nil || cfg.Port != "465" {
		return err
	}
	return sendImplicitTLS(addr, cfg, auth, to, msg)
}

func sendImplicitTLS(addr string, cfg config.SMTPConfig, auth smtp.Auth, to string, msg []byte) error {
	conn, err := tls.Dial("tcp", addr, &tls.Config{ServerName: cfg.Host})
	if err != nil {
		return err
	}
	c, err := smtp.NewClient(conn, cfg.Host)
	if err != nil {
		return err
	}
	defer c.Quit()
	if err = c.Auth(auth); err != nil {
		return err
	}
	if err = c.Mail(cfg.From); err != nil {
		return err
	}
	if err = c.Rcpt(to); err != nil {
		return err
	}
	wc, err := c.Data()
	if err != nil {
		return err
	}
	if _, err = wc.Write(msg); err != nil {
		return err
	}
	return wc.Close()
}
