package mailer

import (
	"bytes"
	"context"
	"fmt"
	"mime"
	"net"
	"net/smtp"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"
)

type Message struct {
	To      []string
	Subject string
	HTML    string
}

type MailerInterface interface {
	Send(ctx context.Context, msg Message) error
}

type Config struct {
	Server        string
	Port          int
	Username      string
	Password      string
	DefaultSender string
}

type SMTPMailer struct {
	cfg    Config
	logger *zap.Logger
}

func NewSMTPMailer(cfg Config, logger *zap.Logger) MailerInterface {
	return &SMTPMailer{cfg: cfg, logger: logger}
}

func (m *SMTPMailer) Send(ctx context.Context, msg Message) error {
	if m.cfg.Server == "" || m.cfg.Username == "" {
		return fmt.Errorf("servidor de e-mail não configurado")
	}
	if len(msg.To) == 0 {
		return fmt.Errorf("nenhum destinatário informado")
	}

	sender := m.cfg.DefaultSender
	if sender == "" {
		sender = m.cfg.Username
	}

	addr := net.JoinHostPort(m.cfg.Server, strconv.Itoa(m.cfg.Port))
	auth := smtp.PlainAuth("", m.cfg.Username, m.cfg.Password, m.cfg.Server)
	body := buildMessage(sender, msg)

	done := make(chan error, 1)
	go func() {
		done <- smtp.SendMail(addr, auth, sender, msg.To, body)
	}()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case err := <-done:
		if err != nil {
			m.logger.Error("Falha ao enviar e-mail", zap.Strings("to", msg.To), zap.Error(err))
			return fmt.Errorf("falha ao enviar e-mail: %w", err)
		}
	}

	m.logger.Info("E-mail enviado", zap.Strings("to", msg.To), zap.String("subject", msg.Subject))
	return nil
}

func buildMessage(from string, msg Message) []byte {
	var buf bytes.Buffer
	buf.WriteString("From: " + from + "\r\n")
	buf.WriteString("To: " + strings.Join(msg.To, ", ") + "\r\n")
	buf.WriteString("Subject: " + mime.QEncoding.Encode("utf-8", msg.Subject) + "\r\n")
	buf.WriteString("Date: " + time.Now().Format(time.RFC1123Z) + "\r\n")
	buf.WriteString("MIME-Version: 1.0\r\n")
	buf.WriteString("Content-Type: text/html; charset=\"UTF-8\"\r\n")
	buf.WriteString("\r\n")
	buf.WriteString(msg.HTML)
	return buf.Bytes()
}
