package services

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/base64"
	"fmt"
	"log"
	"mime"
	"net"
	"net/smtp"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"storengine/internal/models/db_models"
	"storengine/internal/repositories"
)

type IMailService interface {
	// SendNotification delivers the email to each recipient. Per-recipient
	// transport failures are logged and swallowed so the triggering
	// transaction never fails on mail.
	SendNotification(ctx context.Context, email *db_models.Email, recipients []string) error
	// SendInternalNotification is SendNotification with the recipients set
	// to the staff mailing list, resolved at dispatch time.
	SendInternalNotification(ctx context.Context, email *db_models.Email) error
}

// SMTPConfig holds SMTP + sender config.
type SMTPConfig struct {
	Host       string // e.g. "smtp.example.com"
	Port       int    // e.g. 587 (STARTTLS) or 465 (SMTPS)
	Username   string
	Password   string
	From       string // envelope from, e.g. "no-reply@shop.example"
	ReplyTo    string // support address
	UseSSL     bool   // true for SMTPS 465, false for STARTTLS 587
	RequireTLS bool   // if true, fail if STARTTLS not available
}

type smtpMailService struct {
	cfg   SMTPConfig
	users repositories.IUserRepository
}

func NewSMTPMailService(cfg SMTPConfig, users repositories.IUserRepository) IMailService {
	return &smtpMailService{cfg: cfg, users: users}
}

func (s *smtpMailService) SendNotification(ctx context.Context, email *db_models.Email, recipients []string) error {
	for _, recipient := range recipients {
		if err := s.send(recipient, email); err != nil {
			log.Printf("SMTP error while sending notification to %s: %v", recipient, err)
		}
	}
	return nil
}

func (s *smtpMailService) SendInternalNotification(ctx context.Context, email *db_models.Email) error {
	recipients, err := s.users.InternalMailingList(ctx)
	if err != nil {
		log.Printf("Failed to load internal mailing list: %v", err)
		return nil
	}
	return s.SendNotification(ctx, email, recipients)
}

var htmlTagPattern = regexp.MustCompile(`<[^>]*>`)

// textifyHTML derives the plain-text alternative from the HTML body.
func textifyHTML(body string) string {
	text := htmlTagPattern.ReplaceAllString(body, "")
	return strings.TrimSpace(text)
}

func (s *smtpMailService) send(to string, email *db_models.Email) error {
	date := time.Now().Format(time.RFC1123Z)
	mixedBoundary := fmt.Sprintf("mixed_%d", time.Now().UnixNano())
	altBoundary := fmt.Sprintf("alt_%d", time.Now().UnixNano())

	var msg bytes.Buffer
	write := func(format string, a ...any) { _, _ = msg.WriteString(fmt.Sprintf(format, a...)) }

	// Headers
	write("From: %s\r\n", s.cfg.From)
	write("To: %s\r\n", to)
	write("Subject: %s\r\n", email.Subject)
	write("Date: %s\r\n", date)
	if s.cfg.ReplyTo != "" {
		write("Reply-To: %s\r\n", s.cfg.ReplyTo)
	}
	write("MIME-Version: 1.0\r\n")
	write("Content-Type: multipart/mixed; boundary=%q\r\n", mixedBoundary)
	write("\r\n")

	// Body: text + HTML alternative
	write("--%s\r\n", mixedBoundary)
	write("Content-Type: multipart/alternative; boundary=%q\r\n\r\n", altBoundary)

	write("--%s\r\n", altBoundary)
	write("Content-Type: text/plain; charset=UTF-8\r\n")
	write("Content-Transfer-Encoding: 7bit\r\n\r\n")
	write("%s\r\n\r\n", textifyHTML(email.Body))

	write("--%s\r\n", altBoundary)
	write("Content-Type: text/html; charset=UTF-8\r\n")
	write("Content-Transfer-Encoding: 7bit\r\n\r\n")
	write("%s\r\n\r\n", email.Body)

	write("--%s--\r\n", altBoundary)

	// Attachments
	for _, attachment := range email.Attachments {
		data, err := os.ReadFile(attachment.FilePath)
		if err != nil {
			log.Printf("Skipping unreadable attachment %s: %v", attachment.FileName, err)
			continue
		}
		contentType := mime.TypeByExtension(filepath.Ext(attachment.FileName))
		if contentType == "" {
			contentType = "application/octet-stream"
		}
		write("--%s\r\n", mixedBoundary)
		write("Content-Type: %s\r\n", contentType)
		write("Content-Disposition: attachment; filename=%q\r\n", attachment.FileName)
		write("Content-Transfer-Encoding: base64\r\n\r\n")
		write("%s\r\n", encodeBase64Wrapped(data))
	}

	write("--%s--\r\n", mixedBoundary)

	return s.transmit(to, msg.Bytes())
}

// encodeBase64Wrapped encodes data with the RFC 2045 76 character line limit.
func encodeBase64Wrapped(data []byte) string {
	encoded := base64.StdEncoding.EncodeToString(data)
	var b strings.Builder
	for len(encoded) > 76 {
		b.WriteString(encoded[:76])
		b.WriteString("\r\n")
		encoded = encoded[76:]
	}
	b.WriteString(encoded)
	return b.String()
}

func (s *smtpMailService) transmit(to string, msg []byte) error {
	addr := fmt.Sprintf("%s:%d", s.cfg.Host, s.cfg.Port)
	auth := smtp.PlainAuth("", s.cfg.Username, s.cfg.Password, s.cfg.Host)

	var c *smtp.Client

	if s.cfg.UseSSL {
		// SMTPS (implicit TLS, usually port 465)
		tlsCfg := &tls.Config{ServerName: s.cfg.Host, MinVersion: tls.VersionTLS12}
		conn, err := tls.Dial("tcp", addr, tlsCfg)
		if err != nil {
			return err
		}
		c, err = smtp.NewClient(conn, s.cfg.Host)
		if err != nil {
			conn.Close()
			return err
		}
	} else {
		// STARTTLS path (typically port 587)
		dialer := &net.Dialer{Timeout: 10 * time.Second}
		conn, err := dialer.Dial("tcp", addr)
		if err != nil {
			return err
		}
		c, err = smtp.NewClient(conn, s.cfg.Host)
		if err != nil {
			conn.Close()
			return err
		}
		if ok, _ := c.Extension("STARTTLS"); ok {
			tlsCfg := &tls.Config{ServerName: s.cfg.Host, MinVersion: tls.VersionTLS12}
			if err = c.StartTLS(tlsCfg); err != nil {
				c.Close()
				return err
			}
		} else if s.cfg.RequireTLS {
			c.Close()
			return fmt.Errorf("server does not support STARTTLS and RequireTLS=true")
		}
	}
	defer c.Quit()

	if err := c.Auth(auth); err != nil {
		return err
	}
	if err := c.Mail(s.cfg.From); err != nil {
		return err
	}
	if err := c.Rcpt(to); err != nil {
		return err
	}
	w, err := c.Data()
	if err != nil {
		return err
	}
	if _, err = w.Write(msg); err != nil {
		return err
	}
	return w.Close()
}
