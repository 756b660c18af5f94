package main

import (
	"errors"
	"fmt"
	"net/smtp"
	"strings"
	"time"
)

var errSMTPNotConfigured = errors.New("SMTP credentials not configured")

// Mailer delivers one composed message.
type Mailer interface {
	Send(from string, to []string, msg []byte) error
}

type smtpMailer struct {
	host, port string
	user, pass string
}

func newSMTPMailer(cfg Config) *smtpMailer {
	return &smtpMailer{host: cfg.SMTPHost, port: cfg.SMTPPort, user: cfg.SMTPUser, pass: cfg.SMTPPass}
}

func (m *smtpMailer) Send(from string, to []string, msg []byte) error {
	// Validate required fields
	if m.user == "" || m.pass == "" {
		return errSMTPNotConfigured
	}
	auth := smtp.PlainAuth("", m.user, m.pass, m.host)
	return smtp.SendMail(m.host+":"+m.port, auth, from, to, msg)
}

type contactForm struct {
	Name    string
	Email   string
	Message string
}

func (f contactForm) complete() bool {
	return f.Name != "" && f.Email != "" && f.Message != ""
}

// headerSafe strips CR/LF so form input cannot inject headers.
func headerSafe(s string) string {
	return strings.NewReplacer("\r", " ", "\n", " ").Replace(s)
}

func composeMail(from, to, replyTo, subject, body string) []byte {
	return []byte("To: " + headerSafe(to) + "\r\n" +
		"Subject: " + headerSafe(subject) + "\r\n" +
		"From: " + headerSafe(from) + "\r\n" +
		"Reply-To: " + headerSafe(replyTo) + "\r\n" +
		"Date: " + time.Now().Format(time.RFC1123Z) + "\r\n" +
		"\r\n" +
		body + "\r\n")
}

// contactRelay sends the owner notification and, optionally, an auto-reply
// to the visitor. Delivery is best effort.
type contactRelay struct {
	mailer    Mailer
	from      string
	owner     string
	ownerName string
	autoReply bool
}

func (r *contactRelay) Send(f contactForm) error {
	// Create message
	subject := fmt.Sprintf("Portfolio Contact: %s", f.Name)
	body := fmt.Sprintf(`
New contact form submission from your portfolio:

Name: %s
Email: %s
Message:
%s

---
Sent from your portfolio contact form
`, f.Name, f.Email, f.Message)

	if err := r.mailer.Send(r.from, []string{r.owner}, composeMail(r.from, r.owner, f.Email, subject, body)); err != nil {
		return fmt.Errorf("notify owner: %w", err)
	}
	if !r.autoReply {
		return nil
	}

	reply := fmt.Sprintf(`Hi %s,

Thanks for reaching out! Your message has been received and I'll get back to you soon.

Your message:
%s

-- 
%s
`, f.Name, f.Message, r.ownerName)
	if err := r.mailer.Send(r.from, []string{f.Email}, composeMail(r.from, f.Email, r.owner, "Thanks for getting in touch", reply)); err != nil {
		return fmt.Errorf("auto-reply: %w", err)
	}
	return nil
}
