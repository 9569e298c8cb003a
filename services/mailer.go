package services

import (
	"fmt"
	"html"
	"net/smtp"
	"strings"

	"stayhub/services/logger"
)

// Mailer gửi email thông báo
type Mailer interface {
	Send(to, subject, htmlBody string) error
}

type SMTPMailer struct {
	host     string
	port     string
	user     string
	password string
	from     string
}

func NewSMTPMailer(host, port, user, password, from string) *SMTPMailer {
	if from == "" {
		from = user
	}
	return &SMTPMailer{host: host, port: port, user: user, password: password, from: from}
}

func (m *SMTPMailer) Send(to, subject, htmlBody string) error {
	auth := smtp.PlainAuth("", m.user, m.password, m.host)
	msg := strings.Join([]string{
		"From: " + m.from,
		"To: " + to,
		"Subject: " + subject,
		"MIME-Version: 1.0",
		"Content-Type: text/html; charset=\"UTF-8\"",
		"",
		htmlBody,
	}, "\r\n")
	if err := smtp.SendMail(m.host+":"+m.port, auth, m.from, []string{to}, []byte(msg)); err != nil {
		return fmt.Errorf("send mail to %s: %w", to, err)
	}
	return nil
}

// LogMailer is used when SMTP is not configured.
type LogMailer struct {
	Logger logger.Logger
}

func (m LogMailer) Send(to, subject, htmlBody string) error {
	if m.Logger != nil {
		m.Logger.Info("mail to %s skipped (smtp not configured): %s", to, subject)
	}
	return nil
}

func welcomeEmail(name, referralCode string) string {
	return fmt.Sprintf(`<!DOCTYPE html>
<html>
<body>
	<p>Hi %s,</p>
	<p>Welcome aboard. Your account is ready and you can start booking beds right away.</p>
	<p>Your referral code is <strong>%s</strong>. Share it with friends when they sign up.</p>
</body>
</html>`, html.EscapeString(name), html.EscapeString(referralCode))
}

func vendorCredentialsEmail(name, email, password string) string {
	return fmt.Sprintf(`<!DOCTYPE html>
<html>
<body>
	<p>Hi %s,</p>
	<p>A vendor account has been created for you.</p>
	<p>Email: <strong>%s</strong><br>Password: <strong>%s</strong></p>
	<p>Please change the password after your first login.</p>
</body>
</html>`, html.EscapeString(name), html.EscapeString(email), html.EscapeString(password))
}
