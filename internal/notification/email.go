package notification

import (
	"fmt"
	"net/smtp"
)

type EmailConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	From     string
	FromName string
}

// EmailService delivers verification and reset links over SMTP. It is
// optional at runtime; when unconfigured, tokens are only returned in the
// API response.
type EmailService struct {
	config EmailConfig
}

func NewEmailService(config EmailConfig) *EmailService {
	return &EmailService{config: config}
}

func (s *EmailService) SendVerificationEmail(to, verifyURL string) error {
	subject := "Confirm Your Registration"
	body := fmt.Sprintf(`<html><body>
		<h2>Confirm Your Registration</h2>
		<p>Thanks for signing up. Activate your account by following this link:</p>
		<p><a href="%s">%s</a></p>
	</body></html>`, verifyURL, verifyURL)
	return s.sendEmail(to, subject, body)
}

func (s *EmailService) SendPasswordResetEmail(to, resetURL string) error {
	subject := "Reset Your Password"
	body := fmt.Sprintf(`<html><body>
		<h2>Reset Your Password</h2>
		<p>A password reset was requested for your account. Follow this link to choose a new password:</p>
		<p><a href="%s">%s</a></p>
		<p>If you did not request a reset, ignore this email.</p>
	</body></html>`, resetURL, resetURL)
	return s.sendEmail(to, subject, body)
}

func (s *EmailService) sendEmail(to, subject, body string) error {
	from := s.config.From
	if s.config.FromName != "" {
		from = fmt.Sprintf("%s <%s>", s.config.FromName, s.config.From)
	}

	msg := fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\nMIME-Version: 1.0\r\nContent-Type: text/html; charset=UTF-8\r\n\r\n%s",
		from, to, subject, body)

	auth := smtp.PlainAuth("", s.config.User, s.config.Password, s.config.Host)
	addr := fmt.Sprintf("%s:%d", s.config.Host, s.config.Port)
	return smtp.SendMail(addr, auth, s.config.From, []string{to}, []byte(msg))
}
