// Package service contains supporting services used by the HTTP handlers
package service

import (
	"fmt"

	"github.com/spf13/viper"
	"gopkg.in/gomail.v2"
)

// Mailer is the narrow gateway through which the application sends
// transactional mail. Tests swap in a stub so no SMTP server is needed
type Mailer interface {
	Send(to, subject, html string) error
}

// SMTPMailer sends mail through the SMTP server configured under mail.*
type SMTPMailer struct {
	host     string
	port     int
	sender   string
	password string
}

func NewSMTPMailer() *SMTPMailer {
	return &SMTPMailer{
		host:     viper.GetString("mail.host"),
		port:     viper.GetInt("mail.port"),
		sender:   viper.GetString("mail.sender"),
		password: viper.GetString("mail.password"),
	}
}

func (s *SMTPMailer) Send(to, subject, html string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.sender)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", html)

	d := gomail.NewDialer(s.host, s.port, s.sender, s.password)

	return d.DialAndSend(m)
}

// SendVerificationMail mails a verification link embedding the given
// token. The link points at the frontend, which forwards the token to
// the verify-email endpoint
func SendVerificationMail(m Mailer, email, token string) error {
	verificationURL := fmt.Sprintf("%s/verify-email?token=%s", viper.GetString("host.frontend_url"), token)

	return m.Send(email, "Verify Your Email Address", fmt.Sprintf(`
		<h3>Welcome to Our Platform!</h3>
		<p>Please verify your email by clicking the link below:</p>
		<a href="%s">Verify Email</a>
		<p>This link will expire in 24 hours.</p>`, verificationURL))
}

// SendPasswordResetMail mails a reset link embedding the given token
func SendPasswordResetMail(m Mailer, email, token string) error {
	resetURL := fmt.Sprintf("%s/reset-password?token=%s", viper.GetString("host.frontend_url"), token)

	return m.Send(email, "Reset Your Password", fmt.Sprintf(`
		<h3>Password Reset Request</h3>
		<p>You requested to reset your password. Click the link below to set a new password:</p>
		<a href="%s">Reset Password</a>
		<p>This link will expire in 1 hour.</p>
		<p>If you didn't request this, please ignore this email.</p>`, resetURL))
}
