package mailer

import (
	"fmt"

	"gopkg.in/gomail.v2"

	"insightfeed/internal/config"
)

type Mailer interface {
	SendOTP(email, otp string) error
}

type SMTPMailer struct {
	cfg *config.Config
}

func NewSMTPMailer(cfg *config.Config) *SMTPMailer {
	return &SMTPMailer{cfg: cfg}
}

func (m *SMTPMailer) SendOTP(email, otp string) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.cfg.SMTP.From)
	msg.SetHeader("To", email)
	msg.SetHeader("Subject", "InsightFeed OTP Verification")
	msg.SetBody("text/html", fmt.Sprintf(`
      <h2>Verify Your Email</h2>
      <p>Your OTP is <strong>%s</strong>. It is valid for 10 minutes.</p>
      <p>Do not share this OTP with anyone.</p>
    `, otp))

	dialer := gomail.NewDialer(m.cfg.SMTP.Host, m.cfg.SMTP.Port, m.cfg.SMTP.Username, m.cfg.SMTP.Password)

	if err := dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("ошибка при отправке письма с кодом: %w", err)
	}

	return nil
}
