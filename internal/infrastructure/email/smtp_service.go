package email

import (
	"context"
	"fmt"
	"net/smtp"

	"pharmacy-backend/pkg/logger"
)

type OTPEmailData struct {
	Email     string
	FirstName string
	Code      string
	ExpiresIn string
}

// EmailService delivers the OTP mails used by signup and password recovery.
type EmailService interface {
	SendVerificationEmail(ctx context.Context, data OTPEmailData) error
	SendPasswordRecoveryEmail(ctx context.Context, data OTPEmailData) error
}

type smtpEmailService struct {
	smtpAddr string
	smtpFrom string
}

func NewSMTPEmailService(host, port, from string) EmailService {
	return &smtpEmailService{
		smtpAddr: host + ":" + port,
		smtpFrom: from,
	}
}

func (s *smtpEmailService) SendVerificationEmail(ctx context.Context, data OTPEmailData) error {
	subject := "Verify your pharmacy account"
	body := fmt.Sprintf(`Hi %s,

Your verification code is:

    %s

The code expires in %s. If you did not create this account, ignore this email.`,
		data.FirstName, data.Code, data.ExpiresIn)

	return s.send(data.Email, subject, body)
}

func (s *smtpEmailService) SendPasswordRecoveryEmail(ctx context.Context, data OTPEmailData) error {
	subject := "Password recovery code"
	body := fmt.Sprintf(`Hi %s,

Use this code to reset your password:

    %s

The code expires in %s. If you did not request a password reset, ignore this email.`,
		data.FirstName, data.Code, data.ExpiresIn)

	return s.send(data.Email, subject, body)
}

func (s *smtpEmailService) send(to, subject, body string) error {
	msg := []byte(fmt.Sprintf(
		"From: %s\r\nTo: %s\r\nSubject: %s\r\n\r\n%s",
		s.smtpFrom, to, subject, body))

	if err := smtp.SendMail(s.smtpAddr, nil, s.smtpFrom, []string{to}, msg); err != nil {
		logger.Info("Failed to send email", map[string]interface{}{
			"error":     err.Error(),
			"to":        to,
			"smtp_addr": s.smtpAddr,
		})
		return fmt.Errorf("failed to send email: %w", err)
	}

	return nil
}
