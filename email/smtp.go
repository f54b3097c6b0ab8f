package email

import (
	"context"

	gomail "gopkg.in/mail.v2"
)

// SmtpSender - implements EmailSender interface over SMTP
type SmtpSender struct {
	SmtpHost    string
	SmtpPort    int
	SenderEmail string
	SendUser    string
	SenderPass  string
}

// SendEmail - sends an email to the recipient in the notification
func (s *SmtpSender) SendEmail(ctx context.Context, notification Notification, email Mail) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.SenderEmail)
	m.SetHeader("To", notification.RecipientMail)
	m.SetHeader("Subject", email.GetSubject(notification))
	m.SetBody("text/html", email.GetBody(notification))

	d := gomail.NewDialer(s.SmtpHost, s.SmtpPort, s.SendUser, s.SenderPass)
	return d.DialAndSend(m)
}
