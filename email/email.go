package email

import (
	"context"
	"regexp"

	"github.com/grantlink/grantlink/servercfg"
)

// EmailSender - an interface for sending emails based on notifications and mail templates
type EmailSender interface {
	// SendEmail - sends an email based on a context, notification and mail template
	SendEmail(ctx context.Context, notification Notification, email Mail) error
}

type Mail interface {
	GetBody(info Notification) string
	GetSubject(info Notification) string
}

// Notification - struct for notification details
type Notification struct {
	RecipientMail string
	RecipientName string
	ProductName   string
}

var emailPattern = regexp.MustCompile(`^[a-z0-9._%+\-]+@[a-z0-9.\-]+\.[a-z]{2,}$`)

// GetClient - returns a configured mail sender, nil when SMTP is not set up
func GetClient() EmailSender {
	if !servercfg.IsEmailConfigured() {
		return nil
	}
	conf := servercfg.GetSMTPConf()
	sendUser := conf.Username
	if sendUser == "" {
		sendUser = conf.From
	}
	return &SmtpSender{
		SmtpHost:    conf.Host,
		SmtpPort:    conf.Port,
		SenderEmail: conf.From,
		SendUser:    sendUser,
		SenderPass:  conf.Password,
	}
}

// IsValid - checks that a recipient address looks like an email before dialing out
func IsValid(email string) bool {
	return emailPattern.MatchString(email)
}
