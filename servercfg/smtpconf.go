package servercfg

import (
	"os"
	"strconv"

	"github.com/grantlink/grantlink/config"
)

// GetSMTPConf - smtp settings for outbound onboarding mail
func GetSMTPConf() config.SMTPConfig {
	var cfg config.SMTPConfig
	cfg.Host = GetSMTPHost()
	cfg.Port = GetSMTPPort()
	cfg.Username = GetSMTPUser()
	cfg.Password = GetSMTPPass()
	cfg.From = GetEmailFrom()
	return cfg
}

// IsEmailConfigured - whether the server can send mail at all
func IsEmailConfigured() bool {
	return GetSMTPHost() != "" && GetEmailFrom() != ""
}

func GetSMTPHost() string {
	host := ""
	if os.Getenv("SMTP_HOST") != "" {
		host = os.Getenv("SMTP_HOST")
	} else if config.Config.SMTP.Host != "" {
		host = config.Config.SMTP.Host
	}
	return host
}

func GetSMTPPort() int {
	port := 587
	envport, err := strconv.Atoi(os.Getenv("SMTP_PORT"))
	if err == nil && envport != 0 {
		port = envport
	} else if config.Config.SMTP.Port != 0 {
		port = config.Config.SMTP.Port
	}
	return port
}

func GetSMTPUser() string {
	user := ""
	if os.Getenv("SMTP_USERNAME") != "" {
		user = os.Getenv("SMTP_USERNAME")
	} else if config.Config.SMTP.Username != "" {
		user = config.Config.SMTP.Username
	}
	return user
}

func GetSMTPPass() string {
	pass := ""
	if os.Getenv("SMTP_PASSWORD") != "" {
		pass = os.Getenv("SMTP_PASSWORD")
	} else if config.Config.SMTP.Password != "" {
		pass = config.Config.SMTP.Password
	}
	return pass
}

func GetEmailFrom() string {
	from := ""
	if os.Getenv("EMAIL_FROM") != "" {
		from = os.Getenv("EMAIL_FROM")
	} else if config.Config.SMTP.From != "" {
		from = config.Config.SMTP.From
	}
	return from
}
