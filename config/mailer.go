package config

import (
	"crypto/tls"
	"fmt"
	"os"
	"strconv"

	mail "github.com/go-mail/mail/v2"
)

// smtpSettings is read per send so godotenv.Load in main is picked up.
type smtpSettings struct {
	host string
	port int
	user string
	pass string
	from string // e.g. "Question Bank <no-reply@your.org>"

	skipTLSVerify bool
}

func loadSMTPSettings() (smtpSettings, error) {
	s := smtpSettings{
		host:          os.Getenv("SMTP_HOST"),
		user:          os.Getenv("SMTP_USER"),
		pass:          os.Getenv("SMTP_PASS"),
		from:          os.Getenv("SMTP_FROM"),
		skipTLSVerify: os.Getenv("SMTP_SKIP_TLS_VERIFY") == "1",
	}
	if s.host == "" || s.from == "" {
		return s, fmt.Errorf("smtp not configured (SMTP_HOST/SMTP_FROM)")
	}
	s.port, _ = strconv.Atoi(os.Getenv("SMTP_PORT"))
	if s.port == 0 {
		s.port = 587
	}
	return s, nil
}

func SendMail(to []string, subject, html string) error {
	if len(to) == 0 {
		return nil
	}

	s, err := loadSMTPSettings()
	if err != nil {
		return err
	}

	m := mail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", to...)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", html)

	d := mail.NewDialer(s.host, s.port, s.user, s.pass)

	// STARTTLS on 587 works for Gmail/Office365 style relays.
	d.StartTLSPolicy = mail.MandatoryStartTLS

	d.TLSConfig = &tls.Config{
		ServerName:         s.host,
		InsecureSkipVerify: s.skipTLSVerify, // dev only: set SMTP_SKIP_TLS_VERIFY=1 to skip cert checks
	}

	return d.DialAndSend(m)
}
