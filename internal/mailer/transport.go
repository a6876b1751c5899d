// Package mailer resolves transport credentials, assembles outbound messages
// and delivers them over SMTP.
package mailer

import (
	"crypto/tls"
	"encoding/base64"
	"fmt"
	"io"
	"strings"

	"gopkg.in/gomail.v2"
)

// FromName is the display name on outgoing mail.
const FromName = "New Year App"

// SendInfo describes a completed delivery. PreviewURL is set only on the
// disposable-mailbox path, where the message never reaches a real inbox.
type SendInfo struct {
	PreviewURL string
}

// Transport delivers a single message.
type Transport interface {
	Send(msg *Message) (*SendInfo, error)
}

// servicePreset maps a well-known mail service name to its SMTP endpoint.
type servicePreset struct {
	Host string
	Port int
	SSL  bool
}

var servicePresets = map[string]servicePreset{
	"gmail":      {"smtp.gmail.com", 465, true},
	"googlemail": {"smtp.gmail.com", 465, true},
	"outlook":    {"smtp-mail.outlook.com", 587, false},
	"hotmail":    {"smtp-mail.outlook.com", 587, false},
	"office365":  {"smtp.office365.com", 587, false},
	"yahoo":      {"smtp.mail.yahoo.com", 465, true},
	"icloud":     {"smtp.mail.me.com", 587, false},
	"zoho":       {"smtp.zoho.com", 465, true},
	"fastmail":   {"smtp.fastmail.com", 465, true},
	"mailgun":    {"smtp.mailgun.org", 465, true},
	"sendgrid":   {"smtp.sendgrid.net", 587, false},
	"ses":        {"email-smtp.us-east-1.amazonaws.com", 465, true},
	"mailersend": {"smtp.mailersend.net", 587, false},
	"postmark":   {"smtp.postmarkapp.com", 587, false},
	"ethereal":   {etherealHost, etherealPort, false},
}

// SMTPTransport sends mail through a gomail dialer.
type SMTPTransport struct {
	dialer     *gomail.Dialer
	previewURL string
}

// NewServiceTransport builds a transport for a named mail service using the
// given credentials. Unknown service names are an error; the caller surfaces
// it as a send failure.
func NewServiceTransport(service, user, pass string) (*SMTPTransport, error) {
	preset, ok := servicePresets[strings.ToLower(service)]
	if !ok {
		return nil, fmt.Errorf("mailer: unknown mail service %q", service)
	}

	d := gomail.NewDialer(preset.Host, preset.Port, user, pass)
	d.SSL = preset.SSL
	if !preset.SSL {
		d.TLSConfig = &tls.Config{ServerName: preset.Host}
	}
	return &SMTPTransport{dialer: d}, nil
}

// Host returns the SMTP host the transport dials.
func (t *SMTPTransport) Host() string { return t.dialer.Host }

// Port returns the SMTP port the transport dials.
func (t *SMTPTransport) Port() int { return t.dialer.Port }

// SSL reports whether the transport connects over implicit TLS.
func (t *SMTPTransport) SSL() bool { return t.dialer.SSL }

// Send assembles the message and delivers it in one dial.
func (t *SMTPTransport) Send(msg *Message) (*SendInfo, error) {
	gm := gomail.NewMessage()
	gm.SetHeader("From", gm.FormatAddress(msg.From, FromName))
	gm.SetHeader("To", msg.To)
	gm.SetHeader("Subject", msg.Subject)
	gm.SetBody("text/html", msg.HTML)

	for _, att := range msg.Attachments {
		data, err := base64.StdEncoding.DecodeString(att.Content)
		if err != nil {
			return nil, fmt.Errorf("mailer: decode attachment %s: %w", att.Filename, err)
		}
		gm.Embed(att.Filename,
			gomail.SetHeader(map[string][]string{"Content-ID": {"<" + att.ContentID + ">"}}),
			gomail.SetCopyFunc(func(w io.Writer) error {
				_, err := w.Write(data)
				return err
			}),
		)
	}

	if err := t.dialer.DialAndSend(gm); err != nil {
		return nil, err
	}
	return &SendInfo{PreviewURL: t.previewURL}, nil
}
