package mailer

import (
	"bytes"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"gopkg.in/gomail.v2"
)

// Ethereal is a capture-only SMTP service for development. Accounts are
// throwaway: provisioned on demand, never reused.
const (
	etherealAPIURL = "https://api.nodemailer.com/user"
	etherealHost   = "smtp.ethereal.email"
	etherealPort   = 587
	etherealWebURL = "https://ethereal.email"
)

// TestAccount is a disposable Ethereal mailbox.
type TestAccount struct {
	User string
	Pass string
	Web  string
}

// ProvisionFunc obtains a disposable test mailbox. CreateTestAccount is the
// real implementation; tests substitute a fake.
type ProvisionFunc func() (*TestAccount, error)

// CreateTestAccount requests a fresh Ethereal mailbox from the public
// provisioning API.
func CreateTestAccount() (*TestAccount, error) {
	reqBody, err := json.Marshal(map[string]string{
		"requestor": "snapgreet",
		"version":   "1.0.0",
	})
	if err != nil {
		return nil, fmt.Errorf("mailer: encode test account request: %w", err)
	}

	client := &http.Client{Timeout: 15 * time.Second}
	resp, err := client.Post(etherealAPIURL, "application/json", bytes.NewReader(reqBody))
	if err != nil {
		return nil, fmt.Errorf("mailer: request test account: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("mailer: test account API returned %s", resp.Status)
	}

	var acct struct {
		Status string `json:"status"`
		User   string `json:"user"`
		Pass   string `json:"pass"`
		Web    string `json:"web"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&acct); err != nil {
		return nil, fmt.Errorf("mailer: decode test account response: %w", err)
	}
	if acct.User == "" || acct.Pass == "" {
		return nil, fmt.Errorf("mailer: test account API returned no credentials (status %q)", acct.Status)
	}

	web := acct.Web
	if web == "" {
		web = etherealWebURL
	}
	return &TestAccount{User: acct.User, Pass: acct.Pass, Web: web}, nil
}

// NewDevTransport builds a transport bound to the Ethereal development host
// using a disposable mailbox. The connection upgrades via STARTTLS rather
// than implicit TLS.
func NewDevTransport(acct *TestAccount) *SMTPTransport {
	d := gomail.NewDialer(etherealHost, etherealPort, acct.User, acct.Pass)
	d.SSL = false
	d.TLSConfig = &tls.Config{ServerName: etherealHost}
	return &SMTPTransport{
		dialer:     d,
		previewURL: fmt.Sprintf("%s/messages (sign in as %s)", acct.Web, acct.User),
	}
}
