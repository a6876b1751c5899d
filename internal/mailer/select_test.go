package mailer

import (
	"errors"
	"fmt"
	"net/textproto"
	"strings"
	"testing"
)

func countingProvisioner(calls *int, acct *TestAccount, err error) ProvisionFunc {
	return func() (*TestAccount, error) {
		*calls++
		return acct, err
	}
}

func TestSelectConfiguredCredentials(t *testing.T) {
	calls := 0
	creds := Credentials{User: "user@example.org", Pass: "secret", Service: "gmail"}

	tr, err := Select(creds, countingProvisioner(&calls, nil, errors.New("should not be called")))
	if err != nil {
		t.Fatalf("Select returned an error: %v", err)
	}
	if calls != 0 {
		t.Errorf("provisioner called %d times on the configured path, want 0", calls)
	}

	st, ok := tr.(*SMTPTransport)
	if !ok {
		t.Fatalf("expected *SMTPTransport, got %T", tr)
	}
	if st.Host() != "smtp.gmail.com" || st.Port() != 465 || !st.SSL() {
		t.Errorf("gmail preset = %s:%d ssl=%v, want smtp.gmail.com:465 ssl=true", st.Host(), st.Port(), st.SSL())
	}
}

func TestSelectServiceNameIsCaseInsensitive(t *testing.T) {
	creds := Credentials{User: "u", Pass: "p", Service: "Gmail"}
	tr, err := Select(creds, nil)
	if err != nil {
		t.Fatalf("Select returned an error: %v", err)
	}
	if tr.(*SMTPTransport).Host() != "smtp.gmail.com" {
		t.Errorf("unexpected host %s", tr.(*SMTPTransport).Host())
	}
}

func TestSelectUnknownService(t *testing.T) {
	creds := Credentials{User: "u", Pass: "p", Service: "carrierpigeon"}
	_, err := Select(creds, nil)
	if err == nil {
		t.Fatal("expected an error for an unknown service")
	}
	if !strings.Contains(err.Error(), "carrierpigeon") {
		t.Errorf("error should name the service, got: %v", err)
	}
}

func TestSelectUnconfiguredUsesTestMailbox(t *testing.T) {
	calls := 0
	acct := &TestAccount{User: "throwaway@ethereal.email", Pass: "generated", Web: "https://ethereal.email"}
	creds := Credentials{User: DefaultUser, Service: DefaultService}

	tr, err := Select(creds, countingProvisioner(&calls, acct, nil))
	if err != nil {
		t.Fatalf("Select returned an error: %v", err)
	}
	if calls != 1 {
		t.Errorf("provisioner called %d times, want exactly 1", calls)
	}

	st := tr.(*SMTPTransport)
	if st.Host() != "smtp.ethereal.email" || st.Port() != 587 || st.SSL() {
		t.Errorf("dev transport = %s:%d ssl=%v, want smtp.ethereal.email:587 ssl=false", st.Host(), st.Port(), st.SSL())
	}
	if !strings.Contains(st.previewURL, "ethereal.email") {
		t.Errorf("dev transport should carry a preview pointer, got %q", st.previewURL)
	}
}

func TestSelectProvisionFailurePropagates(t *testing.T) {
	calls := 0
	creds := Credentials{User: DefaultUser}

	_, err := Select(creds, countingProvisioner(&calls, nil, errors.New("network unreachable")))
	if err == nil {
		t.Fatal("expected provisioning failure to propagate")
	}
	if !strings.Contains(err.Error(), "network unreachable") {
		t.Errorf("error should wrap the provisioner failure, got: %v", err)
	}
}

func TestIsAuthError(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want bool
	}{
		{"smtp 535 reply", &textproto.Error{Code: 535, Msg: "5.7.8 Username and Password not accepted"}, true},
		{"smtp 530 reply", &textproto.Error{Code: 530, Msg: "5.7.0 Authentication Required"}, true},
		{"wrapped auth reply", fmt.Errorf("sending: %w", &textproto.Error{Code: 535, Msg: "denied"}), true},
		{"other smtp reply", &textproto.Error{Code: 550, Msg: "mailbox unavailable"}, false},
		{"flattened auth message", errors.New("535 5.7.8 Username and Password not accepted"), true},
		{"connection refused", errors.New("dial tcp: connection refused"), false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := IsAuthError(tc.err); got != tc.want {
				t.Errorf("IsAuthError(%v) = %v, want %v", tc.err, got, tc.want)
			}
		})
	}
}
