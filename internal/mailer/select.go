package mailer

import "fmt"

// Select returns a ready transport for the resolved credentials. With a full
// set of credentials it dials the named service directly; without a secret it
// provisions a disposable Ethereal mailbox and dials the development host.
// provision is invoked only on the fallback path.
func Select(creds Credentials, provision ProvisionFunc) (Transport, error) {
	if creds.Configured() {
		return NewServiceTransport(creds.Service, creds.User, creds.Pass)
	}

	acct, err := provision()
	if err != nil {
		return nil, fmt.Errorf("mailer: provision test mailbox: %w", err)
	}
	return NewDevTransport(acct), nil
}
