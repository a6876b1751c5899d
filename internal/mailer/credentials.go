package mailer

// DefaultUser is the sender address used when no username is configured.
const DefaultUser = "vedantdagadkhair@gmail.com"

// DefaultService is the well-known mail service assumed when none is named.
const DefaultService = "gmail"

// LookupFunc reports the value of a configuration variable. os.LookupEnv
// satisfies it; tests inject a map-backed fake.
type LookupFunc func(key string) (string, bool)

// Credentials are the mail-transport settings resolved for one request.
type Credentials struct {
	User    string
	Pass    string
	Service string
}

// Resolve reads transport credentials with the supported fallback chains.
// Several variable names are accepted for backward compatibility, and the
// lookup runs fresh on every call so rotated credentials take effect without
// a restart.
func Resolve(lookup LookupFunc) Credentials {
	return Credentials{
		User:    firstSet(lookup, DefaultUser, "SMTP_USER", "MAIL_USER"),
		Pass:    firstSet(lookup, "", "SMTP_PASS", "APP_PASS", "MAIL_PASS"),
		Service: firstSet(lookup, DefaultService, "SMTP_SERVICE", "MAIL_SERVICE"),
	}
}

// Configured reports whether real credentials were resolved. The username
// always resolves (it has a hardcoded fallback), so the secret decides.
func (c Credentials) Configured() bool {
	return c.Pass != ""
}

func firstSet(lookup LookupFunc, fallback string, keys ...string) string {
	for _, key := range keys {
		if v, ok := lookup(key); ok && v != "" {
			return v
		}
	}
	return fallback
}
