package mailer

import (
	"errors"
	"net/textproto"
	"strings"
)

// IsAuthError reports whether a send failure was an SMTP authentication
// rejection. The SMTP client surfaces server replies as *textproto.Error;
// 530/534/535 are the auth-related reply codes. A string check catches
// errors that were flattened while being wrapped.
func IsAuthError(err error) bool {
	var tpErr *textproto.Error
	if errors.As(err, &tpErr) {
		switch tpErr.Code {
		case 530, 534, 535:
			return true
		}
		return false
	}

	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "535 ") ||
		strings.Contains(msg, "username and password not accepted") ||
		strings.Contains(msg, "authentication failed")
}
