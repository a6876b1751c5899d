// Package dataurl parses base64 data URIs of the form data:<mime>;base64,<payload>.
package dataurl

import "strings"

// DataURL is a decoded data URI: the media type and the raw base64 payload text.
type DataURL struct {
	MIME    string
	Payload string
}

// Parse splits a data URI into its media type and base64 payload. The second
// return value reports whether s matched the expected shape; callers treat a
// non-match as "not a data URI" rather than an error.
func Parse(s string) (DataURL, bool) {
	rest, ok := strings.CutPrefix(s, "data:")
	if !ok {
		return DataURL{}, false
	}
	mime, payload, ok := strings.Cut(rest, ";base64,")
	if !ok || mime == "" || payload == "" {
		return DataURL{}, false
	}
	return DataURL{MIME: mime, Payload: payload}, true
}

// Ext derives a file extension from the media subtype. Structured-syntax
// suffixes are stripped ("svg+xml" becomes "svg") and anything without a
// usable subtype falls back to "png".
func (d DataURL) Ext() string {
	_, subtype, ok := strings.Cut(d.MIME, "/")
	if !ok || subtype == "" {
		return "png"
	}
	ext, _, _ := strings.Cut(subtype, "+")
	if ext == "" {
		return "png"
	}
	return ext
}
