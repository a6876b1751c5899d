package mailer

import "github.com/google/uuid"

// Message is an outbound email. Attachments are referenced from the HTML body
// by content identifier, so clients that block remote or data: images still
// render the photo.
type Message struct {
	From        string
	To          string
	Subject     string
	HTML        string
	Attachments []Attachment
}

// Attachment is an inline email attachment. Content holds the base64 text as
// submitted; it is decoded when the message goes on the wire.
type Attachment struct {
	Filename  string
	Content   string
	ContentID string
}

// NewContentID returns a token unique per message, suitable for cid:
// references from the HTML body.
func NewContentID() string {
	return "photo-" + uuid.NewString() + "@snapgreet"
}
