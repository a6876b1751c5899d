package handler

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
	"os"
	"strconv"
	"strings"

	"github.com/snapgreet/internal/dataurl"
	"github.com/snapgreet/internal/mailer"
)

//go:embed templates/visitor.tmpl
var visitorTemplateFS embed.FS

var visitorTmpl = template.Must(template.ParseFS(visitorTemplateFS, "templates/visitor.tmpl"))

const (
	// maxSubmissionBytes caps the JSON body; a base64 photo easily runs into
	// the megabytes.
	maxSubmissionBytes = 25 << 20

	visitorSubject     = "🎉 New Year 2026 Visitor"
	attachmentBaseName = "visitor"
)

// Submission is one photo capture from the landing page. Coordinates are
// pointers so "not shared" is distinguishable from zero.
type Submission struct {
	Image     string   `json:"image"`
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
	Time      string   `json:"time"`
}

// SubmitHandler relays photo captures as email notifications.
type SubmitHandler struct {
	BaseHandler
	lookup       mailer.LookupFunc
	newTransport func(mailer.Credentials) (mailer.Transport, error)
}

// NewSubmitHandler wires the handler against the process environment and the
// real transport selection.
func NewSubmitHandler(logger *slog.Logger) *SubmitHandler {
	return &SubmitHandler{
		BaseHandler: BaseHandler{Logger: logger},
		lookup:      os.LookupEnv,
		newTransport: func(creds mailer.Credentials) (mailer.Transport, error) {
			return mailer.Select(creds, mailer.CreateTestAccount)
		},
	}
}

// Submit validates the capture, builds the notification email and delivers
// it synchronously before responding.
func (h *SubmitHandler) Submit(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxSubmissionBytes)

	var sub Submission
	if err := h.readJSON(w, r, &sub); err != nil {
		h.errorResponse(w, r, http.StatusBadRequest, err.Error())
		return
	}

	if sub.Image == "" {
		h.errorResponse(w, r, http.StatusBadRequest, "No image received")
		return
	}

	// Credentials resolve on every request so rotation needs no restart.
	creds := mailer.Resolve(h.lookup)
	if creds.Configured() {
		h.Logger.Info("using configured SMTP transport", "user", creds.User, "service", creds.Service)
	} else {
		h.Logger.Warn("no SMTP credentials in environment, falling back to a disposable test mailbox (dev only)")
	}

	msg := h.buildMessage(sub, creds.User)

	transport, err := h.newTransport(creds)
	if err != nil {
		h.mailFailed(w, r, err)
		return
	}

	info, err := transport.Send(msg)
	if err != nil {
		if mailer.IsAuthError(err) {
			h.Logger.Error("mail authentication failed; check SMTP_USER and SMTP_PASS (or APP_PASS) and your provider's app password settings")
		}
		h.mailFailed(w, r, err)
		return
	}

	if info != nil && info.PreviewURL != "" {
		h.Logger.Info("message preview available", "url", info.PreviewURL)
	}

	_ = h.writeJSON(w, http.StatusOK, envelope{"success": true}, nil)
}

func (h *SubmitHandler) mailFailed(w http.ResponseWriter, r *http.Request, err error) {
	h.logError(r, err)
	env := envelope{"error": "Mail failed", "details": err.Error()}
	if werr := h.writeJSON(w, http.StatusInternalServerError, env, nil); werr != nil {
		h.logError(r, werr)
	}
}

// buildMessage renders the notification body and, for base64 data URIs,
// converts the photo into an inline attachment referenced by content id.
// Email clients commonly block data: images in HTML; cid references render
// reliably. The message notifies the sender's own address.
func (h *SubmitHandler) buildMessage(sub Submission, sender string) *mailer.Message {
	src := sub.Image
	var attachments []mailer.Attachment

	if d, ok := dataurl.Parse(sub.Image); ok {
		cid := mailer.NewContentID()
		attachments = append(attachments, mailer.Attachment{
			Filename:  attachmentBaseName + "." + d.Ext(),
			Content:   d.Payload,
			ContentID: cid,
		})
		src = "cid:" + cid
	} else if strings.HasPrefix(sub.Image, "data:") {
		// Not fatal: the raw value stays inline in the HTML body.
		h.Logger.Warn("could not parse image data URL, embedding it inline instead")
	}

	data := struct {
		Time      string
		Latitude  string
		Longitude string
		ImageSrc  template.URL
	}{
		Time:      sub.Time,
		Latitude:  coordOrPlaceholder(sub.Latitude),
		Longitude: coordOrPlaceholder(sub.Longitude),
		ImageSrc:  template.URL(src),
	}

	var buf bytes.Buffer
	if err := visitorTmpl.Execute(&buf, data); err != nil {
		h.Logger.Error("visitor template failed", "error", err)
		buf.Reset()
		fmt.Fprintf(&buf, "<p>New visitor at %s</p>\n<img src=%q width=\"320\"/>",
			template.HTMLEscapeString(sub.Time), src)
	}

	return &mailer.Message{
		From:        sender,
		To:          sender,
		Subject:     visitorSubject,
		HTML:        buf.String(),
		Attachments: attachments,
	}
}

func coordOrPlaceholder(v *float64) string {
	if v == nil {
		return "Not shared"
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}
