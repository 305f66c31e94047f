package aisdk

import (
	"encoding/base64"
	"fmt"
	"strings"
)

// AttachmentKind distinguishes the supported media categories.
type AttachmentKind string

const (
	AttachmentImage AttachmentKind = "image"
	AttachmentVideo AttachmentKind = "video"
)

// Attachment is an inline media payload carried on a user message. The data
// is base64 encoded once at ingestion; transcripts hold a single copy that
// the wire client references when building multimodal content parts.
type Attachment struct {
	Kind     AttachmentKind `json:"kind"`
	MIMEType string         `json:"mime_type"`
	Data     string         `json:"data"` // base64
	Filename string         `json:"filename,omitempty"`
	Size     int64          `json:"size,omitempty"`
}

// NewAttachment wraps raw media bytes as an attachment, inferring the kind
// from the MIME type.
func NewAttachment(mimeType, filename string, data []byte) *Attachment {
	kind := AttachmentImage
	if strings.HasPrefix(mimeType, "video/") {
		kind = AttachmentVideo
	}
	return &Attachment{
		Kind:     kind,
		MIMEType: mimeType,
		Data:     base64.StdEncoding.EncodeToString(data),
		Filename: filename,
		Size:     int64(len(data)),
	}
}

// DataURL renders the attachment as a data URL for providers that take
// image content by URL.
func (a *Attachment) DataURL() string {
	return fmt.Sprintf("data:%s;base64,%s", a.MIMEType, a.Data)
}

// Describe returns a short placeholder used when a transcript is rendered
// as plain text.
func (a *Attachment) Describe() string {
	name := a.Filename
	if name == "" {
		name = string(a.Kind)
	}
	return fmt.Sprintf("[%s: %s, %s, %d bytes]", a.Kind, name, a.MIMEType, a.Size)
}
