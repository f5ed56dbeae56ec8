package model

import (
	"strings"
	"time"

	"github.com/foodops-lab/rcagent/pkg/domain/types"
	"github.com/m-mizutani/goerr/v2"
)

// Part is one ordered unit of a chat message: either text or an image.
type Part interface {
	isPart()
}

// TextPart is a plain text part of a message
type TextPart string

func (TextPart) isPart() {}

// ImagePart is an attached photo part of a message
type ImagePart struct {
	MIMEType string
	Data     []byte
}

func (ImagePart) isPart() {}

// ErrEmptyMessage is returned when a message carries neither text nor image
var ErrEmptyMessage = goerr.New("message must carry at least one part")

// Message is one turn of the triage conversation. Parts keep their arrival
// order; a message with zero parts cannot be constructed.
type Message struct {
	ID        types.MessageID
	Role      types.Role
	Parts     []Part
	CreatedAt time.Time
}

// NewMessage creates a message from ordered parts. Empty text parts and nil
// image parts are dropped; if nothing remains, ErrEmptyMessage is returned.
func NewMessage(role types.Role, parts ...Part) (*Message, error) {
	if !role.IsValid() {
		return nil, goerr.New("invalid message role", goerr.V("role", role))
	}

	kept := make([]Part, 0, len(parts))
	for _, part := range parts {
		switch p := part.(type) {
		case TextPart:
			if p != "" {
				kept = append(kept, p)
			}
		case ImagePart:
			if len(p.Data) > 0 {
				kept = append(kept, p)
			}
		}
	}
	if len(kept) == 0 {
		return nil, goerr.Wrap(ErrEmptyMessage, "refusing to create empty message", goerr.V("role", role))
	}

	return &Message{
		ID:        types.NewMessageID(),
		Role:      role,
		Parts:     kept,
		CreatedAt: time.Now().UTC(),
	}, nil
}

// Text returns the concatenated text parts of the message
func (m *Message) Text() string {
	var texts []string
	for _, part := range m.Parts {
		if p, ok := part.(TextPart); ok {
			texts = append(texts, string(p))
		}
	}
	return strings.Join(texts, "\n")
}

// HasImage reports whether the message carries at least one image part
func (m *Message) HasImage() bool {
	for _, part := range m.Parts {
		if _, ok := part.(ImagePart); ok {
			return true
		}
	}
	return false
}

// Clone returns a deep copy of the message
func (m *Message) Clone() *Message {
	copied := &Message{
		ID:        m.ID,
		Role:      m.Role,
		Parts:     make([]Part, len(m.Parts)),
		CreatedAt: m.CreatedAt,
	}
	for i, part := range m.Parts {
		switch p := part.(type) {
		case TextPart:
			copied.Parts[i] = p
		case ImagePart:
			data := make([]byte, len(p.Data))
			copy(data, p.Data)
			copied.Parts[i] = ImagePart{MIMEType: p.MIMEType, Data: data}
		}
	}
	return copied
}
