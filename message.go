package socialmedia

import (
	"errors"
	"strings"
)

const maxMessageLength = 255

type MessageRepository interface {
	FindByID(id int64) (*Message, error)
	FindByPostedBy(accountID int64) ([]Message, error)
	FindAll() ([]Message, error)
	Store(m *Message) (*Message, error)
	UpdateText(id int64, text string) (int64, error)
	Delete(id int64) error
}

type Message struct {
	ID       int64  `json:"messageId"`
	Text     string `json:"messageText"`
	PostedBy int64  `json:"postedBy"`
}

var (
	ErrInvalidMessageText = errors.New("message text cannot be blank")
	ErrMessageTooLong     = errors.New("message text cannot exceed 255 characters")
	ErrUnknownAuthor      = errors.New("message author does not exist")
	ErrMessageNotFound    = errors.New("message not found")
)

// NewMessage validates the text and returns a Message ready to be stored.
// Blankness is decided after trimming; the 255 cap applies to the raw text.
func NewMessage(text string, postedBy int64) (*Message, error) {
	if err := validateMessageText(text); err != nil {
		return nil, err
	}

	return &Message{Text: text, PostedBy: postedBy}, nil
}

func validateMessageText(text string) error {
	if strings.TrimSpace(text) == "" {
		return ErrInvalidMessageText
	}

	if len(text) > maxMessageLength {
		return ErrMessageTooLong
	}

	return nil
}
