package socialmedia

import (
	"errors"
	"fmt"
)

type MessageService interface {
	CreateMessage(req createMessageRequest) (*Message, error)
	GetAllMessages() ([]Message, error)
	GetMessageByID(id int64) (*Message, error)
	GetMessagesByAccountID(accountID int64) ([]Message, error)
	UpdateMessage(id int64, newText string) (int64, error)
	DeleteMessage(id int64) (bool, error)
}

type messageService struct {
	messages MessageRepository
	accounts AccountRepository
}

func NewMessageService(messages MessageRepository, accounts AccountRepository) MessageService {
	return &messageService{messages: messages, accounts: accounts}
}

type createMessageRequest struct {
	Text     string `json:"messageText"`
	PostedBy int64  `json:"postedBy"`
}

type updateMessageRequest struct {
	Text string `json:"messageText"`
}

func (svc *messageService) CreateMessage(req createMessageRequest) (*Message, error) {
	m, err := NewMessage(req.Text, req.PostedBy)
	if err != nil {
		return nil, err
	}

	exists, err := svc.accounts.ExistsByID(req.PostedBy)
	if err != nil {
		return nil, fmt.Errorf("error checking author: %w", err)
	}
	if !exists {
		return nil, ErrUnknownAuthor
	}

	saved, err := svc.messages.Store(m)
	if err != nil {
		return nil, fmt.Errorf("error saving message: %w", err)
	}

	return saved, nil
}

func (svc *messageService) GetAllMessages() ([]Message, error) {
	return svc.messages.FindAll()
}

// GetMessageByID returns (nil, nil) when no message has the given id.
// Absence is a normal outcome here, not a failure.
func (svc *messageService) GetMessageByID(id int64) (*Message, error) {
	m, err := svc.messages.FindByID(id)
	if err != nil {
		if errors.Is(err, ErrMessageNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("error finding message: %w", err)
	}
	return m, nil
}

// GetMessagesByAccountID does not check that the account exists; an
// unknown account simply has no messages.
func (svc *messageService) GetMessagesByAccountID(accountID int64) ([]Message, error) {
	return svc.messages.FindByPostedBy(accountID)
}

// UpdateMessage returns the number of rows updated. Invalid text and a
// missing id both report 0 without an error; storage is not touched when
// the text is invalid.
func (svc *messageService) UpdateMessage(id int64, newText string) (int64, error) {
	if err := validateMessageText(newText); err != nil {
		return 0, nil
	}

	if _, err := svc.messages.FindByID(id); err != nil {
		if errors.Is(err, ErrMessageNotFound) {
			return 0, nil
		}
		return 0, fmt.Errorf("error finding message: %w", err)
	}

	rows, err := svc.messages.UpdateText(id, newText)
	if err != nil {
		return 0, fmt.Errorf("error updating message: %w", err)
	}

	return rows, nil
}

func (svc *messageService) DeleteMessage(id int64) (bool, error) {
	if _, err := svc.messages.FindByID(id); err != nil {
		if errors.Is(err, ErrMessageNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("error finding message: %w", err)
	}

	if err := svc.messages.Delete(id); err != nil {
		return false, fmt.Errorf("error deleting message: %w", err)
	}

	return true, nil
}
