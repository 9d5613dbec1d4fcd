package socialmedia

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
)

type MessageServiceTestSuite struct {
	suite.Suite
	svc      MessageService
	author   *Account
	messages MessageRepository
	accounts AccountRepository
}

func (s *MessageServiceTestSuite) SetupTest() {
	s.accounts = NewAccountRepository()
	s.messages = NewMessageRepository()
	s.svc = NewMessageService(s.messages, s.accounts)

	author, err := s.accounts.Store(&Account{Username: "ann", Password: "pass1"})
	assert.NoError(s.T(), err)
	s.author = author
}

func (s *MessageServiceTestSuite) TestCreateMessage() {
	tests := []struct {
		req     createMessageRequest
		wantErr error
	}{
		{createMessageRequest{"", s.author.ID}, ErrInvalidMessageText},
		{createMessageRequest{"  \t ", s.author.ID}, ErrInvalidMessageText},
		{createMessageRequest{strings.Repeat("a", 256), s.author.ID}, ErrMessageTooLong},
		{createMessageRequest{"hi", 42}, ErrUnknownAuthor},
		{createMessageRequest{strings.Repeat("a", 255), s.author.ID}, nil},
		{createMessageRequest{"hi", s.author.ID}, nil},
	}

	for _, tt := range tests {
		m, err := s.svc.CreateMessage(tt.req)

		assert.Equal(s.T(), tt.wantErr, err)
		if tt.wantErr == nil {
			assert.Greater(s.T(), m.ID, int64(0))
			assert.Equal(s.T(), tt.req.Text, m.Text)
			assert.Equal(s.T(), tt.req.PostedBy, m.PostedBy)
		} else {
			assert.Nil(s.T(), m)
		}
	}
}

func (s *MessageServiceTestSuite) TestCreateMessage_FailureNeverTouchesStorage() {
	_, err := s.svc.CreateMessage(createMessageRequest{"", s.author.ID})
	assert.Equal(s.T(), ErrInvalidMessageText, err)

	_, err = s.svc.CreateMessage(createMessageRequest{"hi", 42})
	assert.Equal(s.T(), ErrUnknownAuthor, err)

	msgs, err := s.svc.GetAllMessages()
	assert.NoError(s.T(), err)
	assert.Empty(s.T(), msgs)
}

func (s *MessageServiceTestSuite) TestGetAllMessages_ReturnsEveryMessageInOrder() {
	first, _ := s.svc.CreateMessage(createMessageRequest{"first", s.author.ID})
	second, _ := s.svc.CreateMessage(createMessageRequest{"second", s.author.ID})

	msgs, err := s.svc.GetAllMessages()

	assert.NoError(s.T(), err)
	assert.Equal(s.T(), []Message{*first, *second}, msgs)
}

func (s *MessageServiceTestSuite) TestGetMessageByID_AbsenceIsNotAnError() {
	m, err := s.svc.GetMessageByID(99)

	assert.NoError(s.T(), err)
	assert.Nil(s.T(), m)
}

func (s *MessageServiceTestSuite) TestGetMessageByID_ReturnsTheMessage() {
	created, _ := s.svc.CreateMessage(createMessageRequest{"hi", s.author.ID})

	m, err := s.svc.GetMessageByID(created.ID)

	assert.NoError(s.T(), err)
	assert.Equal(s.T(), created, m)
}

func (s *MessageServiceTestSuite) TestGetMessagesByAccountID() {
	other, err := s.accounts.Store(&Account{Username: "bob", Password: "pass2"})
	assert.NoError(s.T(), err)

	mine, _ := s.svc.CreateMessage(createMessageRequest{"mine", s.author.ID})
	s.svc.CreateMessage(createMessageRequest{"theirs", other.ID})

	msgs, err := s.svc.GetMessagesByAccountID(s.author.ID)

	assert.NoError(s.T(), err)
	assert.Equal(s.T(), []Message{*mine}, msgs)
}

func (s *MessageServiceTestSuite) TestGetMessagesByAccountID_EmptyForAccountWithoutMessages() {
	msgs, err := s.svc.GetMessagesByAccountID(s.author.ID)

	assert.NoError(s.T(), err)
	assert.Empty(s.T(), msgs)
}

func (s *MessageServiceTestSuite) TestGetMessagesByAccountID_DoesNotCheckAccountExists() {
	msgs, err := s.svc.GetMessagesByAccountID(42)

	assert.NoError(s.T(), err)
	assert.Empty(s.T(), msgs)
}

func (s *MessageServiceTestSuite) TestUpdateMessage_InvalidTextLeavesStoredTextUnchanged() {
	created, _ := s.svc.CreateMessage(createMessageRequest{"hi", s.author.ID})

	for _, text := range []string{"", "   ", strings.Repeat("a", 256)} {
		rows, err := s.svc.UpdateMessage(created.ID, text)

		assert.NoError(s.T(), err)
		assert.Equal(s.T(), int64(0), rows)
	}

	m, _ := s.svc.GetMessageByID(created.ID)
	assert.Equal(s.T(), "hi", m.Text)
}

func (s *MessageServiceTestSuite) TestUpdateMessage_MissingIDReportsZero() {
	rows, err := s.svc.UpdateMessage(99, "new text")

	assert.NoError(s.T(), err)
	assert.Equal(s.T(), int64(0), rows)
}

func (s *MessageServiceTestSuite) TestUpdateMessage_UpdatesTextAndReportsOneRow() {
	created, _ := s.svc.CreateMessage(createMessageRequest{"hi", s.author.ID})

	rows, err := s.svc.UpdateMessage(created.ID, "updated")

	assert.NoError(s.T(), err)
	assert.Equal(s.T(), int64(1), rows)

	m, _ := s.svc.GetMessageByID(created.ID)
	assert.Equal(s.T(), "updated", m.Text)
}

func (s *MessageServiceTestSuite) TestDeleteMessage() {
	created, _ := s.svc.CreateMessage(createMessageRequest{"hi", s.author.ID})

	deleted, err := s.svc.DeleteMessage(created.ID)
	assert.NoError(s.T(), err)
	assert.True(s.T(), deleted)

	m, err := s.svc.GetMessageByID(created.ID)
	assert.NoError(s.T(), err)
	assert.Nil(s.T(), m)
}

func (s *MessageServiceTestSuite) TestDeleteMessage_MissingIDIsANoOp() {
	created, _ := s.svc.CreateMessage(createMessageRequest{"hi", s.author.ID})

	deleted, err := s.svc.DeleteMessage(99)
	assert.NoError(s.T(), err)
	assert.False(s.T(), deleted)

	msgs, _ := s.svc.GetAllMessages()
	assert.Equal(s.T(), []Message{*created}, msgs)
}

func TestMessageServiceSuite(t *testing.T) {
	suite.Run(t, new(MessageServiceTestSuite))
}
