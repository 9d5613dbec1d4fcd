package socialmedia

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAccountRepository_StoreRejectsDuplicateUsername(t *testing.T) {
	repo := NewAccountRepository()

	first, err := repo.Store(&Account{Username: "ann", Password: "pass1"})
	assert.NoError(t, err)
	assert.Equal(t, int64(1), first.ID)

	// The repository itself is the backstop for registrations that race
	// past the service-level lookup.
	second, err := repo.Store(&Account{Username: "ann", Password: "other"})
	assert.Nil(t, second)
	assert.Equal(t, ErrExistingUsername, err)
}

func TestMessageRepository_UpdateTextReportsRowsAffected(t *testing.T) {
	repo := NewMessageRepository()

	m, err := repo.Store(&Message{Text: "hi", PostedBy: 1})
	assert.NoError(t, err)

	rows, err := repo.UpdateText(m.ID, "new")
	assert.NoError(t, err)
	assert.Equal(t, int64(1), rows)

	rows, err = repo.UpdateText(99, "new")
	assert.NoError(t, err)
	assert.Equal(t, int64(0), rows)
}

func TestMessageRepository_DeleteIsIdempotent(t *testing.T) {
	repo := NewMessageRepository()

	m, err := repo.Store(&Message{Text: "hi", PostedBy: 1})
	assert.NoError(t, err)

	assert.NoError(t, repo.Delete(m.ID))
	assert.NoError(t, repo.Delete(m.ID))

	_, err = repo.FindByID(m.ID)
	assert.Equal(t, ErrMessageNotFound, err)
}

func TestMessageRepository_FindAllPreservesInsertionOrder(t *testing.T) {
	repo := NewMessageRepository()

	for _, text := range []string{"a", "b", "c"} {
		_, err := repo.Store(&Message{Text: text, PostedBy: 1})
		assert.NoError(t, err)
	}

	msgs, err := repo.FindAll()
	assert.NoError(t, err)
	assert.Equal(t, []Message{
		{ID: 1, Text: "a", PostedBy: 1},
		{ID: 2, Text: "b", PostedBy: 1},
		{ID: 3, Text: "c", PostedBy: 1},
	}, msgs)
}
