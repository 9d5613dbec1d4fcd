package socialmedia

import "sync"

type accountRepository struct {
	mu       sync.Mutex
	nextID   int64
	accounts map[int64]*Account
}

func NewAccountRepository() AccountRepository {
	return &accountRepository{accounts: map[int64]*Account{}}
}

func (repo *accountRepository) Store(acc *Account) (*Account, error) {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	for _, a := range repo.accounts {
		if a.Username == acc.Username {
			return nil, ErrExistingUsername
		}
	}

	repo.nextID++
	stored := &Account{ID: repo.nextID, Username: acc.Username, Password: acc.Password}
	repo.accounts[stored.ID] = stored
	return stored, nil
}

func (repo *accountRepository) FindByUsername(username string) (*Account, error) {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	for _, a := range repo.accounts {
		if a.Username == username {
			return a, nil
		}
	}
	return nil, ErrAccountNotFound
}

func (repo *accountRepository) FindByID(id int64) (*Account, error) {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	if a, ok := repo.accounts[id]; ok {
		return a, nil
	}
	return nil, ErrAccountNotFound
}

func (repo *accountRepository) ExistsByID(id int64) (bool, error) {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	_, ok := repo.accounts[id]
	return ok, nil
}

type messageRepository struct {
	mu       sync.Mutex
	nextID   int64
	messages map[int64]*Message
	order    []int64
}

func NewMessageRepository() MessageRepository {
	return &messageRepository{messages: map[int64]*Message{}}
}

func (repo *messageRepository) Store(m *Message) (*Message, error) {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	repo.nextID++
	stored := &Message{ID: repo.nextID, Text: m.Text, PostedBy: m.PostedBy}
	repo.messages[stored.ID] = stored
	repo.order = append(repo.order, stored.ID)
	return stored, nil
}

func (repo *messageRepository) FindByID(id int64) (*Message, error) {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	if m, ok := repo.messages[id]; ok {
		return m, nil
	}
	return nil, ErrMessageNotFound
}

func (repo *messageRepository) FindByPostedBy(accountID int64) ([]Message, error) {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	msgs := []Message{}
	for _, id := range repo.order {
		if m := repo.messages[id]; m != nil && m.PostedBy == accountID {
			msgs = append(msgs, *m)
		}
	}
	return msgs, nil
}

func (repo *messageRepository) FindAll() ([]Message, error) {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	msgs := []Message{}
	for _, id := range repo.order {
		if m := repo.messages[id]; m != nil {
			msgs = append(msgs, *m)
		}
	}
	return msgs, nil
}

func (repo *messageRepository) UpdateText(id int64, text string) (int64, error) {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	m, ok := repo.messages[id]
	if !ok {
		return 0, nil
	}
	m.Text = text
	return 1, nil
}

func (repo *messageRepository) Delete(id int64) error {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	if _, ok := repo.messages[id]; !ok {
		return nil
	}
	delete(repo.messages, id)
	for i, mid := range repo.order {
		if mid == id {
			repo.order = append(repo.order[:i], repo.order[i+1:]...)
			break
		}
	}
	return nil
}
