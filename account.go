package socialmedia

import (
	"errors"
	"strings"
)

type AccountRepository interface {
	FindByUsername(username string) (*Account, error)
	FindByID(id int64) (*Account, error)
	ExistsByID(id int64) (bool, error)
	Store(acc *Account) (*Account, error)
}

type Account struct {
	ID       int64  `json:"accountId"`
	Username string `json:"username"`
	Password string `json:"password"`
}

var (
	ErrInvalidUsername  = errors.New("username cannot be blank")
	ErrInvalidPassword  = errors.New("password must be at least 4 characters long")
	ErrExistingUsername = errors.New("username is already taken")
	ErrAccountNotFound  = errors.New("account not found")

	ErrInvalidCredentials = errors.New("invalid username or password")
)

// NewAccount validates username and password and returns an Account
// ready to be stored. The id is assigned by the repository.
func NewAccount(username string, password string) (*Account, error) {
	if strings.TrimSpace(username) == "" {
		return nil, ErrInvalidUsername
	}

	if len(password) < 4 {
		return nil, ErrInvalidPassword
	}

	return &Account{Username: username, Password: password}, nil
}
