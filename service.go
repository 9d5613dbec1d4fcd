package socialmedia

import (
	"errors"
	"fmt"
	"strings"
)

type AccountService interface {
	Register(req registerRequest) (*Account, error)
	Login(req loginRequest) (*Account, error)
}

type accountService struct {
	accounts AccountRepository
}

func NewAccountService(accounts AccountRepository) AccountService {
	return &accountService{accounts: accounts}
}

type registerRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (svc *accountService) Register(req registerRequest) (*Account, error) {
	acc, err := NewAccount(req.Username, req.Password)
	if err != nil {
		return nil, err
	}

	if err := svc.verifyNotInUse(req.Username); err != nil {
		return nil, err
	}

	saved, err := svc.accounts.Store(acc)
	if err != nil {
		// A concurrent registration can slip past the lookup above;
		// the repository's uniqueness constraint is the backstop.
		if errors.Is(err, ErrExistingUsername) {
			return nil, ErrExistingUsername
		}
		return nil, fmt.Errorf("error saving account: %w", err)
	}

	return saved, nil
}

func (svc *accountService) verifyNotInUse(username string) error {
	acc, err := svc.accounts.FindByUsername(username)
	if err != nil && !errors.Is(err, ErrAccountNotFound) {
		return fmt.Errorf("error looking up username: %w", err)
	}
	if acc != nil {
		return ErrExistingUsername
	}
	return nil
}

// Login compares the stored password with the supplied one as plain text.
// This mirrors the legacy system's behavior; it is a documented security
// gap, not an invitation.
func (svc *accountService) Login(req loginRequest) (*Account, error) {
	if strings.TrimSpace(req.Username) == "" || strings.TrimSpace(req.Password) == "" {
		return nil, ErrInvalidCredentials
	}

	acc, err := svc.accounts.FindByUsername(req.Username)
	if err != nil {
		if errors.Is(err, ErrAccountNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("error looking up account: %w", err)
	}

	if acc.Password != req.Password {
		return nil, ErrInvalidCredentials
	}

	return acc, nil
}
