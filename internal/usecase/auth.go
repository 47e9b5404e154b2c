package usecase

import (
	"context"
	"errors"
	"strings"

	domainErrors "github.com/veilmart/veilmart/internal/domain/errors"
	"github.com/veilmart/veilmart/internal/domain/model"
	"github.com/veilmart/veilmart/internal/domain/repository"
	pkgAuth "github.com/veilmart/veilmart/internal/pkg/auth"
)

// AuthUseCase handles account lifecycle and token management.
type AuthUseCase struct {
	users   repository.UserRepository
	shops   repository.ShopRepository
	wallets repository.WalletRepository
	hasher  pkgAuth.PasswordHasher
	tokens  pkgAuth.Strategy
	tx      repository.TxManager
}

// NewAuthUseCase constructs AuthUseCase.
func NewAuthUseCase(
	users repository.UserRepository,
	shops repository.ShopRepository,
	wallets repository.WalletRepository,
	hasher pkgAuth.PasswordHasher,
	strategy pkgAuth.Strategy,
	tx repository.TxManager,
) *AuthUseCase {
	return &AuthUseCase{users: users, shops: shops, wallets: wallets, hasher: hasher, tokens: strategy, tx: tx}
}

// Register creates a new account with its wallet, plus a shop profile for
// seller accounts, and returns an auth token.
func (u *AuthUseCase) Register(ctx context.Context, login, password string, role model.Role, shopName string) (*model.User, string, error) {
	login = strings.TrimSpace(login)
	if login == "" || password == "" {
		return nil, "", domainErrors.ErrInvalidCredentials
	}
	if role == "" {
		role = model.RoleCustomer
	}
	if role == model.RoleShop && strings.TrimSpace(shopName) == "" {
		return nil, "", domainErrors.ErrInvalidCredentials
	}

	hash, err := u.hasher.Hash(password)
	if err != nil {
		return nil, "", err
	}

	var usr *model.User
	err = u.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		usr, err = u.users.Create(ctx, login, hash, role)
		if err != nil {
			return err
		}
		if _, err := u.wallets.Create(ctx, usr.ID); err != nil {
			return err
		}
		if role == model.RoleShop {
			if _, err := u.shops.Create(ctx, usr.ID, strings.TrimSpace(shopName)); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, domainErrors.ErrAlreadyExists) {
			return nil, "", domainErrors.ErrAlreadyExists
		}
		return nil, "", err
	}

	token, err := u.tokens.IssueToken(usr.ID)
	if err != nil {
		return nil, "", err
	}

	return usr, token, nil
}

// Authenticate validates credentials and returns auth token.
func (u *AuthUseCase) Authenticate(ctx context.Context, login, password string) (*model.User, string, error) {
	login = strings.TrimSpace(login)
	if login == "" || password == "" {
		return nil, "", domainErrors.ErrInvalidCredentials
	}

	usr, err := u.users.GetByLogin(ctx, login)
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			return nil, "", domainErrors.ErrInvalidCredentials
		}
		return nil, "", err
	}

	if err := u.hasher.Compare(usr.PasswordHash, password); err != nil {
		return nil, "", domainErrors.ErrInvalidCredentials
	}

	token, err := u.tokens.IssueToken(usr.ID)
	if err != nil {
		return nil, "", err
	}

	return usr, token, nil
}

// ParseToken extracts user ID from provided token.
func (u *AuthUseCase) ParseToken(token string) (int64, error) {
	if token == "" {
		return 0, pkgAuth.ErrInvalidToken
	}
	return u.tokens.ParseToken(token)
}

// GetByID fetches user by identifier.
func (u *AuthUseCase) GetByID(ctx context.Context, id int64) (*model.User, error) {
	return u.users.GetByID(ctx, id)
}
