package usecase_test

import (
	"context"
	"errors"
	"testing"

	domainErrors "github.com/veilmart/veilmart/internal/domain/errors"
	"github.com/veilmart/veilmart/internal/domain/model"
	pkgAuth "github.com/veilmart/veilmart/internal/pkg/auth"
	testhelpers "github.com/veilmart/veilmart/internal/test"
	"github.com/veilmart/veilmart/internal/usecase"
)

func newAuthFixture() (*usecase.AuthUseCase, *testhelpers.UserRepositoryStub, *testhelpers.ShopRepositoryStub, *testhelpers.WalletRepositoryStub) {
	users := testhelpers.NewUserRepositoryStub()
	shops := testhelpers.NewShopRepositoryStub()
	wallets := testhelpers.NewWalletRepositoryStub()
	uc := usecase.NewAuthUseCase(users, shops, wallets, testhelpers.HasherStub{}, testhelpers.StrategyStub{}, &testhelpers.TxManagerStub{})
	return uc, users, shops, wallets
}

func TestRegisterCustomerCreatesWallet(t *testing.T) {
	uc, users, shops, wallets := newAuthFixture()

	usr, token, err := uc.Register(context.Background(), "bride", "secret", model.RoleCustomer, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if token == "" {
		t.Fatalf("expected token")
	}
	if users.ByID[usr.ID] == nil {
		t.Fatalf("expected user to be stored")
	}
	if _, err := wallets.GetByOwner(context.Background(), usr.ID); err != nil {
		t.Fatalf("expected wallet for new user: %v", err)
	}
	if _, err := shops.GetByOwner(context.Background(), usr.ID); !errors.Is(err, domainErrors.ErrNotFound) {
		t.Fatalf("customer must not get a shop, got %v", err)
	}
}

func TestRegisterShopCreatesProfile(t *testing.T) {
	uc, _, shops, _ := newAuthFixture()

	usr, _, err := uc.Register(context.Background(), "seller", "secret", model.RoleShop, "atelier")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	shop, err := shops.GetByOwner(context.Background(), usr.ID)
	if err != nil {
		t.Fatalf("expected shop profile: %v", err)
	}
	if shop.Name != "atelier" {
		t.Fatalf("unexpected shop name %s", shop.Name)
	}
}

func TestRegisterShopRequiresName(t *testing.T) {
	uc, _, _, _ := newAuthFixture()

	if _, _, err := uc.Register(context.Background(), "seller", "secret", model.RoleShop, "  "); !errors.Is(err, domainErrors.ErrInvalidCredentials) {
		t.Fatalf("expected invalid credentials for missing shop name, got %v", err)
	}
}

func TestRegisterRejectsEmptyCredentials(t *testing.T) {
	uc, _, _, _ := newAuthFixture()

	if _, _, err := uc.Register(context.Background(), "", "secret", model.RoleCustomer, ""); !errors.Is(err, domainErrors.ErrInvalidCredentials) {
		t.Fatalf("expected invalid credentials, got %v", err)
	}
	if _, _, err := uc.Register(context.Background(), "bride", "", model.RoleCustomer, ""); !errors.Is(err, domainErrors.ErrInvalidCredentials) {
		t.Fatalf("expected invalid credentials, got %v", err)
	}
}

func TestRegisterDuplicateLogin(t *testing.T) {
	uc, _, _, _ := newAuthFixture()

	if _, _, err := uc.Register(context.Background(), "bride", "secret", model.RoleCustomer, ""); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, _, err := uc.Register(context.Background(), "bride", "other", model.RoleCustomer, ""); !errors.Is(err, domainErrors.ErrAlreadyExists) {
		t.Fatalf("expected already exists, got %v", err)
	}
}

func TestAuthenticateSuccess(t *testing.T) {
	uc, _, _, _ := newAuthFixture()

	if _, _, err := uc.Register(context.Background(), "bride", "secret", model.RoleCustomer, ""); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	usr, token, err := uc.Authenticate(context.Background(), "bride", "secret")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if usr.Login != "bride" || token == "" {
		t.Fatalf("unexpected result %v %q", usr, token)
	}
}

func TestAuthenticateWrongPassword(t *testing.T) {
	uc, _, _, _ := newAuthFixture()

	if _, _, err := uc.Register(context.Background(), "bride", "secret", model.RoleCustomer, ""); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, _, err := uc.Authenticate(context.Background(), "bride", "wrong"); !errors.Is(err, domainErrors.ErrInvalidCredentials) {
		t.Fatalf("expected invalid credentials, got %v", err)
	}
}

func TestAuthenticateUnknownLogin(t *testing.T) {
	uc, _, _, _ := newAuthFixture()

	if _, _, err := uc.Authenticate(context.Background(), "ghost", "secret"); !errors.Is(err, domainErrors.ErrInvalidCredentials) {
		t.Fatalf("expected invalid credentials, got %v", err)
	}
}

func TestParseTokenRejectsEmpty(t *testing.T) {
	uc, _, _, _ := newAuthFixture()

	if _, err := uc.ParseToken(""); !errors.Is(err, pkgAuth.ErrInvalidToken) {
		t.Fatalf("expected invalid token, got %v", err)
	}
}
