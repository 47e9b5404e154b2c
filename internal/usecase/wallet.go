package usecase

import (
	"context"

	"github.com/shopspring/decimal"

	domainErrors "github.com/veilmart/veilmart/internal/domain/errors"
	"github.com/veilmart/veilmart/internal/domain/model"
	"github.com/veilmart/veilmart/internal/domain/repository"
)

// Ledger labels for transaction source/destination.
const (
	LabelWallet         = "wallet"
	LabelPaymentGateway = "payment_gateway"
	LabelPlatform       = "platform"
	LabelBankAccount    = "bank_account"
)

// OTPVerifier checks a one-time code before a withdrawal request is
// accepted. The verification service itself is external.
type OTPVerifier interface {
	Verify(ctx context.Context, userID int64, code string) error
}

// WalletUseCase manages wallet balances and the transaction ledger. Every
// balance movement is paired with exactly one ledger entry written in the
// same storage transaction.
type WalletUseCase struct {
	wallets      repository.WalletRepository
	transactions repository.TransactionRepository
	orders       repository.OrderRepository
	verifier     OTPVerifier
	tx           repository.TxManager
}

// NewWalletUseCase constructs WalletUseCase.
func NewWalletUseCase(
	wallets repository.WalletRepository,
	transactions repository.TransactionRepository,
	orders repository.OrderRepository,
	verifier OTPVerifier,
	tx repository.TxManager,
) *WalletUseCase {
	return &WalletUseCase{wallets: wallets, transactions: transactions, orders: orders, verifier: verifier, tx: tx}
}

// EnsureWallet creates the owner's wallet when missing.
func (u *WalletUseCase) EnsureWallet(ctx context.Context, ownerID int64) (*model.Wallet, error) {
	wallet, err := u.wallets.GetByOwner(ctx, ownerID)
	if err == nil {
		return wallet, nil
	}
	if err != domainErrors.ErrNotFound {
		return nil, err
	}
	return u.wallets.Create(ctx, ownerID)
}

// Balance returns the owner's wallet.
func (u *WalletUseCase) Balance(ctx context.Context, userID int64) (*model.Wallet, error) {
	return u.wallets.GetByOwner(ctx, userID)
}

// History returns the wallet's ledger entries, newest first.
func (u *WalletUseCase) History(ctx context.Context, userID int64) ([]model.Transaction, error) {
	wallet, err := u.wallets.GetByOwner(ctx, userID)
	if err != nil {
		return nil, err
	}
	return u.transactions.ListByWallet(ctx, wallet.ID)
}

// Deposit records the intent to top up the wallet. The entry stays PENDING
// until the payment gateway confirms it; no balance changes yet.
func (u *WalletUseCase) Deposit(ctx context.Context, userID int64, amount decimal.Decimal, note string) (*model.Transaction, error) {
	if err := ValidateAmount(amount); err != nil {
		return nil, err
	}
	wallet, err := u.wallets.GetByOwner(ctx, userID)
	if err != nil {
		return nil, err
	}
	return u.transactions.Create(ctx, &model.Transaction{
		WalletID:    wallet.ID,
		From:        LabelPaymentGateway,
		To:          LabelWallet,
		FromBalance: model.BalanceTypeAvailable,
		ToBalance:   model.BalanceTypeAvailable,
		Amount:      amount,
		Type:        model.TransactionTypeDeposit,
		Status:      model.TransactionStatusPending,
		Note:        note,
	})
}

// ConfirmDeposit settles a pending deposit: credits available balance and
// flips the entry to COMPLETED. A confirmed deposit credits exactly once;
// repeated confirmations fail on the status guard.
func (u *WalletUseCase) ConfirmDeposit(ctx context.Context, transactionID int64) error {
	return u.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		txn, err := u.transactions.GetForUpdate(ctx, transactionID)
		if err != nil {
			return err
		}
		if txn.Type != model.TransactionTypeDeposit || txn.Status != model.TransactionStatusPending {
			return domainErrors.ErrInvalidState
		}
		if _, err := u.wallets.GetForUpdate(ctx, txn.WalletID); err != nil {
			return err
		}
		if err := u.wallets.AdjustBalances(ctx, txn.WalletID, txn.Amount, decimal.Zero); err != nil {
			return err
		}
		return u.transactions.UpdateStatus(ctx, txn.ID, model.TransactionStatusCompleted)
	})
}

// RequestWithdrawal records the intent to withdraw after OTP verification.
// Funds are not moved until staff approves the request.
func (u *WalletUseCase) RequestWithdrawal(ctx context.Context, userID int64, amount decimal.Decimal, note, otp string) (*model.Transaction, error) {
	if err := ValidateAmount(amount); err != nil {
		return nil, err
	}
	if err := u.verifier.Verify(ctx, userID, otp); err != nil {
		return nil, err
	}
	wallet, err := u.wallets.GetByOwner(ctx, userID)
	if err != nil {
		return nil, err
	}
	if wallet.Available.LessThan(amount) {
		return nil, domainErrors.ErrInsufficientFunds
	}
	return u.transactions.Create(ctx, &model.Transaction{
		WalletID:    wallet.ID,
		From:        LabelWallet,
		To:          LabelBankAccount,
		FromBalance: model.BalanceTypeAvailable,
		ToBalance:   model.BalanceTypeAvailable,
		Amount:      amount,
		Type:        model.TransactionTypeWithdraw,
		Status:      model.TransactionStatusPending,
		Note:        note,
	})
}

// ApproveWithdrawal debits available balance for a pending withdrawal and
// completes it. Staff only; the wallet row is locked for the debit.
func (u *WalletUseCase) ApproveWithdrawal(ctx context.Context, transactionID int64) error {
	return u.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		txn, err := u.transactions.GetForUpdate(ctx, transactionID)
		if err != nil {
			return err
		}
		if txn.Type != model.TransactionTypeWithdraw || txn.Status != model.TransactionStatusPending {
			return domainErrors.ErrInvalidState
		}
		wallet, err := u.wallets.GetForUpdate(ctx, txn.WalletID)
		if err != nil {
			return err
		}
		if wallet.Available.LessThan(txn.Amount) {
			return domainErrors.ErrInsufficientFunds
		}
		if err := u.wallets.AdjustBalances(ctx, wallet.ID, txn.Amount.Neg(), decimal.Zero); err != nil {
			return err
		}
		return u.transactions.UpdateStatus(ctx, txn.ID, model.TransactionStatusCompleted)
	})
}

// CancelWithdrawal rejects a pending withdrawal. No balance moves.
func (u *WalletUseCase) CancelWithdrawal(ctx context.Context, transactionID int64) error {
	return u.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		txn, err := u.transactions.GetForUpdate(ctx, transactionID)
		if err != nil {
			return err
		}
		if txn.Type != model.TransactionTypeWithdraw || txn.Status != model.TransactionStatusPending {
			return domainErrors.ErrInvalidState
		}
		return u.transactions.UpdateStatus(ctx, txn.ID, model.TransactionStatusCancelled)
	})
}

// PayOrder moves the order amount from the buyer's available balance into
// locked funds and records a COMPLETED payment entry referencing the
// order. Locked funds are released by the counterparty side of the
// business process, outside this flow.
func (u *WalletUseCase) PayOrder(ctx context.Context, userID, orderID int64) (*model.Transaction, error) {
	var created *model.Transaction
	err := u.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		order, err := u.orders.GetForUpdate(ctx, orderID)
		if err != nil {
			return err
		}
		if order.UserID != userID {
			return domainErrors.ErrNotFound
		}
		if order.Status.Terminal() {
			return domainErrors.ErrInvalidState
		}

		wallet, err := u.wallets.GetByOwnerForUpdate(ctx, userID)
		if err != nil {
			return err
		}
		if wallet.Available.LessThan(order.Amount) {
			return domainErrors.ErrInsufficientFunds
		}
		if err := u.wallets.AdjustBalances(ctx, wallet.ID, order.Amount.Neg(), order.Amount); err != nil {
			return err
		}

		created, err = u.transactions.Create(ctx, &model.Transaction{
			WalletID:    wallet.ID,
			OrderID:     &order.ID,
			From:        LabelWallet,
			To:          LabelPlatform,
			FromBalance: model.BalanceTypeAvailable,
			ToBalance:   model.BalanceTypeLocked,
			Amount:      order.Amount,
			Type:        model.TransactionTypePayment,
			Status:      model.TransactionStatusCompleted,
			Note:        "order payment",
		})
		return err
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}
