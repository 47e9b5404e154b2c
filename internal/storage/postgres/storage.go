package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	domainErrors "github.com/veilmart/veilmart/internal/domain/errors"
	"github.com/veilmart/veilmart/internal/domain/model"
	"github.com/veilmart/veilmart/internal/domain/repository"
)

// DBPool is the subset of pgxpool.Pool used by the storage. pgxmock
// satisfies it in tests.
type DBPool interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	BeginTx(ctx context.Context, txOptions pgx.TxOptions) (pgx.Tx, error)
	Ping(ctx context.Context) error
	Close()
}

// querier is satisfied by both the pool and an open pgx.Tx.
type querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Storage acts as repository facade backed by PostgreSQL.
type Storage struct {
	pool   DBPool
	logger *slog.Logger
}

type userRepository struct{ storage *Storage }
type shopRepository struct{ storage *Storage }
type orderRepository struct{ storage *Storage }
type milestoneRepository struct{ storage *Storage }
type taskRepository struct{ storage *Storage }
type walletRepository struct{ storage *Storage }
type transactionRepository struct{ storage *Storage }
type membershipRepository struct{ storage *Storage }
type subscriptionRepository struct{ storage *Storage }
type updateRequestRepository struct{ storage *Storage }

// newPgxPool is swapped in tests to inject a mock pool.
var newPgxPool = func(ctx context.Context, cfg *pgxpool.Config) (DBPool, error) {
	return pgxpool.NewWithConfig(ctx, cfg)
}

// New creates storage with schema initialization.
func New(ctx context.Context, dsn string, logger *slog.Logger) (*Storage, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse dsn: %w", err)
	}

	pool, err := newPgxPool(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("connect db: %w", err)
	}

	storage := &Storage{pool: pool, logger: logger}
	if err := storage.initSchema(ctx); err != nil {
		pool.Close()
		return nil, err
	}

	return storage, nil
}

// Close releases database resources.
func (s *Storage) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

// Factory methods for domain repositories.
func (s *Storage) Users() repository.UserRepository { return &userRepository{storage: s} }
func (s *Storage) Shops() repository.ShopRepository { return &shopRepository{storage: s} }
func (s *Storage) Orders() repository.OrderRepository {
	return &orderRepository{storage: s}
}
func (s *Storage) Milestones() repository.MilestoneRepository {
	return &milestoneRepository{storage: s}
}
func (s *Storage) Tasks() repository.TaskRepository { return &taskRepository{storage: s} }
func (s *Storage) Wallets() repository.WalletRepository {
	return &walletRepository{storage: s}
}
func (s *Storage) Transactions() repository.TransactionRepository {
	return &transactionRepository{storage: s}
}
func (s *Storage) Memberships() repository.MembershipRepository {
	return &membershipRepository{storage: s}
}
func (s *Storage) Subscriptions() repository.SubscriptionRepository {
	return &subscriptionRepository{storage: s}
}
func (s *Storage) UpdateRequests() repository.UpdateRequestRepository {
	return &updateRequestRepository{storage: s}
}

func (s *Storage) initSchema(ctx context.Context) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS users (
            id BIGSERIAL PRIMARY KEY,
            login TEXT UNIQUE NOT NULL,
            password_hash TEXT NOT NULL,
            role TEXT NOT NULL DEFAULT 'CUSTOMER',
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE TABLE IF NOT EXISTS shops (
            id BIGSERIAL PRIMARY KEY,
            owner_id BIGINT UNIQUE NOT NULL REFERENCES users(id),
            name TEXT NOT NULL,
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE TABLE IF NOT EXISTS orders (
            id BIGSERIAL PRIMARY KEY,
            shop_id BIGINT NOT NULL REFERENCES shops(id),
            user_id BIGINT NOT NULL REFERENCES users(id),
            status TEXT NOT NULL,
            amount NUMERIC(18,2) NOT NULL CHECK (amount >= 0),
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
            updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE TABLE IF NOT EXISTS milestones (
            id BIGSERIAL PRIMARY KEY,
            order_id BIGINT NOT NULL REFERENCES orders(id),
            index INT NOT NULL,
            title TEXT NOT NULL DEFAULT '',
            status TEXT NOT NULL,
            due_date TIMESTAMPTZ NOT NULL,
            UNIQUE (order_id, index)
        )`,
		`CREATE TABLE IF NOT EXISTS tasks (
            id BIGSERIAL PRIMARY KEY,
            milestone_id BIGINT NOT NULL REFERENCES milestones(id),
            index INT NOT NULL,
            title TEXT NOT NULL DEFAULT '',
            status TEXT NOT NULL,
            due_date TIMESTAMPTZ NOT NULL,
            UNIQUE (milestone_id, index)
        )`,
		`CREATE TABLE IF NOT EXISTS wallets (
            id BIGSERIAL PRIMARY KEY,
            owner_id BIGINT UNIQUE NOT NULL REFERENCES users(id),
            available NUMERIC(18,2) NOT NULL DEFAULT 0 CHECK (available >= 0),
            locked NUMERIC(18,2) NOT NULL DEFAULT 0 CHECK (locked >= 0),
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
            updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE TABLE IF NOT EXISTS transactions (
            id BIGSERIAL PRIMARY KEY,
            wallet_id BIGINT NOT NULL REFERENCES wallets(id),
            order_id BIGINT REFERENCES orders(id),
            membership_id BIGINT,
            from_label TEXT NOT NULL,
            to_label TEXT NOT NULL,
            from_balance TEXT NOT NULL,
            to_balance TEXT NOT NULL,
            amount NUMERIC(18,2) NOT NULL CHECK (amount > 0),
            type TEXT NOT NULL,
            status TEXT NOT NULL,
            note TEXT NOT NULL DEFAULT '',
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE TABLE IF NOT EXISTS subscriptions (
            id BIGSERIAL PRIMARY KEY,
            name TEXT NOT NULL,
            amount NUMERIC(18,2) NOT NULL CHECK (amount >= 0),
            duration INT NOT NULL CHECK (duration > 0)
        )`,
		`CREATE TABLE IF NOT EXISTS memberships (
            id BIGSERIAL PRIMARY KEY,
            shop_id BIGINT NOT NULL REFERENCES shops(id),
            subscription_id BIGINT NOT NULL REFERENCES subscriptions(id),
            start_date TIMESTAMPTZ NOT NULL,
            end_date TIMESTAMPTZ NOT NULL,
            status TEXT NOT NULL
        )`,
		`CREATE TABLE IF NOT EXISTS update_requests (
            id BIGSERIAL PRIMARY KEY,
            order_id BIGINT NOT NULL REFERENCES orders(id),
            amount NUMERIC(18,2) NOT NULL CHECK (amount > 0),
            note TEXT NOT NULL DEFAULT '',
            status TEXT NOT NULL,
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
            updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE INDEX IF NOT EXISTS idx_milestones_order ON milestones(order_id, index)`,
		`CREATE INDEX IF NOT EXISTS idx_tasks_milestone ON tasks(milestone_id, index)`,
		`CREATE INDEX IF NOT EXISTS idx_transactions_wallet ON transactions(wallet_id, created_at DESC)`,
		`CREATE UNIQUE INDEX IF NOT EXISTS ux_memberships_shop_active ON memberships(shop_id) WHERE status = 'ACTIVE'`,
		`CREATE INDEX IF NOT EXISTS idx_update_requests_pending ON update_requests(created_at) WHERE status = 'PENDING'`,
	}

	for _, stmt := range statements {
		if _, err := s.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("init schema: %w", err)
		}
	}

	return nil
}

type txKey struct{}

// WithinTransaction executes fn inside a transaction boundary. Repository
// calls receiving the context passed to fn run on the same transaction.
// Nested calls reuse the already open transaction.
func (s *Storage) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) (err error) {
	if _, ok := ctx.Value(txKey{}).(pgx.Tx); ok {
		return fn(ctx)
	}

	tx, err := s.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		} else {
			err = tx.Commit(ctx)
		}
	}()

	err = fn(context.WithValue(ctx, txKey{}, tx))
	return err
}

// q returns the active transaction from the context, or the pool.
func (s *Storage) q(ctx context.Context) querier {
	if tx, ok := ctx.Value(txKey{}).(pgx.Tx); ok {
		return tx
	}
	return s.pool
}

// --- UserRepository implementation ---

func (r *userRepository) Create(ctx context.Context, login, passwordHash string, role model.Role) (*model.User, error) {
	const query = `INSERT INTO users (login, password_hash, role) VALUES ($1, $2, $3) RETURNING id, created_at`
	var u model.User
	err := r.storage.q(ctx).QueryRow(ctx, query, login, passwordHash, role).Scan(&u.ID, &u.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, domainErrors.ErrAlreadyExists
		}
		return nil, err
	}
	u.Login = login
	u.PasswordHash = passwordHash
	u.Role = role
	return &u, nil
}

func (r *userRepository) GetByLogin(ctx context.Context, login string) (*model.User, error) {
	const query = `SELECT id, login, password_hash, role, created_at FROM users WHERE login=$1`
	var u model.User
	err := r.storage.q(ctx).QueryRow(ctx, query, login).Scan(&u.ID, &u.Login, &u.PasswordHash, &u.Role, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}

func (r *userRepository) GetByID(ctx context.Context, id int64) (*model.User, error) {
	const query = `SELECT id, login, password_hash, role, created_at FROM users WHERE id=$1`
	var u model.User
	err := r.storage.q(ctx).QueryRow(ctx, query, id).Scan(&u.ID, &u.Login, &u.PasswordHash, &u.Role, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}

// --- ShopRepository implementation ---

func (r *shopRepository) Create(ctx context.Context, ownerID int64, name string) (*model.Shop, error) {
	const query = `INSERT INTO shops (owner_id, name) VALUES ($1, $2) RETURNING id, created_at`
	var sh model.Shop
	err := r.storage.q(ctx).QueryRow(ctx, query, ownerID, name).Scan(&sh.ID, &sh.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, domainErrors.ErrAlreadyExists
		}
		return nil, err
	}
	sh.OwnerID = ownerID
	sh.Name = name
	return &sh, nil
}

func (r *shopRepository) GetByOwner(ctx context.Context, ownerID int64) (*model.Shop, error) {
	const query = `SELECT id, owner_id, name, created_at FROM shops WHERE owner_id=$1`
	return r.scanShop(r.storage.q(ctx).QueryRow(ctx, query, ownerID))
}

func (r *shopRepository) GetByID(ctx context.Context, id int64) (*model.Shop, error) {
	const query = `SELECT id, owner_id, name, created_at FROM shops WHERE id=$1`
	return r.scanShop(r.storage.q(ctx).QueryRow(ctx, query, id))
}

func (r *shopRepository) scanShop(row pgx.Row) (*model.Shop, error) {
	var sh model.Shop
	err := row.Scan(&sh.ID, &sh.OwnerID, &sh.Name, &sh.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return &sh, nil
}

// --- OrderRepository implementation ---

const orderColumns = `id, shop_id, user_id, status, amount, created_at, updated_at`

func scanOrder(row pgx.Row) (*model.Order, error) {
	var o model.Order
	err := row.Scan(&o.ID, &o.ShopID, &o.UserID, &o.Status, &o.Amount, &o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return &o, nil
}

func (r *orderRepository) Create(ctx context.Context, shopID, userID int64, amount decimal.Decimal) (*model.Order, error) {
	const query = `INSERT INTO orders (shop_id, user_id, status, amount) VALUES ($1, $2, $3, $4)
                   RETURNING id, created_at, updated_at`
	var o model.Order
	err := r.storage.q(ctx).QueryRow(ctx, query, shopID, userID, model.OrderStatusPending, amount).Scan(&o.ID, &o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		return nil, err
	}
	o.ShopID = shopID
	o.UserID = userID
	o.Status = model.OrderStatusPending
	o.Amount = amount
	return &o, nil
}

func (r *orderRepository) GetByID(ctx context.Context, id int64) (*model.Order, error) {
	const query = `SELECT ` + orderColumns + ` FROM orders WHERE id=$1`
	return scanOrder(r.storage.q(ctx).QueryRow(ctx, query, id))
}

func (r *orderRepository) GetForUpdate(ctx context.Context, id int64) (*model.Order, error) {
	const query = `SELECT ` + orderColumns + ` FROM orders WHERE id=$1 FOR UPDATE`
	return scanOrder(r.storage.q(ctx).QueryRow(ctx, query, id))
}

func (r *orderRepository) GetOpenByShop(ctx context.Context, shopID, orderID int64) (*model.Order, error) {
	const query = `SELECT ` + orderColumns + ` FROM orders
                   WHERE id=$1 AND shop_id=$2 AND status IN ('PENDING', 'IN_PROCESS')`
	return scanOrder(r.storage.q(ctx).QueryRow(ctx, query, orderID, shopID))
}

func (r *orderRepository) UpdateStatus(ctx context.Context, id int64, status model.OrderStatus) error {
	const query = `UPDATE orders SET status=$1, updated_at=NOW() WHERE id=$2`
	tag, err := r.storage.q(ctx).Exec(ctx, query, status, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domainErrors.ErrNotFound
	}
	return nil
}

func (r *orderRepository) AddAmount(ctx context.Context, id int64, delta decimal.Decimal) error {
	const query = `UPDATE orders SET amount = amount + $1, updated_at=NOW() WHERE id=$2`
	tag, err := r.storage.q(ctx).Exec(ctx, query, delta, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domainErrors.ErrNotFound
	}
	return nil
}

// --- MilestoneRepository implementation ---

const milestoneColumns = `id, order_id, index, title, status, due_date`

func scanMilestone(row pgx.Row) (*model.Milestone, error) {
	var m model.Milestone
	err := row.Scan(&m.ID, &m.OrderID, &m.Index, &m.Title, &m.Status, &m.DueDate)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return &m, nil
}

func (r *milestoneRepository) Create(ctx context.Context, m *model.Milestone) (*model.Milestone, error) {
	const query = `INSERT INTO milestones (order_id, index, title, status, due_date)
                   VALUES ($1, $2, $3, $4, $5) RETURNING id`
	created := *m
	err := r.storage.q(ctx).QueryRow(ctx, query, m.OrderID, m.Index, m.Title, m.Status, m.DueDate).Scan(&created.ID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, domainErrors.ErrAlreadyExists
		}
		return nil, err
	}
	return &created, nil
}

func (r *milestoneRepository) GetByID(ctx context.Context, id int64) (*model.Milestone, error) {
	const query = `SELECT ` + milestoneColumns + ` FROM milestones WHERE id=$1`
	return scanMilestone(r.storage.q(ctx).QueryRow(ctx, query, id))
}

func (r *milestoneRepository) ListByOrder(ctx context.Context, orderID int64) ([]model.Milestone, error) {
	const query = `SELECT ` + milestoneColumns + ` FROM milestones WHERE order_id=$1 ORDER BY index`
	rows, err := r.storage.q(ctx).Query(ctx, query, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.Milestone
	for rows.Next() {
		var m model.Milestone
		if err := rows.Scan(&m.ID, &m.OrderID, &m.Index, &m.Title, &m.Status, &m.DueDate); err != nil {
			return nil, err
		}
		result = append(result, m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *milestoneRepository) CountByOrder(ctx context.Context, orderID int64) (int, error) {
	const query = `SELECT COUNT(*) FROM milestones WHERE order_id=$1`
	var count int
	if err := r.storage.q(ctx).QueryRow(ctx, query, orderID).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

func (r *milestoneRepository) UpdateStatus(ctx context.Context, id int64, status model.ProgressStatus) error {
	const query = `UPDATE milestones SET status=$1 WHERE id=$2`
	tag, err := r.storage.q(ctx).Exec(ctx, query, status, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domainErrors.ErrNotFound
	}
	return nil
}

func (r *milestoneRepository) Update(ctx context.Context, m *model.Milestone) error {
	const query = `UPDATE milestones SET title=$1, due_date=$2 WHERE id=$3`
	tag, err := r.storage.q(ctx).Exec(ctx, query, m.Title, m.DueDate, m.ID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domainErrors.ErrNotFound
	}
	return nil
}

// --- TaskRepository implementation ---

const taskColumns = `id, milestone_id, index, title, status, due_date`

func scanTask(row pgx.Row) (*model.Task, error) {
	var t model.Task
	err := row.Scan(&t.ID, &t.MilestoneID, &t.Index, &t.Title, &t.Status, &t.DueDate)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return &t, nil
}

func (r *taskRepository) Create(ctx context.Context, t *model.Task) (*model.Task, error) {
	const query = `INSERT INTO tasks (milestone_id, index, title, status, due_date)
                   VALUES ($1, $2, $3, $4, $5) RETURNING id`
	created := *t
	err := r.storage.q(ctx).QueryRow(ctx, query, t.MilestoneID, t.Index, t.Title, t.Status, t.DueDate).Scan(&created.ID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, domainErrors.ErrAlreadyExists
		}
		return nil, err
	}
	return &created, nil
}

func (r *taskRepository) GetByID(ctx context.Context, id int64) (*model.Task, error) {
	const query = `SELECT ` + taskColumns + ` FROM tasks WHERE id=$1`
	return scanTask(r.storage.q(ctx).QueryRow(ctx, query, id))
}

func (r *taskRepository) ListByMilestone(ctx context.Context, milestoneID int64) ([]model.Task, error) {
	const query = `SELECT ` + taskColumns + ` FROM tasks WHERE milestone_id=$1 ORDER BY index`
	rows, err := r.storage.q(ctx).Query(ctx, query, milestoneID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.Task
	for rows.Next() {
		var t model.Task
		if err := rows.Scan(&t.ID, &t.MilestoneID, &t.Index, &t.Title, &t.Status, &t.DueDate); err != nil {
			return nil, err
		}
		result = append(result, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *taskRepository) CountByMilestone(ctx context.Context, milestoneID int64) (int, error) {
	const query = `SELECT COUNT(*) FROM tasks WHERE milestone_id=$1`
	var count int
	if err := r.storage.q(ctx).QueryRow(ctx, query, milestoneID).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

func (r *taskRepository) UpdateStatus(ctx context.Context, id int64, status model.ProgressStatus) error {
	const query = `UPDATE tasks SET status=$1 WHERE id=$2`
	tag, err := r.storage.q(ctx).Exec(ctx, query, status, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domainErrors.ErrNotFound
	}
	return nil
}

// --- WalletRepository implementation ---

const walletColumns = `id, owner_id, available, locked, created_at, updated_at`

func scanWallet(row pgx.Row) (*model.Wallet, error) {
	var w model.Wallet
	err := row.Scan(&w.ID, &w.OwnerID, &w.Available, &w.Locked, &w.CreatedAt, &w.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return &w, nil
}

func (r *walletRepository) Create(ctx context.Context, ownerID int64) (*model.Wallet, error) {
	const query = `INSERT INTO wallets (owner_id) VALUES ($1)
                   RETURNING id, available, locked, created_at, updated_at`
	var w model.Wallet
	err := r.storage.q(ctx).QueryRow(ctx, query, ownerID).Scan(&w.ID, &w.Available, &w.Locked, &w.CreatedAt, &w.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, domainErrors.ErrAlreadyExists
		}
		return nil, err
	}
	w.OwnerID = ownerID
	return &w, nil
}

func (r *walletRepository) GetByOwner(ctx context.Context, ownerID int64) (*model.Wallet, error) {
	const query = `SELECT ` + walletColumns + ` FROM wallets WHERE owner_id=$1`
	return scanWallet(r.storage.q(ctx).QueryRow(ctx, query, ownerID))
}

func (r *walletRepository) GetByID(ctx context.Context, id int64) (*model.Wallet, error) {
	const query = `SELECT ` + walletColumns + ` FROM wallets WHERE id=$1`
	return scanWallet(r.storage.q(ctx).QueryRow(ctx, query, id))
}

func (r *walletRepository) GetByOwnerForUpdate(ctx context.Context, ownerID int64) (*model.Wallet, error) {
	const query = `SELECT ` + walletColumns + ` FROM wallets WHERE owner_id=$1 FOR UPDATE`
	return scanWallet(r.storage.q(ctx).QueryRow(ctx, query, ownerID))
}

func (r *walletRepository) GetForUpdate(ctx context.Context, id int64) (*model.Wallet, error) {
	const query = `SELECT ` + walletColumns + ` FROM wallets WHERE id=$1 FOR UPDATE`
	return scanWallet(r.storage.q(ctx).QueryRow(ctx, query, id))
}

func (r *walletRepository) AdjustBalances(ctx context.Context, id int64, availableDelta, lockedDelta decimal.Decimal) error {
	const query = `UPDATE wallets SET available = available + $1, locked = locked + $2, updated_at=NOW() WHERE id=$3`
	tag, err := r.storage.q(ctx).Exec(ctx, query, availableDelta, lockedDelta, id)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23514" {
			return domainErrors.ErrInsufficientFunds
		}
		return err
	}
	if tag.RowsAffected() == 0 {
		return domainErrors.ErrNotFound
	}
	return nil
}

// --- TransactionRepository implementation ---

const transactionColumns = `id, wallet_id, order_id, membership_id, from_label, to_label,
                   from_balance, to_balance, amount, type, status, note, created_at`

func scanTransaction(row pgx.Row) (*model.Transaction, error) {
	var t model.Transaction
	err := row.Scan(&t.ID, &t.WalletID, &t.OrderID, &t.MembershipID, &t.From, &t.To,
		&t.FromBalance, &t.ToBalance, &t.Amount, &t.Type, &t.Status, &t.Note, &t.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return &t, nil
}

func (r *transactionRepository) Create(ctx context.Context, t *model.Transaction) (*model.Transaction, error) {
	const query = `INSERT INTO transactions
                   (wallet_id, order_id, membership_id, from_label, to_label, from_balance, to_balance, amount, type, status, note)
                   VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
                   RETURNING id, created_at`
	created := *t
	err := r.storage.q(ctx).QueryRow(ctx, query,
		t.WalletID, t.OrderID, t.MembershipID, t.From, t.To,
		t.FromBalance, t.ToBalance, t.Amount, t.Type, t.Status, t.Note,
	).Scan(&created.ID, &created.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &created, nil
}

func (r *transactionRepository) GetByID(ctx context.Context, id int64) (*model.Transaction, error) {
	const query = `SELECT ` + transactionColumns + ` FROM transactions WHERE id=$1`
	return scanTransaction(r.storage.q(ctx).QueryRow(ctx, query, id))
}

func (r *transactionRepository) GetForUpdate(ctx context.Context, id int64) (*model.Transaction, error) {
	const query = `SELECT ` + transactionColumns + ` FROM transactions WHERE id=$1 FOR UPDATE`
	return scanTransaction(r.storage.q(ctx).QueryRow(ctx, query, id))
}

func (r *transactionRepository) ListByWallet(ctx context.Context, walletID int64) ([]model.Transaction, error) {
	const query = `SELECT ` + transactionColumns + ` FROM transactions WHERE wallet_id=$1 ORDER BY created_at DESC`
	rows, err := r.storage.q(ctx).Query(ctx, query, walletID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.Transaction
	for rows.Next() {
		var t model.Transaction
		if err := rows.Scan(&t.ID, &t.WalletID, &t.OrderID, &t.MembershipID, &t.From, &t.To,
			&t.FromBalance, &t.ToBalance, &t.Amount, &t.Type, &t.Status, &t.Note, &t.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *transactionRepository) UpdateStatus(ctx context.Context, id int64, status model.TransactionStatus) error {
	const query = `UPDATE transactions SET status=$1 WHERE id=$2`
	tag, err := r.storage.q(ctx).Exec(ctx, query, status, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domainErrors.ErrNotFound
	}
	return nil
}

// --- MembershipRepository implementation ---

func (r *membershipRepository) Create(ctx context.Context, m *model.Membership) (*model.Membership, error) {
	const query = `INSERT INTO memberships (shop_id, subscription_id, start_date, end_date, status)
                   VALUES ($1, $2, $3, $4, $5) RETURNING id`
	created := *m
	err := r.storage.q(ctx).QueryRow(ctx, query, m.ShopID, m.SubscriptionID, m.StartDate, m.EndDate, m.Status).Scan(&created.ID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, domainErrors.ErrAlreadyExists
		}
		return nil, err
	}
	return &created, nil
}

func (r *membershipRepository) GetActiveByShop(ctx context.Context, shopID int64) (*model.Membership, error) {
	const query = `SELECT id, shop_id, subscription_id, start_date, end_date, status
                   FROM memberships WHERE shop_id=$1 AND status='ACTIVE'`
	var m model.Membership
	err := r.storage.q(ctx).QueryRow(ctx, query, shopID).Scan(&m.ID, &m.ShopID, &m.SubscriptionID, &m.StartDate, &m.EndDate, &m.Status)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return &m, nil
}

func (r *membershipRepository) Deactivate(ctx context.Context, id int64, endDate time.Time) error {
	const query = `UPDATE memberships SET status='INACTIVE', end_date=$1 WHERE id=$2`
	tag, err := r.storage.q(ctx).Exec(ctx, query, endDate, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domainErrors.ErrNotFound
	}
	return nil
}

// --- SubscriptionRepository implementation ---

func (r *subscriptionRepository) GetByID(ctx context.Context, id int64) (*model.Subscription, error) {
	const query = `SELECT id, name, amount, duration FROM subscriptions WHERE id=$1`
	var sub model.Subscription
	err := r.storage.q(ctx).QueryRow(ctx, query, id).Scan(&sub.ID, &sub.Name, &sub.Amount, &sub.Duration)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return &sub, nil
}

func (r *subscriptionRepository) List(ctx context.Context) ([]model.Subscription, error) {
	const query = `SELECT id, name, amount, duration FROM subscriptions ORDER BY amount`
	rows, err := r.storage.q(ctx).Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.Subscription
	for rows.Next() {
		var sub model.Subscription
		if err := rows.Scan(&sub.ID, &sub.Name, &sub.Amount, &sub.Duration); err != nil {
			return nil, err
		}
		result = append(result, sub)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// --- UpdateRequestRepository implementation ---

const updateRequestColumns = `id, order_id, amount, note, status, created_at, updated_at`

func scanUpdateRequest(row pgx.Row) (*model.UpdateRequest, error) {
	var u model.UpdateRequest
	err := row.Scan(&u.ID, &u.OrderID, &u.Amount, &u.Note, &u.Status, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}

func (r *updateRequestRepository) Create(ctx context.Context, req *model.UpdateRequest) (*model.UpdateRequest, error) {
	const query = `INSERT INTO update_requests (order_id, amount, note, status)
                   VALUES ($1, $2, $3, $4) RETURNING id, created_at, updated_at`
	created := *req
	err := r.storage.q(ctx).QueryRow(ctx, query, req.OrderID, req.Amount, req.Note, req.Status).Scan(&created.ID, &created.CreatedAt, &created.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &created, nil
}

func (r *updateRequestRepository) GetByID(ctx context.Context, id int64) (*model.UpdateRequest, error) {
	const query = `SELECT ` + updateRequestColumns + ` FROM update_requests WHERE id=$1`
	return scanUpdateRequest(r.storage.q(ctx).QueryRow(ctx, query, id))
}

func (r *updateRequestRepository) ListStalePending(ctx context.Context, cutoff time.Time, limit int) ([]model.UpdateRequest, error) {
	const query = `SELECT ` + updateRequestColumns + ` FROM update_requests
                   WHERE status='PENDING' AND created_at < $1 ORDER BY created_at LIMIT $2`
	rows, err := r.storage.q(ctx).Query(ctx, query, cutoff, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.UpdateRequest
	for rows.Next() {
		var u model.UpdateRequest
		if err := rows.Scan(&u.ID, &u.OrderID, &u.Amount, &u.Note, &u.Status, &u.CreatedAt, &u.UpdatedAt); err != nil {
			return nil, err
		}
		result = append(result, u)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *updateRequestRepository) UpdateStatus(ctx context.Context, id int64, status model.UpdateRequestStatus) error {
	const query = `UPDATE update_requests SET status=$1, updated_at=NOW() WHERE id=$2`
	tag, err := r.storage.q(ctx).Exec(ctx, query, status, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domainErrors.ErrNotFound
	}
	return nil
}

// HealthCheck verifies database connectivity.
func (s *Storage) HealthCheck(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	return s.pool.Ping(ctx)
}

// Logger returns storage logger.
func (s *Storage) Logger() *slog.Logger {
	return s.logger
}
