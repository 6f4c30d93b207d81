package services_test

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"

	"github.com/finaya/pixwallet/internal/core/domain"
)

// fakeTransactor runs the function directly; the services under test only
// need the ambient-transaction contract, not a real database transaction.
type fakeTransactor struct {
	beginErr error
}

func (f *fakeTransactor) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if f.beginErr != nil {
		return f.beginErr
	}
	return fn(ctx)
}

// --- Mock WalletRepository ---

type MockWalletRepository struct {
	mock.Mock
}

func (m *MockWalletRepository) SaveWallet(ctx context.Context, wallet domain.Wallet) error {
	args := m.Called(ctx, wallet)
	return args.Error(0)
}

func (m *MockWalletRepository) FindWalletByID(ctx context.Context, walletID string) (*domain.Wallet, error) {
	args := m.Called(ctx, walletID)
	var wallet *domain.Wallet
	if args.Get(0) != nil {
		wallet = args.Get(0).(*domain.Wallet)
	}
	return wallet, args.Error(1)
}

func (m *MockWalletRepository) FindWalletsByUserID(ctx context.Context, userID string) ([]domain.Wallet, error) {
	args := m.Called(ctx, userID)
	var wallets []domain.Wallet
	if args.Get(0) != nil {
		wallets = args.Get(0).([]domain.Wallet)
	}
	return wallets, args.Error(1)
}

func (m *MockWalletRepository) FindWalletsForUpdate(ctx context.Context, walletIDs []string) (map[string]domain.Wallet, error) {
	args := m.Called(ctx, walletIDs)
	var wallets map[string]domain.Wallet
	if args.Get(0) != nil {
		wallets = args.Get(0).(map[string]domain.Wallet)
	}
	return wallets, args.Error(1)
}

func (m *MockWalletRepository) UpdateWalletBalance(ctx context.Context, walletID string, newBalance decimal.Decimal, now time.Time) error {
	args := m.Called(ctx, walletID, newBalance, now)
	return args.Error(0)
}

func (m *MockWalletRepository) FindBalanceByID(ctx context.Context, walletID string) (decimal.Decimal, error) {
	args := m.Called(ctx, walletID)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

// --- Mock LedgerRepository ---

type MockLedgerRepository struct {
	mock.Mock
}

func (m *MockLedgerRepository) SaveEntry(ctx context.Context, entry domain.LedgerEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockLedgerRepository) FindBalanceAsOf(ctx context.Context, walletID string, asOf time.Time) (decimal.Decimal, bool, error) {
	args := m.Called(ctx, walletID, asOf)
	return args.Get(0).(decimal.Decimal), args.Bool(1), args.Error(2)
}

func (m *MockLedgerRepository) ListEntriesByWallet(ctx context.Context, walletID string, limit int, offset int) ([]domain.LedgerEntry, error) {
	args := m.Called(ctx, walletID, limit, offset)
	var entries []domain.LedgerEntry
	if args.Get(0) != nil {
		entries = args.Get(0).([]domain.LedgerEntry)
	}
	return entries, args.Error(1)
}

func (m *MockLedgerRepository) FindEntriesByTransactionID(ctx context.Context, transactionID string) ([]domain.LedgerEntry, error) {
	args := m.Called(ctx, transactionID)
	var entries []domain.LedgerEntry
	if args.Get(0) != nil {
		entries = args.Get(0).([]domain.LedgerEntry)
	}
	return entries, args.Error(1)
}

// --- Mock PixKeyRepository ---

type MockPixKeyRepository struct {
	mock.Mock
}

func (m *MockPixKeyRepository) SavePixKey(ctx context.Context, key domain.PixKey) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

func (m *MockPixKeyRepository) FindPixKeyByID(ctx context.Context, pixKeyID string) (*domain.PixKey, error) {
	args := m.Called(ctx, pixKeyID)
	var key *domain.PixKey
	if args.Get(0) != nil {
		key = args.Get(0).(*domain.PixKey)
	}
	return key, args.Error(1)
}

func (m *MockPixKeyRepository) FindActiveByValue(ctx context.Context, keyValue string) (*domain.PixKey, error) {
	args := m.Called(ctx, keyValue)
	var key *domain.PixKey
	if args.Get(0) != nil {
		key = args.Get(0).(*domain.PixKey)
	}
	return key, args.Error(1)
}

func (m *MockPixKeyRepository) FindPixKeysByWalletID(ctx context.Context, walletID string) ([]domain.PixKey, error) {
	args := m.Called(ctx, walletID)
	var keys []domain.PixKey
	if args.Get(0) != nil {
		keys = args.Get(0).([]domain.PixKey)
	}
	return keys, args.Error(1)
}

func (m *MockPixKeyRepository) UpdatePixKeyStatus(ctx context.Context, pixKeyID string, status domain.PixKeyStatus, now time.Time) error {
	args := m.Called(ctx, pixKeyID, status, now)
	return args.Error(0)
}

// --- Mock TransferRepository ---

type MockTransferRepository struct {
	mock.Mock
}

func (m *MockTransferRepository) SaveTransfer(ctx context.Context, transfer domain.PixTransfer) error {
	args := m.Called(ctx, transfer)
	return args.Error(0)
}

func (m *MockTransferRepository) FindByEndToEndID(ctx context.Context, endToEndID string) (*domain.PixTransfer, error) {
	args := m.Called(ctx, endToEndID)
	var transfer *domain.PixTransfer
	if args.Get(0) != nil {
		transfer = args.Get(0).(*domain.PixTransfer)
	}
	return transfer, args.Error(1)
}

func (m *MockTransferRepository) FindByEndToEndIDForUpdate(ctx context.Context, endToEndID string) (*domain.PixTransfer, error) {
	args := m.Called(ctx, endToEndID)
	var transfer *domain.PixTransfer
	if args.Get(0) != nil {
		transfer = args.Get(0).(*domain.PixTransfer)
	}
	return transfer, args.Error(1)
}

func (m *MockTransferRepository) UpdateTransferStatus(ctx context.Context, endToEndID string, status domain.TransferStatus, now time.Time) error {
	args := m.Called(ctx, endToEndID, status, now)
	return args.Error(0)
}

// --- Mock IdempotencyRepository ---

type MockIdempotencyRepository struct {
	mock.Mock
}

func (m *MockIdempotencyRepository) Claim(ctx context.Context, key string, now time.Time) (bool, error) {
	args := m.Called(ctx, key, now)
	return args.Bool(0), args.Error(1)
}

func (m *MockIdempotencyRepository) FindByKey(ctx context.Context, key string) (*domain.IdempotencyRecord, error) {
	args := m.Called(ctx, key)
	var record *domain.IdempotencyRecord
	if args.Get(0) != nil {
		record = args.Get(0).(*domain.IdempotencyRecord)
	}
	return record, args.Error(1)
}

func (m *MockIdempotencyRepository) MarkSucceeded(ctx context.Context, key string, result []byte, now time.Time) error {
	args := m.Called(ctx, key, result, now)
	return args.Error(0)
}

func (m *MockIdempotencyRepository) MarkFailed(ctx context.Context, key string, errType string, errMessage string, now time.Time) error {
	args := m.Called(ctx, key, errType, errMessage, now)
	return args.Error(0)
}

// --- Mock LedgerPosterFacade ---

type MockLedgerPoster struct {
	mock.Mock
}

func (m *MockLedgerPoster) LockWallets(ctx context.Context, walletIDs ...string) (map[string]domain.Wallet, error) {
	args := m.Called(ctx, walletIDs)
	var wallets map[string]domain.Wallet
	if args.Get(0) != nil {
		wallets = args.Get(0).(map[string]domain.Wallet)
	}
	return wallets, args.Error(1)
}

func (m *MockLedgerPoster) Credit(ctx context.Context, walletID string, amount decimal.Decimal, kind domain.EntryKind, transactionID string, description string) (decimal.Decimal, error) {
	args := m.Called(ctx, walletID, amount, kind, transactionID, description)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockLedgerPoster) Debit(ctx context.Context, walletID string, amount decimal.Decimal, kind domain.EntryKind, transactionID string, description string) (decimal.Decimal, error) {
	args := m.Called(ctx, walletID, amount, kind, transactionID, description)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockLedgerPoster) AppendAuditEntry(ctx context.Context, walletID string, amount decimal.Decimal, kind domain.EntryKind, transactionID string, description string) error {
	args := m.Called(ctx, walletID, amount, kind, transactionID, description)
	return args.Error(0)
}

// --- Mock UserRepository ---

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) SaveUser(ctx context.Context, user domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	var user *domain.User
	if args.Get(0) != nil {
		user = args.Get(0).(*domain.User)
	}
	return user, args.Error(1)
}

func (m *MockUserRepository) FindUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	var user *domain.User
	if args.Get(0) != nil {
		user = args.Get(0).(*domain.User)
	}
	return user, args.Error(1)
}
