package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/finaya/pixwallet/internal/apperrors"
	"github.com/finaya/pixwallet/internal/core/domain"
	portssvc "github.com/finaya/pixwallet/internal/core/ports/services"
	"github.com/finaya/pixwallet/internal/core/services"
)

type WalletServiceTestSuite struct {
	suite.Suite
	mockWalletRepo *MockWalletRepository
	mockLedgerRepo *MockLedgerRepository
	mockIdemRepo   *MockIdempotencyRepository
	mockPoster     *MockLedgerPoster
	service        portssvc.WalletSvcFacade

	userID string
}

func (suite *WalletServiceTestSuite) SetupTest() {
	suite.mockWalletRepo = new(MockWalletRepository)
	suite.mockLedgerRepo = new(MockLedgerRepository)
	suite.mockIdemRepo = new(MockIdempotencyRepository)
	suite.mockPoster = new(MockLedgerPoster)
	suite.userID = uuid.NewString()

	idempotency := services.NewIdempotencyService(&fakeTransactor{}, suite.mockIdemRepo)
	suite.service = services.NewWalletService(suite.mockWalletRepo, suite.mockLedgerRepo, suite.mockPoster, idempotency)
}

// expectFreshKey wires the idempotency repo for a first-time execution.
func (suite *WalletServiceTestSuite) expectFreshKey(key string) {
	suite.mockIdemRepo.On("Claim", mock.Anything, key, mock.AnythingOfType("time.Time")).Return(true, nil).Once()
	suite.mockIdemRepo.On("MarkSucceeded", mock.Anything, key, mock.Anything, mock.AnythingOfType("time.Time")).Return(nil).Once()
}

func (suite *WalletServiceTestSuite) ownWallet(walletID string, balance decimal.Decimal) *domain.Wallet {
	return &domain.Wallet{WalletID: walletID, UserID: suite.userID, Balance: balance}
}

func (suite *WalletServiceTestSuite) TestCreateWallet_Success() {
	suite.mockWalletRepo.On("SaveWallet", mock.Anything, mock.MatchedBy(func(w domain.Wallet) bool {
		return w.UserID == suite.userID && w.Balance.IsZero() && w.WalletID != ""
	})).Return(nil).Once()

	wallet, err := suite.service.CreateWallet(context.Background(), suite.userID)

	suite.Require().NoError(err)
	suite.Equal(suite.userID, wallet.UserID)
	suite.True(wallet.Balance.IsZero())
	suite.mockWalletRepo.AssertExpectations(suite.T())
}

func (suite *WalletServiceTestSuite) TestGetWallet_NotOwnedAnswersNotFound() {
	walletID := uuid.NewString()
	other := &domain.Wallet{WalletID: walletID, UserID: uuid.NewString()}
	suite.mockWalletRepo.On("FindWalletByID", mock.Anything, walletID).Return(other, nil).Once()

	wallet, err := suite.service.GetWallet(context.Background(), walletID, suite.userID)

	suite.Require().Error(err)
	suite.Nil(wallet)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *WalletServiceTestSuite) TestDeposit_Success() {
	walletID := uuid.NewString()
	key := uuid.NewString()
	amount := decimal.RequireFromString("200.00")
	newBalance := decimal.RequireFromString("200.00")

	suite.expectFreshKey(key)
	suite.mockWalletRepo.On("FindWalletByID", mock.Anything, walletID).Return(suite.ownWallet(walletID, decimal.Zero), nil).Once()
	suite.mockPoster.On("Credit", mock.Anything, walletID, amount, domain.EntryDeposit, mock.AnythingOfType("string"), "deposit").Return(newBalance, nil).Once()

	balance, err := suite.service.Deposit(context.Background(), walletID, suite.userID, amount, key)

	suite.Require().NoError(err)
	suite.True(balance.Equal(newBalance))
	suite.mockIdemRepo.AssertExpectations(suite.T())
	suite.mockPoster.AssertExpectations(suite.T())
}

func (suite *WalletServiceTestSuite) TestDeposit_RejectsNonPositiveAmount() {
	_, err := suite.service.Deposit(context.Background(), uuid.NewString(), suite.userID, decimal.Zero, uuid.NewString())
	suite.ErrorIs(err, apperrors.ErrValidation)

	_, err = suite.service.Deposit(context.Background(), uuid.NewString(), suite.userID, decimal.RequireFromString("-5"), uuid.NewString())
	suite.ErrorIs(err, apperrors.ErrValidation)

	// Validation happens before the key is claimed.
	suite.mockIdemRepo.AssertNotCalled(suite.T(), "Claim", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *WalletServiceTestSuite) TestDeposit_RejectsSubCentPrecision() {
	_, err := suite.service.Deposit(context.Background(), uuid.NewString(), suite.userID, decimal.RequireFromString("10.001"), uuid.NewString())
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *WalletServiceTestSuite) TestWithdraw_InsufficientFundsRecordsFailure() {
	walletID := uuid.NewString()
	key := uuid.NewString()
	amount := decimal.RequireFromString("20.00")

	suite.mockIdemRepo.On("Claim", mock.Anything, key, mock.AnythingOfType("time.Time")).Return(true, nil).Once()
	suite.mockWalletRepo.On("FindWalletByID", mock.Anything, walletID).Return(suite.ownWallet(walletID, decimal.RequireFromString("10.00")), nil).Once()
	suite.mockPoster.On("Debit", mock.Anything, walletID, amount, domain.EntryWithdrawal, mock.AnythingOfType("string"), "withdrawal").
		Return(decimal.Zero, apperrors.ErrInsufficientFunds).Once()
	// The failure is finalized with the original error kind so a retry with
	// the same key reports insufficient funds again.
	suite.mockIdemRepo.On("MarkFailed", mock.Anything, key, apperrors.KindInsufficientFunds, mock.AnythingOfType("string"), mock.AnythingOfType("time.Time")).Return(nil).Once()

	_, err := suite.service.Withdraw(context.Background(), walletID, suite.userID, amount, key)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrInsufficientFunds)
	suite.mockIdemRepo.AssertExpectations(suite.T())
}

func (suite *WalletServiceTestSuite) TestDeposit_ReplayDoesNotCreditAgain() {
	walletID := uuid.NewString()
	key := uuid.NewString()
	stored := []byte(`"200.00"`)

	suite.mockIdemRepo.On("Claim", mock.Anything, key, mock.AnythingOfType("time.Time")).Return(false, nil).Once()
	suite.mockIdemRepo.On("FindByKey", mock.Anything, key).Return(&domain.IdempotencyRecord{
		RecordKey:  key,
		Status:     domain.IdempotencySucceeded,
		ResultData: stored,
	}, nil).Once()

	balance, err := suite.service.Deposit(context.Background(), walletID, suite.userID, decimal.RequireFromString("200.00"), key)

	suite.Require().NoError(err)
	suite.True(balance.Equal(decimal.RequireFromString("200.00")))
	suite.mockPoster.AssertNotCalled(suite.T(), "Credit", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *WalletServiceTestSuite) TestHistoricalBalance_NoEntriesMeansZero() {
	walletID := uuid.NewString()
	asOf := time.Now().Add(-time.Hour)

	suite.mockWalletRepo.On("FindWalletByID", mock.Anything, walletID).Return(suite.ownWallet(walletID, decimal.RequireFromString("50.00")), nil).Once()
	suite.mockLedgerRepo.On("FindBalanceAsOf", mock.Anything, walletID, asOf).Return(decimal.Zero, false, nil).Once()

	balance, err := suite.service.HistoricalBalance(context.Background(), walletID, suite.userID, asOf)

	suite.Require().NoError(err)
	suite.True(balance.IsZero())
}

func (suite *WalletServiceTestSuite) TestHistoricalBalance_ReturnsSnapshot() {
	walletID := uuid.NewString()
	asOf := time.Now().Add(-time.Minute)
	snapshot := decimal.RequireFromString("49.25")

	suite.mockWalletRepo.On("FindWalletByID", mock.Anything, walletID).Return(suite.ownWallet(walletID, decimal.RequireFromString("200.00")), nil).Once()
	suite.mockLedgerRepo.On("FindBalanceAsOf", mock.Anything, walletID, asOf).Return(snapshot, true, nil).Once()

	balance, err := suite.service.HistoricalBalance(context.Background(), walletID, suite.userID, asOf)

	suite.Require().NoError(err)
	suite.True(balance.Equal(snapshot))
}

func (suite *WalletServiceTestSuite) TestCurrentBalance() {
	walletID := uuid.NewString()
	suite.mockWalletRepo.On("FindWalletByID", mock.Anything, walletID).Return(suite.ownWallet(walletID, decimal.RequireFromString("75.10")), nil).Once()

	balance, err := suite.service.CurrentBalance(context.Background(), walletID, suite.userID)

	suite.Require().NoError(err)
	suite.True(balance.Equal(decimal.RequireFromString("75.10")))
}

func TestWalletServiceTestSuite(t *testing.T) {
	suite.Run(t, new(WalletServiceTestSuite))
}
