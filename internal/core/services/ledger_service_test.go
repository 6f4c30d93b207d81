package services_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/finaya/pixwallet/internal/apperrors"
	"github.com/finaya/pixwallet/internal/core/domain"
	portssvc "github.com/finaya/pixwallet/internal/core/ports/services"
	"github.com/finaya/pixwallet/internal/core/services"
)

type LedgerPosterTestSuite struct {
	suite.Suite
	mockWalletRepo *MockWalletRepository
	mockLedgerRepo *MockLedgerRepository
	poster         portssvc.LedgerPosterFacade

	walletID string
}

func (suite *LedgerPosterTestSuite) SetupTest() {
	suite.mockWalletRepo = new(MockWalletRepository)
	suite.mockLedgerRepo = new(MockLedgerRepository)
	suite.poster = services.NewLedgerPoster(suite.mockWalletRepo, suite.mockLedgerRepo)
	suite.walletID = uuid.NewString()
}

func (suite *LedgerPosterTestSuite) lockWallet(balance string) {
	suite.mockWalletRepo.On("FindWalletsForUpdate", mock.Anything, []string{suite.walletID}).Return(map[string]domain.Wallet{
		suite.walletID: {WalletID: suite.walletID, Balance: decimal.RequireFromString(balance)},
	}, nil).Once()
}

func (suite *LedgerPosterTestSuite) TestCredit_AppendsEntryWithSnapshot() {
	txID := uuid.NewString()
	suite.lockWallet("49.25")
	suite.mockWalletRepo.On("UpdateWalletBalance", mock.Anything, suite.walletID, decimal.RequireFromString("200.00"), mock.AnythingOfType("time.Time")).Return(nil).Once()
	suite.mockLedgerRepo.On("SaveEntry", mock.Anything, mock.MatchedBy(func(e domain.LedgerEntry) bool {
		return e.WalletID == suite.walletID &&
			e.TransactionID == txID &&
			e.Kind == domain.EntryPixIn &&
			e.Amount.Equal(decimal.RequireFromString("150.75")) &&
			e.BalanceAfter.Equal(decimal.RequireFromString("200.00"))
	})).Return(nil).Once()

	newBalance, err := suite.poster.Credit(context.Background(), suite.walletID, decimal.RequireFromString("150.75"), domain.EntryPixIn, txID, "pix transfer received")

	suite.Require().NoError(err)
	suite.True(newBalance.Equal(decimal.RequireFromString("200.00")))
	suite.mockLedgerRepo.AssertExpectations(suite.T())
}

func (suite *LedgerPosterTestSuite) TestDebit_RecordsNegativeAmount() {
	txID := uuid.NewString()
	suite.lockWallet("200.00")
	suite.mockWalletRepo.On("UpdateWalletBalance", mock.Anything, suite.walletID, decimal.RequireFromString("49.25"), mock.AnythingOfType("time.Time")).Return(nil).Once()
	suite.mockLedgerRepo.On("SaveEntry", mock.Anything, mock.MatchedBy(func(e domain.LedgerEntry) bool {
		return e.Amount.Equal(decimal.RequireFromString("-150.75")) &&
			e.BalanceAfter.Equal(decimal.RequireFromString("49.25")) &&
			e.Kind == domain.EntryPixReserved
	})).Return(nil).Once()

	newBalance, err := suite.poster.Debit(context.Background(), suite.walletID, decimal.RequireFromString("150.75"), domain.EntryPixReserved, txID, "pix transfer reservation")

	suite.Require().NoError(err)
	suite.True(newBalance.Equal(decimal.RequireFromString("49.25")))
}

func (suite *LedgerPosterTestSuite) TestDebit_InsufficientFundsWritesNothing() {
	suite.lockWallet("10.00")

	_, err := suite.poster.Debit(context.Background(), suite.walletID, decimal.RequireFromString("20.00"), domain.EntryWithdrawal, uuid.NewString(), "withdrawal")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrInsufficientFunds)
	suite.mockWalletRepo.AssertNotCalled(suite.T(), "UpdateWalletBalance", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	suite.mockLedgerRepo.AssertNotCalled(suite.T(), "SaveEntry", mock.Anything, mock.Anything)
}

func (suite *LedgerPosterTestSuite) TestDebit_ExactBalanceToZero() {
	txID := uuid.NewString()
	suite.lockWallet("20.00")
	suite.mockWalletRepo.On("UpdateWalletBalance", mock.Anything, suite.walletID, mock.MatchedBy(func(d decimal.Decimal) bool { return d.IsZero() }), mock.AnythingOfType("time.Time")).Return(nil).Once()
	suite.mockLedgerRepo.On("SaveEntry", mock.Anything, mock.AnythingOfType("domain.LedgerEntry")).Return(nil).Once()

	newBalance, err := suite.poster.Debit(context.Background(), suite.walletID, decimal.RequireFromString("20.00"), domain.EntryWithdrawal, txID, "withdrawal")

	suite.Require().NoError(err)
	suite.True(newBalance.IsZero())
}

func (suite *LedgerPosterTestSuite) TestAppendAuditEntry_KeepsBalance() {
	txID := uuid.NewString()
	suite.lockWallet("49.25")
	suite.mockLedgerRepo.On("SaveEntry", mock.Anything, mock.MatchedBy(func(e domain.LedgerEntry) bool {
		return e.Amount.Equal(decimal.RequireFromString("-150.75")) &&
			e.BalanceAfter.Equal(decimal.RequireFromString("49.25")) &&
			e.Kind == domain.EntryPixOut
	})).Return(nil).Once()

	err := suite.poster.AppendAuditEntry(context.Background(), suite.walletID, decimal.RequireFromString("-150.75"), domain.EntryPixOut, txID, "pix transfer settled")

	suite.Require().NoError(err)
	suite.mockWalletRepo.AssertNotCalled(suite.T(), "UpdateWalletBalance", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *LedgerPosterTestSuite) TestCredit_RejectsNonPositiveAmount() {
	_, err := suite.poster.Credit(context.Background(), suite.walletID, decimal.Zero, domain.EntryDeposit, uuid.NewString(), "deposit")
	suite.ErrorIs(err, apperrors.ErrValidation)

	_, err = suite.poster.Debit(context.Background(), suite.walletID, decimal.RequireFromString("-1"), domain.EntryWithdrawal, uuid.NewString(), "withdrawal")
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func TestLedgerPosterTestSuite(t *testing.T) {
	suite.Run(t, new(LedgerPosterTestSuite))
}
