package services_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/finaya/pixwallet/internal/apperrors"
	"github.com/finaya/pixwallet/internal/core/domain"
	portssvc "github.com/finaya/pixwallet/internal/core/ports/services"
	"github.com/finaya/pixwallet/internal/core/services"
)

type PixKeyServiceTestSuite struct {
	suite.Suite
	mockWalletRepo *MockWalletRepository
	mockPixKeyRepo *MockPixKeyRepository
	service        portssvc.PixKeySvcFacade

	userID   string
	walletID string
}

func (suite *PixKeyServiceTestSuite) SetupTest() {
	suite.mockWalletRepo = new(MockWalletRepository)
	suite.mockPixKeyRepo = new(MockPixKeyRepository)
	suite.service = services.NewPixKeyService(suite.mockWalletRepo, suite.mockPixKeyRepo)
	suite.userID = uuid.NewString()
	suite.walletID = uuid.NewString()
}

func (suite *PixKeyServiceTestSuite) ownWallet() *domain.Wallet {
	return &domain.Wallet{WalletID: suite.walletID, UserID: suite.userID}
}

func (suite *PixKeyServiceTestSuite) TestRegisterPixKey_Success() {
	suite.mockWalletRepo.On("FindWalletByID", mock.Anything, suite.walletID).Return(suite.ownWallet(), nil).Once()
	suite.mockPixKeyRepo.On("SavePixKey", mock.Anything, mock.MatchedBy(func(k domain.PixKey) bool {
		return k.WalletID == suite.walletID &&
			k.KeyValue == "user@bank.com" &&
			k.KeyType == domain.PixKeyEmail &&
			k.Status == domain.PixKeyActive
	})).Return(nil).Once()

	key, err := suite.service.RegisterPixKey(context.Background(), suite.walletID, suite.userID, "user@bank.com", domain.PixKeyEmail)

	suite.Require().NoError(err)
	suite.Equal(domain.PixKeyActive, key.Status)
	suite.NotEmpty(key.PixKeyID)
	suite.mockPixKeyRepo.AssertExpectations(suite.T())
}

func (suite *PixKeyServiceTestSuite) TestRegisterPixKey_MalformedValue() {
	_, err := suite.service.RegisterPixKey(context.Background(), suite.walletID, suite.userID, "not-an-email", domain.PixKeyEmail)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockWalletRepo.AssertNotCalled(suite.T(), "FindWalletByID", mock.Anything, mock.Anything)
}

func (suite *PixKeyServiceTestSuite) TestRegisterPixKey_ValueAlreadyActive() {
	suite.mockWalletRepo.On("FindWalletByID", mock.Anything, suite.walletID).Return(suite.ownWallet(), nil).Once()
	suite.mockPixKeyRepo.On("SavePixKey", mock.Anything, mock.AnythingOfType("domain.PixKey")).Return(apperrors.ErrDuplicate).Once()

	_, err := suite.service.RegisterPixKey(context.Background(), suite.walletID, suite.userID, "+5511999999999", domain.PixKeyPhone)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrDuplicate)
}

func (suite *PixKeyServiceTestSuite) TestRegisterPixKey_WalletNotOwned() {
	other := &domain.Wallet{WalletID: suite.walletID, UserID: uuid.NewString()}
	suite.mockWalletRepo.On("FindWalletByID", mock.Anything, suite.walletID).Return(other, nil).Once()

	_, err := suite.service.RegisterPixKey(context.Background(), suite.walletID, suite.userID, "user@bank.com", domain.PixKeyEmail)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockPixKeyRepo.AssertNotCalled(suite.T(), "SavePixKey", mock.Anything, mock.Anything)
}

func (suite *PixKeyServiceTestSuite) TestDeactivatePixKey_Success() {
	pixKeyID := uuid.NewString()
	key := &domain.PixKey{PixKeyID: pixKeyID, WalletID: suite.walletID, Status: domain.PixKeyActive}

	suite.mockPixKeyRepo.On("FindPixKeyByID", mock.Anything, pixKeyID).Return(key, nil).Once()
	suite.mockWalletRepo.On("FindWalletByID", mock.Anything, suite.walletID).Return(suite.ownWallet(), nil).Once()
	suite.mockPixKeyRepo.On("UpdatePixKeyStatus", mock.Anything, pixKeyID, domain.PixKeyInactive, mock.AnythingOfType("time.Time")).Return(nil).Once()

	err := suite.service.DeactivatePixKey(context.Background(), pixKeyID, suite.userID)

	suite.Require().NoError(err)
	suite.mockPixKeyRepo.AssertExpectations(suite.T())
}

func (suite *PixKeyServiceTestSuite) TestDeactivatePixKey_AlreadyInactive() {
	pixKeyID := uuid.NewString()
	key := &domain.PixKey{PixKeyID: pixKeyID, WalletID: suite.walletID, Status: domain.PixKeyInactive}

	suite.mockPixKeyRepo.On("FindPixKeyByID", mock.Anything, pixKeyID).Return(key, nil).Once()
	suite.mockWalletRepo.On("FindWalletByID", mock.Anything, suite.walletID).Return(suite.ownWallet(), nil).Once()

	err := suite.service.DeactivatePixKey(context.Background(), pixKeyID, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockPixKeyRepo.AssertNotCalled(suite.T(), "UpdatePixKeyStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *PixKeyServiceTestSuite) TestResolveActiveKey() {
	key := &domain.PixKey{PixKeyID: uuid.NewString(), WalletID: suite.walletID, KeyValue: "b@x.com", Status: domain.PixKeyActive}
	suite.mockPixKeyRepo.On("FindActiveByValue", mock.Anything, "b@x.com").Return(key, nil).Once()

	got, err := suite.service.ResolveActiveKey(context.Background(), "b@x.com")

	suite.Require().NoError(err)
	suite.Equal(suite.walletID, got.WalletID)
}

func (suite *PixKeyServiceTestSuite) TestResolveActiveKey_NotFound() {
	suite.mockPixKeyRepo.On("FindActiveByValue", mock.Anything, "ghost@x.com").Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.ResolveActiveKey(context.Background(), "ghost@x.com")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func TestPixKeyServiceTestSuite(t *testing.T) {
	suite.Run(t, new(PixKeyServiceTestSuite))
}
