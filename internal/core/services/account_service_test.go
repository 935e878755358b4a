package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/SscSPs/bank_backoffice/internal/apperrors"
	"github.com/SscSPs/bank_backoffice/internal/core/domain"
	portssvc "github.com/SscSPs/bank_backoffice/internal/core/ports/services"
	"github.com/SscSPs/bank_backoffice/internal/core/services"
	"github.com/SscSPs/bank_backoffice/internal/dto"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

func openRequest(accno, cif string) dto.OpenAccountRequest {
	return dto.OpenAccountRequest{
		AccountNumber: accno,
		CIF:           cif,
		AccountType:   domain.Current,
		InterestRate:  decimal.RequireFromString("4"),
	}
}

// --- Test Suite Setup ---
type AccountServiceTestSuite struct {
	suite.Suite
	mockTx    *MockTxManager
	mockRepo  *MockAccountRepository
	mockAudit *MockAuditRepository
	service   portssvc.AccountSvcFacade
	now       time.Time
}

func (suite *AccountServiceTestSuite) SetupTest() {
	suite.mockTx = new(MockTxManager)
	suite.mockRepo = new(MockAccountRepository)
	suite.mockAudit = new(MockAuditRepository)
	suite.now = time.Date(2026, 3, 1, 10, 30, 0, 123456789, time.UTC)
	clock := services.WithClock(func() time.Time { return suite.now })
	suite.service = services.NewAccountService(
		suite.mockTx,
		suite.mockRepo,
		services.NewAuditService(suite.mockAudit, clock),
		clock,
	)
}

// --- Test Cases ---

func (suite *AccountServiceTestSuite) TestOpenAccount_Success() {
	ctx := context.Background()
	req := openRequest("A001", "C1")

	suite.mockTx.On("WithTransaction", mock.Anything).Return(nil).Once()
	suite.mockRepo.On("SaveAccount", mock.Anything, mock.MatchedBy(func(a domain.Account) bool {
		return a.AccountNumber == "A001" && a.Balance.IsZero() && a.OpenedBy == employee.ID
	})).Return(nil).Once()
	suite.mockAudit.On("SaveAuditEntry", mock.Anything, mock.MatchedBy(func(e *domain.AuditEntry) bool {
		return e.Action == domain.ActionAccountOpened && e.EntityRef == "account:A001" && e.Actor == employee.ID
	})).Return(nil).Once()

	account, err := suite.service.OpenAccount(ctx, employee, req)

	suite.Require().NoError(err)
	suite.Require().NotNil(account)
	suite.Equal(req.CIF, account.CIF)
	suite.Equal(domain.Current, account.AccountType)
	suite.True(account.Balance.IsZero())
	suite.True(suite.now.Truncate(time.Microsecond).Equal(account.OpenedAt), "timestamps are kept at microsecond precision")

	suite.mockTx.AssertExpectations(suite.T())
	suite.mockRepo.AssertExpectations(suite.T())
	suite.mockAudit.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestOpenAccount_AuditFailureAborts() {
	ctx := context.Background()
	expectedErr := assert.AnError

	suite.mockTx.On("WithTransaction", mock.Anything).Return(nil).Once()
	suite.mockRepo.On("SaveAccount", mock.Anything, mock.AnythingOfType("domain.Account")).Return(nil).Once()
	suite.mockAudit.On("SaveAuditEntry", mock.Anything, mock.Anything).Return(expectedErr).Once()

	account, err := suite.service.OpenAccount(ctx, admin, openRequest("A001", "C1"))

	suite.Require().Error(err)
	suite.Nil(account)
	suite.ErrorIs(err, expectedErr)
}

func (suite *AccountServiceTestSuite) TestOpenAccount_Duplicate() {
	ctx := context.Background()
	dup := apperrors.NewAppError(apperrors.ErrDuplicate, "account A001 already exists", nil)

	suite.mockTx.On("WithTransaction", mock.Anything).Return(nil).Once()
	suite.mockRepo.On("SaveAccount", mock.Anything, mock.AnythingOfType("domain.Account")).Return(dup).Once()

	_, err := suite.service.OpenAccount(ctx, employee, openRequest("A001", "C1"))

	suite.ErrorIs(err, apperrors.ErrDuplicate)
	suite.mockAudit.AssertNotCalled(suite.T(), "SaveAuditEntry", mock.Anything, mock.Anything)
}

func (suite *AccountServiceTestSuite) TestOpenAccount_Rejected() {
	ctx := context.Background()
	badType := openRequest("A001", "C1")
	badType.AccountType = "GOLD"
	negativeRate := openRequest("A001", "C1")
	negativeRate.InterestRate = decimal.NewFromInt(-1)

	_, err := suite.service.OpenAccount(ctx, customer("C1"), openRequest("A001", "C1"))
	suite.ErrorIs(err, apperrors.ErrForbidden)
	_, err = suite.service.OpenAccount(ctx, employee, badType)
	suite.ErrorIs(err, apperrors.ErrValidation)
	_, err = suite.service.OpenAccount(ctx, employee, negativeRate)
	suite.ErrorIs(err, apperrors.ErrValidation)

	suite.mockTx.AssertNotCalled(suite.T(), "WithTransaction", mock.Anything)
}

func (suite *AccountServiceTestSuite) TestGetAccount_Ownership() {
	ctx := context.Background()
	acc := &domain.Account{AccountNumber: "A001", CIF: "C1", Balance: decimal.NewFromInt(10)}
	suite.mockRepo.On("FindAccountByNumber", ctx, "A001").Return(acc, nil)

	got, err := suite.service.GetAccount(ctx, customer("C1"), "A001")
	suite.Require().NoError(err)
	suite.Equal(acc, got)

	_, err = suite.service.GetAccount(ctx, customer("C2"), "A001")
	suite.ErrorIs(err, apperrors.ErrForbidden)

	got, err = suite.service.GetAccount(ctx, employee, "A001")
	suite.Require().NoError(err)
	suite.Equal(acc, got)
}

func (suite *AccountServiceTestSuite) TestGetAccount_NotFound() {
	ctx := context.Background()
	suite.mockRepo.On("FindAccountByNumber", ctx, "A404").Return(nil, apperrors.NewNotFoundError("account A404")).Once()

	account, err := suite.service.GetAccount(ctx, admin, "A404")

	suite.Nil(account)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestListAccountsByCustomer() {
	ctx := context.Background()
	suite.mockRepo.On("ListAccountsByCustomer", ctx, "C1").Return(nil, nil).Once()

	accounts, err := suite.service.ListAccountsByCustomer(ctx, customer("C1"), "C1")
	suite.Require().NoError(err)
	suite.NotNil(accounts, "nil from the repository becomes an empty slice")
	suite.Empty(accounts)

	_, err = suite.service.ListAccountsByCustomer(ctx, customer("C1"), "C2")
	suite.ErrorIs(err, apperrors.ErrForbidden)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestListAllAccounts() {
	ctx := context.Background()
	expected := []domain.Account{{AccountNumber: "A001"}, {AccountNumber: "A002"}}
	suite.mockRepo.On("ListAccounts", ctx, 10, 0).Return(expected, nil).Once()

	accounts, err := suite.service.ListAllAccounts(ctx, employee, 10, 0)
	suite.Require().NoError(err)
	suite.Equal(expected, accounts)

	_, err = suite.service.ListAllAccounts(ctx, customer("C1"), 10, 0)
	suite.ErrorIs(err, apperrors.ErrForbidden)

	suite.mockRepo.On("ListAccounts", ctx, 5, 5).Return(nil, assert.AnError).Once()
	_, err = suite.service.ListAllAccounts(ctx, admin, 5, 5)
	suite.ErrorIs(err, assert.AnError)
}

// --- Run Test Suite ---
func TestAccountService(t *testing.T) {
	suite.Run(t, new(AccountServiceTestSuite))
}
