package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/store/memory"

	"github.com/nsubra/account-ledger/internal/apperrors"
	"github.com/nsubra/account-ledger/internal/core/domain"
	"github.com/nsubra/account-ledger/internal/core/ports"
	"github.com/nsubra/account-ledger/internal/core/services"
	"github.com/nsubra/account-ledger/internal/dto"
	"github.com/nsubra/account-ledger/internal/handlers"
	"github.com/nsubra/account-ledger/pkg/config"
)

// --- Mock MovementStore ---
type MockMovementStore struct {
	mock.Mock
}

var _ ports.MovementStore = (*MockMovementStore)(nil)

func (m *MockMovementStore) FindAccount(ctx context.Context, key domain.AccountKey) (*domain.Account, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockMovementStore) FindMovementByRequestID(ctx context.Context, requestID string) (*domain.Movement, error) {
	args := m.Called(ctx, requestID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Movement), args.Error(1)
}

func (m *MockMovementStore) CommitMovement(ctx context.Context, movement domain.Movement, account domain.Account, expectedVersion int64) error {
	args := m.Called(ctx, movement, account, expectedVersion)
	return args.Error(0)
}

type MovementHandlerTestSuite struct {
	suite.Suite
	router *gin.Engine
	store  *MockMovementStore
}

func (s *MovementHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)

	s.store = new(MockMovementStore)
	svc := services.NewLedgerService(s.store, services.LedgerOptions{
		OpeningBalance: decimal.RequireFromString("10000.00"),
		SeedAddress:    domain.Address{City: "Chennai", State: "TN", Country: "India"},
		RetryAttempts:  2,
	})

	rate, err := limiter.NewRateFromFormatted("1000-S")
	s.Require().NoError(err)
	rateLimiter := limiter.New(memory.NewStore(), rate)

	s.router = gin.New()
	handlers.RegisterRoutes(s.router, &config.Config{IsProduction: true}, svc, rateLimiter)
}

func (s *MovementHandlerTestSuite) submit(body any) *httptest.ResponseRecorder {
	b, err := json.Marshal(body)
	s.Require().NoError(err)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/movements/", bytes.NewReader(b))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func validRequest() dto.SubmitMovementRequest {
	return dto.SubmitMovementRequest{
		AccountNumber: "11",
		ProductNumber: "123",
		CurrencyCode:  "INR",
		Amount:        decimal.RequireFromString("123.20"),
		Direction:     "CREDIT",
		Channel:       "api",
	}
}

func (s *MovementHandlerTestSuite) TestSubmitMovement_Success() {
	s.store.On("FindAccount", mock.Anything, mock.Anything).Return(nil, apperrors.ErrNotFound).Once()
	s.store.On("CommitMovement", mock.Anything, mock.Anything, mock.Anything, int64(0)).Return(nil).Once()

	w := s.submit(validRequest())

	s.Equal(http.StatusOK, w.Code)
	var resp dto.AccountResponse
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	s.Equal("11", resp.AccountNumber)
	s.True(resp.Balance.Equal(decimal.RequireFromString("10123.20")))
	s.EqualValues(1, resp.Version)
	s.store.AssertExpectations(s.T())
}

func (s *MovementHandlerTestSuite) TestSubmitMovement_MissingFieldRejected() {
	req := validRequest()
	req.AccountNumber = ""

	w := s.submit(req)

	s.Equal(http.StatusBadRequest, w.Code)
	s.store.AssertNotCalled(s.T(), "CommitMovement", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (s *MovementHandlerTestSuite) TestSubmitMovement_UnknownDirectionRejected() {
	req := validRequest()
	req.Direction = "TRANSFER"

	w := s.submit(req)

	s.Equal(http.StatusBadRequest, w.Code)
	s.Contains(w.Body.String(), "movement rejected")
}

func (s *MovementHandlerTestSuite) TestSubmitMovement_PersistentConflictIsUnavailable() {
	s.store.On("FindAccount", mock.Anything, mock.Anything).Return(nil, apperrors.ErrNotFound)
	s.store.On("CommitMovement", mock.Anything, mock.Anything, mock.Anything, int64(0)).Return(apperrors.ErrConflict)

	w := s.submit(validRequest())

	s.Equal(http.StatusServiceUnavailable, w.Code)
	s.Contains(w.Body.String(), "temporarily unable to apply movement")
}

func (s *MovementHandlerTestSuite) TestSubmitMovement_StoreUnavailable() {
	s.store.On("FindAccount", mock.Anything, mock.Anything).Return(nil, apperrors.ErrStoreUnavailable).Once()

	w := s.submit(validRequest())

	s.Equal(http.StatusServiceUnavailable, w.Code)
}

func (s *MovementHandlerTestSuite) TestGetAccount_NotFound() {
	s.store.On("FindAccount", mock.Anything, domain.AccountKey{
		AccountNumber: "99", ProductNumber: "1", CurrencyCode: "USD",
	}).Return(nil, apperrors.ErrNotFound).Once()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/accounts/99/1/USD", nil)
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)

	s.Equal(http.StatusNotFound, w.Code)
}

func (s *MovementHandlerTestSuite) TestGetAccount_Success() {
	acc := &domain.Account{
		AccountKey: domain.AccountKey{AccountNumber: "11", ProductNumber: "123", CurrencyCode: "INR"},
		Balance:    decimal.RequireFromString("10073.20"),
		Version:    2,
	}
	s.store.On("FindAccount", mock.Anything, acc.AccountKey).Return(acc, nil).Once()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/accounts/11/123/INR", nil)
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)

	s.Equal(http.StatusOK, w.Code)
	var resp dto.AccountResponse
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	s.True(resp.Balance.Equal(decimal.RequireFromString("10073.20")))
	s.EqualValues(2, resp.Version)
}

func TestMovementHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(MovementHandlerTestSuite))
}
