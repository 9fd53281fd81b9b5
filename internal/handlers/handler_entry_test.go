package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/entrybatch/journal_entry_app/internal/apperrors"
	"github.com/entrybatch/journal_entry_app/internal/core/domain"
	portssvc "github.com/entrybatch/journal_entry_app/internal/core/ports/services"
	"github.com/entrybatch/journal_entry_app/internal/dto"
	"github.com/entrybatch/journal_entry_app/internal/handlers"
	"github.com/entrybatch/journal_entry_app/internal/platform/config"
)

// --- Mock EntryService ---
type MockEntryService struct {
	mock.Mock
}

var _ portssvc.EntrySvcFacade = (*MockEntryService)(nil)

func (m *MockEntryService) CreateDraft(ctx context.Context, req dto.CreateEntryRequest, userID string) (*domain.JournalEntry, domain.ValidationResult, error) {
	args := m.Called(ctx, req, userID)
	if args.Get(0) == nil {
		return nil, domain.ValidationResult{}, args.Error(2)
	}
	return args.Get(0).(*domain.JournalEntry), args.Get(1).(domain.ValidationResult), args.Error(2)
}

func (m *MockEntryService) GetEntryByID(ctx context.Context, entryID string) (*domain.JournalEntry, error) {
	args := m.Called(ctx, entryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

func (m *MockEntryService) ListEntries(ctx context.Context, limit int, offset int) ([]domain.JournalEntry, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.JournalEntry), args.Error(1)
}

// --- Mock ValidationService ---
type MockValidationService struct {
	mock.Mock
}

var _ portssvc.ValidationSvcFacade = (*MockValidationService)(nil)

func (m *MockValidationService) ValidateEntry(entry domain.JournalEntry, accounts domain.AccountSet) domain.ValidationResult {
	args := m.Called(entry, accounts)
	return args.Get(0).(domain.ValidationResult)
}

func (m *MockValidationService) ValidateEntryLive(ctx context.Context, entry domain.JournalEntry) (domain.ValidationResult, error) {
	args := m.Called(ctx, entry)
	return args.Get(0).(domain.ValidationResult), args.Error(1)
}

// --- Mock WorkflowService ---
type MockWorkflowService struct {
	mock.Mock
}

var _ portssvc.WorkflowSvcFacade = (*MockWorkflowService)(nil)

func (m *MockWorkflowService) CanTransition(ctx context.Context, entry domain.JournalEntry, target domain.EntryStatus) bool {
	args := m.Called(ctx, entry, target)
	return args.Bool(0)
}

func (m *MockWorkflowService) Transition(ctx context.Context, entry *domain.JournalEntry, target domain.EntryStatus, userID string) (*domain.JournalEntry, error) {
	args := m.Called(ctx, entry, target, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

// --- Mock BatchService ---
type MockBatchService struct {
	mock.Mock
}

var _ portssvc.BatchSvcFacade = (*MockBatchService)(nil)

func (m *MockBatchService) Ingest(ctx context.Context, fileBytes []byte, format domain.BatchFormat) (*domain.BatchReport, error) {
	args := m.Called(ctx, fileBytes, format)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BatchReport), args.Error(1)
}

type EntryHandlerTestSuite struct {
	suite.Suite
	router         *gin.Engine
	mockEntrySvc   *MockEntryService
	mockValidation *MockValidationService
	mockWorkflow   *MockWorkflowService
	mockBatch      *MockBatchService
}

func (suite *EntryHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.router = gin.New()

	suite.mockEntrySvc = new(MockEntryService)
	suite.mockValidation = new(MockValidationService)
	suite.mockWorkflow = new(MockWorkflowService)
	suite.mockBatch = new(MockBatchService)

	cfg := &config.Config{
		IsProduction:     true, // no swagger routes in tests
		BatchMaxFileSize: 1 << 20,
	}
	handlers.RegisterRoutes(suite.router, cfg, &portssvc.ServiceContainer{
		Entry:      suite.mockEntrySvc,
		Validation: suite.mockValidation,
		Workflow:   suite.mockWorkflow,
		Batch:      suite.mockBatch,
	})
}

func (suite *EntryHandlerTestSuite) TestHealth() {
	req, _ := http.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()

	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusOK, w.Code)
}

func (suite *EntryHandlerTestSuite) TestValidateEntry_ReturnsStructuredResult() {
	result := domain.NewValidationResult()
	result.HeaderErrors["balance"] = domain.FieldError{
		Code:    domain.CodeUnbalanced,
		Message: "debits (500) do not equal credits (499.99), difference 0.01",
	}
	suite.mockValidation.On("ValidateEntryLive", mock.Anything, mock.AnythingOfType("domain.JournalEntry")).
		Return(result, nil).Once()

	body, _ := json.Marshal(dto.ValidateEntryRequest{
		Date:      time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
		Reference: "INV-1001",
		Lines: []dto.EntryLineRequest{
			{AccountID: "acc-1", DebitAmount: decimal.RequireFromString("500.00")},
			{AccountID: "acc-2", CreditAmount: decimal.RequireFromString("499.99")},
		},
	})
	req, _ := http.NewRequest(http.MethodPost, "/api/v1/entries/validate", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	suite.router.ServeHTTP(w, req)

	// An invalid entry is a result, never an HTTP error.
	suite.Equal(http.StatusOK, w.Code)
	var got domain.ValidationResult
	suite.NoError(json.Unmarshal(w.Body.Bytes(), &got))
	suite.False(got.Valid)
	suite.Equal(domain.CodeUnbalanced, got.HeaderErrors["balance"].Code)
	suite.mockValidation.AssertExpectations(suite.T())
}

func (suite *EntryHandlerTestSuite) TestCreateEntry() {
	entry := &domain.JournalEntry{
		EntryID:   "e1",
		Reference: "INV-1001",
		Status:    domain.Draft,
	}
	result := domain.NewValidationResult()
	result.Valid = true
	suite.mockEntrySvc.On("CreateDraft", mock.Anything, mock.AnythingOfType("dto.CreateEntryRequest"), "clerk-7").
		Return(entry, result, nil).Once()

	body, _ := json.Marshal(dto.CreateEntryRequest{
		Date:      time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
		Reference: "INV-1001",
		Lines:     []dto.EntryLineRequest{{AccountID: "acc-1"}, {AccountID: "acc-2"}},
	})
	req, _ := http.NewRequest(http.MethodPost, "/api/v1/entries", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Actor-ID", "clerk-7")
	w := httptest.NewRecorder()

	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusCreated, w.Code)
	var got dto.CreateEntryResponse
	suite.NoError(json.Unmarshal(w.Body.Bytes(), &got))
	suite.Equal("e1", got.Entry.EntryID)
	suite.True(got.Result.Valid)
	suite.mockEntrySvc.AssertExpectations(suite.T())
}

func (suite *EntryHandlerTestSuite) TestGetEntry_NotFound() {
	suite.mockEntrySvc.On("GetEntryByID", mock.Anything, "missing").
		Return(nil, apperrors.ErrNotFound).Once()

	req, _ := http.NewRequest(http.MethodGet, "/api/v1/entries/missing", nil)
	w := httptest.NewRecorder()

	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusNotFound, w.Code)
}

func (suite *EntryHandlerTestSuite) TestTransitionEntry_IllegalTransition() {
	entry := &domain.JournalEntry{EntryID: "e1", Status: domain.Posted}
	suite.mockEntrySvc.On("GetEntryByID", mock.Anything, "e1").Return(entry, nil).Once()
	suite.mockWorkflow.On("Transition", mock.Anything, entry, domain.Draft, "system").
		Return(nil, fmt.Errorf("%w: POSTED -> DRAFT", apperrors.ErrIllegalTransition)).Once()

	body, _ := json.Marshal(dto.TransitionRequest{TargetStatus: domain.Draft})
	req, _ := http.NewRequest(http.MethodPost, "/api/v1/entries/e1/transitions", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusConflict, w.Code)
	suite.mockWorkflow.AssertExpectations(suite.T())
}

func (suite *EntryHandlerTestSuite) TestIngestBatch_UnsupportedFormat() {
	suite.mockBatch.On("Ingest", mock.Anything, mock.Anything, domain.BatchFormat("pdf")).
		Return(nil, fmt.Errorf("%w: %q", apperrors.ErrUnsupportedFormat, "pdf")).Once()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, _ := mw.CreateFormFile("file", "upload.pdf")
	_, _ = part.Write([]byte("not a batch"))
	_ = mw.Close()

	req, _ := http.NewRequest(http.MethodPost, "/api/v1/batches", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w := httptest.NewRecorder()

	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusUnsupportedMediaType, w.Code)
}

func (suite *EntryHandlerTestSuite) TestIngestBatch_FormatFromFilename() {
	report := &domain.BatchReport{OverallValid: true}
	suite.mockBatch.On("Ingest", mock.Anything, mock.Anything, domain.FormatCSV).
		Return(report, nil).Once()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, _ := mw.CreateFormFile("file", "entries.csv")
	_, _ = part.Write([]byte("2025-06-01,REF-1,,1000,Cash,10.00,,\n"))
	_ = mw.Close()

	req, _ := http.NewRequest(http.MethodPost, "/api/v1/batches", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w := httptest.NewRecorder()

	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusOK, w.Code)
	suite.mockBatch.AssertExpectations(suite.T())
}

func TestEntryHandler(t *testing.T) {
	suite.Run(t, new(EntryHandlerTestSuite))
}
