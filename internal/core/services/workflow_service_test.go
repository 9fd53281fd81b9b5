package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/entrybatch/journal_entry_app/internal/apperrors"
	"github.com/entrybatch/journal_entry_app/internal/core/domain"
	portsrepo "github.com/entrybatch/journal_entry_app/internal/core/ports/repositories"
	portssvc "github.com/entrybatch/journal_entry_app/internal/core/ports/services"
	"github.com/entrybatch/journal_entry_app/internal/core/services"
)

// --- Mock ValidationSvcFacade ---
type MockValidationSvc struct {
	mock.Mock
}

var _ portssvc.ValidationSvcFacade = (*MockValidationSvc)(nil)

func (m *MockValidationSvc) ValidateEntry(entry domain.JournalEntry, accounts domain.AccountSet) domain.ValidationResult {
	args := m.Called(entry, accounts)
	return args.Get(0).(domain.ValidationResult)
}

func (m *MockValidationSvc) ValidateEntryLive(ctx context.Context, entry domain.JournalEntry) (domain.ValidationResult, error) {
	args := m.Called(ctx, entry)
	return args.Get(0).(domain.ValidationResult), args.Error(1)
}

// --- Mock EntryRepository ---
type MockEntryRepository struct {
	mock.Mock
}

var _ portsrepo.EntryRepository = (*MockEntryRepository)(nil)

func (m *MockEntryRepository) SaveEntry(ctx context.Context, entry domain.JournalEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockEntryRepository) FindEntryByID(ctx context.Context, entryID string) (*domain.JournalEntry, error) {
	args := m.Called(ctx, entryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

func (m *MockEntryRepository) ListEntries(ctx context.Context, limit int, offset int) ([]domain.JournalEntry, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.JournalEntry), args.Error(1)
}

func (m *MockEntryRepository) UpdateEntryStatus(ctx context.Context, entryID string, status domain.EntryStatus, updatedBy string, updatedAt time.Time) error {
	args := m.Called(ctx, entryID, status, updatedBy, updatedAt)
	return args.Error(0)
}

func validResult() domain.ValidationResult {
	r := domain.NewValidationResult()
	r.Valid = true
	r.Balance.IsBalanced = true
	return r
}

func invalidResult() domain.ValidationResult {
	r := domain.NewValidationResult()
	r.HeaderErrors["balance"] = domain.FieldError{Code: domain.CodeUnbalanced, Message: "out of balance"}
	return r
}

func draftEntry(t *testing.T) domain.JournalEntry {
	t.Helper()
	e := balancedEntry(t)
	e.Status = domain.Draft
	return e
}

func TestTransition_DraftToPendingApproval(t *testing.T) {
	validator := new(MockValidationSvc)
	repo := new(MockEntryRepository)
	svc := services.NewWorkflowService(validator, repo, false)

	entry := draftEntry(t)
	validator.On("ValidateEntryLive", mock.Anything, entry).Return(validResult(), nil).Once()
	repo.On("UpdateEntryStatus", mock.Anything, entry.EntryID, domain.PendingApproval, "approver-1", mock.AnythingOfType("time.Time")).Return(nil).Once()

	updated, err := svc.Transition(context.Background(), &entry, domain.PendingApproval, "approver-1")

	require.NoError(t, err)
	assert.Equal(t, domain.PendingApproval, updated.Status)
	assert.Equal(t, "approver-1", updated.LastUpdatedBy)
	validator.AssertExpectations(t)
	repo.AssertExpectations(t)
}

func TestTransition_PendingApprovalToPosted(t *testing.T) {
	validator := new(MockValidationSvc)
	repo := new(MockEntryRepository)
	svc := services.NewWorkflowService(validator, repo, false)

	entry := draftEntry(t)
	entry.Status = domain.PendingApproval
	validator.On("ValidateEntryLive", mock.Anything, entry).Return(validResult(), nil).Once()
	repo.On("UpdateEntryStatus", mock.Anything, entry.EntryID, domain.Posted, "approver-1", mock.AnythingOfType("time.Time")).Return(nil).Once()

	updated, err := svc.Transition(context.Background(), &entry, domain.Posted, "approver-1")

	require.NoError(t, err)
	assert.Equal(t, domain.Posted, updated.Status)
}

func TestTransition_DirectPostingRequiresFlag(t *testing.T) {
	entry := draftEntry(t)

	t.Run("blocked by default", func(t *testing.T) {
		validator := new(MockValidationSvc)
		repo := new(MockEntryRepository)
		svc := services.NewWorkflowService(validator, repo, false)

		e := entry
		_, err := svc.Transition(context.Background(), &e, domain.Posted, "user-1")

		assert.ErrorIs(t, err, apperrors.ErrIllegalTransition)
		assert.Equal(t, domain.Draft, e.Status)
		repo.AssertNotCalled(t, "UpdateEntryStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("allowed when enabled", func(t *testing.T) {
		validator := new(MockValidationSvc)
		repo := new(MockEntryRepository)
		svc := services.NewWorkflowService(validator, repo, true)

		e := entry
		validator.On("ValidateEntryLive", mock.Anything, e).Return(validResult(), nil).Once()
		repo.On("UpdateEntryStatus", mock.Anything, e.EntryID, domain.Posted, "user-1", mock.AnythingOfType("time.Time")).Return(nil).Once()

		updated, err := svc.Transition(context.Background(), &e, domain.Posted, "user-1")

		require.NoError(t, err)
		assert.Equal(t, domain.Posted, updated.Status)
	})
}

func TestTransition_PostedIsTerminal(t *testing.T) {
	validator := new(MockValidationSvc)
	repo := new(MockEntryRepository)
	svc := services.NewWorkflowService(validator, repo, true)

	for _, target := range []domain.EntryStatus{domain.Draft, domain.PendingApproval, domain.Posted} {
		entry := draftEntry(t)
		entry.Status = domain.Posted

		_, err := svc.Transition(context.Background(), &entry, target, "user-1")

		assert.ErrorIs(t, err, apperrors.ErrIllegalTransition, "target %s", target)
		assert.Equal(t, domain.Posted, entry.Status)
	}
	repo.AssertNotCalled(t, "UpdateEntryStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestTransition_BlockedWhenEntryDoesNotValidate(t *testing.T) {
	validator := new(MockValidationSvc)
	repo := new(MockEntryRepository)
	svc := services.NewWorkflowService(validator, repo, false)

	entry := draftEntry(t)
	validator.On("ValidateEntryLive", mock.Anything, entry).Return(invalidResult(), nil).Once()

	_, err := svc.Transition(context.Background(), &entry, domain.PendingApproval, "user-1")

	assert.ErrorIs(t, err, apperrors.ErrIllegalTransition)
	assert.Equal(t, domain.Draft, entry.Status)
	repo.AssertNotCalled(t, "UpdateEntryStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestTransition_RepositoryFailureLeavesEntryUntouched(t *testing.T) {
	validator := new(MockValidationSvc)
	repo := new(MockEntryRepository)
	svc := services.NewWorkflowService(validator, repo, false)

	entry := draftEntry(t)
	dbErr := errors.New("write failed")
	validator.On("ValidateEntryLive", mock.Anything, entry).Return(validResult(), nil).Once()
	repo.On("UpdateEntryStatus", mock.Anything, entry.EntryID, domain.PendingApproval, "user-1", mock.AnythingOfType("time.Time")).Return(dbErr).Once()

	_, err := svc.Transition(context.Background(), &entry, domain.PendingApproval, "user-1")

	assert.ErrorIs(t, err, dbErr)
	assert.Equal(t, domain.Draft, entry.Status)
}

func TestTransition_NilEntry(t *testing.T) {
	svc := services.NewWorkflowService(new(MockValidationSvc), new(MockEntryRepository), false)

	_, err := svc.Transition(context.Background(), nil, domain.Posted, "user-1")

	assert.ErrorIs(t, err, services.ErrNilEntry)
}

func TestCanTransition(t *testing.T) {
	tests := []struct {
		name    string
		from    domain.EntryStatus
		target  domain.EntryStatus
		result  domain.ValidationResult
		direct  bool
		wantOK  bool
		guarded bool
	}{
		{name: "draft to pending approval with valid entry", from: domain.Draft, target: domain.PendingApproval, result: validResult(), wantOK: true, guarded: true},
		{name: "draft to pending approval with invalid entry", from: domain.Draft, target: domain.PendingApproval, result: invalidResult(), wantOK: false, guarded: true},
		{name: "pending approval to posted", from: domain.PendingApproval, target: domain.Posted, result: validResult(), wantOK: true, guarded: true},
		{name: "draft straight to posted without flag", from: domain.Draft, target: domain.Posted, wantOK: false},
		{name: "draft straight to posted with flag", from: domain.Draft, target: domain.Posted, result: validResult(), direct: true, wantOK: true, guarded: true},
		{name: "posted back to draft", from: domain.Posted, target: domain.Draft, wantOK: false},
		{name: "pending approval back to draft", from: domain.PendingApproval, target: domain.Draft, wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			validator := new(MockValidationSvc)
			svc := services.NewWorkflowService(validator, new(MockEntryRepository), tt.direct)

			entry := draftEntry(t)
			entry.Status = tt.from
			if tt.guarded {
				validator.On("ValidateEntryLive", mock.Anything, entry).Return(tt.result, nil).Once()
			}

			assert.Equal(t, tt.wantOK, svc.CanTransition(context.Background(), entry, tt.target))
			validator.AssertExpectations(t)
		})
	}
}
