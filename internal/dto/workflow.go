package dto

import "github.com/entrybatch/journal_entry_app/internal/core/domain"

// TransitionRequest asks the workflow service to move an entry to a new status.
type TransitionRequest struct {
	TargetStatus domain.EntryStatus `json:"targetStatus" binding:"required,oneof=DRAFT PENDING_APPROVAL POSTED"`
}

// TransitionResponse returns the entry after a successful transition.
type TransitionResponse struct {
	Entry EntryResponse `json:"entry"`
}
