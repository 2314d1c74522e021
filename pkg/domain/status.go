package domain

import dErrors "homevest/pkg/domain-errors"

// ListingStatus is the approval lifecycle state of a registry entry. The
// enabled and paused flags are orthogonal to it; no combination is illegal.
type ListingStatus string

const (
	StatusDraft    ListingStatus = "draft"
	StatusPending  ListingStatus = "pending"
	StatusApproved ListingStatus = "approved"
	StatusRejected ListingStatus = "rejected"
)

var validStatuses = map[ListingStatus]bool{
	StatusDraft:    true,
	StatusPending:  true,
	StatusApproved: true,
	StatusRejected: true,
}

// ParseListingStatus constructs a ListingStatus from external input.
func ParseListingStatus(raw string) (ListingStatus, error) {
	s := ListingStatus(raw)
	if !validStatuses[s] {
		return "", dErrors.New(dErrors.CodeBadRequest, "unknown listing status: "+raw)
	}
	return s, nil
}

func (s ListingStatus) String() string { return string(s) }

// CanTransition reports whether moving from s to next is a legal lifecycle
// transition for an external status update. draft→pending is excluded here:
// entries only enter pending through registry sync, never by direct update.
func (s ListingStatus) CanTransition(next ListingStatus) bool {
	switch s {
	case StatusPending:
		return next == StatusApproved || next == StatusRejected
	default:
		return false
	}
}
