// Package models defines the unified homeowner property registry entry. An
// entry is created exactly once by registry sync from a submitted draft and
// mutated afterward only by the status lifecycle operations or explicit
// edit/delete actions.
package models

import (
	"time"

	draftmodels "homevest/internal/draft/models"
	"homevest/pkg/domain"
)

// DisplayMetrics are the derived figures shown on the property-management
// list. They are zero until approval and reset to zero on rejection.
type DisplayMetrics struct {
	MonthlyEarnings float64 `json:"monthlyEarnings"`
	OccupancyRate   float64 `json:"occupancyRate"`
	BookingsCount   int     `json:"bookingsCount"`
}

// RegistryEntry is one property in the homeowner's unified list.
//
// Enabled and Status vary independently: disabling hides the entry from
// counterparties without touching the approval lifecycle. Paused applies only
// to approved entries and suspends new investor purchases.
type RegistryEntry struct {
	ID              domain.RegistryID         `json:"id"`
	Type            domain.PropertyType       `json:"type"`
	Title           string                    `json:"title"`
	Location        string                    `json:"location"`
	Status          domain.ListingStatus      `json:"status"`
	Enabled         bool                      `json:"enabled"`
	Paused          bool                      `json:"paused"`
	PauseReason     string                    `json:"pauseReason,omitempty"`
	RejectionReason string                    `json:"rejectionReason,omitempty"`
	Metrics         DisplayMetrics            `json:"metrics"`
	CreatedAt       time.Time                 `json:"createdAt"`
	Draft           draftmodels.PropertyDraft `json:"draft"`
}

// DedupKey identifies the at-most-one entry a submission may produce.
// Known fragility: two distinct properties sharing a title collide. Kept
// deliberately to match the governing sync contract; see DESIGN.md.
type DedupKey struct {
	Type  domain.PropertyType
	Title string
}

// Key returns the entry's dedup key.
func (e *RegistryEntry) Key() DedupKey {
	return DedupKey{Type: e.Type, Title: e.Title}
}

// Clone returns a deep copy so stores never alias internal state.
func (e *RegistryEntry) Clone() *RegistryEntry {
	cp := *e
	cp.Draft = *e.Draft.Clone()
	return &cp
}
