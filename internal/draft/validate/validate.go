// Package validate holds the pure section validators for both listing flows.
// Validators never touch storage or the network: the same input always yields
// the same output. Field-level errors are advisory and belong to the input
// they describe; the proceed/submit gate must always call these functions
// against live draft data rather than trusting previously computed errors.
package validate

import (
	"homevest/internal/draft/models"
	"homevest/pkg/domain"
)

// Error kinds attached to field errors.
const (
	KindRequired = "required"
	KindInvalid  = "invalid"
	KindTooShort = "too_short"
	KindBelowMin = "below_minimum"
)

// FieldError describes one field-level validation failure.
type FieldError struct {
	Field   string `json:"field"`
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

// ValidateSection runs the named section's validator family against the
// draft's current data and returns every field error.
func ValidateSection(d *models.PropertyDraft, name domain.SectionName) []FieldError {
	switch name {
	case domain.SectionDetails:
		return ValidateDetails(d.Type, d.Details)
	case domain.SectionPricing:
		return ValidatePricing(d.Pricing)
	case domain.SectionFeatures:
		return ValidateFeatures(d.Features)
	case domain.SectionMedia:
		return ValidateMedia(d.Media)
	case domain.SectionDocuments:
		return ValidateDocuments(d.Documents)
	case domain.SectionLegal:
		return ValidateLegal(d.Legal)
	case domain.SectionPurpose:
		return ValidatePurpose(d.Purpose)
	}
	return nil
}

// SectionComplete is the section-level completeness predicate: true iff every
// mandatory field in the section currently passes validation.
func SectionComplete(d *models.PropertyDraft, name domain.SectionName) bool {
	return len(ValidateSection(d, name)) == 0
}

// CompletionStatus computes the per-section readiness map for the draft's
// type, freshly, from current data. Never cached.
func CompletionStatus(d *models.PropertyDraft) map[domain.SectionName]bool {
	status := make(map[domain.SectionName]bool)
	for _, name := range domain.RequiredSections(d.Type) {
		status[name] = SectionComplete(d, name)
	}
	return status
}

// AllSectionsComplete is the logical AND over the completion map.
func AllSectionsComplete(d *models.PropertyDraft) bool {
	for _, complete := range CompletionStatus(d) {
		if !complete {
			return false
		}
	}
	return true
}
