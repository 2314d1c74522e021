package models

import (
	"strconv"
	"time"

	"homevest/pkg/domain"
)

// PropertyDraft is the in-progress record for one property being listed.
// Exactly one live draft exists per property type. PropertyID stays empty
// until the remote create call succeeds and is assigned exactly once.
type PropertyDraft struct {
	Type        domain.PropertyType `json:"type"`
	PropertyID  string              `json:"propertyId"`
	Details     DetailsSection      `json:"details"`
	Pricing     PricingSection      `json:"pricing"`
	Features    FeaturesSection     `json:"features"`
	Media       MediaSection        `json:"media"`
	Documents   DocumentsSection    `json:"documents"`
	Legal       LegalSection        `json:"legal"`
	Purpose     PurposeSection      `json:"purpose"`
	IsSubmitted bool                `json:"isSubmitted"`
	SubmittedAt *time.Time          `json:"submittedAt,omitempty"`
}

// NewDraft returns the documented default draft for a property type: empty
// sections, no server id, not submitted. Reset restores exactly this shape.
func NewDraft(pt domain.PropertyType) *PropertyDraft {
	return &PropertyDraft{Type: pt}
}

// Clone returns a deep copy so stores can hand out drafts without aliasing
// internal state.
func (d *PropertyDraft) Clone() *PropertyDraft {
	cp := *d
	if d.SubmittedAt != nil {
		t := *d.SubmittedAt
		cp.SubmittedAt = &t
	}
	cp.Features.Amenities = append([]string(nil), d.Features.Amenities...)
	cp.Media.Photos = append([]FileAttachment(nil), d.Media.Photos...)
	return &cp
}

// SectionPayload returns the current data of the named section, used as the
// remote save-draft payload. Unknown names return nil.
func (d *PropertyDraft) SectionPayload(name domain.SectionName) any {
	switch name {
	case domain.SectionDetails:
		return d.Details
	case domain.SectionPricing:
		return d.Pricing
	case domain.SectionFeatures:
		return d.Features
	case domain.SectionMedia:
		return d.Media
	case domain.SectionDocuments:
		return d.Documents
	case domain.SectionLegal:
		return d.Legal
	case domain.SectionPurpose:
		return d.Purpose
	}
	return nil
}

// PendingAttachment locates one attachment awaiting upload.
type PendingAttachment struct {
	Section    domain.SectionName
	Field      string
	Attachment FileAttachment
}

// PendingUploads lists every photo and document with a local reference but no
// remote URL. Pending uploads never block section saves or submission; they
// are surfaced as warnings before submit.
func (d *PropertyDraft) PendingUploads() []PendingAttachment {
	var pending []PendingAttachment
	for i, photo := range d.Media.Photos {
		if photo.PendingUpload() {
			pending = append(pending, PendingAttachment{
				Section:    domain.SectionMedia,
				Field:      photoField(i),
				Attachment: photo,
			})
		}
	}
	for _, doc := range []struct {
		field string
		att   FileAttachment
	}{
		{"ownershipDeed", d.Documents.OwnershipDeed},
		{"taxCertificate", d.Documents.TaxCertificate},
		{"insurance", d.Documents.Insurance},
	} {
		if doc.att.PendingUpload() {
			pending = append(pending, PendingAttachment{
				Section:    domain.SectionDocuments,
				Field:      doc.field,
				Attachment: doc.att,
			})
		}
	}
	return pending
}

// SetUploaded merges a completed upload's remote URL and key into the
// attachment identified by section and field. Unknown fields are ignored so a
// late upload result for a reset draft cannot corrupt state.
func (d *PropertyDraft) SetUploaded(section domain.SectionName, field, url, key string) bool {
	switch section {
	case domain.SectionMedia:
		for i := range d.Media.Photos {
			if photoField(i) == field {
				d.Media.Photos[i].RemoteURL = url
				d.Media.Photos[i].RemoteKey = key
				return true
			}
		}
	case domain.SectionDocuments:
		switch field {
		case "ownershipDeed":
			d.Documents.OwnershipDeed.RemoteURL = url
			d.Documents.OwnershipDeed.RemoteKey = key
			return true
		case "taxCertificate":
			d.Documents.TaxCertificate.RemoteURL = url
			d.Documents.TaxCertificate.RemoteKey = key
			return true
		case "insurance":
			d.Documents.Insurance.RemoteURL = url
			d.Documents.Insurance.RemoteKey = key
			return true
		}
	}
	return false
}

func photoField(i int) string {
	return "photo_" + strconv.Itoa(i)
}
