package domain

import dErrors "homevest/pkg/domain-errors"

// SectionName identifies one independently validated sub-portion of a draft.
type SectionName string

const (
	SectionDetails   SectionName = "details"
	SectionPricing   SectionName = "pricing"
	SectionFeatures  SectionName = "features"
	SectionMedia     SectionName = "media"
	SectionDocuments SectionName = "documents"
	SectionLegal     SectionName = "legal"
	SectionPurpose   SectionName = "purpose"
)

var validSections = map[SectionName]bool{
	SectionDetails:   true,
	SectionPricing:   true,
	SectionFeatures:  true,
	SectionMedia:     true,
	SectionDocuments: true,
	SectionLegal:     true,
	SectionPurpose:   true,
}

// ParseSectionName constructs a SectionName from external input.
func ParseSectionName(raw string) (SectionName, error) {
	s := SectionName(raw)
	if !validSections[s] {
		return "", dErrors.New(dErrors.CodeBadRequest, "unknown section: "+raw)
	}
	return s, nil
}

func (s SectionName) String() string { return string(s) }

// RequiredSections returns the sections that must be complete before a draft
// of the given type may be submitted for review. The listing-purpose screen
// only exists in the residential flow.
func RequiredSections(pt PropertyType) []SectionName {
	base := []SectionName{
		SectionDetails,
		SectionPricing,
		SectionFeatures,
		SectionMedia,
		SectionDocuments,
		SectionLegal,
	}
	if pt == PropertyTypeResidential {
		return append(base, SectionPurpose)
	}
	return base
}
