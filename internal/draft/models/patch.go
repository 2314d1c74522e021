package models

import (
	"encoding/json"

	"homevest/pkg/domain"
	dErrors "homevest/pkg/domain-errors"
)

// Section patches implement the shallow-merge contract: a nil field preserves
// the draft's current value, a non-nil field overwrites it. Slices and
// attachment values are replaced wholesale, never deep-merged. Patches arrive
// as JSON, so an absent key decodes to nil and an explicit value (including
// "" or []) decodes to a pointer and wins.

type Patch interface {
	apply(d *PropertyDraft)
}

type DetailsPatch struct {
	Title         *string `json:"title"`
	Description   *string `json:"description"`
	Address       *string `json:"address"`
	City          *string `json:"city"`
	Bedrooms      *string `json:"bedrooms"`
	Bathrooms     *string `json:"bathrooms"`
	BusinessType  *string `json:"businessType"`
	Floors        *string `json:"floors"`
	SquareFootage *string `json:"squareFootage"`
}

func (p DetailsPatch) apply(d *PropertyDraft) {
	s := &d.Details
	setString(&s.Title, p.Title)
	setString(&s.Description, p.Description)
	setString(&s.Address, p.Address)
	setString(&s.City, p.City)
	setString(&s.Bedrooms, p.Bedrooms)
	setString(&s.Bathrooms, p.Bathrooms)
	setString(&s.BusinessType, p.BusinessType)
	setString(&s.Floors, p.Floors)
	setString(&s.SquareFootage, p.SquareFootage)
}

type PricingPatch struct {
	TotalValue  *string `json:"totalValue"`
	SharePrice  *string `json:"sharePrice"`
	TotalShares *string `json:"totalShares"`
	MonthlyRent *string `json:"monthlyRent"`
	Currency    *string `json:"currency"`
}

func (p PricingPatch) apply(d *PropertyDraft) {
	s := &d.Pricing
	setString(&s.TotalValue, p.TotalValue)
	setString(&s.SharePrice, p.SharePrice)
	setString(&s.TotalShares, p.TotalShares)
	setString(&s.MonthlyRent, p.MonthlyRent)
	setString(&s.Currency, p.Currency)
}

type FeaturesPatch struct {
	Amenities     *[]string `json:"amenities"`
	Furnished     *string   `json:"furnished"`
	ParkingSpaces *string   `json:"parkingSpaces"`
	YearBuilt     *string   `json:"yearBuilt"`
}

func (p FeaturesPatch) apply(d *PropertyDraft) {
	s := &d.Features
	if p.Amenities != nil {
		s.Amenities = append([]string(nil), (*p.Amenities)...)
	}
	setString(&s.Furnished, p.Furnished)
	setString(&s.ParkingSpaces, p.ParkingSpaces)
	setString(&s.YearBuilt, p.YearBuilt)
}

type MediaPatch struct {
	Photos *[]FileAttachment `json:"photos"`
}

func (p MediaPatch) apply(d *PropertyDraft) {
	if p.Photos != nil {
		d.Media.Photos = append([]FileAttachment(nil), (*p.Photos)...)
	}
}

type DocumentsPatch struct {
	OwnershipDeed  *FileAttachment `json:"ownershipDeed"`
	TaxCertificate *FileAttachment `json:"taxCertificate"`
	Insurance      *FileAttachment `json:"insurance"`
}

func (p DocumentsPatch) apply(d *PropertyDraft) {
	s := &d.Documents
	if p.OwnershipDeed != nil {
		s.OwnershipDeed = *p.OwnershipDeed
	}
	if p.TaxCertificate != nil {
		s.TaxCertificate = *p.TaxCertificate
	}
	if p.Insurance != nil {
		s.Insurance = *p.Insurance
	}
}

type LegalPatch struct {
	TermsAccepted       *bool `json:"termsAccepted"`
	OwnershipDeclared   *bool `json:"ownershipDeclared"`
	InformationAccurate *bool `json:"informationAccurate"`
}

func (p LegalPatch) apply(d *PropertyDraft) {
	s := &d.Legal
	if p.TermsAccepted != nil {
		s.TermsAccepted = *p.TermsAccepted
	}
	if p.OwnershipDeclared != nil {
		s.OwnershipDeclared = *p.OwnershipDeclared
	}
	if p.InformationAccurate != nil {
		s.InformationAccurate = *p.InformationAccurate
	}
}

type PurposePatch struct {
	ListingPurpose *string `json:"listingPurpose"`
	AvailableFrom  *string `json:"availableFrom"`
}

func (p PurposePatch) apply(d *PropertyDraft) {
	s := &d.Purpose
	setString(&s.ListingPurpose, p.ListingPurpose)
	setString(&s.AvailableFrom, p.AvailableFrom)
}

// DecodePatch parses raw JSON into the patch type for the named section.
func DecodePatch(name domain.SectionName, raw json.RawMessage) (Patch, error) {
	var target Patch
	switch name {
	case domain.SectionDetails:
		target = &DetailsPatch{}
	case domain.SectionPricing:
		target = &PricingPatch{}
	case domain.SectionFeatures:
		target = &FeaturesPatch{}
	case domain.SectionMedia:
		target = &MediaPatch{}
	case domain.SectionDocuments:
		target = &DocumentsPatch{}
	case domain.SectionLegal:
		target = &LegalPatch{}
	case domain.SectionPurpose:
		target = &PurposePatch{}
	default:
		return nil, dErrors.New(dErrors.CodeBadRequest, "unknown section: "+name.String())
	}
	if err := json.Unmarshal(raw, target); err != nil {
		return nil, dErrors.Wrap(dErrors.CodeBadRequest, "invalid section payload", err)
	}
	return target, nil
}

// Apply merges the patch into the draft in place.
func (d *PropertyDraft) Apply(p Patch) {
	p.apply(d)
}

func setString(dst *string, src *string) {
	if src != nil {
		*dst = *src
	}
}
