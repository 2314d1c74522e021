package validate

import (
	"fmt"
	"strconv"
	"time"

	"homevest/internal/draft/models"
	"homevest/pkg/domain"
)

// MinSqftPerBedroom is the cross-section rule threshold: a residential
// property must offer at least this many square feet per bedroom. This is the
// single exception to per-section isolation.
const MinSqftPerBedroom = 50

// ValidateDetails checks the details screen. The property type decides which
// fields are mandatory: bedrooms and bathrooms for residential, business type
// and floors for commercial.
func ValidateDetails(pt domain.PropertyType, s models.DetailsSection) []FieldError {
	var errs []FieldError

	errs = appendRequired(errs, "title", s.Title)
	if s.Title != "" && len(s.Title) < 5 {
		errs = append(errs, FieldError{"title", KindTooShort, "title must be at least 5 characters"})
	}
	errs = appendRequired(errs, "description", s.Description)
	if s.Description != "" && len(s.Description) < 20 {
		errs = append(errs, FieldError{"description", KindTooShort, "description must be at least 20 characters"})
	}
	errs = appendRequired(errs, "address", s.Address)
	errs = appendRequired(errs, "city", s.City)

	switch pt {
	case domain.PropertyTypeResidential:
		bedrooms, bedErrs := requirePositiveInt(s.Bedrooms, "bedrooms")
		errs = append(errs, bedErrs...)
		errs = append(errs, requireCount(s.Bathrooms, "bathrooms")...)
		sqft, sqftErrs := requirePositiveInt(s.SquareFootage, "squareFootage")
		errs = append(errs, sqftErrs...)

		// Cross-section dependency: square footage validity depends on the
		// bedroom count entered on the same screen.
		if len(bedErrs) == 0 && len(sqftErrs) == 0 {
			minSqft := bedrooms * MinSqftPerBedroom
			if sqft < minSqft {
				errs = append(errs, FieldError{
					Field: "squareFootage",
					Kind:  KindBelowMin,
					Message: fmt.Sprintf("square footage must be at least %d sqft for %d bedrooms",
						minSqft, bedrooms),
				})
			}
		}
	case domain.PropertyTypeCommercial:
		errs = appendRequired(errs, "businessType", s.BusinessType)
		errs = append(errs, requireCount(s.Floors, "floors")...)
		_, sqftErrs := requirePositiveInt(s.SquareFootage, "squareFootage")
		errs = append(errs, sqftErrs...)
	}

	return errs
}

// ValidatePricing checks the investment and rental figures.
func ValidatePricing(s models.PricingSection) []FieldError {
	var errs []FieldError
	errs = append(errs, requirePositiveNumber(s.TotalValue, "totalValue")...)
	errs = append(errs, requirePositiveNumber(s.SharePrice, "sharePrice")...)
	_, shareErrs := requirePositiveInt(s.TotalShares, "totalShares")
	errs = append(errs, shareErrs...)
	if s.Currency == "" {
		errs = append(errs, FieldError{"currency", KindRequired, "currency is required"})
	} else if len(s.Currency) != 3 {
		errs = append(errs, FieldError{"currency", KindInvalid, "currency must be a 3-letter code"})
	}
	if s.MonthlyRent != "" {
		if _, err := strconv.ParseFloat(s.MonthlyRent, 64); err != nil {
			errs = append(errs, FieldError{"monthlyRent", KindInvalid, "monthly rent must be a number"})
		}
	}
	return errs
}

var validFurnished = map[string]bool{"yes": true, "no": true, "partially": true}

// ValidateFeatures checks amenities and physical characteristics.
func ValidateFeatures(s models.FeaturesSection) []FieldError {
	var errs []FieldError
	if s.Furnished == "" {
		errs = append(errs, FieldError{"furnished", KindRequired, "furnished is required"})
	} else if !validFurnished[s.Furnished] {
		errs = append(errs, FieldError{"furnished", KindInvalid, "furnished must be yes, no or partially"})
	}
	if s.ParkingSpaces != "" {
		if _, err := strconv.Atoi(s.ParkingSpaces); err != nil {
			errs = append(errs, FieldError{"parkingSpaces", KindInvalid, "parking spaces must be a whole number"})
		}
	}
	if s.YearBuilt != "" {
		year, err := strconv.Atoi(s.YearBuilt)
		if err != nil || year < 1800 || year > time.Now().Year() {
			errs = append(errs, FieldError{"yearBuilt", KindInvalid, "year built must be a valid year"})
		}
	}
	return errs
}

// ValidateMedia requires at least one listing photo.
func ValidateMedia(s models.MediaSection) []FieldError {
	for _, photo := range s.Photos {
		if photo.Present() {
			return nil
		}
	}
	return []FieldError{{"photos", KindRequired, "at least one photo is required"}}
}

// ValidateDocuments requires the ownership deed and tax certificate; the
// insurance document is optional.
func ValidateDocuments(s models.DocumentsSection) []FieldError {
	var errs []FieldError
	if !s.OwnershipDeed.Present() {
		errs = append(errs, FieldError{"ownershipDeed", KindRequired, "ownership deed is required"})
	}
	if !s.TaxCertificate.Present() {
		errs = append(errs, FieldError{"taxCertificate", KindRequired, "tax certificate is required"})
	}
	return errs
}

// ValidateLegal requires every consent to be granted.
func ValidateLegal(s models.LegalSection) []FieldError {
	var errs []FieldError
	if !s.TermsAccepted {
		errs = append(errs, FieldError{"termsAccepted", KindRequired, "terms must be accepted"})
	}
	if !s.OwnershipDeclared {
		errs = append(errs, FieldError{"ownershipDeclared", KindRequired, "ownership must be declared"})
	}
	if !s.InformationAccurate {
		errs = append(errs, FieldError{"informationAccurate", KindRequired, "information accuracy must be confirmed"})
	}
	return errs
}

var validPurposes = map[string]bool{
	models.PurposeRent:       true,
	models.PurposeSell:       true,
	models.PurposeFractional: true,
}

// ValidatePurpose checks the residential listing-purpose screen. A rental
// listing additionally needs an availability date.
func ValidatePurpose(s models.PurposeSection) []FieldError {
	var errs []FieldError
	if s.ListingPurpose == "" {
		errs = append(errs, FieldError{"listingPurpose", KindRequired, "listing purpose is required"})
	} else if !validPurposes[s.ListingPurpose] {
		errs = append(errs, FieldError{"listingPurpose", KindInvalid, "listing purpose must be rent, sell or fractional"})
	}
	if s.ListingPurpose == models.PurposeRent {
		if s.AvailableFrom == "" {
			errs = append(errs, FieldError{"availableFrom", KindRequired, "availability date is required for rentals"})
		} else if _, err := time.Parse("2006-01-02", s.AvailableFrom); err != nil {
			errs = append(errs, FieldError{"availableFrom", KindInvalid, "availability date must be YYYY-MM-DD"})
		}
	}
	return errs
}

func appendRequired(errs []FieldError, field, value string) []FieldError {
	if value == "" {
		return append(errs, FieldError{field, KindRequired, field + " is required"})
	}
	return errs
}

// requirePositiveInt parses a mandatory positive integer field.
func requirePositiveInt(value, field string) (int, []FieldError) {
	if value == "" {
		return 0, []FieldError{{field, KindRequired, field + " is required"}}
	}
	n, err := strconv.Atoi(value)
	if err != nil || n <= 0 {
		return 0, []FieldError{{field, KindInvalid, field + " must be a positive whole number"}}
	}
	return n, nil
}

// requirePositiveNumber parses a mandatory positive numeric field.
func requirePositiveNumber(value, field string) []FieldError {
	if value == "" {
		return []FieldError{{field, KindRequired, field + " is required"}}
	}
	if n, err := strconv.ParseFloat(value, 64); err != nil || n <= 0 {
		return []FieldError{{field, KindInvalid, field + " must be a positive number"}}
	}
	return nil
}

// requireCount parses a mandatory non-negative integer field.
func requireCount(value, field string) []FieldError {
	if value == "" {
		return []FieldError{{field, KindRequired, field + " is required"}}
	}
	if n, err := strconv.Atoi(value); err != nil || n < 0 {
		return []FieldError{{field, KindInvalid, field + " must be a whole number"}}
	}
	return nil
}
