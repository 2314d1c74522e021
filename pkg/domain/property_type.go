package domain

import dErrors "homevest/pkg/domain-errors"

// PropertyType identifies which listing wizard a draft belongs to. Exactly one
// live draft exists per type.
//
// Usage: construct via ParsePropertyType at trust boundaries to enforce the
// allowlist; direct casting bypasses validation.
type PropertyType string

const (
	PropertyTypeResidential PropertyType = "residential"
	PropertyTypeCommercial  PropertyType = "commercial"
)

var validPropertyTypes = map[PropertyType]bool{
	PropertyTypeResidential: true,
	PropertyTypeCommercial:  true,
}

// ParsePropertyType constructs a PropertyType from external input.
func ParsePropertyType(raw string) (PropertyType, error) {
	pt := PropertyType(raw)
	if !validPropertyTypes[pt] {
		return "", dErrors.New(dErrors.CodeBadRequest, "unknown property type: "+raw)
	}
	return pt, nil
}

func (p PropertyType) String() string { return string(p) }

// AllPropertyTypes lists the supported types in stable order.
func AllPropertyTypes() []PropertyType {
	return []PropertyType{PropertyTypeResidential, PropertyTypeCommercial}
}
