package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "homevest/pkg/domain-errors"
)

func TestParsePropertyType(t *testing.T) {
	for _, pt := range AllPropertyTypes() {
		got, err := ParsePropertyType(pt.String())
		require.NoError(t, err)
		assert.Equal(t, pt, got)
	}

	_, err := ParsePropertyType("industrial")
	require.Error(t, err)
	assert.True(t, dErrors.Is(err, dErrors.CodeBadRequest))
}

func TestParseSectionName(t *testing.T) {
	got, err := ParseSectionName("pricing")
	require.NoError(t, err)
	assert.Equal(t, SectionPricing, got)

	_, err = ParseSectionName("basement")
	assert.True(t, dErrors.Is(err, dErrors.CodeBadRequest))
}

func TestRequiredSections(t *testing.T) {
	residential := RequiredSections(PropertyTypeResidential)
	assert.Len(t, residential, 7)
	assert.Contains(t, residential, SectionPurpose)

	commercial := RequiredSections(PropertyTypeCommercial)
	assert.Len(t, commercial, 6)
	assert.NotContains(t, commercial, SectionPurpose)
}

func TestListingStatusTransitions(t *testing.T) {
	cases := []struct {
		from, to ListingStatus
		ok       bool
	}{
		{StatusPending, StatusApproved, true},
		{StatusPending, StatusRejected, true},
		{StatusPending, StatusDraft, false},
		{StatusPending, StatusPending, false},
		{StatusApproved, StatusRejected, false},
		{StatusApproved, StatusPending, false},
		{StatusRejected, StatusApproved, false},
		{StatusDraft, StatusPending, false},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.ok, tc.from.CanTransition(tc.to),
			"%s -> %s", tc.from, tc.to)
	}
}

func TestRegistryID(t *testing.T) {
	t.Run("round-trips through its string form", func(t *testing.T) {
		id := NewRegistryID()
		parsed, err := ParseRegistryID(id.String())
		require.NoError(t, err)
		assert.Equal(t, id, parsed)
	})

	t.Run("marshals as a canonical uuid string", func(t *testing.T) {
		id := NewRegistryID()
		data, err := json.Marshal(id)
		require.NoError(t, err)
		assert.JSONEq(t, `"`+id.String()+`"`, string(data))

		var back RegistryID
		require.NoError(t, json.Unmarshal(data, &back))
		assert.Equal(t, id, back)
	})

	t.Run("rejects malformed input", func(t *testing.T) {
		_, err := ParseRegistryID("not-a-uuid")
		assert.True(t, dErrors.Is(err, dErrors.CodeBadRequest))
	})

	t.Run("zero value is nil", func(t *testing.T) {
		assert.True(t, RegistryID{}.IsNil())
		assert.False(t, NewRegistryID().IsNil())
	})
}
