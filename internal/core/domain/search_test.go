package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSearchField(t *testing.T) {
	for _, label := range []string{
		"Tracking ID", "Asset Name", "Asset Code", "Branch Name", "Date Received",
	} {
		field, err := ParseSearchField(label, ScopeActive)
		require.NoError(t, err, label)
		assert.Equal(t, SearchField(label), field)
	}
}

func TestParseSearchField_DateDispatchedScoped(t *testing.T) {
	// Only dispatched records carry a dispatch date
	field, err := ParseSearchField("Date Dispatched", ScopeDispatched)
	require.NoError(t, err)
	assert.Equal(t, FieldDateDispatched, field)

	_, err = ParseSearchField("Date Dispatched", ScopeActive)
	assert.ErrorIs(t, err, ErrInvalidSearchField)
}

func TestParseSearchField_Unknown(t *testing.T) {
	for _, label := range []string{"", "Serial Number", "tracking id", "asset_name; DROP TABLE assets"} {
		_, err := ParseSearchField(label, ScopeActive)
		assert.ErrorIs(t, err, ErrInvalidSearchField, label)
	}
}

func TestParseSearchScope(t *testing.T) {
	scope, err := ParseSearchScope("active")
	require.NoError(t, err)
	assert.Equal(t, ScopeActive, scope)

	scope, err = ParseSearchScope("dispatched")
	require.NoError(t, err)
	assert.Equal(t, ScopeDispatched, scope)

	_, err = ParseSearchScope("archived")
	assert.ErrorIs(t, err, ErrValidation)
}

func TestSearchFieldIsDate(t *testing.T) {
	assert.True(t, FieldDateReceived.IsDate())
	assert.True(t, FieldDateDispatched.IsDate())
	assert.False(t, FieldTrackingID.IsDate())
	assert.False(t, FieldAssetName.IsDate())
	assert.False(t, FieldAssetCode.IsDate())
	assert.False(t, FieldBranchName.IsDate())
}
