package domain

// SearchScope restricts search results to one lifecycle state
type SearchScope string

const (
	ScopeActive     SearchScope = "active"
	ScopeDispatched SearchScope = "dispatched"
)

// SearchField is the closed set of searchable asset attributes.
// Values mirror the labels the desktop client shows in its category box.
type SearchField string

const (
	FieldTrackingID     SearchField = "Tracking ID"
	FieldAssetName      SearchField = "Asset Name"
	FieldAssetCode      SearchField = "Asset Code"
	FieldBranchName     SearchField = "Branch Name"
	FieldDateReceived   SearchField = "Date Received"
	FieldDateDispatched SearchField = "Date Dispatched"
)

// ParseSearchField validates a caller-supplied field label against the
// allow-list. FieldDateDispatched is only meaningful for dispatched records.
func ParseSearchField(label string, scope SearchScope) (SearchField, error) {
	switch SearchField(label) {
	case FieldTrackingID, FieldAssetName, FieldAssetCode, FieldBranchName, FieldDateReceived:
		return SearchField(label), nil
	case FieldDateDispatched:
		if scope != ScopeDispatched {
			return "", ErrInvalidSearchField
		}
		return FieldDateDispatched, nil
	default:
		return "", ErrInvalidSearchField
	}
}

// ParseSearchScope validates a caller-supplied scope value.
func ParseSearchScope(value string) (SearchScope, error) {
	switch SearchScope(value) {
	case ScopeActive, ScopeDispatched:
		return SearchScope(value), nil
	default:
		return "", ErrValidation
	}
}

// IsDate reports whether the field holds a date and therefore matches by
// exact equality instead of substring containment.
func (f SearchField) IsDate() bool {
	return f == FieldDateReceived || f == FieldDateDispatched
}
