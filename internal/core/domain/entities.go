package domain

// AssetStatus represents the lifecycle state of an asset
type AssetStatus string

const (
	StatusReceived   AssetStatus = "Received at HQ"
	StatusDispatched AssetStatus = "Dispatched to Branch"
)

// TrackingPrefix is the constant prefix of every tracking ID
const TrackingPrefix = "PNP-"

// TrackingSuffixLength is the number of random characters after the prefix
const TrackingSuffixLength = 6

// TokenPair represents access and refresh tokens
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}
