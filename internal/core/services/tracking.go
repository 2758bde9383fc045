package services

import (
	"math/rand"

	"pnp-asset-tracker/internal/core/domain"
)

const trackingAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// GenerateTrackingID produces a fresh tracking ID: the constant prefix
// followed by a fixed-length suffix drawn from uppercase letters and digits.
// Candidates colliding with an already persisted code are retried; the
// codespace (36^6) dwarfs any realistic record count, so this terminates
// almost immediately. The exists check must run against the same store the
// caller will insert into, inside the caller's transaction.
func GenerateTrackingID(exists func(trackingID string) (bool, error)) (string, error) {
	for {
		candidate := domain.TrackingPrefix + randomTrackingSuffix()
		taken, err := exists(candidate)
		if err != nil {
			return "", err
		}
		if !taken {
			return candidate, nil
		}
	}
}

func randomTrackingSuffix() string {
	b := make([]byte, domain.TrackingSuffixLength)
	for i := range b {
		b[i] = trackingAlphabet[rand.Intn(len(trackingAlphabet))]
	}
	return string(b)
}
