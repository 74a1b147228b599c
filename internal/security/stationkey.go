package security

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

var ErrUnknownStation = errors.New("unknown gate station or bad key")

// StationKeyVerifier authenticates gate scanner stations. Stations
// present a static shared key; only its bcrypt hash is held in config.
type StationKeyVerifier struct {
	hashes map[string]string // station id -> bcrypt hash
}

func NewStationKeyVerifier(hashes map[string]string) *StationKeyVerifier {
	if hashes == nil {
		hashes = map[string]string{}
	}
	return &StationKeyVerifier{hashes: hashes}
}

// Verify returns nil when the station id exists and the key matches
// its stored hash.
func (v *StationKeyVerifier) Verify(stationID, key string) error {
	hash, ok := v.hashes[stationID]
	if !ok {
		return ErrUnknownStation
	}
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(key)); err != nil {
		return ErrUnknownStation
	}
	return nil
}
