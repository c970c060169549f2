package utils

import (
	"crypto/sha1"
	"encoding/hex"
)

// CreateChecksum hashes the exact bit patterns of the sequence, so both
// sides agree as long as every value arrived unchanged.
func CreateChecksum(sequence []float64) string {
	hasher := sha1.New()
	hasher.Write(Float64ToByteArray(sequence))
	return hex.EncodeToString(hasher.Sum(nil))
}
