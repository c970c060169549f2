package utils

import (
	"encoding/binary"
	"math"
)

func Uint32ToByteArray(input []uint32) []byte {
	allBytes := make([]byte, 0, 4*len(input))
	for _, number := range input {
		allBytes = binary.LittleEndian.AppendUint32(allBytes, number)
	}
	return allBytes
}

func ByteArrayToSingleUint32(input []byte) uint32 {
	return binary.LittleEndian.Uint32(input)
}

// Float64ToByteArray encodes each value as its little-endian IEEE 754 bits.
func Float64ToByteArray(input []float64) []byte {
	allBytes := make([]byte, 0, 8*len(input))
	for _, value := range input {
		allBytes = binary.LittleEndian.AppendUint64(allBytes, math.Float64bits(value))
	}
	return allBytes
}

func ByteArrayToSingleFloat64(input []byte) float64 {
	return math.Float64frombits(binary.LittleEndian.Uint64(input))
}
