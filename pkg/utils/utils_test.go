package utils

import (
	"math"
	"testing"
)

func Test_float64_encoding_preserves_bits(t *testing.T) {
	values := []float64{0, -1.5, math.Pi, math.SmallestNonzeroFloat64, 125.00000000001}
	encoded := Float64ToByteArray(values)
	if len(encoded) != 8*len(values) {
		t.Error("expected 8 bytes per value, got ", len(encoded))
		t.FailNow()
	}
	for i, value := range values {
		decoded := ByteArrayToSingleFloat64(encoded[8*i : 8*(i+1)])
		if math.Float64bits(decoded) != math.Float64bits(value) {
			t.Error("value ", i, " decoded as ", decoded, " expected ", value)
		}
	}
}

func Test_uint32_encoding(t *testing.T) {
	encoded := Uint32ToByteArray([]uint32{0xffff, 7})
	if ByteArrayToSingleUint32(encoded[:4]) != 0xffff || ByteArrayToSingleUint32(encoded[4:]) != 7 {
		t.Error("unexpected uint32 decoding of ", encoded)
	}
}

func Test_checksum_depends_on_every_value(t *testing.T) {
	first := CreateChecksum([]float64{1, 2, 3})
	if first != CreateChecksum([]float64{1, 2, 3}) {
		t.Error("expected equal sequences to share a checksum")
	}
	if first == CreateChecksum([]float64{1, 2, 3.0000000001}) {
		t.Error("expected different sequences to have different checksums")
	}
}

func Test_seeded_rand_is_reproducible(t *testing.T) {
	if NewSeededRand(5).Uint64() != NewSeededRand(5).Uint64() {
		t.Error("expected the same seed to reproduce the same stream")
	}
}

func Test_close_code_names(t *testing.T) {
	if CloseCodeName(CloseCodeInvalidGenerator) != "CloseCodeInvalidGenerator" {
		t.Error("unexpected name for invalid generator code")
	}
	if CloseCodeName(1000) != "UnknownCode" || IsKnownClientErrorCode(1000) {
		t.Error("normal closure must not be a known client error code")
	}
}
