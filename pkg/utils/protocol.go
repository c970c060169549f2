package utils

// Custom WebSocket close codes.
// https://www.rfc-editor.org/rfc/rfc6455#section-7.4.2
const (
	CloseCodeExpiredSession       int = 4001
	CloseCodeMissingClientID      int = 4002
	CloseCodeInvalidSequenceCount int = 4003
	CloseCodeInvalidLastReceived  int = 4004
	CloseCodeInvalidGenerator     int = 4005
)

// Message prefixes.
const (
	NumberInSequencePrefix     uint8 = 0x1
	AcknowledgementPrefix      uint8 = 0x2
	LastNumberInSequencePrefix uint8 = 0x3
)

// SequenceFinalMessage carries the last value of a dataset together with
// the checksum of the whole dataset and the seed it was generated from.
type SequenceFinalMessage struct {
	Number   float64 `json:"number"`
	Checksum string  `json:"checksum"`
	Seed     uint64  `json:"seed"`
}

func IsKnownClientErrorCode(code int) bool {
	_, exists := codeNameMap[code]
	return exists
}

var codeNameMap = map[int]string{
	CloseCodeExpiredSession:       "CloseCodeExpiredSession",
	CloseCodeMissingClientID:      "CloseCodeMissingClientID",
	CloseCodeInvalidSequenceCount: "CloseCodeInvalidSequenceCount",
	CloseCodeInvalidLastReceived:  "CloseCodeInvalidLastReceived",
	CloseCodeInvalidGenerator:     "CloseCodeInvalidGenerator",
}

func CloseCodeName(code int) string {
	name, exists := codeNameMap[code]
	if exists {
		return name
	}
	return "UnknownCode"
}
