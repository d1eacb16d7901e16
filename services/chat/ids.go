package chat

import (
	"math/rand"
	"strconv"
	"strings"
	"time"
)

const (
	idAlphabet     = "0123456789abcdefghijklmnopqrstuvwxyz"
	idSuffixLength = 7
	idMixer        = 0x9E3779B97F4A7C15
)

// IDState carries the message id sequence between calls.
type IDState struct {
	Seed    int64  `json:"seed"`
	Counter uint64 `json:"counter"`
}

// NewIDState starts a sequence from seed.
func NewIDState(seed int64) IDState {
	return IDState{Seed: seed}
}

// NextMessageID derives an id of the form <unixMillis>-<counter>-<suffix>
// and returns the advanced state. The same state and time always produce the
// same id.
func NextMessageID(state IDState, now time.Time) (string, IDState) {
	r := rand.New(rand.NewSource(int64(uint64(state.Seed) ^ (state.Counter * idMixer))))

	var suffix [idSuffixLength]byte
	for i := range suffix {
		suffix[i] = idAlphabet[r.Intn(len(idAlphabet))]
	}

	var sb strings.Builder
	sb.WriteString(strconv.FormatInt(now.UnixMilli(), 10))
	sb.WriteByte('-')
	sb.WriteString(strconv.FormatUint(state.Counter, 10))
	sb.WriteByte('-')
	sb.Write(suffix[:])

	state.Counter++
	return sb.String(), state
}
