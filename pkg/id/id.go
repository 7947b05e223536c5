package id

import (
	"encoding/json"
	"fmt"
	"strconv"
	"time"
)

// Bit layout.
const (
	WorkerIDBits     = 5
	DatacenterIDBits = 5
	SequenceBits     = 12

	MaxWorkerID     = -1 ^ (-1 << WorkerIDBits)
	MaxDatacenterID = -1 ^ (-1 << DatacenterIDBits)
	MaxSequence     = -1 ^ (-1 << SequenceBits)

	workerIDShift     = SequenceBits
	datacenterIDShift = SequenceBits + WorkerIDBits
	timestampShift    = SequenceBits + WorkerIDBits + DatacenterIDBits

	// TimestampBits is what is left of the 63 usable bits.
	TimestampBits      = 63 - timestampShift
	MaxTimestampOffset = -1 ^ (-1 << TimestampBits)

	// DefaultEpochMs is 2010-11-04T01:42:54.657Z.
	DefaultEpochMs int64 = 1288834974657
)

// ID is a generated identifier.
type ID uint64

func (i ID) Uint64() uint64 { return uint64(i) }

// Int64 is lossless since the sign bit is never set.
func (i ID) Int64() int64 { return int64(i) }

// String returns the decimal representation.
func (i ID) String() string { return strconv.FormatUint(uint64(i), 10) }

// ParseID parses a decimal ID. Values with the sign bit set are rejected.
func ParseID(s string) (ID, error) {
	v, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("parse id %q: %w", s, err)
	}
	if v>>63 != 0 {
		return 0, fmt.Errorf("parse id %q: sign bit set", s)
	}
	return ID(v), nil
}

// MarshalJSON encodes the ID as a decimal string so JavaScript clients do
// not lose precision.
func (i ID) MarshalJSON() ([]byte, error) {
	return json.Marshal(i.String())
}

// UnmarshalJSON accepts either a decimal string or a bare number.
func (i *ID) UnmarshalJSON(b []byte) error {
	var s string
	if len(b) > 0 && b[0] == '"' {
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
	} else {
		s = string(b)
	}
	v, err := ParseID(s)
	if err != nil {
		return err
	}
	*i = v
	return nil
}

// Parts are the decoded fields of an ID.
type Parts struct {
	TimestampOffsetMs int64 `json:"timestampOffsetMs"`
	TimeMs            int64 `json:"timeMs"`
	DatacenterID      int64 `json:"datacenterId"`
	WorkerID          int64 `json:"workerId"`
	Sequence          int64 `json:"sequence"`
}

// Time returns the wall-clock instant the ID was issued at.
func (p Parts) Time() time.Time { return time.UnixMilli(p.TimeMs) }

// Decode splits id into its fields, using epochMs to recover the absolute time.
func Decode(id ID, epochMs int64) Parts {
	v := uint64(id)
	offset := int64(v >> timestampShift)
	return Parts{
		TimestampOffsetMs: offset,
		TimeMs:            epochMs + offset,
		DatacenterID:      int64(v>>datacenterIDShift) & MaxDatacenterID,
		WorkerID:          int64(v>>workerIDShift) & MaxWorkerID,
		Sequence:          int64(v) & MaxSequence,
	}
}

func compose(offset, datacenterID, workerID int64, sequence uint16) ID {
	return ID(uint64(offset)<<timestampShift |
		uint64(datacenterID)<<datacenterIDShift |
		uint64(workerID)<<workerIDShift |
		uint64(sequence))
}
