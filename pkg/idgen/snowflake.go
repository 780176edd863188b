package idgen

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/Siddarth2230/base62/pkg/base62"
)

const (
	timestampBits = 41
	nodeBits      = 10
	sequenceBits  = 12
)

var (
	ErrClockBeforeEpoch  = errors.New("current time is before epoch")
	ErrTimestampOverflow = errors.New("timestamp no longer fits in 41 bits")
)

// SnowflakeGenerator implements a Snowflake-like ID generator.
// Layout (63 bits used):
// 41 bits timestamp (ms since custom epoch)
// 10 bits node ID (0..1023)
// 12 bits sequence (0..4095)
type SnowflakeGenerator struct {
	mu          sync.Mutex
	epoch       int64  // custom epoch in ms
	nodeID      uint64 // up to 10 bits
	lastTs      int64
	sequence    uint64 // 12 bits
	maxSequence uint64
	maxNodeID   uint64

	now func() time.Time
}

// NewSnowflakeGenerator creates a SnowflakeGenerator with given epoch (ms) and nodeID.
// nodeID must fit in 10 bits (0..1023). If epochMs is 0 the epoch is
// 2020-01-01T00:00:00Z.
func NewSnowflakeGenerator(nodeID uint64, epochMs int64) (*SnowflakeGenerator, error) {
	maxNode := uint64((1 << nodeBits) - 1)
	if nodeID > maxNode {
		return nil, errors.New("nodeID out of range")
	}

	if epochMs == 0 {
		epochMs = time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC).UnixMilli()
	}

	return &SnowflakeGenerator{
		epoch:       epochMs,
		nodeID:      nodeID,
		lastTs:      -1,
		maxSequence: (1 << sequenceBits) - 1,
		maxNodeID:   maxNode,
		now:         time.Now,
	}, nil
}

// Generate returns a base62-encoded Snowflake ID.
func (s *SnowflakeGenerator) Generate(ctx context.Context) (string, error) {
	id, err := s.next(ctx)
	if err != nil {
		return "", err
	}
	return base62.EncodeUint64(id), nil
}

func (s *SnowflakeGenerator) Name() string { return "snowflake" }

func (s *SnowflakeGenerator) next(ctx context.Context) (uint64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ts := s.now().UnixMilli() - s.epoch
	if ts < 0 {
		return 0, ErrClockBeforeEpoch
	}
	if ts < s.lastTs {
		// clock moved backwards; stay on the last timestamp so IDs keep increasing
		ts = s.lastTs
	}

	if ts == s.lastTs {
		s.sequence = (s.sequence + 1) & s.maxSequence
		if s.sequence == 0 {
			// sequence exhausted for this millisecond
			for ts <= s.lastTs {
				if err := ctx.Err(); err != nil {
					return 0, err
				}
				time.Sleep(time.Millisecond)
				ts = s.now().UnixMilli() - s.epoch
			}
		}
	} else {
		s.sequence = 0
	}

	if ts >= 1<<timestampBits {
		return 0, ErrTimestampOverflow
	}
	s.lastTs = ts

	id := (uint64(ts) << (nodeBits + sequenceBits)) |
		((s.nodeID & s.maxNodeID) << sequenceBits) |
		(s.sequence & s.maxSequence)
	return id, nil
}
