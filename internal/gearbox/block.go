package gearbox

import (
	"context"
	"errors"
	"time"
)

var genesis int64 = 0

// SetupGenesis setup genesis timestamp
func SetupGenesis(_genesis int64) {
	genesis = _genesis
}

// GetBlockByTime get block by time
func GetBlockByTime(ctx context.Context, t time.Time) (int64, error) {
	seconds := t.UTC().Unix() - genesis
	if seconds <= 0 {
		return 0, errors.New("invalid blocks")
	}

	return seconds / SecondsPerBlock, nil
}

// CurrentBlock current block
func CurrentBlock(ctx context.Context, secondsPerBlock, genesis int64) (int64, error) {
	if secondsPerBlock <= 0 {
		return 0, errors.New("secondsPerBlock should not be less than or equal zero")
	}

	now := time.Now().UTC()
	seconds := now.Unix() - genesis

	if seconds <= 0 {
		return 0, errors.New("invalid blocks")
	}

	currentBlock := seconds / secondsPerBlock

	return currentBlock, nil
}
