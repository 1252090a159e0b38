package helpers

import (
	"errors"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/require"
)

const (
	retries     = 100
	periodRetry = time.Millisecond * 20
)

type ProcessedChecker interface {
	IsProcessed(messageID common.Hash) (bool, error)
}

// RequireServerUp waits until the node answers a JSON-RPC call
func RequireServerUp(t *testing.T, checker ProcessedChecker) {
	t.Helper()
	for i := 0; i < retries; i++ {
		if _, err := checker.IsProcessed(common.Hash{}); err == nil {
			return
		}
		time.Sleep(periodRetry)
	}
	require.NoError(t, errors.New("rpc server not reachable"))
}

// RequireProcessed waits until messageID is reported as processed
func RequireProcessed(t *testing.T, checker ProcessedChecker, messageID common.Hash) {
	t.Helper()
	for i := 0; i < retries; i++ {
		processed, err := checker.IsProcessed(messageID)
		require.NoError(t, err)
		if processed {
			return
		}
		time.Sleep(periodRetry)
	}
	require.NoError(t, errors.New("message not processed"))
}
