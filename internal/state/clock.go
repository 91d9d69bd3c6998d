package state

import (
	"fmt"
	"sync/atomic"

	"github.com/google/uuid"
)

var (
	sessionID  = uuid.NewString()
	gestureSeq uint64
)

// nextGestureID labels a gesture for logging: session prefix plus a
// monotonically increasing sequence number.
func nextGestureID() string {
	return fmt.Sprintf("%s-%d", sessionID[:8], atomic.AddUint64(&gestureSeq, 1))
}

// SessionID identifies this process in log output.
func SessionID() string { return sessionID }
