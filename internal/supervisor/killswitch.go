package supervisor

import "sync"

// KillSwitch is a broadcast-once signal every per-user task loop watches,
// grounded on the daemon's tokio::sync::broadcast channel: one Trip() wakes
// every subscriber exactly once, additional Trip() calls are no-ops.
type KillSwitch struct {
	once sync.Once
	ch   chan struct{}
}

// NewKillSwitch returns a KillSwitch ready to be shared across goroutines.
func NewKillSwitch() *KillSwitch {
	return &KillSwitch{ch: make(chan struct{})}
}

// Trip closes the underlying channel, waking every Tripped() receiver.
// Safe to call more than once or concurrently.
func (k *KillSwitch) Trip() {
	k.once.Do(func() { close(k.ch) })
}

// Tripped returns a channel that is closed once Trip() has been called.
func (k *KillSwitch) Tripped() <-chan struct{} {
	return k.ch
}

// IsTripped reports whether Trip() has already happened, non-blocking.
func (k *KillSwitch) IsTripped() bool {
	select {
	case <-k.ch:
		return true
	default:
		return false
	}
}
