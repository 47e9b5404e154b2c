package test

import (
	"go.uber.org/fx"
)

// LifecycleRecorder collects hooks so tests can drive OnStart and OnStop
// directly instead of running a full fx app.
type LifecycleRecorder struct {
	Hooks []fx.Hook
}

// Append stores the hook for manual invocation.
func (l *LifecycleRecorder) Append(h fx.Hook) {
	l.Hooks = append(l.Hooks, h)
}

// ShutdownerStub signals on Called when a shutdown is requested.
type ShutdownerStub struct {
	Called chan struct{}
	Err    error
}

// Shutdown notifies the channel without blocking and returns Err.
func (s *ShutdownerStub) Shutdown(...fx.ShutdownOption) error {
	if s.Called != nil {
		select {
		case s.Called <- struct{}{}:
		default:
		}
	}
	return s.Err
}
