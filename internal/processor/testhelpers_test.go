package processor

import (
	"context"
	"sync"
	"time"

	"github.com/hengadev/jsonmap/internal/member"
)

type recordingHook struct {
	mu        sync.Mutex
	started   []string
	completed []error
	errors    []error
	skipped   map[string]string
	metadata  map[string]any
}

func newRecordingHook() *recordingHook {
	return &recordingHook{skipped: make(map[string]string)}
}

func (h *recordingHook) OnProcessStart(ctx context.Context, operation string, metadata map[string]any) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.started = append(h.started, operation)
}

func (h *recordingHook) OnProcessComplete(ctx context.Context, operation string, duration time.Duration, err error, metadata map[string]any) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.completed = append(h.completed, err)
	h.metadata = metadata
}

func (h *recordingHook) OnError(ctx context.Context, operation string, err error, metadata map[string]any) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.errors = append(h.errors, err)
}

func (h *recordingHook) OnMemberSkipped(ctx context.Context, memberName string, reason string, metadata map[string]any) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.skipped[memberName] = reason
}

type silentHook struct{ *recordingHook }

func (h *silentHook) NoOp() bool { return true }

func newTestProcessor(hook ObservabilityHook, opts Options) *StructProcessor {
	if hook == nil {
		hook = &silentHook{recordingHook: newRecordingHook()}
	}
	return NewStructProcessor(
		member.NewDiscoverer("", true),
		NewFieldProcessor(),
		NewValidator(""),
		hook,
		opts,
	)
}
