package view

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
)

// FlowState is one stage of the upload-to-display progression
type FlowState string

// Upload flow states. The happy path is linear; any failure lands in
// StateFailed, which only a new Start can leave.
const (
	StateIdle       FlowState = "idle"
	StateUploading  FlowState = "uploading"
	StateProcessing FlowState = "processing"
	StateAnalyzed   FlowState = "analyzed"
	StateDisplayed  FlowState = "displayed"
	StateFailed     FlowState = "failed"
)

// GenericUploadError is surfaced when a failure carries no server message
const GenericUploadError = "Upload failed. Please try again."

// ErrUploadInProgress rejects a second upload while one is in flight
var ErrUploadInProgress = errors.New("an upload is already in progress")

// UploadFlow is the state machine for one upload surface. The staged
// Processing to Analyzed progression is driven by a single injectable
// timer so tests can advance it without real delays.
type UploadFlow struct {
	logger     *zap.Logger
	views      *Controller
	stageDelay time.Duration
	timer      func(time.Duration) <-chan time.Time

	mu      sync.Mutex
	state   FlowState
	message string
}

// NewUploadFlow creates an idle flow bound to a view controller
func NewUploadFlow(views *Controller, stageDelay time.Duration, logger *zap.Logger) *UploadFlow {
	return &UploadFlow{
		logger:     logger,
		views:      views,
		stageDelay: stageDelay,
		timer:      time.After,
		state:      StateIdle,
	}
}

// SetTimer replaces the stage timer. Test hook.
func (f *UploadFlow) SetTimer(timer func(time.Duration) <-chan time.Time) {
	f.timer = timer
}

// State returns the current flow state
func (f *UploadFlow) State() FlowState {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

// Message returns the failure message, empty unless the flow has failed
func (f *UploadFlow) Message() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.message
}

// Start begins a new upload. Allowed from Idle, Displayed, and Failed;
// starting while a flow is in flight is rejected so uploads stay serialized.
func (f *UploadFlow) Start() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	switch f.state {
	case StateUploading, StateProcessing, StateAnalyzed:
		return ErrUploadInProgress
	}

	f.state = StateUploading
	f.message = ""
	f.logger.Info("Upload started")
	return nil
}

// Advance moves the flow from Uploading through Processing to Analyzed once
// the upload call has resolved successfully. The Processing stage holds for
// the configured delay before Analyzed.
func (f *UploadFlow) Advance(ctx context.Context) error {
	if err := f.transition(StateUploading, StateProcessing); err != nil {
		return err
	}

	select {
	case <-f.timer(f.stageDelay):
	case <-ctx.Done():
		f.Fail("")
		return ctx.Err()
	}

	return f.transition(StateProcessing, StateAnalyzed)
}

// Display finishes the flow after projection and activates the analysis view
func (f *UploadFlow) Display() error {
	if err := f.transition(StateAnalyzed, StateDisplayed); err != nil {
		return err
	}
	f.views.Activate(ViewAnalysis)
	return nil
}

// Fail moves the flow to the terminal Failed state from anywhere, keeping
// the server-provided message or the generic fallback when there is none
func (f *UploadFlow) Fail(message string) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if message == "" {
		message = GenericUploadError
	}
	f.logger.Warn("Upload flow failed",
		zap.String("from_state", string(f.state)),
		zap.String("message", message))
	f.state = StateFailed
	f.message = message
}

func (f *UploadFlow) transition(from, to FlowState) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.state != from {
		return fmt.Errorf("invalid transition to %s: flow is %s, not %s", to, f.state, from)
	}
	f.state = to
	return nil
}
