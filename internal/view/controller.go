// Package view owns which named section of the page is visible and the
// upload-to-display flow that drives transitions between them.
package view

import (
	"sync"

	"go.uber.org/zap"
)

// Registered view identifiers
const (
	ViewUpload    = "upload-view"
	ViewAnalysis  = "analysis-view"
	ViewDiagnosis = "diagnosis-view"
	ViewHistory   = "history-view"
	ViewContact   = "contact-view"
	ViewAbout     = "about-view"
	ViewProfile   = "profile-view"
)

var registeredViews = []string{
	ViewUpload,
	ViewAnalysis,
	ViewDiagnosis,
	ViewHistory,
	ViewContact,
	ViewAbout,
	ViewProfile,
}

// Controller tracks the single active view out of a fixed registry.
// It lives for the session's lifetime and only toggles visibility;
// it never fetches data or mutates business state.
type Controller struct {
	logger *zap.Logger

	mu     sync.Mutex
	views  map[string]struct{}
	active string
}

// NewController creates a controller with the upload view active
func NewController(logger *zap.Logger) *Controller {
	views := make(map[string]struct{}, len(registeredViews))
	for _, v := range registeredViews {
		views[v] = struct{}{}
	}
	return &Controller{
		logger: logger,
		views:  views,
		active: ViewUpload,
	}
}

// Activate makes the named view the single active one. An unknown view ID
// is a no-op with a warning; the previously active view stays active.
// Activating the already-active view is idempotent.
func (c *Controller) Activate(viewID string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.views[viewID]; !ok {
		c.logger.Warn("Unknown view requested",
			zap.String("view_id", viewID),
			zap.String("active_view", c.active))
		return
	}
	c.active = viewID
}

// Active returns the currently active view ID
func (c *Controller) Active() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.active
}

// IsActive reports whether the named view is the active one
func (c *Controller) IsActive(viewID string) bool {
	return c.Active() == viewID
}

// Views returns the registered view IDs in their fixed order
func (c *Controller) Views() []string {
	out := make([]string, len(registeredViews))
	copy(out, registeredViews)
	return out
}
