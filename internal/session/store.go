// Package session keeps the last analysis result per session so the
// analysis and diagnosis views can be revisited without re-uploading.
// Entries expire after a TTL; nothing here survives a restart.
package session

import (
	"sync"
	"time"

	"github.com/ritirai06/SWASTHMATE/pkg/model"
	"go.uber.org/zap"
)

type entry struct {
	result    *model.AnalysisResult
	reportID  string
	expiresAt time.Time
}

// Store is an in-memory TTL buffer of the latest result per session
type Store struct {
	logger *zap.Logger
	ttl    time.Duration
	now    func() time.Time

	mu      sync.RWMutex
	entries map[string]entry
}

// NewStore creates a store with the given entry lifetime
func NewStore(ttl time.Duration, logger *zap.Logger) *Store {
	return &Store{
		logger:  logger,
		ttl:     ttl,
		now:     time.Now,
		entries: make(map[string]entry),
	}
}

// Put stores the latest result for a session, replacing any previous one
func (s *Store) Put(sessionID string, result *model.AnalysisResult) {
	if sessionID == "" || result == nil {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[sessionID] = entry{
		result:    result,
		reportID:  result.ReportID,
		expiresAt: s.now().Add(s.ttl),
	}
}

// Get returns the stored result for a session, or nil if absent or expired
func (s *Store) Get(sessionID string) *model.AnalysisResult {
	s.mu.RLock()
	e, ok := s.entries[sessionID]
	s.mu.RUnlock()

	if !ok {
		return nil
	}
	if s.now().After(e.expiresAt) {
		s.Clear(sessionID)
		return nil
	}
	return e.result
}

// ReportID returns the report identifier for a session, empty if absent
func (s *Store) ReportID(sessionID string) string {
	s.mu.RLock()
	e, ok := s.entries[sessionID]
	s.mu.RUnlock()

	if !ok || s.now().After(e.expiresAt) {
		return ""
	}
	return e.reportID
}

// Clear removes a session's entry, used on logout
func (s *Store) Clear(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, sessionID)
}

// Sweep drops all expired entries and returns how many were removed
func (s *Store) Sweep() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	removed := 0
	for id, e := range s.entries {
		if now.After(e.expiresAt) {
			delete(s.entries, id)
			removed++
		}
	}
	if removed > 0 {
		s.logger.Debug("swept expired sessions", zap.Int("removed", removed))
	}
	return removed
}

// StartSweeper sweeps periodically until the stop channel closes
func (s *Store) StartSweeper(interval time.Duration, stop <-chan struct{}) {
	ticker := time.NewTicker(interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				s.Sweep()
			case <-stop:
				return
			}
		}
	}()
}
