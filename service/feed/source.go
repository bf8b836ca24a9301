package feed

import (
	"context"
	"fmt"
	"sync"

	"cdp/core"
)

// Source feeds by id
type Source struct {
	mu    sync.RWMutex
	feeds map[string]core.IPriceFeed
}

// NewSource new empty source
func NewSource() *Source {
	return &Source{
		feeds: map[string]core.IPriceFeed{},
	}
}

// Register bind feedID to feed
func (s *Source) Register(feedID string, feed core.IPriceFeed) *Source {
	s.mu.Lock()
	s.feeds[feedID] = feed
	s.mu.Unlock()
	return s
}

// Feed implements core.IPriceFeedSource
func (s *Source) Feed(_ context.Context, feedID string) (core.IPriceFeed, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	feed, ok := s.feeds[feedID]
	if !ok {
		return nil, fmt.Errorf("feed %s not registered", feedID)
	}

	return feed, nil
}

// IDs registered feed ids
func (s *Source) IDs() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := make([]string, 0, len(s.feeds))
	for id := range s.feeds {
		ids = append(ids, id)
	}

	return ids
}
