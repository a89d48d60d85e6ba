// (c) Siemens AG 2023
//
// SPDX-License-Identifier: MIT

package verifier

import (
	"context"
	"sort"
	"sync"

	"github.com/siemens/ipv4ep/endpoint"
	"github.com/siemens/ipv4ep/types"
)

// Tracker keeps the most recent quality of each endpoint seen on an update
// stream, such as the news channel of a [Verifier]. Trackers are safe for
// concurrent use.
type Tracker struct {
	mu sync.Mutex
	m  map[endpoint.Endpoint]types.QualifiedEndpointValue
}

// NewTracker returns a new and properly initialized Tracker.
func NewTracker() *Tracker {
	return &Tracker{
		m: map[endpoint.Endpoint]types.QualifiedEndpointValue{},
	}
}

// Update the tracker with a qualified endpoint, adding it in case it is yet
// unknown. Known endpoints only ever move forward in quality:
//   - from unverified to verifying
//   - from verifying to either verified or invalid
//
// Endpoints are told apart by their full address-port pair.
func (t *Tracker) Update(qe types.QualifiedEndpoint) {
	if qe == nil {
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	ep := qe.Endpoint()
	if known, ok := t.m[ep]; ok && qe.Qual() <= known.Quality {
		return
	}
	t.m[ep] = qe.QE()
}

// Get returns all tracked endpoints in endpoint order.
func (t *Tracker) Get() []types.QualifiedEndpointValue {
	t.mu.Lock()
	defer t.mu.Unlock()
	qes := make([]types.QualifiedEndpointValue, 0, len(t.m))
	for _, qe := range t.m {
		qes = append(qes, qe)
	}
	sort.Slice(qes, func(a, b int) bool {
		return qes[a].EP.Less(qes[b].EP)
	})
	return qes
}

// Track updates received from the specified update channel until the channel
// is closed or the context done. Track only returns after processing all
// updates or when the context is done.
func (t *Tracker) Track(ctx context.Context, news <-chan types.QualifiedEndpoint) error {
	for {
		select {
		case qe, ok := <-news:
			if !ok {
				return nil
			}
			t.Update(qe)
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}
