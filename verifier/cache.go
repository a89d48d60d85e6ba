// (c) Siemens AG 2023
//
// SPDX-License-Identifier: MIT

package verifier

import (
	"context"
	"sync"

	"github.com/siemens/ipv4ep/endpoint"
	"github.com/siemens/ipv4ep/types"
)

// EndpointCache caches qualified endpoints by their addresses so that
// endpoints sharing the same address, yet using different ports, get their
// address verified only once. Verification results are distributed at once to
// all endpoints pending in verification of the same address.
type EndpointCache struct {
	mu sync.Mutex
	m  map[string]qualityUpdateConsumers // IP address -> list of pending endpoint consumers
}

// NewEndpointCache returns a new EndpointCache object.
func NewEndpointCache() *EndpointCache {
	return &EndpointCache{
		m: map[string]qualityUpdateConsumers{},
	}
}

// qualityUpdateConsumers is a list of endpoints that share the same address
// and thus want to learn about any updates in that address' quality.
type qualityUpdateConsumers struct {
	q         types.Quality
	err       error               // optional error reason for invalid quality
	consumers []endpoint.Endpoint // waiting endpoints that want to consume quality updates.
}

// has returns true if the specified endpoint is a registered consumer. It
// compares using ==, as wildcard Equals would mix up different endpoints.
func (qc qualityUpdateConsumers) has(ep endpoint.Endpoint) bool {
	for _, consumer := range qc.consumers {
		if consumer == ep {
			return true
		}
	}
	return false
}

// Update checks the specified qualified endpoint to see if its address is new
// and hasn't yet been cached. In this case it returns true to signal a new
// address to the caller, so that the caller, for instance, can start verifying
// the new address. Update returns false if the address has already been seen.
// If the address is already in the cache and its quality is a final verdict
// of Verified or Invalid, then this update is automatically sent to the news
// consumer for all endpoints with this address.
func (c *EndpointCache) Update(ctx context.Context, qe types.QualifiedEndpoint, news chan<- types.QualifiedEndpoint) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	ep := qe.Endpoint()
	addr := ep.Address()
	qc, ok := c.m[addr]
	if !ok {
		// First time we see this address: a new address always enters in
		// qualities Unverified or Verifying, so there will always be a later
		// quality update to be expected.
		c.m[addr] = qualityUpdateConsumers{
			q:         qe.Qual(),
			consumers: []endpoint.Endpoint{ep},
		}
		select {
		case news <- qe:
		case <-ctx.Done():
		}
		return true
	}
	knownConsumer := qc.has(ep)
	if qe.Qual() <= qc.q {
		// The update is already stale, so only tell this specific endpoint
		// about the most recent quality known.
		if !knownConsumer {
			if qc.q.IsPending() {
				qc.consumers = append(qc.consumers, ep)
				c.m[addr] = qc
			}
			select {
			case news <- qe.WithNewQuality(qc.q, qc.err):
			case <-ctx.Done():
			}
		}
		return false
	}
	qc.q = qe.Qual()
	qc.err = qe.Err()
	var consumers []endpoint.Endpoint
	if qc.q.IsPending() {
		if !knownConsumer {
			qc.consumers = append(qc.consumers, ep)
		}
		consumers = qc.consumers
	} else {
		// Terminal quality reached: notify all registered consumers and clear
		// the list, as later updates for this address are answered directly.
		consumers, qc.consumers = qc.consumers, nil
		if !knownConsumer {
			consumers = append(consumers, ep)
		}
	}
	c.m[addr] = qc
	for _, consumer := range consumers {
		select {
		case news <- qualified(consumer, qc.q, qc.err):
		case <-ctx.Done():
			return false
		}
	}
	return false
}

// Quality returns the most recent quality of the specified address and
// whether the address is known at all.
func (c *EndpointCache) Quality(addr string) (types.Quality, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	qc, ok := c.m[addr]
	return qc.q, ok
}

func qualified(ep endpoint.Endpoint, q types.Quality, err error) types.QualifiedEndpoint {
	return types.NewQualifiedEndpoint(ep, q).WithNewQuality(q, err)
}
