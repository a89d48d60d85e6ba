// (c) Siemens AG 2023
//
// SPDX-License-Identifier: MIT

package verifier

import (
	"context"

	"github.com/siemens/ipv4ep/ping"
	"github.com/siemens/ipv4ep/types"

	"github.com/thediveo/lxkns/log"
)

// Verifier verifies a stream of endpoints, caching verification results per
// address so that endpoints sharing an address get pinged only once. It uses
// a Pinger for verifying the addresses.
type Verifier struct {
	news    chan<- types.QualifiedEndpoint
	pinger  *ping.Pinger
	checked <-chan types.QualifiedEndpoint
}

// New returns a new Verifier that verifies endpoint addresses from the
// perspective of the specified network namespace with a maximum number of
// parallel verification workers. If the network namespace reference netnsref
// is zero, then the verification will be carried out in the process' original
// network namespace. Additional pinger options tune the pings.
func New(size int, netnsref string, options ...ping.PingerOption) (*Verifier, <-chan types.QualifiedEndpoint) {
	news := make(chan types.QualifiedEndpoint, size)
	options = append([]ping.PingerOption{ping.InNetworkNamespace(netnsref)}, options...)
	pinger, checked := ping.New(size, options...)
	return &Verifier{
		news:    news,
		pinger:  pinger,
		checked: checked,
	}, news
}

// Verify verifies the incoming stream of endpoints until the input channel is
// closed. It then waits for all enqueued verification tasks to complete and
// then closes the output channel returned by New, and finally returns.
//
// Empty endpoints are passed on immediately as being invalid.
//
// In case the specified context is cancelled, then Verify will stop pulling off
// new verification tasks and return as soon as possible, closing the output
// channel.
func (v *Verifier) Verify(ctx context.Context, in <-chan types.QualifiedEndpoint) {
	cache := NewEndpointCache()
	// As soon as new verification results trickle in, update the cache so that
	// the cache can inform the consumer of this Verifier of the results.
	done := make(chan struct{})
	go func() {
	slurpVerdicts:
		for {
			select {
			case qe, ok := <-v.checked:
				if !ok {
					break slurpVerdicts
				}
				log.Debugf("address %s of %s is %s", qe.Endpoint().Address(), qe.Endpoint(), qe.Qual())
				cache.Update(ctx, qe, v.news)
			case <-ctx.Done():
				break slurpVerdicts
			}
		}
		close(done)
	}()
	// Start verification only the first time an address is seen. Endpoints
	// with addresses already seen will be directly served if their quality
	// has already been decided, or are otherwise put on hold until the
	// verification result becomes available.
slurpEndpoints:
	for {
		select {
		case qe, ok := <-in:
			if !ok {
				break slurpEndpoints
			}
			if qe.Endpoint().IsEmpty() {
				select {
				case v.news <- qe.WithNewQuality(types.Invalid, ping.ErrNoAddress):
				case <-ctx.Done():
					break slurpEndpoints
				}
				continue
			}
			if cache.Update(ctx, qe, v.news) {
				v.pinger.ValidateQE(ctx, qe)
			}
		case <-ctx.Done():
			break slurpEndpoints
		}
	}
	v.pinger.StopWait()
	// wait for all verification results to have come through and passed on
	// before calling it a day; when the context is done, the slurper bails out
	// early on its own and must not send anymore after closing news.
	<-done
	close(v.news)
}
