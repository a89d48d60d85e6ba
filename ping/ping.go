// (c) Siemens AG 2023
//
// SPDX-License-Identifier: MIT

package ping

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/siemens/ipv4ep/endpoint"
	"github.com/siemens/ipv4ep/types"

	"github.com/gammazero/workerpool"
	"github.com/go-ping/ping"
	"github.com/thediveo/lxkns/ops"
	"github.com/thediveo/lxkns/ops/relations"
	"github.com/thediveo/lxkns/species"
)

// ErrNoAddress is the verdict reason for the Empty endpoint, which has no
// address to ping.
var ErrNoAddress = errors.New("endpoint without address")

// Pinger verifies endpoint addresses by pinging them and then streams the
// final [types.QualifiedEndpoint] verdicts to a result/output channel (kind of
// “IT-court TV”). Pingers use a goroutine-limited worker pool.
type Pinger struct {
	count               int           // number of pings to send.
	interval            time.Duration // distance between pings.
	thresholdPercentage uint          // percentage of successful pings for valid IP address.
	unprivileged        bool          // if true, uses UDP-based pings instead of privileged ICMPs.

	netns    relations.Relation           // network namespace to ping from, or nil.
	workers  *workerpool.WorkerPool       // workers for running incoming verification jobs concurrently.
	courtTV  chan types.QualifiedEndpoint // results/status stream channel.
	stopOnce sync.Once
}

// PingerOption can be passed to New when creating new Pinger objects.
type PingerOption func(*Pinger)

// New returns a new [Pinger] with a maximum worker pool of the specified size
// as well as a “verdict stream”. The verdict channel will not only send the
// final verdicts, but also the initial and yet unverified endpoints as they
// get submitted for ping court verdicts.
//
// The new pinger defaults to pinging 3 times at intervals of 1s between each
// ping. The validity threshold defaults to 50(%).
//
// The pinger can be configured during creation using several option:
//   - [WithCount]
//   - [WithInterval]
//   - [WithThresholdPercentage]
//   - [AsUnprivileged]
//   - [InNetworkNamespace]
func New(size int, options ...PingerOption) (*Pinger, <-chan types.QualifiedEndpoint) {
	return newPinger(size, size, options...)
}

// newPinger returns a new [Pinger] with a maximum worker pool of the specified
// size and a “verdict stream” with the specified buffer size.
func newPinger(workersize int, chansize int, options ...PingerOption) (*Pinger, <-chan types.QualifiedEndpoint) {
	courtTV := make(chan types.QualifiedEndpoint, chansize)
	pinger := &Pinger{
		count:               3,
		interval:            time.Second,
		thresholdPercentage: 50,
		workers:             workerpool.New(workersize),
		courtTV:             courtTV,
	}
	for _, opt := range options {
		opt(pinger)
	}
	return pinger, courtTV
}

// InNetworkNamespace optionally runs a [Pinger] inside the network namespace
// referenced by the specified filesystem path, such as "/proc/666/ns/net".
// An empty path keeps pinging from the caller's network namespace.
func InNetworkNamespace(netnsref string) PingerOption {
	return func(p *Pinger) {
		if netnsref == "" {
			return
		}
		p.netns = ops.NewTypedNamespacePath(netnsref, species.CLONE_NEWNET)
	}
}

// WithCount sets the number of pings for testing reachability of an address.
func WithCount(count uint) PingerOption {
	return func(p *Pinger) {
		p.count = int(count)
	}
}

// WithInterval sets the interval between consecutive pings.
func WithInterval(interval time.Duration) PingerOption {
	return func(p *Pinger) {
		p.interval = interval
	}
}

// AsUnprivileged tells the Pinger to carry out unprivileged pings using UDP
// instead of ICMP packet.
func AsUnprivileged() PingerOption {
	return func(p *Pinger) {
		p.unprivileged = true
	}
}

// WithThresholdPercentage takes a percentage between 0 and 100 that specifies
// the percentage of successful ping responses required in order to verify the
// pinged address.
func WithThresholdPercentage(threshold uint) PingerOption {
	if threshold > 100 {
		panic(fmt.Errorf("Pinger: threshold must be a percentage between 0 <= threshold <= 100, got: %d",
			threshold))
	}
	return func(p *Pinger) {
		p.thresholdPercentage = threshold
	}
}

// ValidateStream reads endpoints (with optional attachments) to be verified
// from a channel until the channel is closed. It does not return until the
// channel has been closed, so callers typically might run ValidateStream in a
// separate goroutine.
//
// The input channel transmits [types.QualifiedEndpoint] objects, but with the
// Quality field initially ignored.
func (p *Pinger) ValidateStream(ch <-chan types.QualifiedEndpoint) {
	p.ValidateStreamContext(context.Background(), ch)
}

// ValidateStreamContext reads endpoints to be verified from a channel until
// the channel is closed or the specified context gets cancelled.
//
// If the specified context gets cancelled the pending verifications won't be
// echoed to the verdict stream at all, and in particular not even as invalid.
// However, spurious verdicts might still appear on the verdict stream due to
// uncontrollable order of verdict sending and context cancellation detection.
func (p *Pinger) ValidateStreamContext(ctx context.Context, ch <-chan types.QualifiedEndpoint) {
	for {
		select {
		case qe, ok := <-ch:
			if !ok {
				return
			}
			p.validate(ctx, qe.WithNewQuality(types.Verifying, nil))
		case <-ctx.Done():
			return
		}
	}
}

// Validate the address of the specified endpoint by pinging it. The verdict is
// then sent to the channel returned together with the newly created [Pinger].
// Additionally, an initial notice for the endpoint to be verified is also sent
// beforehand.
//
// Only the endpoint's address gets pinged, its port doesn't matter. An address
// is considered to be invalid if the percentage of successfully received ping
// replies doesn't reach or cross the Pinger's threshold.
//
// The verification is automatically aborted when the specified context either
// meets its deadline or gets cancelled. The endpoint is then considered to be
// Invalid.
func (p *Pinger) Validate(ctx context.Context, ep endpoint.Endpoint) {
	p.validate(ctx, types.NewQualifiedEndpoint(ep, types.Verifying))
}

// ValidateQE validates the specified [types.QualifiedEndpoint] and works
// otherwise like [Pinger.Validate] for a plain endpoint.
func (p *Pinger) ValidateQE(ctx context.Context, qe types.QualifiedEndpoint) {
	p.validate(ctx, qe.WithNewQuality(types.Verifying, nil))
}

// validate does the real work of pinging a (yet-un-)qualified endpoint. In
// order to avoid an unnecessary [types.QualifiedEndpoint] clone, the caller is
// expected to pass in a qualified endpoint with its quality already set to
// Verifying.
func (p *Pinger) validate(ctx context.Context, verdict types.QualifiedEndpoint) {
	// Allow cancelling a blocked verdict send to avoid leaking goroutines. As
	// select picks randomly between ctx.Done() and a ready verdict channel we
	// cannot guarantuee that either never a verdict is sent or the verdict gets
	// always sent.
	select {
	case p.courtTV <- verdict: // not yet the final one ;)
	case <-ctx.Done():
		return
	}
	p.workers.Submit(func() {
		verdict := verdict.WithNewQuality(types.Invalid, nil)
		defer func() {
			select {
			case p.courtTV <- verdict: // final one this time.
			case <-ctx.Done():
				return
			}
		}()
		addr := verdict.Endpoint().Address()
		if addr == "" {
			verdict = verdict.WithNewQuality(types.Invalid, ErrNoAddress)
			return
		}
		ping := func() interface{} {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}

			pinger, err := ping.NewPinger(addr)
			if err != nil {
				return err
			}
			pinger.SetPrivileged(!p.unprivileged)
			pinger.Count = p.count
			pinger.Interval = p.interval
			// Always limit waiting for the last ping to get reflected (or not)!
			pinger.Timeout = time.Duration(int64(p.interval) * int64(p.count+2))
			// Stop the pinger as soon as the context is done; closing done
			// ends this monitoring instead.
			done := make(chan struct{})
			defer close(done)
			go func() {
				select {
				case <-ctx.Done():
					pinger.Stop()
				case <-done:
				}
			}()
			if err = pinger.Run(); err != nil {
				return err
			}
			if err := ctx.Err(); err != nil {
				return err
			}
			stats := pinger.Statistics()
			if stats.PacketsRecv < pinger.Count*int(p.thresholdPercentage)/100 {
				return errors.New("no replies or too many losses")
			}
			verdict = verdict.WithNewQuality(types.Verified, nil)
			return nil
		}
		// lxkns' ops.Execute differentiates between a namespace switching
		// error and the result of the function called in the switched
		// namespace, which here is the ping error.
		var err error
		if p.netns != nil {
			var pingerr interface{}
			pingerr, err = ops.Execute(ping, p.netns)
			if err == nil && pingerr != nil {
				if fnerr, ok := pingerr.(error); ok {
					err = fnerr
				}
			}
		} else {
			if res := ping(); res != nil {
				err = res.(error)
			}
		}
		if err != nil {
			verdict = verdict.WithNewQuality(verdict.Qual(), err)
		}
	})
}

// StopWait waits for all queued tasks to get processed and then finally closes
// the court TV channel. StopWait can be called multiple times.
func (p *Pinger) StopWait() {
	p.stopOnce.Do(func() {
		p.workers.StopWait()
		close(p.courtTV)
	})
}
