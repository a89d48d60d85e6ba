// (c) Siemens AG 2023
//
// SPDX-License-Identifier: MIT

package main

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/siemens/ipv4ep/endpoint"
	"github.com/siemens/ipv4ep/ping"
	"github.com/siemens/ipv4ep/types"
	"github.com/siemens/ipv4ep/verifier"

	"github.com/gosuri/uilive"
	"github.com/spf13/cobra"
	"github.com/thediveo/lxkns/log"
)

// verifyOptions are the CLI flags of the verify command.
type verifyOptions struct {
	workers         uint
	count           uint
	interval        time.Duration
	spinnerInterval time.Duration
	unprivileged    bool
	netns           string
}

func newVerifyCmd() *cobra.Command {
	opts := &verifyOptions{}
	cmd := &cobra.Command{
		Use:   "verify [flags] endpoint...",
		Short: "verify endpoint addresses by pinging them",
		Args:  cobra.MinimumNArgs(1),
		PreRunE: func(_ *cobra.Command, _ []string) error {
			if opts.workers < 1 || opts.workers > 10 {
				return fmt.Errorf("--workers out of range [1..10]")
			}
			if opts.count < 1 {
				return fmt.Errorf("--count must be at least 1")
			}
			if opts.spinnerInterval < 10*time.Millisecond {
				return fmt.Errorf("--spinner must be at least 10ms")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			eps, err := parseAll(args)
			if err != nil {
				return err
			}
			return VerifyAndReport(cmd.Context(), cmd.OutOrStdout(), eps, opts)
		},
	}
	flags := cmd.Flags()
	flags.UintVar(&opts.workers, "workers", 5, "number of ping workers")
	flags.UintVar(&opts.count, "count", 3, "number of pings per address")
	flags.DurationVar(&opts.interval, "interval", time.Second, "interval between pings")
	flags.DurationVar(&opts.spinnerInterval, "spinner", 100*time.Millisecond, "spinner interval")
	flags.BoolVar(&opts.unprivileged, "unprivileged", false, "use unprivileged UDP pings")
	flags.StringVar(&opts.netns, "netns", "", "ping from the network namespace at this path, such as /proc/666/ns/net")
	return cmd
}

// VerifyAndReport verifies the addresses of the specified endpoints by pinging
// them, while rendering a live report to the specified writer. Endpoints
// sharing the same address get pinged only once.
func VerifyAndReport(ctx context.Context, w io.Writer, eps []endpoint.Endpoint, opts *verifyOptions) error {
	if ctx == nil {
		ctx = context.Background()
	}
	pingopts := []ping.PingerOption{
		ping.WithCount(opts.count),
		ping.WithInterval(opts.interval),
	}
	if opts.unprivileged {
		pingopts = append(pingopts, ping.AsUnprivileged())
	}
	v, news := verifier.New(int(opts.workers), opts.netns, pingopts...)

	tracker := verifier.NewTracker()
	trackingDone := make(chan struct{})
	renderingDone := make(chan struct{})

	// Avoid uilive's background updating via Start(), as it might flush with
	// the rendering only half-done; flush explicitly after each rendering
	// instead.
	go func() {
		term := uilive.New()
		term.Out = w
		renderer := newRenderer(term, opts.spinnerInterval)
		defer func() {
			renderData(term, renderer, tracker)
			renderer.Stop()
			close(renderingDone)
		}()
		renderData(term, renderer, tracker)
		ticker := time.NewTicker(20 * time.Millisecond)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				renderData(term, renderer, tracker)
			case <-trackingDone:
				return
			}
		}
	}()

	in := make(chan types.QualifiedEndpoint)
	go v.Verify(ctx, in)
	go func() {
		_ = tracker.Track(ctx, news)
		close(trackingDone)
	}()
	for _, ep := range eps {
		log.Debugf("submitting %s for verification", ep)
		select {
		case in <- types.NewQualifiedEndpoint(ep, types.Unverified):
		case <-ctx.Done():
		}
	}
	close(in)
	<-renderingDone
	return ctx.Err()
}

// renderData gets the current endpoint qualities and then renders (and
// flushes) them to the terminal.
func renderData(term *uilive.Writer, r *renderer, data *verifier.Tracker) {
	r.Render(data.Get())
	term.Flush()
}
