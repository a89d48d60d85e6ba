// (c) Siemens AG 2023
//
// SPDX-License-Identifier: MIT

package ping

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/siemens/ipv4ep/endpoint"
	"github.com/siemens/ipv4ep/types"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	. "github.com/onsi/gomega/gleak"
	. "github.com/thediveo/namspill"
)

var _ = Describe("pinger", func() {

	BeforeEach(func() {
		goodgos := Goroutines()
		DeferCleanup(func() {
			Eventually(Goroutines).WithTimeout(3 * time.Second).WithPolling(250 * time.Millisecond).
				ShouldNot(HaveLeaked(goodgos))
			Expect(Tasks()).To(BeUniformlyNamespaced())
		})
	})

	needsRoot := func() {
		if os.Getuid() != 0 {
			Skip("needs root")
		}
	}

	It("handles multiple stops", func() {
		pinger, _ := New(1)
		for i := 0; i < 2; i++ {
			By(fmt.Sprintf("%d round", i+1))
			done := make(chan struct{})
			go func() {
				defer GinkgoRecover()
				pinger.StopWait()
				close(done)
			}()
			Eventually(done).WithTimeout(1 * time.Second).Should(BeClosed())
		}
	})

	It("rejects invalid thresholds", func() {
		Expect(func() { WithThresholdPercentage(101) }).To(Panic())
		Expect(func() { WithThresholdPercentage(100) }).NotTo(Panic())
	})

	It("judges the empty endpoint without pinging", NodeTimeout(10*time.Second), func(ctx context.Context) {
		pinger, courtTV := New(1)
		pinger.Validate(ctx, endpoint.Empty)
		Eventually(courtTV).Should(Receive(HaveValue(HaveField("Quality", types.Verifying))))
		var verdict types.QualifiedEndpoint
		Eventually(courtTV).Should(Receive(&verdict))
		Expect(verdict.Qual()).To(Equal(types.Invalid))
		Expect(verdict.Err()).To(MatchError(ErrNoAddress))
		pinger.StopWait()
		Eventually(courtTV).Should(BeClosed())
	})

	It("verifies an endpoint", NodeTimeout(30*time.Second), func(ctx context.Context) {
		needsRoot()
		ep := endpoint.MustNew("127.0.0.1", 8080)
		pinger, courtTV := New(1, WithInterval(100*time.Millisecond))
		pinger.Validate(ctx, ep)
		Eventually(courtTV).WithTimeout(5 * time.Second).Should(Receive(
			HaveValue(Equal(types.QualifiedEndpointValue{
				EP:      ep,
				Quality: types.Verifying,
			}))))
		Eventually(courtTV).WithTimeout(5 * time.Second).Should(Receive(
			HaveValue(Equal(types.QualifiedEndpointValue{
				EP:      ep,
				Quality: types.Verified,
			}))))
		pinger.StopWait()
		Eventually(courtTV).Should(BeClosed())
	})

	It("cancels endpoint culture", NodeTimeout(30*time.Second), func(ctx context.Context) {
		needsRoot()
		pinger, courtTV := newPinger(1, 0,
			InNetworkNamespace(""),
			WithCount(1),
			WithInterval(500*time.Millisecond),
			WithThresholdPercentage(1))
		defer pinger.StopWait()
		ctx, cancel := context.WithTimeout(ctx, 4*time.Second)
		defer cancel()
		go func() {
			// the intermediate verdict goes into the non-buffered channel, so
			// the validation needs to be kicked off separately.
			pinger.Validate(ctx, endpoint.MustNew("127.0.0.1", 0))
		}()
		Eventually(courtTV).WithTimeout(1 * time.Second).Should(
			Receive(HaveValue(HaveField("Quality", types.Verifying))))
		cancel()
		// Swallow a "racy" verdict that we cannot avoid.
		wecker := time.NewTimer(time.Second)
		select {
		case <-wecker.C:
		case v := <-courtTV:
			if !wecker.Stop() {
				<-wecker.C
			}
			Expect(v).To(HaveField("Quality", types.Invalid))
		}
		Consistently(courtTV).WithTimeout(2 * time.Second).ShouldNot(Receive())
	})

	It("verifies a stream of endpoints", func() {
		needsRoot()
		pinger, courtTV := New(3, WithInterval(100*time.Millisecond))
		inch := make(chan types.QualifiedEndpoint)
		go func() {
			for port := 1; port <= 5; port++ {
				inch <- types.NewQualifiedEndpoint(endpoint.MustNew("127.0.0.1", port), types.Unverified)
			}
			close(inch)
		}()
		go func() {
			pinger.ValidateStream(inch)
			pinger.StopWait()
		}()
		ports := map[int]types.Quality{}
		for qe := range courtTV {
			if !qe.Qual().IsPending() {
				ports[qe.Endpoint().Port()] = qe.Qual()
			}
		}
		Expect(ports).To(HaveLen(5))
		Expect(ports).To(HaveEach(types.Verified))
	})

})
