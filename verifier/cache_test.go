// (c) Siemens AG 2023
//
// SPDX-License-Identifier: MIT

package verifier

import (
	"context"
	"errors"

	"github.com/siemens/ipv4ep/endpoint"
	"github.com/siemens/ipv4ep/types"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("endpoint cache", func() {

	var news chan types.QualifiedEndpoint

	BeforeEach(func() {
		news = make(chan types.QualifiedEndpoint, 10)
	})

	qe := func(addr string, port int, q types.Quality) types.QualifiedEndpoint {
		return types.NewQualifiedEndpoint(endpoint.MustNew(addr, port), q)
	}

	drain := func() []string {
		updates := []string{}
		for {
			select {
			case upd := <-news:
				updates = append(updates, upd.Endpoint().String()+" "+upd.Qual().String())
			default:
				return updates
			}
		}
	}

	It("verifies an address only once for all its ports", func() {
		ctx := context.Background()
		c := NewEndpointCache()

		Expect(c.Update(ctx, qe("10.0.0.1", 80, types.Unverified), news)).To(BeTrue())
		Expect(c.Update(ctx, qe("10.0.0.1", 443, types.Unverified), news)).To(BeFalse())
		Expect(drain()).To(Equal([]string{
			"10.0.0.1:80 unverified",
			"10.0.0.1:443 unverified",
		}))

		Expect(c.Update(ctx, qe("10.0.0.1", 80, types.Verifying), news)).To(BeFalse())
		Expect(drain()).To(ConsistOf(
			"10.0.0.1:80 verifying",
			"10.0.0.1:443 verifying",
		))

		Expect(c.Update(ctx, qe("10.0.0.1", 80, types.Verified), news)).To(BeFalse())
		Expect(drain()).To(ConsistOf(
			"10.0.0.1:80 verified",
			"10.0.0.1:443 verified",
		))

		By("answering late-comers directly")
		Expect(c.Update(ctx, qe("10.0.0.1", 0, types.Unverified), news)).To(BeFalse())
		Expect(drain()).To(Equal([]string{"10.0.0.1 verified"}))

		q, ok := c.Quality("10.0.0.1")
		Expect(ok).To(BeTrue())
		Expect(q).To(Equal(types.Verified))
		_, ok = c.Quality("10.0.0.2")
		Expect(ok).To(BeFalse())
	})

	It("ignores stale updates of known endpoints", func() {
		ctx := context.Background()
		c := NewEndpointCache()
		Expect(c.Update(ctx, qe("10.0.0.1", 80, types.Verifying), news)).To(BeTrue())
		Expect(c.Update(ctx, qe("10.0.0.1", 80, types.Unverified), news)).To(BeFalse())
		Expect(drain()).To(Equal([]string{"10.0.0.1:80 verifying"}))
	})

	It("keeps apart different addresses", func() {
		ctx := context.Background()
		c := NewEndpointCache()
		Expect(c.Update(ctx, qe("10.0.0.1", 80, types.Unverified), news)).To(BeTrue())
		Expect(c.Update(ctx, qe("10.0.0.2", 80, types.Unverified), news)).To(BeTrue())
		Expect(c.Update(ctx, qe("10.0.0.2", 80, types.Invalid), news)).To(BeFalse())
		Expect(drain()).To(Equal([]string{
			"10.0.0.1:80 unverified",
			"10.0.0.2:80 unverified",
			"10.0.0.2:80 invalid",
		}))
	})

	It("passes on invalidation reasons", func() {
		ctx := context.Background()
		c := NewEndpointCache()
		boom := errors.New("no replies")
		Expect(c.Update(ctx, qe("10.0.0.1", 80, types.Verifying), news)).To(BeTrue())
		Expect(c.Update(ctx, qe("10.0.0.1", 81, types.Verifying), news)).To(BeFalse())
		drain()
		Expect(c.Update(ctx, qe("10.0.0.1", 80, types.Verifying).WithNewQuality(types.Invalid, boom), news)).
			To(BeFalse())
		Expect(news).To(HaveLen(2))
		for i := 0; i < 2; i++ {
			upd := <-news
			Expect(upd.Qual()).To(Equal(types.Invalid))
			Expect(upd.Err()).To(MatchError(boom))
		}
		Expect(c.Update(ctx, qe("10.0.0.1", 82, types.Unverified), news)).To(BeFalse())
		upd := <-news
		Expect(upd.Err()).To(MatchError(boom))
	})

	It("doesn't block on a cancelled context", func() {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		c := NewEndpointCache()
		blocked := make(chan types.QualifiedEndpoint)
		Expect(c.Update(ctx, qe("10.0.0.1", 80, types.Unverified), blocked)).To(BeTrue())
		Expect(c.Update(ctx, qe("10.0.0.1", 81, types.Unverified), blocked)).To(BeFalse())
	})

})
