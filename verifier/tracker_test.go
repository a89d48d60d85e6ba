// (c) Siemens AG 2023
//
// SPDX-License-Identifier: MIT

package verifier

import (
	"context"

	"github.com/siemens/ipv4ep/endpoint"
	"github.com/siemens/ipv4ep/types"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("endpoint tracker", func() {

	qe := func(text string, q types.Quality) types.QualifiedEndpoint {
		ep, ok := endpoint.TryParse(text)
		Expect(ok).To(BeTrue())
		return types.NewQualifiedEndpoint(ep, q)
	}

	It("tracks qualities in endpoint order", func() {
		t := NewTracker()
		t.Update(nil)
		t.Update(qe("10.10.0.1", types.Unverified))
		t.Update(qe("10.9.0.1:80", types.Verifying))
		t.Update(qe("10.9.0.1", types.Verified))
		t.Update(qe("10.10.0.1", types.Verifying))
		t.Update(qe("10.9.0.1:80", types.Unverified))

		Expect(t.Get()).To(HaveExactElements(
			And(HaveField("EP", endpoint.MustNew("10.9.0.1", 0)), HaveField("Quality", types.Verified)),
			And(HaveField("EP", endpoint.MustNew("10.9.0.1", 80)), HaveField("Quality", types.Verifying)),
			And(HaveField("EP", endpoint.MustNew("10.10.0.1", 0)), HaveField("Quality", types.Verifying)),
		))
	})

	It("tracks a stream until closed", func() {
		t := NewTracker()
		news := make(chan types.QualifiedEndpoint, 2)
		news <- qe("1.2.3.4:5", types.Verifying)
		news <- qe("1.2.3.4:5", types.Invalid)
		close(news)
		Expect(t.Track(context.Background(), news)).To(Succeed())
		Expect(t.Get()).To(ConsistOf(HaveField("Quality", types.Invalid)))
	})

	It("stops tracking when cancelled", func() {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		Expect(NewTracker().Track(ctx, make(chan types.QualifiedEndpoint))).To(
			MatchError(context.Canceled))
	})

})
