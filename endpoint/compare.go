// (c) Siemens AG 2023
//
// SPDX-License-Identifier: MIT

package endpoint

import (
	"sort"

	"github.com/siemens/ipv4ep/ordinal"

	"github.com/cespare/xxhash/v2"
)

// Compare returns -1 if this endpoint orders before the other endpoint, 0 if
// both order the same, and +1 if this endpoint orders after the other one.
// Endpoints order by their addresses' octet values first and then by their
// ports; [Empty] orders after all other endpoints.
func (e Endpoint) Compare(other Endpoint) int {
	switch emptyE, emptyO := e.IsEmpty(), other.IsEmpty(); {
	case emptyE && emptyO:
		return 0
	case emptyE:
		return 1
	case emptyO:
		return -1
	}
	if c := ordinal.Compare(e.address, other.address); c != 0 {
		return c
	}
	switch {
	case e.port < other.port:
		return -1
	case e.port > other.port:
		return 1
	}
	return 0
}

// Less reports whether this endpoint orders strictly before the other one.
func (e Endpoint) Less(other Endpoint) bool { return e.Compare(other) < 0 }

// LessOrEqual reports whether this endpoint doesn't order after the other one.
func (e Endpoint) LessOrEqual(other Endpoint) bool { return e.Compare(other) <= 0 }

// Greater reports whether this endpoint orders strictly after the other one.
func (e Endpoint) Greater(other Endpoint) bool { return e.Compare(other) > 0 }

// GreaterOrEqual reports whether this endpoint doesn't order before the other
// one.
func (e Endpoint) GreaterOrEqual(other Endpoint) bool { return e.Compare(other) >= 0 }

// Equals returns true if both endpoints have the same address and either
// endpoint has the wildcard port or both ports are the same.
//
// ⚠ Equals is not transitive: 10.0.0.1 equals 10.0.0.1:80 and 10.0.0.1:443,
// but 10.0.0.1:80 doesn't equal 10.0.0.1:443. Neither does Equals agree with
// [Endpoint.Hash].
func (e Endpoint) Equals(other Endpoint) bool {
	if e.address != other.address {
		return false
	}
	return e.port == AnyPort || other.port == AnyPort || e.port == other.port
}

// Hash returns a hash over the full address-port pair.
//
// ⚠ Hash doesn't agree with [Endpoint.Equals] whenever a wildcard port is
// involved: 10.0.0.1 and 10.0.0.1:80 are Equals-equal, yet hash differently.
func (e Endpoint) Hash() uint64 {
	// String is unambiguous, as addresses never contain colons.
	return xxhash.Sum64String(e.String())
}

// Sort sorts the specified endpoints in place in [Endpoint.Compare] order.
func Sort(eps []Endpoint) {
	sort.SliceStable(eps, func(a, b int) bool {
		return eps[a].Compare(eps[b]) < 0
	})
}
