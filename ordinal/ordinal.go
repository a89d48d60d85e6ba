// (c) Siemens AG 2023
//
// SPDX-License-Identifier: MIT

package ordinal

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// ErrMalformed signals an address that isn't made of four numeric,
// dot-separated octets.
var ErrMalformed = errors.New("malformed dotted-quad address")

// Octets returns the four octet values of the specified dotted-quad address,
// most significant octet first. It returns an error wrapping [ErrMalformed] if
// the address doesn't consist of exactly four dot-separated decimal numbers.
//
// Octets doesn't range-check the individual octet values.
func Octets(addr string) ([4]int, error) {
	var octets [4]int
	fields := strings.Split(addr, ".")
	if len(fields) != len(octets) {
		return octets, fmt.Errorf("%w: %q has %d segments instead of 4",
			ErrMalformed, addr, len(fields))
	}
	for idx, field := range fields {
		octet, err := strconv.Atoi(field)
		if err != nil {
			return octets, fmt.Errorf("%w: %q has non-numeric segment %q",
				ErrMalformed, addr, field)
		}
		octets[idx] = octet
	}
	return octets, nil
}

// Compare returns -1 if the left address orders before the right address, 0 if
// both are the same, and finally +1 if the left address orders after the right
// address. An empty address is considered to be absent and always orders
// before any present address; two absent addresses compare equal.
//
// Compare panics if a present address is malformed; callers must hand in
// validated addresses only.
func Compare(left, right string) int {
	switch {
	case left == "" && right == "":
		return 0
	case left == "":
		return -1
	case right == "":
		return 1
	}
	l := mustOctets(left)
	r := mustOctets(right)
	for idx := range l {
		switch {
		case l[idx] < r[idx]:
			return -1
		case l[idx] > r[idx]:
			return 1
		}
	}
	return 0
}

// Less reports whether the left address orders strictly before the right
// address.
func Less(left, right string) bool {
	return Compare(left, right) < 0
}

// Sort sorts the specified addresses in place by their octet values. The sort
// is stable, so differently written yet numerically equal addresses keep their
// original relative order.
func Sort(addrs []string) {
	sort.SliceStable(addrs, func(a, b int) bool {
		return Compare(addrs[a], addrs[b]) < 0
	})
}

func mustOctets(addr string) [4]int {
	octets, err := Octets(addr)
	if err != nil {
		panic(fmt.Errorf("ordinal.Compare: %w", err))
	}
	return octets
}
