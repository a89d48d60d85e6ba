// (c) Siemens AG 2023
//
// SPDX-License-Identifier: MIT

package endpoint

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Errors returned when creating or parsing endpoints; check using
// [errors.Is].
var (
	ErrInvalidAddress = errors.New("invalid IPv4 address")
	ErrPortOutOfRange = errors.New("port out of range")
	ErrFormat         = errors.New("invalid endpoint format")
)

// Port range limits; port 0 is the wildcard “any port”.
const (
	AnyPort = 0
	MaxPort = 65535
)

// addressPattern matches dotted quads syntactically; octet values get
// range-checked separately.
var addressPattern = regexp.MustCompile(`^(\d{1,3})\.(\d{1,3})\.(\d{1,3})\.(\d{1,3})$`)

// Endpoint is an immutable IPv4 address with an optional port. The zero value
// is the [Empty] endpoint.
//
// ⚠ Endpoint's == and [Endpoint.Hash] consider the full address-port pair,
// whereas [Endpoint.Equals] treats port 0 as a wildcard. See the package
// documentation for details.
type Endpoint struct {
	address string
	port    int
}

// Empty is the “no endpoint” sentinel; it is ordered after all other
// endpoints.
var Empty = Endpoint{}

// New returns a new Endpoint for the specified dotted-quad address, with the
// wildcard port.
func New(address string) (Endpoint, error) {
	return NewWithPort(address, AnyPort)
}

// NewWithPort returns a new Endpoint for the specified dotted-quad address and
// port. It returns an error wrapping [ErrInvalidAddress] if the address is
// blank or not a valid dotted quad, and an error wrapping [ErrPortOutOfRange]
// if the port isn't in [0..65535]. The address is kept exactly as passed in.
func NewWithPort(address string, port int) (Endpoint, error) {
	if err := validateAddress(address); err != nil {
		return Empty, err
	}
	if port < AnyPort || port > MaxPort {
		return Empty, fmt.Errorf("%w: %d not in [%d..%d]",
			ErrPortOutOfRange, port, AnyPort, MaxPort)
	}
	return Endpoint{address: address, port: port}, nil
}

// MustNew returns a new Endpoint for the specified address and port, panicking
// if the address or port is invalid.
func MustNew(address string, port int) Endpoint {
	ep, err := NewWithPort(address, port)
	if err != nil {
		panic(fmt.Errorf("endpoint.MustNew: %w", err))
	}
	return ep
}

func validateAddress(address string) error {
	if strings.TrimSpace(address) == "" {
		return fmt.Errorf("%w: address must not be blank", ErrInvalidAddress)
	}
	octets := addressPattern.FindStringSubmatch(address)
	if octets == nil {
		return fmt.Errorf("%w: %q is not a dotted quad", ErrInvalidAddress, address)
	}
	for _, octet := range octets[1:] {
		// at most three digits, so Atoi cannot fail here.
		if value, _ := strconv.Atoi(octet); value > 255 {
			return fmt.Errorf("%w: octet %s of %q exceeds 255",
				ErrInvalidAddress, octet, address)
		}
	}
	return nil
}

// Address returns the dotted-quad address, or "" for [Empty].
func (e Endpoint) Address() string { return e.address }

// Port returns the port, where 0 means any port.
func (e Endpoint) Port() int { return e.port }

// IsEmpty returns true if this is the [Empty] endpoint.
func (e Endpoint) IsEmpty() bool { return e == Empty }

// IsWildcard returns true if the endpoint has no specific port.
func (e Endpoint) IsWildcard() bool { return e.port == AnyPort }

// String returns the address alone for port 0, and “address:port” otherwise.
func (e Endpoint) String() string {
	if e.port == AnyPort {
		return e.address
	}
	return e.address + ":" + strconv.Itoa(e.port)
}
