// (c) Siemens AG 2023
//
// SPDX-License-Identifier: MIT

package endpoint

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// endpointPattern matches “address[:port]” with the address group being a
// syntactical dotted quad and the optional port group a decimal number.
var endpointPattern = regexp.MustCompile(`^(\d{1,3}\.\d{1,3}\.\d{1,3}\.\d{1,3})(?::(\d+))?$`)

// Parse returns the Endpoint for the specified text in “address” or
// “address:port” format, ignoring any surrounding whitespace. It returns an
// error wrapping [ErrFormat] if the text doesn't have this format at all,
// otherwise the errors of [NewWithPort] for invalid octets or ports.
func Parse(text string) (Endpoint, error) {
	trimmed := strings.TrimSpace(text)
	m := endpointPattern.FindStringSubmatch(trimmed)
	if m == nil {
		return Empty, fmt.Errorf("%w: %q is not in address[:port] format",
			ErrFormat, text)
	}
	address, portText := m[1], m[2]
	if portText == "" {
		return New(address)
	}
	port, err := strconv.Atoi(portText)
	if err != nil {
		// only digits here, so the number must be too large.
		return Empty, fmt.Errorf("%w: %s", ErrPortOutOfRange, portText)
	}
	return NewWithPort(address, port)
}

// TryParse works like [Parse], but instead of returning an error it returns
// false together with [Empty] for unparseable text and invalid endpoints.
func TryParse(text string) (Endpoint, bool) {
	ep, err := Parse(text)
	if err != nil {
		return Empty, false
	}
	return ep, true
}
