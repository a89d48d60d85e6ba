// (c) Siemens AG 2023
//
// SPDX-License-Identifier: MIT

package endpoint

import "encoding"

var (
	_ encoding.TextMarshaler   = Endpoint{}
	_ encoding.TextUnmarshaler = (*Endpoint)(nil)
)

// MarshalText returns the textual representation of an Endpoint, as returned
// by [Endpoint.String]. The Empty endpoint marshals to empty text.
func (e Endpoint) MarshalText() ([]byte, error) {
	return []byte(e.String()), nil
}

// UnmarshalText sets the Endpoint to the endpoint parsed from the specified
// text, see also [Parse]. Empty text unmarshals into [Empty]. On failure, the
// Endpoint is left untouched.
func (e *Endpoint) UnmarshalText(text []byte) error {
	if len(text) == 0 {
		*e = Empty
		return nil
	}
	ep, err := Parse(string(text))
	if err != nil {
		return err
	}
	*e = ep
	return nil
}
