// (c) Siemens AG 2023
//
// SPDX-License-Identifier: MIT

package types

import "github.com/siemens/ipv4ep/endpoint"

// QualifiedEndpoint gives access to an endpoint together with the quality of
// its address, and allows deriving updated qualified endpoints.
type QualifiedEndpoint interface {
	Endpoint() endpoint.Endpoint                           // returns the endpoint
	Qual() Quality                                         // returns Quality
	Err() error                                            // if Quality is Invalid, optional additional error information.
	QE() QualifiedEndpointValue                            // returns (a copy of) the qualified endpoint information
	WithNewQuality(q Quality, err error) QualifiedEndpoint // returns a new and updated qualified endpoint
}

// QualifiedEndpointValue is an IPv4 endpoint with the quality of its address,
// such as unverified, verifying, verified, and invalid.
type QualifiedEndpointValue struct {
	EP      endpoint.Endpoint `json:"endpoint"` // address and optional port
	Quality Quality           `json:"quality"`  // quality (validation) state
	err     error             // optional error details for invalid endpoints
}

var _ QualifiedEndpoint = (*QualifiedEndpointValue)(nil)

// NewQualifiedEndpoint returns a new qualified endpoint of the specified
// quality.
func NewQualifiedEndpoint(ep endpoint.Endpoint, q Quality) *QualifiedEndpointValue {
	return &QualifiedEndpointValue{EP: ep, Quality: q}
}

// Endpoint returns the endpoint.
func (qe *QualifiedEndpointValue) Endpoint() endpoint.Endpoint { return qe.EP }

// Qual returns the quality.
func (qe *QualifiedEndpointValue) Qual() Quality { return qe.Quality }

// Err returns an optional error that occurred while trying to verify the
// endpoint's address.
func (qe *QualifiedEndpointValue) Err() error { return qe.err }

// QE returns (a copy of) the qualified endpoint information.
func (qe *QualifiedEndpointValue) QE() QualifiedEndpointValue {
	return *qe
}

// WithNewQuality returns newly qualified endpoint information.
func (qe *QualifiedEndpointValue) WithNewQuality(q Quality, err error) QualifiedEndpoint {
	return &QualifiedEndpointValue{
		EP:      qe.EP,
		Quality: q,
		err:     err,
	}
}
