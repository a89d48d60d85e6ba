/*
Package types defines the information model for verifying endpoints. It
revolves around [QualifiedEndpoint], which is an
[github.com/siemens/ipv4ep/endpoint.Endpoint] together with the verification
[Quality] of its address.

# Design Rationale

Qualified endpoints get passed around through channels between concurrently
running pingers, verifiers, and their consumers. Instead of mutating them, a
quality update always derives a new qualified endpoint using
[QualifiedEndpoint.WithNewQuality]. The [QualifiedEndpoint] interface thus
only offers getters, which avoids a locking mess as well as tons of subtle
bugs.

If an application embeds [QualifiedEndpointValue] in its own type, it needs to
(re)implement WithNewQuality, as otherwise the embedded method only returns a
stock QualifiedEndpointValue, losing the additional information.
*/
package types
