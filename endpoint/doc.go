/*
Package endpoint implements an immutable IPv4 endpoint value type consisting
of a dotted-quad address and an optional port.

An [Endpoint] is either the [Empty] sentinel, or a validated address with a
port in the range of [0..65535]. Port 0 is a wildcard that stands for “any
port”. Endpoints are created using [New], [NewWithPort], [Parse], or
[TryParse]; all validation happens right there, so once an Endpoint exists,
none of its methods can fail.

The textual form of an endpoint is the address alone for port 0, and
“address:port” otherwise:

	ep, err := endpoint.Parse("192.168.0.1:8080")
	fmt.Println(ep.Address(), ep.Port()) // 192.168.0.1 8080

# Ordering

[Endpoint.Compare] orders endpoints first by the numeric values of their
address octets (see [github.com/siemens/ipv4ep/ordinal]) and then by port.
[Empty] orders after every other endpoint.

# Wildcard Equality

⚠ [Endpoint.Equals] is not an equivalence relation: an endpoint with the
wildcard port 0 equals any endpoint with the same address, whatever that other
endpoint's port. So 10.0.0.1 equals both 10.0.0.1:80 and 10.0.0.1:443, yet
10.0.0.1:80 does not equal 10.0.0.1:443. This is what allow-list checks want,
but neither what sets nor maps want.

[Endpoint.Hash] as well as Go's == operator both work on the full
address-port pair and thus do not agree with Equals for wildcarded endpoints:
two endpoints may be Equals-equal, yet hash differently. Do not use
Equals-semantics together with maps or hash sets keyed by endpoints when
wildcard ports are in play.
*/
package endpoint
