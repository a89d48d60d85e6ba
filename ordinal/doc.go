/*
Package ordinal orders IPv4 addresses in their dotted-quad textual form by the
numeric values of their octets, instead of by their plain string values.

Plain string comparison gets dotted quads wrong as soon as octets differ in
their number of digits:

	"10.10.0.1" < "10.9.0.1"  // by string, but...
	"10.9.0.1"  < "10.10.0.1" // ...by octet value, as it should be.

[Compare] splits both addresses into their four octets and then compares them
octet by octet, from the most significant octet to the least significant one.
The empty string stands in for an absent address and sorts before any present
address.

Please note that [Compare] does not validate addresses: it expects its callers
to hand it validated dotted quads only, such as the addresses of
[github.com/siemens/ipv4ep/endpoint.Endpoint] values. Use [Octets] in case
addresses haven't been validated before.
*/
package ordinal
