/*
Package verifier implements an endpoint verifier with per-address caching in
order to avoid expensive duplicate verification of the same address when
multiple endpoints differ only in their ports.

The concrete address verification is then carried out by a
[github.com/siemens/ipv4ep/ping.Pinger].
*/
package verifier
