/*
Package ping implements an ICMP-based verifier for the addresses of IPv4
endpoints.

[Pinger] objects support concurrent verification jobs with maximum goroutine
limits. Individual verdicts are streamed as they are decided, to a channel
returned when creating a new Pinger object. The verdicts are
[types.QualifiedEndpoint] values, with a quality of [types.Verified] or
[types.Invalid], but also [types.Verifying] for newly submitted endpoints.

	           +---+
	Endpoint-->| P +-->ch QualifiedEndpoint
	           +---+

⚠ Please note that a [Pinger] initially emits any newly submitted endpoint
before it undergoes verification (with its quality set to “verifying”), as well
as later the final verdict. Especially interactive clients can thus more easily
show all enqueued verifications early.

Only endpoint addresses get pinged; ports are simply carried along.

If needed, a Pinger can read the endpoints it has to verify from an input
channel until this input channel is closed.

	              +---+
	ch Endpoint-->| P +-->ch QualifiedEndpoint
	              +---+

# Acknowledgements

Under its hood, [Pinger] leverages [gammazero/workerpool] as the limiting
goroutine pool and [go-ping/ping] for the ICMP work.

[gammazero/workerpool]: https://github.com/gammazero/workerpool
[go-ping/ping]: https://github.com/go-ping/ping
*/
package ping
