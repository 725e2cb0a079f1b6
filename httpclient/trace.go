package httpclient

import (
	"context"
	"crypto/tls"
	"net/http/httptrace"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// netPhase is a stage of a round trip timed through httptrace.
type netPhase uint8

const (
	phaseDNS netPhase = iota
	phaseConnect
	phaseTLS
	phaseFirstByte
	numPhases
)

// Span event names, indexed by phase.
var phaseEvents = [numPhases]string{
	phaseDNS:       "dns",
	phaseConnect:   "connect",
	phaseTLS:       "tls",
	phaseFirstByte: "first_response_byte",
}

// networkTrace collects phase boundaries for one round trip. A phase is
// reported only when both of its ends were observed.
type networkTrace struct {
	began, ended [numPhases]time.Time

	dnsAddrs []string
	remote   string
	alpn     string
}

func (nt *networkTrace) mark(p netPhase, done bool) {
	if done {
		nt.ended[p] = time.Now()
	} else {
		nt.began[p] = time.Now()
	}
}

func (nt *networkTrace) elapsed(p netPhase) (time.Duration, bool) {
	if nt.began[p].IsZero() || nt.ended[p].IsZero() {
		return 0, false
	}
	return nt.ended[p].Sub(nt.began[p]), true
}

func createClientTrace(nt *networkTrace) *httptrace.ClientTrace {
	return &httptrace.ClientTrace{
		DNSStart: func(httptrace.DNSStartInfo) { nt.mark(phaseDNS, false) },
		DNSDone: func(info httptrace.DNSDoneInfo) {
			nt.mark(phaseDNS, true)
			for _, addr := range info.Addrs {
				nt.dnsAddrs = append(nt.dnsAddrs, addr.String())
			}
		},
		ConnectStart: func(_, _ string) { nt.mark(phaseConnect, false) },
		ConnectDone:  func(_, _ string, _ error) { nt.mark(phaseConnect, true) },
		GotConn: func(info httptrace.GotConnInfo) {
			if info.Conn != nil && info.Conn.RemoteAddr() != nil {
				nt.remote = info.Conn.RemoteAddr().String()
			}
		},
		TLSHandshakeStart: func() { nt.mark(phaseTLS, false) },
		TLSHandshakeDone: func(state tls.ConnectionState, _ error) {
			nt.mark(phaseTLS, true)
			nt.alpn = state.NegotiatedProtocol
		},
		// Time to first byte is measured from the end of the request write.
		WroteRequest:         func(httptrace.WroteRequestInfo) { nt.mark(phaseFirstByte, false) },
		GotFirstResponseByte: func() { nt.mark(phaseFirstByte, true) },
	}
}

func (nt *networkTrace) eventAttributes(p netPhase, d time.Duration) []attribute.KeyValue {
	attrs := []attribute.KeyValue{attribute.Float64("duration_ms", float64(d.Microseconds())/1000)}
	switch p {
	case phaseDNS:
		attrs = append(attrs, attribute.StringSlice("dns.addresses", nt.dnsAddrs))
	case phaseConnect:
		attrs = append(attrs, attribute.String("network.peer.address", nt.remote))
	case phaseTLS:
		attrs = append(attrs, attribute.String("tls.protocol", nt.alpn))
	}
	return attrs
}

// addTraceEvents adds one span event per observed phase, in phase order.
func (nt *networkTrace) addTraceEvents(span trace.Span) {
	for p := netPhase(0); p < numPhases; p++ {
		d, ok := nt.elapsed(p)
		if !ok {
			continue
		}
		span.AddEvent(phaseEvents[p],
			trace.WithTimestamp(nt.ended[p]),
			trace.WithAttributes(nt.eventAttributes(p, d)...),
		)
	}
}

func (nt *networkTrace) recordTimingMetrics(ctx context.Context, m *metrics, attrs []attribute.KeyValue) {
	for p := netPhase(0); p < numPhases; p++ {
		if d, ok := nt.elapsed(p); ok {
			m.recordPhase(ctx, p, d, attrs)
		}
	}
}
