// Package dnscheck verifies what DNS servers actually serve.
//
// After editing records through a hosting provider API it takes a while
// until the authoritative servers and the public resolvers agree with the
// configured zone. This package queries a specific server over UDP and
// compares the observed answers with the records we expect, one query per
// record, so an operator can watch the propagation converge.
package dnscheck

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/j81blog/Miscellaneous-Code-And-Files-sub001/internal/idnax"
	"github.com/j81blog/Miscellaneous-Code-And-Files-sub001/internal/model"
	"github.com/miekg/dns"
)

// DefaultQueryTimeout is the default timeout for a single DNS query.
const DefaultQueryTimeout = 5 * time.Second

// DefaultServerAddr is the DNS server queried unless configured otherwise.
const DefaultServerAddr = "1.1.1.1:53"

var (
	// ErrNoSuchRecord indicates that the server answered NXDOMAIN.
	ErrNoSuchRecord = errors.New("dnscheck: no such record")

	// ErrUnsupportedRecordType indicates that we cannot query for
	// the given record type.
	ErrUnsupportedRecordType = errors.New("dnscheck: unsupported record type")
)

// Resolver queries a specific DNS server over UDP.
//
// The zero value of this struct is invalid, use [NewResolver].
type Resolver struct {
	// Logger is the OPTIONAL logger to use.
	Logger model.Logger

	// ServerAddr is the MANDATORY "address:port" of the DNS server.
	ServerAddr string

	// Timeout is the OPTIONAL timeout for a single query.
	Timeout time.Duration

	// exchange performs the DNS round trip and is only overridden
	// for testing.
	exchange func(ctx context.Context, query *dns.Msg, serverAddr string) (*dns.Msg, error)
}

// NewResolver creates a [Resolver] querying the given "address:port" DNS
// server. The logger defaults to [model.DiscardLogger] when nil.
func NewResolver(serverAddr string, logger model.Logger) *Resolver {
	return &Resolver{
		Logger:     model.ValidLoggerOrDefault(logger),
		ServerAddr: serverAddr,
		Timeout:    DefaultQueryTimeout,
		exchange:   dnsExchange,
	}
}

// dnsExchange performs a DNS round trip using a UDP client.
func dnsExchange(ctx context.Context, query *dns.Msg, serverAddr string) (*dns.Msg, error) {
	client := &dns.Client{}
	resp, _, err := client.ExchangeContext(ctx, query, serverAddr)
	return resp, err
}

// qtypeForRecordType maps a record type name to the corresponding DNS
// query type, or zero when there is no mapping.
func qtypeForRecordType(rtype string) uint16 {
	switch strings.ToUpper(rtype) {
	case "A":
		return dns.TypeA
	case "AAAA":
		return dns.TypeAAAA
	case "CNAME":
		return dns.TypeCNAME
	case "TXT":
		return dns.TypeTXT
	case "MX":
		return dns.TypeMX
	default:
		return 0
	}
}

// valueOfRR extracts a record value using the same textual conventions
// the hosting provider uses, or false when we do not know the type.
func valueOfRR(rr dns.RR) (string, bool) {
	switch rr := rr.(type) {
	case *dns.A:
		return rr.A.String(), true
	case *dns.AAAA:
		return rr.AAAA.String(), true
	case *dns.CNAME:
		return rr.Target, true
	case *dns.TXT:
		return strings.Join(rr.Txt, ""), true
	case *dns.MX:
		return strconv.Itoa(int(rr.Preference)) + " " + rr.Mx, true
	default:
		return "", false
	}
}

// Lookup queries the server for the values of the given fully qualified
// name and record type. Unicode names are normalized to punycode before
// querying. An NXDOMAIN answer yields [ErrNoSuchRecord]; a name that
// exists without records of this type yields an empty list and no error.
func (r *Resolver) Lookup(ctx context.Context, name, recordType string) ([]string, error) {
	qtype := qtypeForRecordType(recordType)
	if qtype == 0 {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedRecordType, recordType)
	}
	ascii, err := idnax.ToASCII(name)
	if err != nil {
		return nil, err
	}
	timeout := r.Timeout
	if timeout <= 0 {
		timeout = DefaultQueryTimeout // as documented
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	query := &dns.Msg{}
	query.SetQuestion(dns.Fqdn(ascii), qtype)
	r.Logger.Debugf("dnscheck: @%s %s %s", r.ServerAddr, strings.ToUpper(recordType), ascii)
	resp, err := r.exchange(ctx, query, r.ServerAddr)
	if err != nil {
		return nil, err
	}
	switch resp.Rcode {
	case dns.RcodeSuccess:
		// fallthrough to reading the answers
	case dns.RcodeNameError:
		return nil, ErrNoSuchRecord
	default:
		return nil, fmt.Errorf("dnscheck: query failed: %s", dns.RcodeToString[resp.Rcode])
	}
	var values []string
	for _, answer := range resp.Answer {
		if value, found := valueOfRR(answer); found {
			values = append(values, value)
		}
	}
	return values, nil
}
