package testingx

import (
	"context"
	"errors"
	"net"
	"strconv"
	"strings"
	"sync"

	"github.com/j81blog/Miscellaneous-Code-And-Files-sub001/internal/model"
	"github.com/j81blog/Miscellaneous-Code-And-Files-sub001/internal/runtimex"
	"github.com/miekg/dns"
)

// DNSZone is an in-memory DNS zone answering queries from a fixed
// set of records. Use [NewDNSZone] to construct.
//
// Methods of this struct are safe to call concurrently.
type DNSZone struct {
	// mu provides mutual exclusion.
	mu sync.Mutex

	// records contains the zone records.
	records []model.DNSRecord

	// zone is the zone name.
	zone string
}

// NewDNSZone creates a new [DNSZone] for the given zone name
// serving the given records.
func NewDNSZone(zone string, records ...model.DNSRecord) *DNSZone {
	return &DNSZone{
		mu:      sync.Mutex{},
		records: records,
		zone:    zone,
	}
}

// SetRecords replaces the zone records.
func (z *DNSZone) SetRecords(records []model.DNSRecord) {
	z.mu.Lock()
	z.records = records
	z.mu.Unlock()
}

// dnsQtypeForRecordType maps a record type name to the corresponding
// DNS query type, or zero when there is no mapping.
func dnsQtypeForRecordType(rtype string) uint16 {
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

// newRR creates the resource record answering for the given record,
// or nil when the record value cannot be encoded.
func newRR(name string, qtype uint16, record model.DNSRecord) dns.RR {
	header := dns.RR_Header{
		Name:   name,
		Rrtype: qtype,
		Class:  dns.ClassINET,
		Ttl:    uint32(record.TTL),
	}
	switch qtype {
	case dns.TypeA:
		ip := net.ParseIP(record.Value)
		if ip == nil || ip.To4() == nil {
			return nil
		}
		return &dns.A{Hdr: header, A: ip.To4()}
	case dns.TypeAAAA:
		ip := net.ParseIP(record.Value)
		if ip == nil || ip.To4() != nil {
			return nil
		}
		return &dns.AAAA{Hdr: header, AAAA: ip.To16()}
	case dns.TypeCNAME:
		return &dns.CNAME{Hdr: header, Target: dns.Fqdn(record.Value)}
	case dns.TypeTXT:
		return &dns.TXT{Hdr: header, Txt: []string{record.Value}}
	case dns.TypeMX:
		pref, host, found := strings.Cut(record.Value, " ")
		if !found {
			return nil
		}
		preference, err := strconv.Atoi(pref)
		if err != nil {
			return nil
		}
		return &dns.MX{Hdr: header, Preference: uint16(preference), Mx: dns.Fqdn(host)}
	default:
		return nil
	}
}

// roundTrip responds to a raw DNS query with a raw DNS response.
func (z *DNSZone) roundTrip(rawQuery []byte) ([]byte, error) {
	query := &dns.Msg{}
	if err := query.Unpack(rawQuery); err != nil {
		return nil, err
	}
	runtimex.Assert(len(query.Question) == 1, "expected a single question")
	question := query.Question[0]
	qname := strings.TrimSuffix(strings.ToLower(question.Name), ".")

	response := &dns.Msg{}
	response.SetReply(query)
	response.Authoritative = true

	z.mu.Lock()
	records := append([]model.DNSRecord{}, z.records...)
	zone := z.zone
	z.mu.Unlock()

	for _, record := range records {
		if dnsQtypeForRecordType(record.Type) != question.Qtype {
			continue
		}
		if record.CanonicalName(zone) != qname {
			continue
		}
		if rr := newRR(question.Name, question.Qtype, record); rr != nil {
			response.Answer = append(response.Answer, rr)
		}
	}
	if len(response.Answer) <= 0 {
		response.SetRcode(query, dns.RcodeNameError)
	}
	return response.Pack()
}

// DNSServer is a DNS-over-UDP server answering from a [DNSZone]. The
// zero value of this struct is invalid, use [MustNewDNSServer].
type DNSServer struct {
	// cancel interrupts the mainloop.
	cancel context.CancelFunc

	// closeOnce ensures Close is idempotent.
	closeOnce sync.Once

	// pconn is the UDP socket.
	pconn net.PacketConn

	// wg is joined by Close.
	wg sync.WaitGroup

	// zone answers the queries.
	zone *DNSZone
}

// MustNewDNSServer creates a [DNSServer] listening on 127.0.0.1 with
// a system-chosen port and panics on listen failure.
func MustNewDNSServer(zone *DNSZone) *DNSServer {
	pconn := runtimex.Try1(net.ListenPacket("udp", "127.0.0.1:0"))
	ctx, cancel := context.WithCancel(context.Background())
	srv := &DNSServer{
		cancel:    cancel,
		closeOnce: sync.Once{},
		pconn:     pconn,
		wg:        sync.WaitGroup{},
		zone:      zone,
	}
	srv.wg.Add(1)
	go srv.mainloop(ctx)
	return srv
}

// LocalAddr returns the address the server is listening on.
func (srv *DNSServer) LocalAddr() net.Addr {
	return srv.pconn.LocalAddr()
}

// Close implements io.Closer.
func (srv *DNSServer) Close() (err error) {
	srv.closeOnce.Do(func() {
		// close the socket to interrupt ReadFrom and WriteTo
		err = srv.pconn.Close()

		// interrupt the mainloop
		srv.cancel()

		// wait for the background goroutine to join
		srv.wg.Wait()
	})
	return err
}

func (srv *DNSServer) mainloop(ctx context.Context) {
	// synchronize with Close
	defer srv.wg.Done()

	for {
		// block reading the next query
		buffer := make([]byte, 1<<17)
		count, addr, err := srv.pconn.ReadFrom(buffer)

		// handle errors including the case in which we're closed
		if errors.Is(err, net.ErrClosed) || ctx.Err() != nil {
			return
		}
		if err != nil {
			continue
		}

		// compose the reply, skipping queries we cannot parse
		rawResp, err := srv.zone.roundTrip(buffer[:count])
		if err != nil {
			continue
		}

		// emit the reply ignoring errors; we'll notice ErrClosed
		// in the next ReadFrom call and stop the loop
		_, _ = srv.pconn.WriteTo(rawResp, addr)
	}
}
