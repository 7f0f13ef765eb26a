package dnscheck

//
// Verifying expected records against observed answers.
//

import (
	"context"
	"errors"
	"net/netip"
	"strings"
	"sync"

	"github.com/j81blog/Miscellaneous-Code-And-Files-sub001/internal/model"
)

// Status classifies the verification outcome for a single record.
type Status string

const (
	// StatusMatch means the observed values include the expected value.
	StatusMatch = Status("match")

	// StatusMismatch means the name resolves to different values.
	StatusMismatch = Status("mismatch")

	// StatusMissing means the server does not serve the record.
	StatusMissing = Status("missing")

	// StatusError means the query itself failed.
	StatusError = Status("error")
)

// Result is the verification outcome for a single record.
type Result struct {
	// Record is the record we verified.
	Record model.DNSRecord

	// Status summarizes the outcome.
	Status Status

	// Observed contains the values the server returned, if any.
	Observed []string

	// Err is the query failure when Status is [StatusError].
	Err error
}

// canonicalTarget lowercases a hostname value and strips the trailing dot.
func canonicalTarget(value string) string {
	return strings.TrimSuffix(strings.ToLower(value), ".")
}

// equalValue compares an expected record value with an observed one using
// per-type conventions: addresses compare as addresses, hostname targets
// compare case insensitively and regardless of the trailing dot, and
// everything else compares verbatim.
func equalValue(recordType, expected, observed string) bool {
	switch strings.ToUpper(recordType) {
	case "A", "AAAA":
		want, err1 := netip.ParseAddr(expected)
		got, err2 := netip.ParseAddr(observed)
		return err1 == nil && err2 == nil && want == got
	case "CNAME", "MX":
		return canonicalTarget(expected) == canonicalTarget(observed)
	default:
		return expected == observed
	}
}

// VerifyRecord checks whether the server serves the given record within
// the given zone and classifies the outcome.
func (r *Resolver) VerifyRecord(ctx context.Context, zone string, record model.DNSRecord) Result {
	out := Result{
		Record:   record,
		Status:   StatusError,
		Observed: nil,
		Err:      nil,
	}
	values, err := r.Lookup(ctx, record.CanonicalName(zone), record.Type)
	if errors.Is(err, ErrNoSuchRecord) {
		out.Status = StatusMissing
		return out
	}
	if err != nil {
		out.Err = err
		return out
	}
	out.Observed = values
	if len(values) <= 0 {
		out.Status = StatusMissing
		return out
	}
	for _, value := range values {
		if equalValue(record.Type, record.Value, value) {
			out.Status = StatusMatch
			return out
		}
	}
	out.Status = StatusMismatch
	return out
}

// VerifyRecords verifies each record within the given zone and returns the
// results in the same order as the records. Queries run concurrently and
// each query is independent: one record failing does not prevent the other
// records from being checked.
func (r *Resolver) VerifyRecords(ctx context.Context, zone string, records []model.DNSRecord) []Result {
	results := make([]Result, len(records))
	wg := &sync.WaitGroup{}
	for idx := range records {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			results[idx] = r.VerifyRecord(ctx, zone, records[idx])
		}(idx)
	}
	wg.Wait()
	return results
}
