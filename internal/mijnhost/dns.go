package mijnhost

//
// Managing the DNS records of a domain.
//

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/j81blog/Miscellaneous-Code-And-Files-sub001/internal/httpapi"
	"github.com/j81blog/Miscellaneous-Code-And-Files-sub001/internal/idnax"
	"github.com/j81blog/Miscellaneous-Code-And-Files-sub001/internal/model"
)

// recordsData is the data payload of the DNS records listing API.
type recordsData struct {
	Domain  string            `json:"domain"`
	Records []model.DNSRecord `json:"records"`
}

// putRecordsRequest is the request body of the records update API.
type putRecordsRequest struct {
	Records []model.DNSRecord `json:"records"`
}

// apiPathForDomain returns the API path addressing the DNS records of
// the given domain. We normalize the domain to its punycode form here,
// so callers may pass unicode domain names directly.
func apiPathForDomain(domain string) (string, error) {
	ascii, err := idnax.ToASCII(domain)
	if err != nil {
		return "", err
	}
	return "/domains/" + ascii + "/dns", nil
}

// GetDNSRecords returns the DNS records currently configured for the given
// domain. A domain without records yields an empty list and no error.
func (s *Session) GetDNSRecords(ctx context.Context, domain string) ([]model.DNSRecord, error) {
	path, err := apiPathForDomain(domain)
	if err != nil {
		return nil, err
	}
	desc := httpapi.NewGETJSONDescriptor(path).WithBodyLogging(s.LogBody)
	data, err := call[recordsData](ctx, s, desc)
	if err != nil {
		return nil, err
	}
	return data.UnwrapOr(recordsData{}).Records, nil
}

// PutDNSRecords replaces the whole DNS records set of the given domain. The
// provider acknowledges a successful update with a null data payload, hence
// this operation only returns an error value.
func (s *Session) PutDNSRecords(ctx context.Context, domain string, records []model.DNSRecord) error {
	path, err := apiPathForDomain(domain)
	if err != nil {
		return err
	}
	desc, err := httpapi.NewPUTJSONWithJSONResponseDescriptor(path, &putRecordsRequest{
		Records: records,
	})
	if err != nil {
		return err
	}
	_, err = call[json.RawMessage](ctx, s, desc.WithBodyLogging(s.LogBody))
	return err
}

// mergeRecord returns a copy of records where record replaces the entry
// with the same type and canonical name within zone, or is appended when
// no entry matches.
func mergeRecord(zone string, records []model.DNSRecord, record model.DNSRecord) []model.DNSRecord {
	out := []model.DNSRecord{}
	replaced := false
	for _, cur := range records {
		sameName := cur.CanonicalName(zone) == record.CanonicalName(zone)
		if sameName && strings.EqualFold(cur.Type, record.Type) {
			out = append(out, record)
			replaced = true
			continue
		}
		out = append(out, cur)
	}
	if !replaced {
		out = append(out, record)
	}
	return out
}

// UpsertDNSRecord updates the DNS record matching the type and name of the
// given record, or appends it when no record matches. Names are matched by
// their canonical form within the zone, so "www" and "www.example.nl." are
// the same record.
//
// This operation is a read-modify-write without any locking on the provider
// side: concurrent upserts to the same domain may lose updates.
func (s *Session) UpsertDNSRecord(ctx context.Context, domain string, record model.DNSRecord) error {
	zone, err := idnax.ToASCII(domain)
	if err != nil {
		return err
	}
	records, err := s.GetDNSRecords(ctx, zone)
	if err != nil {
		return err
	}
	return s.PutDNSRecords(ctx, zone, mergeRecord(zone, records, record))
}
