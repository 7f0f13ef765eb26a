package model

//
// Hosting provider API data model
//

import "strings"

// DNSRecord is a DNS record as managed through a hosting provider API.
type DNSRecord struct {
	// Type is the record type (e.g., "A", "CNAME", "TXT", "MX").
	Type string `json:"type"`

	// Name is the record name. The provider accepts both a name
	// relative to the zone (e.g., "www") and the "@" shorthand
	// standing for the zone apex.
	Name string `json:"name"`

	// Value is the record value (e.g., an IP address for "A").
	Value string `json:"value"`

	// TTL is the record time to live in seconds.
	TTL int `json:"ttl"`
}

// CanonicalName returns the fully qualified name of this record
// within the given zone, lowercase and without trailing dot. The
// "@" shorthand and names already ending with the zone name both
// resolve to the expected fully qualified name.
func (r DNSRecord) CanonicalName(zone string) string {
	zone = strings.TrimSuffix(strings.ToLower(zone), ".")
	name := strings.TrimSuffix(strings.ToLower(r.Name), ".")
	switch {
	case name == "@" || name == "" || name == zone:
		return zone
	case strings.HasSuffix(name, "."+zone):
		return name
	default:
		return name + "." + zone
	}
}

// HostedDomain is a domain name registered with a hosting provider.
type HostedDomain struct {
	// Domain is the domain name.
	Domain string `json:"domain"`

	// RenewalDate is the next renewal date, if known.
	RenewalDate string `json:"renewal_date,omitempty"`

	// Tag is an optional label attached by the user.
	Tag string `json:"tag,omitempty"`
}
