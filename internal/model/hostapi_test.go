package model

import "testing"

func TestDNSRecordCanonicalName(t *testing.T) {
	// testcase is a test case for this function.
	type testcase struct {
		// name is the name of the test case.
		name string

		// record is the record to canonicalize.
		record DNSRecord

		// zone is the zone name.
		zone string

		// expect is the expected canonical name.
		expect string
	}

	cases := []testcase{{
		name:   "for the @ shorthand",
		record: DNSRecord{Type: "A", Name: "@", Value: "130.89.148.77"},
		zone:   "example.nl",
		expect: "example.nl",
	}, {
		name:   "for the empty name",
		record: DNSRecord{Type: "A", Name: "", Value: "130.89.148.77"},
		zone:   "example.nl",
		expect: "example.nl",
	}, {
		name:   "for a relative name",
		record: DNSRecord{Type: "CNAME", Name: "www", Value: "example.nl."},
		zone:   "example.nl",
		expect: "www.example.nl",
	}, {
		name:   "for an already qualified name",
		record: DNSRecord{Type: "TXT", Name: "mail.example.nl", Value: "v=spf1 -all"},
		zone:   "example.nl",
		expect: "mail.example.nl",
	}, {
		name:   "for a name equal to the zone",
		record: DNSRecord{Type: "MX", Name: "example.nl", Value: "10 mx.example.nl"},
		zone:   "example.nl",
		expect: "example.nl",
	}, {
		name:   "for mixed case and trailing dots",
		record: DNSRecord{Type: "A", Name: "WWW.Example.NL.", Value: "130.89.148.77"},
		zone:   "Example.NL.",
		expect: "www.example.nl",
	}}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.record.CanonicalName(tc.zone); got != tc.expect {
				t.Fatal("expected", tc.expect, "got", got)
			}
		})
	}
}
