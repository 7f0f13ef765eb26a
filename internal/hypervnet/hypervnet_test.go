package hypervnet

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeMAC(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		expect    string
		shouldErr bool
	}{
		{name: "colon separated", input: "00:15:5d:01:02:03", expect: "00155D010203"},
		{name: "dash separated", input: "00-15-5D-01-02-03", expect: "00155D010203"},
		{name: "dot separated", input: "0015.5d01.0203", expect: "00155D010203"},
		{name: "already canonical", input: "00155D010203", expect: "00155D010203"},
		{name: "lowercase bare", input: "00155d010203", expect: "00155D010203"},
		{name: "too short", input: "00155D0102", shouldErr: true},
		{name: "not hex", input: "00155D01020G", shouldErr: true},
		{name: "empty", input: "", shouldErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NormalizeMAC(tt.input)
			if tt.shouldErr {
				assert.ErrorIs(t, err, ErrInvalidMAC)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.expect, got)
		})
	}
}

func TestParseCSV(t *testing.T) {
	t.Run("with a well formed sheet", func(t *testing.T) {
		// Note: the sheet reorders columns, contains a column we do not
		// know, and mixes the MAC spellings.
		sheet := strings.Join([]string{
			"Owner,VMName,AdapterName,MACAddress,IPAddress,PrefixLength,Gateway,DNSServers",
			"alice,web01,LAN,00:15:5d:01:02:03,10.0.0.10,24,10.0.0.1,10.0.0.53; 10.0.0.54",
			"bob,db01,LAN,00-15-5D-0A-0B-0C,10.0.1.10,24,,",
			"carol,ipv6box,LAN,00155D0F0F0F,fd00::10,64,,fd00::53",
		}, "\n")
		mappings, err := ParseCSV(strings.NewReader(sheet))
		assert.NoError(t, err)
		expect := []Mapping{{
			VMName:       "web01",
			MACAddress:   "00155D010203",
			AdapterName:  "LAN",
			IPAddress:    "10.0.0.10",
			PrefixLength: 24,
			Gateway:      "10.0.0.1",
			DNSServers:   []string{"10.0.0.53", "10.0.0.54"},
		}, {
			VMName:       "db01",
			MACAddress:   "00155D0A0B0C",
			AdapterName:  "LAN",
			IPAddress:    "10.0.1.10",
			PrefixLength: 24,
		}, {
			VMName:       "ipv6box",
			MACAddress:   "00155D0F0F0F",
			AdapterName:  "LAN",
			IPAddress:    "fd00::10",
			PrefixLength: 64,
			DNSServers:   []string{"fd00::53"},
		}}
		assert.Equal(t, expect, mappings)
	})

	t.Run("with a header only sheet", func(t *testing.T) {
		sheet := "VMName,MACAddress,AdapterName,IPAddress,PrefixLength\n"
		mappings, err := ParseCSV(strings.NewReader(sheet))
		assert.NoError(t, err)
		assert.Empty(t, mappings)
	})

	t.Run("with an empty sheet", func(t *testing.T) {
		_, err := ParseCSV(strings.NewReader(""))
		assert.ErrorIs(t, err, ErrEmptySheet)
	})

	t.Run("with a missing required column", func(t *testing.T) {
		sheet := "VMName,MACAddress,AdapterName,IPAddress\nweb01,00155D010203,LAN,10.0.0.10\n"
		_, err := ParseCSV(strings.NewReader(sheet))
		assert.ErrorIs(t, err, ErrMissingColumn)
		assert.Contains(t, err.Error(), "prefixlength")
	})

	t.Run("with an empty VM name", func(t *testing.T) {
		sheet := "VMName,MACAddress,AdapterName,IPAddress,PrefixLength\n,00155D010203,LAN,10.0.0.10,24\n"
		_, err := ParseCSV(strings.NewReader(sheet))
		assert.ErrorIs(t, err, ErrEmptyField)
		assert.Contains(t, err.Error(), "row 2")
	})

	t.Run("with an invalid MAC address", func(t *testing.T) {
		sheet := "VMName,MACAddress,AdapterName,IPAddress,PrefixLength\nweb01,antani,LAN,10.0.0.10,24\n"
		_, err := ParseCSV(strings.NewReader(sheet))
		assert.ErrorIs(t, err, ErrInvalidMAC)
	})

	t.Run("with an invalid IP address", func(t *testing.T) {
		sheet := "VMName,MACAddress,AdapterName,IPAddress,PrefixLength\nweb01,00155D010203,LAN,10.0.0.300,24\n"
		_, err := ParseCSV(strings.NewReader(sheet))
		assert.Error(t, err)
	})

	t.Run("with an out of range prefix length", func(t *testing.T) {
		sheet := "VMName,MACAddress,AdapterName,IPAddress,PrefixLength\nweb01,00155D010203,LAN,10.0.0.10,33\n"
		_, err := ParseCSV(strings.NewReader(sheet))
		assert.ErrorIs(t, err, ErrInvalidPrefixLength)
	})

	t.Run("with a zero prefix length", func(t *testing.T) {
		sheet := "VMName,MACAddress,AdapterName,IPAddress,PrefixLength\nweb01,00155D010203,LAN,10.0.0.10,0\n"
		_, err := ParseCSV(strings.NewReader(sheet))
		assert.ErrorIs(t, err, ErrInvalidPrefixLength)
	})

	t.Run("with an invalid gateway", func(t *testing.T) {
		sheet := "VMName,MACAddress,AdapterName,IPAddress,PrefixLength,Gateway\nweb01,00155D010203,LAN,10.0.0.10,24,not-an-ip\n"
		_, err := ParseCSV(strings.NewReader(sheet))
		assert.Error(t, err)
	})

	t.Run("with an invalid DNS server", func(t *testing.T) {
		sheet := "VMName,MACAddress,AdapterName,IPAddress,PrefixLength,DNSServers\nweb01,00155D010203,LAN,10.0.0.10,24,10.0.0.53;bogus\n"
		_, err := ParseCSV(strings.NewReader(sheet))
		assert.Error(t, err)
	})

	t.Run("with two rows configuring the same adapter", func(t *testing.T) {
		sheet := strings.Join([]string{
			"VMName,MACAddress,AdapterName,IPAddress,PrefixLength",
			"web01,00155D010203,LAN,10.0.0.10,24",
			"web02,00:15:5D:01:02:03,LAN,10.0.0.11,24",
		}, "\n")
		_, err := ParseCSV(strings.NewReader(sheet))
		assert.ErrorIs(t, err, ErrDuplicateMAC)
		assert.Contains(t, err.Error(), "row 3")
	})
}
