// Package hypervnet builds Hyper-V network configuration plans.
//
// The input is a CSV sheet mapping virtual machine adapters, identified
// by MAC address, to the adapter name and IP configuration they should
// use. This is the sheet an operator fills while racking a new cluster.
// Parsing validates every row up front so a typo in the sheet surfaces
// before anything runs against a host.
//
// Applying the configuration requires Windows and the Hyper-V cmdlets,
// so this package does not talk to any host: it renders the PowerShell
// commands that apply the plan, and the operator reviews and runs them
// on the Hyper-V side.
package hypervnet

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"net/netip"
	"regexp"
	"strconv"
	"strings"
)

var (
	// ErrEmptySheet indicates that the CSV sheet has no header row.
	ErrEmptySheet = errors.New("hypervnet: empty CSV sheet")

	// ErrMissingColumn indicates that the CSV header lacks a
	// required column.
	ErrMissingColumn = errors.New("hypervnet: missing required column")

	// ErrEmptyField indicates that a required field is empty.
	ErrEmptyField = errors.New("hypervnet: empty required field")

	// ErrInvalidMAC indicates that we could not parse a MAC address.
	ErrInvalidMAC = errors.New("hypervnet: invalid MAC address")

	// ErrInvalidPrefixLength indicates that the prefix length is out
	// of range for the address family.
	ErrInvalidPrefixLength = errors.New("hypervnet: invalid prefix length")

	// ErrDuplicateMAC indicates that two rows configure the same
	// adapter.
	ErrDuplicateMAC = errors.New("hypervnet: duplicate MAC address")
)

// Mapping is one row of the sheet: the desired network configuration
// of a single virtual machine adapter identified by its MAC address.
type Mapping struct {
	// VMName is the virtual machine name.
	VMName string

	// MACAddress is the adapter MAC in canonical form (see NormalizeMAC).
	MACAddress string

	// AdapterName is the name to assign to the adapter.
	AdapterName string

	// IPAddress is the address to configure.
	IPAddress string

	// PrefixLength is the network prefix length.
	PrefixLength int

	// Gateway is the OPTIONAL default gateway.
	Gateway string

	// DNSServers OPTIONALLY lists the DNS servers to configure.
	DNSServers []string
}

// macRegexp matches a MAC address in canonical form.
var macRegexp = regexp.MustCompile(`^[0-9A-F]{12}$`)

// macSeparators removes the separators found in the common MAC spellings.
var macSeparators = strings.NewReplacer(":", "", "-", "", ".", "", " ", "")

// NormalizeMAC returns the canonical form of a MAC address: twelve
// uppercase hex digits without separators, which is the form Hyper-V
// itself reports. We accept colon, dash, dot, and space separated input.
func NormalizeMAC(mac string) (string, error) {
	cleaned := strings.ToUpper(macSeparators.Replace(mac))
	if !macRegexp.MatchString(cleaned) {
		return "", fmt.Errorf("%w: %q", ErrInvalidMAC, mac)
	}
	return cleaned, nil
}

// requiredColumns lists the columns every sheet must contain. The header
// match is case insensitive and ignores surrounding whitespace.
var requiredColumns = []string{
	"vmname",
	"macaddress",
	"adaptername",
	"ipaddress",
	"prefixlength",
}

// ParseCSV reads adapter mappings from a CSV sheet. The first row is the
// header and drives the column positions, so the sheet may order columns
// freely and carry extra columns we ignore. The gateway and dnsservers
// columns are optional; the dnsservers cell lists addresses separated
// by semicolons.
func ParseCSV(r io.Reader) ([]Mapping, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(rows) < 1 {
		return nil, ErrEmptySheet
	}
	columns := make(map[string]int)
	for idx, name := range rows[0] {
		columns[strings.ToLower(strings.TrimSpace(name))] = idx
	}
	for _, name := range requiredColumns {
		if _, found := columns[name]; !found {
			return nil, fmt.Errorf("%w: %s", ErrMissingColumn, name)
		}
	}
	field := func(row []string, name string) string {
		idx, found := columns[name]
		if !found || idx >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[idx])
	}
	var mappings []Mapping
	seen := make(map[string]bool)
	for idx, row := range rows[1:] {
		mapping, err := parseRow(row, field)
		if err != nil {
			// row numbers are 1 based and include the header
			return nil, fmt.Errorf("row %d: %w", idx+2, err)
		}
		if seen[mapping.MACAddress] {
			return nil, fmt.Errorf("row %d: %w: %s", idx+2, ErrDuplicateMAC, mapping.MACAddress)
		}
		seen[mapping.MACAddress] = true
		mappings = append(mappings, mapping)
	}
	return mappings, nil
}

// parseRow parses and validates a single data row.
func parseRow(row []string, field func(row []string, name string) string) (Mapping, error) {
	var zero Mapping
	vmName := field(row, "vmname")
	if vmName == "" {
		return zero, fmt.Errorf("%w: vmname", ErrEmptyField)
	}
	mac, err := NormalizeMAC(field(row, "macaddress"))
	if err != nil {
		return zero, err
	}
	adapterName := field(row, "adaptername")
	if adapterName == "" {
		return zero, fmt.Errorf("%w: adaptername", ErrEmptyField)
	}
	addr, err := netip.ParseAddr(field(row, "ipaddress"))
	if err != nil {
		return zero, err
	}
	prefixLength, err := strconv.Atoi(field(row, "prefixlength"))
	if err != nil {
		return zero, err
	}
	maxPrefix := 128
	if addr.Is4() {
		maxPrefix = 32
	}
	if prefixLength < 1 || prefixLength > maxPrefix {
		return zero, fmt.Errorf("%w: %d", ErrInvalidPrefixLength, prefixLength)
	}
	mapping := Mapping{
		VMName:       vmName,
		MACAddress:   mac,
		AdapterName:  adapterName,
		IPAddress:    addr.String(),
		PrefixLength: prefixLength,
		Gateway:      "",
		DNSServers:   nil,
	}
	if gateway := field(row, "gateway"); gateway != "" {
		addr, err := netip.ParseAddr(gateway)
		if err != nil {
			return zero, err
		}
		mapping.Gateway = addr.String()
	}
	if servers := field(row, "dnsservers"); servers != "" {
		for _, server := range strings.Split(servers, ";") {
			server = strings.TrimSpace(server)
			if server == "" {
				continue
			}
			addr, err := netip.ParseAddr(server)
			if err != nil {
				return zero, err
			}
			mapping.DNSServers = append(mapping.DNSServers, addr.String())
		}
	}
	return mapping, nil
}
