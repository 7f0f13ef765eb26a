package hypervnet

//
// Rendering the PowerShell plan.
//

import (
	"fmt"
	"sort"
	"strings"
)

// psQuote quotes a value for use as a PowerShell single quoted string,
// where a literal single quote is written as two single quotes.
func psQuote(value string) string {
	return "'" + strings.ReplaceAll(value, "'", "''") + "'"
}

// Commands returns the PowerShell commands configuring the adapter
// described by this mapping, in execution order. Set-VMNetworkConfiguration
// is the helper function the runbooks deploy on the Hyper-V hosts.
func (m Mapping) Commands() []string {
	out := []string{
		fmt.Sprintf(
			"$adapter = Get-VMNetworkAdapter -VMName %s | Where-Object { $_.MacAddress -eq %s }",
			psQuote(m.VMName), psQuote(m.MACAddress),
		),
		fmt.Sprintf(
			"Rename-VMNetworkAdapter -VMNetworkAdapter $adapter -NewName %s",
			psQuote(m.AdapterName),
		),
	}
	setcmd := fmt.Sprintf(
		"Set-VMNetworkConfiguration -VMNetworkAdapter $adapter -IPAddress %s -PrefixLength %d",
		psQuote(m.IPAddress), m.PrefixLength,
	)
	if m.Gateway != "" {
		setcmd += fmt.Sprintf(" -DefaultGateway %s", psQuote(m.Gateway))
	}
	if len(m.DNSServers) > 0 {
		quoted := make([]string, 0, len(m.DNSServers))
		for _, server := range m.DNSServers {
			quoted = append(quoted, psQuote(server))
		}
		setcmd += " -DnsServer " + strings.Join(quoted, ",")
	}
	return append(out, setcmd)
}

// RenderPlan renders the whole configuration plan as a PowerShell script.
// The mappings are sorted by VM name and MAC address first, so the output
// does not depend on the ordering of the sheet, and adapters are grouped
// under a comment naming their VM.
func RenderPlan(mappings []Mapping) string {
	sorted := append([]Mapping{}, mappings...)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].VMName != sorted[j].VMName {
			return sorted[i].VMName < sorted[j].VMName
		}
		return sorted[i].MACAddress < sorted[j].MACAddress
	})
	var sb strings.Builder
	previousVM := ""
	for idx, mapping := range sorted {
		if mapping.VMName != previousVM {
			if idx > 0 {
				sb.WriteString("\n")
			}
			fmt.Fprintf(&sb, "# VM: %s\n", mapping.VMName)
			previousVM = mapping.VMName
		} else {
			sb.WriteString("\n")
		}
		for _, command := range mapping.Commands() {
			sb.WriteString(command)
			sb.WriteString("\n")
		}
	}
	return sb.String()
}
