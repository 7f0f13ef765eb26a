package main

//
// Verifying served records
//

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/apex/log"
	"github.com/fatih/color"
	"github.com/j81blog/Miscellaneous-Code-And-Files-sub001/internal/dnscheck"
	"github.com/spf13/cobra"
)

// verifySubcommand returns the verify subcommand.
func verifySubcommand(opts *globalOptions) *cobra.Command {
	var server string
	cmd := &cobra.Command{
		Use:   "verify DOMAIN",
		Short: "Checks whether a DNS server serves the configured records",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			domain := args[0]
			config, sess, err := initTool(opts)
			if err != nil {
				log.WithError(err).Fatal("cannot initialize the tool")
			}
			records, err := sess.GetDNSRecords(cmd.Context(), domain)
			if err != nil {
				log.WithError(err).Fatal("cannot fetch the records")
			}
			serverAddr := server
			if serverAddr == "" {
				serverAddr = config.DNSCheck.Server
			}
			reso := dnscheck.NewResolver(serverAddr, log.Log)
			results := reso.VerifyRecords(cmd.Context(), domain, records)
			if failures := printResults(os.Stdout, results); failures > 0 {
				log.Errorf("%d of %d records do not match", failures, len(results))
				os.Exit(1)
			}
			log.Infof("all %d records match", len(results))
		},
	}
	cmd.Flags().StringVar(&server, "server", "", "DNS server to query (overrides the settings file)")
	return cmd
}

// printResults renders the verification results table and returns the
// number of records that did not match.
func printResults(w io.Writer, results []dnscheck.Result) (failures int) {
	bold := color.New(color.Bold)
	bold.Fprintf(w, "%-10s %-6s %-30s %s\n", "STATUS", "TYPE", "NAME", "DETAIL")
	for _, result := range results {
		if result.Status != dnscheck.StatusMatch {
			failures++
		}
		fmt.Fprintf(w, "%s %-6s %-30s %s\n", statusLabel(result.Status),
			result.Record.Type, result.Record.Name, resultDetail(result))
	}
	return
}

// statusLabel renders a colored fixed width status label.
func statusLabel(status dnscheck.Status) string {
	label := fmt.Sprintf("%-10s", strings.ToUpper(string(status)))
	switch status {
	case dnscheck.StatusMatch:
		return color.GreenString(label)
	case dnscheck.StatusMissing:
		return color.YellowString(label)
	default:
		return color.RedString(label)
	}
}

// resultDetail explains the verification result in one line.
func resultDetail(result dnscheck.Result) string {
	switch result.Status {
	case dnscheck.StatusMatch:
		return result.Record.Value
	case dnscheck.StatusMismatch:
		return fmt.Sprintf("expected %q, observed %v", result.Record.Value, result.Observed)
	case dnscheck.StatusMissing:
		return fmt.Sprintf("expected %q, no answer", result.Record.Value)
	default:
		return result.Err.Error()
	}
}
