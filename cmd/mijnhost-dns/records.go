package main

//
// Listing and editing DNS records
//

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/apex/log"
	"github.com/fatih/color"
	"github.com/j81blog/Miscellaneous-Code-And-Files-sub001/internal/model"
	"github.com/spf13/cobra"
)

// recordsSubcommand returns the records subcommand.
func recordsSubcommand(opts *globalOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "records",
		Short: "Manages the DNS records of a domain",
	}
	cmd.AddCommand(recordsListSubcommand(opts))
	cmd.AddCommand(recordsSetSubcommand(opts))
	return cmd
}

// recordsListSubcommand returns the records list subcommand.
func recordsListSubcommand(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "list DOMAIN",
		Short: "Lists the DNS records of a domain",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			_, sess, err := initTool(opts)
			if err != nil {
				log.WithError(err).Fatal("cannot initialize the tool")
			}
			records, err := sess.GetDNSRecords(cmd.Context(), args[0])
			if err != nil {
				log.WithError(err).Fatal("cannot fetch the records")
			}
			printRecords(os.Stdout, records)
		},
	}
}

// recordsSetSubcommand returns the records set subcommand.
func recordsSetSubcommand(opts *globalOptions) *cobra.Command {
	var (
		name  string
		rtype string
		ttl   int
		value string
		yes   bool
	)
	cmd := &cobra.Command{
		Use:   "set DOMAIN",
		Short: "Creates or replaces a single DNS record of a domain",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			domain := args[0]
			_, sess, err := initTool(opts)
			if err != nil {
				log.WithError(err).Fatal("cannot initialize the tool")
			}
			record := model.DNSRecord{
				Type:  strings.ToUpper(rtype),
				Name:  name,
				Value: value,
				TTL:   ttl,
			}
			question := fmt.Sprintf("Replace the %s record for %q in %s?",
				record.Type, record.Name, domain)
			if !yes && !confirm(question) {
				log.Info("aborted")
				return
			}
			if err := sess.UpsertDNSRecord(cmd.Context(), domain, record); err != nil {
				log.WithError(err).Fatal("cannot update the records")
			}
			log.Infof("records of %s updated", domain)
		},
	}
	cmd.Flags().StringVar(&rtype, "type", "", "record type (e.g., A, CNAME, TXT, MX)")
	cmd.Flags().StringVar(&name, "name", "", `record name relative to the domain (use "@" for the apex)`)
	cmd.Flags().StringVar(&value, "value", "", "record value")
	cmd.Flags().IntVar(&ttl, "ttl", 900, "record TTL in seconds")
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "do not ask for confirmation")
	cmd.MarkFlagRequired("type")
	cmd.MarkFlagRequired("name")
	cmd.MarkFlagRequired("value")
	return cmd
}

// printRecords renders the records table.
func printRecords(w io.Writer, records []model.DNSRecord) {
	if len(records) <= 0 {
		fmt.Fprintln(w, "no records")
		return
	}
	bold := color.New(color.Bold)
	bold.Fprintf(w, "%-6s %-30s %-6s %s\n", "TYPE", "NAME", "TTL", "VALUE")
	for _, record := range records {
		fmt.Fprintf(w, "%-6s %-30s %-6d %s\n", record.Type, record.Name, record.TTL, record.Value)
	}
}
