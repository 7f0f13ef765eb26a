package main

//
// Listing the account domains
//

import (
	"fmt"
	"io"
	"os"

	"github.com/apex/log"
	"github.com/fatih/color"
	"github.com/j81blog/Miscellaneous-Code-And-Files-sub001/internal/model"
	"github.com/spf13/cobra"
)

// domainsSubcommand returns the domains subcommand.
func domainsSubcommand(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "domains",
		Short: "Lists the domains registered with the account",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			_, sess, err := initTool(opts)
			if err != nil {
				log.WithError(err).Fatal("cannot initialize the tool")
			}
			domains, err := sess.ListDomains(cmd.Context())
			if err != nil {
				log.WithError(err).Fatal("cannot list the domains")
			}
			printDomains(os.Stdout, domains)
		},
	}
}

// printDomains renders the domains table.
func printDomains(w io.Writer, domains []model.HostedDomain) {
	if len(domains) <= 0 {
		fmt.Fprintln(w, "no domains")
		return
	}
	bold := color.New(color.Bold)
	bold.Fprintf(w, "%-30s %-12s %s\n", "DOMAIN", "RENEWAL", "TAG")
	for _, domain := range domains {
		fmt.Fprintf(w, "%-30s %-12s %s\n", domain.Domain, domain.RenewalDate, domain.Tag)
	}
}
