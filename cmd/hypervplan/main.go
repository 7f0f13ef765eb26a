// Command hypervplan turns a CSV sheet describing Hyper-V VM network
// adapters into a PowerShell script applying that configuration.
//
//	hypervplan adapters.csv
//	hypervplan -o configure-adapters.ps1 adapters.csv
//
// Pass "-" instead of a file name to read the sheet from the standard
// input. The script is rendered rather than executed because the cmdlets
// it uses only exist on the Hyper-V hosts themselves.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/apex/log"
	"github.com/j81blog/Miscellaneous-Code-And-Files-sub001/internal/fsx"
	"github.com/j81blog/Miscellaneous-Code-And-Files-sub001/internal/hypervnet"
	"github.com/j81blog/Miscellaneous-Code-And-Files-sub001/internal/logx"
	"github.com/spf13/cobra"
)

func main() {
	var outputFlag string
	root := &cobra.Command{
		Use:   "hypervplan CSVFILE",
		Short: "Renders a PowerShell plan configuring Hyper-V VM network adapters",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			if err := render(args[0], outputFlag, os.Stdin, os.Stdout); err != nil {
				log.WithError(err).Fatal("cannot render the plan")
			}
		},
	}
	root.Flags().StringVarP(&outputFlag, "output", "o", "",
		"write the plan to this file instead of the standard output")
	log.Log = &log.Logger{Level: log.InfoLevel, Handler: logx.NewHandlerWithDefaultSettings()}
	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

// render reads the CSV sheet and writes the PowerShell plan.
func render(csvPath, outputPath string, stdin io.Reader, stdout io.Writer) error {
	reader := stdin
	if csvPath != "-" {
		filep, err := fsx.OpenFile(csvPath)
		if err != nil {
			return err
		}
		defer filep.Close()
		reader = filep
	}
	mappings, err := hypervnet.ParseCSV(reader)
	if err != nil {
		return err
	}
	plan := hypervnet.RenderPlan(mappings)
	if outputPath == "" {
		_, err := fmt.Fprint(stdout, plan)
		return err
	}
	log.Infof("writing %d adapter configurations to %s", len(mappings), outputPath)
	return os.WriteFile(outputPath, []byte(plan), 0644)
}
