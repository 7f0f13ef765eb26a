// Command mijnhost-dns manages the DNS records of domains hosted at
// mijn.host from the command line.
//
//	mijnhost-dns domains
//	mijnhost-dns records list example.nl
//	mijnhost-dns records set example.nl --type A --name www --value 130.89.148.77
//	mijnhost-dns verify example.nl
//
// The API key comes from the --api-key flag or from the MIJNHOST_API_KEY
// environment variable and is never stored in the settings file.
package main

import (
	"net/http"
	"os"

	"github.com/AlecAivazis/survey/v2"
	"github.com/apex/log"
	"github.com/j81blog/Miscellaneous-Code-And-Files-sub001/internal/logx"
	"github.com/j81blog/Miscellaneous-Code-And-Files-sub001/internal/mijnhost"
	"github.com/j81blog/Miscellaneous-Code-And-Files-sub001/internal/runtimex"
	"github.com/j81blog/Miscellaneous-Code-And-Files-sub001/internal/settings"
	"github.com/spf13/cobra"
)

// globalOptions contains the options shared by all the subcommands.
type globalOptions struct {
	// apiKey is the mijn.host API key.
	apiKey string

	// baseURL overrides the API base URL.
	baseURL string

	// config is the path of the optional settings file.
	config string

	// verbose enables verbose log output.
	verbose bool
}

func main() {
	opts := &globalOptions{}
	root := &cobra.Command{
		Use:   "mijnhost-dns",
		Short: "Manages the DNS records of domains hosted at mijn.host",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if opts.verbose {
				log.SetLevel(log.DebugLevel)
			}
		},
	}
	flags := root.PersistentFlags()
	flags.StringVar(&opts.apiKey, "api-key", "", "mijn.host API key (defaults to $MIJNHOST_API_KEY)")
	flags.StringVar(&opts.baseURL, "base-url", "", "override the mijn.host API base URL")
	flags.StringVarP(&opts.config, "config", "c", "", "path of the optional settings file")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "enable verbose log output")
	root.AddCommand(domainsSubcommand(opts))
	root.AddCommand(recordsSubcommand(opts))
	root.AddCommand(verifySubcommand(opts))
	log.Log = &log.Logger{Level: log.InfoLevel, Handler: logx.NewHandlerWithDefaultSettings()}
	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

// initTool loads the settings and creates the API session.
func initTool(opts *globalOptions) (*settings.Config, *mijnhost.Session, error) {
	config, err := settings.Load(opts.config)
	if err != nil {
		return nil, nil, err
	}
	apiKey := opts.apiKey
	if apiKey == "" {
		apiKey = os.Getenv("MIJNHOST_API_KEY")
	}
	baseURL := opts.baseURL
	if baseURL == "" {
		baseURL = config.MijnHost.BaseURL
	}
	sess := mijnhost.NewSession(baseURL, apiKey, http.DefaultClient, log.Log)
	return config, sess, nil
}

// confirm interactively asks the user to confirm the given operation.
func confirm(message string) bool {
	result := false
	prompt := &survey.Confirm{Message: message}
	err := survey.AskOne(prompt, &result)
	runtimex.PanicOnError(err, "survey.AskOne failed")
	return result
}
