// Command wemcall performs an authenticated call to the Citrix WEM REST
// API and prints the JSON response to the standard output.
//
// The request method and the URL path are positional arguments:
//
//	wemcall GET /services/wem/sites
//	wemcall --param includeHidden=true GET /services/wem/sites
//	wemcall --body site.json POST /services/wem/sites
//
// The bearer token always comes from the command line or from the
// CITRIX_BEARER_TOKEN environment variable, never from the settings file.
package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"

	"github.com/alecthomas/kingpin/v2"
	"github.com/apex/log"
	"github.com/apex/log/handlers/cli"
	"github.com/j81blog/Miscellaneous-Code-And-Files-sub001/internal/fsx"
	"github.com/j81blog/Miscellaneous-Code-And-Files-sub001/internal/httpapi"
	"github.com/j81blog/Miscellaneous-Code-And-Files-sub001/internal/settings"
	"github.com/j81blog/Miscellaneous-Code-And-Files-sub001/internal/version"
	"github.com/j81blog/Miscellaneous-Code-And-Files-sub001/internal/wemapi"
	"github.com/mitchellh/go-wordwrap"
)

// hintWrapWidth is the width at which we wrap failure messages.
const hintWrapWidth = 72

var (
	app = kingpin.New("wemcall", "Invoke an authenticated Citrix WEM REST API.")

	baseURLFlag  = app.Flag("base-url", "Override the WEM API base URL").String()
	bodyFlag     = app.Flag("body", `File containing the JSON request body ("-" reads the standard input)`).Short('d').String()
	configFlag   = app.Flag("config", "Path of the optional settings file").Short('c').String()
	customerFlag = app.Flag("customer-id", "Citrix Cloud customer ID").Envar("CITRIX_CUSTOMER_ID").String()
	paramFlag    = app.Flag("param", "Query parameter to append to the URL").PlaceHolder("KEY=VALUE").Strings()
	tokenFlag    = app.Flag("token", "Citrix Cloud bearer token").Envar("CITRIX_BEARER_TOKEN").String()
	traceFlag    = app.Flag("trace", "Log bodies and headers, which include the credentials").Bool()
	verboseFlag  = app.Flag("verbose", "Enable verbose log output").Short('v').Bool()

	methodArg = app.Arg("method", "Request method (GET, POST, PUT, DELETE or PATCH)").Required().String()
	pathArg   = app.Arg("path", "Path of the API to invoke (e.g., /services/wem/sites)").Required().String()
)

func main() {
	app.Version(version.Version)
	app.HelpFlag.Short('h')
	kingpin.MustParse(app.Parse(os.Args[1:]))
	log.SetHandler(cli.Default)
	log.SetLevel(log.InfoLevel)
	if *verboseFlag {
		log.SetLevel(log.DebugLevel)
	}
	if err := run(context.Background(), os.Stdin, os.Stdout); err != nil {
		printFailure(err)
		os.Exit(1)
	}
}

// run performs the API call described by the command line.
func run(ctx context.Context, stdin io.Reader, stdout io.Writer) error {
	config, err := settings.Load(*configFlag)
	if err != nil {
		return err
	}
	baseURL := *baseURLFlag
	if baseURL == "" {
		baseURL = config.WEM.BaseURL
	}
	customerID := *customerFlag
	if customerID == "" {
		customerID = config.WEM.CustomerID
	}
	query, err := parseParams(*paramFlag)
	if err != nil {
		return err
	}
	rawBody, err := readBody(*bodyFlag, stdin)
	if err != nil {
		return err
	}
	var body any
	if rawBody != nil {
		body = rawBody
	}
	sess := wemapi.NewSession(baseURL, customerID, *tokenFlag, http.DefaultClient, log.Log)
	sess.LogBody = *traceFlag
	result, err := sess.Invoke(ctx, strings.ToUpper(*methodArg), *pathArg, query, body)
	if err != nil {
		return err
	}
	if result == nil {
		log.Info("the server returned an empty response body")
		return nil
	}
	return printJSON(stdout, result)
}

// errInvalidParam indicates that a --param flag is not in KEY=VALUE form.
var errInvalidParam = errors.New("wemcall: expected a KEY=VALUE param")

// parseParams converts the repeated --param flags into URL query values.
func parseParams(params []string) (url.Values, error) {
	if len(params) <= 0 {
		return nil, nil
	}
	values := url.Values{}
	for _, param := range params {
		key, value, found := strings.Cut(param, "=")
		if !found || key == "" {
			return nil, fmt.Errorf("%w: %s", errInvalidParam, param)
		}
		values.Add(key, value)
	}
	return values, nil
}

// readBody reads the optional JSON request body. An empty path means there
// is no body and "-" means reading the body from the standard input.
func readBody(path string, stdin io.Reader) (json.RawMessage, error) {
	switch path {
	case "":
		return nil, nil
	case "-":
		return io.ReadAll(stdin)
	default:
		return fsx.ReadFile(path)
	}
}

// printJSON pretty prints the API result to the given writer.
func printJSON(w io.Writer, result json.RawMessage) error {
	var out bytes.Buffer
	if err := json.Indent(&out, result, "", "  "); err != nil {
		return err
	}
	_, err := fmt.Fprintln(w, out.String())
	return err
}

// printFailure logs the failure that terminated the call. A classified
// API failure prints its category along with the remediation hint.
func printFailure(err error) {
	var failure *httpapi.ErrRequestFailed
	if errors.As(err, &failure) {
		log.WithField("category", string(failure.Category)).
			Errorf("%s", wordwrap.WrapString(failure.Error(), hintWrapWidth))
		return
	}
	log.WithError(err).Error("wemcall failed")
}
