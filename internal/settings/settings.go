// Package settings implements the tools configuration file.
//
// The configuration file is human readable JSON parsed through
// [hujsonx.Unmarshal], so comments and trailing commas are allowed. It
// carries the service coordinates that would otherwise need repeating on
// every command line. Credentials never belong in the configuration file:
// the tools read them from command line flags or from the environment.
//
// There is no writer: the file is hand edited and rewriting it through
// encoding/json would drop its comments.
package settings

import (
	"net"
	"net/url"

	"github.com/j81blog/Miscellaneous-Code-And-Files-sub001/internal/dnscheck"
	"github.com/j81blog/Miscellaneous-Code-And-Files-sub001/internal/fsx"
	"github.com/j81blog/Miscellaneous-Code-And-Files-sub001/internal/hujsonx"
	"github.com/j81blog/Miscellaneous-Code-And-Files-sub001/internal/mijnhost"
	"github.com/j81blog/Miscellaneous-Code-And-Files-sub001/internal/wemapi"
	"github.com/pkg/errors"
)

var (
	// ErrInvalidBaseURL indicates that a configured base URL is not an
	// absolute http or https URL.
	ErrInvalidBaseURL = errors.New("settings: invalid base URL")

	// ErrInvalidServerAddr indicates that a configured DNS server is
	// not in "address:port" format.
	ErrInvalidServerAddr = errors.New("settings: invalid DNS server address")
)

// Load returns the configuration stored at the given path. An empty path
// means there is no configuration file, in which case Load returns the
// default configuration.
func Load(path string) (*Config, error) {
	if path == "" {
		return ParseConfig([]byte("{}"))
	}
	return ReadConfig(path)
}

// ReadConfig reads the configuration from the path
func ReadConfig(path string) (*Config, error) {
	b, err := fsx.ReadFile(path)
	if err != nil {
		return nil, err
	}
	c, err := ParseConfig(b)
	if err != nil {
		return nil, errors.Wrap(err, "parsing config")
	}
	return c, nil
}

// ParseConfig returns config from JSON bytes.
func ParseConfig(b []byte) (*Config, error) {
	var c Config

	if err := hujsonx.Unmarshal(b, &c); err != nil {
		return nil, errors.Wrap(err, "parsing json")
	}

	if err := c.Default(); err != nil {
		return nil, errors.Wrap(err, "defaulting")
	}

	if err := c.Validate(); err != nil {
		return nil, errors.Wrap(err, "validating")
	}

	return &c, nil
}

// Config is the configuration shared by the tools in this repository.
type Config struct {
	// Comment is a free form comment field.
	Comment string `json:"_"`

	// DNSCheck contains defaults for DNS verification.
	DNSCheck DNSCheck `json:"dns_check"`

	// MijnHost contains defaults for the mijn.host API.
	MijnHost MijnHost `json:"mijn_host"`

	// WEM contains defaults for the Citrix WEM service.
	WEM WEM `json:"wem"`
}

// DNSCheck contains defaults for DNS verification.
type DNSCheck struct {
	// Server is the "address:port" of the DNS server to query.
	Server string `json:"server"`
}

// MijnHost contains defaults for the mijn.host API.
type MijnHost struct {
	// BaseURL is the base URL of the mijn.host API.
	BaseURL string `json:"base_url"`
}

// WEM contains defaults for the Citrix WEM service. The bearer token is
// not part of the configuration, pass it on the command line or through
// the environment instead.
type WEM struct {
	// BaseURL is the base URL of the WEM API service.
	BaseURL string `json:"base_url"`

	// CustomerID is the Citrix Cloud customer ID.
	CustomerID string `json:"customer_id"`
}

// Default fills empty fields with their default values.
func (c *Config) Default() error {
	if c.DNSCheck.Server == "" {
		c.DNSCheck.Server = dnscheck.DefaultServerAddr
	}
	if c.MijnHost.BaseURL == "" {
		c.MijnHost.BaseURL = mijnhost.DefaultBaseURL
	}
	if c.WEM.BaseURL == "" {
		c.WEM.BaseURL = wemapi.DefaultBaseURL
	}
	return nil
}

// Validate the config file
func (c *Config) Validate() error {
	if err := validBaseURL(c.MijnHost.BaseURL); err != nil {
		return err
	}
	if err := validBaseURL(c.WEM.BaseURL); err != nil {
		return err
	}
	if _, _, err := net.SplitHostPort(c.DNSCheck.Server); err != nil {
		return errors.Wrap(ErrInvalidServerAddr, c.DNSCheck.Server)
	}
	return nil
}

// validBaseURL ensures the given value is an absolute http or https URL.
func validBaseURL(value string) error {
	URL, err := url.Parse(value)
	if err != nil {
		return err
	}
	if (URL.Scheme != "http" && URL.Scheme != "https") || URL.Host == "" {
		return errors.Wrap(ErrInvalidBaseURL, value)
	}
	return nil
}
