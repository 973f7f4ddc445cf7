// Package config provides functionality for managing configuration options
// for the storefront using command-line flags, environment variables,
// and an optional JSON config file.
package config

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
)

// Options holds the configuration values for the storefront binaries.
type Options struct {
	// Addr defines the gateway's listening address (ip:port).
	Addr string

	// StoreDomain is the shop's myshopify domain, e.g. "example.myshopify.com".
	StoreDomain string

	// APIVersion is the Storefront API version segment of the endpoint URL.
	APIVersion string

	// StorefrontToken is the public Storefront API access token, sent in the
	// X-Shopify-Storefront-Access-Token header.
	StorefrontToken string

	// AdminToken is the Admin API access token used by the wholesale lead
	// flow. Optional; wholesale capture is disabled without it.
	AdminToken string

	// SessionFile is the path of the local session file holding the customer
	// access token and cart id.
	SessionFile string

	// LogLevel is the zap log level name.
	LogLevel string

	// Config is the path to the config file.
	Config string
}

// options holds the current configuration values.
var options = &Options{}

// init initializes command-line flags and sets default values.
func init() {
	flag.StringVar(&options.Addr, "a", "localhost:8080", "run on ip:port server")
	flag.StringVar(&options.StoreDomain, "store", "", "shop domain (example.myshopify.com)")
	flag.StringVar(&options.APIVersion, "api-version", "2024-01", "storefront API version")
	flag.StringVar(&options.SessionFile, "session", "session.json", "path to the local session file")
	flag.StringVar(&options.LogLevel, "log-level", "Info", "log level")
	flag.StringVar(&options.Config, "config", "", "path to config file")
	flag.StringVar(&options.Config, "c", "", "path to config file (shorthand)")
}

// Parse parses the command-line flags and environment variables to set
// configuration values. It returns a pointer to the Options struct
// containing the parsed configuration values. Access tokens are only read
// from the environment (or .env), never from flags.
func Parse() *Options {
	flag.Parse()

	// Pick up a local .env if present; real env vars still win.
	_ = godotenv.Load()

	if configPath := os.Getenv("CONFIG"); configPath != "" {
		options.Config = configPath
	}

	if options.Config != "" {
		if _, err := os.Stat(options.Config); err == nil {
			data, err := os.ReadFile(options.Config)
			if err != nil {
				log.Fatalf("error while reading config file: %v", err)
			}
			if err := json.Unmarshal(data, options); err != nil {
				log.Fatalf("error while parsing config file: %v", err)
			}
		}
	}

	if serverAddress := os.Getenv("SERVER_ADDRESS"); serverAddress != "" {
		options.Addr = serverAddress
	}
	if domain := os.Getenv("SHOPIFY_STORE_DOMAIN"); domain != "" {
		options.StoreDomain = domain
	}
	if version := os.Getenv("SHOPIFY_API_VERSION"); version != "" {
		options.APIVersion = version
	}
	if token := os.Getenv("SHOPIFY_STOREFRONT_ACCESS_TOKEN"); token != "" {
		options.StorefrontToken = token
	}
	if token := os.Getenv("SHOPIFY_ADMIN_ACCESS_TOKEN"); token != "" {
		options.AdminToken = token
	}
	if path := os.Getenv("SESSION_FILE"); path != "" {
		options.SessionFile = path
	}

	return options
}

// GraphQLURL returns the Storefront API GraphQL endpoint for the configured
// store domain and API version.
func (o *Options) GraphQLURL() string {
	return fmt.Sprintf("https://%s/api/%s/graphql.json", o.StoreDomain, o.APIVersion)
}

// AdminURL returns the Admin REST API base URL for the configured store
// domain and API version.
func (o *Options) AdminURL() string {
	return fmt.Sprintf("https://%s/admin/api/%s", o.StoreDomain, o.APIVersion)
}
