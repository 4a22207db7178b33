// internal/platform/config/help.go
package config

import (
	"fmt"
	"runtime"
)

// EnvHelp se muestra en la ayuda larga de la CLI.
const EnvHelp = `
CONFIGURATION PRECEDENCE (lowest first):
  defaults < .env file < YAML file (--config) < environment < flags

ENVIRONMENT VARIABLES:
  PASSIVEMAP_TARGET                   Target domain or IP
  PASSIVEMAP_LOG_LEVEL=debug          Log level (debug, info, warn, error)
  PASSIVEMAP_PROXY_URL=http://...     Proxy URL for outbound requests
  PASSIVEMAP_OUTPUT_FORMAT=json       Output format (table, json)
  PASSIVEMAP_OUTPUT_DIR=/path         Directory for the JSON document
  PASSIVEMAP_SERVER_ADDR=host:port    HTTP API listen address
  PASSIVEMAP_SERVER_CACHE_TTL=5m      Reuse HTTP API results per target
  SHODAN_API_KEY=...                  Shodan API key

  Source-specific (replace CRTSH with the source name):
  PASSIVEMAP_SOURCES_CRTSH_ENABLED=false
  PASSIVEMAP_SOURCES_CRTSH_PRIORITY=50
  PASSIVEMAP_SOURCES_CRTSH_TIMEOUT=20s
  PASSIVEMAP_SOURCES_CRTSH_RATE_LIMIT=1.5

YAML FILE:
  target: example.com
  output:
    format: json
    dir: ./out
  sources:
    shodan:
      custom:
        api_key: "..."
    wayback:
      timeout: 20s
`

// VersionString formatea la información de build para "passivemap version".
func VersionString(version, commit, date string) string {
	return fmt.Sprintf("PassiveMap %s\n  Commit:  %s\n  Built:   %s\n  Go:      %s\n",
		version, commit, date, runtime.Version())
}
