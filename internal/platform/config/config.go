// internal/platform/config/config.go
package config

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"net"
	"net/url"
	"os"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/subosito/gotenv"
	"gopkg.in/yaml.v3"

	"passivemap/internal/core/ports"
	"passivemap/internal/platform/errors"
)

const (
	envPrefix = "PASSIVEMAP_"

	// EnvShodanKey se acepta sin prefijo por compatibilidad con la CLI de Shodan.
	EnvShodanKey = "SHODAN_API_KEY"

	FormatTable = "table"
	FormatJSON  = "json"

	DefaultAddr = "127.0.0.1:3300"
)

// envFile es el fichero .env que Load lee del directorio de trabajo.
var envFile = ".env"

type Config struct {
	// App
	Target   string `yaml:"target" json:"target"`
	LogLevel string `yaml:"log_level" json:"log_level"`

	// ProxyURL se propaga a todas las sources que no fijen proxy_url propio
	ProxyURL string `yaml:"proxy_url" json:"proxy_url"`

	Output Output `yaml:"output" json:"output"`
	Server Server `yaml:"server" json:"server"`

	// Sources: Key = nombre de la source (crtsh, shodan, wayback, dorker)
	Sources map[string]ports.SourceConfig `yaml:"-" json:"sources"`
}

type Output struct {
	Format string `yaml:"format" json:"format"` // table | json
	Dir    string `yaml:"dir" json:"dir"`       // vacío = no escribir fichero
}

type Server struct {
	Addr            string        `yaml:"addr" json:"addr"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" json:"shutdown_timeout"`

	// CacheTTL reutiliza resultados por target en modo servidor (0 = sin caché)
	CacheTTL time.Duration `yaml:"cache_ttl" json:"cache_ttl"`
}

// sourceOverride distingue "no fijado" de valor cero al leer YAML.
type sourceOverride struct {
	Enabled   *bool                  `yaml:"enabled"`
	Timeout   *time.Duration         `yaml:"timeout"`
	RateLimit *float64               `yaml:"rate_limit"`
	Priority  *int                   `yaml:"priority"`
	Custom    map[string]interface{} `yaml:"custom"`
}

type fileConfig struct {
	Config  `yaml:",inline"`
	Sources map[string]sourceOverride `yaml:"sources"`
}

// DefaultConfig retorna una configuración por defecto.
func DefaultConfig() Config {
	return Config{
		LogLevel: "info",
		Output: Output{
			Format: FormatTable,
		},
		Server: Server{
			Addr:            DefaultAddr,
			ShutdownTimeout: 10 * time.Second,
		},
		Sources: map[string]ports.SourceConfig{
			"crtsh":   newSource(40, 10*time.Second),
			"shodan":  newSource(30, 15*time.Second),
			"wayback": newSource(20, 15*time.Second),
			"dorker":  newSource(10, 0),
		},
	}
}

func newSource(priority int, timeout time.Duration) ports.SourceConfig {
	sc := ports.DefaultSourceConfig()
	sc.Priority = priority
	sc.Timeout = timeout
	return sc
}

// Load aplica, de menor a mayor prioridad: defaults, .env, fichero YAML (si
// path no está vacío), variables de entorno y flags modificados de fs.
func Load(path string, flags *pflag.FlagSet) (Config, error) {
	cfg := DefaultConfig()

	dotenv, err := gotenv.Read(envFile)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return cfg, errors.Wrapf(err, "failed to read %s", envFile)
	}
	applyEnv(&cfg, func(k string) (string, bool) {
		v, ok := dotenv[k]
		return v, ok
	})

	if path != "" {
		if err := loadFile(&cfg, path); err != nil {
			return cfg, err
		}
	}

	applyEnv(&cfg, os.LookupEnv)

	if flags != nil {
		applyFlags(&cfg, flags)
	}

	normalize(&cfg)
	return cfg, nil
}

// loadFile mezcla el YAML sobre cfg; un fichero indicado pero ausente es un error.
func loadFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return errors.Mark(errors.ErrConfigurationMissing, errors.Wrapf(err, "config file %s", path))
		}
		return errors.Wrapf(err, "failed to read config file %s", path)
	}

	fc := fileConfig{Config: *cfg}
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return errors.Mark(errors.ErrInvalidInput, errors.Wrapf(err, "failed to parse config file %s", path))
	}

	sources := cfg.Sources
	*cfg = fc.Config
	cfg.Sources = sources

	for name, ov := range fc.Sources {
		name = strings.ToLower(name)
		sc, ok := cfg.Sources[name]
		if !ok {
			sc = ports.DefaultSourceConfig()
		}
		if ov.Enabled != nil {
			sc.Enabled = *ov.Enabled
		}
		if ov.Timeout != nil {
			sc.Timeout = *ov.Timeout
		}
		if ov.RateLimit != nil {
			sc.RateLimit = *ov.RateLimit
		}
		if ov.Priority != nil {
			sc.Priority = *ov.Priority
		}
		for k, v := range ov.Custom {
			setCustom(&sc, k, v)
		}
		cfg.Sources[name] = sc
	}
	return nil
}

// applyEnv lee PASSIVEMAP_* a través de lookup.
//
// Formato por source: PASSIVEMAP_SOURCES_CRTSH_ENABLED=false
//
//	PASSIVEMAP_SOURCES_CRTSH_PRIORITY=50
//	PASSIVEMAP_SOURCES_CRTSH_TIMEOUT=20s
//	PASSIVEMAP_SOURCES_SHODAN_API_KEY=...
func applyEnv(cfg *Config, lookup func(string) (string, bool)) {
	get := func(key string) (string, bool) {
		v, ok := lookup(key)
		if !ok || strings.TrimSpace(v) == "" {
			return "", false
		}
		return strings.TrimSpace(v), true
	}

	if v, ok := get(envPrefix + "TARGET"); ok {
		cfg.Target = v
	}
	if v, ok := get(envPrefix + "LOG_LEVEL"); ok {
		cfg.LogLevel = v
	}
	if v, ok := get(envPrefix + "PROXY_URL"); ok {
		cfg.ProxyURL = v
	}
	if v, ok := get(envPrefix + "OUTPUT_FORMAT"); ok {
		cfg.Output.Format = v
	}
	if v, ok := get(envPrefix + "OUTPUT_DIR"); ok {
		cfg.Output.Dir = v
	}
	if v, ok := get(envPrefix + "SERVER_ADDR"); ok {
		cfg.Server.Addr = v
	}
	if v, ok := get(envPrefix + "SERVER_SHUTDOWN_TIMEOUT"); ok {
		cfg.Server.ShutdownTimeout = parseDuration(v, cfg.Server.ShutdownTimeout)
	}
	if v, ok := get(envPrefix + "SERVER_CACHE_TTL"); ok {
		cfg.Server.CacheTTL = parseDuration(v, cfg.Server.CacheTTL)
	}

	for name, sc := range cfg.Sources {
		prefix := envPrefix + "SOURCES_" + strings.ToUpper(name) + "_"

		if v, ok := get(prefix + "ENABLED"); ok {
			sc.Enabled = parseBool(v)
		}
		if v, ok := get(prefix + "PRIORITY"); ok {
			sc.Priority = parseInt(v, sc.Priority)
		}
		if v, ok := get(prefix + "TIMEOUT"); ok {
			sc.Timeout = parseDuration(v, sc.Timeout)
		}
		if v, ok := get(prefix + "RATE_LIMIT"); ok {
			sc.RateLimit = parseFloat(v, sc.RateLimit)
		}
		if v, ok := get(prefix + "API_KEY"); ok {
			setCustom(&sc, "api_key", v)
		}
		cfg.Sources[name] = sc
	}

	if v, ok := get(EnvShodanKey); ok {
		if sc, exists := cfg.Sources["shodan"]; exists {
			setCustom(&sc, "api_key", v)
			cfg.Sources["shodan"] = sc
		}
	}
}

// RegisterFlags declara en fs los flags que Load sabe aplicar. Los valores por
// defecto se toman de DefaultConfig para que --help los muestre.
func RegisterFlags(fs *pflag.FlagSet) {
	def := DefaultConfig()

	fs.StringP("target", "t", def.Target, "Target domain or IP (e.g., example.com)")
	fs.StringP("config", "c", "", "Path to a YAML config file")
	fs.String("log-level", def.LogLevel, "Log level: debug, info, warn, error")
	fs.StringP("proxy", "p", def.ProxyURL, "HTTP(S) proxy URL for outbound requests")
	fs.StringP("output", "o", def.Output.Format, "Output format: table or json")
	fs.String("out-dir", def.Output.Dir, "Directory where the JSON document is written (empty = none)")
	fs.String("addr", def.Server.Addr, "Listen address for the HTTP API")
	fs.String("shodan-key", "", "Shodan API key (overrides SHODAN_API_KEY)")

	for _, name := range sortedSourceNames(def.Sources) {
		sc := def.Sources[name]
		fs.Bool("src."+name, sc.Enabled, fmt.Sprintf("Enable the %s source", name))
		fs.Int("src."+name+".priority", sc.Priority, fmt.Sprintf("Invocation priority of %s (higher runs first)", name))
	}
}

// applyFlags solo copia los flags que el usuario cambió explícitamente.
func applyFlags(cfg *Config, fs *pflag.FlagSet) {
	changedString := func(name string, dst *string) {
		if f := fs.Lookup(name); f != nil && f.Changed {
			*dst = f.Value.String()
		}
	}

	changedString("target", &cfg.Target)
	changedString("log-level", &cfg.LogLevel)
	changedString("proxy", &cfg.ProxyURL)
	changedString("output", &cfg.Output.Format)
	changedString("out-dir", &cfg.Output.Dir)
	changedString("addr", &cfg.Server.Addr)

	if f := fs.Lookup("shodan-key"); f != nil && f.Changed {
		if sc, ok := cfg.Sources["shodan"]; ok {
			setCustom(&sc, "api_key", f.Value.String())
			cfg.Sources["shodan"] = sc
		}
	}

	for name, sc := range cfg.Sources {
		if f := fs.Lookup("src." + name); f != nil && f.Changed {
			sc.Enabled = parseBool(f.Value.String())
		}
		if f := fs.Lookup("src." + name + ".priority"); f != nil && f.Changed {
			sc.Priority = parseInt(f.Value.String(), sc.Priority)
		}
		cfg.Sources[name] = sc
	}
}

func normalize(c *Config) {
	c.Target = strings.TrimSpace(c.Target)
	c.LogLevel = strings.ToLower(strings.TrimSpace(c.LogLevel))
	c.Output.Format = strings.ToLower(strings.TrimSpace(c.Output.Format))
	if c.Output.Format == "" {
		c.Output.Format = FormatTable
	}
	if c.Server.Addr == "" {
		c.Server.Addr = DefaultAddr
	}
	if c.Server.ShutdownTimeout <= 0 {
		c.Server.ShutdownTimeout = 10 * time.Second
	}
	for name, sc := range c.Sources {
		if sc.Timeout < 0 {
			sc.Timeout = 0
		}
		if sc.RateLimit < 0 {
			sc.RateLimit = 0
		}
		if sc.Custom == nil {
			sc.Custom = make(map[string]interface{})
		}
		c.Sources[name] = sc
	}
}

// Validate comprueba el formato de salida, la dirección y el proxy.
func (c Config) Validate() error {
	switch c.Output.Format {
	case FormatTable, FormatJSON:
	default:
		return errors.Wrapf(errors.ErrInvalidInput, "unknown output format %q (want table or json)", c.Output.Format)
	}

	if _, port, err := net.SplitHostPort(c.Server.Addr); err != nil {
		return errors.Wrapf(errors.ErrInvalidInput, "invalid server address %q: %v", c.Server.Addr, err)
	} else if n, err := strconv.Atoi(port); err != nil || n < 0 || n > 65535 {
		return errors.Wrapf(errors.ErrInvalidInput, "invalid server port %q", port)
	}

	if c.ProxyURL != "" {
		u, err := url.Parse(c.ProxyURL)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return errors.Wrapf(errors.ErrInvalidInput, "invalid proxy url %q", c.ProxyURL)
		}
	}
	return nil
}

// SourceConfigs devuelve una copia de Sources con el proxy global aplicado
// a las sources que no definen el suyo.
func (c Config) SourceConfigs() map[string]ports.SourceConfig {
	out := make(map[string]ports.SourceConfig, len(c.Sources))
	for name, sc := range c.Sources {
		custom := make(map[string]interface{}, len(sc.Custom)+1)
		for k, v := range sc.Custom {
			custom[k] = v
		}
		if _, ok := custom["proxy_url"]; !ok && c.ProxyURL != "" {
			custom["proxy_url"] = c.ProxyURL
		}
		sc.Custom = custom
		out[name] = sc
	}
	return out
}

// ToJSON serializa la configuración con las credenciales enmascaradas (útil para debugging).
func (c Config) ToJSON() (string, error) {
	masked := c
	masked.Sources = make(map[string]ports.SourceConfig, len(c.Sources))
	for name, sc := range c.SourceConfigs() {
		for _, k := range []string{"api_key", "token"} {
			if v, ok := sc.Custom[k]; ok && fmt.Sprint(v) != "" {
				sc.Custom[k] = "REDACTED"
			}
		}
		masked.Sources[name] = sc
	}

	data, err := json.MarshalIndent(masked, "", "  ")
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// Helpers

func setCustom(sc *ports.SourceConfig, key string, value interface{}) {
	if sc.Custom == nil {
		sc.Custom = make(map[string]interface{})
	}
	sc.Custom[key] = value
}

func parseBool(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "1", "t", "true", "y", "yes", "on":
		return true
	default:
		return false
	}
}

func parseInt(v string, def int) int {
	i, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		return def
	}
	return i
}

func parseFloat(v string, def float64) float64 {
	f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
	if err != nil {
		return def
	}
	return f
}

// parseDuration acepta "15s" o un entero en segundos.
func parseDuration(v string, def time.Duration) time.Duration {
	v = strings.TrimSpace(v)
	if d, err := time.ParseDuration(v); err == nil {
		return d
	}
	if n, err := strconv.Atoi(v); err == nil {
		return time.Duration(n) * time.Second
	}
	return def
}

func sortedSourceNames(sources map[string]ports.SourceConfig) []string {
	names := make([]string, 0, len(sources))
	for name := range sources {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}
