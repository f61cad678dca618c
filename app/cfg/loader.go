package cfg

import (
	"cmp"
	"fmt"
	"net"
	"os"
	"strings"
	"time"

	"github.com/jessevdk/go-flags"
)

// Version is set at build time via -ldflags
var Version = "dev"

// DefaultGatewayURL is the spreadsheet script the site has always used.
const DefaultGatewayURL = "https://script.google.com/macros/s/AKfycbyQmdJBr-bRHXxDj8OFvC6OHAfnw3RmuP3qhp7yjt9auMr5tZrtA0ybahXmONQ-EELUdA/exec"

func GetVersion() string {
	return cmp.Or(Version, "unknown")
}

type rawCfg struct {
	// Gateway configuration
	GatewayURL     string `long:"gateway-url" env:"GATEWAY_URL" description:"Spreadsheet gateway endpoint used as the blog content store (defaults to the site's script)"`
	GatewayTimeout int    `long:"gateway-timeout" env:"GATEWAY_TIMEOUT" default:"30" description:"Gateway request timeout in seconds"`

	// Application configuration
	Port        string `long:"port" env:"PORT" default:"8080" description:"HTTP server port"`
	BaseUrl     string `long:"base-url" env:"BASE_URL" description:"Public base URL for the site (e.g., https://thefitbhaskar.com)"`
	ContentFile string `long:"content-file" env:"CONTENT_FILE" description:"YAML file with site copy (embedded default when empty)"`
	MediaDir    string `long:"media-dir" env:"MEDIA_DIR" description:"Directory served under /media (videos, images)"`
	DBPath      string `long:"db-path" env:"DB_PATH" description:"SQLite file for the submission outbox (disabled when empty)"`

	TrustedProxies string `long:"trusted-proxies" env:"TRUSTED_PROXIES" description:"Comma-separated proxy IPs or CIDRs allowed to set X-Forwarded-For (none by default)"`

	// Background processing
	WorkerCount       int    `long:"worker-count" env:"WORKER_COUNT" default:"2" description:"Number of background workers"`
	SchedulerInterval int    `long:"scheduler-interval" env:"SCHEDULER_INTERVAL" default:"300" description:"Scheduler interval in seconds"`
	ChannelFeedURL    string `long:"channel-feed-url" env:"CHANNEL_FEED_URL" description:"Video channel RSS/Atom feed shown on the home page (optional)"`

	// Blog behaviour
	ShowSubmitFailures bool    `long:"show-submit-failures" env:"SHOW_SUBMIT_FAILURES" description:"Report failed submissions to visitors instead of showing them as received"`
	SubmitRateLimit    float64 `long:"submit-rate" env:"SUBMIT_RATE" default:"0.2" description:"Allowed submissions per second per client IP"`
	SubmitBurst        int     `long:"submit-burst" env:"SUBMIT_BURST" default:"3" description:"Submission burst per client IP"`
	AdminSessionTTL    int     `long:"admin-session-ttl" env:"ADMIN_SESSION_TTL" default:"1800" description:"Idle lifetime of an admin session in seconds"`

	// Application metadata
	UserAgent string `long:"user-agent" env:"USER_AGENT" default:"FitBhaskar/1.0" description:"User agent string for HTTP requests"`
	Timezone  string `long:"timezone" env:"TZ" default:"Asia/Kolkata" description:"Timezone for timestamps (e.g., UTC, Asia/Kolkata)"`
	Debug     bool   `long:"debug" env:"DEBUG" description:"Enable debug logging"`
}

var globalCfg *Cfg

func Load() (*Cfg, error) {
	return LoadArgs(os.Args[1:])
}

func LoadArgs(args []string) (*Cfg, error) {
	var raw rawCfg

	parser := flags.NewParser(&raw, flags.Default)

	if _, err := parser.ParseArgs(args); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok {
			if flagsErr.Type == flags.ErrHelp {
				return nil, nil
			}
		}
		return nil, fmt.Errorf("failed to parse configuration: %w", err)
	}

	cfg := &Cfg{
		GatewayURL:         cmp.Or(strings.TrimSpace(raw.GatewayURL), DefaultGatewayURL),
		GatewayTimeout:     time.Duration(raw.GatewayTimeout) * time.Second,
		Port:               raw.Port,
		BaseUrl:            strings.TrimRight(raw.BaseUrl, "/"),
		ContentFile:        raw.ContentFile,
		MediaDir:           raw.MediaDir,
		DBPath:             raw.DBPath,
		TrustedProxies:     splitList(raw.TrustedProxies),
		WorkerCount:        raw.WorkerCount,
		SchedulerInterval:  raw.SchedulerInterval,
		ChannelFeedURL:     raw.ChannelFeedURL,
		MaskSubmitFailures: !raw.ShowSubmitFailures,
		SubmitRateLimit:    raw.SubmitRateLimit,
		SubmitBurst:        raw.SubmitBurst,
		AdminSessionTTL:    time.Duration(raw.AdminSessionTTL) * time.Second,
		UserAgent:          raw.UserAgent,
		Timezone:           raw.Timezone,
		Debug:              raw.Debug,
		Version:            GetVersion(),
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	if err := applyTimezone(cfg.Timezone); err != nil {
		fmt.Printf("Warning: Invalid timezone '%s', using system default: %v\n", cfg.Timezone, err)
	}

	globalCfg = cfg

	return cfg, nil
}

func Get() *Cfg {
	if globalCfg == nil {
		panic("configuration not loaded - call cfg.Load() first")
	}
	return globalCfg
}

// Set installs cfg as the process configuration. Used by tests and tools
// that build a Cfg by hand.
func Set(cfg *Cfg) {
	globalCfg = cfg
}

func (c *Cfg) validate() error {
	if c.GatewayURL == "" {
		return fmt.Errorf("gateway URL is required")
	}
	if !strings.HasPrefix(c.GatewayURL, "http://") && !strings.HasPrefix(c.GatewayURL, "https://") {
		return fmt.Errorf("gateway URL must be http(s): %s", c.GatewayURL)
	}

	nonNegative := map[string]int{
		"gateway timeout":   int(c.GatewayTimeout),
		"submit burst":      c.SubmitBurst,
		"admin session ttl": int(c.AdminSessionTTL),
	}
	for fieldName, fieldValue := range nonNegative {
		if fieldValue < 0 {
			return fmt.Errorf("%s must be non-negative", fieldName)
		}
	}

	if c.SubmitRateLimit < 0 {
		return fmt.Errorf("submit rate must be non-negative")
	}

	positive := map[string]int{
		"worker count":       c.WorkerCount,
		"scheduler interval": c.SchedulerInterval,
	}
	for fieldName, fieldValue := range positive {
		if fieldValue <= 0 {
			return fmt.Errorf("%s must be positive", fieldName)
		}
	}

	for _, proxy := range c.TrustedProxies {
		if net.ParseIP(proxy) != nil {
			continue
		}
		if _, _, err := net.ParseCIDR(proxy); err != nil {
			return fmt.Errorf("trusted proxy must be an IP or CIDR: %s", proxy)
		}
	}

	return nil
}

func splitList(value string) []string {
	var items []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}

func applyTimezone(timezone string) error {
	if timezone != "" {
		if loc, err := time.LoadLocation(timezone); err != nil {
			return err
		} else {
			time.Local = loc
		}
	}
	return nil
}
