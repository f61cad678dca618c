package cfg

import "time"

type Cfg struct {
	// Gateway configuration
	GatewayURL     string
	GatewayTimeout time.Duration

	// Application configuration
	Port        string
	BaseUrl     string
	ContentFile string
	MediaDir    string
	DBPath      string

	// TrustedProxies may set the client IP through forwarding headers.
	// Empty means the peer address is always used.
	TrustedProxies []string

	// Background processing
	WorkerCount       int
	SchedulerInterval int
	ChannelFeedURL    string

	// Blog behaviour
	MaskSubmitFailures bool
	SubmitRateLimit    float64
	SubmitBurst        int
	AdminSessionTTL    time.Duration

	// Application metadata
	UserAgent string
	Timezone  string
	Debug     bool
	Version   string
}

// OutboxEnabled reports whether failed submissions are stored for replay.
func (c *Cfg) OutboxEnabled() bool {
	return c.DBPath != ""
}
