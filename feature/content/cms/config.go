package cms

// Config holds configuration for the news CMS source.
type Config struct {
	// Endpoint is the CMS base URL, e.g. https://cms.example.com.
	Endpoint string `mapstructure:"endpoint" default:""`
	// ApiKey authenticates requests via the x-api-key header.
	ApiKey string `mapstructure:"api_key" default:""`
	// BasePath is the API base path prefixed to the news listing path.
	BasePath string `mapstructure:"base_path" default:"/api/v1"`
	// CDNHost prefixes relative thumbnail ids into absolute URLs.
	CDNHost string `mapstructure:"cdn_host" default:""`
	// PageSize is the listing page size.
	PageSize int `mapstructure:"page_size" default:"500"`
	// RatePerSecond caps outgoing requests to the CMS.
	RatePerSecond float64 `mapstructure:"rate_per_second" default:"5"`
	// RateBurst is the rate limiter burst allowance.
	RateBurst int `mapstructure:"rate_burst" default:"5"`
}
