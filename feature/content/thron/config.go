package thron

// Config holds configuration for the video platform source.
type Config struct {
	// Host is the delivery API base URL.
	Host string `mapstructure:"host" default:""`
	// AdminHost is the admin API base URL used for app login.
	AdminHost string `mapstructure:"admin_host" default:""`
	// ClientID identifies the platform tenant.
	ClientID string `mapstructure:"client_id" default:""`
	// AppID and AppKey authenticate the integration app.
	AppID  string `mapstructure:"app_id" default:""`
	AppKey string `mapstructure:"app_key" default:""`
	// PKey authorizes unauthenticated detail lookups.
	PKey string `mapstructure:"pkey" default:""`
	// PublicFolder is the category id the export is scoped to.
	PublicFolder string `mapstructure:"public_folder" default:""`
}
