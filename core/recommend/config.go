package recommend

import "time"

// Config holds configuration for the recommendation dataset service.
type Config struct {
	// Region is the AWS region hosting the dataset groups.
	Region string `mapstructure:"region" default:"us-east-1"`
	// App is the application prefix used in resource and parameter names.
	App string `mapstructure:"app" default:"fanapp"`
	// Stage is the deployment stage suffix (dev, staging, prod).
	Stage string `mapstructure:"stage" default:"dev"`
	// VideoGroupArn is the dataset group for the video vertical.
	VideoGroupArn string `mapstructure:"video_group_arn" default:""`
	// NewsGroupArn is the dataset group for the news vertical.
	NewsGroupArn string `mapstructure:"news_group_arn" default:""`
	// ImportRoleArn is the role the service assumes to read staged imports.
	ImportRoleArn string `mapstructure:"import_role_arn" default:""`
	// CampaignVideo is the campaign name for the video vertical.
	CampaignVideo string `mapstructure:"campaign_video" default:"fanapp-video-similar-items"`
	// CampaignNews is the campaign name for the news vertical.
	CampaignNews string `mapstructure:"campaign_news" default:"fanapp-news-similar-items"`
	// MinProvisionedTPS is the minimum provisioned throughput for campaigns.
	MinProvisionedTPS int `mapstructure:"min_provisioned_tps" default:"1"`
	// BatchSize is the streaming-write batch size (sink contract: max 10).
	BatchSize int `mapstructure:"batch_size" default:"10"`
	// PauseMillis is the pacing pause after each streaming flush.
	PauseMillis int `mapstructure:"pause_millis" default:"300"`
	// ItemPollSeconds is the dataset-readiness poll interval on the
	// per-item ingestion path.
	ItemPollSeconds int `mapstructure:"item_poll_seconds" default:"10"`
	// ItemPollDeadlineMinutes bounds the per-item readiness poll.
	ItemPollDeadlineMinutes int `mapstructure:"item_poll_deadline_minutes" default:"15"`
	// UserPollSeconds is the dataset-readiness poll interval on the
	// bulk-user import path.
	UserPollSeconds int `mapstructure:"user_poll_seconds" default:"60"`
	// UserPollDeadlineMinutes bounds the bulk-user readiness poll.
	UserPollDeadlineMinutes int `mapstructure:"user_poll_deadline_minutes" default:"30"`
	// TrainPollSeconds is the solution version training poll interval.
	TrainPollSeconds int `mapstructure:"train_poll_seconds" default:"60"`
	// TrainPollDeadlineMinutes bounds the training poll.
	TrainPollDeadlineMinutes int `mapstructure:"train_poll_deadline_minutes" default:"120"`
	// MinNDCG5 is the minimum ranking-quality metric a freshly trained
	// version must reach before it is promoted to serving.
	MinNDCG5 float64 `mapstructure:"min_ndcg5" default:"0.1"`
	// MinPrecision5 is the minimum precision metric for promotion.
	MinPrecision5 float64 `mapstructure:"min_precision5" default:"0.01"`
	// RecipeArn is the training recipe for similar-items solutions.
	RecipeArn string `mapstructure:"recipe_arn" default:"arn:aws:personalize:::recipe/aws-sims"`
}

// Pause returns the configured pacing pause as a duration.
func (c Config) Pause() time.Duration {
	return time.Duration(c.PauseMillis) * time.Millisecond
}

// ItemPoll returns the per-item poll interval and deadline.
func (c Config) ItemPoll() (interval, deadline time.Duration) {
	return time.Duration(c.ItemPollSeconds) * time.Second,
		time.Duration(c.ItemPollDeadlineMinutes) * time.Minute
}

// UserPoll returns the bulk-user poll interval and deadline.
func (c Config) UserPoll() (interval, deadline time.Duration) {
	return time.Duration(c.UserPollSeconds) * time.Second,
		time.Duration(c.UserPollDeadlineMinutes) * time.Minute
}

// TrainPoll returns the training poll interval and deadline.
func (c Config) TrainPoll() (interval, deadline time.Duration) {
	return time.Duration(c.TrainPollSeconds) * time.Second,
		time.Duration(c.TrainPollDeadlineMinutes) * time.Minute
}

// Domains lists the dataset-group verticals this system manages.
var Domains = []string{"video", "news"}

// ValidDomain reports whether domain names a managed dataset group.
func ValidDomain(domain string) bool {
	for _, d := range Domains {
		if domain == d {
			return true
		}
	}
	return false
}

// GroupArn returns the dataset group ARN for a domain.
func (c Config) GroupArn(domain string) string {
	if domain == "news" {
		return c.NewsGroupArn
	}
	return c.VideoGroupArn
}

// CampaignName returns the campaign name for a domain.
func (c Config) CampaignName(domain string) string {
	if domain == "news" {
		return c.CampaignNews
	}
	return c.CampaignVideo
}
