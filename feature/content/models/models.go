// Package models defines the content cache table shared by the CMS and
// video platform ingestion paths.
package models

// Content type discriminators stored in the cache table.
const (
	TypeVideo = "video"
	TypeNews  = "news"
	TypeAudio = "audio"
	TypeImage = "image"
)

// ContentRecord is one cached content item. Both upstream sources write the
// same row shape; the type column decides which metadata columns are
// meaningful.
type ContentRecord struct {
	ContentID   string `gorm:"column:content_id;primaryKey;size:512" json:"contentId"`
	ContentURL  string `gorm:"column:content_url;size:1024" json:"contentUrl"`
	ContentType string `gorm:"column:content_type;size:16;index" json:"contentType"`
	IngestDate  string `gorm:"column:ingest_date;size:10" json:"ingestDate"`

	NameTitle   string `gorm:"column:name_title;size:512" json:"nameTitle"`
	Description string `gorm:"column:description;type:text" json:"description"`
	DurationMs  string `gorm:"column:duration_ms;size:32" json:"durationMs"`
	Thumb       string `gorm:"column:thumb;size:1024" json:"thumb"`
	ThumbDesc   string `gorm:"column:thumb_desc;size:512" json:"thumbDesc"`
	Subtitle    string `gorm:"column:subtitle;size:512" json:"subtitle"`
	Channel     string `gorm:"column:channel;size:128" json:"channel"`
	Place       string `gorm:"column:place;size:128" json:"place"`
	Tags        string `gorm:"column:tags;type:text" json:"tags"`
	PublishedAt string `gorm:"column:published_at;size:40" json:"publishedAt"`
	CreatedAt   string `gorm:"column:created_at;size:40" json:"createdAt"`
	UpdatedAt   string `gorm:"column:updated_at;size:40" json:"updatedAt"`
}

// TableName maps the record onto the content cache table.
func (ContentRecord) TableName() string {
	return "content_cache"
}
