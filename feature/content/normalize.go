package content

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"p13n-sync/feature/content/models"
)

// Placeholder replaces blank required field values. The downstream dataset
// service rejects empty strings in required columns.
const Placeholder = "-"

// Domains synchronized by this vertical.
const (
	DomainVideo = "video"
	DomainNews  = "news"
)

// ErrSkipRecord marks a record that must be dropped instead of failing the
// run. Upstream exports are known to emit occasional rows without a primary
// key.
var ErrSkipRecord = errors.New("record skipped")

// CSV headers for the two staging artifacts.
var (
	VideoHeader = []string{"ITEM_ID", "CONTENT_TYPE", "DESCRIPTION", "DURATION", "THUMB", "NAME_TITLE", "TAGS"}
	NewsHeader  = []string{"ITEM_ID", "CONTENT_TYPE", "CHANNEL", "PLACE", "THUMB", "NAME_TITLE", "TAGS"}
)

// Item is a normalized content item ready for staging or streaming. The two
// concrete shapes carry the fixed attribute set of their domain.
type Item interface {
	ItemID() string
	Domain() string
	Row() []string
	Properties() (string, error)
}

// VideoItem is the normalized video-domain shape.
type VideoItem struct {
	ID          string
	ContentType string
	Description string
	Duration    string
	Thumb       string
	NameTitle   string
	Tags        string
}

func (v VideoItem) ItemID() string { return v.ID }
func (v VideoItem) Domain() string { return DomainVideo }

// Row returns the item in staging CSV column order.
func (v VideoItem) Row() []string {
	return []string{v.ID, v.ContentType, v.Description, v.Duration, v.Thumb, v.NameTitle, v.Tags}
}

// Properties returns the streaming-write property document.
func (v VideoItem) Properties() (string, error) {
	props := map[string]string{
		"contentType": v.ContentType,
		"description": v.Description,
		"duration":    v.Duration,
		"thumb":       v.Thumb,
		"nameTitle":   v.NameTitle,
	}
	if strings.TrimSpace(v.Tags) != "" {
		props["tags"] = v.Tags
	}
	return marshalProperties(props)
}

// NewsItem is the normalized news-domain shape.
type NewsItem struct {
	ID          string
	ContentType string
	Channel     string
	Place       string
	Thumb       string
	NameTitle   string
	Tags        string
}

func (n NewsItem) ItemID() string { return n.ID }
func (n NewsItem) Domain() string { return DomainNews }

// Row returns the item in staging CSV column order.
func (n NewsItem) Row() []string {
	return []string{n.ID, n.ContentType, n.Channel, n.Place, n.Thumb, n.NameTitle, n.Tags}
}

// Properties returns the streaming-write property document.
func (n NewsItem) Properties() (string, error) {
	props := map[string]string{
		"contentType": n.ContentType,
		"channel":     n.Channel,
		"place":       n.Place,
		"thumb":       n.Thumb,
		"nameTitle":   n.NameTitle,
	}
	if strings.TrimSpace(n.Tags) != "" {
		props["tags"] = n.Tags
	}
	return marshalProperties(props)
}

func marshalProperties(props map[string]string) (string, error) {
	out, err := json.Marshal(props)
	if err != nil {
		return "", fmt.Errorf("failed to encode item properties: %w", err)
	}
	return string(out), nil
}

// Normalize folds one cache row into its domain shape. Blank required fields
// degrade to the placeholder; tags stay as-is (nullable downstream). A blank
// content id or an unknown content type drops the record via ErrSkipRecord.
func Normalize(rec models.ContentRecord) (Item, error) {
	if strings.TrimSpace(rec.ContentID) == "" {
		return nil, fmt.Errorf("%w: blank content id", ErrSkipRecord)
	}

	switch rec.ContentType {
	case models.TypeVideo:
		return VideoItem{
			ID:          rec.ContentID,
			ContentType: orPlaceholder(rec.ContentType),
			Description: orPlaceholder(rec.Description),
			Duration:    orPlaceholder(rec.DurationMs),
			Thumb:       orPlaceholder(rec.Thumb),
			NameTitle:   orPlaceholder(rec.NameTitle),
			Tags:        rec.Tags,
		}, nil
	case models.TypeNews:
		return NewsItem{
			ID:          rec.ContentID,
			ContentType: orPlaceholder(rec.ContentType),
			Channel:     orPlaceholder(rec.Channel),
			Place:       orPlaceholder(rec.Place),
			Thumb:       orPlaceholder(rec.Thumb),
			NameTitle:   orPlaceholder(rec.NameTitle),
			Tags:        rec.Tags,
		}, nil
	default:
		return nil, fmt.Errorf("%w: content type %q has no dataset", ErrSkipRecord, rec.ContentType)
	}
}

func orPlaceholder(value string) string {
	if strings.TrimSpace(value) == "" {
		return Placeholder
	}
	return value
}
