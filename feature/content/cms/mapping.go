package cms

import (
	"strings"
	"time"

	"p13n-sync/feature/content/models"
)

// ContentID derives the cache key for a news item. Items published on the
// fan-app channel keep that channel prefix; everything else lands under the
// generic news prefix.
func ContentID(item NewsItem) string {
	prefix := "news"
	if item.Content.Channel == "fan-app-news" {
		prefix = "fan-app-news"
	}
	return prefix + "/published/" + item.Slug
}

// JoinTags flattens the item's tag slugs into a pipe-separated string.
func JoinTags(tags []Tag) string {
	slugs := make([]string, 0, len(tags))
	for _, tag := range tags {
		if tag.Slug != "" {
			slugs = append(slugs, tag.Slug)
		}
	}
	return strings.Join(slugs, "|")
}

// ToRecord maps a listing item onto the cache row shape.
func ToRecord(item NewsItem, cdnHost string, ingestDate time.Time) models.ContentRecord {
	return models.ContentRecord{
		ContentID:   ContentID(item),
		ContentURL:  item.Slug,
		ContentType: models.TypeNews,
		IngestDate:  ingestDate.Format("2006-01-02"),
		NameTitle:   item.Title,
		Subtitle:    item.Content.InternalTitle,
		Thumb:       cdnHost + "/" + item.Content.Thumb.Landscape.ID,
		ThumbDesc:   item.Content.Thumb.Landscape.Alt,
		Channel:     item.Content.Channel,
		Place:       item.Content.Place,
		Tags:        JoinTags(item.Tags),
		PublishedAt: item.PublishedAt,
	}
}
