package thron

import (
	"strings"
	"time"

	"p13n-sync/feature/content/models"
)

// JoinTags flattens the English itag labels of an export item into a
// pipe-separated string.
func JoinTags(item ExportItem) string {
	var labels []string
	for _, def := range item.ItagDefinitions {
		for _, name := range def.Names {
			if strings.Contains(name.Lang, "EN") && name.Label != "" {
				labels = append(labels, name.Label)
			}
		}
	}
	return strings.Join(labels, "|")
}

// MatchesDeliveryChannel reports whether the item is deliverable on the
// channel that carries its content type.
func MatchesDeliveryChannel(item ExportItem) bool {
	channel := channelForType[strings.ToLower(item.Content.ContentType)]
	if channel == "" {
		return false
	}
	for _, info := range item.DeliveryInfo {
		if info.ChannelType == channel {
			return true
		}
	}
	return false
}

// ToRecord merges an export item with its detail lookup into the cache row
// shape.
func ToRecord(item ExportItem, detail Detail, ingestDate time.Time) models.ContentRecord {
	return models.ContentRecord{
		ContentID:   item.Content.ID,
		ContentURL:  detail.ContentURL,
		ContentType: detail.ContentType,
		IngestDate:  ingestDate.Format("2006-01-02"),
		NameTitle:   detail.NameTitle,
		Description: detail.Description,
		DurationMs:  detail.DurationMs,
		Thumb:       detail.ThumbURL,
		Tags:        JoinTags(item),
		CreatedAt:   detail.CreationDate,
		UpdatedAt:   detail.LastUpdate,
	}
}
