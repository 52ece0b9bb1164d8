package interactions

import (
	"encoding/json"
	"strconv"
	"strings"
)

// Screen identifiers of the two tracked detail views.
const (
	eventTypeScreenView = "screen_view"
	screenVideoPlayer   = "video-player"
	screenNewsDetail    = "news-detail"
)

// Header is the CSV header of the interaction staging artifacts.
var Header = []string{"USER_ID", "ITEM_ID", "TIMESTAMP"}

// RawEvent is one behaviour-log row as exported by the analytics pipeline.
type RawEvent struct {
	EventType      string `json:"event_type"`
	EventTimestamp int64  `json:"event_timestamp"`
	Attributes     struct {
		ScreenName        string `json:"screen_name"`
		ScreenClass       string `json:"screen_class"`
		PersonalizationID string `json:"personalization_id"`
	} `json:"attributes"`
}

// ViewEvent is one detail view attributed to a user. Repeated views stay
// repeated; the dataset service weighs frequency itself.
type ViewEvent struct {
	UserID    string
	ItemID    string
	Timestamp int64
}

// Row returns the event in staging CSV column order.
func (v ViewEvent) Row() []string {
	return []string{v.UserID, v.ItemID, formatTimestamp(v.Timestamp)}
}

// TransformVideo keeps screen views of the video player and recovers the item
// id from the player URL in the screen class.
func TransformVideo(events []RawEvent) []ViewEvent {
	var views []ViewEvent
	for _, event := range events {
		if event.EventType != eventTypeScreenView ||
			event.Attributes.ScreenName != screenVideoPlayer {
			continue
		}
		itemID := videoItemID(event.Attributes.ScreenClass)
		if itemID == "" || event.Attributes.PersonalizationID == "" {
			continue
		}
		views = append(views, ViewEvent{
			UserID:    event.Attributes.PersonalizationID,
			ItemID:    itemID,
			Timestamp: event.EventTimestamp,
		})
	}
	return views
}

// TransformNews keeps screen views of the news detail screen. The screen
// class already carries the content id.
func TransformNews(events []RawEvent) []ViewEvent {
	var views []ViewEvent
	for _, event := range events {
		if event.EventType != eventTypeScreenView ||
			event.Attributes.ScreenName != screenNewsDetail {
			continue
		}
		if event.Attributes.ScreenClass == "" || event.Attributes.PersonalizationID == "" {
			continue
		}
		views = append(views, ViewEvent{
			UserID:    event.Attributes.PersonalizationID,
			ItemID:    event.Attributes.ScreenClass,
			Timestamp: event.EventTimestamp,
		})
	}
	return views
}

// videoItemID extracts the item id from a player URL. Player URLs end with
// .../<item-id>/<locale>/<quality>/<session>, so the id is the fourth segment
// from the end.
func videoItemID(screenClass string) string {
	segments := strings.Split(screenClass, "/")
	if len(segments) < 4 {
		return ""
	}
	return segments[len(segments)-4]
}

func formatTimestamp(ts int64) string {
	return strconv.FormatInt(ts, 10)
}

// ParseEvents decodes newline-delimited JSON event rows. Unreadable lines are
// counted and dropped, never fatal.
func ParseEvents(data []byte) (events []RawEvent, malformed int) {
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		var event RawEvent
		if err := json.Unmarshal([]byte(line), &event); err != nil {
			malformed++
			continue
		}
		events = append(events, event)
	}
	return events, malformed
}
