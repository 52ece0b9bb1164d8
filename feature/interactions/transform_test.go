package interactions

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func screenView(screenName, screenClass, userID string, ts int64) RawEvent {
	e := RawEvent{EventType: "screen_view", EventTimestamp: ts}
	e.Attributes.ScreenName = screenName
	e.Attributes.ScreenClass = screenClass
	e.Attributes.PersonalizationID = userID
	return e
}

func TestTransformVideo_ExtractsItemFromPlayerURL(t *testing.T) {
	events := []RawEvent{
		screenView("video-player", "https://player.example.com/embed/vid-42/en/hd/sess-9", "u-1", 1724900000),
		// Other screens and other event types never produce views.
		screenView("news-detail", "news/published/x", "u-1", 1724900001),
		{EventType: "session_start"},
	}

	views := TransformVideo(events)

	require.Len(t, views, 1)
	assert.Equal(t, ViewEvent{UserID: "u-1", ItemID: "vid-42", Timestamp: 1724900000}, views[0])
	assert.Equal(t, []string{"u-1", "vid-42", "1724900000"}, views[0].Row())
}

func TestTransformVideo_DropsShortAndAnonymousURLs(t *testing.T) {
	events := []RawEvent{
		screenView("video-player", "vid-only", "u-1", 1),
		screenView("video-player", "https://player.example.com/embed/vid-1/en/hd/s", "", 2),
	}

	assert.Empty(t, TransformVideo(events))
}

func TestTransformNews_UsesScreenClassAsItem(t *testing.T) {
	events := []RawEvent{
		screenView("news-detail", "fan-app-news/published/gp-report", "u-1", 10),
		screenView("news-detail", "fan-app-news/published/gp-report", "u-1", 20),
		screenView("news-detail", "", "u-1", 30),
	}

	views := TransformNews(events)

	// Repeated views are kept; the blank screen class is dropped.
	require.Len(t, views, 2)
	assert.Equal(t, "fan-app-news/published/gp-report", views[0].ItemID)
	assert.Equal(t, int64(20), views[1].Timestamp)
}

func TestParseEvents_SkipsMalformedLines(t *testing.T) {
	data := []byte(`{"event_type":"screen_view","event_timestamp":5,"attributes":{"screen_name":"news-detail","screen_class":"news/published/a","personalization_id":"u-1"}}
not json

{"event_type":"session_start"}`)

	events, malformed := ParseEvents(data)

	assert.Equal(t, 1, malformed)
	require.Len(t, events, 2)
	assert.Equal(t, "screen_view", events[0].EventType)
	assert.Equal(t, "u-1", events[0].Attributes.PersonalizationID)
}
