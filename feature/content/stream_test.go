package content

import (
	"context"
	"fmt"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/personalizeevents"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
	ssmtypes "github.com/aws/aws-sdk-go-v2/service/ssm/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"p13n-sync/core/recommend"
	recommendmocks "p13n-sync/core/recommend/mocks"
	"p13n-sync/feature/content/models"
)

func streamConfig() recommend.Config {
	return recommend.Config{
		App:         "fanapp",
		Stage:       "dev",
		BatchSize:   10,
		PauseMillis: 0,
	}
}

func stubDatasetPointers(params *recommendmocks.ParameterAPI) {
	for _, domain := range []string{"video", "news"} {
		path := fmt.Sprintf("/fanapp/dev/%sContentDataSetArn", domain)
		arn := "arn:ds/" + domain
		params.On("GetParameter", mock.Anything, mock.MatchedBy(func(in *ssm.GetParameterInput) bool {
			return aws.ToString(in.Name) == path
		})).Return(&ssm.GetParameterOutput{
			Parameter: &ssmtypes.Parameter{Value: aws.String(arn)},
		}, nil)
	}
}

func TestStream_RoutesAndBatches(t *testing.T) {
	params := new(recommendmocks.ParameterAPI)
	stubDatasetPointers(params)

	var putDatasets []string
	var putCounts []int
	events := new(recommendmocks.EventsAPI)
	events.On("PutItems", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			in := args.Get(1).(*personalizeevents.PutItemsInput)
			putDatasets = append(putDatasets, aws.ToString(in.DatasetArn))
			putCounts = append(putCounts, len(in.Items))
		}).
		Return(&personalizeevents.PutItemsOutput{}, nil)

	changes := make([]ChangeEvent, 0, 25)
	for i := 0; i < 23; i++ {
		changes = append(changes, ChangeEvent{
			EventName: EventModify,
			Record: models.ContentRecord{
				ContentID:   fmt.Sprintf("vid-%d", i),
				ContentType: models.TypeVideo,
				NameTitle:   "t",
			},
		})
	}
	changes = append(changes,
		ChangeEvent{EventName: EventRemove},
		ChangeEvent{EventName: EventInsert, Record: models.ContentRecord{
			ContentID: "news/published/x", ContentType: models.TypeNews,
		}},
	)

	st := NewStream(events, params, streamConfig(), zap.NewNop())
	require.NoError(t, st.Run(context.Background(), changes))

	// 23 video items flush as 10+10+3, the single news item as 1.
	assert.Equal(t, []int{10, 10, 3, 1}, putCounts)
	assert.Equal(t, []string{"arn:ds/video", "arn:ds/video", "arn:ds/video", "arn:ds/news"}, putDatasets)
}

func TestStream_DeduplicatesWithinRun(t *testing.T) {
	params := new(recommendmocks.ParameterAPI)
	stubDatasetPointers(params)

	events := new(recommendmocks.EventsAPI)
	events.On("PutItems", mock.Anything, mock.MatchedBy(func(in *personalizeevents.PutItemsInput) bool {
		return len(in.Items) == 1
	})).Return(&personalizeevents.PutItemsOutput{}, nil)

	record := models.ContentRecord{ContentID: "vid-1", ContentType: models.TypeVideo}
	st := NewStream(events, params, streamConfig(), zap.NewNop())
	err := st.Run(context.Background(), []ChangeEvent{
		{EventName: EventInsert, Record: record},
		{EventName: EventModify, Record: record},
	})

	require.NoError(t, err)
	events.AssertNumberOfCalls(t, "PutItems", 1)
}

func TestParseChangeBatch(t *testing.T) {
	events, err := ParseChangeBatch([]byte(
		`{"events":[{"eventName":"INSERT","record":{"contentId":"vid-1","contentType":"video"}}]}`))
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, EventInsert, events[0].EventName)
	assert.Equal(t, "vid-1", events[0].Record.ContentID)

	_, err = ParseChangeBatch([]byte("not json"))
	assert.ErrorContains(t, err, "unreadable change batch")
}

func TestStream_SkipsRecordsWithoutKey(t *testing.T) {
	params := new(recommendmocks.ParameterAPI)
	stubDatasetPointers(params)
	events := new(recommendmocks.EventsAPI)

	st := NewStream(events, params, streamConfig(), zap.NewNop())
	err := st.Run(context.Background(), []ChangeEvent{
		{EventName: EventInsert, Record: models.ContentRecord{ContentType: models.TypeVideo}},
	})

	require.NoError(t, err)
	events.AssertNotCalled(t, "PutItems", mock.Anything, mock.Anything)
}
