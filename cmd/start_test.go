package cmd

import (
	"fmt"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/personalize"
	personalizetypes "github.com/aws/aws-sdk-go-v2/service/personalize/types"
	"github.com/aws/aws-sdk-go-v2/service/personalizeevents"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
	ssmtypes "github.com/aws/aws-sdk-go-v2/service/ssm/types"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"p13n-sync/core/config"
	"p13n-sync/core/recommend"
	recommendmocks "p13n-sync/core/recommend/mocks"
	"p13n-sync/core/storage"
	storagemocks "p13n-sync/core/storage/mocks"
)

type triggerMocks struct {
	api    *recommendmocks.PersonalizeAPI
	events *recommendmocks.EventsAPI
	params *recommendmocks.ParameterAPI
	store  *storagemocks.Client
}

// triggerApp registers the trigger routes on a bare app, without a
// database connection.
func triggerApp() (*fiber.App, triggerMocks) {
	m := triggerMocks{
		api:    new(recommendmocks.PersonalizeAPI),
		events: new(recommendmocks.EventsAPI),
		params: new(recommendmocks.ParameterAPI),
		store:  new(storagemocks.Client),
	}

	cfg := &config.Config{
		Storage: storage.Config{Bucket: "staging", BehaviourBucket: "behaviour"},
		Recommend: recommend.Config{
			App:           "fanapp",
			Stage:         "dev",
			VideoGroupArn: "arn:group/video",
			NewsGroupArn:  "arn:group/news",
			BatchSize:     10,
			PauseMillis:   1,
		},
	}
	app := fiber.New()
	registerTriggers(app, triggerDeps{
		cfg:   cfg,
		store: m.store,
		clients: &recommend.Clients{
			Personalize: m.api,
			Events:      m.events,
			Parameters:  m.params,
		},
		logger: zap.NewNop(),
	})
	return app, m
}

func TestTriggers_StreamContentAppliesBatch(t *testing.T) {
	app, m := triggerApp()

	for _, domain := range []string{"video", "news"} {
		path := fmt.Sprintf("/fanapp/dev/%sContentDataSetArn", domain)
		arn := "arn:ds/" + domain
		m.params.On("GetParameter", mock.Anything, mock.MatchedBy(func(in *ssm.GetParameterInput) bool {
			return aws.ToString(in.Name) == path
		})).Return(&ssm.GetParameterOutput{
			Parameter: &ssmtypes.Parameter{Value: aws.String(arn)},
		}, nil)
	}
	m.events.On("PutItems", mock.Anything, mock.MatchedBy(func(in *personalizeevents.PutItemsInput) bool {
		return aws.ToString(in.DatasetArn) == "arn:ds/video" && len(in.Items) == 1
	})).Return(&personalizeevents.PutItemsOutput{}, nil)

	body := `{"events":[{"eventName":"INSERT","record":{"contentId":"vid-1","contentType":"video","nameTitle":"One"}}]}`
	req := httptest.NewRequest("POST", "/stream/content", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)

	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	m.events.AssertNumberOfCalls(t, "PutItems", 1)
}

func TestTriggers_StreamContentRejectsBadBatch(t *testing.T) {
	app, m := triggerApp()

	req := httptest.NewRequest("POST", "/stream/content", strings.NewReader("not json"))
	resp, err := app.Test(req)
	require.NoError(t, err)

	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	m.events.AssertNotCalled(t, "PutItems", mock.Anything, mock.Anything)
}

func TestTriggers_StreamUsersWritesBothGroups(t *testing.T) {
	app, m := triggerApp()

	for _, domain := range []string{"video", "news"} {
		groupArn := "arn:group/" + domain
		m.api.On("ListDatasets", mock.Anything, mock.MatchedBy(func(in *personalize.ListDatasetsInput) bool {
			return aws.ToString(in.DatasetGroupArn) == groupArn
		})).Return(&personalize.ListDatasetsOutput{
			Datasets: []personalizetypes.DatasetSummary{
				{DatasetType: aws.String("USERS"), DatasetArn: aws.String("arn:ds/users-" + domain)},
			},
		}, nil)
	}
	m.events.On("PutUsers", mock.Anything, mock.Anything).
		Return(&personalizeevents.PutUsersOutput{}, nil)

	body := `{"events":[{"eventName":"MODIFY","personalizationId":"u-1","answers":""}]}`
	req := httptest.NewRequest("POST", "/stream/users", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)

	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	m.events.AssertNumberOfCalls(t, "PutUsers", 2)
}

func TestTriggers_TrainRejectsUnknownDomain(t *testing.T) {
	app, m := triggerApp()

	resp, err := app.Test(httptest.NewRequest("POST", "/recommend/train/typo", nil))
	require.NoError(t, err)

	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	m.api.AssertNotCalled(t, "ListSolutions", mock.Anything, mock.Anything)
}

func TestTriggers_ContentSyncWithoutDatabase(t *testing.T) {
	app, m := triggerApp()

	resp, err := app.Test(httptest.NewRequest("POST", "/sync/content", nil))
	require.NoError(t, err)

	assert.Equal(t, fiber.StatusServiceUnavailable, resp.StatusCode)
	m.store.AssertNotCalled(t, "PutObject", mock.Anything, mock.Anything, mock.Anything,
		mock.Anything, mock.Anything, mock.Anything)
}
