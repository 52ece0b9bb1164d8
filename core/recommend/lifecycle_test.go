package recommend

import (
	"context"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/personalize"
	"github.com/aws/aws-sdk-go-v2/service/personalize/types"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"p13n-sync/core/recommend/mocks"
)

func lifecycleConfig() Config {
	return Config{
		App:               "fanapp",
		Stage:             "dev",
		VideoGroupArn:     "arn:group/video",
		NewsGroupArn:      "arn:group/news",
		CampaignVideo:     "fanapp-video-similar-items",
		CampaignNews:      "fanapp-news-similar-items",
		MinProvisionedTPS: 1,
		TrainPollSeconds:  1,
		MinNDCG5:          0.1,
		MinPrecision5:     0.01,
	}
}

func metricsOutput(ndcg, precision float64) *personalize.GetSolutionMetricsOutput {
	return &personalize.GetSolutionMetricsOutput{
		Metrics: map[string]float64{
			metricNDCG5:      ndcg,
			metricPrecision5: precision,
		},
	}
}

func TestLifecycle_PromoteRejectsWeakVersion(t *testing.T) {
	api := new(mocks.PersonalizeAPI)
	params := new(mocks.ParameterAPI)
	api.On("GetSolutionMetrics", mock.Anything, mock.Anything).
		Return(metricsOutput(0.05, 0.02), nil)

	l := NewLifecycle(api, params, lifecycleConfig(), zap.NewNop())
	_, err := l.Promote(context.Background(), "video", "arn:solution/video", "arn:version/weak")

	assert.ErrorIs(t, err, ErrMetricsBelowThreshold)
	api.AssertNotCalled(t, "ListCampaigns", mock.Anything, mock.Anything)
	api.AssertNotCalled(t, "CreateCampaign", mock.Anything, mock.Anything)
	params.AssertNotCalled(t, "PutParameter", mock.Anything, mock.Anything)
}

func TestLifecycle_PromoteCreatesCampaignOnFirstRun(t *testing.T) {
	api := new(mocks.PersonalizeAPI)
	params := new(mocks.ParameterAPI)
	api.On("GetSolutionMetrics", mock.Anything, mock.Anything).
		Return(metricsOutput(0.3, 0.05), nil)
	api.On("ListCampaigns", mock.Anything, mock.Anything).
		Return(&personalize.ListCampaignsOutput{}, nil)
	api.On("CreateCampaign", mock.Anything, mock.MatchedBy(func(in *personalize.CreateCampaignInput) bool {
		return aws.ToString(in.Name) == "fanapp-video-similar-items" &&
			aws.ToString(in.SolutionVersionArn) == "arn:version/strong"
	})).Return(&personalize.CreateCampaignOutput{CampaignArn: aws.String("arn:campaign/video")}, nil)
	api.On("DescribeCampaign", mock.Anything, mock.Anything).
		Return(&personalize.DescribeCampaignOutput{
			Campaign: &types.Campaign{Status: aws.String(statusActive)},
		}, nil)
	params.On("PutParameter", mock.Anything, mock.MatchedBy(func(in *ssm.PutParameterInput) bool {
		return aws.ToString(in.Name) == "/fanapp-video/dev/Similar_items/campaignArn" &&
			aws.ToString(in.Value) == "arn:campaign/video"
	})).Return(&ssm.PutParameterOutput{}, nil)

	l := NewLifecycle(api, params, lifecycleConfig(), zap.NewNop())
	arn, err := l.Promote(context.Background(), "video", "arn:solution/video", "arn:version/strong")

	require.NoError(t, err)
	assert.Equal(t, "arn:campaign/video", arn)
	api.AssertNotCalled(t, "UpdateCampaign", mock.Anything, mock.Anything)
}

func TestLifecycle_PromoteUpdatesExistingCampaign(t *testing.T) {
	api := new(mocks.PersonalizeAPI)
	params := new(mocks.ParameterAPI)
	api.On("GetSolutionMetrics", mock.Anything, mock.Anything).
		Return(metricsOutput(0.3, 0.05), nil)
	api.On("ListCampaigns", mock.Anything, mock.Anything).
		Return(&personalize.ListCampaignsOutput{
			Campaigns: []types.CampaignSummary{
				{Name: aws.String("fanapp-news-similar-items"), CampaignArn: aws.String("arn:campaign/news")},
			},
		}, nil)
	api.On("UpdateCampaign", mock.Anything, mock.MatchedBy(func(in *personalize.UpdateCampaignInput) bool {
		return aws.ToString(in.CampaignArn) == "arn:campaign/news" &&
			aws.ToString(in.SolutionVersionArn) == "arn:version/next"
	})).Return(&personalize.UpdateCampaignOutput{}, nil)
	api.On("DescribeCampaign", mock.Anything, mock.Anything).
		Return(&personalize.DescribeCampaignOutput{
			Campaign: &types.Campaign{Status: aws.String(statusActive)},
		}, nil)
	params.On("PutParameter", mock.Anything, mock.Anything).Return(&ssm.PutParameterOutput{}, nil)

	l := NewLifecycle(api, params, lifecycleConfig(), zap.NewNop())
	arn, err := l.Promote(context.Background(), "news", "arn:solution/news", "arn:version/next")

	require.NoError(t, err)
	assert.Equal(t, "arn:campaign/news", arn)
	api.AssertNotCalled(t, "CreateCampaign", mock.Anything, mock.Anything)
}

func TestLifecycle_ProvisionTrackerPublishesPointer(t *testing.T) {
	api := new(mocks.PersonalizeAPI)
	params := new(mocks.ParameterAPI)
	api.On("ListEventTrackers", mock.Anything, mock.Anything).
		Return(&personalize.ListEventTrackersOutput{}, nil)
	api.On("CreateEventTracker", mock.Anything, mock.Anything).
		Return(&personalize.CreateEventTrackerOutput{
			EventTrackerArn: aws.String("arn:tracker/video"),
			TrackingId:      aws.String("trk-456"),
		}, nil)
	params.On("PutParameter", mock.Anything, mock.MatchedBy(func(in *ssm.PutParameterInput) bool {
		return aws.ToString(in.Name) == "/fanapp-video/Event_tracker/tracking_id" &&
			aws.ToString(in.Value) == "trk-456"
	})).Return(&ssm.PutParameterOutput{}, nil)

	l := NewLifecycle(api, params, lifecycleConfig(), zap.NewNop())
	trackingID, err := l.ProvisionTracker(context.Background(), "video")

	require.NoError(t, err)
	assert.Equal(t, "trk-456", trackingID)
	params.AssertExpectations(t)
}
