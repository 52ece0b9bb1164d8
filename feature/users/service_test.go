package users

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/personalize"
	personalizetypes "github.com/aws/aws-sdk-go-v2/service/personalize/types"
	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"p13n-sync/core/recommend"
	recommendmocks "p13n-sync/core/recommend/mocks"
	storagemocks "p13n-sync/core/storage/mocks"
	"p13n-sync/feature/users/models"
)

type fakeProfiles struct {
	profiles []models.UserProfile
	err      error
}

func (f *fakeProfiles) ListOnboarded(ctx context.Context) ([]models.UserProfile, error) {
	return f.profiles, f.err
}

func userConfig() recommend.Config {
	return recommend.Config{
		App:                     "fanapp",
		Stage:                   "dev",
		VideoGroupArn:           "arn:group/video",
		NewsGroupArn:            "arn:group/news",
		ImportRoleArn:           "arn:role/import",
		UserPollSeconds:         1,
		UserPollDeadlineMinutes: 1,
	}
}

func stubUserControlPlane(api *recommendmocks.PersonalizeAPI) {
	api.On("ListSchemas", mock.Anything, mock.Anything).Return(&personalize.ListSchemasOutput{}, nil)
	api.On("CreateSchema", mock.Anything, mock.Anything).
		Return(&personalize.CreateSchemaOutput{SchemaArn: aws.String("arn:schema/users")}, nil)
	api.On("ListDatasets", mock.Anything, mock.Anything).Return(&personalize.ListDatasetsOutput{}, nil)
	api.On("CreateDataset", mock.Anything, mock.Anything).
		Return(&personalize.CreateDatasetOutput{DatasetArn: aws.String("arn:ds/users")}, nil)
	api.On("DescribeDataset", mock.Anything, mock.Anything).
		Return(&personalize.DescribeDatasetOutput{
			Dataset: &personalizetypes.Dataset{Status: aws.String("ACTIVE")},
		}, nil)
	api.On("ListDatasetImportJobs", mock.Anything, mock.Anything).
		Return(&personalize.ListDatasetImportJobsOutput{}, nil)
	api.On("CreateDatasetImportJob", mock.Anything, mock.Anything).
		Return(&personalize.CreateDatasetImportJobOutput{DatasetImportJobArn: aws.String("arn:job/users")}, nil)
}

func TestService_StagesOnceImportsBothGroups(t *testing.T) {
	repo := &fakeProfiles{profiles: []models.UserProfile{
		{
			PersonalizationID: "u-1",
			Kind:              models.OnboardingKind,
			Answers:           `{"answers":[{"questionId":"FAVORITE_DRIVER","values":["leclerc"]}]}`,
		},
		// Same user twice in the scan; only one row is staged.
		{PersonalizationID: "u-1", Kind: models.OnboardingKind},
		{PersonalizationID: "", Kind: models.OnboardingKind},
	}}

	var staged []byte
	store := new(storagemocks.Client)
	store.On("PutObject", mock.Anything, "staging", StagingObject,
		mock.Anything, mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			body, err := io.ReadAll(args.Get(3).(io.Reader))
			require.NoError(t, err)
			staged = body
		}).
		Return(minio.UploadInfo{}, nil)

	api := new(recommendmocks.PersonalizeAPI)
	stubUserControlPlane(api)

	svc := NewService(repo, store, api, userConfig(), "staging", zap.NewNop())
	require.NoError(t, svc.Run(context.Background()))

	assert.Equal(t, "USER_ID,FAV_DRIVERS,FAV_CARS,FAV_CIRCUITS\nu-1,leclerc,,\n", string(staged))
	store.AssertNumberOfCalls(t, "PutObject", 1)

	// One idempotent job per group, both fed from the shared artifact.
	var jobNames, locations []string
	for _, call := range api.Calls {
		if call.Method != "CreateDatasetImportJob" {
			continue
		}
		in := call.Arguments.Get(1).(*personalize.CreateDatasetImportJobInput)
		jobNames = append(jobNames, aws.ToString(in.JobName))
		locations = append(locations, aws.ToString(in.DataSource.DataLocation))
	}
	assert.Equal(t, []string{
		"fanapp-video-user-import-bulk-dev",
		"fanapp-news-user-import-bulk-dev",
	}, jobNames)
	assert.Equal(t, []string{
		"s3://staging/user-meta.csv",
		"s3://staging/user-meta.csv",
	}, locations)
}

func TestService_ExistingJobShortCircuits(t *testing.T) {
	repo := &fakeProfiles{profiles: []models.UserProfile{
		{PersonalizationID: "u-1", Kind: models.OnboardingKind},
	}}

	store := new(storagemocks.Client)
	store.On("PutObject", mock.Anything, "staging", StagingObject,
		mock.Anything, mock.Anything, mock.Anything).Return(minio.UploadInfo{}, nil)

	api := new(recommendmocks.PersonalizeAPI)
	api.On("ListSchemas", mock.Anything, mock.Anything).Return(&personalize.ListSchemasOutput{
		Schemas: []personalizetypes.DatasetSchemaSummary{
			{Name: aws.String("fanapp-video-users-schema"), SchemaArn: aws.String("arn:schema/v")},
			{Name: aws.String("fanapp-news-users-schema"), SchemaArn: aws.String("arn:schema/n")},
		},
	}, nil)
	api.On("ListDatasets", mock.Anything, mock.Anything).Return(&personalize.ListDatasetsOutput{
		Datasets: []personalizetypes.DatasetSummary{
			{DatasetType: aws.String("USERS"), DatasetArn: aws.String("arn:ds/users")},
		},
	}, nil)
	api.On("DescribeDataset", mock.Anything, mock.Anything).
		Return(&personalize.DescribeDatasetOutput{
			Dataset: &personalizetypes.Dataset{Status: aws.String("ACTIVE")},
		}, nil)
	api.On("ListDatasetImportJobs", mock.Anything, mock.Anything).
		Return(&personalize.ListDatasetImportJobsOutput{
			DatasetImportJobs: []personalizetypes.DatasetImportJobSummary{
				{JobName: aws.String("fanapp-video-user-import-bulk-dev"), DatasetImportJobArn: aws.String("arn:job/v")},
				{JobName: aws.String("fanapp-news-user-import-bulk-dev"), DatasetImportJobArn: aws.String("arn:job/n")},
			},
		}, nil)

	svc := NewService(repo, store, api, userConfig(), "staging", zap.NewNop())
	require.NoError(t, svc.Run(context.Background()))

	api.AssertNotCalled(t, "CreateDatasetImportJob", mock.Anything, mock.Anything)
	api.AssertNotCalled(t, "CreateSchema", mock.Anything, mock.Anything)
	api.AssertNotCalled(t, "CreateDataset", mock.Anything, mock.Anything)
}

func TestService_ProfileScanErrorStopsRun(t *testing.T) {
	repo := &fakeProfiles{err: errors.New("table scan failed")}
	store := new(storagemocks.Client)
	api := new(recommendmocks.PersonalizeAPI)

	svc := NewService(repo, store, api, userConfig(), "staging", zap.NewNop())
	err := svc.Run(context.Background())

	require.Error(t, err)
	assert.ErrorContains(t, err, "table scan failed")
	store.AssertNotCalled(t, "PutObject", mock.Anything, mock.Anything, mock.Anything,
		mock.Anything, mock.Anything, mock.Anything)
}
