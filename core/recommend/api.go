package recommend

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/service/personalize"
	"github.com/aws/aws-sdk-go-v2/service/personalizeevents"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
)

// PersonalizeAPI is the slice of the dataset service control plane this
// system uses. It abstracts the AWS SDK v2 client so the registry, waiter
// and lifecycle components can be tested with mocks.
type PersonalizeAPI interface {
	ListSchemas(ctx context.Context, params *personalize.ListSchemasInput, optFns ...func(*personalize.Options)) (*personalize.ListSchemasOutput, error)
	CreateSchema(ctx context.Context, params *personalize.CreateSchemaInput, optFns ...func(*personalize.Options)) (*personalize.CreateSchemaOutput, error)
	ListDatasets(ctx context.Context, params *personalize.ListDatasetsInput, optFns ...func(*personalize.Options)) (*personalize.ListDatasetsOutput, error)
	CreateDataset(ctx context.Context, params *personalize.CreateDatasetInput, optFns ...func(*personalize.Options)) (*personalize.CreateDatasetOutput, error)
	DescribeDataset(ctx context.Context, params *personalize.DescribeDatasetInput, optFns ...func(*personalize.Options)) (*personalize.DescribeDatasetOutput, error)
	ListDatasetImportJobs(ctx context.Context, params *personalize.ListDatasetImportJobsInput, optFns ...func(*personalize.Options)) (*personalize.ListDatasetImportJobsOutput, error)
	CreateDatasetImportJob(ctx context.Context, params *personalize.CreateDatasetImportJobInput, optFns ...func(*personalize.Options)) (*personalize.CreateDatasetImportJobOutput, error)
	CreateEventTracker(ctx context.Context, params *personalize.CreateEventTrackerInput, optFns ...func(*personalize.Options)) (*personalize.CreateEventTrackerOutput, error)
	ListEventTrackers(ctx context.Context, params *personalize.ListEventTrackersInput, optFns ...func(*personalize.Options)) (*personalize.ListEventTrackersOutput, error)
	DescribeEventTracker(ctx context.Context, params *personalize.DescribeEventTrackerInput, optFns ...func(*personalize.Options)) (*personalize.DescribeEventTrackerOutput, error)
	ListSolutions(ctx context.Context, params *personalize.ListSolutionsInput, optFns ...func(*personalize.Options)) (*personalize.ListSolutionsOutput, error)
	CreateSolution(ctx context.Context, params *personalize.CreateSolutionInput, optFns ...func(*personalize.Options)) (*personalize.CreateSolutionOutput, error)
	CreateSolutionVersion(ctx context.Context, params *personalize.CreateSolutionVersionInput, optFns ...func(*personalize.Options)) (*personalize.CreateSolutionVersionOutput, error)
	DescribeSolutionVersion(ctx context.Context, params *personalize.DescribeSolutionVersionInput, optFns ...func(*personalize.Options)) (*personalize.DescribeSolutionVersionOutput, error)
	GetSolutionMetrics(ctx context.Context, params *personalize.GetSolutionMetricsInput, optFns ...func(*personalize.Options)) (*personalize.GetSolutionMetricsOutput, error)
	ListCampaigns(ctx context.Context, params *personalize.ListCampaignsInput, optFns ...func(*personalize.Options)) (*personalize.ListCampaignsOutput, error)
	CreateCampaign(ctx context.Context, params *personalize.CreateCampaignInput, optFns ...func(*personalize.Options)) (*personalize.CreateCampaignOutput, error)
	UpdateCampaign(ctx context.Context, params *personalize.UpdateCampaignInput, optFns ...func(*personalize.Options)) (*personalize.UpdateCampaignOutput, error)
	DescribeCampaign(ctx context.Context, params *personalize.DescribeCampaignInput, optFns ...func(*personalize.Options)) (*personalize.DescribeCampaignOutput, error)
}

// EventsAPI is the streaming write surface of the dataset service.
type EventsAPI interface {
	PutItems(ctx context.Context, params *personalizeevents.PutItemsInput, optFns ...func(*personalizeevents.Options)) (*personalizeevents.PutItemsOutput, error)
	PutUsers(ctx context.Context, params *personalizeevents.PutUsersInput, optFns ...func(*personalizeevents.Options)) (*personalizeevents.PutUsersOutput, error)
}

// ParameterAPI is the durable parameter store surface.
type ParameterAPI interface {
	GetParameter(ctx context.Context, params *ssm.GetParameterInput, optFns ...func(*ssm.Options)) (*ssm.GetParameterOutput, error)
	PutParameter(ctx context.Context, params *ssm.PutParameterInput, optFns ...func(*ssm.Options)) (*ssm.PutParameterOutput, error)
}
