// Package mocks provides testify mocks for the recommend package interfaces.
package mocks

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/service/personalize"
	"github.com/aws/aws-sdk-go-v2/service/personalizeevents"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
	"github.com/stretchr/testify/mock"
)

// PersonalizeAPI is a mock of the dataset service control plane.
type PersonalizeAPI struct {
	mock.Mock
}

func (m *PersonalizeAPI) ListSchemas(ctx context.Context, params *personalize.ListSchemasInput, optFns ...func(*personalize.Options)) (*personalize.ListSchemasOutput, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*personalize.ListSchemasOutput), args.Error(1)
}

func (m *PersonalizeAPI) CreateSchema(ctx context.Context, params *personalize.CreateSchemaInput, optFns ...func(*personalize.Options)) (*personalize.CreateSchemaOutput, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*personalize.CreateSchemaOutput), args.Error(1)
}

func (m *PersonalizeAPI) ListDatasets(ctx context.Context, params *personalize.ListDatasetsInput, optFns ...func(*personalize.Options)) (*personalize.ListDatasetsOutput, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*personalize.ListDatasetsOutput), args.Error(1)
}

func (m *PersonalizeAPI) CreateDataset(ctx context.Context, params *personalize.CreateDatasetInput, optFns ...func(*personalize.Options)) (*personalize.CreateDatasetOutput, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*personalize.CreateDatasetOutput), args.Error(1)
}

func (m *PersonalizeAPI) DescribeDataset(ctx context.Context, params *personalize.DescribeDatasetInput, optFns ...func(*personalize.Options)) (*personalize.DescribeDatasetOutput, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*personalize.DescribeDatasetOutput), args.Error(1)
}

func (m *PersonalizeAPI) ListDatasetImportJobs(ctx context.Context, params *personalize.ListDatasetImportJobsInput, optFns ...func(*personalize.Options)) (*personalize.ListDatasetImportJobsOutput, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*personalize.ListDatasetImportJobsOutput), args.Error(1)
}

func (m *PersonalizeAPI) CreateDatasetImportJob(ctx context.Context, params *personalize.CreateDatasetImportJobInput, optFns ...func(*personalize.Options)) (*personalize.CreateDatasetImportJobOutput, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*personalize.CreateDatasetImportJobOutput), args.Error(1)
}

func (m *PersonalizeAPI) CreateEventTracker(ctx context.Context, params *personalize.CreateEventTrackerInput, optFns ...func(*personalize.Options)) (*personalize.CreateEventTrackerOutput, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*personalize.CreateEventTrackerOutput), args.Error(1)
}

func (m *PersonalizeAPI) ListEventTrackers(ctx context.Context, params *personalize.ListEventTrackersInput, optFns ...func(*personalize.Options)) (*personalize.ListEventTrackersOutput, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*personalize.ListEventTrackersOutput), args.Error(1)
}

func (m *PersonalizeAPI) DescribeEventTracker(ctx context.Context, params *personalize.DescribeEventTrackerInput, optFns ...func(*personalize.Options)) (*personalize.DescribeEventTrackerOutput, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*personalize.DescribeEventTrackerOutput), args.Error(1)
}

func (m *PersonalizeAPI) ListSolutions(ctx context.Context, params *personalize.ListSolutionsInput, optFns ...func(*personalize.Options)) (*personalize.ListSolutionsOutput, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*personalize.ListSolutionsOutput), args.Error(1)
}

func (m *PersonalizeAPI) CreateSolution(ctx context.Context, params *personalize.CreateSolutionInput, optFns ...func(*personalize.Options)) (*personalize.CreateSolutionOutput, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*personalize.CreateSolutionOutput), args.Error(1)
}

func (m *PersonalizeAPI) CreateSolutionVersion(ctx context.Context, params *personalize.CreateSolutionVersionInput, optFns ...func(*personalize.Options)) (*personalize.CreateSolutionVersionOutput, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*personalize.CreateSolutionVersionOutput), args.Error(1)
}

func (m *PersonalizeAPI) DescribeSolutionVersion(ctx context.Context, params *personalize.DescribeSolutionVersionInput, optFns ...func(*personalize.Options)) (*personalize.DescribeSolutionVersionOutput, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*personalize.DescribeSolutionVersionOutput), args.Error(1)
}

func (m *PersonalizeAPI) GetSolutionMetrics(ctx context.Context, params *personalize.GetSolutionMetricsInput, optFns ...func(*personalize.Options)) (*personalize.GetSolutionMetricsOutput, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*personalize.GetSolutionMetricsOutput), args.Error(1)
}

func (m *PersonalizeAPI) ListCampaigns(ctx context.Context, params *personalize.ListCampaignsInput, optFns ...func(*personalize.Options)) (*personalize.ListCampaignsOutput, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*personalize.ListCampaignsOutput), args.Error(1)
}

func (m *PersonalizeAPI) CreateCampaign(ctx context.Context, params *personalize.CreateCampaignInput, optFns ...func(*personalize.Options)) (*personalize.CreateCampaignOutput, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*personalize.CreateCampaignOutput), args.Error(1)
}

func (m *PersonalizeAPI) UpdateCampaign(ctx context.Context, params *personalize.UpdateCampaignInput, optFns ...func(*personalize.Options)) (*personalize.UpdateCampaignOutput, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*personalize.UpdateCampaignOutput), args.Error(1)
}

func (m *PersonalizeAPI) DescribeCampaign(ctx context.Context, params *personalize.DescribeCampaignInput, optFns ...func(*personalize.Options)) (*personalize.DescribeCampaignOutput, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*personalize.DescribeCampaignOutput), args.Error(1)
}

// EventsAPI is a mock of the streaming write surface.
type EventsAPI struct {
	mock.Mock
}

func (m *EventsAPI) PutItems(ctx context.Context, params *personalizeevents.PutItemsInput, optFns ...func(*personalizeevents.Options)) (*personalizeevents.PutItemsOutput, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*personalizeevents.PutItemsOutput), args.Error(1)
}

func (m *EventsAPI) PutUsers(ctx context.Context, params *personalizeevents.PutUsersInput, optFns ...func(*personalizeevents.Options)) (*personalizeevents.PutUsersOutput, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*personalizeevents.PutUsersOutput), args.Error(1)
}

// ParameterAPI is a mock of the durable parameter store surface.
type ParameterAPI struct {
	mock.Mock
}

func (m *ParameterAPI) GetParameter(ctx context.Context, params *ssm.GetParameterInput, optFns ...func(*ssm.Options)) (*ssm.GetParameterOutput, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ssm.GetParameterOutput), args.Error(1)
}

func (m *ParameterAPI) PutParameter(ctx context.Context, params *ssm.PutParameterInput, optFns ...func(*ssm.Options)) (*ssm.PutParameterOutput, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ssm.PutParameterOutput), args.Error(1)
}
