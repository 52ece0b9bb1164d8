package recommend

import (
	"context"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/personalize"
	"github.com/aws/aws-sdk-go-v2/service/personalize/types"
	"go.uber.org/zap"
)

// Dataset types within a group.
const (
	DatasetTypeItems        = "Items"
	DatasetTypeUsers        = "Users"
	DatasetTypeInteractions = "Interactions"
)

// listPageSize is the remote listing page limit in this domain.
const listPageSize = 100

// Registry resolves logical resource names to remote identifiers and creates
// resources that are absent.
//
// Lookup-then-create is not atomic against external concurrent creators, so
// every Ensure operation catches the remote "already exists" signal, resolves
// again (read-repair) and proceeds. At most one resource of a given
// (kind, name) is ever created by this system. Nothing is cached across
// invocations; each invocation re-resolves from scratch.
type Registry struct {
	api    PersonalizeAPI
	logger *zap.Logger
}

// NewRegistry creates a registry over the dataset service control plane.
func NewRegistry(api PersonalizeAPI, logger *zap.Logger) *Registry {
	return &Registry{api: api, logger: logger}
}

// ResolveSchema looks up a schema by name. The second return is false when
// the schema is absent.
func (r *Registry) ResolveSchema(ctx context.Context, name string) (string, bool, error) {
	out, err := r.api.ListSchemas(ctx, &personalize.ListSchemasInput{
		MaxResults: aws.Int32(listPageSize),
	})
	if err != nil {
		return "", false, fmt.Errorf("failed to list schemas: %w", err)
	}
	for _, schema := range out.Schemas {
		if aws.ToString(schema.Name) == name {
			return aws.ToString(schema.SchemaArn), true, nil
		}
	}
	return "", false, nil
}

// EnsureSchema resolves a schema by name, creating it when absent.
func (r *Registry) EnsureSchema(ctx context.Context, name, schemaJSON string) (string, error) {
	arn, present, err := r.ResolveSchema(ctx, name)
	if err != nil {
		return "", err
	}
	if present {
		r.logger.Info("schema already exists", zap.String("name", name), zap.String("arn", arn))
		return arn, nil
	}

	out, err := r.api.CreateSchema(ctx, &personalize.CreateSchemaInput{
		Name:   aws.String(name),
		Schema: aws.String(schemaJSON),
	})
	if err != nil {
		if IsAlreadyExists(err) {
			return r.resolveAgainSchema(ctx, name)
		}
		return "", fmt.Errorf("failed to create schema %s: %w", name, err)
	}
	r.logger.Info("schema created", zap.String("name", name), zap.String("arn", aws.ToString(out.SchemaArn)))
	return aws.ToString(out.SchemaArn), nil
}

// ResolveDataset looks up a dataset by type within a group.
func (r *Registry) ResolveDataset(ctx context.Context, groupArn, datasetType string) (string, bool, error) {
	out, err := r.api.ListDatasets(ctx, &personalize.ListDatasetsInput{
		DatasetGroupArn: aws.String(groupArn),
		MaxResults:      aws.Int32(listPageSize),
	})
	if err != nil {
		return "", false, fmt.Errorf("failed to list datasets: %w", err)
	}
	for _, dataset := range out.Datasets {
		if strings.EqualFold(aws.ToString(dataset.DatasetType), datasetType) {
			return aws.ToString(dataset.DatasetArn), true, nil
		}
	}
	return "", false, nil
}

// EnsureDataset resolves a dataset by type within a group, creating it bound
// to the given schema when absent.
func (r *Registry) EnsureDataset(ctx context.Context, groupArn, name, datasetType, schemaArn string) (string, error) {
	arn, present, err := r.ResolveDataset(ctx, groupArn, datasetType)
	if err != nil {
		return "", err
	}
	if present {
		r.logger.Info("dataset already exists", zap.String("type", datasetType), zap.String("arn", arn))
		return arn, nil
	}

	out, err := r.api.CreateDataset(ctx, &personalize.CreateDatasetInput{
		Name:            aws.String(name),
		DatasetGroupArn: aws.String(groupArn),
		DatasetType:     aws.String(datasetType),
		SchemaArn:       aws.String(schemaArn),
	})
	if err != nil {
		if IsAlreadyExists(err) {
			arn, present, err = r.ResolveDataset(ctx, groupArn, datasetType)
			if err != nil {
				return "", err
			}
			if !present {
				return "", fmt.Errorf("dataset %s reported existing but not resolvable in %s", datasetType, groupArn)
			}
			return arn, nil
		}
		return "", fmt.Errorf("failed to create dataset %s: %w", name, err)
	}
	r.logger.Info("dataset created", zap.String("name", name), zap.String("arn", aws.ToString(out.DatasetArn)))
	return aws.ToString(out.DatasetArn), nil
}

// ResolveImportJob looks up an import job by name on a dataset.
func (r *Registry) ResolveImportJob(ctx context.Context, datasetArn, jobName string) (string, bool, error) {
	out, err := r.api.ListDatasetImportJobs(ctx, &personalize.ListDatasetImportJobsInput{
		DatasetArn: aws.String(datasetArn),
		MaxResults: aws.Int32(listPageSize),
	})
	if err != nil {
		return "", false, fmt.Errorf("failed to list import jobs: %w", err)
	}
	for _, job := range out.DatasetImportJobs {
		if aws.ToString(job.JobName) == jobName {
			return aws.ToString(job.DatasetImportJobArn), true, nil
		}
	}
	return "", false, nil
}

// EnsureImportJob resolves an import job by name, submitting a new one
// referencing the staged location when absent.
func (r *Registry) EnsureImportJob(ctx context.Context, datasetArn, jobName, dataLocation, roleArn string) (string, error) {
	arn, present, err := r.ResolveImportJob(ctx, datasetArn, jobName)
	if err != nil {
		return "", err
	}
	if present {
		r.logger.Info("import job already exists", zap.String("job", jobName), zap.String("arn", arn))
		return arn, nil
	}

	out, err := r.api.CreateDatasetImportJob(ctx, &personalize.CreateDatasetImportJobInput{
		JobName:    aws.String(jobName),
		DatasetArn: aws.String(datasetArn),
		DataSource: &types.DataSource{DataLocation: aws.String(dataLocation)},
		RoleArn:    aws.String(roleArn),
	})
	if err != nil {
		if IsAlreadyExists(err) {
			arn, present, err = r.ResolveImportJob(ctx, datasetArn, jobName)
			if err != nil {
				return "", err
			}
			if !present {
				return "", fmt.Errorf("import job %s reported existing but not resolvable", jobName)
			}
			return arn, nil
		}
		return "", fmt.Errorf("failed to create import job %s: %w", jobName, err)
	}
	r.logger.Info("import job submitted",
		zap.String("job", jobName),
		zap.String("location", dataLocation),
		zap.String("arn", aws.ToString(out.DatasetImportJobArn)))
	return aws.ToString(out.DatasetImportJobArn), nil
}

// ResolveSolution looks up a solution by name within a group.
func (r *Registry) ResolveSolution(ctx context.Context, groupArn, name string) (string, bool, error) {
	out, err := r.api.ListSolutions(ctx, &personalize.ListSolutionsInput{
		DatasetGroupArn: aws.String(groupArn),
		MaxResults:      aws.Int32(listPageSize),
	})
	if err != nil {
		return "", false, fmt.Errorf("failed to list solutions: %w", err)
	}
	for _, solution := range out.Solutions {
		if aws.ToString(solution.Name) == name {
			return aws.ToString(solution.SolutionArn), true, nil
		}
	}
	return "", false, nil
}

// EnsureSolution resolves a solution by name, creating it on the given
// recipe when absent.
func (r *Registry) EnsureSolution(ctx context.Context, groupArn, name, recipeArn string) (string, error) {
	arn, present, err := r.ResolveSolution(ctx, groupArn, name)
	if err != nil {
		return "", err
	}
	if present {
		r.logger.Info("solution already exists", zap.String("name", name), zap.String("arn", arn))
		return arn, nil
	}

	out, err := r.api.CreateSolution(ctx, &personalize.CreateSolutionInput{
		Name:            aws.String(name),
		DatasetGroupArn: aws.String(groupArn),
		RecipeArn:       aws.String(recipeArn),
	})
	if err != nil {
		if IsAlreadyExists(err) {
			arn, present, err = r.ResolveSolution(ctx, groupArn, name)
			if err != nil {
				return "", err
			}
			if !present {
				return "", fmt.Errorf("solution %s reported existing but not resolvable in %s", name, groupArn)
			}
			return arn, nil
		}
		return "", fmt.Errorf("failed to create solution %s: %w", name, err)
	}
	r.logger.Info("solution created", zap.String("name", name), zap.String("arn", aws.ToString(out.SolutionArn)))
	return aws.ToString(out.SolutionArn), nil
}

// ResolveCampaign looks up a campaign by name among those serving a solution.
func (r *Registry) ResolveCampaign(ctx context.Context, solutionArn, name string) (string, bool, error) {
	out, err := r.api.ListCampaigns(ctx, &personalize.ListCampaignsInput{
		SolutionArn: aws.String(solutionArn),
		MaxResults:  aws.Int32(listPageSize),
	})
	if err != nil {
		return "", false, fmt.Errorf("failed to list campaigns: %w", err)
	}
	for _, campaign := range out.Campaigns {
		if aws.ToString(campaign.Name) == name {
			return aws.ToString(campaign.CampaignArn), true, nil
		}
	}
	return "", false, nil
}

// ResolveEventTracker looks up an event tracker by name within a group.
func (r *Registry) ResolveEventTracker(ctx context.Context, groupArn, name string) (string, bool, error) {
	out, err := r.api.ListEventTrackers(ctx, &personalize.ListEventTrackersInput{
		DatasetGroupArn: aws.String(groupArn),
		MaxResults:      aws.Int32(listPageSize),
	})
	if err != nil {
		return "", false, fmt.Errorf("failed to list event trackers: %w", err)
	}
	for _, tracker := range out.EventTrackers {
		if aws.ToString(tracker.Name) == name {
			return aws.ToString(tracker.EventTrackerArn), true, nil
		}
	}
	return "", false, nil
}

// EnsureEventTracker resolves an event tracker by name, creating it when
// absent. It returns the tracker ARN and its tracking id.
func (r *Registry) EnsureEventTracker(ctx context.Context, groupArn, name string) (arn, trackingID string, err error) {
	existing, present, err := r.ResolveEventTracker(ctx, groupArn, name)
	if err != nil {
		return "", "", err
	}
	if !present {
		out, createErr := r.api.CreateEventTracker(ctx, &personalize.CreateEventTrackerInput{
			Name:            aws.String(name),
			DatasetGroupArn: aws.String(groupArn),
		})
		if createErr == nil {
			r.logger.Info("event tracker created",
				zap.String("name", name),
				zap.String("arn", aws.ToString(out.EventTrackerArn)))
			return aws.ToString(out.EventTrackerArn), aws.ToString(out.TrackingId), nil
		}
		if !IsAlreadyExists(createErr) {
			return "", "", fmt.Errorf("failed to create event tracker %s: %w", name, createErr)
		}
		existing, present, err = r.ResolveEventTracker(ctx, groupArn, name)
		if err != nil {
			return "", "", err
		}
		if !present {
			return "", "", fmt.Errorf("event tracker %s reported existing but not resolvable in %s", name, groupArn)
		}
	}

	// The listing does not carry the tracking id; describe the tracker.
	desc, err := r.api.DescribeEventTracker(ctx, &personalize.DescribeEventTrackerInput{
		EventTrackerArn: aws.String(existing),
	})
	if err != nil {
		return "", "", fmt.Errorf("failed to describe event tracker %s: %w", name, err)
	}
	return existing, aws.ToString(desc.EventTracker.TrackingId), nil
}

func (r *Registry) resolveAgainSchema(ctx context.Context, name string) (string, error) {
	arn, present, err := r.ResolveSchema(ctx, name)
	if err != nil {
		return "", err
	}
	if !present {
		return "", fmt.Errorf("schema %s reported existing but not resolvable", name)
	}
	return arn, nil
}
