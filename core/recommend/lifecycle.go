package recommend

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/personalize"
	"go.uber.org/zap"
)

// Personalize metric keys used by the promotion guard.
const (
	metricNDCG5      = "normalized_discounted_cumulative_gain_at_5"
	metricPrecision5 = "precision_at_5"
)

// ErrMetricsBelowThreshold is returned when a trained version does not meet
// the promotion guard. The previous campaign version keeps serving.
var ErrMetricsBelowThreshold = errors.New("solution version metrics below promotion threshold")

// Lifecycle drives the training and serving side of a domain: event tracker
// provisioning, solution training, metric-guarded campaign promotion and
// pointer publication.
type Lifecycle struct {
	registry *Registry
	waiter   *Waiter
	pointers *Pointers
	api      PersonalizeAPI
	cfg      Config
	logger   *zap.Logger
}

// NewLifecycle wires the lifecycle over its collaborators.
func NewLifecycle(api PersonalizeAPI, params ParameterAPI, cfg Config, logger *zap.Logger) *Lifecycle {
	return &Lifecycle{
		registry: NewRegistry(api, logger),
		waiter:   NewWaiter(api, logger),
		pointers: NewPointers(params, cfg.App, cfg.Stage, logger),
		api:      api,
		cfg:      cfg,
		logger:   logger,
	}
}

// ProvisionTracker ensures the domain's event tracker exists and publishes
// its tracking id so event producers can discover it.
func (l *Lifecycle) ProvisionTracker(ctx context.Context, domain string) (string, error) {
	name := fmt.Sprintf("%s-%s-tracker", l.cfg.App, domain)
	_, trackingID, err := l.registry.EnsureEventTracker(ctx, l.cfg.GroupArn(domain), name)
	if err != nil {
		return "", err
	}
	if err := l.pointers.Publish(ctx, l.pointers.TrackingPath(domain), trackingID,
		"event tracker id for "+domain); err != nil {
		return "", err
	}
	return trackingID, nil
}

// Train ensures the domain's similar-items solution exists, starts a new
// version and waits for training to finish. It returns the solution ARN and
// the trained version ARN.
func (l *Lifecycle) Train(ctx context.Context, domain string) (solutionArn, versionArn string, err error) {
	name := fmt.Sprintf("%s-%s-similar-items", l.cfg.App, domain)
	solutionArn, err = l.registry.EnsureSolution(ctx, l.cfg.GroupArn(domain), name, l.cfg.RecipeArn)
	if err != nil {
		return "", "", err
	}
	if err = l.pointers.Publish(ctx, l.pointers.SolutionPath(domain), solutionArn,
		"similar-items solution for "+domain); err != nil {
		return "", "", err
	}

	out, err := l.api.CreateSolutionVersion(ctx, &personalize.CreateSolutionVersionInput{
		SolutionArn: aws.String(solutionArn),
	})
	if err != nil {
		return "", "", fmt.Errorf("failed to create solution version for %s: %w", name, err)
	}
	versionArn = aws.ToString(out.SolutionVersionArn)
	l.logger.Info("training started", zap.String("solution", name), zap.String("version", versionArn))

	interval, deadline := l.cfg.TrainPoll()
	if err = l.waiter.WaitSolutionVersionActive(ctx, versionArn, interval, deadline); err != nil {
		return "", "", err
	}
	return solutionArn, versionArn, nil
}

// Promote points the domain's campaign at a trained version, creating the
// campaign on first run. Promotion is guarded: a version whose offline
// metrics fall below the configured floor is rejected and the campaign keeps
// serving its current version.
func (l *Lifecycle) Promote(ctx context.Context, domain, solutionArn, versionArn string) (string, error) {
	if err := l.checkMetrics(ctx, versionArn); err != nil {
		return "", err
	}

	name := l.cfg.CampaignName(domain)
	tps := aws.Int32(int32(l.cfg.MinProvisionedTPS))
	interval, deadline := l.cfg.TrainPoll()

	campaignArn, present, err := l.registry.ResolveCampaign(ctx, solutionArn, name)
	if err != nil {
		return "", err
	}
	if present {
		if _, err = l.api.UpdateCampaign(ctx, &personalize.UpdateCampaignInput{
			CampaignArn:        aws.String(campaignArn),
			SolutionVersionArn: aws.String(versionArn),
			MinProvisionedTPS:  tps,
		}); err != nil {
			return "", fmt.Errorf("failed to update campaign %s: %w", name, err)
		}
		l.logger.Info("campaign updated", zap.String("name", name), zap.String("version", versionArn))
	} else {
		out, createErr := l.api.CreateCampaign(ctx, &personalize.CreateCampaignInput{
			Name:               aws.String(name),
			SolutionVersionArn: aws.String(versionArn),
			MinProvisionedTPS:  tps,
		})
		if createErr != nil {
			if !IsAlreadyExists(createErr) {
				return "", fmt.Errorf("failed to create campaign %s: %w", name, createErr)
			}
			campaignArn, present, err = l.registry.ResolveCampaign(ctx, solutionArn, name)
			if err != nil {
				return "", err
			}
			if !present {
				return "", fmt.Errorf("campaign %s reported existing but not resolvable", name)
			}
		} else {
			campaignArn = aws.ToString(out.CampaignArn)
			l.logger.Info("campaign created", zap.String("name", name), zap.String("arn", campaignArn))
		}
	}

	if err = l.waiter.WaitCampaignActive(ctx, campaignArn, interval, deadline); err != nil {
		return "", err
	}
	if err = l.pointers.Publish(ctx, l.pointers.CampaignPath(domain), campaignArn,
		"similar-items campaign for "+domain); err != nil {
		return "", err
	}
	return campaignArn, nil
}

// RunTraining trains a fresh version for the domain and promotes it when the
// metric guard passes.
func (l *Lifecycle) RunTraining(ctx context.Context, domain string) error {
	solutionArn, versionArn, err := l.Train(ctx, domain)
	if err != nil {
		return err
	}
	_, err = l.Promote(ctx, domain, solutionArn, versionArn)
	return err
}

func (l *Lifecycle) checkMetrics(ctx context.Context, versionArn string) error {
	out, err := l.api.GetSolutionMetrics(ctx, &personalize.GetSolutionMetricsInput{
		SolutionVersionArn: aws.String(versionArn),
	})
	if err != nil {
		return fmt.Errorf("failed to read metrics for %s: %w", versionArn, err)
	}

	ndcg := out.Metrics[metricNDCG5]
	precision := out.Metrics[metricPrecision5]
	l.logger.Info("version metrics",
		zap.String("version", versionArn),
		zap.Float64("ndcg5", ndcg),
		zap.Float64("precision5", precision))

	if ndcg < l.cfg.MinNDCG5 || precision < l.cfg.MinPrecision5 {
		l.logger.Warn("promotion rejected",
			zap.String("version", versionArn),
			zap.Float64("ndcg5", ndcg),
			zap.Float64("precision5", precision),
			zap.Float64("min_ndcg5", l.cfg.MinNDCG5),
			zap.Float64("min_precision5", l.cfg.MinPrecision5))
		return fmt.Errorf("version %s: %w", versionArn, ErrMetricsBelowThreshold)
	}
	return nil
}
