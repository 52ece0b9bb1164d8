package recommend

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/personalize"
	"go.uber.org/zap"
)

// Terminal and transient statuses reported by the dataset service.
const (
	statusActive       = "ACTIVE"
	statusCreateFailed = "CREATE FAILED"
)

// Waiter polls remote resources until they reach a usable status.
//
// Every wait carries an explicit deadline. On expiry the waiter logs a
// warning and returns without error so the caller can attempt the next step;
// a resource that is genuinely not ready makes that step fail loudly.
type Waiter struct {
	api    PersonalizeAPI
	logger *zap.Logger

	after func(time.Duration) <-chan time.Time
	now   func() time.Time
}

// NewWaiter creates a waiter over the dataset service control plane.
func NewWaiter(api PersonalizeAPI, logger *zap.Logger) *Waiter {
	return &Waiter{
		api:    api,
		logger: logger,
		after:  time.After,
		now:    time.Now,
	}
}

// pause blocks until the interval elapses or the context is cancelled.
func (w *Waiter) pause(ctx context.Context, interval time.Duration) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-w.after(interval):
		return nil
	}
}

// WaitDatasetActive polls the dataset every interval until it reports ACTIVE,
// reaches its failed terminal status, or the deadline expires.
func (w *Waiter) WaitDatasetActive(ctx context.Context, datasetArn string, interval, deadline time.Duration) error {
	limit := w.now().Add(deadline)
	for {
		out, err := w.api.DescribeDataset(ctx, &personalize.DescribeDatasetInput{
			DatasetArn: aws.String(datasetArn),
		})
		if err != nil {
			return fmt.Errorf("failed to describe dataset %s: %w", datasetArn, err)
		}

		status := aws.ToString(out.Dataset.Status)
		switch status {
		case statusActive:
			return nil
		case statusCreateFailed:
			return fmt.Errorf("dataset %s: %w", datasetArn, ErrCreateFailed)
		}

		if !w.now().Before(limit) {
			w.logger.Warn("dataset not active before deadline, proceeding",
				zap.String("arn", datasetArn),
				zap.String("status", status),
				zap.Duration("deadline", deadline))
			return nil
		}

		w.logger.Info("waiting for dataset",
			zap.String("arn", datasetArn),
			zap.String("status", status))
		if err := w.pause(ctx, interval); err != nil {
			return err
		}
	}
}

// WaitSolutionVersionActive polls the solution version until training
// completes, fails, or the deadline expires. Training metrics are only
// readable once the version is ACTIVE, so deadline expiry is an error here.
func (w *Waiter) WaitSolutionVersionActive(ctx context.Context, versionArn string, interval, deadline time.Duration) error {
	limit := w.now().Add(deadline)
	for {
		out, err := w.api.DescribeSolutionVersion(ctx, &personalize.DescribeSolutionVersionInput{
			SolutionVersionArn: aws.String(versionArn),
		})
		if err != nil {
			return fmt.Errorf("failed to describe solution version %s: %w", versionArn, err)
		}

		status := aws.ToString(out.SolutionVersion.Status)
		switch status {
		case statusActive:
			return nil
		case statusCreateFailed:
			return fmt.Errorf("solution version %s: %w", versionArn, ErrCreateFailed)
		}

		if !w.now().Before(limit) {
			return fmt.Errorf("solution version %s not active after %s, last status %s", versionArn, deadline, status)
		}

		w.logger.Info("waiting for solution version",
			zap.String("arn", versionArn),
			zap.String("status", status))
		if err := w.pause(ctx, interval); err != nil {
			return err
		}
	}
}

// WaitCampaignActive polls the campaign every interval until it reports
// ACTIVE, fails, or the deadline expires. Unlike datasets, a campaign that is
// still not active at the deadline is an error because the caller is about to
// publish its ARN for serving.
func (w *Waiter) WaitCampaignActive(ctx context.Context, campaignArn string, interval, deadline time.Duration) error {
	limit := w.now().Add(deadline)
	for {
		out, err := w.api.DescribeCampaign(ctx, &personalize.DescribeCampaignInput{
			CampaignArn: aws.String(campaignArn),
		})
		if err != nil {
			return fmt.Errorf("failed to describe campaign %s: %w", campaignArn, err)
		}

		status := aws.ToString(out.Campaign.Status)
		switch status {
		case statusActive:
			return nil
		case statusCreateFailed:
			return fmt.Errorf("campaign %s: %w", campaignArn, ErrCreateFailed)
		}

		if !w.now().Before(limit) {
			return fmt.Errorf("campaign %s not active after %s, last status %s", campaignArn, deadline, status)
		}

		w.logger.Info("waiting for campaign",
			zap.String("arn", campaignArn),
			zap.String("status", status))
		if err := w.pause(ctx, interval); err != nil {
			return err
		}
	}
}
