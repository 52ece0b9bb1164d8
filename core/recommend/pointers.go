package recommend

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
	ssmtypes "github.com/aws/aws-sdk-go-v2/service/ssm/types"
	"go.uber.org/zap"
)

// Pointers publishes and reads durable name/ARN pointers in the parameter
// store. Consumers discover the active resources through these paths instead
// of hardcoding ARNs.
type Pointers struct {
	api    ParameterAPI
	app    string
	stage  string
	logger *zap.Logger
}

// NewPointers creates a pointer store scoped to an app and stage.
func NewPointers(api ParameterAPI, app, stage string, logger *zap.Logger) *Pointers {
	return &Pointers{api: api, app: app, stage: stage, logger: logger}
}

// DatasetPath is the pointer path for a domain's content dataset.
func (p *Pointers) DatasetPath(domain string) string {
	return fmt.Sprintf("/%s/%s/%sContentDataSetArn", p.app, p.stage, domain)
}

// SolutionPath is the pointer path for a domain's similar-items solution.
func (p *Pointers) SolutionPath(domain string) string {
	return fmt.Sprintf("/%s-%s/%s/Similar_items/solutionArn", p.app, domain, p.stage)
}

// CampaignPath is the pointer path for a domain's similar-items campaign.
func (p *Pointers) CampaignPath(domain string) string {
	return fmt.Sprintf("/%s-%s/%s/Similar_items/campaignArn", p.app, domain, p.stage)
}

// TrackingPath is the pointer path for a domain's event tracker id.
func (p *Pointers) TrackingPath(domain string) string {
	return fmt.Sprintf("/%s-%s/Event_tracker/tracking_id", p.app, domain)
}

// Publish writes a pointer value, overwriting any previous value at the path.
func (p *Pointers) Publish(ctx context.Context, path, value, description string) error {
	_, err := p.api.PutParameter(ctx, &ssm.PutParameterInput{
		Name:        aws.String(path),
		Value:       aws.String(value),
		Description: aws.String(description),
		Type:        ssmtypes.ParameterTypeString,
		Overwrite:   aws.Bool(true),
	})
	if err != nil {
		return fmt.Errorf("failed to publish parameter %s: %w", path, err)
	}
	p.logger.Info("pointer published", zap.String("path", path), zap.String("value", value))
	return nil
}

// Read returns the pointer value at a path.
func (p *Pointers) Read(ctx context.Context, path string) (string, error) {
	out, err := p.api.GetParameter(ctx, &ssm.GetParameterInput{
		Name: aws.String(path),
	})
	if err != nil {
		return "", fmt.Errorf("failed to read parameter %s: %w", path, err)
	}
	return aws.ToString(out.Parameter.Value), nil
}
