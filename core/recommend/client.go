package recommend

import (
	"context"
	"fmt"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/personalize"
	"github.com/aws/aws-sdk-go-v2/service/personalizeevents"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
)

// Clients bundles the three service clients the pipelines depend on.
type Clients struct {
	Personalize PersonalizeAPI
	Events      EventsAPI
	Parameters  ParameterAPI
}

// NewClients builds the AWS SDK clients from the default credential chain.
func NewClients(ctx context.Context, cfg Config) (*Clients, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.Region))
	if err != nil {
		return nil, fmt.Errorf("failed to load aws config: %w", err)
	}

	return &Clients{
		Personalize: personalize.NewFromConfig(awsCfg),
		Events:      personalizeevents.NewFromConfig(awsCfg),
		Parameters:  ssm.NewFromConfig(awsCfg),
	}, nil
}
