package cmd

import (
	"fmt"

	"p13n-sync/core/recommend"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var recommendDomain string

// recommendCmd groups the training and serving lifecycle commands.
var recommendCmd = &cobra.Command{
	Use:   "recommend",
	Short: "Training and serving lifecycle commands",
}

// recommendTrackerCmd provisions the event tracker for a domain.
var recommendTrackerCmd = &cobra.Command{
	Use:   "tracker",
	Short: "Provision the event tracker and publish its tracking id",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logg, err := bootstrap()
		if err != nil {
			return err
		}
		defer logg.Sync()

		lifecycle, err := newLifecycle(cmd, cfg.Recommend, logg)
		if err != nil {
			return err
		}
		domains, err := resolveDomains()
		if err != nil {
			return err
		}
		for _, domain := range domains {
			trackingID, err := lifecycle.ProvisionTracker(cmd.Context(), domain)
			if err != nil {
				return fmt.Errorf("%s: %w", domain, err)
			}
			logg.Info("event tracker provisioned",
				zap.String("domain", domain), zap.String("tracking_id", trackingID))
		}
		return nil
	},
}

// recommendTrainCmd trains a new solution version and promotes it when the
// metric guard passes.
var recommendTrainCmd = &cobra.Command{
	Use:   "train",
	Short: "Train a new solution version and promote it to the campaign",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logg, err := bootstrap()
		if err != nil {
			return err
		}
		defer logg.Sync()

		lifecycle, err := newLifecycle(cmd, cfg.Recommend, logg)
		if err != nil {
			return err
		}
		domains, err := resolveDomains()
		if err != nil {
			return err
		}
		for _, domain := range domains {
			if err := lifecycle.RunTraining(cmd.Context(), domain); err != nil {
				return fmt.Errorf("%s: %w", domain, err)
			}
		}
		return nil
	},
}

func newLifecycle(cmd *cobra.Command, cfg recommend.Config, logg *zap.Logger) (*recommend.Lifecycle, error) {
	clients, err := recommend.NewClients(cmd.Context(), cfg)
	if err != nil {
		return nil, err
	}
	return recommend.NewLifecycle(clients.Personalize, clients.Parameters, cfg, logg), nil
}

func resolveDomains() ([]string, error) {
	if recommendDomain == "" {
		return recommend.Domains, nil
	}
	if !recommend.ValidDomain(recommendDomain) {
		return nil, fmt.Errorf("unknown domain %q, expected one of %v", recommendDomain, recommend.Domains)
	}
	return []string{recommendDomain}, nil
}

func init() {
	recommendCmd.PersistentFlags().StringVar(&recommendDomain, "domain", "",
		"restrict to one domain (video or news); default runs both")

	recommendCmd.AddCommand(recommendTrackerCmd)
	recommendCmd.AddCommand(recommendTrainCmd)
	RootCmd.AddCommand(recommendCmd)
}
