package cmd

import (
	"p13n-sync/core/recommend"
	"p13n-sync/core/storage"
	"p13n-sync/feature/interactions"

	"github.com/spf13/cobra"
)

var interactionsIncremental bool

// interactionsCmd groups the behaviour-log commands.
var interactionsCmd = &cobra.Command{
	Use:   "interactions",
	Short: "Behaviour-log pipeline commands",
}

// interactionsSyncCmd transforms behaviour logs into interaction imports.
var interactionsSyncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Transform behaviour logs and import them into the interaction datasets",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logg, err := bootstrap()
		if err != nil {
			return err
		}
		defer logg.Sync()

		store, err := storage.NewClient(cfg.Storage)
		if err != nil {
			return err
		}
		clients, err := recommend.NewClients(cmd.Context(), cfg.Recommend)
		if err != nil {
			return err
		}

		svc := interactions.NewService(store, clients.Personalize, cfg.Recommend,
			cfg.Storage.BehaviourBucket, cfg.Storage.Bucket, logg)
		return svc.Run(cmd.Context(), interactionsIncremental)
	},
}

func init() {
	interactionsSyncCmd.Flags().BoolVar(&interactionsIncremental, "incremental", false,
		"read only yesterday's behaviour-log partition")

	interactionsCmd.AddCommand(interactionsSyncCmd)
	RootCmd.AddCommand(interactionsCmd)
}
