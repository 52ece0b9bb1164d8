package cmd

import (
	"os"

	"p13n-sync/core/database"
	"p13n-sync/core/recommend"
	"p13n-sync/core/storage"
	"p13n-sync/feature/users"

	"github.com/spf13/cobra"
)

var usersBatchFile string

// usersCmd groups the user preference commands.
var usersCmd = &cobra.Command{
	Use:   "users",
	Short: "User preference pipeline commands",
}

// usersSyncCmd runs the bulk user preference import.
var usersSyncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Stage onboarded preferences and import them into the user datasets",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logg, err := bootstrap()
		if err != nil {
			return err
		}
		defer logg.Sync()

		db, err := database.Connect(cfg.Database)
		if err != nil {
			return err
		}
		repo, err := users.NewRepository(db)
		if err != nil {
			return err
		}

		store, err := storage.NewClient(cfg.Storage)
		if err != nil {
			return err
		}
		clients, err := recommend.NewClients(cmd.Context(), cfg.Recommend)
		if err != nil {
			return err
		}

		svc := users.NewService(repo, store, clients.Personalize,
			cfg.Recommend, cfg.Storage.Bucket, logg)
		return svc.Run(cmd.Context())
	},
}

// usersStreamCmd applies a captured profile change batch through the
// streaming write API.
var usersStreamCmd = &cobra.Command{
	Use:   "stream",
	Short: "Apply a profile change batch to the user datasets",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logg, err := bootstrap()
		if err != nil {
			return err
		}
		defer logg.Sync()

		data, err := os.ReadFile(usersBatchFile)
		if err != nil {
			return err
		}
		events, err := users.ParseChangeBatch(data)
		if err != nil {
			return err
		}

		clients, err := recommend.NewClients(cmd.Context(), cfg.Recommend)
		if err != nil {
			return err
		}
		st := users.NewStream(clients.Events, clients.Personalize, cfg.Recommend, logg)
		return st.Run(cmd.Context(), events)
	},
}

func init() {
	usersStreamCmd.Flags().StringVar(&usersBatchFile, "file", "",
		"path of the JSON change batch to apply")
	_ = usersStreamCmd.MarkFlagRequired("file")

	usersCmd.AddCommand(usersSyncCmd)
	usersCmd.AddCommand(usersStreamCmd)
	RootCmd.AddCommand(usersCmd)
}
