package cmd

import (
	"os"

	"p13n-sync/core/database"
	"p13n-sync/core/recommend"
	"p13n-sync/core/storage"
	"p13n-sync/feature/content"
	"p13n-sync/feature/content/cms"
	"p13n-sync/feature/content/thron"

	"github.com/spf13/cobra"
)

var (
	contentDaysAgo   int
	contentMaxItems  int
	contentBatchFile string
)

// contentCmd groups the content pipeline commands.
var contentCmd = &cobra.Command{
	Use:   "content",
	Short: "Content pipeline commands",
}

// contentIngestCmd pulls news and videos from the upstream sources into the
// content cache table.
var contentIngestCmd = &cobra.Command{
	Use:   "ingest",
	Short: "Ingest news and videos into the content cache",
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
		repo, err := content.NewRepository(db)
		if err != nil {
			return err
		}

		ingestor := content.NewIngestor(repo,
			cms.NewClient(cfg.CMS, logg),
			thron.NewClient(cfg.Thron, logg),
			cfg.CMS.CDNHost, logg)

		ctx := cmd.Context()
		if err := ingestor.IngestNews(ctx, cms.Query{
			MaxItems: contentMaxItems,
			DaysAgo:  contentDaysAgo,
		}); err != nil {
			return err
		}
		return ingestor.IngestVideos(ctx, contentDaysAgo, contentMaxItems)
	},
}

// contentSyncCmd runs the bulk content sync into the dataset service.
var contentSyncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Stage cached content and import it into the item datasets",
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
		repo, err := content.NewRepository(db)
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

		svc := content.NewService(repo, store, clients.Personalize, clients.Parameters,
			cfg.Recommend, cfg.Storage.Bucket, logg)
		return svc.Run(cmd.Context())
	},
}

// contentStreamCmd applies a captured change batch through the streaming
// write API.
var contentStreamCmd = &cobra.Command{
	Use:   "stream",
	Short: "Apply a content change batch to the item datasets",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logg, err := bootstrap()
		if err != nil {
			return err
		}
		defer logg.Sync()

		data, err := os.ReadFile(contentBatchFile)
		if err != nil {
			return err
		}
		events, err := content.ParseChangeBatch(data)
		if err != nil {
			return err
		}

		clients, err := recommend.NewClients(cmd.Context(), cfg.Recommend)
		if err != nil {
			return err
		}
		st := content.NewStream(clients.Events, clients.Parameters, cfg.Recommend, logg)
		return st.Run(cmd.Context(), events)
	},
}

func init() {
	contentIngestCmd.Flags().IntVar(&contentDaysAgo, "days-ago", 0,
		"restrict ingestion to content updated in the last N days (0 = full)")
	contentIngestCmd.Flags().IntVar(&contentMaxItems, "max-items", 0,
		"cap the number of ingested items per source (0 = unlimited)")
	contentStreamCmd.Flags().StringVar(&contentBatchFile, "file", "",
		"path of the JSON change batch to apply")
	_ = contentStreamCmd.MarkFlagRequired("file")

	contentCmd.AddCommand(contentIngestCmd)
	contentCmd.AddCommand(contentSyncCmd)
	contentCmd.AddCommand(contentStreamCmd)
	RootCmd.AddCommand(contentCmd)
}
