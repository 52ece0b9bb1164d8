package recommend

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/personalizeevents"
	"github.com/aws/aws-sdk-go-v2/service/personalizeevents/types"
	"go.uber.org/zap"

	"p13n-sync/core/ingest"
)

// ItemSink returns a flush function that writes a batch of item records to a
// dataset through the streaming API. Wire it into an ingest.Dispatcher to get
// batching and pacing.
func ItemSink(api EventsAPI, datasetArn string, logger *zap.Logger) ingest.FlushFunc {
	return func(ctx context.Context, batch []ingest.Record) error {
		items := make([]types.Item, 0, len(batch))
		for _, record := range batch {
			items = append(items, types.Item{
				ItemId:     aws.String(record.ID),
				Properties: aws.String(record.Properties),
			})
		}
		_, err := api.PutItems(ctx, &personalizeevents.PutItemsInput{
			DatasetArn: aws.String(datasetArn),
			Items:      items,
		})
		if err != nil {
			return fmt.Errorf("failed to put %d items: %w", len(items), err)
		}
		logger.Info("items written", zap.Int("count", len(items)), zap.String("dataset", datasetArn))
		return nil
	}
}

// UserSink returns a flush function that writes a batch of user records to a
// dataset through the streaming API.
func UserSink(api EventsAPI, datasetArn string, logger *zap.Logger) ingest.FlushFunc {
	return func(ctx context.Context, batch []ingest.Record) error {
		users := make([]types.User, 0, len(batch))
		for _, record := range batch {
			users = append(users, types.User{
				UserId:     aws.String(record.ID),
				Properties: aws.String(record.Properties),
			})
		}
		_, err := api.PutUsers(ctx, &personalizeevents.PutUsersInput{
			DatasetArn: aws.String(datasetArn),
			Users:      users,
		})
		if err != nil {
			return fmt.Errorf("failed to put %d users: %w", len(users), err)
		}
		logger.Info("users written", zap.Int("count", len(users)), zap.String("dataset", datasetArn))
		return nil
	}
}
