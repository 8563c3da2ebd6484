// Package store persists normalized price rows to DynamoDB. The sink is
// optional; the pipeline itself never depends on it.
package store

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/dynamodb"
	"github.com/aws/aws-sdk-go/service/dynamodb/dynamodbattribute"
	"github.com/aws/aws-sdk-go/service/dynamodb/dynamodbiface"

	"entsocli/internal/config"
	"entsocli/pkg/contracts/domain"
)

// priceItem is the table layout: one item per bidding zone and day, with
// the day's price curve embedded.
type priceItem struct {
	Date     string            `json:"date" dynamodbav:"date"`
	Domain   string            `json:"domain" dynamodbav:"domain"`
	Prices   []domain.PriceRow `json:"prices" dynamodbav:"prices"`
	RowCount int               `json:"row_count" dynamodbav:"row_count"`
}

// DynamoStore writes price projections to a DynamoDB table.
type DynamoStore struct {
	client dynamodbiface.DynamoDBAPI
	table  string
	logger *slog.Logger
}

// New builds a store from configuration using the shared AWS credential
// chain.
func New(cfg config.StoreConfig, logger *slog.Logger) (*DynamoStore, error) {
	sess, err := session.NewSessionWithOptions(session.Options{
		Config:            aws.Config{Region: aws.String(cfg.Region)},
		SharedConfigState: session.SharedConfigEnable,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create AWS session: %w", err)
	}
	return NewWithClient(dynamodb.New(sess), cfg.Table, logger), nil
}

// NewWithClient builds a store around an existing DynamoDB client,
// mainly for tests.
func NewWithClient(client dynamodbiface.DynamoDBAPI, table string, logger *slog.Logger) *DynamoStore {
	if logger == nil {
		logger = slog.Default()
	}
	return &DynamoStore{
		client: client,
		table:  table,
		logger: logger.With(slog.String("component", "dynamo_store")),
	}
}

// SavePriceRows stores one day's price projection under the given date
// and bidding zone.
func (s *DynamoStore) SavePriceRows(ctx context.Context, date, biddingZone string, rows []domain.PriceRow) error {
	item := priceItem{
		Date:     date,
		Domain:   biddingZone,
		Prices:   rows,
		RowCount: len(rows),
	}

	attributeValues, err := dynamodbattribute.MarshalMap(item)
	if err != nil {
		return fmt.Errorf("failed to marshal price item: %w", err)
	}

	_, err = s.client.PutItemWithContext(ctx, &dynamodb.PutItemInput{
		Item:      attributeValues,
		TableName: aws.String(s.table),
	})
	if err != nil {
		return fmt.Errorf("failed to store price rows: %w", err)
	}

	s.logger.InfoContext(ctx, "price rows stored",
		slog.String("date", date),
		slog.String("domain", biddingZone),
		slog.Int("rows", len(rows)))
	return nil
}
