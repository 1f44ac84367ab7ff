package fetchers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"

	"foodcpi/internal/loader"
	"foodcpi/internal/logger"
	"foodcpi/internal/models"
)

// ErrNoSourceURL is returned when no dataset URL is configured
var ErrNoSourceURL = errors.New("no data source URL configured")

// FetchResult is a downloaded dataset, normalized and validated
type FetchResult struct {
	SourceURL string
	FetchedAt time.Time
	Data      []byte
	Table     *models.PriceTable
}

// DataFetcher downloads the CPI dataset from a remote source
type DataFetcher struct {
	client     *resty.Client
	normalizer *DataNormalizer
	log        *logger.Logger
}

// NewDataFetcher creates a new data fetcher instance
func NewDataFetcher() *DataFetcher {
	client := resty.New()
	client.SetTimeout(30 * time.Second)
	client.SetRetryCount(3)
	client.SetRetryWaitTime(2 * time.Second)
	return NewDataFetcherWithClient(client)
}

// NewDataFetcherWithClient creates a data fetcher around an existing resty client
func NewDataFetcherWithClient(client *resty.Client) *DataFetcher {
	client.AddRetryCondition(func(r *resty.Response, err error) bool {
		return r != nil && r.StatusCode() >= http.StatusInternalServerError
	})
	return &DataFetcher{
		client:     client,
		normalizer: NewDataNormalizer(),
		log:        logger.Component("fetcher"),
	}
}

// Fetch downloads the CSV at url and checks that it parses as a CPI table
func (f *DataFetcher) Fetch(ctx context.Context, url string) (*FetchResult, error) {
	if url == "" {
		return nil, ErrNoSourceURL
	}

	f.log.Info("Fetching dataset", map[string]interface{}{"url": url})

	resp, err := f.client.R().
		SetContext(ctx).
		SetHeader("Accept", "text/csv, text/plain;q=0.9, */*;q=0.5").
		Get(url)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch dataset: %w", err)
	}
	if resp.StatusCode() != http.StatusOK {
		return nil, fmt.Errorf("dataset source returned status %d", resp.StatusCode())
	}

	data := f.normalizer.NormalizeCSV(resp.Body())
	if len(data) == 0 {
		return nil, fmt.Errorf("dataset source returned an empty body")
	}

	table, err := loader.ParseCSV(bytesReader(data))
	if err != nil {
		return nil, fmt.Errorf("fetched dataset is not a valid CPI table: %w", err)
	}

	f.log.Info("Dataset fetched", map[string]interface{}{
		"url":     url,
		"bytes":   len(data),
		"rows":    table.Len(),
		"columns": len(table.Columns),
	})

	return &FetchResult{
		SourceURL: url,
		FetchedAt: time.Now().UTC(),
		Data:      data,
		Table:     table,
	}, nil
}
