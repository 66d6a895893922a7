// Package catalog publishes blueprints: the JSON document goes to S3 and a
// small index record goes to DynamoDB so blueprints can be listed newest
// first and fetched by id.
package catalog

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"go.opentelemetry.io/contrib/instrumentation/github.com/aws/aws-sdk-go-v2/otelaws"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/apresai/vidblueprint/internal/blueprint"
	"github.com/apresai/vidblueprint/internal/observability"
	"github.com/apresai/vidblueprint/internal/render"
)

// ErrNotFound is returned when a blueprint id has no record or object.
var ErrNotFound = errors.New("blueprint not found")

var tracer = otel.Tracer("vidblueprint/catalog")

// Options configures the AWS-backed catalog.
type Options struct {
	TableName  string
	Bucket     string
	CDNBaseURL string
	Region     string
}

// Catalog combines the DynamoDB index and S3 document storage.
type Catalog struct {
	store   *Store
	storage *Storage
	log     *slog.Logger
	now     func() time.Time
}

// New creates a catalog over an existing store and storage.
func New(store *Store, storage *Storage, logger *slog.Logger) *Catalog {
	if logger == nil {
		logger = slog.Default()
	}
	return &Catalog{store: store, storage: storage, log: logger, now: time.Now}
}

// NewFromConfig loads the default AWS config for the region, instruments
// the SDK with OpenTelemetry and builds the DynamoDB and S3 clients.
func NewFromConfig(ctx context.Context, opts Options, logger *slog.Logger) (*Catalog, error) {
	if opts.TableName == "" {
		return nil, fmt.Errorf("catalog table name is required (DYNAMODB_TABLE)")
	}
	if opts.Bucket == "" {
		return nil, fmt.Errorf("catalog bucket is required (S3_BUCKET)")
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(opts.Region))
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}
	otelaws.AppendMiddlewares(&awsCfg.APIOptions)

	store := NewStore(dynamodb.NewFromConfig(awsCfg), opts.TableName)
	storage := NewStorage(s3.NewFromConfig(awsCfg), opts.Bucket, opts.CDNBaseURL)
	return New(store, storage, logger), nil
}

// Publish assigns a new id, uploads the JSON document and writes the index
// record. If the index write fails the uploaded object is removed.
func (c *Catalog) Publish(ctx context.Context, bp *blueprint.Blueprint) (*Record, error) {
	ctx, span := tracer.Start(ctx, "catalog.publish")
	defer span.End()

	now := c.now().UTC()
	id, err := NewBlueprintID(now)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "generate id")
		return nil, err
	}
	span.SetAttributes(attribute.String("blueprint.id", id))

	data, err := render.Marshal(bp, render.FormatJSON)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "marshal")
		return nil, fmt.Errorf("marshal blueprint: %w", err)
	}

	key, url, err := c.storage.Upload(ctx, id, data)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "upload")
		return nil, err
	}

	rec := Record{
		BlueprintID: id,
		Idea:        bp.Idea,
		Themes:      bp.Themes,
		Runtime:     bp.Runtime,
		SceneCount:  bp.SceneCount(),
		ObjectKey:   key,
		URL:         url,
		SizeBytes:   int64(len(data)),
		CreatedAt:   now.Format(time.RFC3339),
	}
	for _, m := range bp.Monetization.MidRollMoments {
		rec.MidRolls = append(rec.MidRolls, m.Time)
	}

	if err := c.store.Put(ctx, rec); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "index")
		// The request may already be cancelled; the cleanup must still run.
		if rmErr := c.storage.Remove(observability.DetachTraceContext(ctx), key); rmErr != nil {
			c.log.WarnContext(ctx, "Failed to remove orphaned blueprint object", "key", key, "error", rmErr)
		}
		return nil, err
	}

	c.log.InfoContext(ctx, "Blueprint published", "blueprint_id", id, "key", key, "size_bytes", rec.SizeBytes)
	return &rec, nil
}

// Get returns the index record for id.
func (c *Catalog) Get(ctx context.Context, id string) (*Record, error) {
	ctx, span := tracer.Start(ctx, "catalog.get")
	defer span.End()
	span.SetAttributes(attribute.String("blueprint.id", id))

	rec, err := c.store.Get(ctx, id)
	if err != nil && !errors.Is(err, ErrNotFound) {
		span.RecordError(err)
		span.SetStatus(codes.Error, "get")
	}
	return rec, err
}

// List returns index records newest first.
func (c *Catalog) List(ctx context.Context, limit int, cursor string) ([]Record, string, error) {
	ctx, span := tracer.Start(ctx, "catalog.list")
	defer span.End()

	recs, next, err := c.store.List(ctx, limit, cursor)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "list")
		return nil, "", err
	}
	span.SetAttributes(attribute.Int("blueprint.count", len(recs)))
	return recs, next, nil
}

// Fetch loads the full blueprint document for id.
func (c *Catalog) Fetch(ctx context.Context, id string) (*blueprint.Blueprint, *Record, error) {
	ctx, span := tracer.Start(ctx, "catalog.fetch")
	defer span.End()
	span.SetAttributes(attribute.String("blueprint.id", id))

	rec, err := c.store.Get(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	data, err := c.storage.Download(ctx, rec.ObjectKey)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "download")
		return nil, rec, err
	}
	bp, err := render.Decode(data, render.FormatJSON)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "decode")
		return nil, rec, fmt.Errorf("decode blueprint %s: %w", id, err)
	}
	return bp, rec, nil
}

// Delete removes the document and its index record.
func (c *Catalog) Delete(ctx context.Context, id string) error {
	ctx, span := tracer.Start(ctx, "catalog.delete")
	defer span.End()
	span.SetAttributes(attribute.String("blueprint.id", id))

	rec, err := c.store.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := c.storage.Remove(ctx, rec.ObjectKey); err != nil {
		span.RecordError(err)
		return err
	}
	if err := c.store.Delete(ctx, id); err != nil {
		span.RecordError(err)
		return err
	}
	c.log.InfoContext(ctx, "Blueprint deleted", "blueprint_id", id)
	return nil
}
