package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/dmitrijs2005/poetrykeeper/internal/client/models"
	"github.com/google/uuid"
)

// S3API is the subset of *s3.Client used by S3Remote.
type S3API interface {
	PutObject(ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	GetObject(ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
	DeleteObject(ctx context.Context, in *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error)
	ListObjectsV2(ctx context.Context, in *s3.ListObjectsV2Input, optFns ...func(*s3.Options)) (*s3.ListObjectsV2Output, error)
	HeadBucket(ctx context.Context, in *s3.HeadBucketInput, optFns ...func(*s3.Options)) (*s3.HeadBucketOutput, error)
}

// S3Options configures NewS3Client. Empty keys fall back to the default AWS
// credential chain; a non-empty Endpoint selects an S3-compatible server
// (MinIO) with path-style addressing.
type S3Options struct {
	Region    string
	Endpoint  string
	AccessKey string
	SecretKey string
}

func NewS3Client(ctx context.Context, o S3Options) (*s3.Client, error) {
	loadOpts := []func(*config.LoadOptions) error{config.WithRegion(o.Region)}
	if o.AccessKey != "" {
		loadOpts = append(loadOpts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(o.AccessKey, o.SecretKey, ""),
		))
	}

	cfg, err := config.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	return s3.NewFromConfig(cfg, func(so *s3.Options) {
		if o.Endpoint != "" {
			so.BaseEndpoint = aws.String(o.Endpoint)
			so.UsePathStyle = true
		}
	}), nil
}

// S3Remote keeps one JSON object per poem at <prefix>/<id>.json. Ids are
// UUIDv7 and timestamps come from the local clock.
type S3Remote struct {
	api    S3API
	bucket string
	prefix string
	now    func() time.Time
	newID  func() (string, error)
}

func NewS3Remote(api S3API, bucket, prefix string) *S3Remote {
	return &S3Remote{
		api:    api,
		bucket: bucket,
		prefix: strings.Trim(prefix, "/"),
		now:    func() time.Time { return time.Now().UTC() },
		newID: func() (string, error) {
			id, err := uuid.NewV7()
			if err != nil {
				return "", err
			}
			return id.String(), nil
		},
	}
}

func (r *S3Remote) objectKey(id string) string {
	return path.Join(r.prefix, id+".json")
}

func (r *S3Remote) listPrefix() string {
	if r.prefix == "" {
		return ""
	}
	return r.prefix + "/"
}

func (r *S3Remote) put(ctx context.Context, p models.Poem) error {
	body, err := json.Marshal(p)
	if err != nil {
		return err
	}
	_, err = r.api.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(r.bucket),
		Key:         aws.String(r.objectKey(p.ID)),
		Body:        bytes.NewReader(body),
		ContentType: aws.String("application/json"),
	})
	return err
}

func (r *S3Remote) Create(ctx context.Context, in models.PoemInput) (models.Poem, error) {
	id, err := r.newID()
	if err != nil {
		return models.Poem{}, fmt.Errorf("generate id: %w", err)
	}

	now := r.now()
	p := models.Poem{ID: id, CreatedAt: now, UpdatedAt: now}.WithInput(in)
	if err := r.put(ctx, p); err != nil {
		return models.Poem{}, fmt.Errorf("put poem: %w", err)
	}
	return p, nil
}

func (r *S3Remote) Update(ctx context.Context, p models.Poem) (models.Poem, error) {
	if err := validateObjectID(p.ID); err != nil {
		return models.Poem{}, err
	}

	now := r.now()
	out := p.Clone()
	if out.CreatedAt.IsZero() {
		out.CreatedAt = now
	}
	out.UpdatedAt = now
	if out.UpdatedAt.Before(out.CreatedAt) {
		out.UpdatedAt = out.CreatedAt
	}

	if err := r.put(ctx, out); err != nil {
		return models.Poem{}, fmt.Errorf("put poem %s: %w", p.ID, err)
	}
	return out, nil
}

func (r *S3Remote) Remove(ctx context.Context, id string) error {
	if err := validateObjectID(id); err != nil {
		return err
	}
	_, err := r.api.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(r.bucket),
		Key:    aws.String(r.objectKey(id)),
	})
	if err != nil {
		return fmt.Errorf("delete poem %s: %w", id, err)
	}
	return nil
}

func (r *S3Remote) ListAll(ctx context.Context) ([]models.Poem, error) {
	var keys []string
	var token *string
	for {
		out, err := r.api.ListObjectsV2(ctx, &s3.ListObjectsV2Input{
			Bucket:            aws.String(r.bucket),
			Prefix:            aws.String(r.listPrefix()),
			ContinuationToken: token,
		})
		if err != nil {
			return nil, fmt.Errorf("list poems: %w", err)
		}
		for _, obj := range out.Contents {
			if k := aws.ToString(obj.Key); strings.HasSuffix(k, ".json") {
				keys = append(keys, k)
			}
		}
		if aws.ToBool(out.IsTruncated) && out.NextContinuationToken != nil {
			token = out.NextContinuationToken
			continue
		}
		break
	}

	now := r.now()
	poems := make([]models.Poem, 0, len(keys))
	for _, key := range keys {
		doc, err := r.getDocument(ctx, key)
		if err != nil {
			return nil, err
		}
		id := strings.TrimSuffix(path.Base(key), ".json")
		if p, ok := decodePoem(id, doc, now); ok {
			poems = append(poems, p)
		}
	}

	models.SortByCreatedDesc(poems)
	return poems, nil
}

func (r *S3Remote) getDocument(ctx context.Context, key string) (any, error) {
	out, err := r.api.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(r.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, fmt.Errorf("get %s: %w", key, err)
	}
	defer out.Body.Close()

	body, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", key, err)
	}

	var doc any
	if err := json.Unmarshal(body, &doc); err != nil {
		// unreadable objects are skipped by decodePoem
		return nil, nil
	}
	return doc, nil
}

func (r *S3Remote) CheckConnectivity(ctx context.Context) bool {
	_, err := r.api.HeadBucket(ctx, &s3.HeadBucketInput{Bucket: aws.String(r.bucket)})
	return err == nil
}

func validateObjectID(id string) error {
	if id == "" || strings.ContainsAny(id, "/\\") {
		return fmt.Errorf("invalid poem id %q", id)
	}
	return nil
}
