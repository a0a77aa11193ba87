package storage

import (
	"bytes"
	"context"
	"errors"
	"io"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/dmitrijs2005/poetrykeeper/internal/client/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeS3 is an in-memory bucket. pageSize limits ListObjectsV2 pages.
type fakeS3 struct {
	mu       sync.Mutex
	objects  map[string][]byte
	pageSize int
	listCall int

	headErr error
	putErr  error
}

func newFakeS3() *fakeS3 {
	return &fakeS3{objects: map[string][]byte{}, pageSize: 1000}
}

func (f *fakeS3) PutObject(_ context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	if f.putErr != nil {
		return nil, f.putErr
	}
	body, err := io.ReadAll(in.Body)
	if err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.objects[aws.ToString(in.Key)] = body
	return &s3.PutObjectOutput{}, nil
}

func (f *fakeS3) GetObject(_ context.Context, in *s3.GetObjectInput, _ ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	body, ok := f.objects[aws.ToString(in.Key)]
	if !ok {
		return nil, &types.NoSuchKey{}
	}
	return &s3.GetObjectOutput{Body: io.NopCloser(bytes.NewReader(body))}, nil
}

func (f *fakeS3) DeleteObject(_ context.Context, in *s3.DeleteObjectInput, _ ...func(*s3.Options)) (*s3.DeleteObjectOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.objects, aws.ToString(in.Key))
	return &s3.DeleteObjectOutput{}, nil
}

func (f *fakeS3) ListObjectsV2(_ context.Context, in *s3.ListObjectsV2Input, _ ...func(*s3.Options)) (*s3.ListObjectsV2Output, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.listCall++

	var keys []string
	for k := range f.objects {
		if strings.HasPrefix(k, aws.ToString(in.Prefix)) {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)

	start := 0
	if in.ContinuationToken != nil {
		start = sort.SearchStrings(keys, aws.ToString(in.ContinuationToken))
	}
	end := min(start+f.pageSize, len(keys))

	out := &s3.ListObjectsV2Output{IsTruncated: aws.Bool(end < len(keys))}
	for _, k := range keys[start:end] {
		out.Contents = append(out.Contents, types.Object{Key: aws.String(k)})
	}
	if end < len(keys) {
		out.NextContinuationToken = aws.String(keys[end])
	}
	return out, nil
}

func (f *fakeS3) HeadBucket(context.Context, *s3.HeadBucketInput, ...func(*s3.Options)) (*s3.HeadBucketOutput, error) {
	return &s3.HeadBucketOutput{}, f.headErr
}

func newTestS3Remote(f *fakeS3) *S3Remote {
	r := NewS3Remote(f, "bucket", "/poems/")
	r.now = func() time.Time { return fixedNow }
	n := 0
	r.newID = func() (string, error) {
		n++
		return "id" + string(rune('0'+n)), nil
	}
	return r
}

func TestS3Remote_CreateWritesJSONObject(t *testing.T) {
	f := newFakeS3()
	r := newTestS3Remote(f)

	p, err := r.Create(context.Background(), sampleInput)
	require.NoError(t, err)
	assert.Equal(t, "id1", p.ID)
	assert.Equal(t, fixedNow, p.CreatedAt)
	assert.Equal(t, fixedNow, p.UpdatedAt)

	body, ok := f.objects["poems/id1.json"]
	require.True(t, ok)
	assert.Contains(t, string(body), `"title":"Ozymandias"`)
}

func TestS3Remote_UpdateKeepsCreatedAt(t *testing.T) {
	f := newFakeS3()
	r := newTestS3Remote(f)
	created := fixedNow.Add(-24 * time.Hour)

	out, err := r.Update(context.Background(), models.Poem{ID: "x", Title: "T", CreatedAt: created})
	require.NoError(t, err)
	assert.Equal(t, created, out.CreatedAt)
	assert.Equal(t, fixedNow, out.UpdatedAt)

	future := fixedNow.Add(time.Hour)
	out, err = r.Update(context.Background(), models.Poem{ID: "x", CreatedAt: future})
	require.NoError(t, err)
	assert.Equal(t, future, out.UpdatedAt)

	out, err = r.Update(context.Background(), models.Poem{ID: "y"})
	require.NoError(t, err)
	assert.Equal(t, fixedNow, out.CreatedAt)
}

func TestS3Remote_ListAllPaginatesAndSorts(t *testing.T) {
	f := newFakeS3()
	f.pageSize = 1
	r := newTestS3Remote(f)
	ctx := context.Background()

	for i := range 3 {
		_, err := r.Update(ctx, models.Poem{
			ID: "p" + string(rune('a'+i)), Title: "T",
			CreatedAt: fixedNow.Add(time.Duration(i) * time.Minute),
		})
		require.NoError(t, err)
	}
	f.objects["poems/readme.txt"] = []byte("ignored")
	f.objects["poems/broken.json"] = []byte("{")
	f.objects["other/pz.json"] = []byte(`{"title":"elsewhere"}`)

	poems, err := r.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, poems, 3)
	assert.Equal(t, []string{"pc", "pb", "pa"}, []string{poems[0].ID, poems[1].ID, poems[2].ID})
	assert.GreaterOrEqual(t, f.listCall, 4)
}

func TestS3Remote_RemoveAndConnectivity(t *testing.T) {
	f := newFakeS3()
	r := newTestS3Remote(f)
	ctx := context.Background()

	p, err := r.Create(ctx, sampleInput)
	require.NoError(t, err)
	require.NoError(t, r.Remove(ctx, p.ID))
	require.NoError(t, r.Remove(ctx, p.ID))
	assert.Empty(t, f.objects)

	require.Error(t, r.Remove(ctx, "../etc"))

	assert.True(t, r.CheckConnectivity(ctx))
	f.headErr = errors.New("no bucket")
	assert.False(t, r.CheckConnectivity(ctx))
}

func TestS3Remote_PutErrorIsReturned(t *testing.T) {
	f := newFakeS3()
	f.putErr = errors.New("denied")
	r := newTestS3Remote(f)

	_, err := r.Create(context.Background(), sampleInput)
	require.ErrorIs(t, err, f.putErr)
}

func TestNewS3Client_WithEndpoint(t *testing.T) {
	c, err := NewS3Client(context.Background(), S3Options{
		Region: "us-east-1", Endpoint: "http://localhost:9000",
		AccessKey: "minio", SecretKey: "minio123",
	})
	require.NoError(t, err)
	assert.Equal(t, "us-east-1", c.Options().Region)
	assert.True(t, c.Options().UsePathStyle)
	assert.Equal(t, "http://localhost:9000", aws.ToString(c.Options().BaseEndpoint))
}
