package utils

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingSink struct {
	stored map[string][]byte
	calls  int
}

func newRecordingSink() *recordingSink {
	return &recordingSink{stored: make(map[string][]byte)}
}

func (s *recordingSink) Store(objectName string, data []byte, contentType string) (ArtifactResult, error) {
	s.calls++
	s.stored[objectName] = data
	return ArtifactResult{URL: "https://cdn.example.com/" + objectName, StoragePath: objectName}, nil
}

type failingSink struct{}

func (failingSink) Store(string, []byte, string) (ArtifactResult, error) {
	return ArtifactResult{}, errors.New("storage unavailable")
}

type panickingSink struct{}

func (panickingSink) Store(string, []byte, string) (ArtifactResult, error) {
	panic("unexpected storage client state")
}

func TestFallbackSinkPrefersPrimary(t *testing.T) {
	primary := newRecordingSink()
	sink := FallbackSink{Primary: primary, Secondary: InlineSink{}}

	result, err := sink.Store("a.pdf", []byte("doc"), "application/pdf")
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example.com/a.pdf", result.URL)
	assert.Equal(t, "a.pdf", result.StoragePath)
	assert.Equal(t, 1, primary.calls)
}

func TestFallbackSinkDegradesOnError(t *testing.T) {
	sink := FallbackSink{Primary: failingSink{}, Secondary: InlineSink{}}

	result, err := sink.Store("a.pdf", []byte("doc"), "application/pdf")
	require.NoError(t, err, "inline degrade is a success, not a failure")
	assert.True(t, strings.HasPrefix(result.URL, "data:application/pdf;base64,"))
	assert.Empty(t, result.StoragePath, "inline artifacts are not durably stored")
}

func TestFallbackSinkRecoversFromPanic(t *testing.T) {
	sink := FallbackSink{Primary: panickingSink{}, Secondary: InlineSink{}}

	result, err := sink.Store("a.pdf", []byte("doc"), "application/pdf")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(result.URL, "data:application/pdf;base64,"))
}

func TestFallbackSinkSurfacesTotalFailure(t *testing.T) {
	sink := FallbackSink{Primary: failingSink{}, Secondary: failingSink{}}

	_, err := sink.Store("a.pdf", []byte("doc"), "application/pdf")
	assert.Error(t, err, "only total failure across tiers is an error")
}

func TestInlineSinkRoundTrip(t *testing.T) {
	result, err := InlineSink{}.Store("ignored.pdf", []byte("%PDF-1.7 content"), "application/pdf")
	require.NoError(t, err)
	assert.Equal(t, "data:application/pdf;base64,"+"JVBERi0xLjcgY29udGVudA==", result.URL)
}

func TestDurableSinkUsesBucketAndPublicURL(t *testing.T) {
	blobs := &fakeBlobStore{}
	sink := DurableSink{Blobs: blobs, Bucket: "certificates"}

	result, err := sink.Store("b.pdf", []byte("doc"), "application/pdf")
	require.NoError(t, err)
	assert.Equal(t, "certificates", blobs.lastBucket)
	assert.True(t, blobs.lastUpsert, "regeneration must overwrite, not duplicate")
	assert.Equal(t, "https://public.example.com/certificates/b.pdf", result.URL)
	assert.Equal(t, "b.pdf", result.StoragePath)
}

type fakeBlobStore struct {
	lastBucket string
	lastUpsert bool
}

func (f *fakeBlobStore) Upload(bucket, path string, data []byte, contentType string, upsert bool) error {
	f.lastBucket = bucket
	f.lastUpsert = upsert
	return nil
}

func (f *fakeBlobStore) GetPublicURL(bucket, path string) string {
	return "https://public.example.com/" + bucket + "/" + path
}

func (f *fakeBlobStore) Delete(bucket string, paths []string) error { return nil }

func (f *fakeBlobStore) ListBuckets() ([]string, error) { return []string{"certificates"}, nil }
