package utils

import (
	"fmt"
	"log"
)

// ArtifactResult says where a stored artifact can be read back. StoragePath
// is empty when the artifact is not durably stored (inline tier).
type ArtifactResult struct {
	URL         string
	StoragePath string
}

// ArtifactSink persists a rendered artifact under a deterministic object
// name. Storing the same name again overwrites; no history is kept.
type ArtifactSink interface {
	Store(objectName string, data []byte, contentType string) (ArtifactResult, error)
}

// DurableSink writes the artifact to the blob store and resolves its public
// URL
type DurableSink struct {
	Blobs  BlobStore
	Bucket string
}

func (s DurableSink) Store(objectName string, data []byte, contentType string) (ArtifactResult, error) {
	if err := s.Blobs.Upload(s.Bucket, objectName, data, contentType, true); err != nil {
		return ArtifactResult{}, err
	}
	return ArtifactResult{
		URL:         s.Blobs.GetPublicURL(s.Bucket, objectName),
		StoragePath: objectName,
	}, nil
}

// InlineSink embeds the artifact bytes directly in the record field as a data
// URI. Degraded but valid: the document survives even with storage down.
type InlineSink struct{}

func (InlineSink) Store(objectName string, data []byte, contentType string) (ArtifactResult, error) {
	return ArtifactResult{URL: ToInlineDataURI(data)}, nil
}

// FallbackSink tries the primary tier and degrades to the secondary on any
// failure, including a panic inside the primary. Additional tiers can be
// chained without touching call sites.
type FallbackSink struct {
	Primary   ArtifactSink
	Secondary ArtifactSink
}

func (s FallbackSink) Store(objectName string, data []byte, contentType string) (ArtifactResult, error) {
	result, err := s.tryPrimary(objectName, data, contentType)
	if err == nil {
		return result, nil
	}
	log.Printf("Primary artifact sink failed for %s, falling back: %v", objectName, err)
	return s.Secondary.Store(objectName, data, contentType)
}

func (s FallbackSink) tryPrimary(objectName string, data []byte, contentType string) (result ArtifactResult, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("primary artifact sink panicked: %v", r)
		}
	}()
	return s.Primary.Store(objectName, data, contentType)
}
