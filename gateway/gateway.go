package gateway

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/tnqbao/gau-storage-gateway/config"
	"github.com/tnqbao/gau-storage-gateway/entity"
	"github.com/tnqbao/gau-storage-gateway/infra"
)

// Gateway sequences the metadata store and the blob store for the four object
// operations. It is stateless: every call stands alone, write races are
// arbitrated by the metadata store's row matching, and the only ordering it
// enforces is "metadata mutation first, blob mutation second" within one
// request. When the second step fails after the first succeeded there is no
// rollback; the seam is reported as an incident and the error propagates.
type Gateway struct {
	projectRef string
	metadata   MetadataStore
	blobs      BlobStore
	owners     OwnerResolver
	incidents  IncidentReporter
	logger     *infra.LoggerClient
}

func New(cfg *config.EnvConfig, metadata MetadataStore, blobs BlobStore, owners OwnerResolver, incidents IncidentReporter, logger *infra.LoggerClient) *Gateway {
	return &Gateway{
		projectRef: cfg.Storage.ProjectRef,
		metadata:   metadata,
		blobs:      blobs,
		owners:     owners,
		incidents:  incidents,
		logger:     logger,
	}
}

// GetResult carries one object read back to the HTTP layer. Body is the blob
// store's stream; ContentType and Status echo what the blob store reported.
type GetResult struct {
	Body        io.ReadCloser
	ContentType string
	Size        int64
	Status      int
}

// WriteResult reports a completed create or replace.
type WriteResult struct {
	Key    string
	Status int
}

func (g *Gateway) Get(ctx context.Context, credential, bucketName, objectName string) (*GetResult, error) {
	owner, err := g.owners.Resolve(credential)
	if err != nil {
		return nil, ErrUnauthenticated
	}

	if _, err := g.metadata.FindObject(ctx, owner, bucketName, objectName); err != nil {
		return nil, err
	}

	key := ObjectKey(g.projectRef, bucketName, objectName)
	blob, err := g.blobs.Get(ctx, key)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			// Metadata says the object exists but the blob store has nothing.
			// A detectable corruption signal, not a normal miss.
			g.report(ctx, Incident{
				Kind:       entity.IncidentMissingBlob,
				Bucket:     bucketName,
				ObjectName: objectName,
				Key:        key,
				Detail:     "object row resolved but blob read returned no such key",
			})
			return nil, fmt.Errorf("%w: live metadata for %s/%s but no blob at %s", ErrInconsistent, bucketName, objectName, key)
		}
		return nil, err
	}

	return &GetResult{
		Body:        blob.Body,
		ContentType: blob.ContentType,
		Size:        blob.Size,
		Status:      blob.Status,
	}, nil
}

func (g *Gateway) Create(ctx context.Context, credential, bucketName, objectName string, body io.Reader, size int64, contentType string) (*WriteResult, error) {
	owner, err := g.owners.Resolve(credential)
	if err != nil {
		return nil, ErrUnauthenticated
	}

	// Buckets pre-exist; the gateway never creates one.
	bucketID, err := g.metadata.ResolveBucket(ctx, owner, bucketName)
	if err != nil {
		return nil, err
	}

	// The insert is the authorization gate: an unauthorized or duplicate
	// request must never reach blob storage.
	metadata := map[string]interface{}{"mimetype": contentType}
	if err := g.metadata.InsertObject(ctx, owner, bucketID, objectName, metadata); err != nil {
		return nil, err
	}

	key := ObjectKey(g.projectRef, bucketName, objectName)
	status, err := g.blobs.Put(ctx, key, body, size, contentType)
	if err != nil {
		g.report(ctx, Incident{
			Kind:       entity.IncidentMissingBlob,
			Bucket:     bucketName,
			ObjectName: objectName,
			Key:        key,
			Detail:     fmt.Sprintf("object row inserted but blob upload failed: %v", err),
		})
		return nil, err
	}

	return &WriteResult{Key: key, Status: status}, nil
}

func (g *Gateway) Replace(ctx context.Context, credential, bucketName, objectName string, body io.Reader, size int64, contentType string) (*WriteResult, error) {
	owner, err := g.owners.Resolve(credential)
	if err != nil {
		return nil, ErrUnauthenticated
	}

	bucketID, err := g.metadata.ResolveBucket(ctx, owner, bucketName)
	if err != nil {
		return nil, err
	}

	metadata := map[string]interface{}{"mimetype": contentType}
	rows, err := g.metadata.UpdateObject(ctx, owner, bucketID, objectName, metadata)
	if err != nil {
		return nil, err
	}
	if rows == 0 {
		// "Absent" and "present but denied" collapse on purpose so existence
		// never leaks to a caller without rights.
		return nil, ErrForbidden
	}

	key := ObjectKey(g.projectRef, bucketName, objectName)
	status, err := g.blobs.Put(ctx, key, body, size, contentType)
	if err != nil {
		g.report(ctx, Incident{
			Kind:       entity.IncidentMissingBlob,
			Bucket:     bucketName,
			ObjectName: objectName,
			Key:        key,
			Detail:     fmt.Sprintf("object row updated but blob overwrite failed: %v", err),
		})
		return nil, err
	}

	return &WriteResult{Key: key, Status: status}, nil
}

func (g *Gateway) Delete(ctx context.Context, credential, bucketName, objectName string) error {
	owner, err := g.owners.Resolve(credential)
	if err != nil {
		return ErrUnauthenticated
	}

	bucketID, err := g.metadata.ResolveBucket(ctx, owner, bucketName)
	if err != nil {
		return err
	}

	rows, err := g.metadata.DeleteObject(ctx, owner, bucketID, objectName)
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrForbidden
	}

	key := ObjectKey(g.projectRef, bucketName, objectName)
	if _, err := g.blobs.Delete(ctx, key); err != nil {
		// The row is already gone, so the blob is now an inert orphan:
		// unreachable by name, reported for cleanup, never auto-repaired.
		g.report(ctx, Incident{
			Kind:       entity.IncidentOrphanBlob,
			Bucket:     bucketName,
			ObjectName: objectName,
			Key:        key,
			Detail:     fmt.Sprintf("object row deleted but blob removal failed: %v", err),
		})
		return err
	}

	return nil
}

func (g *Gateway) report(ctx context.Context, incident Incident) {
	if g.incidents == nil {
		return
	}
	if err := g.incidents.Report(ctx, incident); err != nil && g.logger != nil {
		g.logger.ErrorWithContextf(ctx, err, "[Gateway] failed to publish %s incident for %s: %v", incident.Kind, incident.Key, err)
	}
}
