package gateway

import (
	"context"
	"io"

	"github.com/google/uuid"
	"github.com/tnqbao/gau-storage-gateway/entity"
)

// MetadataStore is the authenticated view of bucket/object rows. Every call is
// scoped by the caller's resolved identity so the store can apply its own
// per-row rules; the gateway trusts the store's verdict and never re-implements
// policy on top of it.
//
// Errors: ErrNotFound, ErrConflict and ErrForbidden report store verdicts;
// anything else arrives wrapped in *MetadataStoreError.
type MetadataStore interface {
	ResolveBucket(ctx context.Context, subject uuid.UUID, name string) (uuid.UUID, error)

	// FindObject performs a joined read; an object row whose bucket does not
	// resolve is reported as ErrNotFound, never surfaced.
	FindObject(ctx context.Context, subject uuid.UUID, bucketName, objectName string) (*entity.Object, error)

	InsertObject(ctx context.Context, subject uuid.UUID, bucketID uuid.UUID, name string, metadata map[string]interface{}) error

	// UpdateObject re-stamps the owner and refreshes last_accessed_at. The
	// matched-row count is reported distinctly from store errors: zero rows
	// means "no such object, or caller lacks rights", and the orchestrator
	// folds both into ErrForbidden.
	UpdateObject(ctx context.Context, subject uuid.UUID, bucketID uuid.UUID, name string, metadata map[string]interface{}) (int64, error)

	DeleteObject(ctx context.Context, subject uuid.UUID, bucketID uuid.UUID, name string) (int64, error)
}

// Blob is one object read from the blob store. Body streams the bytes; the
// caller owns closing it.
type Blob struct {
	Body        io.ReadCloser
	ContentType string
	Size        int64
	Status      int
}

// BlobStore holds raw bytes under derived keys. Put must accept bodies of
// unbounded size without buffering them whole (multipart/chunked upload under
// the hood). Transport failures arrive wrapped in *BlobStoreError; a missing
// key on Get is ErrNotFound.
type BlobStore interface {
	Get(ctx context.Context, key string) (*Blob, error)
	Put(ctx context.Context, key string, body io.Reader, size int64, contentType string) (int, error)
	Delete(ctx context.Context, key string) (int, error)
}

// OwnerResolver derives the caller's stable identity from a bearer credential.
// Pure; a credential that cannot be verified yields ErrUnauthenticated.
type OwnerResolver interface {
	Resolve(credential string) (uuid.UUID, error)
}

// Incident describes a detected disagreement between the two stores.
type Incident struct {
	Kind       string
	Bucket     string
	ObjectName string
	Key        string
	Detail     string
}

// IncidentReporter publishes incidents for asynchronous recording. Reporting
// is best-effort; a failed report never fails the request that produced it.
type IncidentReporter interface {
	Report(ctx context.Context, incident Incident) error
}
