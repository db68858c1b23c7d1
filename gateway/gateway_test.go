package gateway

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/tnqbao/gau-storage-gateway/config"
	"github.com/tnqbao/gau-storage-gateway/entity"
)

type fakeOwners struct {
	owner uuid.UUID
	err   error
}

func (f *fakeOwners) Resolve(credential string) (uuid.UUID, error) {
	if f.err != nil {
		return uuid.Nil, f.err
	}
	return f.owner, nil
}

type fakeMetadata struct {
	bucketID uuid.UUID

	resolveErr error
	findErr    error
	insertErr  error
	updateErr  error
	deleteErr  error

	updateRows int64
	deleteRows int64

	calls []string
}

func (f *fakeMetadata) ResolveBucket(ctx context.Context, subject uuid.UUID, name string) (uuid.UUID, error) {
	f.calls = append(f.calls, "resolve:"+name)
	if f.resolveErr != nil {
		return uuid.Nil, f.resolveErr
	}
	return f.bucketID, nil
}

func (f *fakeMetadata) FindObject(ctx context.Context, subject uuid.UUID, bucketName, objectName string) (*entity.Object, error) {
	f.calls = append(f.calls, "find:"+bucketName+"/"+objectName)
	if f.findErr != nil {
		return nil, f.findErr
	}
	return &entity.Object{Name: objectName, Owner: subject}, nil
}

func (f *fakeMetadata) InsertObject(ctx context.Context, subject uuid.UUID, bucketID uuid.UUID, name string, metadata map[string]interface{}) error {
	f.calls = append(f.calls, "insert:"+name)
	return f.insertErr
}

func (f *fakeMetadata) UpdateObject(ctx context.Context, subject uuid.UUID, bucketID uuid.UUID, name string, metadata map[string]interface{}) (int64, error) {
	f.calls = append(f.calls, "update:"+name)
	return f.updateRows, f.updateErr
}

func (f *fakeMetadata) DeleteObject(ctx context.Context, subject uuid.UUID, bucketID uuid.UUID, name string) (int64, error) {
	f.calls = append(f.calls, "delete:"+name)
	return f.deleteRows, f.deleteErr
}

type fakeBlobs struct {
	getBlob   *Blob
	getErr    error
	putErr    error
	deleteErr error

	calls []string
}

func (f *fakeBlobs) Get(ctx context.Context, key string) (*Blob, error) {
	f.calls = append(f.calls, "get:"+key)
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.getBlob, nil
}

func (f *fakeBlobs) Put(ctx context.Context, key string, body io.Reader, size int64, contentType string) (int, error) {
	f.calls = append(f.calls, "put:"+key)
	if f.putErr != nil {
		return 0, f.putErr
	}
	return http.StatusOK, nil
}

func (f *fakeBlobs) Delete(ctx context.Context, key string) (int, error) {
	f.calls = append(f.calls, "remove:"+key)
	if f.deleteErr != nil {
		return 0, f.deleteErr
	}
	return http.StatusOK, nil
}

type fakeIncidents struct {
	reported []Incident
}

func (f *fakeIncidents) Report(ctx context.Context, incident Incident) error {
	f.reported = append(f.reported, incident)
	return nil
}

func newTestGateway(metadata *fakeMetadata, blobs *fakeBlobs, owners *fakeOwners, incidents *fakeIncidents) *Gateway {
	cfg := &config.EnvConfig{}
	cfg.Storage.ProjectRef = "projectref"
	return New(cfg, metadata, blobs, owners, incidents, nil)
}

func TestGetUnauthenticatedTouchesNoStore(t *testing.T) {
	metadata := &fakeMetadata{}
	blobs := &fakeBlobs{}
	gw := newTestGateway(metadata, blobs, &fakeOwners{err: ErrUnauthenticated}, &fakeIncidents{})

	_, err := gw.Get(context.Background(), "bad-token", "avatars", "profile.png")
	if !errors.Is(err, ErrUnauthenticated) {
		t.Fatalf("expected ErrUnauthenticated, got %v", err)
	}
	if len(metadata.calls) != 0 || len(blobs.calls) != 0 {
		t.Fatalf("unauthenticated request reached stores: metadata=%v blobs=%v", metadata.calls, blobs.calls)
	}
}

func TestGetMissingMetadataSkipsBlobStore(t *testing.T) {
	metadata := &fakeMetadata{findErr: ErrNotFound}
	blobs := &fakeBlobs{}
	gw := newTestGateway(metadata, blobs, &fakeOwners{owner: uuid.New()}, &fakeIncidents{})

	_, err := gw.Get(context.Background(), "token", "avatars", "missing.png")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if len(blobs.calls) != 0 {
		t.Fatalf("blob store consulted after metadata miss: %v", blobs.calls)
	}
}

func TestGetMissingBlobReportsInconsistency(t *testing.T) {
	metadata := &fakeMetadata{}
	blobs := &fakeBlobs{getErr: ErrNotFound}
	incidents := &fakeIncidents{}
	gw := newTestGateway(metadata, blobs, &fakeOwners{owner: uuid.New()}, incidents)

	_, err := gw.Get(context.Background(), "token", "avatars", "profile.png")
	if !errors.Is(err, ErrInconsistent) {
		t.Fatalf("expected ErrInconsistent, got %v", err)
	}
	if errors.Is(err, ErrNotFound) {
		t.Fatalf("inconsistency degraded into a plain miss: %v", err)
	}
	if len(incidents.reported) != 1 {
		t.Fatalf("expected 1 incident, got %d", len(incidents.reported))
	}
	got := incidents.reported[0]
	if got.Kind != entity.IncidentMissingBlob {
		t.Errorf("incident kind = %q, want %q", got.Kind, entity.IncidentMissingBlob)
	}
	if got.Key != "projectref/avatars/profile.png" {
		t.Errorf("incident key = %q, want %q", got.Key, "projectref/avatars/profile.png")
	}
}

func TestGetStreamsBlob(t *testing.T) {
	blob := &Blob{
		Body:        io.NopCloser(strings.NewReader("png bytes")),
		ContentType: "image/png",
		Size:        9,
		Status:      http.StatusOK,
	}
	metadata := &fakeMetadata{}
	blobs := &fakeBlobs{getBlob: blob}
	gw := newTestGateway(metadata, blobs, &fakeOwners{owner: uuid.New()}, &fakeIncidents{})

	result, err := gw.Get(context.Background(), "token", "avatars", "profile.png")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	defer result.Body.Close()

	if result.ContentType != "image/png" || result.Size != 9 || result.Status != http.StatusOK {
		t.Fatalf("unexpected result: %+v", result)
	}
	data, _ := io.ReadAll(result.Body)
	if string(data) != "png bytes" {
		t.Fatalf("body = %q", data)
	}
}

func TestCreateBucketMissSkipsInsertAndUpload(t *testing.T) {
	metadata := &fakeMetadata{resolveErr: ErrNotFound}
	blobs := &fakeBlobs{}
	gw := newTestGateway(metadata, blobs, &fakeOwners{owner: uuid.New()}, &fakeIncidents{})

	_, err := gw.Create(context.Background(), "token", "nope", "profile.png", bytes.NewReader(nil), 0, "image/png")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	for _, call := range metadata.calls {
		if strings.HasPrefix(call, "insert:") {
			t.Fatalf("insert attempted after bucket miss: %v", metadata.calls)
		}
	}
	if len(blobs.calls) != 0 {
		t.Fatalf("blob store reached after bucket miss: %v", blobs.calls)
	}
}

func TestCreateDuplicateSkipsUpload(t *testing.T) {
	metadata := &fakeMetadata{bucketID: uuid.New(), insertErr: ErrConflict}
	blobs := &fakeBlobs{}
	gw := newTestGateway(metadata, blobs, &fakeOwners{owner: uuid.New()}, &fakeIncidents{})

	_, err := gw.Create(context.Background(), "token", "avatars", "profile.png", bytes.NewReader(nil), 0, "image/png")
	if !errors.Is(err, ErrConflict) {
		t.Fatalf("expected ErrConflict, got %v", err)
	}
	if len(blobs.calls) != 0 {
		t.Fatalf("duplicate create reached blob store: %v", blobs.calls)
	}
}

func TestCreateUploadFailureLeavesRowAndReports(t *testing.T) {
	putErr := &BlobStoreError{Op: "put", Status: 503, Err: fmt.Errorf("backend unavailable")}
	metadata := &fakeMetadata{bucketID: uuid.New()}
	blobs := &fakeBlobs{putErr: putErr}
	incidents := &fakeIncidents{}
	gw := newTestGateway(metadata, blobs, &fakeOwners{owner: uuid.New()}, incidents)

	_, err := gw.Create(context.Background(), "token", "avatars", "profile.png", strings.NewReader("data"), 4, "image/png")
	if err == nil {
		t.Fatal("expected upload error")
	}

	var inserted bool
	for _, call := range metadata.calls {
		if call == "insert:profile.png" {
			inserted = true
		}
	}
	if !inserted {
		t.Fatalf("insert never happened: %v", metadata.calls)
	}
	if len(incidents.reported) != 1 || incidents.reported[0].Kind != entity.IncidentMissingBlob {
		t.Fatalf("expected one missing_blob incident, got %+v", incidents.reported)
	}
}

func TestCreateReturnsDerivedKey(t *testing.T) {
	metadata := &fakeMetadata{bucketID: uuid.New()}
	blobs := &fakeBlobs{}
	gw := newTestGateway(metadata, blobs, &fakeOwners{owner: uuid.New()}, &fakeIncidents{})

	result, err := gw.Create(context.Background(), "token", "avatars", "folder/profile.png", strings.NewReader("data"), 4, "image/png")
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if result.Key != "projectref/avatars/folder/profile.png" {
		t.Fatalf("key = %q", result.Key)
	}
	if result.Status != http.StatusOK {
		t.Fatalf("status = %d", result.Status)
	}
}

func TestReplaceZeroRowsIsForbidden(t *testing.T) {
	metadata := &fakeMetadata{bucketID: uuid.New(), updateRows: 0}
	blobs := &fakeBlobs{}
	gw := newTestGateway(metadata, blobs, &fakeOwners{owner: uuid.New()}, &fakeIncidents{})

	_, err := gw.Replace(context.Background(), "token", "avatars", "missing.png", strings.NewReader("data"), 4, "image/png")
	if !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
	if errors.Is(err, ErrNotFound) {
		t.Fatal("zero matched rows must not leak existence as a 404")
	}
	if len(blobs.calls) != 0 {
		t.Fatalf("blob store reached after zero-row update: %v", blobs.calls)
	}
}

func TestReplaceOverwritesBlob(t *testing.T) {
	metadata := &fakeMetadata{bucketID: uuid.New(), updateRows: 1}
	blobs := &fakeBlobs{}
	gw := newTestGateway(metadata, blobs, &fakeOwners{owner: uuid.New()}, &fakeIncidents{})

	result, err := gw.Replace(context.Background(), "token", "avatars", "profile.png", strings.NewReader("new"), 3, "image/png")
	if err != nil {
		t.Fatalf("Replace failed: %v", err)
	}
	if result.Key != "projectref/avatars/profile.png" {
		t.Fatalf("key = %q", result.Key)
	}
	if len(blobs.calls) != 1 || blobs.calls[0] != "put:projectref/avatars/profile.png" {
		t.Fatalf("blob calls = %v", blobs.calls)
	}
}

func TestDeleteZeroRowsIsForbidden(t *testing.T) {
	metadata := &fakeMetadata{bucketID: uuid.New(), deleteRows: 0}
	blobs := &fakeBlobs{}
	gw := newTestGateway(metadata, blobs, &fakeOwners{owner: uuid.New()}, &fakeIncidents{})

	err := gw.Delete(context.Background(), "token", "avatars", "missing.png")
	if !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
	if len(blobs.calls) != 0 {
		t.Fatalf("blob store reached after zero-row delete: %v", blobs.calls)
	}
}

func TestDeleteBlobFailureReportsOrphan(t *testing.T) {
	removeErr := &BlobStoreError{Op: "delete", Err: fmt.Errorf("timeout")}
	metadata := &fakeMetadata{bucketID: uuid.New(), deleteRows: 1}
	blobs := &fakeBlobs{deleteErr: removeErr}
	incidents := &fakeIncidents{}
	gw := newTestGateway(metadata, blobs, &fakeOwners{owner: uuid.New()}, incidents)

	err := gw.Delete(context.Background(), "token", "avatars", "profile.png")
	if err == nil {
		t.Fatal("expected delete error")
	}
	if len(incidents.reported) != 1 || incidents.reported[0].Kind != entity.IncidentOrphanBlob {
		t.Fatalf("expected one orphan_blob incident, got %+v", incidents.reported)
	}
}

func TestDeleteRemovesBlobAfterRow(t *testing.T) {
	metadata := &fakeMetadata{bucketID: uuid.New(), deleteRows: 1}
	blobs := &fakeBlobs{}
	gw := newTestGateway(metadata, blobs, &fakeOwners{owner: uuid.New()}, &fakeIncidents{})

	if err := gw.Delete(context.Background(), "token", "avatars", "profile.png"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if len(blobs.calls) != 1 || blobs.calls[0] != "remove:projectref/avatars/profile.png" {
		t.Fatalf("blob calls = %v", blobs.calls)
	}
}
