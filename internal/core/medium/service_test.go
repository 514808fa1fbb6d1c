// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package medium_test

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yomira/mediacore/internal/core/medium"
	"github.com/yomira/mediacore/internal/platform/apperr"
	"github.com/yomira/mediacore/internal/platform/imageproc"
	"github.com/yomira/mediacore/internal/platform/objectstore"
)

// fakeReplicaRepository records every UpdateByID call so tests can
// assert on the exact sequence of double-option deltas the pipeline
// applies.
type fakeReplicaRepository struct {
	mu      sync.Mutex
	byID    map[string]*medium.Replica
	updates []medium.ReplicaUpdate

	byURL map[string]*medium.Replica
}

func newFakeReplicaRepository(seed medium.Replica) *fakeReplicaRepository {
	return &fakeReplicaRepository{
		byID:  map[string]*medium.Replica{seed.ID: &seed},
		byURL: map[string]*medium.Replica{},
	}
}

func (f *fakeReplicaRepository) Create(ctx context.Context, mediumID string, displayOrder int) (*medium.Replica, error) {
	return nil, nil
}

func (f *fakeReplicaRepository) FetchByID(ctx context.Context, id string) (*medium.Replica, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	replica, ok := f.byID[id]
	if !ok {
		return nil, apperr.ReplicaNotFound(id)
	}
	copied := *replica
	return &copied, nil
}

func (f *fakeReplicaRepository) FetchByIDs(ctx context.Context, ids []string) ([]medium.Replica, error) {
	return nil, nil
}

func (f *fakeReplicaRepository) FetchByOriginalURL(ctx context.Context, originalURL string) (*medium.Replica, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if replica, ok := f.byURL[originalURL]; ok {
		copied := *replica
		return &copied, nil
	}
	return nil, nil
}

func (f *fakeReplicaRepository) UpdateByID(ctx context.Context, id string, update medium.ReplicaUpdate) (*medium.Replica, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	replica, ok := f.byID[id]
	if !ok {
		return nil, apperr.ReplicaNotFound(id)
	}
	f.updates = append(f.updates, update)

	if url, set := update.OriginalURL.Get(); set {
		replica.OriginalURL = url
		f.byURL[url] = replica
	}
	if thumbnail, set := update.Thumbnail.Get(); set {
		replica.Thumbnail = thumbnail
	}
	if original, set := update.OriginalImage.Get(); set {
		if original == nil {
			replica.MimeType = nil
			replica.Size = nil
		} else {
			replica.MimeType = &original.MimeType
			replica.Size = &original.Size
		}
	}
	if status, set := update.Status.Get(); set {
		replica.Status = status
	}

	copied := *replica
	return &copied, nil
}

func (f *fakeReplicaRepository) DeleteByID(ctx context.Context, id string) error {
	return nil
}

// fakeThumbnailRepository assigns sequential ids and records created rows.
type fakeThumbnailRepository struct {
	mu      sync.Mutex
	created []medium.Thumbnail
}

func (f *fakeThumbnailRepository) Create(ctx context.Context, id string, size medium.Size) (*medium.Thumbnail, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	thumbnail := medium.Thumbnail{ID: id, Size: size, CreatedAt: time.Now(), UpdatedAt: time.Now()}
	f.created = append(f.created, thumbnail)
	return &thumbnail, nil
}

func (f *fakeThumbnailRepository) FetchByID(ctx context.Context, id string) (*medium.Thumbnail, error) {
	return nil, apperr.ThumbnailNotFound(id)
}

func (f *fakeThumbnailRepository) DeleteByID(ctx context.Context, id string) error {
	return nil
}

// fakeObjectRepository is an in-memory stand-in for [objectstore.Repository].
// Put's writer accumulates into a buffer keyed by url so Copy's output
// can be inspected after the fact.
type fakeObjectRepository struct {
	mu          sync.Mutex
	existing    map[string]bool
	written     map[string][]byte
	copyShouldFail bool
}

func newFakeObjectRepository() *fakeObjectRepository {
	return &fakeObjectRepository{existing: map[string]bool{}, written: map[string][]byte{}}
}

func (f *fakeObjectRepository) Scheme() string { return "file" }

func (f *fakeObjectRepository) Entry(ctx context.Context, url string) (objectstore.Entry, error) {
	return objectstore.Entry{URL: url}, nil
}

func (f *fakeObjectRepository) Read(ctx context.Context, url string) (io.ReadCloser, error) {
	return io.NopCloser(bytes.NewReader(f.written[url])), nil
}

func (f *fakeObjectRepository) Put(ctx context.Context, url string, overwrite objectstore.Overwrite) (objectstore.Entry, objectstore.PutStatus, io.WriteCloser, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.existing[url] && overwrite == objectstore.OverwriteFail {
		return objectstore.Entry{}, "", nil, apperr.ObjectAlreadyExists(url)
	}
	f.existing[url] = true
	buf := &bytes.Buffer{}
	f.written[url] = nil
	return objectstore.Entry{URL: url, Kind: objectstore.KindFile}, objectstore.StatusCreated, &trackingWriteCloser{fake: f, url: url, buf: buf}, nil
}

// trackingWriteCloser commits its buffer into the repository on Close,
// matching the real FileRepository's write-then-rename behavior closely
// enough for the pipeline's purposes.
type trackingWriteCloser struct {
	fake *fakeObjectRepository
	url  string
	buf  *bytes.Buffer
}

func (w *trackingWriteCloser) Write(p []byte) (int, error) { return w.buf.Write(p) }
func (w *trackingWriteCloser) Close() error {
	w.fake.mu.Lock()
	defer w.fake.mu.Unlock()
	w.fake.written[w.url] = w.buf.Bytes()
	return nil
}

func (f *fakeObjectRepository) Copy(ctx context.Context, writer io.Writer, reader io.Reader) (int64, error) {
	if f.copyShouldFail {
		return 0, apperr.Internal(assert.AnError)
	}
	return io.Copy(writer, reader)
}

func (f *fakeObjectRepository) Delete(ctx context.Context, url string) (objectstore.DeleteStatus, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.existing, url)
	delete(f.written, url)
	return objectstore.DeleteStatusDeleted, nil
}

func (f *fakeObjectRepository) List(ctx context.Context, urlPrefix string) ([]objectstore.Entry, error) {
	return nil, nil
}

// fakeProcessor renders a fixed thumbnail unless told to fail.
type fakeProcessor struct {
	shouldFail bool
}

func (p *fakeProcessor) GenerateThumbnail(reader io.Reader) (imageproc.OriginalImage, imageproc.ThumbnailImage, error) {
	if p.shouldFail {
		return imageproc.OriginalImage{}, imageproc.ThumbnailImage{}, apperr.MediumReplicaUnsupported()
	}
	return imageproc.OriginalImage{MimeType: "image/jpeg", Width: 800, Height: 600},
		imageproc.ThumbnailImage{Bytes: []byte("thumb-bytes"), Width: 200, Height: 150}, nil
}

func newTestService(replicas *fakeReplicaRepository, thumbnails *fakeThumbnailRepository, objects *fakeObjectRepository, processor *fakeProcessor) *medium.Service {
	return medium.NewService(nil, replicas, thumbnails, objects, processor,
		func(id string) string { return "/thumbnails/" + id },
		slog.New(slog.NewTextHandler(io.Discard, nil)))
}

/*
TestService_PutReplica_HappyPath verifies the full two-phase pipeline:
phase 1 commits Processing synchronously with original_url set, and
phase 2 settles the handle to Ready with a thumbnail and original image
once decoding and the scratch copy both succeed (spec.md §8 scenario 3).
*/
func TestService_PutReplica_HappyPath(t *testing.T) {
	seed := medium.Replica{ID: "replica-1", MediumID: "medium-1", Status: medium.ReplicaStatusProcessing}
	replicas := newFakeReplicaRepository(seed)
	thumbnails := &fakeThumbnailRepository{}
	objects := newFakeObjectRepository()
	service := newTestService(replicas, thumbnails, objects, &fakeProcessor{})

	body := "fake-image-bytes"
	replica, handle, err := service.PutReplica(context.Background(), "replica-1", medium.MediaSource{
		Path:      "media/replica-1.jpg",
		Reader:    strings.NewReader(body),
		Overwrite: objectstore.OverwriteFail,
	})

	require.NoError(t, err)
	require.NotNil(t, handle)
	assert.Equal(t, medium.ReplicaStatusProcessing, replica.Status)
	assert.Equal(t, "file://media/replica-1.jpg", replica.OriginalURL)

	final, awaitErr := handle.Await(context.Background())
	require.NoError(t, awaitErr)
	require.NotNil(t, final)
	assert.Equal(t, medium.ReplicaStatusReady, final.Status)
	require.NotNil(t, final.Thumbnail)
	require.NotNil(t, final.MimeType)
	assert.Equal(t, "image/jpeg", *final.MimeType)
	assert.Equal(t, "file://media/replica-1.jpg", final.OriginalURL)
	assert.Equal(t, []byte(body), objects.written["file://media/replica-1.jpg"])
}

/*
TestService_PutReplica_CopyFailureSettlesError verifies that a failure
in the object repository's scratch copy during phase 2 settles the
replica to Error with no thumbnail or original image, and resolves the
handle without an error of its own (spec.md §8 scenario 4).
*/
func TestService_PutReplica_CopyFailureSettlesError(t *testing.T) {
	seed := medium.Replica{ID: "replica-2", MediumID: "medium-1", Status: medium.ReplicaStatusProcessing}
	replicas := newFakeReplicaRepository(seed)
	thumbnails := &fakeThumbnailRepository{}
	objects := newFakeObjectRepository()
	objects.copyShouldFail = true
	service := newTestService(replicas, thumbnails, objects, &fakeProcessor{})

	_, handle, err := service.PutReplica(context.Background(), "replica-2", medium.MediaSource{
		Path:      "media/replica-2.jpg",
		Reader:    strings.NewReader("bytes"),
		Overwrite: objectstore.OverwriteFail,
	})
	require.NoError(t, err)

	final, awaitErr := handle.Await(context.Background())
	require.NoError(t, awaitErr)
	require.NotNil(t, final)
	assert.Equal(t, medium.ReplicaStatusError, final.Status)
	assert.Nil(t, final.Thumbnail)
	assert.Nil(t, final.MimeType)
}

/*
TestService_PutReplica_DuplicateOriginalURL verifies that attempting to
ingest to a path already owned by another replica surfaces
ReplicaOriginalUrlDuplicate rather than the bare ObjectAlreadyExists
error (spec.md §8 scenario 5).
*/
func TestService_PutReplica_DuplicateOriginalURL(t *testing.T) {
	existing := medium.Replica{ID: "replica-owner", MediumID: "medium-1", Status: medium.ReplicaStatusReady, OriginalURL: "file://media/shared.jpg"}
	replicas := newFakeReplicaRepository(existing)
	replicas.byURL["file://media/shared.jpg"] = &existing
	objects := newFakeObjectRepository()
	objects.existing["file://media/shared.jpg"] = true
	service := newTestService(replicas, &fakeThumbnailRepository{}, objects, &fakeProcessor{})

	_, handle, err := service.PutReplica(context.Background(), "replica-owner", medium.MediaSource{
		Path:      "media/shared.jpg",
		Reader:    strings.NewReader("bytes"),
		Overwrite: objectstore.OverwriteFail,
	})

	require.Error(t, err)
	assert.Nil(t, handle)
	appError := apperr.As(err)
	require.NotNil(t, appError)
	assert.Equal(t, "REPLICA_ORIGINAL_URL_DUPLICATE", appError.Code)
}

/*
TestService_PutReplica_DecodeFailureNeverTouchesOriginalURL verifies
that phase 2's Error reconciliation leaves original_url untouched: it
only ever appears in the phase-1 update, never again.
*/
func TestService_PutReplica_DecodeFailureNeverTouchesOriginalURL(t *testing.T) {
	seed := medium.Replica{ID: "replica-3", MediumID: "medium-1", Status: medium.ReplicaStatusProcessing}
	replicas := newFakeReplicaRepository(seed)
	objects := newFakeObjectRepository()
	service := newTestService(replicas, &fakeThumbnailRepository{}, objects, &fakeProcessor{shouldFail: true})

	_, handle, err := service.PutReplica(context.Background(), "replica-3", medium.MediaSource{
		Path:      "media/replica-3.jpg",
		Reader:    strings.NewReader("bytes"),
		Overwrite: objectstore.OverwriteFail,
	})
	require.NoError(t, err)

	_, awaitErr := handle.Await(context.Background())
	require.NoError(t, awaitErr)

	require.Len(t, replicas.updates, 2)
	_, secondSetsURL := replicas.updates[1].OriginalURL.Get()
	assert.False(t, secondSetsURL)
}
