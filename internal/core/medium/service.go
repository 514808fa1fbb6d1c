// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package medium

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"sync"

	"github.com/yomira/mediacore/internal/platform/apperr"
	"github.com/yomira/mediacore/internal/platform/imageproc"
	"github.com/yomira/mediacore/internal/platform/objectstore"
	"github.com/yomira/mediacore/pkg/uuid"
)

// ThumbnailURLFactory computes the out-of-band storage URL a rendered
// thumbnail's bytes are written to, keyed by the thumbnail's id. The
// service never constructs this URL itself — see spec's Out of scope
// list for object-scheme URL construction.
type ThumbnailURLFactory func(id string) string

// MediaSource is the caller-supplied payload for [Service.PutReplica]:
// path identifies the target object within the object repository's
// scheme, reader streams the body exactly once, and overwrite controls
// Put's behavior when an object already occupies the target URL.
type MediaSource struct {
	Path      string
	Reader    io.Reader
	Overwrite objectstore.Overwrite
}

// Service orchestrates the Tag, Media, and Replica stores together
// with the object repository and image processor to run the two-phase
// replica ingestion pipeline.
type Service struct {
	media        MediaRepository
	replicas     ReplicaRepository
	thumbnails   ThumbnailRepository
	objects      objectstore.Repository
	processor    imageproc.Processor
	thumbnailURL ThumbnailURLFactory
	logger       *slog.Logger
}

// NewService constructs a new [Service] with its required collaborators.
func NewService(
	media MediaRepository,
	replicas ReplicaRepository,
	thumbnails ThumbnailRepository,
	objects objectstore.Repository,
	processor imageproc.Processor,
	thumbnailURL ThumbnailURLFactory,
	logger *slog.Logger,
) *Service {
	return &Service{
		media:        media,
		replicas:     replicas,
		thumbnails:   thumbnails,
		objects:      objects,
		processor:    processor,
		thumbnailURL: thumbnailURL,
		logger:       logger,
	}
}

// TaskHandle is a handle to the detached phase-2 ingestion task spawned
// by [Service.PutReplica]. The task outlives the request that spawned
// it: cancelling the context passed to Await interrupts only the wait,
// never the underlying task, matching the pipeline's "detached" design
// (cancellation never rolls back phase 1, nor phase 2 once started).
type TaskHandle struct {
	cancel context.CancelFunc

	done   chan struct{}
	once   sync.Once
	result *Replica
	err    error
}

func newTaskHandle() (*TaskHandle, context.Context) {
	ctx, cancel := context.WithCancel(context.WithoutCancel(context.Background()))
	return &TaskHandle{cancel: cancel, done: make(chan struct{})}, ctx
}

func (handle *TaskHandle) resolve(result *Replica, err error) {
	handle.once.Do(func() {
		handle.result = result
		handle.err = err
		close(handle.done)
	})
}

// Cancel requests cooperative cancellation of the phase-2 task. Per
// spec.md §5, cancellation leaves the replica in Processing; no
// cleanup is attempted.
func (handle *TaskHandle) Cancel() {
	handle.cancel()
}

// Await blocks until phase 2 completes or ctx is cancelled, whichever
// comes first. Cancelling ctx does not cancel the underlying task —
// callers must call Cancel explicitly for that.
func (handle *TaskHandle) Await(ctx context.Context) (*Replica, error) {
	select {
	case <-handle.done:
		return handle.result, handle.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

/*
PutReplica runs the two-phase replica ingestion pipeline.

Description: phase 1 persists source's body to the object repository
and synchronously marks the replica Processing; phase 2 runs detached,
deriving the thumbnail and original-image metadata and finalizing the
replica to Ready or Error. The returned [TaskHandle] resolves once
phase 2 settles; its result is never an error on the ordinary failure
path — a decode or copy failure resolves the handle with a Replica
whose Status is Error, not an error value. Only a failure of the
reconciliation update itself surfaces as an error on the handle.

Parameters:
  - ctx: context.Context (bounds phase 1 only; phase 2 is detached)
  - replicaID: string (must already exist, typically just created via ReplicaRepository.Create)
  - source: MediaSource (target path, body, and overwrite policy)

Returns:
  - *Replica: the post-phase-1 replica, status Processing
  - *TaskHandle: resolves to the post-phase-2 replica
  - error: surfaces ObjectAlreadyExists/ReplicaOriginalUrlDuplicate, ObjectPathInvalid, or the wrapped store error
*/
func (service *Service) PutReplica(ctx context.Context, replicaID string, source MediaSource) (*Replica, *TaskHandle, error) {
	targetURL := service.objects.Scheme() + "://" + source.Path

	entry, _, writer, err := service.objects.Put(ctx, targetURL, source.Overwrite)
	if err != nil {
		if source.Overwrite == objectstore.OverwriteFail && isObjectAlreadyExists(err) {
			if existing, lookupErr := service.replicas.FetchByOriginalURL(ctx, targetURL); lookupErr == nil && existing != nil {
				return nil, nil, apperr.ReplicaOriginalUrlDuplicate(targetURL, existing.ID)
			}
		}
		return nil, nil, err
	}
	if entry.URL == "" {
		return nil, nil, apperr.ObjectPathInvalid(targetURL)
	}

	replica, err := service.replicas.UpdateByID(ctx, replicaID, ReplicaUpdate{
		Thumbnail:     Set[*Thumbnail](nil),
		OriginalURL:   Set(targetURL),
		OriginalImage: Set[*OriginalImage](nil),
		Status:        Set(ReplicaStatusProcessing),
	})
	if err != nil {
		if _, deleteErr := service.objects.Delete(context.WithoutCancel(ctx), targetURL); deleteErr != nil {
			service.logger.Warn("replica_ingest_cleanup_failed", slog.String("url", targetURL), slog.Any("error", deleteErr))
		}
		return nil, nil, err
	}

	handle, taskCtx := newTaskHandle()
	body, readErr := io.ReadAll(source.Reader)
	go service.runPhase2(taskCtx, handle, replicaID, targetURL, writer, body, readErr)

	return replica, handle, nil
}

// runPhase2 derives the thumbnail and original-image metadata from
// body, persists the scratch copy, and reconciles the replica to
// Ready or Error. The body is buffered once in PutReplica (rather than
// tee'd) and replayed to both the processor and the copy — the
// pipeline contract fixes only that both must complete before
// reconciliation, not their relative order or concurrency.
func (service *Service) runPhase2(ctx context.Context, handle *TaskHandle, replicaID, originalURL string, writer io.WriteCloser, body []byte, readErr error) {
	if readErr != nil {
		close0(writer)
		service.failPhase2(ctx, handle, replicaID, readErr)
		return
	}

	original, thumbnail, processErr := service.processor.GenerateThumbnail(bytes.NewReader(body))
	if _, copyErr := service.objects.Copy(ctx, writer, bytes.NewReader(body)); copyErr != nil && processErr == nil {
		processErr = copyErr
	}
	close0(writer)
	if processErr != nil {
		service.failPhase2(ctx, handle, replicaID, processErr)
		return
	}

	thumbnailID := uuid.New()
	thumbnailURL := service.thumbnailURL(thumbnailID)
	_, _, thumbWriter, putErr := service.objects.Put(ctx, thumbnailURL, objectstore.OverwriteOverwrite)
	if putErr != nil {
		service.failPhase2(ctx, handle, replicaID, putErr)
		return
	}
	if _, err := thumbWriter.Write(thumbnail.Bytes); err != nil {
		close0(thumbWriter)
		service.failPhase2(ctx, handle, replicaID, err)
		return
	}
	close0(thumbWriter)

	thumbnailRow, err := service.thumbnails.Create(ctx, thumbnailID, Size{Width: thumbnail.Width, Height: thumbnail.Height})
	if err != nil {
		service.failPhase2(ctx, handle, replicaID, err)
		return
	}

	replica, err := service.replicas.UpdateByID(ctx, replicaID, ReplicaUpdate{
		Thumbnail: Set(thumbnailRow),
		OriginalImage: Set(&OriginalImage{
			MimeType: original.MimeType,
			Size:     Size{Width: original.Width, Height: original.Height},
		}),
		Status: Set(ReplicaStatusReady),
	})
	if err != nil {
		handle.resolve(nil, err)
		return
	}
	handle.resolve(replica, nil)
}

// failPhase2 applies the Error reconciliation update (spec.md §4.G
// step 3). A processing/copy failure is the replica's final outcome:
// the handle resolves with the Error replica and no error, unless the
// reconciliation update itself fails.
func (service *Service) failPhase2(ctx context.Context, handle *TaskHandle, replicaID string, cause error) {
	service.logger.Warn("replica_ingest_failed", slog.String("replica_id", replicaID), slog.Any("error", cause))

	replica, err := service.replicas.UpdateByID(ctx, replicaID, ReplicaUpdate{
		Thumbnail:     Set[*Thumbnail](nil),
		OriginalImage: Set[*OriginalImage](nil),
		Status:        Set(ReplicaStatusError),
	})
	if err != nil {
		handle.resolve(nil, err)
		return
	}
	handle.resolve(replica, nil)
}

func isObjectAlreadyExists(err error) bool {
	appError := apperr.As(err)
	return appError != nil && appError.Code == "OBJECT_ALREADY_EXISTS"
}

func close0(closer io.Closer) {
	if closer == nil {
		return
	}
	_ = closer.Close()
}
