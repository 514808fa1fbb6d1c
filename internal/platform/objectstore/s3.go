// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package objectstore

import (
	"context"
	"io"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/yomira/mediacore/internal/platform/apperr"
)

// S3Repository addresses objects under "s3://<bucket>/<key>" through
// an S3-compatible client (AWS S3, MinIO, or any other implementation
// of the same protocol).
type S3Repository struct {
	client *minio.Client
	bucket string
}

// NewS3Repository constructs a client against endpoint, scoping every
// object under bucket. Pass useSSL=false for local MinIO instances
// served over plain HTTP.
func NewS3Repository(endpoint, accessKey, secretKey, bucket string, useSSL bool) (*S3Repository, error) {
	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure: useSSL,
	})
	if err != nil {
		return nil, apperr.Internal(err)
	}
	return &S3Repository{client: client, bucket: bucket}, nil
}

func (repository *S3Repository) Scheme() string { return "s3" }

func (repository *S3Repository) keyFor(url string) (string, error) {
	const prefix = "s3://"
	if !strings.HasPrefix(url, prefix) {
		return "", apperr.ObjectPathInvalid(url)
	}
	key := strings.TrimPrefix(url, prefix)
	if key == "" {
		return "", apperr.ObjectPathInvalid(url)
	}
	return key, nil
}

func (repository *S3Repository) Entry(ctx context.Context, url string) (Entry, error) {
	key, err := repository.keyFor(url)
	if err != nil {
		return Entry{}, err
	}

	info, err := repository.client.StatObject(ctx, repository.bucket, key, minio.StatObjectOptions{})
	if err != nil {
		if minio.ToErrorResponse(err).Code == "NoSuchKey" {
			return Entry{}, apperr.ObjectNotFound(url)
		}
		return Entry{}, apperr.Internal(err)
	}

	return Entry{
		Name: key,
		URL:  url,
		Kind: KindFile,
		Metadata: &Metadata{
			Size:       info.Size,
			ModifiedAt: info.LastModified,
			CreatedAt:  info.LastModified,
			AccessedAt: info.LastModified,
		},
	}, nil
}

func (repository *S3Repository) Read(ctx context.Context, url string) (io.ReadCloser, error) {
	key, err := repository.keyFor(url)
	if err != nil {
		return nil, err
	}

	object, err := repository.client.GetObject(ctx, repository.bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, apperr.Internal(err)
	}
	return object, nil
}

// s3Writer buffers a Put's bytes in memory and uploads them on Close,
// since minio's PutObject needs the final size up front.
type s3Writer struct {
	ctx        context.Context
	client     *minio.Client
	bucket     string
	key        string
	bytesSoFar []byte
}

func (writer *s3Writer) Write(p []byte) (int, error) {
	writer.bytesSoFar = append(writer.bytesSoFar, p...)
	return len(p), nil
}

func (writer *s3Writer) Close() error {
	reader := strings.NewReader(string(writer.bytesSoFar))
	_, err := writer.client.PutObject(writer.ctx, writer.bucket, writer.key, reader, int64(reader.Len()), minio.PutObjectOptions{})
	if err != nil {
		return apperr.Internal(err)
	}
	return nil
}

func (repository *S3Repository) Put(ctx context.Context, url string, overwrite Overwrite) (Entry, PutStatus, io.WriteCloser, error) {
	key, err := repository.keyFor(url)
	if err != nil {
		return Entry{}, "", nil, err
	}

	status := StatusCreated
	if _, statErr := repository.client.StatObject(ctx, repository.bucket, key, minio.StatObjectOptions{}); statErr == nil {
		if overwrite == OverwriteFail {
			return Entry{}, "", nil, apperr.ObjectAlreadyExists(url)
		}
		status = StatusExisting
	}

	entry := Entry{Name: key, URL: url, Kind: KindFile}
	writer := &s3Writer{ctx: ctx, client: repository.client, bucket: repository.bucket, key: key}
	return entry, status, writer, nil
}

func (repository *S3Repository) Copy(ctx context.Context, writer io.Writer, reader io.Reader) (int64, error) {
	written, err := io.Copy(writer, reader)
	if err != nil {
		return written, apperr.Internal(err)
	}
	return written, nil
}

func (repository *S3Repository) Delete(ctx context.Context, url string) (DeleteStatus, error) {
	key, err := repository.keyFor(url)
	if err != nil {
		return "", err
	}

	if _, statErr := repository.client.StatObject(ctx, repository.bucket, key, minio.StatObjectOptions{}); statErr != nil {
		if minio.ToErrorResponse(statErr).Code == "NoSuchKey" {
			return DeleteStatusNotFound, nil
		}
	}

	if err := repository.client.RemoveObject(ctx, repository.bucket, key, minio.RemoveObjectOptions{}); err != nil {
		return "", apperr.Internal(err)
	}
	return DeleteStatusDeleted, nil
}

func (repository *S3Repository) List(ctx context.Context, urlPrefix string) ([]Entry, error) {
	key, err := repository.keyFor(urlPrefix)
	if err != nil {
		return nil, err
	}

	var entries []Entry
	for object := range repository.client.ListObjects(ctx, repository.bucket, minio.ListObjectsOptions{Prefix: key}) {
		if object.Err != nil {
			return nil, apperr.Internal(object.Err)
		}
		entries = append(entries, Entry{
			Name: object.Key,
			URL:  "s3://" + object.Key,
			Kind: KindFile,
			Metadata: &Metadata{
				Size:       object.Size,
				ModifiedAt: object.LastModified,
				CreatedAt:  object.LastModified,
				AccessedAt: object.LastModified,
			},
		})
	}
	return entries, nil
}
