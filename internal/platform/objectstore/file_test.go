// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package objectstore_test

import (
	"context"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yomira/mediacore/internal/platform/apperr"
	"github.com/yomira/mediacore/internal/platform/objectstore"
)

func TestFileRepository_PutReadRoundTrips(t *testing.T) {
	repository := objectstore.NewFileRepository(t.TempDir())
	ctx := context.Background()

	_, status, writer, err := repository.Put(ctx, "file://aaa/bbb.jpg", objectstore.OverwriteFail)
	require.NoError(t, err)
	assert.Equal(t, objectstore.StatusCreated, status)

	_, writeErr := writer.Write([]byte("hello"))
	require.NoError(t, writeErr)
	require.NoError(t, writer.Close())

	reader, err := repository.Read(ctx, "file://aaa/bbb.jpg")
	require.NoError(t, err)
	defer reader.Close()

	body, err := io.ReadAll(reader)
	require.NoError(t, err)
	assert.Equal(t, "hello", string(body))
}

func TestFileRepository_Put_FailOverwriteRejectsExisting(t *testing.T) {
	repository := objectstore.NewFileRepository(t.TempDir())
	ctx := context.Background()

	_, _, writer, err := repository.Put(ctx, "file://one.jpg", objectstore.OverwriteFail)
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	_, _, _, err = repository.Put(ctx, "file://one.jpg", objectstore.OverwriteFail)
	require.Error(t, err)

	var appErr *apperr.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "OBJECT_ALREADY_EXISTS", appErr.Code)
}

func TestFileRepository_Put_OverwriteReplacesExisting(t *testing.T) {
	repository := objectstore.NewFileRepository(t.TempDir())
	ctx := context.Background()

	_, _, writer, err := repository.Put(ctx, "file://one.jpg", objectstore.OverwriteFail)
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	_, status, writer, err := repository.Put(ctx, "file://one.jpg", objectstore.OverwriteOverwrite)
	require.NoError(t, err)
	assert.Equal(t, objectstore.StatusExisting, status)
	require.NoError(t, writer.Close())
}

func TestFileRepository_Read_MissingObjectReturnsNotFound(t *testing.T) {
	repository := objectstore.NewFileRepository(t.TempDir())

	_, err := repository.Read(context.Background(), "file://missing.jpg")

	require.Error(t, err)
	var appErr *apperr.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "OBJECT_NOT_FOUND", appErr.Code)
}

func TestFileRepository_Delete_IdempotentOnMissingObject(t *testing.T) {
	repository := objectstore.NewFileRepository(t.TempDir())

	status, err := repository.Delete(context.Background(), "file://never-existed.jpg")

	require.NoError(t, err)
	assert.Equal(t, objectstore.DeleteStatusNotFound, status)
}

func TestFileRepository_PathFor_RejectsPathTraversal(t *testing.T) {
	repository := objectstore.NewFileRepository(t.TempDir())

	_, err := repository.Entry(context.Background(), "file://../../etc/passwd")

	require.Error(t, err)
}
