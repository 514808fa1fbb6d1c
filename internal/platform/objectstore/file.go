// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package objectstore

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/yomira/mediacore/internal/platform/apperr"
)

// FileRepository is the reference object repository implementation:
// every url of the form "file://<path>" resolves under a single root
// directory on the local filesystem.
type FileRepository struct {
	root string
}

// NewFileRepository constructs a repository rooted at root. root must
// already exist.
func NewFileRepository(root string) *FileRepository {
	return &FileRepository{root: root}
}

func (repository *FileRepository) Scheme() string { return "file" }

func (repository *FileRepository) pathFor(url string) (string, error) {
	const prefix = "file://"
	if !strings.HasPrefix(url, prefix) {
		return "", apperr.ObjectPathInvalid(url)
	}
	relative := strings.TrimPrefix(url, prefix)
	if relative == "" || strings.Contains(relative, "..") {
		return "", apperr.ObjectPathInvalid(url)
	}
	return filepath.Join(repository.root, filepath.FromSlash(relative)), nil
}

func (repository *FileRepository) Entry(ctx context.Context, url string) (Entry, error) {
	path, err := repository.pathFor(url)
	if err != nil {
		return Entry{}, err
	}

	info, err := os.Stat(path)
	if errors.Is(err, os.ErrNotExist) {
		return Entry{}, apperr.ObjectNotFound(url)
	}
	if err != nil {
		return Entry{}, apperr.Internal(err)
	}

	kind := KindFile
	if info.IsDir() {
		kind = KindDirectory
	}
	return Entry{
		Name: info.Name(),
		URL:  url,
		Kind: kind,
		Metadata: &Metadata{
			Size:       info.Size(),
			ModifiedAt: info.ModTime(),
			CreatedAt:  info.ModTime(),
			AccessedAt: info.ModTime(),
		},
	}, nil
}

func (repository *FileRepository) Read(ctx context.Context, url string) (io.ReadCloser, error) {
	path, err := repository.pathFor(url)
	if err != nil {
		return nil, err
	}

	file, err := os.Open(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, apperr.ObjectNotFound(url)
	}
	if err != nil {
		return nil, apperr.Internal(err)
	}
	return file, nil
}

func (repository *FileRepository) Put(ctx context.Context, url string, overwrite Overwrite) (Entry, PutStatus, io.WriteCloser, error) {
	path, err := repository.pathFor(url)
	if err != nil {
		return Entry{}, "", nil, err
	}

	status := StatusCreated
	if _, statErr := os.Stat(path); statErr == nil {
		if overwrite == OverwriteFail {
			return Entry{}, "", nil, apperr.ObjectAlreadyExists(url)
		}
		status = StatusExisting
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return Entry{}, "", nil, apperr.Internal(err)
	}

	file, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return Entry{}, "", nil, apperr.Internal(err)
	}

	entry := Entry{Name: filepath.Base(path), URL: url, Kind: KindFile}
	return entry, status, file, nil
}

func (repository *FileRepository) Copy(ctx context.Context, writer io.Writer, reader io.Reader) (int64, error) {
	written, err := io.Copy(writer, reader)
	if err != nil {
		return written, apperr.Internal(err)
	}
	return written, nil
}

func (repository *FileRepository) Delete(ctx context.Context, url string) (DeleteStatus, error) {
	path, err := repository.pathFor(url)
	if err != nil {
		return "", err
	}

	if err := os.Remove(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return DeleteStatusNotFound, nil
		}
		return "", apperr.Internal(err)
	}
	return DeleteStatusDeleted, nil
}

func (repository *FileRepository) List(ctx context.Context, urlPrefix string) ([]Entry, error) {
	path, err := repository.pathFor(urlPrefix)
	if err != nil {
		return nil, err
	}

	entries, err := os.ReadDir(filepath.Dir(path))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, apperr.Internal(err)
	}

	var results []Entry
	prefix := filepath.Base(path)
	for _, entry := range entries {
		if !strings.HasPrefix(entry.Name(), prefix) {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			return nil, apperr.Internal(err)
		}
		kind := KindFile
		if entry.IsDir() {
			kind = KindDirectory
		}
		results = append(results, Entry{
			Name: entry.Name(),
			URL:  "file://" + strings.TrimPrefix(filepath.ToSlash(filepath.Join(filepath.Dir(strings.TrimPrefix(urlPrefix, "file://")), entry.Name())), "/"),
			Kind: kind,
			Metadata: &Metadata{
				Size:       info.Size(),
				ModifiedAt: info.ModTime(),
				CreatedAt:  info.ModTime(),
				AccessedAt: info.ModTime(),
			},
		})
	}
	return results, nil
}
