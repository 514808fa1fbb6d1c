// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package apperr

import (
	"fmt"
	"net/http"
)

// # Entity-missing

func MediumNotFound(id string) *AppError {
	return &AppError{Code: "MEDIUM_NOT_FOUND", Message: fmt.Sprintf("Medium %s not found", id), HTTPStatus: http.StatusNotFound}
}

func ReplicaNotFound(id string) *AppError {
	return &AppError{Code: "REPLICA_NOT_FOUND", Message: fmt.Sprintf("Replica %s not found", id), HTTPStatus: http.StatusNotFound}
}

func TagNotFound(id string) *AppError {
	return &AppError{Code: "TAG_NOT_FOUND", Message: fmt.Sprintf("Tag %s not found", id), HTTPStatus: http.StatusNotFound}
}

func TagTypeNotFound(id string) *AppError {
	return &AppError{Code: "TAG_TYPE_NOT_FOUND", Message: fmt.Sprintf("Tag type %s not found", id), HTTPStatus: http.StatusNotFound}
}

func ExternalServiceNotFound(id string) *AppError {
	return &AppError{Code: "EXTERNAL_SERVICE_NOT_FOUND", Message: fmt.Sprintf("External service %s not found", id), HTTPStatus: http.StatusNotFound}
}

func SourceNotFound(id string) *AppError {
	return &AppError{Code: "SOURCE_NOT_FOUND", Message: fmt.Sprintf("Source %s not found", id), HTTPStatus: http.StatusNotFound}
}

func ThumbnailNotFound(id string) *AppError {
	return &AppError{Code: "THUMBNAIL_NOT_FOUND", Message: fmt.Sprintf("Thumbnail %s not found", id), HTTPStatus: http.StatusNotFound}
}

func ObjectNotFound(url string) *AppError {
	return &AppError{Code: "OBJECT_NOT_FOUND", Message: fmt.Sprintf("Object %s not found", url), HTTPStatus: http.StatusNotFound}
}

func ObjectPathInvalid(url string) *AppError {
	return &AppError{Code: "OBJECT_PATH_INVALID", Message: fmt.Sprintf("Object path %s is invalid", url), HTTPStatus: http.StatusBadRequest}
}

// # Conflict

// ReplicaOriginalUrlDuplicate is returned when a phase-1 put targets a URL
// already owned by an existing replica. The id of that replica is carried
// in the message and in Details (field "original_url") so callers can
// resolve the duplicate without a second lookup.
func ReplicaOriginalUrlDuplicate(originalURL, existingReplicaID string) *AppError {
	return &AppError{
		Code:       "REPLICA_ORIGINAL_URL_DUPLICATE",
		Message:    fmt.Sprintf("Replica with original_url %s already exists (id %s)", originalURL, existingReplicaID),
		HTTPStatus: http.StatusConflict,
		Details:    []FieldError{{Field: "original_url", Message: existingReplicaID}},
	}
}

func ObjectAlreadyExists(url string) *AppError {
	return &AppError{Code: "OBJECT_ALREADY_EXISTS", Message: fmt.Sprintf("Object %s already exists", url), HTTPStatus: http.StatusConflict}
}

func TagAttachingToItself(id string) *AppError {
	return &AppError{Code: "TAG_ATTACHING_TO_ITSELF", Message: fmt.Sprintf("Tag %s cannot be attached to itself", id), HTTPStatus: http.StatusConflict}
}

func TagAttachingToDescendant(id, descendantID string) *AppError {
	return &AppError{
		Code:       "TAG_ATTACHING_TO_DESCENDANT",
		Message:    fmt.Sprintf("Tag %s cannot be attached under its own descendant %s", id, descendantID),
		HTTPStatus: http.StatusConflict,
	}
}

func TagChildrenExist(count int) *AppError {
	return &AppError{
		Code:       "TAG_CHILDREN_EXIST",
		Message:    fmt.Sprintf("Tag has %d descendant(s); pass recursive=true to delete them", count),
		HTTPStatus: http.StatusConflict,
	}
}

// # Policy

func RootTagUpdated() *AppError {
	return &AppError{Code: "ROOT_TAG_UPDATED", Message: "The root tag cannot be updated", HTTPStatus: http.StatusForbidden}
}

func RootTagAttached() *AppError {
	return &AppError{Code: "ROOT_TAG_ATTACHED", Message: "The root tag cannot be re-parented", HTTPStatus: http.StatusForbidden}
}

func RootTagDetached() *AppError {
	return &AppError{Code: "ROOT_TAG_DETACHED", Message: "The root tag cannot be detached", HTTPStatus: http.StatusForbidden}
}

func RootTagDeleted() *AppError {
	return &AppError{Code: "ROOT_TAG_DELETED", Message: "The root tag cannot be deleted", HTTPStatus: http.StatusForbidden}
}

func MediumReplicaUnsupported() *AppError {
	return &AppError{Code: "MEDIUM_REPLICA_UNSUPPORTED", Message: "Unrecognized replica container format", HTTPStatus: http.StatusUnprocessableEntity}
}

func MediumReplicasNotFound(ids []string) *AppError {
	return &AppError{
		Code:       "MEDIUM_REPLICAS_NOT_FOUND",
		Message:    fmt.Sprintf("%d replica(s) not found", len(ids)),
		HTTPStatus: http.StatusNotFound,
	}
}

func MediumReplicaDecodeError(cause error) *AppError {
	return &AppError{
		Code:       "MEDIUM_REPLICA_DECODE_ERROR",
		Message:    "Replica body could not be decoded",
		HTTPStatus: http.StatusUnprocessableEntity,
		Cause:      cause,
	}
}

// # Input

func CursorInvalid(cursor string) *AppError {
	return &AppError{Code: "CURSOR_INVALID", Message: fmt.Sprintf("Cursor %q is invalid", cursor), HTTPStatus: http.StatusBadRequest}
}

func ExternalServiceSlugInvalid(slug string) *AppError {
	return &AppError{Code: "EXTERNAL_SERVICE_SLUG_INVALID", Message: fmt.Sprintf("Slug %q is invalid", slug), HTTPStatus: http.StatusBadRequest}
}

func ExternalServiceUrlPatternInvalid(pattern string, cause error) *AppError {
	return &AppError{
		Code:       "EXTERNAL_SERVICE_URL_PATTERN_INVALID",
		Message:    fmt.Sprintf("url_pattern %q is invalid", pattern),
		HTTPStatus: http.StatusBadRequest,
		Cause:      cause,
	}
}

func ExternalServiceMetadataInvalid(msg string) *AppError {
	return &AppError{Code: "EXTERNAL_SERVICE_METADATA_INVALID", Message: msg, HTTPStatus: http.StatusBadRequest}
}
