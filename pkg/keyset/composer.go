// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package keyset

import (
	"time"

	"github.com/yomira/mediacore/internal/platform/apperr"
)

// Order is the natural store order a listing is read in.
type Order string

const (
	OrderAsc  Order = "asc"
	OrderDesc Order = "desc"
)

// Direction tells the store whether to read strictly-after or
// strictly-before the supplied cursor.
type Direction string

const (
	DirectionForward  Direction = "forward"
	DirectionBackward Direction = "backward"
)

// Request is the external, GraphQL-Relay-shaped page request.
type Request struct {
	First  *int
	Last   *int
	After  *string
	Before *string
	Order  Order
}

// StoreCall is the canonical translation a listing store executes: a
// single ordered, cursor-bounded, limit-probed query.
type StoreCall struct {
	Cursor    *Cursor
	Order     Order
	Direction Direction
	Limit     int

	// reversed records whether Compose inverted the caller's order to
	// satisfy a `last` request; Paginate uses it to reverse results
	// back into the caller's requested order.
	reversed bool
}

// DefaultLimit is applied when neither first nor last is set.
const DefaultLimit = 20

// Compose translates a [Request] into a [StoreCall]. It rejects
// requests that set both first and last, or both after and before.
func Compose(request Request) (StoreCall, error) {
	if request.First != nil && request.Last != nil {
		return StoreCall{}, apperr.ValidationError("Validation failed", apperr.FieldError{
			Field: "first", Message: "first and last are mutually exclusive",
		})
	}
	if request.After != nil && request.Before != nil {
		return StoreCall{}, apperr.ValidationError("Validation failed", apperr.FieldError{
			Field: "after", Message: "after and before are mutually exclusive",
		})
	}

	order := request.Order
	if order == "" {
		order = OrderAsc
	}

	requested := DefaultLimit
	reversed := false
	storeOrder := order

	switch {
	case request.First != nil:
		requested = *request.First
	case request.Last != nil:
		requested = *request.Last
		reversed = true
		if order == OrderAsc {
			storeOrder = OrderDesc
		} else {
			storeOrder = OrderAsc
		}
	}

	var cursor *Cursor
	direction := DirectionForward
	switch {
	case request.After != nil:
		decoded, err := Decode(*request.After)
		if err != nil {
			return StoreCall{}, err
		}
		cursor = &decoded
		direction = DirectionForward
	case request.Before != nil:
		decoded, err := Decode(*request.Before)
		if err != nil {
			return StoreCall{}, err
		}
		cursor = &decoded
		direction = DirectionBackward
	}

	return StoreCall{
		Cursor:    cursor,
		Order:     storeOrder,
		Direction: direction,
		Limit:     requested + 1,
		reversed:  reversed,
	}, nil
}

// Page is the result of running a [StoreCall] against a store and
// trimming its probe row.
type Page[T any] struct {
	Items           []T
	HasNextPage     bool
	HasPreviousPage bool
}

// Paginate runs call.Limit-probed items through the forward/backward
// and asc/desc bookkeeping spec.md §4.H describes, returning items in
// the caller's originally requested order.
func Paginate[T any](call StoreCall, items []T) Page[T] {
	hasExtra := len(items) > call.Limit-1
	if hasExtra {
		items = items[:call.Limit-1]
	}

	page := Page[T]{Items: items}

	if call.reversed {
		reverse(page.Items)
		page.HasPreviousPage = hasExtra
		page.HasNextPage = call.Cursor != nil
	} else {
		page.HasNextPage = hasExtra
		page.HasPreviousPage = call.Cursor != nil && call.Direction == DirectionForward
	}

	if call.Cursor == nil {
		if call.reversed {
			page.HasNextPage = false
		} else {
			page.HasPreviousPage = false
		}
	}

	return page
}

func reverse[T any](items []T) {
	for i, j := 0, len(items)-1; i < j; i, j = i+1, j-1 {
		items[i], items[j] = items[j], items[i]
	}
}

// CursorOf is a convenience constructor mirroring the (created_at, id)
// shape every keyset-paginated store keys its cursors on.
func CursorOf(createdAt time.Time, id string) Cursor {
	return Cursor{CreatedAt: createdAt, ID: id}
}
