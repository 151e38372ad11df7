package store

import (
	"errors"
	"fmt"
	"testing"

	"cloud.google.com/go/firestore"
	"github.com/stretchr/testify/assert"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

func TestWriteErrorWrapsTransportFault(t *testing.T) {
	cause := errors.New("connection reset")
	err := &WriteError{Collection: "invoices", Op: "create", Err: cause}

	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "invoices")
	assert.Contains(t, err.Error(), "create")
}

func TestReadErrorWrapsTransportFault(t *testing.T) {
	cause := errors.New("deadline exceeded")
	err := &ReadError{Collection: "clients", Op: "query", Err: cause}

	assert.ErrorIs(t, err, cause)

	var readErr *ReadError
	assert.True(t, errors.As(err, &readErr))
}

func TestIsNotFound(t *testing.T) {
	notFound := status.Error(codes.NotFound, "no document to update")

	assert.True(t, IsNotFound(notFound))
	assert.True(t, IsNotFound(&WriteError{Collection: "invoices", Op: "update", Err: notFound}))
	assert.True(t, IsNotFound(fmt.Errorf("update invoice: %w", notFound)))

	assert.False(t, IsNotFound(nil))
	assert.False(t, IsNotFound(errors.New("boom")))
	assert.False(t, IsNotFound(status.Error(codes.PermissionDenied, "denied")))
}

func TestQueryOptions(t *testing.T) {
	var o queryOptions
	OrderBy("dueDate", "asc")(&o)
	Limit(25)(&o)

	assert.Equal(t, "dueDate", o.orderBy)
	assert.Equal(t, firestore.Asc, o.direction)
	assert.Equal(t, 25, o.limit)
}

func TestQueryOptionsDefaultDirectionIsDesc(t *testing.T) {
	for _, direction := range []string{"", "desc", "DESC", "sideways"} {
		var o queryOptions
		OrderBy("createdAt", direction)(&o)
		assert.Equal(t, firestore.Desc, o.direction, "direction %q", direction)
	}
}
