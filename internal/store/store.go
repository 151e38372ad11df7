// Package store is a generic façade over Firestore collections. It hides
// filter/order/limit query construction and snapshot listeners behind a
// collection-parameterized API and stamps createdAt/updatedAt bookkeeping on
// every write. Transport faults propagate to the caller unmodified; there is
// no retry policy at this layer.
package store

import (
	"context"
	"strings"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const (
	fieldCreatedAt = "createdAt"
	fieldUpdatedAt = "updatedAt"
)

// Entity is implemented by any model embedding models.Document.
type Entity interface {
	DocumentID() string
	SetDocumentID(id string)
	Stamp(now time.Time)
}

// Filter is one (field, operator, value) triple. Operators are forwarded to
// Firestore verbatim ("==", "!=", "<", "<=", ">", ">=", "in", "array-contains",
// ...); the adapter does not reinterpret them. Filters in a query are ANDed.
type Filter struct {
	Field string
	Op    string
	Value any
}

type queryOptions struct {
	orderBy   string
	direction firestore.Direction
	limit     int
}

type QueryOption func(*queryOptions)

// OrderBy sorts results by field. Direction is "asc" or "desc"; anything
// else falls back to descending, the caller-facing default.
func OrderBy(field, direction string) QueryOption {
	return func(o *queryOptions) {
		o.orderBy = field
		if strings.EqualFold(direction, "asc") {
			o.direction = firestore.Asc
		} else {
			o.direction = firestore.Desc
		}
	}
}

// Limit truncates the result set after ordering.
func Limit(n int) QueryOption {
	return func(o *queryOptions) {
		o.limit = n
	}
}

// Collection binds the adapter to one logical table. T is the record type;
// PT is its pointer, which must carry the Document bookkeeping methods.
type Collection[T any, PT interface {
	*T
	Entity
}] struct {
	client *firestore.Client
	name   string
	now    func() time.Time
}

func NewCollection[T any, PT interface {
	*T
	Entity
}](client *firestore.Client, name string) *Collection[T, PT] {
	return &Collection[T, PT]{
		client: client,
		name:   name,
		now:    time.Now,
	}
}

func (c *Collection[T, PT]) Name() string { return c.name }

// Create persists doc under a store-assigned id, stamping both timestamps.
func (c *Collection[T, PT]) Create(ctx context.Context, doc PT) (string, error) {
	doc.Stamp(c.now().UTC())
	ref := c.client.Collection(c.name).NewDoc()
	if _, err := ref.Create(ctx, doc); err != nil {
		return "", &WriteError{Collection: c.name, Op: "create", Err: err}
	}
	doc.SetDocumentID(ref.ID)
	return ref.ID, nil
}

// Upsert writes fields under a caller-chosen id. With merge, fields absent
// from the map are preserved; without it the document is replaced. Both paths
// refresh updatedAt; createdAt is stamped when the caller did not supply one.
func (c *Collection[T, PT]) Upsert(ctx context.Context, id string, fields map[string]any, merge bool) error {
	data := make(map[string]any, len(fields)+2)
	for k, v := range fields {
		data[k] = v
	}
	delete(data, "id")
	now := c.now().UTC()
	data[fieldUpdatedAt] = now
	if !merge {
		if _, ok := data[fieldCreatedAt]; !ok {
			data[fieldCreatedAt] = now
		}
	}

	ref := c.client.Collection(c.name).Doc(id)
	var opts []firestore.SetOption
	if merge {
		opts = append(opts, firestore.MergeAll)
	}
	if _, err := ref.Set(ctx, data, opts...); err != nil {
		return &WriteError{Collection: c.name, Op: "upsert", Err: err}
	}
	return nil
}

// Get returns the document or nil when it does not exist. Not-found is a
// valid result, never an error.
func (c *Collection[T, PT]) Get(ctx context.Context, id string) (PT, error) {
	snap, err := c.client.Collection(c.name).Doc(id).Get(ctx)
	if status.Code(err) == codes.NotFound {
		return nil, nil
	}
	if err != nil {
		return nil, &ReadError{Collection: c.name, Op: "get", Err: err}
	}
	return c.decode(snap)
}

// List enumerates every document in the collection. Ordering is
// store-defined; use Query with OrderBy for a guarantee.
func (c *Collection[T, PT]) List(ctx context.Context) ([]PT, error) {
	return c.drain("list", c.client.Collection(c.name).Documents(ctx))
}

// Query applies the ANDed filters plus any order/limit options.
func (c *Collection[T, PT]) Query(ctx context.Context, filters []Filter, opts ...QueryOption) ([]PT, error) {
	return c.drain("query", c.buildQuery(filters, opts...).Documents(ctx))
}

// Update merges the given fields into an existing document and refreshes
// updatedAt. Firestore rejects the write when the document does not exist;
// that fault propagates (see IsNotFound).
func (c *Collection[T, PT]) Update(ctx context.Context, id string, fields map[string]any) error {
	updates := make([]firestore.Update, 0, len(fields)+1)
	for k, v := range fields {
		if k == "id" {
			continue
		}
		updates = append(updates, firestore.Update{Path: k, Value: v})
	}
	updates = append(updates, firestore.Update{Path: fieldUpdatedAt, Value: c.now().UTC()})

	if _, err := c.client.Collection(c.name).Doc(id).Update(ctx, updates); err != nil {
		return &WriteError{Collection: c.name, Op: "update", Err: err}
	}
	return nil
}

// Remove deletes the document. Deleting a missing document is not a fault.
func (c *Collection[T, PT]) Remove(ctx context.Context, id string) error {
	if _, err := c.client.Collection(c.name).Doc(id).Delete(ctx); err != nil {
		return &WriteError{Collection: c.name, Op: "remove", Err: err}
	}
	return nil
}

func (c *Collection[T, PT]) buildQuery(filters []Filter, opts ...QueryOption) firestore.Query {
	q := c.client.Collection(c.name).Query
	for _, f := range filters {
		q = q.Where(f.Field, f.Op, f.Value)
	}

	var o queryOptions
	for _, opt := range opts {
		opt(&o)
	}
	if o.orderBy != "" {
		q = q.OrderBy(o.orderBy, o.direction)
	}
	if o.limit > 0 {
		q = q.Limit(o.limit)
	}
	return q
}

func (c *Collection[T, PT]) drain(op string, iter *firestore.DocumentIterator) ([]PT, error) {
	defer iter.Stop()

	var out []PT
	for {
		snap, err := iter.Next()
		if err == iterator.Done {
			return out, nil
		}
		if err != nil {
			return nil, &ReadError{Collection: c.name, Op: op, Err: err}
		}
		doc, err := c.decode(snap)
		if err != nil {
			return nil, err
		}
		out = append(out, doc)
	}
}

func (c *Collection[T, PT]) decode(snap *firestore.DocumentSnapshot) (PT, error) {
	var v T
	doc := PT(&v)
	if err := snap.DataTo(doc); err != nil {
		return nil, &ReadError{Collection: c.name, Op: "decode", Err: err}
	}
	doc.SetDocumentID(snap.Ref.ID)
	return doc, nil
}
