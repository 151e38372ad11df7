package models

import "time"

// Document is the base every persisted record embeds. The document id lives
// outside the stored field map (Firestore assigns it), timestamps are stamped
// by the store adapter on every write and never trusted from the caller.
type Document struct {
	ID        string    `json:"id" firestore:"-"`
	CreatedAt time.Time `json:"created_at" firestore:"createdAt"`
	UpdatedAt time.Time `json:"updated_at" firestore:"updatedAt"`
}

func (d *Document) DocumentID() string { return d.ID }

func (d *Document) SetDocumentID(id string) { d.ID = id }

// Stamp refreshes bookkeeping timestamps. CreatedAt is only assigned once.
func (d *Document) Stamp(now time.Time) {
	if d.CreatedAt.IsZero() {
		d.CreatedAt = now
	}
	d.UpdatedAt = now
}
