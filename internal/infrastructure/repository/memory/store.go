// Package memory provides in-memory implementations of the repository
// interfaces, guarded by a single mutex per store. It backs the
// STORAGE_DRIVER=memory mode used for local development and tests.
package memory

import (
	"time"

	"github.com/daftar-app/daftar-api/internal/domain/entity"
	"github.com/google/uuid"
)

func touchID(id *uuid.UUID) {
	if *id == uuid.Nil {
		*id = uuid.New()
	}
}

func touchTimestamps(createdAt, updatedAt *time.Time) {
	now := time.Now()
	if createdAt.IsZero() {
		*createdAt = now
	}
	*updatedAt = now
}

func copyBill(b *entity.Bill) entity.Bill {
	out := *b
	out.Items = make([]entity.BillItem, len(b.Items))
	copy(out.Items, b.Items)
	if b.Customer != nil {
		c := *b.Customer
		out.Customer = &c
	}
	return out
}

func copyTransaction(t *entity.Transaction) entity.Transaction {
	out := *t
	out.Items = make([]entity.TransactionItem, len(t.Items))
	copy(out.Items, t.Items)
	return out
}

func paginate[T any](items []T, offset, limit int) []T {
	if offset >= len(items) {
		return []T{}
	}
	end := offset + limit
	if end > len(items) {
		end = len(items)
	}
	return items[offset:end]
}
