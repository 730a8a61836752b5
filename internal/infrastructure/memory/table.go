// Package memory implements the repositories on process-lifetime storage.
package memory

import (
	"errors"
	"slices"
	"sync"
)

var (
	ErrReadOnlyTx  = errors.New("write in read-only transaction")
	ErrDuplicateID = errors.New("row with this id already exists")
)

// Table is a map of rows keyed by id that remembers insertion order.
// All access goes through View or Update, which run the callback under a read
// or write lock respectively, so a lookup-then-mutate sequence inside one
// Update is atomic with respect to every other transaction on the table.
type Table[T any] struct {
	mu    sync.RWMutex
	rows  map[string]T
	order []string
}

func NewTable[T any]() *Table[T] {
	return &Table[T]{rows: make(map[string]T)}
}

func (t *Table[T]) View(fn func(tx *Tx[T]) error) error {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return fn(&Tx[T]{t: t})
}

func (t *Table[T]) Update(fn func(tx *Tx[T]) error) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	return fn(&Tx[T]{t: t, writable: true})
}

// Tx is only valid inside the callback it was handed to.
type Tx[T any] struct {
	t        *Table[T]
	writable bool
}

func (tx *Tx[T]) Insert(id string, row T) error {
	if !tx.writable {
		return ErrReadOnlyTx
	}
	if _, ok := tx.t.rows[id]; ok {
		return ErrDuplicateID
	}
	tx.t.rows[id] = row
	tx.t.order = append(tx.t.order, id)
	return nil
}

func (tx *Tx[T]) Get(id string) (T, bool) {
	row, ok := tx.t.rows[id]
	return row, ok
}

// FindBy returns every row matching the predicate, oldest first.
func (tx *Tx[T]) FindBy(match func(T) bool) []T {
	out := make([]T, 0)
	for _, id := range tx.t.order {
		if row := tx.t.rows[id]; match(row) {
			out = append(out, row)
		}
	}
	return out
}

func (tx *Tx[T]) FindOne(match func(T) bool) (T, bool) {
	for _, id := range tx.t.order {
		if row := tx.t.rows[id]; match(row) {
			return row, true
		}
	}
	var zero T
	return zero, false
}

// UpdateAt replaces an existing row in place, keeping its position.
func (tx *Tx[T]) UpdateAt(id string, row T) (bool, error) {
	if !tx.writable {
		return false, ErrReadOnlyTx
	}
	if _, ok := tx.t.rows[id]; !ok {
		return false, nil
	}
	tx.t.rows[id] = row
	return true, nil
}

func (tx *Tx[T]) RemoveAt(id string) (bool, error) {
	if !tx.writable {
		return false, ErrReadOnlyTx
	}
	if _, ok := tx.t.rows[id]; !ok {
		return false, nil
	}
	delete(tx.t.rows, id)
	if i := slices.Index(tx.t.order, id); i >= 0 {
		tx.t.order = slices.Delete(tx.t.order, i, i+1)
	}
	return true, nil
}

func (tx *Tx[T]) Len() int {
	return len(tx.t.rows)
}
