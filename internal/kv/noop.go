package kv

import "context"

// NoopStore discards writes and reports every key as absent. Carts wired to
// it run fine without persistence, which is the required behavior in
// execution contexts that have no storage access.
type NoopStore struct{}

func NewNoopStore() NoopStore { return NoopStore{} }

func (NoopStore) Get(context.Context, string) (string, error) { return "", ErrNotFound }
func (NoopStore) Set(context.Context, string, string) error   { return nil }
func (NoopStore) Remove(context.Context, string) error        { return nil }
