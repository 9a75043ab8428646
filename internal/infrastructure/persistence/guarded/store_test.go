package guarded

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/studentbook/studentbook/internal/domain/person"
	"github.com/studentbook/studentbook/internal/domain/shared"
	"github.com/studentbook/studentbook/pkg/circuitbreaker"
)

type flakyStore struct {
	saveErr error
	saves   int
	saved   []*person.Person
	closed  bool
}

func (f *flakyStore) Load(context.Context) ([]*person.Person, error) { return f.saved, nil }

func (f *flakyStore) Save(_ context.Context, persons []*person.Person) error {
	f.saves++
	if f.saveErr != nil {
		return f.saveErr
	}
	f.saved = persons
	return nil
}

func (f *flakyStore) Close() error { f.closed = true; return nil }

func TestStore_OpensAfterFailuresAndRecovers(t *testing.T) {
	now := time.Date(2025, 10, 20, 10, 0, 0, 0, time.UTC)
	breaker := circuitbreaker.New("redis",
		circuitbreaker.WithFailureThreshold(2),
		circuitbreaker.WithCoolDown(time.Minute),
		circuitbreaker.WithClock(func() time.Time { return now }),
	)
	inner := &flakyStore{saveErr: errors.New("dial tcp: connection refused")}
	s := NewWithBreaker(inner, breaker, nil)
	ctx := context.Background()

	require.Error(t, s.Save(ctx, nil))
	require.Error(t, s.Save(ctx, nil))
	assert.Equal(t, circuitbreaker.StateOpen, s.State())

	err := s.Save(ctx, nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, shared.ErrStorage)
	assert.ErrorIs(t, err, circuitbreaker.ErrCircuitOpen)
	assert.Equal(t, "Storage is unavailable, changes are kept in memory until 10:01:00", shared.UserMessage(err))
	assert.Equal(t, 2, inner.saves, "open breaker must not reach the store")

	inner.saveErr = nil
	now = now.Add(time.Minute)
	require.NoError(t, s.Save(ctx, []*person.Person{}))
	assert.Equal(t, circuitbreaker.StateClosed, s.State())
	assert.Equal(t, 3, inner.saves)
}

func TestStore_PassesThrough(t *testing.T) {
	inner := &flakyStore{}
	s := New(inner, "postgres", nil)
	ctx := context.Background()

	p := person.New(person.MustName("Amy"), person.MustPhone("123"), person.MustEmail("amy@example.com"), person.MustAddress("x"))
	require.NoError(t, s.Save(ctx, []*person.Person{p}))

	got, err := s.Load(ctx)
	require.NoError(t, err)
	assert.Len(t, got, 1)

	require.NoError(t, s.Close())
	assert.True(t, inner.closed)
}

func TestStore_InnerErrorIsReturnedUnchanged(t *testing.T) {
	storeErr := shared.WrapError("redis", "Save", shared.ErrStorage, "could not write address book", errors.New("boom"))
	s := New(&flakyStore{saveErr: storeErr}, "redis", nil)

	err := s.Save(context.Background(), nil)
	assert.Same(t, storeErr, err)
}
