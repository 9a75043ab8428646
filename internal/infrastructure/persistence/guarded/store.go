// Package guarded puts a circuit breaker in front of a network-backed
// address book store. While the breaker is open, calls fail immediately with
// a storage error instead of waiting on the server.
package guarded

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/studentbook/studentbook/internal/domain/addressbook"
	"github.com/studentbook/studentbook/internal/domain/person"
	"github.com/studentbook/studentbook/internal/domain/shared"
	"github.com/studentbook/studentbook/pkg/circuitbreaker"
	"github.com/studentbook/studentbook/pkg/logger"
)

// MessageStoreUnavailable is shown while the breaker rejects calls.
const MessageStoreUnavailable = "Storage is unavailable, changes are kept in memory until %s"

// Store implements addressbook.Repository around another Repository.
type Store struct {
	inner   addressbook.Repository
	breaker *circuitbreaker.CircuitBreaker
	log     *logger.Logger
}

// New wraps inner with circuitbreaker.StoreBreaker. Breaker transitions are
// logged under name.
func New(inner addressbook.Repository, name string, log *logger.Logger) *Store {
	if log == nil {
		log = logger.Discard()
	}
	log = log.With(logger.Component("guarded"), logger.String("store", name))
	breaker := circuitbreaker.StoreBreaker(name, func(_ string, from, to circuitbreaker.State) {
		log.Warn("store breaker changed state",
			logger.String("from", from.String()), logger.String("to", to.String()))
	})
	return NewWithBreaker(inner, breaker, log)
}

// NewWithBreaker wraps inner with a caller-supplied breaker.
func NewWithBreaker(inner addressbook.Repository, breaker *circuitbreaker.CircuitBreaker, log *logger.Logger) *Store {
	if log == nil {
		log = logger.Discard()
	}
	return &Store{inner: inner, breaker: breaker, log: log}
}

// Load implements addressbook.Repository.
func (s *Store) Load(ctx context.Context) ([]*person.Person, error) {
	var persons []*person.Person
	err := s.breaker.Execute(ctx, func(ctx context.Context) error {
		var err error
		persons, err = s.inner.Load(ctx)
		return err
	})
	if err != nil {
		return nil, s.translate("Load", err)
	}
	return persons, nil
}

// Save implements addressbook.Repository.
func (s *Store) Save(ctx context.Context, persons []*person.Person) error {
	err := s.breaker.Execute(ctx, func(ctx context.Context) error {
		return s.inner.Save(ctx, persons)
	})
	if err != nil {
		return s.translate("Save", err)
	}
	return nil
}

// Close closes the wrapped store.
func (s *Store) Close() error { return s.inner.Close() }

// State reports the breaker state.
func (s *Store) State() circuitbreaker.State { return s.breaker.State() }

func (s *Store) translate(op string, err error) error {
	if errors.Is(err, circuitbreaker.ErrCircuitOpen) || errors.Is(err, circuitbreaker.ErrTooManyRequests) {
		retryAt := s.breaker.RetryAt()
		until := "the next retry"
		if !retryAt.IsZero() {
			until = retryAt.Format(time.TimeOnly)
		}
		s.log.Debug("store call rejected by breaker", logger.String("op", op))
		return shared.WrapError("guarded", op, shared.ErrStorage, fmt.Sprintf(MessageStoreUnavailable, until), err)
	}
	return err
}
