package service

import (
	"context"
	"fmt"
	"time"

	"instanceresponder/domain"
	"instanceresponder/interfaces"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
)

// Registrar publishes this instance into the shared registry and keeps the
// record alive with a heartbeat. A record whose owner died expires after ttl.
type Registrar struct {
	cache    interfaces.Cache[domain.InstanceRecord]
	instance domain.InstanceContext
	address  string
	counter  interfaces.RequestCounter
	tp       interfaces.TimeProvider
	ttl      time.Duration
	logger   log.Logger
}

// NewRegistrar creates a Registrar. Panics on nil dependencies or non-positive ttl.
func NewRegistrar(
	cache interfaces.Cache[domain.InstanceRecord],
	instance domain.InstanceContext,
	address string,
	counter interfaces.RequestCounter,
	tp interfaces.TimeProvider,
	ttl time.Duration,
	logger log.Logger,
) *Registrar {
	if ttl <= 0 {
		panic("service.registrar.go: ttl must be positive")
	}
	return &Registrar{
		cache:    NilPanic(cache, "service.registrar.go: cache is required"),
		instance: instance,
		address:  address,
		counter:  NilPanic(counter, "service.registrar.go: counter is required"),
		tp:       NilPanic(tp, "service.registrar.go: time provider is required"),
		ttl:      ttl,
		logger:   log.WithPrefix(NilPanic(logger, "service.registrar.go: logger is required"), "component", "Registrar"),
	}
}

func (r *Registrar) record() domain.InstanceRecord {
	return domain.InstanceRecord{
		InstanceID:      r.instance.InstanceID,
		Hostname:        r.instance.Hostname,
		Address:         r.address,
		StartedAt:       r.instance.StartTime,
		UpdatedAt:       r.tp.Now(),
		RequestsHandled: r.counter.Load(),
	}
}

// Register writes the current record with a fresh TTL.
func (r *Registrar) Register(ctx context.Context) error {
	rec := r.record()
	if err := r.cache.WriteValue(ctx, rec.Key(), rec, int(r.ttl.Milliseconds())); err != nil {
		return fmt.Errorf("register failed to write instance record, err: %w", err)
	}
	return nil
}

// Unregister removes the record so that listings drop the instance without waiting for the TTL.
func (r *Registrar) Unregister(ctx context.Context) error {
	if err := r.cache.DeleteValue(ctx, r.record().Key()); err != nil {
		return fmt.Errorf("unregister failed to delete instance record, err: %w", err)
	}
	return nil
}

// HeartbeatInterval is a third of the TTL so that two missed beats still leave the record alive.
func (r *Registrar) HeartbeatInterval() time.Duration {
	if iv := r.ttl / 3; iv > 0 {
		return iv
	}
	return r.ttl
}

// Run registers immediately and then on every heartbeat until ctx is done.
// Write failures are logged and retried on the next beat.
func (r *Registrar) Run(ctx context.Context) {
	if err := r.Register(ctx); err != nil {
		level.Warn(r.logger).Log("msg", "Initial registration failed", "err", err)
	} else {
		level.Info(r.logger).Log("msg", "Instance registered", "key", r.record().Key(), "ttl", r.ttl)
	}

	ticker := time.NewTicker(r.HeartbeatInterval())
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := r.Register(ctx); err != nil {
				level.Warn(r.logger).Log("msg", "Heartbeat failed", "err", err)
			}
		}
	}
}
