package datasource

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"arena-dashboard/cache"
	"arena-dashboard/config"
	"arena-dashboard/snapshot"

	"github.com/rs/zerolog/log"
)

var (
	ErrUnknownResource = errors.New("unknown resource")
	ErrNoLiveBackend   = errors.New("no live backend configured")
)

// Fetcher is the live side of the resolver.
type Fetcher interface {
	Get(ctx context.Context, path string) (json.RawMessage, error)
	Probe(ctx context.Context) error
}

// Payload is a resolved resource body with its origin.
type Payload struct {
	Resource Resource
	Data     json.RawMessage
	Source   Source
}

// Options configures a Resolver.
type Options struct {
	Live         Fetcher
	Static       snapshot.Store
	Cache        *cache.Cache
	Mode         Mode
	Sticky       StickyPolicy
	ProbeTimeout time.Duration
}

// Status is a point-in-time view of the resolver for health output.
type Status struct {
	Mode     Mode
	Sticky   StickyPolicy
	Degraded bool
	Snapshot string
}

// Resolver picks between the live backend and the static snapshot per
// resource. It owns the degrade flag; nothing else in the process does.
type Resolver struct {
	live         Fetcher
	static       snapshot.Store
	cache        *cache.Cache
	mode         Mode
	sticky       StickyPolicy
	probeTimeout time.Duration

	degraded atomic.Bool
}

func NewResolver(opts Options) *Resolver {
	if opts.ProbeTimeout <= 0 {
		opts.ProbeTimeout = 2 * time.Second
	}
	return &Resolver{
		live:         opts.Live,
		static:       opts.Static,
		cache:        opts.Cache,
		mode:         opts.Mode,
		sticky:       opts.Sticky,
		probeTimeout: opts.ProbeTimeout,
	}
}

// ModeFromConfig honours an explicit datasource.mode; otherwise production
// builds go straight to the snapshot and every other environment tries live first.
func ModeFromConfig(cfg config.Config) (Mode, StickyPolicy, error) {
	sticky, err := ParseStickyPolicy(cfg.DataSource.Sticky)
	if err != nil {
		return LiveWithStaticFallback, PerCall, err
	}
	if cfg.DataSource.Mode != "" {
		mode, err := ParseMode(cfg.DataSource.Mode)
		return mode, sticky, err
	}
	if cfg.API.IsProduction() {
		return StaticOnly, sticky, nil
	}
	return LiveWithStaticFallback, sticky, nil
}

// Start runs the eager reachability probe used by the Once policy. A failed
// probe pins the resolver to static data.
func (r *Resolver) Start(ctx context.Context) {
	if r.mode != LiveWithStaticFallback || r.sticky != Once {
		return
	}
	if err := r.probe(ctx); err != nil {
		r.degrade(err)
		return
	}
	log.Info().Msg("Live analytics backend reachable")
}

// Reset clears cached payloads and the degrade flag, then probes again.
func (r *Resolver) Reset(ctx context.Context) {
	r.cache.Clear()
	if r.degraded.Swap(false) {
		log.Info().Msg("Data source degrade flag cleared")
	}
	r.Start(ctx)
}

// Probe checks whether the live backend answers within the probe timeout.
func (r *Resolver) Probe(ctx context.Context) error {
	if r.mode == StaticOnly {
		return ErrNoLiveBackend
	}
	return r.probe(ctx)
}

func (r *Resolver) probe(ctx context.Context) error {
	if r.live == nil {
		return ErrNoLiveBackend
	}
	ctx, cancel := context.WithTimeout(ctx, r.probeTimeout)
	defer cancel()
	return r.live.Probe(ctx)
}

func (r *Resolver) Status() Status {
	s := Status{Mode: r.mode, Sticky: r.sticky, Degraded: r.degraded.Load()}
	if r.static != nil {
		s.Snapshot = r.static.Name()
	}
	return s
}

// Resolve returns the payload for res. Under LiveWithStaticFallback it only
// fails when the snapshot cannot serve the resource either.
func (r *Resolver) Resolve(ctx context.Context, res Resource) (Payload, error) {
	if !res.Valid() {
		return Payload{}, fmt.Errorf("%q: %w", res, ErrUnknownResource)
	}

	switch r.mode {
	case StaticOnly:
		return r.resolveStatic(ctx, res)
	case LiveOnly:
		return r.resolveLive(ctx, res)
	}

	if r.sticky == Once && r.degraded.Load() {
		return r.resolveStatic(ctx, res)
	}

	payload, err := r.resolveLive(ctx, res)
	if err == nil {
		return payload, nil
	}
	// A caller that went away is not a backend failure.
	if ctx.Err() != nil {
		return Payload{}, ctx.Err()
	}

	r.liveFailed(res, err)
	return r.resolveStatic(ctx, res)
}

// liveFailed records a live failure under the fallback mode: Once pins the
// resolver, PerCall only logs.
func (r *Resolver) liveFailed(res Resource, err error) {
	if r.sticky == Once {
		r.degrade(err)
		return
	}
	log.Warn().Err(err).Str("resource", string(res)).Msg("Live fetch failed, serving static data")
}

func (r *Resolver) resolveLive(ctx context.Context, res Resource) (Payload, error) {
	if data, ok := r.cache.Get(string(res)); ok {
		return Payload{Resource: res, Data: data, Source: SourceCache}, nil
	}
	if r.live == nil {
		return Payload{}, ErrNoLiveBackend
	}

	data, err := r.live.Get(ctx, res.Path())
	if err != nil {
		return Payload{}, fmt.Errorf("live %s: %w", res, err)
	}
	r.cache.Set(string(res), data)
	return Payload{Resource: res, Data: data, Source: SourceLive}, nil
}

func (r *Resolver) resolveStatic(ctx context.Context, res Resource) (Payload, error) {
	if r.static == nil {
		return Payload{}, fmt.Errorf("static %s: %w", res, snapshot.ErrMissing)
	}
	data, err := r.static.Lookup(ctx, res.SnapshotKey())
	if err != nil {
		return Payload{}, fmt.Errorf("static %s: %w", res, err)
	}
	return Payload{Resource: res, Data: data, Source: SourceStatic}, nil
}

func (r *Resolver) degrade(cause error) {
	if !r.degraded.Swap(true) {
		log.Warn().Err(cause).Msg("Live analytics backend unavailable, pinning to static data")
	}
}
