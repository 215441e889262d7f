// Package app implements the request pipeline of the polyfill service.
package app

import (
	"context"
	"fmt"
	"maps"
	"slices"
	"strings"

	"go.trai.ch/polyfill/internal/core/domain"
	"go.trai.ch/polyfill/internal/core/ports"
	"go.trai.ch/polyfill/internal/engine/bundler"
	"go.trai.ch/polyfill/internal/engine/filter"
	"go.trai.ch/polyfill/internal/engine/resolver"
	"go.trai.ch/polyfill/internal/engine/useragent"
	"go.trai.ch/zerr"
)

// App represents the main application logic.
type App struct {
	registry    ports.CapabilityRegistry
	catalog     ports.CatalogLoader
	normalizer  *useragent.Normalizer
	resolver    *resolver.Resolver
	filter      *filter.Filter
	logger      ports.Logger
	tracer      ports.Tracer
	unknown     domain.UnknownPolicy
	parallelism int
}

// Option configures an App.
type Option func(*App)

// WithUnknownPolicy sets the policy used when a request does not name one.
func WithUnknownPolicy(p domain.UnknownPolicy) Option {
	return func(a *App) { a.unknown = p }
}

// WithParallelism bounds concurrent registry lookups per request.
// Zero or less means unbounded.
func WithParallelism(n int) Option {
	return func(a *App) { a.parallelism = n }
}

// WithCatalogLoader enables LoadCatalog.
func WithCatalogLoader(l ports.CatalogLoader) Option {
	return func(a *App) { a.catalog = l }
}

// New creates a new App instance.
func New(
	registry ports.CapabilityRegistry,
	normalizer *useragent.Normalizer,
	log ports.Logger,
	tracer ports.Tracer,
	opts ...Option,
) *App {
	a := &App{
		registry:   registry,
		normalizer: normalizer,
		logger:     log,
		tracer:     tracer,
		unknown:    domain.UnknownIgnore,
	}
	for _, opt := range opts {
		opt(a)
	}
	a.resolver = resolver.New(resolver.DefaultProviders(registry), a.parallelism)
	a.filter = filter.New(registry, a.parallelism)
	return a
}

// Resolution is the outcome of resolving one request.
type Resolution struct {
	Identity *useragent.Identity
	Policy   domain.UnknownPolicy
	// Capabilities holds the included capabilities keyed by name.
	Capabilities map[string]domain.ResolvedCapability
	// Included lists the same capabilities in name order with their metadata.
	Included []domain.IncludedCapability
	Warnings domain.Warnings
}

// Artifact is an assembled bundle together with the identity it was built for.
type Artifact struct {
	*bundler.Bundle
	Identity *useragent.Identity
	// Unsupported is set when the runtime was below its family baseline and
	// received the explanatory header only.
	Unsupported bool
}

// LoadCatalog loads the capability catalog from dir.
// Until it succeeds every pipeline call reports domain.ErrRegistryNotReady.
func (a *App) LoadCatalog(ctx context.Context, dir string) error {
	if a.catalog == nil {
		return zerr.With(zerr.New("no catalog loader configured"), "catalog", dir)
	}

	ctx, span := a.tracer.Start(ctx, "load_catalog")
	defer span.End()
	span.SetAttribute("catalog", dir)

	if err := a.catalog.Load(ctx, dir); err != nil {
		span.RecordError(err)
		return zerr.Wrap(err, "failed to load catalog")
	}

	names, err := a.registry.ListCapabilities(ctx)
	if err != nil {
		return err
	}
	a.logger.Info(fmt.Sprintf("catalog loaded: %d capabilities from %s", len(names), dir))
	return nil
}

// Ready reports whether the catalog has been loaded.
func (a *App) Ready() bool {
	return a.catalog == nil || a.catalog.Ready()
}

// Normalize returns the canonical "family/major.minor.0" form of raw.
func (a *App) Normalize(raw string) string {
	return a.normalizer.Normalize(raw)
}

// Identify parses raw into an identity.
func (a *App) Identify(ctx context.Context, raw string) *useragent.Identity {
	_, span := a.tracer.Start(ctx, "normalize")
	defer span.End()

	id := a.normalizer.Parse(raw)
	span.SetAttribute("identity", id.String())
	return id
}

// Resolve runs normalization, alias resolution, exclusion and applicability
// filtering for req.
func (a *App) Resolve(ctx context.Context, req domain.Request) (*Resolution, error) {
	policy := a.policy(req)
	return a.resolve(ctx, req, a.Identify(ctx, req.UserAgent), policy)
}

func (a *App) resolve(
	ctx context.Context,
	req domain.Request,
	id *useragent.Identity,
	policy domain.UnknownPolicy,
) (*Resolution, error) {
	rctx, span := a.tracer.Start(ctx, "resolve")
	resolved, err := a.resolver.Resolve(rctx, requests(req.Capabilities))
	if err != nil {
		span.RecordError(err)
		span.End()
		return nil, zerr.Wrap(err, "failed to resolve capabilities")
	}
	span.SetAttribute("resolved", len(resolved.Capabilities))
	span.End()

	fctx, span := a.tracer.Start(ctx, "filter")
	defer span.End()

	filtered, err := a.filter.Apply(fctx, filter.Exclude(resolved.Capabilities, req.Excludes), id, policy)
	if err != nil {
		span.RecordError(err)
		return nil, zerr.Wrap(err, "failed to filter capabilities")
	}
	span.SetAttribute("included", len(filtered.Included))

	warnings := filtered.Warnings
	warnings.Failed = append(warnings.Failed, resolved.Failed...)
	slices.Sort(warnings.Failed)
	warnings.Failed = slices.Compact(warnings.Failed)
	a.logWarnings(warnings)

	caps := make(map[string]domain.ResolvedCapability, len(filtered.Included))
	for _, c := range filtered.Included {
		caps[c.Name] = c.ResolvedCapability
	}

	return &Resolution{
		Identity:     id,
		Policy:       policy,
		Capabilities: caps,
		Included:     filtered.Included,
		Warnings:     warnings,
	}, nil
}

// Bundle resolves req and assembles the artifact for it. Runtimes below
// their family baseline receive only an explanatory header unless the
// policy is domain.UnknownPolyfill.
func (a *App) Bundle(ctx context.Context, req domain.Request) (*Artifact, error) {
	policy := a.policy(req)
	id := a.Identify(ctx, req.UserAgent)

	if !id.MeetsBaseline() && policy != domain.UnknownPolyfill {
		baseline, _ := id.Baseline()
		return &Artifact{
			Bundle:      bundler.BuildUnsupported(bundler.Unsupported{Runtime: id.DebugName(policy), Baseline: baseline}, req.Minify),
			Identity:    id,
			Unsupported: true,
		}, nil
	}

	res, err := a.resolve(ctx, req, id, policy)
	if err != nil {
		return nil, err
	}

	_, span := a.tracer.Start(ctx, "bundle")
	defer span.End()

	b, err := bundler.Build(res.Included, req.Minify, bundler.Explanation{
		Runtime:   id.DebugName(policy),
		Requested: slices.Sorted(maps.Keys(req.Capabilities)),
		Warnings:  res.Warnings,
	})
	if err != nil {
		span.RecordError(err)
		return nil, zerr.Wrap(err, "failed to assemble bundle")
	}
	span.SetAttribute("capabilities", len(b.Order))

	return &Artifact{Bundle: b, Identity: id}, nil
}

// Describe returns the catalog metadata of name.
func (a *App) Describe(ctx context.Context, name string) (*domain.CapabilityMetadata, error) {
	meta, found, err := a.registry.GetCapability(ctx, name)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, zerr.With(domain.ErrCapabilityNotFound, "capability", name)
	}
	return meta, nil
}

// List returns the names of all capabilities in the catalog.
func (a *App) List(ctx context.Context) ([]string, error) {
	return a.registry.ListCapabilities(ctx)
}

func (a *App) policy(req domain.Request) domain.UnknownPolicy {
	if req.Unknown == "" {
		return a.unknown
	}
	return req.Unknown
}

func (a *App) logWarnings(w domain.Warnings) {
	if len(w.Unknown) > 0 {
		a.logger.Warn("features not recognised: " + strings.Join(w.Unknown, ", "))
	}
	if len(w.Failed) > 0 {
		a.logger.Warn("features could not be loaded: " + strings.Join(w.Failed, ", "))
	}
}

func requests(capabilities map[string]domain.Flags) []domain.CapabilityRequest {
	out := make([]domain.CapabilityRequest, 0, len(capabilities))
	for _, name := range slices.Sorted(maps.Keys(capabilities)) {
		out = append(out, domain.CapabilityRequest{Name: name, Flags: capabilities[name]})
	}
	return out
}
