package app_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/polyfill/internal/adapters/catalog"
	"go.trai.ch/polyfill/internal/adapters/catalog/catalogtest"
	"go.trai.ch/polyfill/internal/adapters/lrucache"
	"go.trai.ch/polyfill/internal/adapters/telemetry"
	"go.trai.ch/polyfill/internal/app"
	"go.trai.ch/polyfill/internal/core/domain"
	"go.trai.ch/polyfill/internal/core/ports"
	"go.trai.ch/polyfill/internal/core/ports/mocks"
	"go.trai.ch/polyfill/internal/engine/useragent"
	"go.uber.org/mock/gomock"
)

func newApp(t *testing.T, registry ports.CapabilityRegistry, opts ...app.Option) *app.App {
	t.Helper()
	ctrl := gomock.NewController(t)
	log := mocks.NewMockLogger(ctrl)
	log.EXPECT().Info(gomock.Any()).AnyTimes()
	log.EXPECT().Warn(gomock.Any()).AnyTimes()

	cache, err := lrucache.New(domain.DefaultCacheSize)
	require.NoError(t, err)

	return app.New(registry, useragent.NewNormalizer(cache), log, telemetry.NewNoOpTracer(), opts...)
}

func request(ua string, caps map[string]domain.Flags) domain.Request {
	return domain.Request{Capabilities: caps, UserAgent: ua}
}

func TestApp_Resolve_Scenarios(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		req  domain.Request
		want map[string]domain.ResolvedCapability
	}{
		{
			name: "native already",
			req:  request("chrome/38", map[string]domain.Flags{"Array.prototype.map": {}}),
			want: map[string]domain.ResolvedCapability{},
		},
		{
			name: "always forces inclusion",
			req:  request("chrome/38", map[string]domain.Flags{"Array.prototype.map": {domain.FlagAlways}}),
			want: map[string]domain.ResolvedCapability{
				"Array.prototype.map": {Name: "Array.prototype.map", Flags: domain.Flags{domain.FlagAlways}},
			},
		},
		{
			name: "dependency chain with provenance",
			req:  request("ie/8", map[string]domain.Flags{"Element.prototype.placeholder": {}}),
			want: map[string]domain.ResolvedCapability{
				"Element.prototype.placeholder": {Name: "Element.prototype.placeholder", Flags: domain.Flags{}},
				"Object.defineProperty": {
					Name: "Object.defineProperty", Flags: domain.Flags{},
					AliasOf: []string{"Element.prototype.placeholder"},
				},
				"document.querySelector": {
					Name: "document.querySelector", Flags: domain.Flags{},
					AliasOf: []string{"Element.prototype.placeholder"},
				},
				"Element": {
					Name: "Element", Flags: domain.Flags{},
					AliasOf: []string{"Element.prototype.placeholder", "document.querySelector"},
				},
				"Document": {
					Name: "Document", Flags: domain.Flags{},
					AliasOf: []string{"Element.prototype.placeholder", "document.querySelector", "Element"},
				},
			},
		},
		{
			name: "unknown runtime ignored",
			req:  request("", map[string]domain.Flags{"Array.prototype.map": {}}),
			want: map[string]domain.ResolvedCapability{},
		},
		{
			name: "unknown runtime polyfilled",
			req: domain.Request{
				Capabilities: map[string]domain.Flags{"Array.prototype.map": {}},
				Unknown:      domain.UnknownPolyfill,
			},
			want: map[string]domain.ResolvedCapability{
				"Array.prototype.map": {Name: "Array.prototype.map", Flags: domain.Flags{}},
			},
		},
	}

	a := newApp(t, catalogtest.Registry(t))
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			res, err := a.Resolve(context.Background(), tt.req)
			require.NoError(t, err)
			assert.Equal(t, tt.want, res.Capabilities)
		})
	}
}

func TestApp_Resolve_All(t *testing.T) {
	t.Parallel()
	a := newApp(t, catalogtest.Registry(t))

	old, err := a.Resolve(context.Background(), request("ie/8", map[string]domain.Flags{"all": {}}))
	require.NoError(t, err)
	assert.NotEmpty(t, old.Capabilities)
	assert.NotContains(t, old.Capabilities, "all")

	current, err := a.Resolve(context.Background(), request("chrome/70", map[string]domain.Flags{"all": {}}))
	require.NoError(t, err)
	assert.Empty(t, current.Capabilities)
}

func TestApp_Resolve_Excludes(t *testing.T) {
	t.Parallel()
	a := newApp(t, catalogtest.Registry(t))

	req := request("ie/8", map[string]domain.Flags{"Element.prototype.placeholder": {}})
	req.Excludes = []string{"Element"}

	res, err := a.Resolve(context.Background(), req)
	require.NoError(t, err)
	assert.NotContains(t, res.Capabilities, "Element")
	assert.Contains(t, res.Capabilities, "Document")
	assert.Contains(t, res.Capabilities, "Element.prototype.placeholder")
}

func TestApp_Resolve_UnknownCapabilityWarns(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	log := mocks.NewMockLogger(ctrl)
	log.EXPECT().Warn("features not recognised: Array.prototype.nope")

	a := app.New(catalogtest.Registry(t), useragent.NewNormalizer(nil), log, telemetry.NewNoOpTracer())
	res, err := a.Resolve(context.Background(), request("ie/8", map[string]domain.Flags{
		"Array.prototype.nope": {},
		"Array.prototype.map":  {},
	}))
	require.NoError(t, err)

	assert.Equal(t, []string{"Array.prototype.nope"}, res.Warnings.Unknown)
	assert.Contains(t, res.Capabilities, "Array.prototype.map")
}

func TestApp_Resolve_DefaultPolicy(t *testing.T) {
	t.Parallel()
	a := newApp(t, catalogtest.Registry(t), app.WithUnknownPolicy(domain.UnknownPolyfill))

	res, err := a.Resolve(context.Background(), request("", map[string]domain.Flags{"Math.sign": {}}))
	require.NoError(t, err)
	assert.Equal(t, domain.UnknownPolyfill, res.Policy)
	assert.Contains(t, res.Capabilities, "Math.sign")
}

func TestApp_Bundle_Gated(t *testing.T) {
	t.Parallel()
	a := newApp(t, catalogtest.Registry(t))

	plain, err := a.Bundle(context.Background(), request("chrome/40", map[string]domain.Flags{"fetch": {}}))
	require.NoError(t, err)
	gated, err := a.Bundle(context.Background(), request("chrome/40", map[string]domain.Flags{
		"fetch": {domain.FlagGated},
	}))
	require.NoError(t, err)

	assert.NotEqual(t, plain.Source, gated.Source)
	assert.NotContains(t, plain.Source, "if (!('fetch' in this)) {")
	assert.Contains(t, gated.Source, "if (!('fetch' in this)) {\n"+catalogtest.Raw("fetch")+"}\n\n")
	assert.Equal(t, []string{"fetch"}, gated.Order)
}

func TestApp_Bundle_DependenciesFirst(t *testing.T) {
	t.Parallel()
	a := newApp(t, catalogtest.Registry(t))

	art, err := a.Bundle(context.Background(), request("ie/8", map[string]domain.Flags{
		"Element.prototype.placeholder": {},
	}))
	require.NoError(t, err)

	src := art.Source
	assert.Less(t, strings.Index(src, catalogtest.Raw("Document")), strings.Index(src, catalogtest.Raw("Element")))
	assert.Less(t, strings.Index(src, catalogtest.Raw("Element")), strings.Index(src, catalogtest.Raw("document.querySelector")))
	assert.Less(t,
		strings.Index(src, catalogtest.Raw("document.querySelector")),
		strings.Index(src, catalogtest.Raw("Element.prototype.placeholder")))
	assert.Contains(t, src, "UA detected: ie/8.0.0\n")
	assert.Contains(t, src, "Features requested: Element.prototype.placeholder\n")
	assert.Contains(t, src, `- Element, License: CC0 (required by "Element.prototype.placeholder", "document.querySelector")`)
	assert.False(t, art.Unsupported)
}

func TestApp_Bundle_Unsupported(t *testing.T) {
	t.Parallel()
	a := newApp(t, catalogtest.Registry(t))

	art, err := a.Bundle(context.Background(), request("ie/6", map[string]domain.Flags{"Math.sign": {}}))
	require.NoError(t, err)

	assert.True(t, art.Unsupported)
	assert.Empty(t, art.Order)
	assert.Equal(t,
		"/* Unsupported UA detected: Unknown (using policy: ignore)\n * Version range for polyfill support in this family is: >=7 */\n\n",
		art.Source)

	minified, err := a.Bundle(context.Background(), domain.Request{
		Capabilities: map[string]domain.Flags{"Math.sign": {}},
		UserAgent:    "ie/6",
		Minify:       true,
	})
	require.NoError(t, err)
	assert.Empty(t, minified.Source)
}

func TestApp_Bundle_UnknownPolyfilled(t *testing.T) {
	t.Parallel()
	a := newApp(t, catalogtest.Registry(t))

	art, err := a.Bundle(context.Background(), domain.Request{
		Capabilities: map[string]domain.Flags{"Math.sign": {}},
		UserAgent:    "curl/8.4.0",
		Unknown:      domain.UnknownPolyfill,
	})
	require.NoError(t, err)

	assert.False(t, art.Unsupported)
	assert.Contains(t, art.Source, "UA detected: Unknown (using policy: polyfill)")
	assert.Contains(t, art.Source, catalogtest.Raw("Math.sign"))
}

func TestApp_Bundle_CycleIsFatal(t *testing.T) {
	t.Parallel()

	caps := []*domain.CapabilityMetadata{
		{Name: "a", SupportRanges: map[string]string{"ie": "*"}, Dependencies: []string{"b"}, RawSource: "a();"},
		{Name: "b", SupportRanges: map[string]string{"ie": "*"}, Dependencies: []string{"a"}, RawSource: "b();"},
	}
	registry, err := catalog.NewMemory(caps, nil)
	require.NoError(t, err)
	a := newApp(t, registry)

	_, err = a.Bundle(context.Background(), request("ie/9", map[string]domain.Flags{"a": {}}))
	require.Error(t, err)
	assert.ErrorContains(t, err, domain.ErrCycleDetected.Error())
}

func TestApp_NotReady(t *testing.T) {
	t.Parallel()

	registry := catalog.NewRegistry(2)
	a := newApp(t, registry, app.WithCatalogLoader(registry))
	assert.False(t, a.Ready())

	_, err := a.Resolve(context.Background(), request("ie/8", map[string]domain.Flags{"Math.sign": {}}))
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrRegistryNotReady))

	_, err = a.List(context.Background())
	assert.True(t, errors.Is(err, domain.ErrRegistryNotReady))

	require.NoError(t, a.LoadCatalog(context.Background(), catalogtest.WriteDir(t)))
	assert.True(t, a.Ready())

	names, err := a.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, names, len(catalogtest.Capabilities()))
}

func TestApp_LoadCatalog_Missing(t *testing.T) {
	t.Parallel()

	registry := catalog.NewRegistry(2)
	a := newApp(t, registry, app.WithCatalogLoader(registry))

	err := a.LoadCatalog(context.Background(), t.TempDir()+"/missing")
	require.Error(t, err)
	assert.ErrorContains(t, err, domain.ErrCatalogNotFound.Error())
	assert.False(t, a.Ready())
}

func TestApp_Describe(t *testing.T) {
	t.Parallel()
	a := newApp(t, catalogtest.Registry(t))

	meta, err := a.Describe(context.Background(), "fetch")
	require.NoError(t, err)
	assert.Equal(t, "MIT", meta.License)
	assert.Equal(t, []string{"Promise"}, meta.Dependencies)

	_, err = a.Describe(context.Background(), "nope")
	assert.ErrorContains(t, err, domain.ErrCapabilityNotFound.Error())
}

func TestApp_Normalize(t *testing.T) {
	t.Parallel()
	a := newApp(t, catalogtest.Registry(t))

	assert.Equal(t, "chrome/38.0.0", a.Normalize("Chrome/38.0.5"))
	assert.Equal(t, "ie/8.0.0", a.Identify(context.Background(), "ie/8").String())
}
