// Package catalogtest provides a small, fixed capability catalog for tests.
package catalogtest

import (
	"fmt"
	"path"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/require"
	"go.trai.ch/polyfill/internal/adapters/catalog"
	"go.trai.ch/polyfill/internal/core/domain"
	"gopkg.in/yaml.v3"
)

// Capabilities returns fresh copies of the fixture capabilities.
//
// Dependencies (arrow points at the dependency):
//
//	Element.prototype.placeholder -> Object.defineProperty, document.querySelector, Element
//	document.querySelector -> Element -> Document
//	fetch -> Promise -> setImmediate
func Capabilities() []*domain.CapabilityMetadata {
	return []*domain.CapabilityMetadata{
		capability("Array.prototype.map", map[string]string{"ie": "6 - 8"},
			nil, []string{"default", "es5"}, "", "'map' in Array.prototype"),
		capability("Element.prototype.placeholder", map[string]string{"ie": "<10"},
			[]string{"Object.defineProperty", "document.querySelector", "Element"}, nil, "", ""),
		capability("Object.defineProperty", map[string]string{"ie": "6 - 8"},
			nil, []string{"es5"}, "", "'defineProperty' in Object"),
		capability("document.querySelector", map[string]string{"ie": "6 - 8"},
			[]string{"Element"}, nil, "", "'querySelector' in document"),
		capability("Element", map[string]string{"ie": "<9"},
			[]string{"Document"}, nil, "", "'Element' in this"),
		capability("Document", map[string]string{"ie": "<9"},
			nil, nil, "", "'Document' in this"),
		capability("fetch", map[string]string{"chrome": "<42"},
			[]string{"Promise"}, nil, "MIT", "'fetch' in this"),
		capability("Promise", map[string]string{"chrome": "<33", "ie": "*"},
			[]string{"setImmediate"}, []string{"default"}, "MIT", "'Promise' in this"),
		capability("setImmediate", map[string]string{"chrome": "<40", "ie": "<10"},
			nil, nil, "", "'setImmediate' in this"),
		capability("Math.sign", map[string]string{"chrome": "<38", "ie": "*"},
			nil, []string{"default"}, "", "'sign' in Math"),
	}
}

// Raw returns the raw fixture source of name.
func Raw(name string) string {
	return fmt.Sprintf("// %s\npolyfill(%q);\n", name, name)
}

// Min returns the minified fixture source of name.
func Min(name string) string {
	return fmt.Sprintf("polyfill(%q);", name)
}

func capability(name string, ranges map[string]string, deps, aliases []string, license, detect string) *domain.CapabilityMetadata {
	return &domain.CapabilityMetadata{
		Name:          name,
		SupportRanges: ranges,
		Dependencies:  deps,
		ConfigAliases: aliases,
		License:       license,
		RawSource:     Raw(name),
		MinSource:     Min(name),
		DetectSource:  detect,
	}
}

// Registry returns a ready in-memory registry holding the fixtures.
func Registry(t testing.TB) *catalog.Registry {
	t.Helper()
	r, err := catalog.NewMemory(Capabilities(), nil)
	require.NoError(t, err)
	return r
}

// FS renders the fixtures as an on-disk catalog layout.
func FS(t testing.TB) fstest.MapFS {
	t.Helper()
	fsys := fstest.MapFS{}
	for _, c := range Capabilities() {
		manifest, err := yaml.Marshal(catalog.ManifestOf(c))
		require.NoError(t, err)

		fsys[path.Join(c.Name, domain.CatalogMetaFile)] = &fstest.MapFile{Data: manifest}
		fsys[path.Join(c.Name, domain.CatalogRawFile)] = &fstest.MapFile{Data: []byte(c.RawSource)}
		fsys[path.Join(c.Name, domain.CatalogMinFile)] = &fstest.MapFile{Data: []byte(c.MinSource)}
		if c.DetectSource != "" {
			fsys[path.Join(c.Name, domain.CatalogDetectFile)] = &fstest.MapFile{Data: []byte(c.DetectSource)}
		}
	}
	return fsys
}

// WriteDir materializes the fixture catalog under a temporary directory and
// returns its path.
func WriteDir(t testing.TB) string {
	t.Helper()
	dir := t.TempDir()
	for name, file := range FS(t) {
		writeFile(t, path.Join(dir, name), file.Data)
	}
	return dir
}
