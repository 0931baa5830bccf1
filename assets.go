package logoexport

import (
	"embed"
	"fmt"
	"sort"
	"sync"

	"github.com/goccy/go-yaml"
)

//go:embed tables/v1.yml tables/v2.yml
var embeddedTables embed.FS

var variantCache = struct {
	once map[string]*sync.Once
	vars map[string]*Variant
	errs map[string]error
}{
	once: map[string]*sync.Once{
		"v1": new(sync.Once),
		"v2": new(sync.Once),
	},
	vars: make(map[string]*Variant),
	errs: make(map[string]error),
}

// Variants lists the built-in table names.
func Variants() []string {
	names := make([]string, 0, len(variantCache.once))
	for name := range variantCache.once {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// LookupVariant returns a copy of the built-in table with the given name.
func LookupVariant(name string) (*Variant, error) {
	once, ok := variantCache.once[name]
	if !ok {
		return nil, fmt.Errorf("unknown variant %q (want one of %v)", name, Variants())
	}

	once.Do(func() {
		variantCache.vars[name], variantCache.errs[name] = decodeTableAsset(name)
	})

	if err := variantCache.errs[name]; err != nil {
		return nil, err
	}

	v := *variantCache.vars[name]
	v.Outputs = append([]OutputSpec(nil), v.Outputs...)
	return &v, nil
}

// decodeTableAsset loads an embedded output table.
func decodeTableAsset(name string) (*Variant, error) {
	filename := fmt.Sprintf("tables/%s.yml", name)

	data, err := embeddedTables.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", filename, err)
	}

	v := &Variant{}
	if err := yaml.Unmarshal(data, v); err != nil {
		return nil, fmt.Errorf("decode %s: %w", filename, err)
	}
	if err := v.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}

	return v, nil
}
