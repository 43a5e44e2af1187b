package sync

import (
	"context"
	"sort"

	"go.uber.org/zap"
)

// BrandMap maps local brand codes to Enteractive brand names.
// It is immutable once built.
type BrandMap struct {
	names map[string]string
}

// NewBrandMap copies names into a BrandMap.
func NewBrandMap(names map[string]string) BrandMap {
	m := make(map[string]string, len(names))
	for k, v := range names {
		m[k] = v
	}
	return BrandMap{names: m}
}

// Lookup returns the Enteractive name for code.
func (b BrandMap) Lookup(code string) (string, bool) {
	name, ok := b.names[code]
	return name, ok
}

// Name returns the Enteractive name for code, or nil when the code is unmapped.
func (b BrandMap) Name(code string) *string {
	name, ok := b.names[code]
	if !ok {
		return nil
	}
	return &name
}

func (b BrandMap) Len() int {
	return len(b.names)
}

// Codes returns the mapped local codes in sorted order.
func (b BrandMap) Codes() []string {
	result := FieldMapsKeys(b.names)
	sort.Strings(result)
	return result
}

// BrandResolver maps configured local brand codes to the names present
// in the Enteractive brand directory.
type BrandResolver struct {
	// Configured is the local code to Enteractive name table from config.
	Configured map[string]string
	Lookups    *RemoteLookups
	Logger     *zap.Logger
}

func NewBrandResolver(sc *SyncContext, lookups *RemoteLookups) BrandResolver {
	return BrandResolver{
		Configured: sc.Config.Brands,
		Lookups:    lookups,
		Logger:     sc.Logger,
	}
}

// Resolve builds the run's BrandMap. A code is mapped only when its configured
// name appears exactly in the brand directory. When the directory cannot be
// fetched the map is empty.
func (r BrandResolver) Resolve(ctx context.Context) BrandMap {
	directory, err := r.Lookups.Brands(ctx)
	if err != nil {
		r.Logger.Warn("brand directory unavailable, no brands will be mapped", zap.Error(err))
		return NewBrandMap(nil)
	}
	present := make(map[string]bool, len(directory))
	for _, name := range directory {
		present[name] = true
	}
	mapped := make(map[string]string)
	for code, name := range r.Configured {
		if present[name] {
			mapped[code] = name
			continue
		}
		r.Logger.Warn("brand not found in Enteractive",
			zap.String("brand", code),
			zap.String("brand_name", name))
	}
	return NewBrandMap(mapped)
}
