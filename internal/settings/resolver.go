// Package settings resolves the authoritative configuration by layering the
// compiled-in defaults, the locally cached copy and the remote copy.
package settings

import (
	"context"
	"encoding/json"
	"errors"

	layering "github.com/goliatone/go-options/layering"
	"go.uber.org/zap"

	"github.com/fitconsult/fitfunnel/internal/errs"
	"github.com/fitconsult/fitfunnel/internal/localstore"
	"github.com/fitconsult/fitfunnel/internal/model"
	"github.com/fitconsult/fitfunnel/internal/repository"
)

// CacheKey is the cache tier key holding the last successfully resolved copy.
const CacheKey = "cachedSettings"

// Resolve merges the given layers over the defaults, in increasing priority.
// Objects merge key-by-key recursively; arrays are replaced wholesale by the
// highest-precedence layer that defines them. A layer that fails to parse is
// discarded silently, falling back to the next-precedence source.
//
// The merge runs over decoded JSON maps rather than structs so that a layer
// carrying an explicit zero (e.g. freeAccessDays: 0, meaning unlimited) still
// overrides the default.
func Resolve(defaults model.Settings, layers ...[]byte) model.Settings {
	stack := []map[string]any{toMap(defaults)}
	for _, layer := range layers {
		if len(layer) == 0 {
			continue
		}
		var m map[string]any
		if err := json.Unmarshal(layer, &m); err != nil {
			continue
		}
		stack = append(stack, m)
	}

	// MergeLayers wants strongest-first; layers arrive weakest-first.
	ordered := make([]map[string]any, 0, len(stack))
	for i := len(stack) - 1; i >= 0; i-- {
		ordered = append(ordered, stack[i])
	}
	merged := layering.MergeLayers(ordered...)

	data, err := json.Marshal(merged)
	if err != nil {
		return defaults
	}
	var out model.Settings
	if err := json.Unmarshal(data, &out); err != nil {
		return defaults
	}
	return out
}

func toMap(s model.Settings) map[string]any {
	data, err := json.Marshal(s)
	if err != nil {
		return map[string]any{}
	}
	var m map[string]any
	if err := json.Unmarshal(data, &m); err != nil {
		return map[string]any{}
	}
	return m
}

// Resolver loads the resolved settings at boot and keeps the cache tier warm.
type Resolver struct {
	records repository.SettingsRecords
	cache   localstore.Store
	log     *zap.Logger
}

// NewResolver constructs a resolver. records may be nil (offline boot).
func NewResolver(records repository.SettingsRecords, cache localstore.Store, log *zap.Logger) *Resolver {
	return &Resolver{records: records, cache: cache, log: log}
}

// Load resolves defaults+cached+remote and persists the result to the cache
// tier so the next boot has a warm fallback even if the remote store is
// unreachable. A failed remote fetch never aborts boot.
func (r *Resolver) Load(ctx context.Context) model.Settings {
	var cached []byte
	if r.cache != nil {
		cached, _ = r.cache.Get(CacheKey)
	}

	var remote []byte
	if r.records != nil {
		data, err := r.records.Fetch(ctx)
		switch {
		case err == nil:
			remote = data
		case errors.Is(err, errs.ErrNotFound):
			r.log.Debug("no remote settings row, using cache/defaults")
		default:
			r.log.Warn("settings fetch failed, degrading to cache/defaults", zap.Error(err))
		}
	}

	resolved := Resolve(Defaults(), cached, remote)

	if r.cache != nil {
		if data, err := json.Marshal(resolved); err == nil {
			if err := r.cache.Set(CacheKey, data); err != nil {
				r.log.Warn("settings cache write failed", zap.Error(err))
			}
		}
	}
	return resolved
}

// StoreCache replaces the cached copy, used after an admin save writes
// through to the remote store.
func (r *Resolver) StoreCache(s model.Settings) {
	if r.cache == nil {
		return
	}
	data, err := json.Marshal(s)
	if err != nil {
		return
	}
	if err := r.cache.Set(CacheKey, data); err != nil {
		r.log.Warn("settings cache write failed", zap.Error(err))
	}
}
