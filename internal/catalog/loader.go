package catalog

import (
	"errors"
	"fmt"
	"maps"
	"os"
	"sync"

	"gopkg.in/yaml.v3"
)

// Loader reads catalog and run files. Catalogs are cached by path until
// Invalidate is called.
type Loader struct {
	mu    sync.RWMutex
	cache map[string]RawCatalog
}

// NewLoader creates an empty loader.
func NewLoader() *Loader {
	return &Loader{cache: make(map[string]RawCatalog)}
}

// LoadCatalog reads and validates the catalog at path.
func (l *Loader) LoadCatalog(path string) (RawCatalog, error) {
	l.mu.RLock()
	if cat, ok := l.cache[path]; ok {
		l.mu.RUnlock()
		return cat, nil
	}
	l.mu.RUnlock()

	var cat RawCatalog
	if err := readYAML(path, &cat); err != nil {
		return RawCatalog{}, fmt.Errorf("read catalog: %w", err)
	}
	if err := ValidateCatalog(cat); err != nil {
		return RawCatalog{}, err
	}

	l.mu.Lock()
	l.cache[path] = cat
	l.mu.Unlock()
	return cat, nil
}

// Invalidate clears the catalog cache. Call after the watcher reports a change.
func (l *Loader) Invalidate() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.cache = make(map[string]RawCatalog)
}

// LoadRun reads run files in order and layers them: later files override
// earlier ones field by field. Missing files are skipped; at least one must exist.
func (l *Loader) LoadRun(paths ...string) (RawRun, error) {
	var merged RawRun
	found := 0
	for _, p := range paths {
		var run RawRun
		err := readYAML(p, &run)
		if errors.Is(err, os.ErrNotExist) {
			continue
		}
		if err != nil {
			return RawRun{}, fmt.Errorf("read run %s: %w", p, err)
		}
		merged = mergeRun(merged, run)
		found++
	}
	if found == 0 {
		return RawRun{}, fmt.Errorf("read run: none of %v exist: %w", paths, os.ErrNotExist)
	}
	if err := ValidateRun(merged); err != nil {
		return RawRun{}, err
	}
	return merged, nil
}

func readYAML(path string, v any) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := yaml.Unmarshal(b, v); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	return nil
}

// mergeRun overrides a with every field b sets. Plan entries merge by patch.
func mergeRun(a, b RawRun) RawRun {
	out := a

	if b.Mode != nil {
		out.Mode = b.Mode
	}
	if b.Banner != nil {
		out.Banner = b.Banner
	}
	if b.Start != nil {
		out.Start = b.Start
	}

	// resources
	if b.Resources.Jewels != nil {
		out.Resources.Jewels = b.Resources.Jewels
	}
	if b.Resources.Tickets != nil {
		out.Resources.Tickets = b.Resources.Tickets
	}
	if b.Resources.Coins != nil {
		out.Resources.Coins = b.Resources.Coins
	}
	if b.Resources.CharacterPity != nil {
		out.Resources.CharacterPity = b.Resources.CharacterPity
	}
	if b.Resources.WeaponPity != nil {
		out.Resources.WeaponPity = b.Resources.WeaponPity
	}

	// cycles
	if b.Pass != nil {
		c := *b.Pass
		out.Pass = &c
	}
	if b.Subscription != nil {
		c := *b.Subscription
		out.Subscription = &c
	}

	if len(b.Plan) > 0 {
		plan := make(map[string]PlanItem, len(a.Plan)+len(b.Plan))
		maps.Copy(plan, a.Plan)
		maps.Copy(plan, b.Plan)
		out.Plan = plan
	}
	return out
}
