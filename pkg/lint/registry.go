package lint

import (
	"cmp"
	"slices"
	"strings"
	"sync"
)

// Registry holds all registered accessibility rules.
type Registry struct {
	mu      sync.RWMutex
	byID    map[string]Rule
	byName  map[string]Rule
	aliases map[string]string // alias -> canonical ID
}

// NewRegistry creates an empty rule registry.
func NewRegistry() *Registry {
	return &Registry{
		byID:    make(map[string]Rule),
		byName:  make(map[string]Rule),
		aliases: make(map[string]string),
	}
}

// Register adds a rule to the registry.
// If a rule with the same ID already exists, it is replaced.
func (r *Registry) Register(rule Rule) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byID[rule.ID()] = rule
	r.byName[rule.Name()] = rule
}

// RegisterAlias maps an alias to a canonical rule ID.
// Used to accept the rule names of other accessibility checkers
// (e.g., axe-core's "image-alt" -> "A11Y001").
func (r *Registry) RegisterAlias(alias, ruleID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.aliases[alias] = ruleID
}

// Get retrieves a rule by ID or name.
func (r *Registry) Get(key string) (Rule, bool) {
	_, rule, ok := r.Resolve(key)
	return rule, ok
}

// GetByID retrieves a rule by its ID only.
func (r *Registry) GetByID(id string) (Rule, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	rule, ok := r.byID[id]
	return rule, ok
}

// GetByName retrieves a rule by its name only.
func (r *Registry) GetByName(name string) (Rule, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	rule, ok := r.byName[name]
	return rule, ok
}

// Resolve returns the canonical ID and rule for a given key.
// The key can be a rule ID (case-insensitive), name, or alias.
// Returns (id, rule, found).
func (r *Registry) Resolve(key string) (string, Rule, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	key = strings.TrimSpace(key)

	if rule, ok := r.byID[key]; ok {
		return rule.ID(), rule, true
	}
	if rule, ok := r.byID[strings.ToUpper(key)]; ok {
		return rule.ID(), rule, true
	}
	if rule, ok := r.byName[strings.ToLower(key)]; ok {
		return rule.ID(), rule, true
	}
	if targetID, ok := r.aliases[strings.ToLower(key)]; ok {
		if rule, ok := r.byID[targetID]; ok {
			return rule.ID(), rule, true
		}
	}
	return "", nil, false
}

// Rules returns all registered rules sorted by ID.
func (r *Registry) Rules() []Rule {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]Rule, 0, len(r.byID))
	for _, rule := range r.byID {
		result = append(result, rule)
	}

	slices.SortFunc(result, func(a, b Rule) int {
		return cmp.Compare(a.ID(), b.ID())
	})

	return result
}

// IDs returns all registered rule IDs in sorted order.
func (r *Registry) IDs() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]string, 0, len(r.byID))
	for id := range r.byID {
		result = append(result, id)
	}

	slices.Sort(result)
	return result
}

// AliasesFor returns the aliases registered for ruleID in sorted order.
func (r *Registry) AliasesFor(ruleID string) []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var result []string
	for alias, id := range r.aliases {
		if id == ruleID {
			result = append(result, alias)
		}
	}

	slices.Sort(result)
	return result
}

// WithTag returns the rules carrying tag, sorted by ID. Tags are matched
// case-insensitively.
func (r *Registry) WithTag(tag string) []Rule {
	tag = strings.ToLower(strings.TrimSpace(tag))
	if tag == "" {
		return nil
	}
	return slices.DeleteFunc(r.Rules(), func(rule Rule) bool {
		return !slices.Contains(rule.Tags(), tag)
	})
}

// Tags returns every tag carried by a registered rule, sorted.
func (r *Registry) Tags() []string {
	var tags []string
	for _, rule := range r.Rules() {
		tags = append(tags, rule.Tags()...)
	}
	slices.Sort(tags)
	return slices.Compact(tags)
}

// DefaultRegistry is the global registry for built-in rules.
// The rules package populates it with RegisterAll.
//
//nolint:gochecknoglobals // Global registry is intentional for rule registration
var DefaultRegistry = NewRegistry()
