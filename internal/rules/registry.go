package rules

import "sync"

// Registry is the process-wide, read-only rule catalog. It is built once and
// never mutated, so concurrent readers need no locking. Tests may construct
// minimal registries with New to exercise the engine in isolation.
type Registry struct {
	byCategory map[Category][]Rule
	order      map[string]int
	categories []Category
}

// New builds a Registry from the given rules. Insertion order is preserved
// per category and recorded globally; it is the final tie-break when sorting
// issues.
func New(list []Rule) *Registry {
	r := &Registry{
		byCategory: make(map[Category][]Rule),
		order:      make(map[string]int),
	}
	for i, rule := range list {
		if _, seen := r.byCategory[rule.Category]; !seen {
			r.categories = append(r.categories, rule.Category)
		}
		r.byCategory[rule.Category] = append(r.byCategory[rule.Category], rule)
		r.order[rule.ID] = i
	}
	return r
}

// RulesFor returns the rules of a category in insertion order. The returned
// slice is shared and must not be modified.
func (r *Registry) RulesFor(cat Category) []Rule {
	return r.byCategory[cat]
}

// Categories returns every category that has at least one rule, in first-seen
// order.
func (r *Registry) Categories() []Category {
	return r.categories
}

// Has reports whether the category carries any rules.
func (r *Registry) Has(cat Category) bool {
	return len(r.byCategory[cat]) > 0
}

// Index returns the global insertion index of a rule, or -1 if unknown.
func (r *Registry) Index(ruleID string) int {
	if i, ok := r.order[ruleID]; ok {
		return i
	}
	return -1
}

// Lookup returns the rule with the given ID.
func (r *Registry) Lookup(ruleID string) (Rule, bool) {
	for _, list := range r.byCategory {
		for _, rule := range list {
			if rule.ID == ruleID {
				return rule, true
			}
		}
	}
	return Rule{}, false
}

// Len returns the total number of rules in the registry.
func (r *Registry) Len() int {
	return len(r.order)
}

var (
	defaultOnce     sync.Once
	defaultRegistry *Registry
)

// Default returns the built-in catalog. It is constructed on first use and
// shared for the lifetime of the process.
func Default() *Registry {
	defaultOnce.Do(func() {
		defaultRegistry = New(builtin())
	})
	return defaultRegistry
}
