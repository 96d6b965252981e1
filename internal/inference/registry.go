package inference

import "sort"

// Registry is an ordered collection of rules, handed out by Rules in
// descending priority. Backward chaining tries candidate rules in that
// order; forward chaining runs every rule of an iteration
// concurrently, so priority does not order its rule applications.
type Registry struct {
	rules []Rule
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// Add registers r.
func (reg *Registry) Add(r Rule) {
	reg.rules = append(reg.rules, r)
}

// Rules returns every registered rule, priority descending, ties
// broken by registration order.
func (reg *Registry) Rules() []Rule {
	out := append([]Rule(nil), reg.rules...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Priority > out[j].Priority })
	return out
}
