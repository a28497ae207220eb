// core/structure/registry.go
package structure

// registry keeps records by label in first-insertion order. Re-adding a
// label replaces the record but keeps its position.
type registry[T any] struct {
	order   []string
	byLabel map[string]T
}

func (r *registry[T]) put(label string, v T) {
	if r.byLabel == nil {
		r.byLabel = make(map[string]T)
	}
	if _, ok := r.byLabel[label]; !ok {
		r.order = append(r.order, label)
	}
	r.byLabel[label] = v
}

func (r *registry[T]) get(label string) (T, bool) {
	v, ok := r.byLabel[label]
	return v, ok
}

func (r *registry[T]) labels() []string {
	return append([]string(nil), r.order...)
}

func (r *registry[T]) values() []T {
	out := make([]T, 0, len(r.order))
	for _, l := range r.order {
		out = append(out, r.byLabel[l])
	}
	return out
}

func (r *registry[T]) len() int { return len(r.order) }
