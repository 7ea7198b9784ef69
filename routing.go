package troubadour

// route is an (from, to) pair; used as a map key for the sparse
// enablement relation.
type route struct {
	from, to string
}

// RoutingMatrix is a sparse many-to-many enablement map between source
// and destination identifiers, where both namespaces are the union of
// channel and bus ids. Absence is disabled (spec.md §3, §4.8).
type RoutingMatrix struct {
	entries map[route]bool
}

// NewRoutingMatrix returns an empty matrix.
func NewRoutingMatrix() *RoutingMatrix {
	return &RoutingMatrix{entries: make(map[route]bool)}
}

// SetRoute upserts the enablement of from->to.
func (m *RoutingMatrix) SetRoute(from, to string, enabled bool) {
	if m.entries == nil {
		m.entries = make(map[route]bool)
	}
	if !enabled {
		delete(m.entries, route{from, to})
		return
	}
	m.entries[route{from, to}] = true
}

// IsRouted reports whether from->to is enabled, defaulting to false.
func (m *RoutingMatrix) IsRouted(from, to string) bool {
	return m.entries[route{from, to}]
}

// GetOutputs returns every enabled destination of from. Iteration
// order over the result is unspecified; callers must not depend on it
// (spec.md §4.8).
func (m *RoutingMatrix) GetOutputs(from string) []string {
	var outs []string
	for r, enabled := range m.entries {
		if enabled && r.from == from {
			outs = append(outs, r.to)
		}
	}
	return outs
}

// Clear empties the matrix.
func (m *RoutingMatrix) Clear() {
	m.entries = make(map[route]bool)
}

// RemoveEntity purges every route naming id as either source or
// destination, used on channel/bus removal (spec.md invariant 5).
func (m *RoutingMatrix) RemoveEntity(id string) {
	for r := range m.entries {
		if r.from == id || r.to == id {
			delete(m.entries, r)
		}
	}
}

// Snapshot returns every enabled route as (from, to) pairs, for
// persistence round-tripping. Order is unspecified.
func (m *RoutingMatrix) Snapshot() [][2]string {
	out := make([][2]string, 0, len(m.entries))
	for r, enabled := range m.entries {
		if enabled {
			out = append(out, [2]string{r.from, r.to})
		}
	}
	return out
}
