package bundler

import (
	"go.trai.ch/polyfill/internal/core/domain"
)

// Order sorts included capabilities so that every capability follows the
// included capabilities it depends on. Dependencies that were filtered out
// or never resolved contribute no edge. A cycle is reported as
// domain.ErrCycleDetected carrying the cycle path.
func Order(included []domain.IncludedCapability) ([]domain.IncludedCapability, error) {
	byName := make(map[string]domain.IncludedCapability, len(included))
	g := domain.NewGraph()
	for _, c := range included {
		if err := g.AddNode(c.Name); err != nil {
			return nil, err
		}
		byName[c.Name] = c
	}

	for _, c := range included {
		if c.Metadata == nil {
			continue
		}
		for _, dep := range c.Metadata.Dependencies {
			if _, ok := byName[dep]; !ok {
				continue
			}
			if err := g.AddEdge(dep, c.Name); err != nil {
				return nil, err
			}
		}
	}

	if err := g.Validate(); err != nil {
		return nil, err
	}

	ordered := make([]domain.IncludedCapability, 0, len(included))
	for name := range g.Walk() {
		ordered = append(ordered, byName[name])
	}
	return ordered, nil
}
