package ports

// Metrics records serving-layer counters.
type Metrics interface {
	// ObserveRequest records one served bundle for the normalized identity.
	ObserveRequest(family string, major int, seconds float64)
}
