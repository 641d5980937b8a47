// Package location resolves the active geographic position used for
// prayer time calculation.
//
// Resolution follows a strict degrade path: a configured Source supplies
// coordinates within a bounded timeout; on failure or absence the fixed
// Jakarta fallback applies. Reverse geocoding then enriches the label,
// degrading to a placeholder when the lookup fails. Coordinates and label
// are independent concerns — a label failure never discards coordinates.
//
// # Key Types
//
//   - Source: Supplies raw coordinates (config-backed by default)
//   - Resolver: Applies the timeout, fallback and labelling rules
//
// # Thread Safety
//
// Resolver is stateless after construction and safe for concurrent use.
package location
