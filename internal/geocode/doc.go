// Package geocode resolves coordinates to a human-readable place label
// using the BigDataCloud reverse-geocoding API.
//
// Label resolution is cosmetic: failures degrade to a placeholder label
// and never block schedule fetching.
package geocode
