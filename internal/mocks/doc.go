// Package mocks provides mock implementations of the store and service
// interfaces for testing. Mocks use function fields so individual tests can
// override exactly the behavior they exercise, with map-backed defaults for
// the common cases.
package mocks
