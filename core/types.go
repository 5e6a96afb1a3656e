// SPDX-License-Identifier: MIT
//
// File: types.go
// Role: MeasurementSet, the thread-safe registry of measurements keyed by ID.
// Concurrency:
//   - mu guards byID; mutations take the write lock, queries the read lock.
//   - Measurement values are copied in and out, so callers never share
//     storage with the set.

package core

import (
	"fmt"
	"sort"
	"sync"
)

// MeasurementSet is the collection of measurements of one estimation run.
//
// The set is safe for concurrent use. Measurements() returns a snapshot in
// ascending ID order, so everything built from it is deterministic.
type MeasurementSet struct {
	mu   sync.RWMutex
	byID map[string]Measurement
}

// NewMeasurementSet returns a set holding ms, or the first validation or
// duplicate-ID error.
func NewMeasurementSet(ms ...Measurement) (*MeasurementSet, error) {
	s := &MeasurementSet{byID: make(map[string]Measurement, len(ms))}
	for _, m := range ms {
		if err := s.Add(m); err != nil {
			return nil, err
		}
	}

	return s, nil
}

// Add validates m and inserts it.
//
// Errors:
//   - ErrEmptyMeasurementID, ErrNilDistribution, ErrInvalidParameter,
//     ErrUnknownCriterion from Measurement.Validate.
//   - ErrDuplicateMeasurement if m.ID is already present.
//
// Complexity: O(1).
func (s *MeasurementSet) Add(m Measurement) error {
	if err := m.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.byID == nil {
		s.byID = make(map[string]Measurement)
	}
	if _, exists := s.byID[m.ID]; exists {
		return fmt.Errorf("%w: %q", ErrDuplicateMeasurement, m.ID)
	}
	s.byID[m.ID] = m

	return nil
}

// Get returns the measurement with the given ID or ErrMeasurementNotFound.
func (s *MeasurementSet) Get(id string) (Measurement, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	m, ok := s.byID[id]
	if !ok {
		return Measurement{}, fmt.Errorf("%w: %q", ErrMeasurementNotFound, id)
	}

	return m, nil
}

// Remove deletes the measurement with the given ID or returns
// ErrMeasurementNotFound.
func (s *MeasurementSet) Remove(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.byID[id]; !ok {
		return fmt.Errorf("%w: %q", ErrMeasurementNotFound, id)
	}
	delete(s.byID, id)

	return nil
}

// Has reports whether id is present.
func (s *MeasurementSet) Has(id string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, ok := s.byID[id]

	return ok
}

// Len returns the number of measurements.
func (s *MeasurementSet) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.byID)
}

// Measurements returns a snapshot sorted by ID.
//
// Complexity: O(n log n).
func (s *MeasurementSet) Measurements() []Measurement {
	s.mu.RLock()
	out := make([]Measurement, 0, len(s.byID))
	for _, m := range s.byID {
		out = append(out, m)
	}
	s.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })

	return out
}

// IDs returns the measurement IDs in ascending order.
func (s *MeasurementSet) IDs() []string {
	ms := s.Measurements()
	ids := make([]string, len(ms))
	for i, m := range ms {
		ids[i] = m.ID
	}

	return ids
}

// Clone returns an independent copy of the set. Distributions are values or
// caller-owned and are shared, not deep-copied.
func (s *MeasurementSet) Clone() *MeasurementSet {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c := &MeasurementSet{byID: make(map[string]Measurement, len(s.byID))}
	for id, m := range s.byID {
		c.byID[id] = m
	}

	return c
}
