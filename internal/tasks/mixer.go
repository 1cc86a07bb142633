package tasks

import (
	"fmt"
	"sync"

	"github.com/KaparthyReddy/ai-design-studio/internal/models"
	"github.com/KaparthyReddy/ai-design-studio/internal/shared"
)

// Mixer entry count bounds. The cap of four is a hard limit, not
// configurable.
const (
	MinMixerEntries = 1
	MaxMixerEntries = 4
)

// Mixer collects 1-4 weighted styles for a blended transfer.
//
// Raw weights are clamped to [0, 1] on assignment and can temporarily sum
// to anything; normalization happens only in [Mixer.Mix], which emits
// normalized copies without touching the stored entries. Out-of-bounds add
// and remove operations are silent no-ops.
type Mixer struct {
	mu      sync.Mutex
	entries []models.MixerEntry
}

// NewMixer creates a mixer holding the minimum single entry at full weight.
func NewMixer() *Mixer {
	m := &Mixer{}
	m.entries = append(m.entries, models.MixerEntry{
		ID:     shared.GenerateID(),
		Label:  "Style 1",
		Weight: 1.0,
	})
	return m
}

// AddEntry appends a new entry with the given label and style path. Returns
// the created entry, or nil once the cap of four is reached.
func (m *Mixer) AddEntry(label, stylePath string) *models.MixerEntry {
	m.mu.Lock()
	defer m.mu.Unlock()

	if len(m.entries) >= MaxMixerEntries {
		return nil
	}

	if label == "" {
		label = fmt.Sprintf("Style %d", len(m.entries)+1)
	}

	entry := models.MixerEntry{
		ID:        shared.GenerateID(),
		Label:     label,
		StylePath: stylePath,
		Weight:    1.0,
	}
	m.entries = append(m.entries, entry)

	e := entry
	return &e
}

// RemoveEntry deletes the entry with the given id. Removing the last
// remaining entry is a no-op.
func (m *Mixer) RemoveEntry(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if len(m.entries) <= MinMixerEntries {
		return
	}

	for i, entry := range m.entries {
		if entry.ID == id {
			m.entries = append(m.entries[:i], m.entries[i+1:]...)
			return
		}
	}
}

// SetWeight assigns a raw weight to an entry, clamped to [0, 1]. No
// normalization happens here.
func (m *Mixer) SetWeight(id string, weight float64) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if weight < 0 {
		weight = 0
	}
	if weight > 1 {
		weight = 1
	}

	for i := range m.entries {
		if m.entries[i].ID == id {
			m.entries[i].Weight = weight
			return
		}
	}
}

// SetStyle assigns the style image path for an entry.
func (m *Mixer) SetStyle(id, stylePath string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i := range m.entries {
		if m.entries[i].ID == id {
			m.entries[i].StylePath = stylePath
			return
		}
	}
}

// Entries returns a copy of the raw entries in insertion order.
func (m *Mixer) Entries() []models.MixerEntry {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]models.MixerEntry, len(m.entries))
	copy(out, m.entries)
	return out
}

// Len returns the current entry count.
func (m *Mixer) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.entries)
}

// Mix computes the normalized weight set: each weight divided by the total
// so the result sums to 1. When every raw weight is zero the total would
// divide to zero, so the mix falls back to an equal split across entries.
// The stored raw weights are never modified.
func (m *Mixer) Mix() []models.MixerEntry {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]models.MixerEntry, len(m.entries))
	copy(out, m.entries)

	var sum float64
	for _, entry := range out {
		sum += entry.Weight
	}

	if sum <= 0 {
		equal := 1.0 / float64(len(out))
		for i := range out {
			out[i].Weight = equal
		}
		return out
	}

	for i := range out {
		out[i].Weight /= sum
	}
	return out
}
