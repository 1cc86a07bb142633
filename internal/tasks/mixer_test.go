package tasks

import (
	"math"
	"testing"
)

func TestMixer(t *testing.T) {
	t.Run("starts with one full-weight entry", func(t *testing.T) {
		m := NewMixer()

		entries := m.Entries()
		if len(entries) != 1 {
			t.Fatalf("expected 1 entry, got %d", len(entries))
		}
		if entries[0].Weight != 1.0 {
			t.Errorf("expected weight 1.0, got %.2f", entries[0].Weight)
		}
		if entries[0].Label != "Style 1" {
			t.Errorf("expected default label, got %q", entries[0].Label)
		}
	})

	t.Run("add", func(t *testing.T) {
		t.Run("caps at four entries", func(t *testing.T) {
			m := NewMixer()
			for i := 0; i < 3; i++ {
				if m.AddEntry("", "") == nil {
					t.Fatalf("add %d unexpectedly refused", i+2)
				}
			}

			if m.AddEntry("fifth", "") != nil {
				t.Error("expected add beyond cap to return nil")
			}
			if m.Len() != MaxMixerEntries {
				t.Errorf("expected %d entries, got %d", MaxMixerEntries, m.Len())
			}
		})

		t.Run("generates sequential labels", func(t *testing.T) {
			m := NewMixer()
			entry := m.AddEntry("", "/uploads/x.png")
			if entry == nil {
				t.Fatal("expected entry")
			}
			if entry.Label != "Style 2" {
				t.Errorf("expected generated label, got %q", entry.Label)
			}
			if entry.StylePath != "/uploads/x.png" {
				t.Errorf("expected style path set, got %q", entry.StylePath)
			}
		})
	})

	t.Run("remove", func(t *testing.T) {
		t.Run("keeps at least one entry", func(t *testing.T) {
			m := NewMixer()
			id := m.Entries()[0].ID

			m.RemoveEntry(id)

			if m.Len() != 1 {
				t.Errorf("expected removal of last entry to be a no-op, got %d entries", m.Len())
			}
		})

		t.Run("removes by id", func(t *testing.T) {
			m := NewMixer()
			added := m.AddEntry("second", "")

			m.RemoveEntry(added.ID)

			if m.Len() != 1 {
				t.Fatalf("expected 1 entry, got %d", m.Len())
			}
			if m.Entries()[0].Label != "Style 1" {
				t.Error("removed the wrong entry")
			}
		})

		t.Run("unknown id is a no-op", func(t *testing.T) {
			m := NewMixer()
			m.AddEntry("second", "")

			m.RemoveEntry("nope")

			if m.Len() != 2 {
				t.Errorf("expected 2 entries, got %d", m.Len())
			}
		})
	})

	t.Run("set weight clamps to the unit interval", func(t *testing.T) {
		m := NewMixer()
		id := m.Entries()[0].ID

		cases := []struct {
			name string
			in   float64
			want float64
		}{
			{"below zero", -0.5, 0},
			{"above one", 1.5, 1},
			{"in range", 0.3, 0.3},
		}

		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				m.SetWeight(id, tc.in)
				if got := m.Entries()[0].Weight; got != tc.want {
					t.Errorf("expected %.2f, got %.2f", tc.want, got)
				}
			})
		}
	})

	t.Run("mix", func(t *testing.T) {
		t.Run("normalizes to sum 1", func(t *testing.T) {
			m := NewMixer()
			a := m.Entries()[0].ID
			b := m.AddEntry("", "").ID
			c := m.AddEntry("", "").ID

			m.SetWeight(a, 0.9)
			m.SetWeight(b, 0.6)
			m.SetWeight(c, 0.3)

			mixed := m.Mix()

			var sum float64
			for _, entry := range mixed {
				sum += entry.Weight
			}
			if math.Abs(sum-1.0) > 1e-6 {
				t.Errorf("expected weights to sum to 1, got %f", sum)
			}
			if math.Abs(mixed[0].Weight-0.5) > 1e-6 {
				t.Errorf("expected 0.9/1.8 = 0.5, got %f", mixed[0].Weight)
			}
		})

		t.Run("does not mutate stored weights", func(t *testing.T) {
			m := NewMixer()
			b := m.AddEntry("", "").ID
			m.SetWeight(b, 0.5)

			m.Mix()

			entries := m.Entries()
			if entries[0].Weight != 1.0 || entries[1].Weight != 0.5 {
				t.Errorf("stored weights changed: %.2f, %.2f", entries[0].Weight, entries[1].Weight)
			}
		})

		t.Run("all-zero weights fall back to an equal split", func(t *testing.T) {
			m := NewMixer()
			a := m.Entries()[0].ID
			b := m.AddEntry("", "").ID

			m.SetWeight(a, 0)
			m.SetWeight(b, 0)

			mixed := m.Mix()

			for i, entry := range mixed {
				if math.Abs(entry.Weight-0.5) > 1e-6 {
					t.Errorf("entry %d: expected 0.5, got %f", i, entry.Weight)
				}
			}
		})
	})
}
