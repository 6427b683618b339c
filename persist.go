package orchard

import (
	"encoding/json"
	"fmt"
	"math"
)

// Record is the persisted form of a fruit. Impact and Effort are read-side
// projections for list consumers; restoring ignores them.
type Record struct {
	ID       FruitID  `json:"id"`
	Angle    float64  `json:"angle"`
	Text     string   `json:"text"`
	X        float64  `json:"x"`
	Y        float64  `json:"y"`
	Impact   float64  `json:"impact"`
	Effort   float64  `json:"effort"`
	Location Location `json:"location"`
	Ripeness float64  `json:"ripeness"`
}

// KeyValueStore is the persistent storage collaborator. Load returns nil data
// and a nil error when the key has never been written.
type KeyValueStore interface {
	Load(key string) ([]byte, error)
	Save(key string, data []byte) error
}

// Serialize maps fruits to records in the given order. Non-finite positions
// are written as zero so the payload stays valid JSON.
func Serialize(store *Store, fruits []*Fruit) []Record {
	records := make([]Record, 0, len(fruits))
	for _, f := range fruits {
		p := f.Position()
		if !p.Finite() {
			p = Vec2{}
		}
		angle := f.Angle()
		if math.IsNaN(angle) || math.IsInf(angle, 0) {
			angle = 0
		}
		records = append(records, Record{
			ID:       f.ID,
			Angle:    angle,
			Text:     f.Text(),
			X:        p.X,
			Y:        p.Y,
			Impact:   store.cfg.Impact.Map(p.X),
			Effort:   store.cfg.Effort.Map(p.Y),
			Location: f.Location,
			Ripeness: f.Ripeness,
		})
	}
	return records
}

// EncodeRecords renders records as the persisted JSON array.
func EncodeRecords(records []Record) ([]byte, error) {
	if records == nil {
		records = []Record{}
	}
	data, err := json.Marshal(records)
	if err != nil {
		return nil, fmt.Errorf("failed to encode records: %w", err)
	}
	return data, nil
}

// DecodeRecords parses a persisted JSON array.
func DecodeRecords(data []byte) ([]Record, error) {
	var records []Record
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("failed to decode records: %w", err)
	}
	return records, nil
}

// Records returns the current snapshot of every fruit.
func (s *Stage) Records() []Record {
	return Serialize(s.store, s.store.All())
}

// Persist writes the current snapshot under the configured key, replacing
// whatever was there. Without a store it does nothing.
func (s *Stage) Persist() error {
	if s.kv == nil {
		return nil
	}
	records := s.Records()
	data, err := EncodeRecords(records)
	if err != nil {
		return err
	}
	if err := s.kv.Save(s.cfg.StorageKey, data); err != nil {
		return fmt.Errorf("failed to save %q: %w", s.cfg.StorageKey, err)
	}
	s.emit(StageEvent{Type: StageSnapshot, Count: len(records)})
	return nil
}

// persistBestEffort snapshots and logs failures. Snapshotting must never
// interrupt the simulation.
func (s *Stage) persistBestEffort() {
	if err := s.Persist(); err != nil {
		warnf("persist: %v", err)
	}
}

// Restore reads the stored snapshot. Absent or malformed data yields an
// empty slice; read failures are logged and treated the same way.
func (s *Stage) Restore() []Record {
	if s.kv == nil {
		return []Record{}
	}
	data, err := s.kv.Load(s.cfg.StorageKey)
	if err != nil {
		warnf("restore: %v", err)
		return []Record{}
	}
	if len(data) == 0 {
		return []Record{}
	}
	records, err := DecodeRecords(data)
	if err != nil {
		warnf("restore: %v", err)
		return []Record{}
	}
	if records == nil {
		return []Record{}
	}
	return records
}

// restoreFruits recreates fruits from records. Records that were mid-removal
// or carry unusable coordinates are dropped.
func (s *Stage) restoreFruits(records []Record) int {
	n := 0
	for _, r := range records {
		if r.Location == LocationClearing {
			continue
		}
		p := Vec2{r.X, r.Y}
		if !p.Finite() {
			continue
		}
		s.CreateFruit(r.X, r.Y, FruitConfig{
			Text:        r.Text,
			Angle:       r.Angle,
			Location:    r.Location,
			Ripeness:    r.Ripeness,
			HasRipeness: true,
		})
		n++
	}
	return n
}
