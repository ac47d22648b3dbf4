package resultchecker

import (
	"encoding/json"
	"os"
	"time"
)

// Freshness bounds how long a persisted report survives a reload.
const Freshness = 24 * time.Hour

// ReportStore persists the last successful report to a JSON file so the
// results step survives a page reload.
type ReportStore struct {
	path string
	now  func() time.Time
}

type storedReport struct {
	Report  *Report   `json:"report"`
	SavedAt time.Time `json:"savedAt"`
}

// NewReportStore creates a store backed by the given file path.
func NewReportStore(path string) *ReportStore {
	return &ReportStore{path: path, now: time.Now}
}

// Save writes the report with the current timestamp.
func (s *ReportStore) Save(report *Report) error {
	data, err := json.Marshal(storedReport{Report: report, SavedAt: s.now()})
	if err != nil {
		return err
	}
	return os.WriteFile(s.path, data, 0o644)
}

// Load returns the persisted report when it is younger than the freshness
// window. Stale or unreadable entries are discarded.
func (s *ReportStore) Load() (*Report, bool) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, false
	}

	var stored storedReport
	if err := json.Unmarshal(data, &stored); err != nil || stored.Report == nil {
		_ = s.Clear()
		return nil, false
	}
	if s.now().Sub(stored.SavedAt) > Freshness {
		_ = s.Clear()
		return nil, false
	}
	return stored.Report, true
}

// Clear removes the persisted report.
func (s *ReportStore) Clear() error {
	err := os.Remove(s.path)
	if os.IsNotExist(err) {
		return nil
	}
	return err
}
