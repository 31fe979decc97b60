package wizard

import (
	"database/sql"
	"encoding/json"
	"sync"
	"time"
)

// Draft is the persisted mid-flow state: the field bag plus the current
// step pointer. It survives reloads and is cleared on successful submission
// or explicit reset.
type Draft struct {
	Step int  `json:"step"`
	Form Form `json:"form"`
}

// DraftStore is the injected key-value persistence behind a wizard. Load
// returns (nil, nil) when no draft exists for the key.
type DraftStore interface {
	Load(key string) (*Draft, error)
	Save(key string, d *Draft) error
	Clear(key string) error
}

// MemoryDraftStore is the in-memory store used by tests and dev mode.
type MemoryDraftStore struct {
	mu     sync.Mutex
	drafts map[string][]byte
}

func NewMemoryDraftStore() *MemoryDraftStore {
	return &MemoryDraftStore{drafts: make(map[string][]byte)}
}

func (s *MemoryDraftStore) Load(key string) (*Draft, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	raw, ok := s.drafts[key]
	if !ok {
		return nil, nil
	}
	var d Draft
	if err := json.Unmarshal(raw, &d); err != nil {
		return nil, err
	}
	return &d, nil
}

func (s *MemoryDraftStore) Save(key string, d *Draft) error {
	raw, err := json.Marshal(d)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.drafts[key] = raw
	s.mu.Unlock()
	return nil
}

func (s *MemoryDraftStore) Clear(key string) error {
	s.mu.Lock()
	delete(s.drafts, key)
	s.mu.Unlock()
	return nil
}

// SQLDraftStore keeps drafts in the Form_Draft table so a flow survives
// page reloads from any device.
type SQLDraftStore struct {
	DB *sql.DB
}

func NewSQLDraftStore(db *sql.DB) *SQLDraftStore {
	return &SQLDraftStore{DB: db}
}

func (s *SQLDraftStore) Load(key string) (*Draft, error) {
	var payload []byte
	err := s.DB.QueryRow("SELECT Payload FROM Form_Draft WHERE Draft_Key = ?", key).Scan(&payload)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var d Draft
	if err := json.Unmarshal(payload, &d); err != nil {
		return nil, err
	}
	return &d, nil
}

func (s *SQLDraftStore) Save(key string, d *Draft) error {
	payload, err := json.Marshal(d)
	if err != nil {
		return err
	}
	query := `
		INSERT INTO Form_Draft (Draft_Key, Payload, Updated_At)
		VALUES (?, ?, ?)
		ON DUPLICATE KEY UPDATE Payload = VALUES(Payload), Updated_At = VALUES(Updated_At)
	`
	_, err = s.DB.Exec(query, key, payload, time.Now())
	return err
}

func (s *SQLDraftStore) Clear(key string) error {
	_, err := s.DB.Exec("DELETE FROM Form_Draft WHERE Draft_Key = ?", key)
	return err
}

// ClearStale removes drafts untouched for longer than maxAge; run from the
// cron worker.
func (s *SQLDraftStore) ClearStale(maxAge time.Duration) (int64, error) {
	res, err := s.DB.Exec("DELETE FROM Form_Draft WHERE Updated_At < ?", time.Now().Add(-maxAge))
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
