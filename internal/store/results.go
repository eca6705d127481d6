package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/AmalShalabi/psycho-arabic/internal/catalog"
)

// SchemaVersion is stamped into every persisted record. Records carrying
// a different version load as absent rather than failing.
const SchemaVersion = 1

// Kind distinguishes the result slot a record is saved under. Exactly
// one live record is retained per kind; saving overwrites.
type Kind string

const (
	KindExam               Kind = "exam"
	KindPractice           Kind = "practice"
	KindVocabulary         Kind = "vocabulary"
	KindSentenceCompletion Kind = "sentence-completion"
	KindGroup              Kind = "group"
)

// Kinds lists every result slot, in display order.
var Kinds = []Kind{KindExam, KindPractice, KindVocabulary, KindSentenceCompletion, KindGroup}

// StorageKey returns the stable key a kind's record is stored under.
func (k Kind) StorageKey() string {
	switch k {
	case KindExam:
		return "examResults"
	case KindPractice:
		return "practiceResults"
	case KindVocabulary:
		return "vocabularyResults"
	case KindSentenceCompletion:
		return "sentenceCompletionResults"
	case KindGroup:
		return "groupResults"
	}
	return string(k)
}

// Result is the persisted snapshot of a completed session. Questions and
// answers are copied in full so the review screen can reconstruct
// per-question correctness after reload without re-running session logic.
type Result struct {
	SchemaVersion     int                `json:"schemaVersion"`
	Kind              Kind               `json:"kind"`
	TotalQuestions    int                `json:"totalQuestions"`
	AnsweredQuestions int                `json:"answeredQuestions"`
	CorrectAnswers    int                `json:"correctAnswers"`
	TimeSpentSeconds  int                `json:"timeSpent"`
	Answers           map[int]int        `json:"answers"`
	Questions         []catalog.Question `json:"questions"`
	CompletedAt       time.Time          `json:"completedAt"`
}

// ResultStore is the single-slot-per-kind persistence gateway. Load of
// an absent kind returns (nil, nil); callers redirect to a safe default
// view rather than treating it as an error.
type ResultStore interface {
	Save(ctx context.Context, kind Kind, rec *Result) error
	Load(ctx context.Context, kind Kind) (*Result, error)
	Clear(ctx context.Context, kinds ...Kind) error
}

// sqlResultStore implements ResultStore over the results table.
type sqlResultStore struct {
	db *sql.DB
}

func (r *sqlResultStore) Save(ctx context.Context, kind Kind, rec *Result) error {
	if rec == nil {
		return errors.New("nil result record")
	}
	rec.Kind = kind
	rec.SchemaVersion = SchemaVersion

	payload, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("marshal result: %w", err)
	}

	_, err = r.db.ExecContext(ctx,
		`INSERT INTO results (key, payload, saved_at) VALUES (?, ?, ?)
		 ON CONFLICT(key) DO UPDATE SET payload = excluded.payload, saved_at = excluded.saved_at`,
		kind.StorageKey(), string(payload), time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("save result %s: %w", kind, err)
	}
	return nil
}

func (r *sqlResultStore) Load(ctx context.Context, kind Kind) (*Result, error) {
	var payload string
	err := r.db.QueryRowContext(ctx,
		`SELECT payload FROM results WHERE key = ?`, kind.StorageKey(),
	).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load result %s: %w", kind, err)
	}
	return decodeResult(kind, []byte(payload))
}

func (r *sqlResultStore) Clear(ctx context.Context, kinds ...Kind) error {
	if len(kinds) == 0 {
		kinds = Kinds
	}
	for _, k := range kinds {
		if _, err := r.db.ExecContext(ctx, `DELETE FROM results WHERE key = ?`, k.StorageKey()); err != nil {
			return fmt.Errorf("clear result %s: %w", k, err)
		}
	}
	return nil
}

// decodeResult unmarshals a stored payload. Records written under a
// different schema version are treated as absent.
func decodeResult(kind Kind, payload []byte) (*Result, error) {
	var rec Result
	if err := json.Unmarshal(payload, &rec); err != nil {
		return nil, fmt.Errorf("unmarshal result %s: %w", kind, err)
	}
	if rec.SchemaVersion != SchemaVersion {
		return nil, nil
	}
	return &rec, nil
}

// MemoryStore is an in-memory ResultStore used by tests and by screens
// that need a gateway without a database (group break records).
type MemoryStore struct {
	mu      sync.Mutex
	records map[Kind][]byte
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{records: make(map[Kind][]byte)}
}

func (m *MemoryStore) Save(_ context.Context, kind Kind, rec *Result) error {
	if rec == nil {
		return errors.New("nil result record")
	}
	rec.Kind = kind
	rec.SchemaVersion = SchemaVersion
	payload, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("marshal result: %w", err)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.records[kind] = payload
	return nil
}

func (m *MemoryStore) Load(_ context.Context, kind Kind) (*Result, error) {
	m.mu.Lock()
	payload, ok := m.records[kind]
	m.mu.Unlock()
	if !ok {
		return nil, nil
	}
	return decodeResult(kind, payload)
}

func (m *MemoryStore) Clear(_ context.Context, kinds ...Kind) error {
	if len(kinds) == 0 {
		kinds = Kinds
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, k := range kinds {
		delete(m.records, k)
	}
	return nil
}
