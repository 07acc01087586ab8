package request

import (
	"errors"
	"strings"
	"testing"

	"github.com/stellarpress/biolit/internal/domain"
	"github.com/stellarpress/biolit/internal/domain/search/filter"
	"github.com/stellarpress/biolit/internal/domain/search/mode"
)

func TestNew_Defaults(t *testing.T) {
	r, err := New("bone loss", "", filter.Set{}, 0, 0, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r.Mode() != mode.Hybrid {
		t.Errorf("expected default mode hybrid, got %q", r.Mode())
	}
	if r.Limit() != DefaultLimit {
		t.Errorf("expected default limit %d, got %d", DefaultLimit, r.Limit())
	}
}

func TestNew_EmptyQueryIsValid(t *testing.T) {
	r, err := New("", mode.Lexical, filter.Set{}, 10, 0, false)
	if err != nil {
		t.Fatalf("empty query should be a valid browse request: %v", err)
	}
	if r.Query() != "" {
		t.Errorf("unexpected query %q", r.Query())
	}
}

func TestNew_QueryTooLong(t *testing.T) {
	_, err := New(strings.Repeat("x", MaxQueryLength+1), mode.Lexical, filter.Set{}, 10, 0, false)
	if !errors.Is(err, domain.ErrInvalidQuery) {
		t.Fatalf("expected ErrInvalidQuery, got %v", err)
	}
}

func TestNew_InvalidMode(t *testing.T) {
	_, err := New("q", "fuzzy", filter.Set{}, 10, 0, false)
	if !errors.Is(err, domain.ErrInvalidQuery) {
		t.Fatalf("expected ErrInvalidQuery, got %v", err)
	}
}

func TestNew_NegativeLimit(t *testing.T) {
	_, err := New("q", mode.Lexical, filter.Set{}, -1, 0, false)
	if !errors.Is(err, domain.ErrInvalidQuery) {
		t.Fatalf("expected ErrInvalidQuery for negative limit, got %v", err)
	}
}

func TestNew_LimitClamped(t *testing.T) {
	r, err := New("q", mode.Lexical, filter.Set{}, MaxLimit+100, 0, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r.Limit() != MaxLimit {
		t.Errorf("expected limit clamped to %d, got %d", MaxLimit, r.Limit())
	}
}

func TestNew_MinScoreRange(t *testing.T) {
	if _, err := New("q", mode.Lexical, filter.Set{}, 10, -0.1, false); !errors.Is(err, domain.ErrInvalidQuery) {
		t.Errorf("expected ErrInvalidQuery for min_score < 0, got %v", err)
	}
	if _, err := New("q", mode.Lexical, filter.Set{}, 10, 1.1, false); !errors.Is(err, domain.ErrInvalidQuery) {
		t.Errorf("expected ErrInvalidQuery for min_score > 1, got %v", err)
	}
	if _, err := New("q", mode.Lexical, filter.Set{}, 10, 0.7, false); err != nil {
		t.Errorf("min_score 0.7 should be valid: %v", err)
	}
}

func TestNewSimilar_Validation(t *testing.T) {
	if _, err := NewSimilar(-1, filter.Set{}, 10, 0); !errors.Is(err, domain.ErrInvalidQuery) {
		t.Errorf("expected ErrInvalidQuery for negative id, got %v", err)
	}

	r, err := NewSimilar(42, filter.Set{}, 0, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r.RecordID() != 42 {
		t.Errorf("expected record id 42, got %d", r.RecordID())
	}
	if r.Limit() != DefaultLimit {
		t.Errorf("expected default limit, got %d", r.Limit())
	}

	r, err = NewSimilar(42, filter.Set{}, MaxLimit*2, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r.Limit() != MaxLimit {
		t.Errorf("expected limit clamped to %d, got %d", MaxLimit, r.Limit())
	}
}
