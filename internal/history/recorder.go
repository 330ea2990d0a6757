// Package history keeps an in-memory record of completed hands so
// collaborators can query the last-hand result and action timelines.
package history

import (
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/tablefelt/holdem-engine/internal/domain"
)

var (
	ErrHandNotFound      = errors.New("hand not found")
	ErrHandAlreadyExists = errors.New("hand already exists")
)

// HandRecord is the full result of one hand: who won what, and the hands
// revealed at showdown.
type HandRecord struct {
	HandID        string
	HandNo        uint64
	StartedAt     time.Time
	EndedAt       *time.Time
	FinalPhase    domain.GamePhase
	Board         []domain.Card
	Awards        []domain.PotAward
	RevealedHands map[int][]domain.Card
	BestHandLabel map[int]string
	FinalStacks   map[int]uint32
	Aborted       bool
	AbortReason   string
}

// ActionRecord is one betting decision inside a hand.
type ActionRecord struct {
	HandID   string
	Street   domain.Street
	PlayerID int
	Kind     domain.ActionKind
	Amount   uint32
	At       time.Time
}

type Recorder struct {
	mu      sync.RWMutex
	hands   map[string]HandRecord
	actions map[string][]ActionRecord
	order   []string
}

func NewRecorder() *Recorder {
	return &Recorder{
		hands:   make(map[string]HandRecord),
		actions: make(map[string][]ActionRecord),
	}
}

func (r *Recorder) BeginHand(record HandRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.hands[record.HandID]; exists {
		return ErrHandAlreadyExists
	}
	r.hands[record.HandID] = cloneHandRecord(record)
	r.order = append(r.order, record.HandID)
	return nil
}

func (r *Recorder) RecordAction(record ActionRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.hands[record.HandID]; !exists {
		return ErrHandNotFound
	}
	r.actions[record.HandID] = append(r.actions[record.HandID], record)
	return nil
}

func (r *Recorder) CompleteHand(handID string, final HandRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.hands[handID]; !exists {
		return ErrHandNotFound
	}
	final.HandID = handID
	r.hands[handID] = cloneHandRecord(final)
	return nil
}

// LastHand returns the most recently started hand's record.
func (r *Recorder) LastHand() (HandRecord, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if len(r.order) == 0 {
		return HandRecord{}, false
	}
	return cloneHandRecord(r.hands[r.order[len(r.order)-1]]), true
}

func (r *Recorder) ListHands() []HandRecord {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]HandRecord, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, cloneHandRecord(r.hands[id]))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].HandNo < out[j].HandNo })
	return out
}

func (r *Recorder) ListActions(handID string) ([]ActionRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if _, exists := r.hands[handID]; !exists {
		return nil, ErrHandNotFound
	}
	return append([]ActionRecord(nil), r.actions[handID]...), nil
}

func cloneHandRecord(record HandRecord) HandRecord {
	cloned := record
	cloned.Board = append([]domain.Card(nil), record.Board...)
	cloned.Awards = make([]domain.PotAward, 0, len(record.Awards))
	for _, award := range record.Awards {
		cloned.Awards = append(cloned.Awards, domain.PotAward{
			Amount:  award.Amount,
			Players: append([]int(nil), award.Players...),
			Reason:  award.Reason,
		})
	}
	if record.RevealedHands != nil {
		cloned.RevealedHands = make(map[int][]domain.Card, len(record.RevealedHands))
		for id, cards := range record.RevealedHands {
			cloned.RevealedHands[id] = append([]domain.Card(nil), cards...)
		}
	}
	if record.BestHandLabel != nil {
		cloned.BestHandLabel = make(map[int]string, len(record.BestHandLabel))
		for id, label := range record.BestHandLabel {
			cloned.BestHandLabel[id] = label
		}
	}
	if record.FinalStacks != nil {
		cloned.FinalStacks = make(map[int]uint32, len(record.FinalStacks))
		for id, stack := range record.FinalStacks {
			cloned.FinalStacks[id] = stack
		}
	}
	if record.EndedAt != nil {
		ended := *record.EndedAt
		cloned.EndedAt = &ended
	}
	return cloned
}
