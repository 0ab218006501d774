package service

import (
	"sync"

	"github.com/kaermorhen/wolfbot/internal/domain"
)

const (
	VoteAcceptThreshold = 5
	VoteRejectThreshold = 5
)

type VoteOutcome int

const (
	VoteRecorded VoteOutcome = iota
	VoteLockedNow
	VoteRerolled // 5 non: nouvelle map, scrutin remis à zéro
	VoteAlreadyLocked
	VoteDuplicate
)

// BallotSnapshot est l'état rendu dans l'embed de la roulette.
type BallotSnapshot struct {
	Map    string
	Yes    int
	No     int
	Locked bool
}

type ballot struct {
	current string
	voters  map[string]bool // voter -> oui/non
	yes     int
	no      int
	locked  bool
}

// MapVoteService tient un scrutin par slot. Seuils fixes 5/5 quel que soit
// le nombre de joueurs confirmés dans le slot.
type MapVoteService struct {
	mu    sync.Mutex
	slots map[int]*ballot
	roll  func(exclude string) string
}

func NewMapVoteService() *MapVoteService {
	return &MapVoteService{slots: map[int]*ballot{}, roll: domain.RollMap}
}

// Ensure initialise le scrutin du slot (première pose du panneau).
func (s *MapVoteService) Ensure(slot int) BallotSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return snapshot(s.ensureLocked(slot))
}

// Snapshot renvoie l'état courant sans le créer.
func (s *MapVoteService) Snapshot(slot int) (BallotSnapshot, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.slots[slot]
	if !ok {
		return BallotSnapshot{}, false
	}
	return snapshot(b), true
}

// Vote enregistre oui/non. La bascule lock (5 oui) et le reroll auto (5 non)
// se font dans la même section critique que le comptage.
func (s *MapVoteService) Vote(slot int, voter string, yes bool) (VoteOutcome, BallotSnapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	b := s.ensureLocked(slot)

	if b.locked {
		return VoteAlreadyLocked, snapshot(b)
	}
	if _, dup := b.voters[voter]; dup {
		return VoteDuplicate, snapshot(b)
	}
	b.voters[voter] = yes

	if yes {
		b.yes++
		if b.yes >= VoteAcceptThreshold {
			b.locked = true
			return VoteLockedNow, snapshot(b)
		}
		return VoteRecorded, snapshot(b)
	}

	b.no++
	if b.no >= VoteRejectThreshold {
		s.rerollLocked(b)
		return VoteRerolled, snapshot(b)
	}
	return VoteRecorded, snapshot(b)
}

// Reroll force une nouvelle map (bouton Orga). L'autorisation est vérifiée
// par l'adapter Discord, qui seul voit les rôles du membre.
func (s *MapVoteService) Reroll(slot int) BallotSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	b := s.ensureLocked(slot)
	s.rerollLocked(b)
	return snapshot(b)
}

// Reset remet les compteurs à zéro en gardant la map courante (fin de partie).
func (s *MapVoteService) Reset(slot int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.slots[slot]
	if !ok {
		return
	}
	b.voters = map[string]bool{}
	b.yes, b.no = 0, 0
	b.locked = false
}

func (s *MapVoteService) ensureLocked(slot int) *ballot {
	b, ok := s.slots[slot]
	if !ok {
		b = &ballot{current: s.roll(""), voters: map[string]bool{}}
		s.slots[slot] = b
	}
	return b
}

func (s *MapVoteService) rerollLocked(b *ballot) {
	b.current = s.roll(b.current)
	b.voters = map[string]bool{}
	b.yes, b.no = 0, 0
	b.locked = false
}

func snapshot(b *ballot) BallotSnapshot {
	return BallotSnapshot{Map: b.current, Yes: b.yes, No: b.no, Locked: b.locked}
}
