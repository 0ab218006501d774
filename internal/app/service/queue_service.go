package service

import "sync"

const (
	TeamSize  = 5
	MatchSize = 2 * TeamSize
)

// QueueService tient une file FIFO par slot (une "Préparation" = un slot).
// Sémantique d'ensemble: un joueur apparaît au plus une fois par file,
// l'ordre d'arrivée est conservé pour l'équité du pop.
type QueueService struct {
	mu    sync.Mutex
	slots map[int][]string
}

func NewQueueService(slotCount int) *QueueService {
	s := &QueueService{slots: make(map[int][]string, slotCount)}
	for i := 1; i <= slotCount; i++ {
		s.slots[i] = nil
	}
	return s
}

// Join ajoute le joueur en fin de file. false = déjà présent (no-op).
func (s *QueueService) Join(slot int, userID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	q, ok := s.slots[slot]
	if !ok {
		return false
	}
	for _, id := range q {
		if id == userID {
			return false
		}
	}
	s.slots[slot] = append(q, userID)
	return true
}

// Leave retire le joueur. false = absent.
func (s *QueueService) Leave(slot int, userID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	q, ok := s.slots[slot]
	if !ok {
		return false
	}
	for i, id := range q {
		if id == userID {
			s.slots[slot] = append(q[:i:i], q[i+1:]...)
			return true
		}
	}
	return false
}

func (s *QueueService) Ready(slot int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.slots[slot]) >= MatchSize
}

// Need renvoie combien de joueurs manquent pour lancer.
func (s *QueueService) Need(slot int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	if n := MatchSize - len(s.slots[slot]); n > 0 {
		return n
	}
	return 0
}

// PopTen extrait les dix premiers arrivés; le reste garde sa place.
func (s *QueueService) PopTen(slot int) []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	q := s.slots[slot]
	n := MatchSize
	if len(q) < n {
		n = len(q)
	}
	popped := make([]string, n)
	copy(popped, q[:n])
	s.slots[slot] = q[n:]
	return popped
}

// Snapshot copie la file pour le rendu du panneau.
func (s *QueueService) Snapshot(slot int) []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	q := s.slots[slot]
	out := make([]string, len(q))
	copy(out, q)
	return out
}

// Clear vide la file (fin de partie).
func (s *QueueService) Clear(slot int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.slots[slot]; ok {
		s.slots[slot] = nil
	}
}
