package store

import "sync"

// MessagePointer repère l'unique message public "commence ta vérification"
// d'un membre, pour pouvoir le supprimer après succès/échec ou avant d'en
// reposter un.
type MessagePointer struct {
	ChannelID string
	MessageID string
}

type VerifyMsgStore struct {
	mu sync.Mutex
	m  map[string]MessagePointer
}

func NewVerifyMsgStore() *VerifyMsgStore {
	return &VerifyMsgStore{m: map[string]MessagePointer{}}
}

func (s *VerifyMsgStore) Put(guildID, userID string, p MessagePointer) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.m[key(guildID, userID)] = p
}

// Take retire et renvoie le pointeur s'il existe.
func (s *VerifyMsgStore) Take(guildID, userID string) (MessagePointer, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.m[key(guildID, userID)]
	if ok {
		delete(s.m, key(guildID, userID))
	}
	return p, ok
}
