package service

import (
	"errors"
	"sort"
	"sync"
	"time"
)

var (
	ErrRoomNotTracked = errors.New("salon non suivi")
	ErrRoomNotAllowed = errors.New("réservé au créateur / Orga PP / Admin")
)

// Occupancy lit l'occupation vocale courante (état gateway côté adapter).
type Occupancy interface {
	Occupants(voiceID string) int
}

// Janitor supprime la paire de salons d'une room expirée. Best-effort:
// l'implémentation absorbe les erreurs Discord.
type Janitor interface {
	DeleteRoom(voiceID, textID string)
}

type AccessVerdict int

const (
	AccessAllow AccessVerdict = iota
	AccessDenyBlacklist
	AccessDenyPrivate
)

type tempRoom struct {
	ownerID   string
	textID    string
	private   bool
	limit     int
	whitelist map[string]struct{}
	blacklist map[string]struct{}
}

// RoomInfo est une copie pour le rendu (panneau de contrôle, listes).
type RoomInfo struct {
	OwnerID   string
	VoiceID   string
	TextID    string
	Private   bool
	Limit     int
	Whitelist []string
	Blacklist []string
}

// deleteTimer porte le numéro de génération de son armement: un tir tardif
// d'un timer déjà remplacé est reconnu et ignoré.
type deleteTimer struct {
	timer *time.Timer
	gen   uint64
}

// TempRoomService suit les salons vocaux éphémères, clé = id du salon vocal.
// La suppression différée est un time.Timer par salon; ré-armer remplace et
// annule l'ancien sous le même verrou, donc jamais deux timers pour une room.
type TempRoomService struct {
	mu     sync.Mutex
	rooms  map[string]*tempRoom
	timers map[string]deleteTimer
	gen    uint64

	grace   time.Duration
	occ     Occupancy
	janitor Janitor
}

func NewTempRoomService(grace time.Duration, occ Occupancy, janitor Janitor) *TempRoomService {
	return &TempRoomService{
		rooms:   map[string]*tempRoom{},
		timers:  map[string]deleteTimer{},
		grace:   grace,
		occ:     occ,
		janitor: janitor,
	}
}

// Track enregistre une room fraîchement créée. Le owner est immuable.
func (s *TempRoomService) Track(ownerID, voiceID, textID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rooms[voiceID] = &tempRoom{
		ownerID:   ownerID,
		textID:    textID,
		whitelist: map[string]struct{}{},
		blacklist: map[string]struct{}{},
	}
}

func (s *TempRoomService) Tracked(voiceID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.rooms[voiceID]
	return ok
}

func (s *TempRoomService) Info(voiceID string) (RoomInfo, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.rooms[voiceID]
	if !ok {
		return RoomInfo{}, false
	}
	return infoLocked(voiceID, r), true
}

// Access décide du sort d'un membre qui vient d'entrer. Blacklist avant
// private: un blacklisté est éjecté même d'un salon public.
func (s *TempRoomService) Access(voiceID, userID string, isAdmin bool) AccessVerdict {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.rooms[voiceID]
	if !ok || isAdmin {
		return AccessAllow
	}
	if _, bl := r.blacklist[userID]; bl {
		return AccessDenyBlacklist
	}
	if r.private {
		if userID == r.ownerID {
			return AccessAllow
		}
		if _, wl := r.whitelist[userID]; !wl {
			return AccessDenyPrivate
		}
	}
	return AccessAllow
}

func (s *TempRoomService) SetPrivate(voiceID string, private bool, actorID string, isStaff bool) error {
	return s.mutate(voiceID, actorID, isStaff, func(r *tempRoom) { r.private = private })
}

func (s *TempRoomService) SetLimit(voiceID string, limit int, actorID string, isStaff bool) (int, error) {
	if limit < 0 {
		limit = 0
	}
	if limit > 99 {
		limit = 99
	}
	err := s.mutate(voiceID, actorID, isStaff, func(r *tempRoom) { r.limit = limit })
	return limit, err
}

func (s *TempRoomService) WhitelistAdd(voiceID, userID, actorID string, isStaff bool) error {
	return s.mutate(voiceID, actorID, isStaff, func(r *tempRoom) { r.whitelist[userID] = struct{}{} })
}

func (s *TempRoomService) WhitelistRemove(voiceID, userID, actorID string, isStaff bool) error {
	return s.mutate(voiceID, actorID, isStaff, func(r *tempRoom) { delete(r.whitelist, userID) })
}

func (s *TempRoomService) BlacklistAdd(voiceID, userID, actorID string, isStaff bool) error {
	return s.mutate(voiceID, actorID, isStaff, func(r *tempRoom) { r.blacklist[userID] = struct{}{} })
}

func (s *TempRoomService) BlacklistRemove(voiceID, userID, actorID string, isStaff bool) error {
	return s.mutate(voiceID, actorID, isStaff, func(r *tempRoom) { delete(r.blacklist, userID) })
}

// ScheduleDelete arme (ou ré-arme) la suppression différée d'une room vide.
func (s *TempRoomService) ScheduleDelete(voiceID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.rooms[voiceID]; !ok {
		return
	}
	if t, ok := s.timers[voiceID]; ok {
		t.timer.Stop()
	}
	s.gen++
	g := s.gen
	s.timers[voiceID] = deleteTimer{
		timer: time.AfterFunc(s.grace, func() { s.expire(voiceID, g) }),
		gen:   g,
	}
}

// CancelDelete annule le timer en cours (quelqu'un est revenu).
func (s *TempRoomService) CancelDelete(voiceID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if t, ok := s.timers[voiceID]; ok {
		t.timer.Stop()
		delete(s.timers, voiceID)
	}
}

// expire re-vérifie l'occupation au tir du timer: on ne supprime que si la
// room est restée vide pendant toute la grâce. Un tir dont la génération ne
// correspond plus au timer enregistré (annulé ou ré-armé entre-temps) ne
// touche à rien: sinon un tir tardif pourrait désarmer le timer vivant.
func (s *TempRoomService) expire(voiceID string, gen uint64) {
	s.mu.Lock()
	if t, ok := s.timers[voiceID]; !ok || t.gen != gen {
		s.mu.Unlock()
		return
	}
	s.mu.Unlock()

	occupied := s.occ.Occupants(voiceID) > 0

	s.mu.Lock()
	if t, ok := s.timers[voiceID]; !ok || t.gen != gen {
		s.mu.Unlock()
		return // ré-armé pendant la lecture d'occupation
	}
	delete(s.timers, voiceID)
	if occupied {
		s.mu.Unlock()
		return
	}
	r, ok := s.rooms[voiceID]
	if !ok {
		s.mu.Unlock()
		return
	}
	textID := r.textID
	delete(s.rooms, voiceID)
	s.mu.Unlock()

	s.janitor.DeleteRoom(voiceID, textID)
}

func (s *TempRoomService) mutate(voiceID, actorID string, isStaff bool, fn func(*tempRoom)) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.rooms[voiceID]
	if !ok {
		return ErrRoomNotTracked
	}
	if actorID != r.ownerID && !isStaff {
		return ErrRoomNotAllowed
	}
	fn(r)
	return nil
}

func infoLocked(voiceID string, r *tempRoom) RoomInfo {
	info := RoomInfo{
		OwnerID: r.ownerID,
		VoiceID: voiceID,
		TextID:  r.textID,
		Private: r.private,
		Limit:   r.limit,
	}
	for id := range r.whitelist {
		info.Whitelist = append(info.Whitelist, id)
	}
	for id := range r.blacklist {
		info.Blacklist = append(info.Blacklist, id)
	}
	sort.Strings(info.Whitelist)
	sort.Strings(info.Blacklist)
	return info
}
