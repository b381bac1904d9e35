package memcache

import (
	"crypto/subtle"
	"sync"
	"time"
)

// ResetCodeStore keeps one password-reset code per email.
type ResetCodeStore interface {
	Set(email string, code string, ttl time.Duration)

	// Consume reports whether code matches the live code for email.
	// A match removes the entry, and so does exhausting the attempts.
	Consume(email string, code string) bool

	Peek(email string) (string, bool)
}

const maxAttempts = 5

type entry struct {
	code      string
	expiresAt time.Time
	attempts  int
}

type ResetCodes struct {
	mu   sync.Mutex
	data map[string]entry
	now  func() time.Time
}

func NewResetCodes() *ResetCodes {
	return &ResetCodes{
		data: make(map[string]entry),
		now:  time.Now,
	}
}

func (s *ResetCodes) Set(email string, code string, ttl time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[email] = entry{
		code:      code,
		expiresAt: s.now().Add(ttl),
	}
}

func (s *ResetCodes) Consume(email string, code string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.data[email]
	if !ok {
		return false
	}
	if s.now().After(e.expiresAt) {
		delete(s.data, email)
		return false
	}
	if subtle.ConstantTimeCompare([]byte(e.code), []byte(code)) != 1 {
		e.attempts++
		if e.attempts >= maxAttempts {
			delete(s.data, email)
		} else {
			s.data[email] = e
		}
		return false
	}
	delete(s.data, email)
	return true
}

func (s *ResetCodes) Peek(email string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.data[email]
	if !ok || s.now().After(e.expiresAt) {
		return "", false
	}
	return e.code, true
}

// Purge drops expired entries.
func (s *ResetCodes) Purge() {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now()
	for k, e := range s.data {
		if now.After(e.expiresAt) {
			delete(s.data, k)
		}
	}
}
