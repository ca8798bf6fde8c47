package admin

import (
	"crypto/rand"
	"encoding/hex"
	"sync"
	"time"
)

const DefaultPendingTTL = 5 * time.Minute

type pendingDelete struct {
	productID string
	token     string
	expires   time.Time
}

// PendingDeletes remembers one delete mark per admin session. Marking again
// replaces the previous mark.
type PendingDeletes struct {
	mu   sync.Mutex
	ttl  time.Duration
	byID map[string]pendingDelete
	now  func() time.Time
}

func NewPendingDeletes(ttl time.Duration) *PendingDeletes {
	if ttl <= 0 {
		ttl = DefaultPendingTTL
	}
	return &PendingDeletes{ttl: ttl, byID: make(map[string]pendingDelete), now: time.Now}
}

func (p *PendingDeletes) Mark(owner, productID string) (string, time.Time) {
	tok := newToken()
	exp := p.now().Add(p.ttl)

	p.mu.Lock()
	defer p.mu.Unlock()
	p.sweep()
	p.byID[owner] = pendingDelete{productID: productID, token: tok, expires: exp}
	return tok, exp
}

// Take consumes the mark when it matches productID and token and has not
// expired. A failed Take leaves a valid mark in place.
func (p *PendingDeletes) Take(owner, productID, token string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	pd, ok := p.byID[owner]
	if !ok {
		return false
	}
	if !p.now().Before(pd.expires) {
		delete(p.byID, owner)
		return false
	}
	if pd.productID != productID || pd.token != token {
		return false
	}
	delete(p.byID, owner)
	return true
}

// Pending returns the product currently marked by owner.
func (p *PendingDeletes) Pending(owner string) (string, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	pd, ok := p.byID[owner]
	if !ok || !p.now().Before(pd.expires) {
		return "", false
	}
	return pd.productID, true
}

func (p *PendingDeletes) Cancel(owner string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	_, ok := p.byID[owner]
	delete(p.byID, owner)
	return ok
}

// sweep drops expired marks; callers hold mu.
func (p *PendingDeletes) sweep() {
	now := p.now()
	for k, pd := range p.byID {
		if !now.Before(pd.expires) {
			delete(p.byID, k)
		}
	}
}

func newToken() string {
	b := make([]byte, 16)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}
