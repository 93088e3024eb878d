// Package keyring rotates between multiple API key pairs that share
// the same signing scheme. The facade pulls the current pair per call;
// rotation strategies decide when the ring advances.
package keyring

import "sync"

// Credential is one API key pair held by the ring.
type Credential struct {
	// ID names the pair for enable/disable bookkeeping and logging.
	ID string
	// Key is the public key identifier.
	Key string
	// Secret is the signing secret. Never exposed by String().
	Secret string

	Disabled   bool
	ErrorCount int
}

// Strategy decides when the ring advances to the next credential.
type Strategy int

const (
	// RotateRoundRobin advances only on explicit Rotate calls.
	RotateRoundRobin Strategy = iota
	// RotateOnError advances whenever a call using the current
	// credential fails.
	RotateOnError
)

// Ring holds credentials and a rotation position. Safe for concurrent
// use.
type Ring struct {
	mu       sync.Mutex
	creds    []*Credential
	current  int
	strategy Strategy
}

// New builds a ring from copies of the given credentials.
func New(creds []Credential, strategy Strategy) *Ring {
	copied := make([]*Credential, len(creds))
	for i := range creds {
		c := creds[i]
		copied[i] = &c
	}
	return &Ring{creds: copied, strategy: strategy}
}

// Current returns the active credential, skipping disabled entries.
// It returns nil when no usable credential remains.
func (r *Ring) Current() *Credential {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := 0; i < len(r.creds); i++ {
		idx := (r.current + i) % len(r.creds)
		if !r.creds[idx].Disabled {
			return r.creds[idx]
		}
	}
	return nil
}

// Rotate advances to the next enabled credential.
func (r *Ring) Rotate() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rotateLocked()
}

func (r *Ring) rotateLocked() {
	if len(r.creds) == 0 {
		return
	}
	start := r.current
	for {
		r.current = (r.current + 1) % len(r.creds)
		if !r.creds[r.current].Disabled || r.current == start {
			return
		}
	}
}

// OnError records a failure against the current credential and rotates
// if the strategy calls for it.
func (r *Ring) OnError() {
	r.mu.Lock()
	defer r.mu.Unlock()

	if len(r.creds) == 0 {
		return
	}
	r.creds[r.current].ErrorCount++
	if r.strategy == RotateOnError {
		r.rotateLocked()
	}
}

// Disable takes a credential out of rotation by id.
func (r *Ring) Disable(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, c := range r.creds {
		if c.ID == id {
			c.Disabled = true
			return
		}
	}
}

// Enable puts a credential back into rotation and clears its error
// count.
func (r *Ring) Enable(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, c := range r.creds {
		if c.ID == id {
			c.Disabled = false
			c.ErrorCount = 0
			return
		}
	}
}

// Len returns the number of credentials in the ring, disabled ones
// included.
func (r *Ring) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.creds)
}

// String renders the credential with its key masked. The secret is
// never included.
func (c *Credential) String() string {
	return "Credential{ID:" + c.ID + ", Key:" + maskKey(c.Key) + "}"
}

func maskKey(key string) string {
	if len(key) <= 8 {
		return "****"
	}
	return key[:4] + "****" + key[len(key)-4:]
}
