package observable

import "sync"

// Registry keeps an ordered list of listeners that a subject broadcasts to.
// Registering the same listener twice keeps both entries; Unregister drops all of them.
// Listeners are matched with ==, so register pointers: an interface L holding a
// non-comparable value such as a struct with a slice field panics on Unregister.
type Registry[L comparable] struct {
	mu        sync.Mutex
	listeners []L
}

// Register appends the listener.
func (r *Registry[L]) Register(listener L) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.listeners = append(r.listeners, listener)
}

// Unregister removes every registration of the listener. Unknown listeners are ignored.
func (r *Registry[L]) Unregister(listener L) {
	r.mu.Lock()
	defer r.mu.Unlock()
	kept := r.listeners[:0]
	for _, l := range r.listeners {
		if l != listener {
			kept = append(kept, l)
		}
	}
	var zero L
	for i := len(kept); i < len(r.listeners); i++ {
		r.listeners[i] = zero
	}
	r.listeners = kept
}

// Listeners returns a snapshot that stays valid while the registry changes underneath.
func (r *Registry[L]) Listeners() []L {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]L, len(r.listeners))
	copy(out, r.listeners)
	return out
}
