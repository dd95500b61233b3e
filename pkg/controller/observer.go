package controller

// Observer receives a Snapshot after every state or page change.
//
// Observers run on the goroutine that caused the change, outside the
// controller's lock. They must return quickly and must not call mutating
// controller methods synchronously. Snapshots may arrive out of order when
// changes race; compare Snapshot.Version to discard stale ones.
type Observer interface {
	Observe(Snapshot)
}

// ObserverFunc adapts a function to the Observer interface.
type ObserverFunc func(Snapshot)

// Observe calls f(s).
func (f ObserverFunc) Observe(s Snapshot) {
	f(s)
}
