package alert

var defaultStore = NewStore()

// Default returns the process-wide alert store.
func Default() *Store {
	return defaultStore
}

// SetAlert sets the process-wide alert. Usable from non-rendering code such
// as request error handlers.
func SetAlert(opts ...Option) {
	defaultStore.Set(opts...)
}

// ClearAlert hides the process-wide alert.
func ClearAlert() {
	defaultStore.Clear()
}

// Current returns the process-wide alert.
func Current() Alert {
	return defaultStore.Current()
}

// Subscribe registers fn on the process-wide alert store.
func Subscribe(fn func(Alert)) (unsubscribe func()) {
	return defaultStore.Subscribe(fn)
}
