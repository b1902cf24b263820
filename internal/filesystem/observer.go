package filesystem

// Observer records filesystem operation metrics. The metrics package
// provides the implementation so that this package does not import it.
type Observer interface {
	// ObserveOperation records one operation ("stat", "trash", "remove")
	// against the resolved volume label.
	ObserveOperation(volume, operation string, durationSeconds float64, err error)
	ObserveStaleError(volume, operation string)
}

type nopObserver struct{}

func (nopObserver) ObserveOperation(string, string, float64, error) {}
func (nopObserver) ObserveStaleError(string, string)                {}
