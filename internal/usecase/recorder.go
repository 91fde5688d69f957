package usecase

// Recorder receives workflow counters.
type Recorder interface {
	ReferenceFetched(resource string, err error)
	OrderSubmitted(source string)
	StatusReverted()
}

type nopRecorder struct{}

func (nopRecorder) ReferenceFetched(string, error) {}
func (nopRecorder) OrderSubmitted(string)          {}
func (nopRecorder) StatusReverted()                {}
