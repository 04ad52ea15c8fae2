package source

import (
	"io"
	"sync"
)

// Stdin loads a reader once and hands the same Source to every caller.
// It is safe for concurrent use, so several scans of StdinName can share it.
type Stdin struct {
	r    io.Reader
	once sync.Once
	src  *Source
	err  error
}

// NewStdin returns a Stdin that will read r on the first Load.
func NewStdin(r io.Reader) *Stdin {
	return &Stdin{r: r}
}

// Load reads the reader to the end on the first call and returns that
// result, error included, on every call. The returned Source is shared and
// must not be modified.
func (s *Stdin) Load() (*Source, error) {
	s.once.Do(func() {
		s.src, s.err = Load(StdinName, s.r)
	})
	return s.src, s.err
}
