package output

import (
	"fmt"
	"io"
	"sync"
	"time"
)

var statusSpinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// StatusSpinner displays an animated spinner with a status message while a
// blocking call is in flight. Safe for concurrent updates.
type StatusSpinner struct {
	out      io.Writer
	interval time.Duration

	mu       sync.Mutex
	frameIdx int
	message  string
	stop     chan struct{}
	done     chan struct{}
	running  bool
}

// NewStatusSpinner creates a StatusSpinner writing to out.
func NewStatusSpinner(out io.Writer) *StatusSpinner {
	return &StatusSpinner{out: out, interval: 100 * time.Millisecond}
}

// Start begins the animation with the given message. Starting a running
// spinner is a no-op.
func (s *StatusSpinner) Start(message string) {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return
	}
	s.running = true
	s.message = message
	s.stop = make(chan struct{})
	s.done = make(chan struct{})
	stop, done := s.stop, s.done
	s.mu.Unlock()

	go func() {
		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()
		defer close(done)

		for {
			select {
			case <-stop:
				return
			case <-ticker.C:
				s.render()
			}
		}
	}()
}

// Update changes the message and redraws immediately.
func (s *StatusSpinner) Update(message string) {
	s.mu.Lock()
	s.message = message
	s.mu.Unlock()
	s.render()
}

// Stop stops the animation and clears the line.
func (s *StatusSpinner) Stop() {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return
	}
	s.running = false
	close(s.stop)
	done := s.done
	s.mu.Unlock()

	<-done
	s.mu.Lock()
	fmt.Fprintf(s.out, "\r%80s\r", "")
	s.mu.Unlock()
}

func (s *StatusSpinner) render() {
	s.mu.Lock()
	defer s.mu.Unlock()
	fmt.Fprintf(s.out, "\r%s %s", statusSpinnerFrames[s.frameIdx], s.message)
	s.frameIdx = (s.frameIdx + 1) % len(statusSpinnerFrames)
}
