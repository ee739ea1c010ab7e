package utils

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/logrusorgru/aurora"
)

// Spinner initializes the process indicator.
type Spinner struct {
	w        io.Writer
	stopChan chan struct{}
	done     sync.WaitGroup
}

// NewSpinner instantiates a new Spinner writing to w.
func NewSpinner(w io.Writer) *Spinner {
	return &Spinner{w: w}
}

// Start starts the process indicator.
func (s *Spinner) Start(message string) {
	s.stopChan = make(chan struct{})
	s.done.Add(1)

	go func() {
		defer s.done.Done()
		for {
			for _, r := range `-\|/` {
				select {
				case <-s.stopChan:
					fmt.Fprint(s.w, "\r")
					return
				default:
					fmt.Fprintf(s.w, "\r%s %c", message, aurora.Green(string(r)))
					time.Sleep(time.Millisecond * 100)
				}
			}
		}
	}()
}

// Stop stops the process indicator and waits for it to clear the line.
func (s *Spinner) Stop() {
	if s.stopChan == nil {
		return
	}
	close(s.stopChan)
	s.done.Wait()
	s.stopChan = nil
}
