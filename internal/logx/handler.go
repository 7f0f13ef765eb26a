// Package logx contains logging extensions.
package logx

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/apex/log"
	"github.com/fatih/color"
	"github.com/mattn/go-colorable"
)

// Handler is a [log.Handler] rendering compact colored log lines
// prefixed by the time elapsed since the program started.
//
// The zero value of this struct is invalid. Use the
// [NewHandlerWithDefaultSettings] constructor.
type Handler struct {
	// Now is MANDATORY and returns the current time.
	Now func() time.Time

	// StartTime is MANDATORY and is the reference time from
	// which we compute the elapsed time.
	StartTime time.Time

	// Writer is MANDATORY and is where we write log lines.
	Writer io.Writer

	// mu serializes writes from concurrent goroutines.
	mu sync.Mutex
}

// NewHandlerWithDefaultSettings creates a new [Handler] writing
// on the standard error with the start time set to now.
func NewHandlerWithDefaultSettings() *Handler {
	return &Handler{
		Now:       time.Now,
		StartTime: time.Now(),
		Writer:    colorable.NewColorable(os.Stderr),
	}
}

// colors maps each log level to the color used to render it.
var colors = [...]*color.Color{
	log.DebugLevel: color.New(color.FgWhite),
	log.InfoLevel:  color.New(color.FgBlue),
	log.WarnLevel:  color.New(color.FgYellow),
	log.ErrorLevel: color.New(color.FgRed),
	log.FatalLevel: color.New(color.FgRed),
}

// HandleLog implements [log.Handler].
func (h *Handler) HandleLog(e *log.Entry) error {
	elapsed := h.Now().Sub(h.StartTime)
	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := colors[e.Level].Fprintf(
		h.Writer, "[%14.6f] <%s> %s", elapsed.Seconds(), e.Level.String(), e.Message)
	if err != nil {
		return err
	}
	for _, name := range e.Fields.Names() {
		if _, err := fmt.Fprintf(h.Writer, " %s=%v", name, e.Fields.Get(name)); err != nil {
			return err
		}
	}
	_, err = fmt.Fprintln(h.Writer)
	return err
}
