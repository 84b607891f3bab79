package engine

import (
	"sync/atomic"

	"github.com/vovakirdan/tui-raycaster/internal/core"
)

// InputSource yields at most one command per frame without blocking.
// Poll returns core.CommandNone when nothing is pending.
type InputSource interface {
	Poll() core.Command
}

// Sink receives each completed frame.
type Sink interface {
	Present(f *Frame) error
}

// SinkFunc adapts a function to Sink.
type SinkFunc func(f *Frame) error

func (fn SinkFunc) Present(f *Frame) error { return fn(f) }

// CommandQueue is a bounded, non-blocking InputSource fed by a terminal reader
// goroutine. Commands pushed while the queue is full are dropped, except Exit,
// which is latched and reported on the next Poll.
type CommandQueue struct {
	ch   chan core.Command
	exit atomic.Bool
}

// NewCommandQueue creates a queue holding up to size pending commands.
func NewCommandQueue(size int) *CommandQueue {
	if size < 1 {
		size = 1
	}
	return &CommandQueue{ch: make(chan core.Command, size)}
}

// Push enqueues cmd and reports whether it was kept.
func (q *CommandQueue) Push(cmd core.Command) bool {
	switch cmd {
	case core.CommandNone:
		return false
	case core.CommandExit:
		q.exit.Store(true)
		return true
	}
	select {
	case q.ch <- cmd:
		return true
	default:
		return false
	}
}

// Poll returns the oldest pending command or core.CommandNone.
func (q *CommandQueue) Poll() core.Command {
	if q.exit.Load() {
		return core.CommandExit
	}
	select {
	case cmd := <-q.ch:
		return cmd
	default:
		return core.CommandNone
	}
}

// Len returns the number of pending commands.
func (q *CommandQueue) Len() int {
	return len(q.ch)
}

// Script replays a fixed command list, one command per Poll.
type Script struct {
	cmds []core.Command
	pos  int
	loop bool
}

// NewScript creates a scripted input. With loop set it starts over after the
// last command, otherwise it reports core.CommandNone forever.
func NewScript(cmds []core.Command, loop bool) *Script {
	return &Script{cmds: cmds, loop: loop}
}

func (s *Script) Poll() core.Command {
	if len(s.cmds) == 0 {
		return core.CommandNone
	}
	if s.pos >= len(s.cmds) {
		if !s.loop {
			return core.CommandNone
		}
		s.pos = 0
	}
	cmd := s.cmds[s.pos]
	s.pos++
	return cmd
}
