package runner

import (
	"os"
	"os/signal"
	"sync"
)

// Interruptible is anything running user code that Ctrl+C can stop.
type Interruptible interface {
	Interrupt() bool
}

// SignalManager converts SIGINT into either an interruption of running code
// or, when nothing is running, an event on Interrupts for the prompt reader.
type SignalManager struct {
	mu     sync.Mutex
	target Interruptible

	sigs       chan os.Signal
	interrupts chan struct{}
	done       chan struct{}
	stopOnce   sync.Once
}

// NewSignalManager starts listening for SIGINT.
func NewSignalManager() *SignalManager {
	sm := &SignalManager{
		sigs:       make(chan os.Signal, 1),
		interrupts: make(chan struct{}, 1),
		done:       make(chan struct{}),
	}
	signal.Notify(sm.sigs, os.Interrupt)
	go sm.loop()
	return sm
}

func (sm *SignalManager) loop() {
	for {
		select {
		case <-sm.done:
			return
		case <-sm.sigs:
			sm.Deliver()
		}
	}
}

// Deliver handles one interrupt as if SIGINT had been received.
func (sm *SignalManager) Deliver() {
	sm.mu.Lock()
	target := sm.target
	sm.mu.Unlock()

	if target != nil && target.Interrupt() {
		return
	}
	select {
	case sm.interrupts <- struct{}{}:
	default:
	}
}

// SetTarget designates the environment to interrupt. It changes on every deck reload.
func (sm *SignalManager) SetTarget(t Interruptible) {
	sm.mu.Lock()
	sm.target = t
	sm.mu.Unlock()
}

// Interrupts fires when SIGINT arrives while no code is running.
func (sm *SignalManager) Interrupts() <-chan struct{} {
	return sm.interrupts
}

// Stop permanently stops the signal listener.
func (sm *SignalManager) Stop() {
	sm.stopOnce.Do(func() {
		signal.Stop(sm.sigs)
		close(sm.done)
	})
}
