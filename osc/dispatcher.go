package osc

import (
	"fmt"
	"log/slog"
	"net"
	"runtime"
	"strings"
	"sync"
	"time"
)

// Method is an interface for OSC Methods.
type Method interface {
	HandleMessage(msg *Message)
}

// MethodFunc implements the Method interface. Type definition for an OSC Method function.
type MethodFunc func(msg *Message)

// HandleMessage calls itself with the given OSC Message. Implements the Method interface.
func (f MethodFunc) HandleMessage(msg *Message) {
	f(msg)
}

// Dispatcher handles the dispatching of received OSC Packets to Methods for their given Address.
// The zero value is ready to use.
type Dispatcher struct {
	// Logger receives panics raised by methods run for delayed bundles.
	// Defaults to discarding.
	Logger *slog.Logger

	mu      sync.RWMutex
	methods map[string]Method
}

// AddMethod adds a new OSC Method for the given OSC Address.
func (d *Dispatcher) AddMethod(addr string, method Method) error {
	if !strings.HasPrefix(addr, "/") {
		return fmt.Errorf("AddMethod: OSC Method address must start with '/'")
	}

	if strings.ContainsAny(addr, "*?,[]{}# ") {
		return fmt.Errorf("AddMethod: OSC Method may not contain any characters in \"*?,[]{}# \"")
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	if d.methods == nil {
		d.methods = make(map[string]Method)
	}

	if _, ok := d.methods[addr]; ok {
		return fmt.Errorf("AddMethod: OSC Method exists already")
	}

	d.methods[addr] = method
	return nil
}

// AddMethodFunc allows you to just pass a MethodFunc.
func (d *Dispatcher) AddMethodFunc(addr string, method MethodFunc) error {
	return d.AddMethod(addr, method)
}

// Dispatch dispatches OSC Packets. Messages are handled synchronously, by
// every Method whose address matches the message's address pattern. Bundle
// elements are dispatched in order once the bundle's Timetag is due.
func (d *Dispatcher) Dispatch(packet Packet, a net.Addr) {
	switch p := packet.(type) {
	case *Message:
		r, err := getRegEx(p.Address)
		if err != nil {
			d.log().Warn("osc: invalid address pattern", "addr", a, "pattern", p.Address, "error", err)
			return
		}

		for _, method := range d.matching(r.MatchString) {
			method.HandleMessage(p)
		}

	case *Bundle:
		wait := p.Timetag.ExpiresIn()
		if wait == 0 {
			d.dispatchElements(p, a)
			return
		}
		time.AfterFunc(wait, func() {
			defer d.recoverer(a)
			d.dispatchElements(p, a)
		})
	}
}

func (d *Dispatcher) dispatchElements(b *Bundle, a net.Addr) {
	for _, elem := range b.Elements {
		d.Dispatch(elem, a)
	}
}

// matching returns the methods whose address satisfies match. The lock is
// not held while the methods run.
func (d *Dispatcher) matching(match func(string) bool) []Method {
	d.mu.RLock()
	defer d.mu.RUnlock()

	var ms []Method
	for addr, method := range d.methods {
		if match(addr) {
			ms = append(ms, method)
		}
	}
	return ms
}

func (d *Dispatcher) log() *slog.Logger {
	if d.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return d.Logger
}

// recoverer logs a panic raised while handling a packet from a.
func (d *Dispatcher) recoverer(a net.Addr) {
	if err := recover(); err != nil {
		logPanic(d.log(), a, err)
	}
}

func logPanic(l *slog.Logger, a net.Addr, err any) {
	buf := make([]byte, 64<<10)
	buf = buf[:runtime.Stack(buf, false)]
	l.Error("osc: panic handling packet", "addr", a, "panic", err, "stack", string(buf))
}
