package osc

import (
	"errors"
	"fmt"
	"log/slog"
	"net"
	"sync"
	"time"
)

// Server represents an OSC server. The server listens on Addr for incoming OSC packets and bundles.
type Server struct {
	Addr        string
	Dispatcher  *Dispatcher
	ReadTimeout time.Duration

	// Logger receives packets that fail to parse and panics raised by
	// Methods. Defaults to discarding.
	Logger *slog.Logger
}

var bufPool = sync.Pool{
	New: func() interface{} {
		b := make([]byte, MaxPacketSize)
		return &b
	},
}

// ListenAndServe retrieves incoming OSC packets and dispatches the retrieved OSC packets.
func (s *Server) ListenAndServe() error {
	ln, err := net.ListenPacket("udp", s.Addr)
	if err != nil {
		return err
	}
	defer ln.Close()

	return s.Serve(ln)
}

// Serve retrieves incoming OSC packets from the given connection and dispatches retrieved OSC packets.
// Packets that fail to parse are logged and dropped. Serve returns nil once c is closed,
// otherwise the first read error that isn't a timeout.
func (s *Server) Serve(c net.PacketConn) error {
	if s.Dispatcher == nil {
		s.Dispatcher = &Dispatcher{}
	}
	if s.Dispatcher.Logger == nil {
		s.Dispatcher.Logger = s.Logger
	}

	for {
		data, addr, err := s.readFromConnection(c)
		if err != nil {
			if errors.Is(err, net.ErrClosed) {
				return nil
			}
			var ne net.Error
			if errors.As(err, &ne) && ne.Timeout() {
				continue
			}
			return err
		}

		p, err := ParsePacket(data)
		if err != nil {
			s.log().Debug("osc: dropping packet", "addr", addr, "size", len(data), "error", err)
			continue
		}

		go s.serve(p, addr)
	}
}

func (s *Server) serve(p Packet, a net.Addr) {
	defer func() {
		if err := recover(); err != nil {
			logPanic(s.log(), a, err)
		}
	}()
	s.Dispatcher.Dispatch(p, a)
}

// ReceivePacket listens for incoming OSC packets and returns the packet if one is received.
func (s *Server) ReceivePacket(c net.PacketConn) (Packet, net.Addr, error) {
	data, a, err := s.readFromConnection(c)
	if err != nil {
		return nil, a, err
	}

	p, err := ParsePacket(data)
	if err != nil {
		return nil, a, fmt.Errorf("ReceivePacket: %w", err)
	}
	return p, a, nil
}

// readFromConnection reads a single datagram. The returned slice is owned by the caller.
func (s *Server) readFromConnection(c net.PacketConn) ([]byte, net.Addr, error) {
	if s.ReadTimeout != 0 {
		if err := c.SetReadDeadline(time.Now().Add(s.ReadTimeout)); err != nil {
			return nil, nil, err
		}
	}

	b := bufPool.Get().(*[]byte)
	defer bufPool.Put(b)

	n, a, err := c.ReadFrom(*b)
	if err != nil {
		return nil, a, err
	}
	bb := make([]byte, n)
	copy(bb, *b)

	return bb, a, nil
}

func (s *Server) log() *slog.Logger {
	if s.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return s.Logger
}
