package search

import (
	"context"
	"net"
	"time"
)

// Probe reports connectivity by opening a TCP connection to a well-known address.
type Probe struct {
	addr    string
	timeout time.Duration
}

func NewProbe(addr string, timeout time.Duration) *Probe {
	return &Probe{addr: addr, timeout: timeout}
}

func (p *Probe) Online(ctx context.Context) bool {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	var d net.Dialer
	conn, err := d.DialContext(ctx, "tcp", p.addr)
	if err != nil {
		return false
	}
	conn.Close()
	return true
}
