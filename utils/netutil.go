package utils

import (
	"fmt"
	"net"
)

// Listen binds a stream listener and returns bind failures with a hint about
// the cause.
func Listen(network, addr string) (net.Listener, error) {
	ln, err := net.Listen(network, addr)
	if err != nil {
		return nil, listenError(network, addr, err)
	}
	return ln, nil
}

// ListenUDP binds a UDP socket; failures are described like Listen's.
func ListenUDP(network, addr string) (*net.UDPConn, error) {
	ua, err := net.ResolveUDPAddr(network, addr)
	if err != nil {
		return nil, fmt.Errorf("listen %s %s: %w", network, addr, err)
	}
	conn, err := net.ListenUDP(network, ua)
	if err != nil {
		return nil, listenError(network, addr, err)
	}
	return conn, nil
}

func listenError(network, addr string, err error) error {
	if hint := bindHint(err); hint != "" {
		return fmt.Errorf("listen %s %s: %s: %w", network, addr, hint, err)
	}
	return fmt.Errorf("listen %s %s: %w", network, addr, err)
}
