// Package netx provides the connectivity probe consulted at the start of
// each sync round.
package netx

import (
	"context"
	"net"
)

// Checker reports whether the device currently has network connectivity.
// It answers a coarse yes/no; server reachability is a separate concern
// surfaced by the sync call itself.
type Checker interface {
	Online(ctx context.Context) bool
}

// InterfaceChecker decides connectivity by looking for an up, non-loopback
// network interface with an assigned address. It never touches the network.
type InterfaceChecker struct{}

func NewInterfaceChecker() *InterfaceChecker {
	return &InterfaceChecker{}
}

func (c *InterfaceChecker) Online(_ context.Context) bool {
	ifaces, err := net.Interfaces()
	if err != nil {
		return false
	}
	for _, iface := range ifaces {
		if iface.Flags&net.FlagUp == 0 || iface.Flags&net.FlagLoopback != 0 {
			continue
		}
		addrs, err := iface.Addrs()
		if err != nil || len(addrs) == 0 {
			continue
		}
		return true
	}
	return false
}
