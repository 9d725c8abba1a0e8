/*
File Name:  addresses.go
Package:    discovery

Local-interface and broadcast-address enumeration, grounded on
networkToIPv4BroadcastIPs/ipv4DirectedBroadcast of "Network IPv4
Broadcast.go" (directed broadcast computed by OR-ing the host bits of each
interface's netmask) and on scan_local_addresses/scan_broadcast_addresses
of network/discovery_service.rs (IPv4-only, loopback excluded).
*/
package discovery

import "net"

// localIPv4Addresses returns every non-loopback IPv4 address configured on
// the host's network interfaces.
func localIPv4Addresses() ([]net.IP, error) {
	ifaces, err := net.Interfaces()
	if err != nil {
		return nil, err
	}

	var out []net.IP
	for _, iface := range ifaces {
		addrs, err := iface.Addrs()
		if err != nil {
			continue
		}
		for _, addr := range addrs {
			ipNet, ok := addr.(*net.IPNet)
			if !ok {
				continue
			}
			ip4 := ipNet.IP.To4()
			if ip4 == nil || ip4.IsLoopback() {
				continue
			}
			out = append(out, ip4)
		}
	}
	return out, nil
}

// broadcastAddresses returns the directed broadcast address for every
// non-loopback IPv4 interface with a usable netmask, plus the
// limited-broadcast fallback 255.255.255.255, which is always included.
func broadcastAddresses() ([]net.IP, error) {
	ifaces, err := net.Interfaces()
	if err != nil {
		return nil, err
	}

	out := []net.IP{net.IPv4bcast}
	for _, iface := range ifaces {
		addrs, err := iface.Addrs()
		if err != nil {
			continue
		}
		for _, addr := range addrs {
			ipNet, ok := addr.(*net.IPNet)
			if !ok {
				continue
			}
			ip4 := ipNet.IP.To4()
			if ip4 == nil || ip4.IsLoopback() {
				continue
			}
			if b := directedBroadcast(ipNet); b != nil {
				out = append(out, b)
			}
		}
	}
	return out, nil
}

// directedBroadcast computes the directed broadcast address of n by
// OR-ing the host portion of the address with the inverted netmask.
func directedBroadcast(n *net.IPNet) net.IP {
	ip4 := n.IP.To4()
	if ip4 == nil || len(n.Mask) != net.IPv4len {
		return nil
	}
	b := make(net.IP, net.IPv4len)
	for i := range ip4 {
		b[i] = ip4[i] | ^n.Mask[i]
	}
	return b
}

// isLocalAddress reports whether ip matches any address configured on a
// local interface.
func isLocalAddress(ip net.IP, locals []net.IP) bool {
	for _, l := range locals {
		if l.Equal(ip) {
			return true
		}
	}
	return false
}
