package share

import (
	"fmt"
	"net"
	"os"
	"time"

	"github.com/hashicorp/mdns"
)

// ServiceType is the mDNS service viewers browse for.
const ServiceType = "_vectorboard._tcp"

// Advertise announces a viewer server on port under the instance name, or
// the host name when instance is empty.
func Advertise(instance string, port int) (*mdns.Server, error) {
	if instance == "" {
		host, err := os.Hostname()
		if err != nil {
			return nil, fmt.Errorf("could not get hostname: %w", err)
		}
		instance = host
	}
	var ips []net.IP
	if ip, ok := LANIPv4(); ok {
		ips = []net.IP{ip}
	}
	service, err := mdns.NewMDNSService(instance, ServiceType, "", "", port, ips, []string{"VectorBoard viewer"})
	if err != nil {
		return nil, fmt.Errorf("failed to create mDNS service: %w", err)
	}
	server, err := mdns.NewServer(&mdns.Config{Zone: service})
	if err != nil {
		return nil, fmt.Errorf("failed to start mDNS server: %w", err)
	}
	return server, nil
}

// Browse looks for advertised viewers for timeout and calls found with each
// "ip:port".
func Browse(timeout time.Duration, found func(addr string)) error {
	entries := make(chan *mdns.ServiceEntry, 8)
	done := make(chan struct{})
	go func() {
		defer close(done)
		for e := range entries {
			if e.AddrV4 == nil || e.Port == 0 {
				continue
			}
			found(fmt.Sprintf("%s:%d", e.AddrV4, e.Port))
		}
	}()
	params := mdns.DefaultParams(ServiceType)
	params.Entries = entries
	params.Timeout = timeout
	params.DisableIPv6 = true
	err := mdns.Query(params)
	close(entries)
	<-done
	if err != nil {
		return fmt.Errorf("mDNS browse: %w", err)
	}
	return nil
}

// LANIPv4 picks the address published in the viewer advertisement: the
// first routable IPv4 address of an interface that is up. Loopback and
// link-local addresses are skipped; ok is false when nothing is left.
func LANIPv4() (ip net.IP, ok bool) {
	ifaces, _ := net.Interfaces()
	for _, iface := range ifaces {
		if iface.Flags&net.FlagUp == 0 || iface.Flags&net.FlagLoopback != 0 {
			continue
		}
		addrs, _ := iface.Addrs()
		for _, a := range addrs {
			ipnet, isNet := a.(*net.IPNet)
			if !isNet {
				continue
			}
			if v4 := ipnet.IP.To4(); v4 != nil && !v4.IsLinkLocalUnicast() {
				return v4, true
			}
		}
	}
	return nil, false
}

// GetOutgoingIP finds the preferred local IP address to show in the share
// link.
func GetOutgoingIP() string {
	conn, err := net.Dial("udp", "8.8.8.8:80")
	if err != nil {
		if ip, ok := LANIPv4(); ok {
			return ip.String()
		}
		return "127.0.0.1"
	}
	defer conn.Close()
	return conn.LocalAddr().(*net.UDPAddr).IP.String()
}
