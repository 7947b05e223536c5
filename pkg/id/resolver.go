package id

import (
	"errors"
	"fmt"
	"net"
	"os"
	"strconv"

	"github.com/cespare/xxhash/v2"
	psnet "github.com/shirou/gopsutil/net"

	logpkg "github.com/rzbill/flake/pkg/log"
)

// ErrNoHardwareAddr is reported when no interface carries a usable MAC.
var ErrNoHardwareAddr = errors.New("no usable hardware address")

// Resolver derives node coordinates when none are configured.
type Resolver interface {
	// DatacenterID returns a value in [0, max].
	DatacenterID(max int64) int64
	// WorkerID returns a value in [0, max], typically mixed with datacenterID.
	WorkerID(datacenterID, max int64) int64
}

// StaticResolver returns fixed coordinates, clamped into range.
type StaticResolver struct {
	Datacenter int64
	Worker     int64
}

func (r StaticResolver) DatacenterID(max int64) int64 { return clamp(r.Datacenter, max) }

func (r StaticResolver) WorkerID(_ int64, max int64) int64 { return clamp(r.Worker, max) }

// Interface is the subset of a network interface the HostResolver inspects.
type Interface struct {
	Name         string
	HardwareAddr string
	Flags        []string
}

// HostResolver derives the datacenter id from the primary hardware address
// and the worker id from the datacenter id and process id. Lookup failures
// are logged and replaced by a fallback of 1.
type HostResolver struct {
	interfaces func() ([]Interface, error)
	pid        func() int
	logger     logpkg.Logger
}

// ResolverOption configures a HostResolver.
type ResolverOption func(*HostResolver)

// WithInterfaces replaces interface enumeration.
func WithInterfaces(fn func() ([]Interface, error)) ResolverOption {
	return func(r *HostResolver) { r.interfaces = fn }
}

// WithPID replaces the process id lookup.
func WithPID(fn func() int) ResolverOption {
	return func(r *HostResolver) { r.pid = fn }
}

// WithResolverLogger sets where resolution warnings go.
func WithResolverLogger(l logpkg.Logger) ResolverOption {
	return func(r *HostResolver) { r.logger = l }
}

// NewHostResolver returns a resolver backed by the host's interfaces.
func NewHostResolver(opts ...ResolverOption) *HostResolver {
	r := &HostResolver{
		interfaces: hostInterfaces,
		pid:        os.Getpid,
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.logger == nil {
		r.logger = logpkg.NewLogger(logpkg.WithOutput(logpkg.NullOutput{}))
	}
	r.logger = r.logger.WithComponent("node-resolver")
	return r
}

func hostInterfaces() ([]Interface, error) {
	stats, err := psnet.Interfaces()
	if err != nil {
		return nil, err
	}
	out := make([]Interface, 0, len(stats))
	for _, s := range stats {
		out = append(out, Interface{Name: s.Name, HardwareAddr: s.HardwareAddr, Flags: s.Flags})
	}
	return out, nil
}

// DatacenterID implements Resolver.
func (r *HostResolver) DatacenterID(max int64) int64 {
	fallback := clamp(1, max)
	mac, err := r.primaryHardwareAddr()
	if err != nil {
		r.warn(&ResolutionWarning{Source: "datacenter id", Fallback: fallback, Err: err})
		return fallback
	}
	n := len(mac)
	v := (int64(mac[n-1]) | int64(mac[n-2])<<8) >> 6
	return v % (max + 1)
}

// WorkerID implements Resolver.
func (r *HostResolver) WorkerID(datacenterID, max int64) int64 {
	identity := strconv.FormatInt(datacenterID, 10)
	pid := r.pid()
	if pid > 0 {
		identity += strconv.Itoa(pid)
	}
	id := int64(xxhash.Sum64String(identity)&0xFFFF) % (max + 1)
	if pid <= 0 {
		r.warn(&ResolutionWarning{Source: "worker id", Fallback: id, Err: fmt.Errorf("invalid process id %d", pid)})
	}
	return id
}

func (r *HostResolver) primaryHardwareAddr() (net.HardwareAddr, error) {
	ifaces, err := r.interfaces()
	if err != nil {
		return nil, fmt.Errorf("list interfaces: %w", err)
	}
	for _, iface := range ifaces {
		if !hasFlag(iface.Flags, "up") || hasFlag(iface.Flags, "loopback") {
			continue
		}
		if iface.HardwareAddr == "" {
			continue
		}
		mac, err := net.ParseMAC(iface.HardwareAddr)
		if err != nil || len(mac) < 2 || isZero(mac) {
			continue
		}
		return mac, nil
	}
	return nil, ErrNoHardwareAddr
}

func (r *HostResolver) warn(w *ResolutionWarning) {
	r.logger.Warn("node identity fallback",
		logpkg.Str("source", w.Source),
		logpkg.Int64("fallback", w.Fallback),
		logpkg.Err(w.Err),
	)
}

func hasFlag(flags []string, want string) bool {
	for _, f := range flags {
		if f == want {
			return true
		}
	}
	return false
}

func isZero(b []byte) bool {
	for _, c := range b {
		if c != 0 {
			return false
		}
	}
	return true
}

func clamp(v, max int64) int64 {
	if v < 0 {
		return 0
	}
	if v > max {
		return max
	}
	return v
}
