// Package spibus owns the process's SPI port handles. Ports are opened on
// first configure and cached, so repeated device setup against the same bus
// reuses the existing handle instead of reopening the device file.
package spibus

import (
	"fmt"
	"sync"

	log "github.com/sirupsen/logrus"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/spi"
	"periph.io/x/conn/v3/spi/spireg"
)

type key struct {
	bus    int
	device int
}

type port struct {
	closer spi.PortCloser
	conn   spi.Conn
}

// Registry caches open SPI ports keyed by bus and device number. The mutex
// guards open, lookup and close only; transfers run outside it, so callers
// sharing a device must serialize their own transfers.
type Registry struct {
	mu    sync.Mutex
	ports map[key]*port

	// openPort is swapped out in tests.
	openPort func(name string) (spi.PortCloser, error)
}

// New returns an empty registry backed by the host's SPI port registry.
func New() *Registry {
	return &Registry{
		ports:    make(map[key]*port),
		openPort: spireg.Open,
	}
}

func portName(bus, device int) string {
	return fmt.Sprintf("SPI%d.%d", bus, device)
}

// Configure opens the port if needed and (re)connects it at the given mode
// and clock. It must be called before Tx on the same bus and device.
func (r *Registry) Configure(bus, device int, mode spi.Mode, f physic.Frequency) error {
	name := portName(bus, device)

	r.mu.Lock()
	defer r.mu.Unlock()

	k := key{bus: bus, device: device}
	p, ok := r.ports[k]
	if !ok {
		closer, err := r.openPort(name)
		if err != nil {
			return fmt.Errorf("unable to open %v: %w", name, err)
		}
		log.Debugf("Opened %v", name)
		p = &port{closer: closer}
		r.ports[k] = p
	}

	conn, err := p.closer.Connect(f, mode, 8)
	if err != nil {
		return fmt.Errorf("unable to connect %v: %w", name, err)
	}
	p.conn = conn
	return nil
}

// Tx writes w to the device. The device must have been configured first.
func (r *Registry) Tx(bus, device int, w []byte) error {
	r.mu.Lock()
	p, ok := r.ports[key{bus: bus, device: device}]
	r.mu.Unlock()

	if !ok || p.conn == nil {
		return fmt.Errorf("%v is not configured", portName(bus, device))
	}
	return p.conn.Tx(w, nil)
}

// Release closes the port and drops it from the registry. Releasing a port
// that is not open is a no-op.
func (r *Registry) Release(bus, device int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	k := key{bus: bus, device: device}
	p, ok := r.ports[k]
	if !ok {
		return nil
	}
	delete(r.ports, k)

	log.Debugf("Closing %v", portName(bus, device))
	return p.closer.Close()
}

// Close releases every open port. The registry stays usable afterwards; the
// next Configure simply reopens.
func (r *Registry) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	var firstErr error
	for k, p := range r.ports {
		if err := p.closer.Close(); err != nil && firstErr == nil {
			firstErr = fmt.Errorf("unable to close %v: %w", portName(k.bus, k.device), err)
		}
		delete(r.ports, k)
	}
	return firstErr
}
