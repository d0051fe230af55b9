package node

import "time"

// periodicInterval drives chain-tail sync requests and, while the roster is
// still host-only, miner-discovery bootstrap.
const periodicInterval = 5 * time.Second

// PeriodicTicker emits a PeriodicTickEvent on a fixed wall-clock interval.
type PeriodicTicker struct {
	ticker *time.Ticker
	tick   chan PeriodicTickEvent
	done   chan struct{}
}

// NewPeriodicTicker starts the interval and returns the ticker.
func NewPeriodicTicker() *PeriodicTicker {
	p := &PeriodicTicker{
		ticker: time.NewTicker(periodicInterval),
		tick:   make(chan PeriodicTickEvent, 1),
		done:   make(chan struct{}),
	}
	go p.run()
	return p
}

func (p *PeriodicTicker) run() {
	for {
		select {
		case <-p.done:
			return
		case <-p.ticker.C:
			select {
			case p.tick <- PeriodicTickEvent{}:
			default:
			}
		}
	}
}

// Tick returns the channel of periodic firings.
func (p *PeriodicTicker) Tick() <-chan PeriodicTickEvent {
	return p.tick
}

// Stop halts the interval.
func (p *PeriodicTicker) Stop() {
	p.ticker.Stop()
	close(p.done)
}
