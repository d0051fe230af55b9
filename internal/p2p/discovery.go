package p2p

import (
	"context"
	"sync"

	"github.com/libp2p/go-libp2p/core/host"
	"github.com/libp2p/go-libp2p/core/peer"
	"github.com/libp2p/go-libp2p/p2p/discovery/mdns"

	"go.uber.org/zap"
)

// MDNSServiceTag is the mDNS service tag used for LAN discovery. Nodes only
// ever discover peers on the same local network segment; there is no
// cross-subnet discovery mechanism.
const MDNSServiceTag = "jab.local"

// Discovery manages LAN peer discovery via multicast DNS, tracking the set
// of currently-advertised peers so that an mDNS expiry can be told apart
// from a peer that was never seen.
type Discovery struct {
	host   host.Host
	logger *zap.Logger

	mu    sync.Mutex
	cache map[peer.ID]struct{}
}

// NewDiscovery starts the mDNS service and begins connecting to discovered
// peers.
func NewDiscovery(h host.Host, logger *zap.Logger) (*Discovery, error) {
	d := &Discovery{
		host:   h,
		logger: logger,
		cache:  make(map[peer.ID]struct{}),
	}

	svc := mdns.NewMdnsService(h, MDNSServiceTag, d)
	if err := svc.Start(); err != nil {
		return nil, err
	}
	logger.Info("mDNS discovery enabled", zap.String("service", MDNSServiceTag))
	return d, nil
}

// HandlePeerFound is invoked by the mDNS service when a peer is
// discovered. The peer is added to the discovery cache and a connection is
// attempted so it joins the pub/sub partial view.
func (d *Discovery) HandlePeerFound(pi peer.AddrInfo) {
	if pi.ID == d.host.ID() {
		return
	}

	d.mu.Lock()
	d.cache[pi.ID] = struct{}{}
	d.mu.Unlock()

	d.logger.Info("mDNS peer discovered", zap.String("peer", pi.ID.String()))
	if err := d.host.Connect(context.Background(), pi); err != nil {
		d.logger.Debug("failed to connect to discovered peer", zap.Error(err))
	}
}

// ExpirePeer removes id from the discovery cache, used when the event loop
// observes a connection close and wants to know whether the peer is still
// advertised on the LAN.
func (d *Discovery) ExpirePeer(id peer.ID) {
	d.mu.Lock()
	delete(d.cache, id)
	d.mu.Unlock()
}

// IsDiscovered reports whether id is still present in the discovery cache.
func (d *Discovery) IsDiscovered(id peer.ID) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	_, ok := d.cache[id]
	return ok
}
