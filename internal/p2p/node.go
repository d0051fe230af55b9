package p2p

import (
	"context"
	"fmt"
	"time"

	"github.com/libp2p/go-libp2p"
	"github.com/libp2p/go-libp2p/core/host"
	"github.com/libp2p/go-libp2p/core/network"
	"github.com/libp2p/go-libp2p/core/peer"
	"github.com/libp2p/go-libp2p/p2p/muxer/yamux"
	"github.com/libp2p/go-libp2p/p2p/net/connmgr"
	"github.com/libp2p/go-libp2p/p2p/security/noise"

	ma "github.com/multiformats/go-multiaddr"
	"go.uber.org/zap"
)

// Node owns the libp2p host, the two pub/sub topics, and LAN discovery. It
// is used exclusively by the event loop; no other task mutates it.
type Node struct {
	Host   host.Host
	Logger *zap.Logger

	pubsub    *PubSub
	discovery *Discovery

	inbox            chan *Msg
	connectionClosed chan peer.ID
}

// NewNode constructs a libp2p host listening on an OS-assigned TCP port
// under 0.0.0.0, with noise transport security and yamux stream muxing, and
// joins both pub/sub topics. Discovery is started separately via
// StartDiscovery once the caller is ready to receive inbound messages.
func NewNode(ctx context.Context, dataDir string, logger *zap.Logger) (*Node, error) {
	privKey, err := LoadOrCreateIdentity(dataDir)
	if err != nil {
		return nil, fmt.Errorf("load identity: %w", err)
	}

	cm, err := connmgr.NewConnManager(50, 100, connmgr.WithGracePeriod(time.Minute))
	if err != nil {
		return nil, fmt.Errorf("create connection manager: %w", err)
	}

	h, err := libp2p.New(
		libp2p.Identity(privKey),
		libp2p.ListenAddrStrings("/ip4/0.0.0.0/tcp/0"),
		libp2p.Security(noise.ID, noise.New),
		libp2p.Muxer(yamux.ID, yamux.DefaultTransport),
		libp2p.ConnectionManager(cm),
	)
	if err != nil {
		return nil, fmt.Errorf("create libp2p host: %w", err)
	}

	n := &Node{
		Host:             h,
		Logger:           logger,
		inbox:            make(chan *Msg, 256),
		connectionClosed: make(chan peer.ID, 16),
	}

	h.Network().Notify(&connNotifiee{closed: n.connectionClosed})

	n.pubsub, err = NewPubSub(ctx, h, n.inbox, logger)
	if err != nil {
		h.Close()
		return nil, fmt.Errorf("setup pubsub: %w", err)
	}

	logger.Info("p2p node started", zap.String("peer_id", h.ID().String()))
	for _, addr := range h.Addrs() {
		logger.Info("listening on", zap.String("addr", fmt.Sprintf("%s/p2p/%s", addr, h.ID())))
	}

	return n, nil
}

// StartDiscovery begins mDNS discovery. Called once the event loop is ready
// to consume inbound messages, to avoid racing connections against an
// unready inbox.
func (n *Node) StartDiscovery() error {
	var err error
	n.discovery, err = NewDiscovery(n.Host, n.Logger)
	if err != nil {
		return fmt.Errorf("setup discovery: %w", err)
	}
	return nil
}

// ID returns this node's own peer id string, which doubles as its private
// reply topic name.
func (n *Node) ID() string {
	return n.Host.ID().String()
}

// Inbox returns the channel of decoded inbound messages from both topics.
func (n *Node) Inbox() <-chan *Msg {
	return n.inbox
}

// ConnectionClosed returns the channel of peer ids whose connection has
// just closed, used by the event loop to unregister them from the miner
// roster.
func (n *Node) ConnectionClosed() <-chan peer.ID {
	return n.connectionClosed
}

// Publish sends msg on the shared "jab" topic.
func (n *Node) Publish(msg *Msg) error {
	return n.pubsub.Publish(msg)
}

// Send sends msg on peerID's private topic.
func (n *Node) Send(peerID string, msg *Msg) error {
	return n.pubsub.Send(peerID, msg)
}

// PeerCount returns the number of currently connected peers.
func (n *Node) PeerCount() int {
	return len(n.Host.Network().Peers())
}

// IsDiscovered reports whether id is still present in the mDNS discovery
// cache. The event loop does not consult it: a closed connection always
// unregisters the peer.
func (n *Node) IsDiscovered(id peer.ID) bool {
	if n.discovery == nil {
		return false
	}
	return n.discovery.IsDiscovered(id)
}

// ExpirePeer removes id from the discovery cache, called by the event loop
// once a closed connection has been handled.
func (n *Node) ExpirePeer(id peer.ID) {
	if n.discovery == nil {
		return
	}
	n.discovery.ExpirePeer(id)
}

// Close shuts down the host and releases its resources.
func (n *Node) Close() error {
	return n.Host.Close()
}

type connNotifiee struct {
	closed chan peer.ID
}

func (c *connNotifiee) Connected(network.Network, network.Conn) {}

func (c *connNotifiee) Disconnected(_ network.Network, conn network.Conn) {
	select {
	case c.closed <- conn.RemotePeer():
	default:
	}
}

func (c *connNotifiee) Listen(network.Network, ma.Multiaddr)      {}
func (c *connNotifiee) ListenClose(network.Network, ma.Multiaddr) {}
