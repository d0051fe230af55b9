package node

import "github.com/libp2p/go-libp2p/core/peer"

// ConnectionClosedEvent signals that a peer's connection has closed; the
// event loop unregisters it from the miner roster.
type ConnectionClosedEvent struct {
	PeerID peer.ID
}

// MiningTickEvent signals the mining scheduler firing on second 30 of every
// minute.
type MiningTickEvent struct{}

// PeriodicTickEvent signals the 5-second chain-tail-sync and
// miner-discovery interval.
type PeriodicTickEvent struct{}
