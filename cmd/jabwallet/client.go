package main

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/arejula27/jab-go/internal/p2p"
)

const (
	requestRetries    = 5
	requestRetryDelay = 3 * time.Second
)

// requestAndWait publishes msg on the shared topic and waits for a reply of
// wantType addressed to this node's own peer-id topic, republishing on a
// fixed interval since the wire protocol makes no response-time guarantee.
func requestAndWait(dataDir string, msg *p2p.Msg, wantType p2p.MsgType) (*p2p.Msg, error) {
	logger := zap.NewNop()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	node, err := p2p.NewNode(ctx, dataDir, logger)
	if err != nil {
		return nil, fmt.Errorf("start client node: %w", err)
	}
	defer node.Close()

	// the serving node replies on the topic named by the request's peer id.
	switch {
	case msg.Transaction != nil:
		msg.Transaction.PeerID = node.ID()
	case msg.WalletDetails != nil:
		msg.WalletDetails.PeerID = node.ID()
	}

	if err := node.StartDiscovery(); err != nil {
		return nil, fmt.Errorf("start discovery: %w", err)
	}

	// give mDNS a moment to find a peer before the first publish.
	time.Sleep(500 * time.Millisecond)

	for attempt := 0; attempt < requestRetries; attempt++ {
		if err := node.Publish(msg); err != nil {
			return nil, fmt.Errorf("publish request: %w", err)
		}

		deadline := time.After(requestRetryDelay)
		for {
			select {
			case reply := <-node.Inbox():
				if reply.Type == wantType {
					return reply, nil
				}
			case <-deadline:
				goto nextAttempt
			}
		}
	nextAttempt:
	}

	return nil, fmt.Errorf("no response from the network after %d attempts", requestRetries)
}
