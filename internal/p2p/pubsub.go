package p2p

import (
	"context"
	"sync"

	pubsub "github.com/libp2p/go-libp2p-pubsub"
	"github.com/libp2p/go-libp2p/core/host"
	"github.com/libp2p/go-libp2p/core/peer"

	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// PubSub manages the two kinds of flood-routed topics this node uses: the
// single shared "jab" topic every node subscribes to, and this node's own
// peer-id topic, used as its direct-reply inbox.
type PubSub struct {
	ps          *pubsub.PubSub
	sharedTopic *pubsub.Topic
	sharedSub   *pubsub.Subscription
	selfTopic   *pubsub.Topic
	selfSub     *pubsub.Subscription
	self        peer.ID
	logger      *zap.Logger

	peerLimiters   map[peer.ID]*rate.Limiter
	peerLimitersMu sync.Mutex

	sendTopics   map[string]*pubsub.Topic
	sendTopicsMu sync.Mutex
}

// NewPubSub joins both topics and starts the read loops that decode inbound
// payloads and push them onto inbox.
func NewPubSub(ctx context.Context, h host.Host, inbox chan *Msg, logger *zap.Logger) (*PubSub, error) {
	ps, err := pubsub.NewFloodSub(ctx, h)
	if err != nil {
		return nil, err
	}

	sharedTopic, err := ps.Join(SharedTopic)
	if err != nil {
		return nil, err
	}
	sharedSub, err := sharedTopic.Subscribe()
	if err != nil {
		return nil, err
	}

	selfName := h.ID().String()
	selfTopic, err := ps.Join(selfName)
	if err != nil {
		return nil, err
	}
	selfSub, err := selfTopic.Subscribe()
	if err != nil {
		return nil, err
	}

	p := &PubSub{
		ps:           ps,
		sharedTopic:  sharedTopic,
		sharedSub:    sharedSub,
		selfTopic:    selfTopic,
		selfSub:      selfSub,
		self:         h.ID(),
		logger:       logger,
		peerLimiters: make(map[peer.ID]*rate.Limiter),
		sendTopics:   make(map[string]*pubsub.Topic),
	}

	go p.readLoop(ctx, sharedSub, inbox)
	go p.readLoop(ctx, selfSub, inbox)

	return p, nil
}

// Publish sends msg on the shared "jab" topic.
func (p *PubSub) Publish(msg *Msg) error {
	data, err := Encode(msg)
	if err != nil {
		return err
	}
	return p.sharedTopic.Publish(context.Background(), data)
}

// Send sends msg on peerID's private topic, used for direct replies
// (TransactionResult, WalletDetailsResult).
func (p *PubSub) Send(peerID string, msg *Msg) error {
	data, err := Encode(msg)
	if err != nil {
		return err
	}
	topic, err := p.sendTopic(peerID)
	if err != nil {
		return err
	}
	return topic.Publish(context.Background(), data)
}

func (p *PubSub) sendTopic(peerID string) (*pubsub.Topic, error) {
	p.sendTopicsMu.Lock()
	defer p.sendTopicsMu.Unlock()

	if t, ok := p.sendTopics[peerID]; ok {
		return t, nil
	}
	t, err := p.ps.Join(peerID)
	if err != nil {
		return nil, err
	}
	p.sendTopics[peerID] = t
	return t, nil
}

func (p *PubSub) readLoop(ctx context.Context, sub *pubsub.Subscription, inbox chan *Msg) {
	for {
		raw, err := sub.Next(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			p.logger.Error("pubsub read error", zap.Error(err))
			continue
		}
		if raw.GetFrom() == p.self {
			continue
		}
		if !p.getPeerLimiter(raw.GetFrom()).Allow() {
			p.logger.Warn("peer rate limited", zap.String("peer", raw.GetFrom().String()))
			continue
		}

		msg, err := Decode(raw.Data)
		if err != nil {
			p.logger.Debug("invalid inbound payload", zap.String("peer", raw.GetFrom().String()), zap.Error(err))
			msg = &Msg{
				Type: MsgInvalidPayload,
				InvalidPayload: &InvalidPayloadPayload{
					PeerID: raw.GetFrom().String(),
					Reason: err.Error(),
				},
			}
		}

		select {
		case inbox <- msg:
		default:
			p.logger.Warn("inbox full, dropping message", zap.String("type", string(msg.Type)))
		}
	}
}

func (p *PubSub) getPeerLimiter(peerID peer.ID) *rate.Limiter {
	p.peerLimitersMu.Lock()
	defer p.peerLimitersMu.Unlock()

	if lim, ok := p.peerLimiters[peerID]; ok {
		return lim
	}

	if len(p.peerLimiters) >= 500 {
		for id := range p.peerLimiters {
			delete(p.peerLimiters, id)
			break
		}
	}

	lim := rate.NewLimiter(10, 20)
	p.peerLimiters[peerID] = lim
	return lim
}
