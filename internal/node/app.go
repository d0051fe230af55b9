// Package node wires the chain, mining roster, and p2p node together into
// the single cooperative event loop that drives a jab daemon.
package node

import (
	"context"

	"github.com/libp2p/go-libp2p/core/peer"
	"go.uber.org/zap"

	"github.com/arejula27/jab-go/internal/chain"
	"github.com/arejula27/jab-go/internal/metrics"
	"github.com/arejula27/jab-go/internal/mining"
	"github.com/arejula27/jab-go/internal/p2p"
	"github.com/arejula27/jab-go/internal/types"
	"github.com/arejula27/jab-go/internal/wallet"
)

// App owns the chain, the miner roster, the p2p node, and the host wallet.
// All state mutation happens inside Run's event loop; nothing else touches
// Chain, Node, or Roster concurrently.
type App struct {
	Chain      *chain.Chain
	Node       *p2p.Node
	Roster     *mining.Roster
	HostWallet *wallet.Wallet
	Logger     *zap.Logger

	scheduler *Scheduler
	periodic  *PeriodicTicker
}

// NewApp constructs an App, seeding the miner roster with the node's own
// peer id as the host slot.
func NewApp(c *chain.Chain, n *p2p.Node, hostWallet *wallet.Wallet, logger *zap.Logger) *App {
	return &App{
		Chain:      c,
		Node:       n,
		Roster:     mining.NewRoster(mining.Miner{ID: n.ID()}),
		HostWallet: hostWallet,
		Logger:     logger,
		scheduler:  NewScheduler(logger),
		periodic:   NewPeriodicTicker(),
	}
}

// Run drives the cooperative event loop until ctx is canceled. It selects
// over the node's swarm events, its decoded inbound messages, the mining
// scheduler, and the periodic sync/bootstrap interval.
func (a *App) Run(ctx context.Context) {
	defer a.scheduler.Stop()
	defer a.periodic.Stop()

	for {
		select {
		case <-ctx.Done():
			return

		case peerID := <-a.Node.ConnectionClosed():
			a.handleConnectionClosed(peerID)

		case msg := <-a.Node.Inbox():
			a.handleMessage(msg)

		case <-a.scheduler.Tick():
			a.handleMiningTick()

		case <-a.periodic.Tick():
			a.handlePeriodicTick()
		}
	}
}

func (a *App) handleConnectionClosed(peerID peer.ID) {
	a.Logger.Info("connection closed, unregistering miner", zap.String("peer", peerID.String()))
	a.Roster.UnregisterMiner(peerID.String())
	a.Node.ExpirePeer(peerID)
	metrics.MinersRegistered.Set(float64(a.Roster.Len()))
}

func (a *App) handleMessage(msg *p2p.Msg) {
	switch msg.Type {
	case p2p.MsgBlock:
		a.onBlockReceived(msg.Block.Block)
	case p2p.MsgRequestBlock:
		a.onBlockRequested(msg.RequestBlock.Index)
	case p2p.MsgRegisterMiners:
		a.onRegisterMiners(msg.RegisterMiners.Miners)
	case p2p.MsgRequestRegisteredMiners:
		a.sendMinersDatabase()
	case p2p.MsgTransaction:
		a.onTransaction(msg.Transaction)
	case p2p.MsgWalletDetails:
		a.onWalletDetails(msg.WalletDetails)
	case p2p.MsgTransactionResult, p2p.MsgWalletDetailsResult:
		// these variants are only meaningful to a client's own event loop.
	case p2p.MsgInvalidPayload:
		a.onInvalidPayload(msg.InvalidPayload)
	default:
		a.Logger.Warn("unhandled message type", zap.String("type", string(msg.Type)))
	}
}

func (a *App) onInvalidPayload(p *p2p.InvalidPayloadPayload) {
	a.Logger.Warn("dropped malformed payload", zap.String("peer", p.PeerID), zap.String("reason", p.Reason))
	metrics.InvalidPayloadsReceived.Inc()
}

func (a *App) onBlockReceived(b types.Block) {
	if err := a.Chain.AddBlock(b); err != nil {
		a.Logger.Error("could not add block", zap.Uint64("index", b.Index), zap.Error(err))
	} else {
		metrics.ChainHeight.Set(float64(b.Index))
	}
	a.requestNextBlock()
}

func (a *App) onBlockRequested(index uint64) {
	block, found, err := a.Chain.GetBlock(index)
	if err != nil {
		a.Logger.Error("failed to read requested block", zap.Uint64("index", index), zap.Error(err))
		return
	}
	if !found {
		a.Logger.Debug("requested block not present", zap.Uint64("index", index))
		return
	}
	if err := a.Node.Publish(&p2p.Msg{Type: p2p.MsgBlock, Block: &p2p.BlockPayload{Block: block}}); err != nil {
		a.Logger.Error("failed to publish requested block", zap.Error(err))
	}
}

func (a *App) onRegisterMiners(miners []string) {
	for _, id := range miners {
		a.Roster.RegisterMiner(mining.Miner{ID: id})
	}
	metrics.MinersRegistered.Set(float64(a.Roster.Len()))
}

func (a *App) sendMinersDatabase() {
	ids := make([]string, 0, a.Roster.Len())
	for _, m := range a.Roster.Miners() {
		ids = append(ids, m.ID)
	}
	if err := a.Node.Publish(&p2p.Msg{Type: p2p.MsgRegisterMiners, RegisterMiners: &p2p.RegisterMinersPayload{Miners: ids}}); err != nil {
		a.Logger.Error("failed to publish miner roster", zap.Error(err))
	}
}

func (a *App) requestRegisteredMiners() {
	if err := a.Node.Publish(&p2p.Msg{Type: p2p.MsgRequestRegisteredMiners, RequestRegisteredMiners: &p2p.RequestRegisteredMinersPayload{}}); err != nil {
		a.Logger.Error("failed to request miner roster", zap.Error(err))
	}
}

func (a *App) onTransaction(req *p2p.TransactionPayload) {
	block, result := AdmitTransaction(a.Chain, a.Roster, a.HostWallet, req)
	if result.OK {
		metrics.TransactionsAccepted.Inc()
		metrics.ChainHeight.Set(float64(block.Index))
	} else {
		metrics.TransactionsRejected.WithLabelValues(string(result.ErrorCode)).Inc()
	}

	if err := a.Node.Send(req.PeerID, &p2p.Msg{Type: p2p.MsgTransactionResult, TransactionResult: result}); err != nil {
		a.Logger.Error("failed to send transaction result", zap.String("peer", req.PeerID), zap.Error(err))
	}
	if result.OK {
		if err := a.Node.Publish(&p2p.Msg{Type: p2p.MsgBlock, Block: &p2p.BlockPayload{Block: *block}}); err != nil {
			a.Logger.Error("failed to broadcast mined block", zap.Error(err))
		}
	}
}

func (a *App) onWalletDetails(req *p2p.WalletDetailsPayload) {
	result := HandleWalletQuery(a.Chain, req)
	if err := a.Node.Send(req.PeerID, &p2p.Msg{Type: p2p.MsgWalletDetailsResult, WalletDetailsResult: result}); err != nil {
		a.Logger.Error("failed to send wallet details", zap.String("peer", req.PeerID), zap.Error(err))
	}
}

func (a *App) handleMiningTick() {
	a.Roster.SetLastBlockMiner()
	if !a.Roster.ShouldMineNewBlock() {
		return
	}

	tx, err := placeholderTransaction(a.HostWallet)
	if err != nil {
		a.Logger.Error("failed to build placeholder transaction", zap.Error(err))
		return
	}

	block, err := a.Chain.GenerateNextBlock(*tx)
	if err != nil {
		a.Logger.Error("failed to generate next block", zap.Error(err))
		return
	}

	metrics.BlocksMined.Inc()
	metrics.ChainHeight.Set(float64(block.Index))
	a.Logger.Info("mined block", zap.Uint64("index", block.Index), zap.String("merkle_root", block.Header.MerkleRootHash))

	if err := a.Node.Publish(&p2p.Msg{Type: p2p.MsgBlock, Block: &p2p.BlockPayload{Block: block}}); err != nil {
		a.Logger.Error("failed to broadcast mined block", zap.Error(err))
	}
}

func (a *App) handlePeriodicTick() {
	a.requestNextBlock()
	metrics.PeersConnected.Set(float64(a.Node.PeerCount()))

	if a.Roster.Len() == 1 {
		a.sendMinersDatabase()
		a.requestRegisteredMiners()
	}
}

func (a *App) requestNextBlock() {
	latest, err := a.Chain.GetLatestBlock()
	if err != nil {
		a.Logger.Error("failed to read latest block", zap.Error(err))
		return
	}
	next := latest.Index + 1
	if err := a.Node.Publish(&p2p.Msg{Type: p2p.MsgRequestBlock, RequestBlock: &p2p.RequestBlockPayload{Index: next}}); err != nil {
		a.Logger.Error("failed to request next block", zap.Uint64("index", next), zap.Error(err))
	}
}
