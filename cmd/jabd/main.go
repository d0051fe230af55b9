// Command jabd runs a jab node: it opens the block chain, joins the p2p
// gossip network, and drives the cooperative event loop until the process
// receives a termination signal.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"go.uber.org/zap"

	"github.com/arejula27/jab-go/internal/chain"
	"github.com/arejula27/jab-go/internal/config"
	"github.com/arejula27/jab-go/internal/metrics"
	"github.com/arejula27/jab-go/internal/node"
	"github.com/arejula27/jab-go/internal/p2p"
	"github.com/arejula27/jab-go/internal/wallet"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "jabd:", err)
		os.Exit(1)
	}
}

func run() error {
	logger, err := newLogger()
	if err != nil {
		return fmt.Errorf("create logger: %w", err)
	}
	defer logger.Sync() //nolint:errcheck // best-effort flush on exit

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	hostWallet, err := loadHostWallet(cfg.WalletSecretKeyPath)
	if err != nil {
		return fmt.Errorf("load host wallet: %w", err)
	}
	logger.Info("loaded host wallet", zap.String("address", hostWallet.Address()))

	c, err := chain.Open(filepath.Join(cfg.DatabaseDir, "chain.db"), logger)
	if err != nil {
		return fmt.Errorf("open chain: %w", err)
	}
	defer c.Close()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	n, err := p2p.NewNode(ctx, cfg.DatabaseDir, logger)
	if err != nil {
		return fmt.Errorf("start p2p node: %w", err)
	}
	defer n.Close()

	app := node.NewApp(c, n, hostWallet, logger)

	if err := n.StartDiscovery(); err != nil {
		return fmt.Errorf("start discovery: %w", err)
	}

	go serveMetrics(logger)

	logger.Info("jabd started", zap.String("peer_id", n.ID()))
	app.Run(ctx)
	logger.Info("jabd shutting down")
	return nil
}

func newLogger() (*zap.Logger, error) {
	level := os.Getenv("JAB_LOG_LEVEL")
	cfg := zap.NewProductionConfig()
	if level != "" {
		var l zap.AtomicLevel
		if err := l.UnmarshalText([]byte(level)); err != nil {
			return nil, fmt.Errorf("invalid JAB_LOG_LEVEL %q: %w", level, err)
		}
		cfg.Level = l
	}
	return cfg.Build()
}

func loadHostWallet(secretKeyPath string) (*wallet.Wallet, error) {
	raw, err := os.ReadFile(secretKeyPath)
	if err != nil {
		return nil, err
	}
	if len(raw) != wallet.SecretKeySize {
		return nil, fmt.Errorf("secret key file has %d bytes, want %d", len(raw), wallet.SecretKeySize)
	}
	var secret [wallet.SecretKeySize]byte
	copy(secret[:], raw)
	return wallet.FromSecretBytes(secret)
}

func serveMetrics(logger *zap.Logger) {
	addr := os.Getenv("JAB_METRICS_ADDR")
	if addr == "" {
		addr = ":9090"
	}
	mux := http.NewServeMux()
	mux.Handle("/metrics", metrics.Handler())
	logger.Info("serving metrics", zap.String("addr", addr))
	if err := http.ListenAndServe(addr, mux); err != nil { //nolint:gosec // internal metrics endpoint, no timeouts required
		logger.Error("metrics server stopped", zap.Error(err))
	}
}
