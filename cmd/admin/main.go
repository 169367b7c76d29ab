package main

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"github.com/gagliardetto/solana-go"
	log "github.com/sirupsen/logrus"

	"propvest/config"
	"propvest/infrastructure"
	"propvest/service"
)

const usage = `usage: admin <command> [args]

commands:
  init-platform                       create the platform config singleton
  whitelist-add <wallet>              grant a wallet campaign-creation rights
  whitelist-remove <wallet>           revoke a wallet's rights
  init-marketplace <fee-bps>          create the marketplace singleton
`

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	if err := run(context.Background(), os.Args[1], os.Args[2:]); err != nil {
		log.WithError(err).Fatal("admin command failed")
	}
}

func run(ctx context.Context, command string, args []string) error {
	cfg := config.Get()

	wallet, err := solana.PrivateKeyFromSolanaKeygenFile(cfg.WalletKeypairPath)
	if err != nil {
		return fmt.Errorf("failed to load wallet keypair: %w", err)
	}
	admin := wallet.PublicKey()

	gateway := infrastructure.NewSolanaGateway(cfg.RPCEndpoint, wallet)
	publisher := infrastructure.NewNoopEventPublisher()

	crowdfunding := service.NewCrowdfundingService(gateway, publisher, cfg.CrowdfundingProgramID, cfg.PlatformWallet)
	marketplace := service.NewMarketplaceService(gateway, publisher, cfg.MarketplaceProgramID, cfg.PlatformWallet)

	switch command {
	case "init-platform":
		sig, err := crowdfunding.InitializePlatform(ctx, admin, cfg.PlatformWallet)
		if err != nil {
			return err
		}
		log.WithField("signature", sig).Info("platform initialized")

	case "whitelist-add":
		target, err := walletArg(args)
		if err != nil {
			return err
		}
		sig, err := crowdfunding.AddToWhitelist(ctx, admin, target)
		if err != nil {
			return err
		}
		log.WithFields(log.Fields{"wallet": target, "signature": sig}).Info("wallet whitelisted")

	case "whitelist-remove":
		target, err := walletArg(args)
		if err != nil {
			return err
		}
		sig, err := crowdfunding.RemoveFromWhitelist(ctx, admin, target)
		if err != nil {
			return err
		}
		log.WithFields(log.Fields{"wallet": target, "signature": sig}).Info("wallet removed from whitelist")

	case "init-marketplace":
		if len(args) < 1 {
			return fmt.Errorf("init-marketplace requires a fee in basis points")
		}
		feeBps, err := strconv.ParseUint(args[0], 10, 16)
		if err != nil {
			return fmt.Errorf("invalid fee %q: %w", args[0], err)
		}
		sig, err := marketplace.InitializeMarketplace(ctx, admin, uint16(feeBps))
		if err != nil {
			return err
		}
		log.WithFields(log.Fields{"feeBps": feeBps, "signature": sig}).Info("marketplace initialized")

	default:
		fmt.Fprint(os.Stderr, usage)
		return fmt.Errorf("unknown command %q", command)
	}

	return nil
}

func walletArg(args []string) (solana.PublicKey, error) {
	if len(args) < 1 {
		return solana.PublicKey{}, fmt.Errorf("a wallet address is required")
	}
	pk, err := solana.PublicKeyFromBase58(args[0])
	if err != nil {
		return solana.PublicKey{}, fmt.Errorf("invalid wallet address %q: %w", args[0], err)
	}
	return pk, nil
}
