package config

import (
	"fmt"
	"os"
	"sync"

	"github.com/gagliardetto/solana-go"
)

// Config holds all application configuration
type Config struct {
	// Solana configuration
	RPCEndpoint       string
	WalletKeypairPath string

	// Deployed program addresses
	DividendProgramID     solana.PublicKey
	CrowdfundingProgramID solana.PublicKey
	MarketplaceProgramID  solana.PublicKey

	// Platform fee-collection wallet
	PlatformWallet solana.PublicKey

	// Environment
	Environment string // "development" or "production"
}

var (
	instance *Config
	once     sync.Once
)

// Get returns the global configuration instance
func Get() *Config {
	once.Do(func() {
		var err error
		instance, err = load()
		if err != nil {
			panic(fmt.Sprintf("failed to load config: %v", err))
		}
	})
	return instance
}

// load loads configuration from environment variables
func load() (*Config, error) {
	config := &Config{
		RPCEndpoint:       os.Getenv("SOLANA_RPC_ENDPOINT"),
		WalletKeypairPath: os.Getenv("WALLET_KEYPAIR_PATH"),
		Environment:       os.Getenv("ENVIRONMENT"),
	}

	// Set default environment if not specified
	if config.Environment == "" {
		config.Environment = "development"
	}
	if config.RPCEndpoint == "" {
		config.RPCEndpoint = "https://api.devnet.solana.com"
	}

	var err error
	if config.DividendProgramID, err = requirePubkey("DIVIDEND_PROGRAM_ID"); err != nil {
		return nil, err
	}
	if config.CrowdfundingProgramID, err = requirePubkey("CROWDFUNDING_PROGRAM_ID"); err != nil {
		return nil, err
	}
	if config.MarketplaceProgramID, err = requirePubkey("MARKETPLACE_PROGRAM_ID"); err != nil {
		return nil, err
	}
	if config.PlatformWallet, err = requirePubkey("PLATFORM_WALLET"); err != nil {
		return nil, err
	}

	return config, nil
}

func requirePubkey(key string) (solana.PublicKey, error) {
	value := os.Getenv(key)
	if value == "" {
		return solana.PublicKey{}, fmt.Errorf("%s is required", key)
	}
	pk, err := solana.PublicKeyFromBase58(value)
	if err != nil {
		return solana.PublicKey{}, fmt.Errorf("%s is not a valid public key: %w", key, err)
	}
	return pk, nil
}
