package codec

import (
	"fmt"

	"github.com/gagliardetto/solana-go"

	"propvest/models"
)

// Instruction encoders. Each returns identifier‖packed-args ready to be
// used as transaction instruction data.

func checkPropertyID(propertyID string) error {
	if len(propertyID) > models.MaxPropertyIDLen {
		return fmt.Errorf("property id is %d bytes, max %d", len(propertyID), models.MaxPropertyIDLen)
	}
	return nil
}

// EncodeInitializePool packs the initialize_pool payload.
func EncodeInitializePool(propertyID string, frequencyDays uint64) ([]byte, error) {
	if err := checkPropertyID(propertyID); err != nil {
		return nil, err
	}
	w := newWireWriter(ixInitializePool)
	w.str(propertyID)
	w.u64(frequencyDays)
	return w.buf, nil
}

// EncodeDepositDividend packs the deposit_dividend payload.
func EncodeDepositDividend(amount uint64) []byte {
	w := newWireWriter(ixDepositDividend)
	w.u64(amount)
	return w.buf
}

// EncodeStartDistribution packs the start_distribution payload. The epoch
// is not an argument: the program reads it from pool state, and the client
// encodes it only into the distribution record's derived address.
func EncodeStartDistribution() []byte {
	return newWireWriter(ixStartDistribution).buf
}

// EncodeClaimDividend packs the claim_dividend payload.
func EncodeClaimDividend(epoch uint64) []byte {
	w := newWireWriter(ixClaimDividend)
	w.u64(epoch)
	return w.buf
}

// EncodeUpdateAuthority packs the update_authority payload.
func EncodeUpdateAuthority(newAuthority solana.PublicKey) []byte {
	w := newWireWriter(ixUpdateAuthority)
	w.pubkey(newAuthority)
	return w.buf
}

// EncodeInitializePlatform packs the initialize_platform payload.
func EncodeInitializePlatform(platformWallet solana.PublicKey) []byte {
	w := newWireWriter(ixInitializePlatform)
	w.pubkey(platformWallet)
	return w.buf
}

// EncodeAddToWhitelist packs the add_to_whitelist payload.
func EncodeAddToWhitelist() []byte {
	return newWireWriter(ixAddToWhitelist).buf
}

// EncodeRemoveFromWhitelist packs the remove_from_whitelist payload.
func EncodeRemoveFromWhitelist() []byte {
	return newWireWriter(ixRemoveFromWhitelist).buf
}

// EncodeCreateCampaign packs the create_campaign payload in declaration
// order: property id, goal, equity bps, deadline, token price, supply.
func EncodeCreateCampaign(propertyID string, fundingGoal uint64, platformEquityBps uint16, fundingDeadline int64, tokenPrice, totalTokens uint64) ([]byte, error) {
	if err := checkPropertyID(propertyID); err != nil {
		return nil, err
	}
	w := newWireWriter(ixCreateCampaign)
	w.str(propertyID)
	w.u64(fundingGoal)
	w.u16(platformEquityBps)
	w.i64(fundingDeadline)
	w.u64(tokenPrice)
	w.u64(totalTokens)
	return w.buf, nil
}

// EncodeInvest packs the invest payload.
func EncodeInvest(amount uint64) []byte {
	w := newWireWriter(ixInvest)
	w.u64(amount)
	return w.buf
}

// EncodeFinalizeCampaign packs the finalize_campaign payload.
func EncodeFinalizeCampaign() []byte {
	return newWireWriter(ixFinalizeCampaign).buf
}

// EncodeCancelCampaign packs the cancel_campaign payload.
func EncodeCancelCampaign() []byte {
	return newWireWriter(ixCancelCampaign).buf
}

// EncodeClaimRefund packs the claim_refund payload.
func EncodeClaimRefund() []byte {
	return newWireWriter(ixClaimRefund).buf
}

// EncodeClaimTokens packs the claim_tokens payload.
func EncodeClaimTokens() []byte {
	return newWireWriter(ixClaimTokens).buf
}

// EncodeUpdatePlatformWallet packs the update_platform_wallet payload.
func EncodeUpdatePlatformWallet(newWallet solana.PublicKey) []byte {
	w := newWireWriter(ixUpdatePlatformWallet)
	w.pubkey(newWallet)
	return w.buf
}

// EncodeInitializeMarketplace packs the initialize_marketplace payload.
func EncodeInitializeMarketplace(feeBps uint16) []byte {
	w := newWireWriter(ixInitializeMarketplace)
	w.u16(feeBps)
	return w.buf
}

// EncodeCreateListing packs the create_listing payload.
func EncodeCreateListing(amount, pricePerToken uint64) []byte {
	w := newWireWriter(ixCreateListing)
	w.u64(amount)
	w.u64(pricePerToken)
	return w.buf
}

// EncodeBuyTokens packs the buy_tokens payload.
func EncodeBuyTokens(amount uint64) []byte {
	w := newWireWriter(ixBuyTokens)
	w.u64(amount)
	return w.buf
}

// EncodeCancelListing packs the cancel_listing payload.
func EncodeCancelListing() []byte {
	return newWireWriter(ixCancelListing).buf
}

// EncodeUpdateListingPrice packs the update_listing_price payload.
func EncodeUpdateListingPrice(newPricePerToken uint64) []byte {
	w := newWireWriter(ixUpdateListingPrice)
	w.u64(newPricePerToken)
	return w.buf
}

// EncodeUpdateFee packs the update_fee payload.
func EncodeUpdateFee(newFeeBps uint16) []byte {
	w := newWireWriter(ixUpdateFee)
	w.u16(newFeeBps)
	return w.buf
}
