// Package codec hand-packs instruction payloads for, and decodes account
// blobs from, the three on-chain programs. The wire format is fixed by an
// external ABI: 8-byte discriminator tags, little-endian fixed-width
// integers, and 4-byte-length-prefixed strings, with no padding, alignment
// or reordering.
package codec

// Discriminator is the fixed 8-byte tag prefixing every instruction
// payload and account blob. Instruction tags are
// sha256("global:<instruction_name>")[0:8] and account tags are
// sha256("account:<StructName>")[0:8]. The values are pinned here as
// constants and never recomputed at call time; discriminator_test.go
// re-derives each one from the hash.
type Discriminator [8]byte

var (
	ixInitializePool        = Discriminator{0x5f, 0xb4, 0x0a, 0xac, 0x54, 0xae, 0xe8, 0x28}
	ixDepositDividend       = Discriminator{0xcb, 0x0a, 0x26, 0xd2, 0x78, 0x56, 0x92, 0x57}
	ixStartDistribution     = Discriminator{0x76, 0xe6, 0xd7, 0x4b, 0x53, 0x02, 0xa3, 0x23}
	ixClaimDividend         = Discriminator{0x0f, 0x1d, 0xcf, 0x78, 0x99, 0xb2, 0xa4, 0x5b}
	ixUpdateAuthority       = Discriminator{0x20, 0x2e, 0x40, 0x1c, 0x95, 0x4b, 0xf3, 0x58}
	ixInitializePlatform    = Discriminator{0x77, 0xc9, 0x65, 0x2d, 0x4b, 0x7a, 0x59, 0x03}
	ixAddToWhitelist        = Discriminator{0x9d, 0xd3, 0x34, 0x36, 0x90, 0x51, 0x05, 0x37}
	ixRemoveFromWhitelist   = Discriminator{0x07, 0x90, 0xd8, 0xef, 0xf3, 0xec, 0xc1, 0xeb}
	ixCreateCampaign        = Discriminator{0x6f, 0x83, 0xbb, 0x62, 0xa0, 0xc1, 0x72, 0xf4}
	ixInvest                = Discriminator{0x0d, 0xf5, 0xb4, 0x67, 0xfe, 0xb6, 0x79, 0x04}
	ixFinalizeCampaign      = Discriminator{0xf1, 0x4c, 0xc9, 0xdd, 0x21, 0xde, 0xdc, 0x8a}
	ixCancelCampaign        = Discriminator{0x42, 0x0a, 0x20, 0x8a, 0x7a, 0x24, 0x86, 0xca}
	ixClaimRefund           = Discriminator{0x0f, 0x10, 0x1e, 0xa1, 0xff, 0xe4, 0x61, 0x3c}
	ixClaimTokens           = Discriminator{0x6c, 0xd8, 0xd2, 0xe7, 0x00, 0xd4, 0x2a, 0x40}
	ixUpdatePlatformWallet  = Discriminator{0x4c, 0xb7, 0x06, 0x3a, 0x84, 0x38, 0xab, 0x9c}
	ixInitializeMarketplace = Discriminator{0x2f, 0x51, 0x40, 0x00, 0x60, 0x38, 0x69, 0x07}
	ixCreateListing         = Discriminator{0x12, 0xa8, 0x2d, 0x18, 0xbf, 0x1f, 0x75, 0x36}
	ixBuyTokens             = Discriminator{0xbd, 0x15, 0xe6, 0x85, 0xf7, 0x02, 0x6e, 0x2a}
	ixCancelListing         = Discriminator{0x29, 0xb7, 0x32, 0xe8, 0xe6, 0xe9, 0x9d, 0x46}
	ixUpdateListingPrice    = Discriminator{0x67, 0x50, 0xb8, 0x50, 0x9f, 0x18, 0x5e, 0x8a}
	ixUpdateFee             = Discriminator{0xe8, 0xfd, 0xc3, 0xf7, 0x94, 0xd4, 0x49, 0xde}
)

var (
	accDividendPool       = Discriminator{0xb9, 0x6f, 0x0c, 0xd4, 0x65, 0x7b, 0xef, 0x7a}
	accDistributionRecord = Discriminator{0x1c, 0x4e, 0x94, 0xd8, 0x83, 0x65, 0x5b, 0x97}
	accClaimRecord        = Discriminator{0x39, 0xe5, 0x00, 0x09, 0x41, 0x3e, 0x60, 0x07}
	accPlatformConfig     = Discriminator{0xa0, 0x4e, 0x80, 0x00, 0xf8, 0x53, 0xe6, 0xa0}
	accWhitelistEntry     = Discriminator{0x33, 0x46, 0xad, 0x51, 0xdb, 0xc0, 0xea, 0x3e}
	accCampaign           = Discriminator{0x32, 0x28, 0x31, 0x0b, 0x9d, 0xdc, 0xe5, 0xc0}
	accInvestorRecord     = Discriminator{0xaa, 0x90, 0x27, 0x44, 0xb2, 0x1f, 0xc2, 0x75}
	accMarketplace        = Discriminator{0x46, 0xde, 0x29, 0x3e, 0x4e, 0x03, 0x20, 0xae}
	accListing            = Discriminator{0xda, 0x20, 0x32, 0x49, 0x2b, 0x86, 0x1a, 0x3a}
)
