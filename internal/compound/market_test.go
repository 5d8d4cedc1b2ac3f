package compound

import (
	"testing"

	"yieldpool/core"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMarket() *core.Market {
	return &core.Market{
		AssetID:          "asset",
		CTokenAssetID:    "ctoken",
		TotalCash:        d("10000000000000000000"),
		TotalBorrows:     d("5000000000000000000"),
		CTokens:          d("750000000000000000000"),
		InitExchangeRate: d("0.02"),
		ReserveFactor:    d("0.1"),
		BaseRate:         d("0.025"),
		Multiplier:       d("0.2"),
		JumpMultiplier:   d("2"),
		Kink:             d("0.8"),
		BlockNumber:      100,
	}
}

func TestAccrueInterest(t *testing.T) {
	market := newMarket()
	AccrueInterest(market, 100)
	assert.Equal(t, "0.02", market.ExchangeRate.String())
	assert.Equal(t, "5000000000000000000", market.TotalBorrows.String())

	before := market.ExchangeRate
	AccrueInterest(market, 200)
	assert.Equal(t, int64(200), market.BlockNumber)
	assert.True(t, market.TotalBorrows.GreaterThan(d("5000000000000000000")))
	assert.True(t, market.Reserves.IsPositive())
	assert.True(t, market.ExchangeRate.GreaterThan(before))
	assert.True(t, market.BorrowIndex.GreaterThan(d("1")))

	// not going back in time
	borrows := market.TotalBorrows
	AccrueInterest(market, 150)
	assert.Equal(t, int64(200), market.BlockNumber)
	assert.True(t, market.TotalBorrows.Equal(borrows))
}

func TestMintRedeem(t *testing.T) {
	market := newMarket()
	AccrueInterest(market, 100)

	ctokens, err := Mint(market, d("1000000000000000000"))
	require.NoError(t, err)
	assert.Equal(t, "50000000000000000000", ctokens.String())
	assert.Equal(t, "11000000000000000000", market.TotalCash.String())
	assert.Equal(t, "0.02", market.ExchangeRate.String())

	burned, err := Redeem(market, d("1000000000000000000"))
	require.NoError(t, err)
	assert.Equal(t, ctokens.String(), burned.String())
	assert.Equal(t, "10000000000000000000", market.TotalCash.String())

	_, err = Mint(market, d("0"))
	assert.Equal(t, ErrMintTooSmall, err)

	_, err = Redeem(market, d("20000000000000000000"))
	assert.Equal(t, ErrRedeemNotAllowed, err)
}

func TestMintNeverUndervalues(t *testing.T) {
	market := newMarket()
	AccrueInterest(market, 5000)

	amount := d("123456789012345678")
	ctokens, err := Mint(market, amount)
	require.NoError(t, err)
	assert.True(t, ValueOf(market, ctokens).GreaterThanOrEqual(amount))
}

func TestHolderValueAcrossMintRedeem(t *testing.T) {
	for _, blocks := range []int64{0, 1, 777, 200000} {
		for _, amount := range []string{"1", "777", "100000000", "123456789", "1000000000000000000"} {
			t.Run(amount, func(t *testing.T) {
				market := newMarket()
				AccrueInterest(market, 100+blocks)

				// an existing holder
				position, err := Mint(market, d("3333333333333333333"))
				require.NoError(t, err)
				before := ValueOf(market, position)

				minted, err := Mint(market, d(amount))
				require.NoError(t, err)
				position = position.Add(minted)
				afterMint := ValueOf(market, position)
				assert.True(t, afterMint.GreaterThanOrEqual(before.Add(d(amount))), "%s < %s + %s", afterMint, before, amount)

				burned, err := Redeem(market, d(amount))
				require.NoError(t, err)
				require.True(t, burned.LessThanOrEqual(position))
				position = position.Sub(burned)
				afterRedeem := ValueOf(market, position)
				assert.True(t, afterRedeem.GreaterThanOrEqual(afterMint.Sub(d(amount))), "%s < %s - %s", afterRedeem, afterMint, amount)
			})
		}
	}
}

func TestValueOfEmptyMarket(t *testing.T) {
	market := &core.Market{InitExchangeRate: d("0.02")}
	assert.True(t, ValueOf(market, d("100")).IsZero())

	ctokens, err := Mint(market, d("3"))
	require.NoError(t, err)
	assert.Equal(t, "150", ctokens.String())
	assert.Equal(t, "3", ValueOf(market, ctokens).String())
}
