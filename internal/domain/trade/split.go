package trade

import (
	"github.com/consignhq/backend/internal/domain/shared"
	"github.com/consignhq/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// Split is the division of a sale price between consignor and shop.
// ConsignorAmount plus ShopAmount always equals the sale price exactly.
type Split struct {
	ConsignorAmount valueobject.Money
	ShopAmount      valueobject.Money
}

var hundred = decimal.NewFromInt(100)

// ComputeSplit divides salePrice according to the consignor's split
// percentage. The consignor share is rounded half-up to cents and the
// shop takes the exact remainder, so the two always sum to salePrice.
func ComputeSplit(salePrice valueobject.Money, splitPct decimal.Decimal) (Split, error) {
	if !salePrice.IsPositive() {
		return Split{}, shared.NewDomainError("INVALID_PRICE", "Sale price must be positive")
	}
	if splitPct.IsNegative() || splitPct.GreaterThan(hundred) {
		return Split{}, shared.NewDomainError("INVALID_SPLIT", "Split percentage must be between 0 and 100")
	}

	consignorAmount := salePrice.CalculatePercentage(splitPct).Round(2)
	shopAmount, err := salePrice.Subtract(consignorAmount)
	if err != nil {
		return Split{}, err
	}

	return Split{
		ConsignorAmount: consignorAmount,
		ShopAmount:      shopAmount,
	}, nil
}
