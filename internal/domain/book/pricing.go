package book

import (
	"math"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// ValidateDiscount 折扣比例必须在[0,100]之间,保证折后价格不为负
func ValidateDiscount(percent float64) error {
	if math.IsNaN(percent) || percent < 0 || percent > 100 {
		return ErrInvalidDiscount
	}
	return nil
}

// DiscountedPrice 计算折后价格(分)
// newPrice = round(price - price*percent/100),0.5进位
func DiscountedPrice(price int64, percent float64) (int64, error) {
	if err := ValidateDiscount(percent); err != nil {
		return 0, err
	}
	p := decimal.NewFromInt(price)
	off := p.Mul(decimal.NewFromFloat(percent)).Div(hundred)
	return p.Sub(off).Round(0).IntPart(), nil
}
