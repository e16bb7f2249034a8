// Package exchange 定义执行落点依赖的最小交易所接口。
package exchange

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"
)

// ErrDisabled 交易所处于 disabled 状态（启动探活失败或熔断）。
var ErrDisabled = errors.New("exchange is disabled")

type Exchange interface {
	// AvgPrice 返回交易对的近期均价。
	AvgPrice(ctx context.Context, symbol string) (decimal.Decimal, error)

	// MarketBuy 以计价币数量（quoteQty，USD[T]）市价买入。
	MarketBuy(ctx context.Context, symbol string, quoteQty decimal.Decimal) (*OrderResponse, error)

	// MarketSell 以基础币数量市价卖出。
	MarketSell(ctx context.Context, symbol string, baseQty decimal.Decimal) (*OrderResponse, error)

	Ping(ctx context.Context) error
}

// OrderResponse 是一次下单回报的规整视图；Raw 保留交易所原始 JSON。
type OrderResponse struct {
	OrderID            string
	Symbol             string
	Status             string
	ExecutedQty        decimal.Decimal
	CumulativeQuoteQty decimal.Decimal
	// TransactTime 毫秒时间戳。
	TransactTime int64
	Raw          []byte
}

const StatusFilled = "FILLED"
