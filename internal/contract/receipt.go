package contract

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

func init() {
	// 线上金额一律为 JSON 数值，不加引号。
	decimal.MarshalJSONWithoutQuotes = true
}

type ReceiptStatus string

const (
	ReceiptStatusSuccess ReceiptStatus = "success"
	// ReceiptStatusTestSuccess 标记模拟成交（交易所无法表达的路径）。
	ReceiptStatusTestSuccess ReceiptStatus = "test_success"
	ReceiptStatusFailed      ReceiptStatus = "failed"
)

// Receipt 是一笔已执行订单的持久化回执，order_id 为主键，落库后不可变。
// 金额字段使用 decimal 避免二进制浮点误差；线上 JSON 仍为数值。
type Receipt struct {
	OrderID          string          `json:"order_id"`
	Status           ReceiptStatus   `json:"status"`
	Asset            string          `json:"asset"`
	Side             Side            `json:"side"`
	ExecutedPrice    decimal.Decimal `json:"executed_price"`
	ExecutedQuantity decimal.Decimal `json:"executed_quantity"`
	AmountUSD        decimal.Decimal `json:"amount_usd"`
	Timestamp        time.Time       `json:"timestamp"`
	RawResponse      json.RawMessage `json:"raw_response,omitempty"`
}
