package store

import (
	"time"

	"saka/internal/contract"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

// tradeModel 对应 trades 表。回执落库后不可变，只增不改。
type tradeModel struct {
	ID               uint            `gorm:"primaryKey;autoIncrement"`
	OrderID          string          `gorm:"column:order_id;size:64;uniqueIndex"`
	Status           string          `gorm:"size:16"`
	Asset            string          `gorm:"size:32;index"`
	Side             string          `gorm:"size:8"`
	ExecutedPrice    decimal.Decimal `gorm:"column:executed_price;type:decimal(24,8)"`
	ExecutedQuantity decimal.Decimal `gorm:"column:executed_quantity;type:decimal(24,8)"`
	AmountUSD        decimal.Decimal `gorm:"column:amount_usd;type:decimal(24,8)"`
	Timestamp        time.Time       `gorm:"index"`
	RawResponse      datatypes.JSON  `gorm:"column:raw_response"`
	CreatedAt        time.Time       `gorm:"autoCreateTime"`
}

func (tradeModel) TableName() string { return "trades" }

func newTradeModel(r contract.Receipt) tradeModel {
	return tradeModel{
		OrderID:          r.OrderID,
		Status:           string(r.Status),
		Asset:            r.Asset,
		Side:             string(r.Side),
		ExecutedPrice:    r.ExecutedPrice,
		ExecutedQuantity: r.ExecutedQuantity,
		AmountUSD:        r.AmountUSD,
		Timestamp:        r.Timestamp.UTC(),
		RawResponse:      datatypes.JSON(r.RawResponse),
	}
}

func tradeModelToReceipt(m tradeModel) contract.Receipt {
	return contract.Receipt{
		OrderID:          m.OrderID,
		Status:           contract.ReceiptStatus(m.Status),
		Asset:            m.Asset,
		Side:             contract.Side(m.Side),
		ExecutedPrice:    m.ExecutedPrice,
		ExecutedQuantity: m.ExecutedQuantity,
		AmountUSD:        m.AmountUSD,
		Timestamp:        m.Timestamp.UTC(),
		RawResponse:      []byte(m.RawResponse),
	}
}
