// Package sink 把一条 Execute 决策转换为交易所调用与持久化回执。
//
// 单次执行的状态机：
//
//	NEW → SENT → {FILLED → PERSISTED → DONE} | {REJECTED → FAILED} | {TIMEOUT → UNKNOWN}
//
// UNKNOWN 对本周期是终态：订单可能已成交也可能没有，需要人工介入，
// 绝不自动重发（下单不是幂等操作）。
package sink

import (
	"context"
	"errors"
	"time"

	"saka/internal/cerrors"
	"saka/internal/contract"
	"saka/internal/gateway/exchange"
	"saka/internal/logger"
	symbolpkg "saka/internal/pkg/symbol"

	"github.com/adshao/go-binance/v2/common"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/tidwall/gjson"
)

type ReceiptStore interface {
	Insert(ctx context.Context, r contract.Receipt) error
}

type Sink struct {
	ex    exchange.Exchange
	store ReceiptStore
}

func New(ex exchange.Exchange, store ReceiptStore) *Sink {
	return &Sink{ex: ex, store: store}
}

// Execute 执行决策并返回已持久化的回执。
// 交易所调用每个决策至多一次；持久化失败不会触发第二次下单。
func (s *Sink) Execute(ctx context.Context, dec contract.Execute) (contract.Receipt, error) {
	sym := symbolpkg.Binance.ToExchange(dec.Asset)
	amount := decimal.NewFromFloat(dec.AmountUSD)

	var (
		receipt contract.Receipt
		err     error
	)
	switch dec.Side {
	case contract.SideBuy:
		receipt, err = s.executeBuy(ctx, dec, sym, amount)
	case contract.SideSell:
		receipt, err = s.simulateSell(ctx, dec, sym, amount)
	default:
		return contract.Receipt{}, cerrors.New(cerrors.KindClientInput, "sink.execute",
			"unsupported side %q", dec.Side)
	}
	if err != nil {
		// REJECTED 路径已经构造了 failed 回执，照样落库留痕。
		if receipt.OrderID != "" {
			if perr := s.store.Insert(ctx, receipt); perr != nil {
				logger.Errorf("failed receipt not persisted (order_id=%s): %v", receipt.OrderID, perr)
			}
		}
		return receipt, err
	}

	if perr := s.store.Insert(ctx, receipt); perr != nil {
		// 交易所已成交、回执写不进去：完整落日志供人工对账，但不重发订单。
		logger.Errorf("RECONCILE: receipt persistence failed after fill: order_id=%s asset=%s side=%s price=%s qty=%s amount_usd=%s ts=%s err=%v",
			receipt.OrderID, receipt.Asset, receipt.Side,
			receipt.ExecutedPrice, receipt.ExecutedQuantity, receipt.AmountUSD,
			receipt.Timestamp.Format(time.RFC3339), perr)
		return receipt, cerrors.Wrap(cerrors.KindPersistence, "sink.persist", perr)
	}
	return receipt, nil
}

func (s *Sink) executeBuy(ctx context.Context, dec contract.Execute, sym string, amount decimal.Decimal) (contract.Receipt, error) {
	res, err := s.ex.MarketBuy(ctx, sym, amount)
	if err != nil {
		cycleErr := classifyExchangeErr("exchange.market_buy", err)
		if cerrors.Is(cycleErr, cerrors.KindExchangeRejected) {
			// 4xx 拒单：留一条 failed 回执，订单号由本地生成。
			receipt := contract.Receipt{
				OrderID:   "rej-" + uuid.NewString(),
				Status:    contract.ReceiptStatusFailed,
				Asset:     dec.Asset,
				Side:      dec.Side,
				AmountUSD: amount,
				Timestamp: time.Now().UTC(),
			}
			return receipt, cycleErr
		}
		return contract.Receipt{}, cycleErr
	}
	if res.Status != exchange.StatusFilled {
		receipt := contract.Receipt{
			OrderID:     res.OrderID,
			Status:      contract.ReceiptStatusFailed,
			Asset:       dec.Asset,
			Side:        dec.Side,
			AmountUSD:   amount,
			Timestamp:   time.UnixMilli(res.TransactTime).UTC(),
			RawResponse: res.Raw,
		}
		return receipt, cerrors.New(cerrors.KindExchangeRejected, "exchange.market_buy",
			"terminal status %s for order %s", res.Status, res.OrderID)
	}

	executedQty := res.ExecutedQty
	cumQuote := res.CumulativeQuoteQty
	if cumQuote.IsZero() {
		// 个别网关在成交回报里漏掉 cumulative 字段，这时从 fills 原文兜底。
		if fill := gjson.GetBytes(res.Raw, "fills.0.price"); fill.Exists() {
			if p, perr := decimal.NewFromString(fill.String()); perr == nil {
				cumQuote = p.Mul(executedQty)
			}
		}
	}
	if executedQty.IsZero() || cumQuote.IsZero() {
		return contract.Receipt{}, cerrors.New(cerrors.KindExchangeRejected, "exchange.market_buy",
			"filled order %s reports zero quantity", res.OrderID)
	}

	return contract.Receipt{
		OrderID:          res.OrderID,
		Status:           contract.ReceiptStatusSuccess,
		Asset:            dec.Asset,
		Side:             dec.Side,
		ExecutedPrice:    cumQuote.Div(executedQty),
		ExecutedQuantity: executedQty,
		AmountUSD:        cumQuote,
		Timestamp:        time.UnixMilli(res.TransactTime).UTC(),
		RawResponse:      res.Raw,
	}, nil
}

// simulateSell 记录一笔模拟卖出。交易所不支持按计价币数量市价卖出，
// 余额查询策略未定之前，以均价折算数量写入 test_success 回执。
// 这是已知局限，不是静默失败。
func (s *Sink) simulateSell(ctx context.Context, dec contract.Execute, sym string, amount decimal.Decimal) (contract.Receipt, error) {
	price, err := s.ex.AvgPrice(ctx, sym)
	if err != nil {
		return contract.Receipt{}, classifyExchangeErr("exchange.avg_price", err)
	}
	if price.Cmp(decimal.Zero) <= 0 {
		return contract.Receipt{}, cerrors.New(cerrors.KindExchangeRejected, "exchange.avg_price",
			"non-positive average price for %s", sym)
	}
	logger.Warnf("sell-by-quote is not supported by the exchange, recording simulated receipt for %s", dec.Asset)
	return contract.Receipt{
		OrderID:          "sim-" + uuid.NewString(),
		Status:           contract.ReceiptStatusTestSuccess,
		Asset:            dec.Asset,
		Side:             dec.Side,
		ExecutedPrice:    price,
		ExecutedQuantity: amount.Div(price),
		AmountUSD:        amount,
		Timestamp:        time.Now().UTC(),
	}, nil
}

func classifyExchangeErr(op string, err error) error {
	switch {
	case errors.Is(err, exchange.ErrDisabled):
		return cerrors.Wrap(cerrors.KindExchangeUnavailable, op, err)
	case isAPIError(err):
		return cerrors.Wrap(cerrors.KindExchangeRejected, op, err)
	default:
		// 发送后超时或断连：订单状态未知，必须人工确认。
		logger.Errorf("OPERATOR ALARM: exchange call outcome unknown (%s): %v", op, err)
		return cerrors.Wrap(cerrors.KindExchangeUnknown, op, err)
	}
}

func isAPIError(err error) bool {
	var apiErr *common.APIError
	return errors.As(err, &apiErr)
}
