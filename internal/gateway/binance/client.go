// Package binance 基于 go-binance 现货 SDK 实现 exchange.Exchange。
package binance

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"saka/internal/gateway/exchange"
	"saka/internal/logger"
	"saka/internal/pkg/circuit"

	gobinance "github.com/adshao/go-binance/v2"
	"github.com/shopspring/decimal"
	"golang.org/x/time/rate"
)

type Client struct {
	cfg     Config
	api     *gobinance.Client
	breaker *circuit.Breaker
	limiter *rate.Limiter
}

var _ exchange.Exchange = (*Client)(nil)

func New(cfg Config) *Client {
	final := cfg.withDefaults()
	gobinance.UseTestnet = final.Testnet
	api := gobinance.NewClient(final.APIKey, final.APISecret)
	api.HTTPClient = &http.Client{Timeout: final.HTTPTimeout}
	return &Client{
		cfg:     final,
		api:     api,
		breaker: circuit.NewBreaker("binance", final.BreakerThreshold, final.BreakerCooldown),
		limiter: rate.NewLimiter(rate.Limit(final.RequestsPerSecond), 1),
	}
}

// Start 启动探活。不可达时进入 disabled 状态：此后每次调用返回 ErrDisabled，
// 直到冷却期后的探测请求成功。凭证轮换需要重启进程。
func (c *Client) Start(ctx context.Context) error {
	if err := c.Ping(ctx); err != nil {
		c.breaker.TripOpen()
		logger.Errorf("exchange unreachable at startup, entering disabled state: %v", err)
		return nil
	}
	logger.Infof("exchange ping ok (testnet=%t)", c.cfg.Testnet)
	return nil
}

func (c *Client) guard(ctx context.Context) error {
	if !c.breaker.Allow() {
		return exchange.ErrDisabled
	}
	return c.limiter.Wait(ctx)
}

func (c *Client) record(err error) {
	if err != nil {
		c.breaker.RecordFailure()
		return
	}
	c.breaker.RecordSuccess()
}

func (c *Client) Ping(ctx context.Context) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return err
	}
	err := c.api.NewPingService().Do(ctx)
	c.record(err)
	return err
}

func (c *Client) AvgPrice(ctx context.Context, sym string) (decimal.Decimal, error) {
	if err := c.guard(ctx); err != nil {
		return decimal.Zero, err
	}
	res, err := c.api.NewAveragePriceService().Symbol(sym).Do(ctx)
	c.record(err)
	if err != nil {
		return decimal.Zero, fmt.Errorf("avg price %s: %w", sym, err)
	}
	price, err := decimal.NewFromString(res.Price)
	if err != nil {
		return decimal.Zero, fmt.Errorf("avg price %s: bad price %q: %w", sym, res.Price, err)
	}
	return price, nil
}

func (c *Client) MarketBuy(ctx context.Context, sym string, quoteQty decimal.Decimal) (*exchange.OrderResponse, error) {
	if err := c.guard(ctx); err != nil {
		return nil, err
	}
	res, err := c.api.NewCreateOrderService().
		Symbol(sym).
		Side(gobinance.SideTypeBuy).
		Type(gobinance.OrderTypeMarket).
		QuoteOrderQty(quoteQty.String()).
		Do(ctx)
	c.record(err)
	if err != nil {
		return nil, fmt.Errorf("market buy %s: %w", sym, err)
	}
	return normalizeOrder(res)
}

func (c *Client) MarketSell(ctx context.Context, sym string, baseQty decimal.Decimal) (*exchange.OrderResponse, error) {
	if err := c.guard(ctx); err != nil {
		return nil, err
	}
	res, err := c.api.NewCreateOrderService().
		Symbol(sym).
		Side(gobinance.SideTypeSell).
		Type(gobinance.OrderTypeMarket).
		Quantity(baseQty.String()).
		Do(ctx)
	c.record(err)
	if err != nil {
		return nil, fmt.Errorf("market sell %s: %w", sym, err)
	}
	return normalizeOrder(res)
}

func normalizeOrder(res *gobinance.CreateOrderResponse) (*exchange.OrderResponse, error) {
	raw, err := json.Marshal(res)
	if err != nil {
		raw = nil
	}
	executedQty, err := decimal.NewFromString(res.ExecutedQuantity)
	if err != nil {
		return nil, fmt.Errorf("order %d: bad executed quantity %q: %w", res.OrderID, res.ExecutedQuantity, err)
	}
	cumQuote, err := decimal.NewFromString(res.CummulativeQuoteQuantity)
	if err != nil {
		return nil, fmt.Errorf("order %d: bad cumulative quote qty %q: %w", res.OrderID, res.CummulativeQuoteQuantity, err)
	}
	return &exchange.OrderResponse{
		OrderID:            strconv.FormatInt(res.OrderID, 10),
		Symbol:             res.Symbol,
		Status:             string(res.Status),
		ExecutedQty:        executedQty,
		CumulativeQuoteQty: cumQuote,
		TransactTime:       res.TransactTime,
		Raw:                raw,
	}, nil
}
