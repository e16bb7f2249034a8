// Package cerrors 定义决策周期的错误分类，供传输层映射为 HTTP 状态码。
package cerrors

import (
	"errors"
	"fmt"
	"net/http"
)

type Kind int

const (
	KindUnknown Kind = iota
	// KindClientInput 调用方请求不合法。
	KindClientInput
	// KindCollaboratorUnavailable 分析/顾问/仓位服务网络失败或 5xx。
	KindCollaboratorUnavailable
	// KindCollaboratorContract 响应可解析但违反 schema 约定。
	KindCollaboratorContract
	// KindExchangeRejected 交易所返回终态非成交或 4xx。
	KindExchangeRejected
	// KindExchangeUnknown 下单后超时/断连，订单状态未知。
	KindExchangeUnknown
	// KindExchangeUnavailable 交易所处于 disabled 状态。
	KindExchangeUnavailable
	// KindPersistence 成交后回执写入失败。
	KindPersistence
	// KindTimeout 周期整体或单次调用超时。
	KindTimeout
	// KindConfig 启动配置缺失或非法，进程不应提供服务。
	KindConfig
)

func (k Kind) String() string {
	switch k {
	case KindClientInput:
		return "client_input"
	case KindCollaboratorUnavailable:
		return "collaborator_unavailable"
	case KindCollaboratorContract:
		return "collaborator_contract"
	case KindExchangeRejected:
		return "exchange_rejected"
	case KindExchangeUnknown:
		return "exchange_unknown"
	case KindExchangeUnavailable:
		return "exchange_unavailable"
	case KindPersistence:
		return "persistence"
	case KindTimeout:
		return "timeout"
	case KindConfig:
		return "config"
	default:
		return "unknown"
	}
}

// HTTPStatus 返回该分类对同步调用方的表面状态码。
func (k Kind) HTTPStatus() int {
	switch k {
	case KindClientInput:
		return http.StatusBadRequest
	case KindCollaboratorUnavailable, KindCollaboratorContract, KindExchangeRejected:
		return http.StatusBadGateway
	case KindExchangeUnavailable:
		return http.StatusServiceUnavailable
	case KindExchangeUnknown, KindTimeout:
		return http.StatusGatewayTimeout
	case KindPersistence:
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}

type Error struct {
	Kind Kind
	// Op 标识出错的环节，例如 "analyzer.sentiment" 或 "exchange.market_buy"。
	Op  string
	Err error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: %s", e.Op, e.Kind)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

func New(kind Kind, op string, format string, args ...any) *Error {
	return &Error{Kind: kind, Op: op, Err: fmt.Errorf(format, args...)}
}

func Wrap(kind Kind, op string, err error) *Error {
	return &Error{Kind: kind, Op: op, Err: err}
}

// KindOf 提取错误分类，无法识别时返回 KindUnknown。
func KindOf(err error) Kind {
	var ce *Error
	if errors.As(err, &ce) {
		return ce.Kind
	}
	return KindUnknown
}

func Is(err error, kind Kind) bool {
	return KindOf(err) == kind
}
