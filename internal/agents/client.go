// Package agents 提供对各协作方（分析、顾问、仓位）的类型化 HTTP 客户端。
// 客户端内不做重试，重试策略归调用方所有。
package agents

import (
	"context"
	"errors"
	"net"
	"strings"
	"time"

	"saka/internal/cerrors"
	"saka/internal/pkg/text"

	"github.com/go-resty/resty/v2"
)

// HeaderInternalAPIKey 内部服务间鉴权头。
const HeaderInternalAPIKey = "X-Internal-API-Key"

const maxErrorBodyLen = 256

// Options 描述一个协作方端点。
type Options struct {
	BaseURL string
	APIKey  string
	Timeout time.Duration
}

func newRestyClient(opts Options) *resty.Client {
	client := resty.New()
	client.SetBaseURL(strings.TrimRight(strings.TrimSpace(opts.BaseURL), "/"))
	if opts.Timeout > 0 {
		client.SetTimeout(opts.Timeout)
	}
	client.SetHeader("Content-Type", "application/json")
	client.SetHeader(HeaderInternalAPIKey, opts.APIKey)
	return client
}

// postJSON 发送请求并返回原始响应体；网络失败、超时与非 2xx 分别归类包装。
func postJSON(ctx context.Context, client *resty.Client, op, path string, body any) ([]byte, error) {
	resp, err := client.R().SetContext(ctx).SetBody(body).Post(path)
	if err != nil {
		if isTimeout(err) {
			return nil, cerrors.Wrap(cerrors.KindTimeout, op, err)
		}
		return nil, cerrors.Wrap(cerrors.KindCollaboratorUnavailable, op, err)
	}
	if resp.StatusCode()/100 != 2 {
		return nil, cerrors.New(cerrors.KindCollaboratorUnavailable, op,
			"unexpected status %d: %s", resp.StatusCode(), text.Truncate(strings.TrimSpace(resp.String()), maxErrorBodyLen))
	}
	return resp.Body(), nil
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}

