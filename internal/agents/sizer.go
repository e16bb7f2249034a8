package agents

import (
	"context"

	"saka/internal/cerrors"
	"saka/internal/contract"

	"github.com/go-resty/resty/v2"
)

// SizerClient 调用 Gaia 计算仓位大小。
type SizerClient struct {
	http *resty.Client
}

func NewSizerClient(opts Options) *SizerClient {
	return &SizerClient{http: newRestyClient(opts)}
}

func (c *SizerClient) CalculatePositionSize(ctx context.Context, req contract.SizingRequest) (contract.Sizing, error) {
	const op = "sizer.calculate_position_size"
	raw, err := postJSON(ctx, c.http, op, "/calculate_position_size", req)
	if err != nil {
		return contract.Sizing{}, err
	}
	sizing, err := contract.DecodeSizing(raw)
	if err != nil {
		return contract.Sizing{}, cerrors.Wrap(cerrors.KindCollaboratorContract, op, err)
	}
	return sizing, nil
}
