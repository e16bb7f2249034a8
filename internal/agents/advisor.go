package agents

import (
	"context"

	"saka/internal/cerrors"
	"saka/internal/contract"

	"github.com/go-resty/resty/v2"
)

// AdvisorClient 调用 Polaris 顾问审查交易提案。
type AdvisorClient struct {
	http *resty.Client
}

func NewAdvisorClient(opts Options) *AdvisorClient {
	return &AdvisorClient{http: newRestyClient(opts)}
}

func (c *AdvisorClient) ReviewTrade(ctx context.Context, proposal contract.TradeProposal) (contract.Approval, error) {
	const op = "advisor.review_trade"
	raw, err := postJSON(ctx, c.http, op, "/review_trade", proposal)
	if err != nil {
		return contract.Approval{}, err
	}
	approval, err := contract.DecodeApproval(raw)
	if err != nil {
		return contract.Approval{}, cerrors.Wrap(cerrors.KindCollaboratorContract, op, err)
	}
	return approval, nil
}
