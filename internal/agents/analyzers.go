package agents

import (
	"context"

	"saka/internal/cerrors"
	"saka/internal/contract"

	"github.com/go-resty/resty/v2"
)

// 四个专职分析方。请求体相同（AnalysisRequest），响应各自定型并经 schema 校验。

type RiskClient struct {
	http *resty.Client
}

func NewRiskClient(opts Options) *RiskClient {
	return &RiskClient{http: newRestyClient(opts)}
}

func (c *RiskClient) Analyze(ctx context.Context, req contract.AnalysisRequest) (contract.RiskReport, error) {
	const op = "analyzer.risk"
	raw, err := postJSON(ctx, c.http, op, "/analyze", req)
	if err != nil {
		return contract.RiskReport{}, err
	}
	report, err := contract.DecodeRiskReport(raw)
	if err != nil {
		return contract.RiskReport{}, cerrors.Wrap(cerrors.KindCollaboratorContract, op, err)
	}
	return report, nil
}

type TechnicalClient struct {
	http *resty.Client
}

func NewTechnicalClient(opts Options) *TechnicalClient {
	return &TechnicalClient{http: newRestyClient(opts)}
}

func (c *TechnicalClient) Analyze(ctx context.Context, req contract.AnalysisRequest) (contract.TechnicalReport, error) {
	const op = "analyzer.technical"
	raw, err := postJSON(ctx, c.http, op, "/analyze", req)
	if err != nil {
		return contract.TechnicalReport{}, err
	}
	report, err := contract.DecodeTechnicalReport(raw)
	if err != nil {
		return contract.TechnicalReport{}, cerrors.Wrap(cerrors.KindCollaboratorContract, op, err)
	}
	return report, nil
}

type MacroClient struct {
	http *resty.Client
}

func NewMacroClient(opts Options) *MacroClient {
	return &MacroClient{http: newRestyClient(opts)}
}

func (c *MacroClient) Analyze(ctx context.Context, req contract.AnalysisRequest) (contract.MacroReport, error) {
	const op = "analyzer.macro"
	raw, err := postJSON(ctx, c.http, op, "/analyze_events", req)
	if err != nil {
		return contract.MacroReport{}, err
	}
	report, err := contract.DecodeMacroReport(raw)
	if err != nil {
		return contract.MacroReport{}, cerrors.Wrap(cerrors.KindCollaboratorContract, op, err)
	}
	return report, nil
}

type SentimentClient struct {
	http *resty.Client
}

func NewSentimentClient(opts Options) *SentimentClient {
	return &SentimentClient{http: newRestyClient(opts)}
}

func (c *SentimentClient) Analyze(ctx context.Context, req contract.AnalysisRequest) (contract.SentimentReport, error) {
	const op = "analyzer.sentiment"
	raw, err := postJSON(ctx, c.http, op, "/analyze_sentiment", req)
	if err != nil {
		return contract.SentimentReport{}, err
	}
	report, err := contract.DecodeSentimentReport(raw)
	if err != nil {
		return contract.SentimentReport{}, cerrors.Wrap(cerrors.KindCollaboratorContract, op, err)
	}
	return report, nil
}
