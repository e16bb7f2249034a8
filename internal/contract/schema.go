package contract

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// 协作方响应的 schema 校验：必填字段强制、数值范围强制、未知字段放行。
// 越界值视为契约违约，由调用方中止本周期，绝不静默截断。

const riskSchemaJSON = `{
	"type": "object",
	"required": ["asset", "risk_level", "volatility", "can_trade"],
	"properties": {
		"asset": {"type": "string", "minLength": 1},
		"risk_level": {"type": "number", "minimum": 0, "maximum": 1},
		"volatility": {"type": "number", "minimum": 0},
		"can_trade": {"type": "boolean"},
		"reason": {"type": "string"}
	}
}`

const technicalSchemaJSON = `{
	"type": "object",
	"required": ["asset", "rsi", "macd_line", "signal_line", "histogram",
		"is_bullish_crossover", "is_bearish_crossover"],
	"properties": {
		"asset": {"type": "string", "minLength": 1},
		"rsi": {"type": "number", "minimum": 0, "maximum": 100},
		"macd_line": {"type": "number"},
		"signal_line": {"type": "number"},
		"histogram": {"type": "number"},
		"is_bullish_crossover": {"type": "boolean"},
		"is_bearish_crossover": {"type": "boolean"}
	}
}`

const macroSchemaJSON = `{
	"type": "object",
	"required": ["asset", "impact"],
	"properties": {
		"asset": {"type": "string", "minLength": 1},
		"impact": {"type": "string", "enum": ["HIGH", "MEDIUM", "LOW"]},
		"event_name": {"type": "string"},
		"summary": {"type": "string"}
	}
}`

const sentimentSchemaJSON = `{
	"type": "object",
	"required": ["asset", "sentiment_score", "confidence", "signal"],
	"properties": {
		"asset": {"type": "string", "minLength": 1},
		"sentiment_score": {"type": "number", "minimum": -1, "maximum": 1},
		"confidence": {"type": "number", "minimum": 0, "maximum": 1},
		"signal": {"type": "string", "enum": ["BUY", "SELL", "HOLD"]}
	}
}`

const approvalSchemaJSON = `{
	"type": "object",
	"required": ["decision_approved"],
	"properties": {
		"decision_approved": {"type": "boolean"},
		"remarks": {"type": "string"}
	}
}`

const sizingSchemaJSON = `{
	"type": "object",
	"required": ["asset", "amount_usd"],
	"properties": {
		"asset": {"type": "string", "minLength": 1},
		"amount_usd": {"type": "number", "exclusiveMinimum": 0},
		"reasoning": {"type": "string"}
	}
}`

var (
	riskSchema      = mustCompileSchema("risk.json", riskSchemaJSON)
	technicalSchema = mustCompileSchema("technical.json", technicalSchemaJSON)
	macroSchema     = mustCompileSchema("macro.json", macroSchemaJSON)
	sentimentSchema = mustCompileSchema("sentiment.json", sentimentSchemaJSON)
	approvalSchema  = mustCompileSchema("approval.json", approvalSchemaJSON)
	sizingSchema    = mustCompileSchema("sizing.json", sizingSchemaJSON)
)

func mustCompileSchema(name, src string) *jsonschema.Schema {
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource(name, strings.NewReader(src)); err != nil {
		panic(fmt.Sprintf("contract: add schema %s: %v", name, err))
	}
	schema, err := compiler.Compile(name)
	if err != nil {
		panic(fmt.Sprintf("contract: compile schema %s: %v", name, err))
	}
	return schema
}

func validateRaw(schema *jsonschema.Schema, raw []byte) error {
	var doc any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return fmt.Errorf("response is not valid JSON: %w", err)
	}
	if err := schema.Validate(doc); err != nil {
		return err
	}
	return nil
}

func DecodeRiskReport(raw []byte) (RiskReport, error) {
	var out RiskReport
	if err := validateRaw(riskSchema, raw); err != nil {
		return out, err
	}
	err := json.Unmarshal(raw, &out)
	return out, err
}

func DecodeTechnicalReport(raw []byte) (TechnicalReport, error) {
	var out TechnicalReport
	if err := validateRaw(technicalSchema, raw); err != nil {
		return out, err
	}
	err := json.Unmarshal(raw, &out)
	return out, err
}

func DecodeMacroReport(raw []byte) (MacroReport, error) {
	var out MacroReport
	if err := validateRaw(macroSchema, raw); err != nil {
		return out, err
	}
	err := json.Unmarshal(raw, &out)
	return out, err
}

func DecodeSentimentReport(raw []byte) (SentimentReport, error) {
	var out SentimentReport
	if err := validateRaw(sentimentSchema, raw); err != nil {
		return out, err
	}
	err := json.Unmarshal(raw, &out)
	return out, err
}

func DecodeApproval(raw []byte) (Approval, error) {
	var out Approval
	if err := validateRaw(approvalSchema, raw); err != nil {
		return out, err
	}
	err := json.Unmarshal(raw, &out)
	return out, err
}

func DecodeSizing(raw []byte) (Sizing, error) {
	var out Sizing
	if err := validateRaw(sizingSchema, raw); err != nil {
		return out, err
	}
	err := json.Unmarshal(raw, &out)
	return out, err
}
