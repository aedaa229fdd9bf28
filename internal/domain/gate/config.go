package gate

import (
	"strings"

	"github.com/tidwall/gjson"
)

// PayGateConfig is the parsed config of a pay gate
type PayGateConfig struct {
	Provider    string
	GateActions []string
	PriceID     string
	LookupKey   string
	BillingMode BillingMode
}

// TokenGateConfig is the parsed config of a token gate. Only the action list
// takes part in evaluation; the chain fields are carried for diagnostics.
type TokenGateConfig struct {
	GateActions     []string
	Chain           string
	ContractAddress string
	TokenStandard   string
	TokenID         string
	MinBalance      string
}

// ParsePayGateConfig parses a pay gate config column. Unknown or malformed
// fields degrade to zero values; it never fails.
func ParsePayGateConfig(raw []byte) PayGateConfig {
	doc := parseObject(raw)

	cfg := PayGateConfig{
		Provider:    strings.TrimSpace(stringField(doc, "provider")),
		GateActions: NormalizeActionsJSON(rawField(doc, "gate_actions")),
		PriceID:     strings.TrimSpace(stringField(doc, "price_id")),
		LookupKey:   strings.TrimSpace(stringField(doc, "lookup_key")),
		BillingMode: BillingMode(strings.TrimSpace(stringField(doc, "billing_mode"))),
	}
	if cfg.Provider == "" {
		cfg.Provider = ProviderStripe
	}
	return cfg
}

// ParseTokenGateConfig parses a token gate config column. When gate_actions is
// empty the legacy singular "action" field is used instead.
func ParseTokenGateConfig(raw []byte) TokenGateConfig {
	doc := parseObject(raw)

	actions := NormalizeActionsJSON(rawField(doc, "gate_actions"))
	if len(actions) == 0 {
		actions = NormalizeActionsJSON(rawField(doc, "action"))
	}

	return TokenGateConfig{
		GateActions:     actions,
		Chain:           strings.TrimSpace(stringField(doc, "chain")),
		ContractAddress: strings.TrimSpace(stringField(doc, "contract_address")),
		TokenStandard:   strings.TrimSpace(stringField(doc, "token_standard")),
		TokenID:         strings.TrimSpace(stringField(doc, "token_id")),
		MinBalance:      strings.TrimSpace(doc.Get("min_balance").String()),
	}
}

// parseObject returns the config document, or an empty result when the column
// is not a JSON object.
func parseObject(raw []byte) gjson.Result {
	if len(raw) == 0 || !gjson.ValidBytes(raw) {
		return gjson.Result{}
	}
	doc := gjson.ParseBytes(raw)
	if !doc.IsObject() {
		return gjson.Result{}
	}
	return doc
}

// stringField reads key only when it holds a JSON string.
func stringField(doc gjson.Result, key string) string {
	v := doc.Get(key)
	if v.Type != gjson.String {
		return ""
	}
	return v.Str
}

// rawField returns the undecoded JSON of key, or nil when it is absent.
func rawField(doc gjson.Result, key string) []byte {
	v := doc.Get(key)
	if !v.Exists() {
		return nil
	}
	return []byte(v.Raw)
}
