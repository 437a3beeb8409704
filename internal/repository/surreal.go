package repository

import (
	"encoding/json"
	"fmt"
	"time"

	apperrors "agenda/internal/errors"
)

// statementResult is one statement's slot in a surrealdb query response.
type statementResult struct {
	Status string          `json:"status"`
	Detail string          `json:"detail"`
	Result json.RawMessage `json:"result"`
}

// decodeQuery re-marshals the driver's raw RPC payload and decodes the first
// statement's rows into out. The v0.1 driver hands back untyped JSON, so a
// round-trip through encoding/json is the supported way to get structs out.
func decodeQuery(raw any, out any) error {
	buf, err := json.Marshal(raw)
	if err != nil {
		return fmt.Errorf("encode surrealdb response: %w", err)
	}
	var results []statementResult
	if err := json.Unmarshal(buf, &results); err != nil {
		return fmt.Errorf("decode surrealdb response: %w", err)
	}
	if len(results) == 0 {
		return fmt.Errorf("empty surrealdb response")
	}
	first := results[0]
	if first.Status != "OK" {
		return fmt.Errorf("surrealdb query failed: %s %s", first.Status, first.Detail)
	}
	if out == nil || len(first.Result) == 0 {
		return nil
	}
	return json.Unmarshal(first.Result, out)
}

// storeErr tags transport failures so they surface as StoreUnavailable
// instead of a generic internal error.
func storeErr(op string, err error) error {
	return fmt.Errorf("%w: %s: %v", apperrors.ErrStoreUnavailable, op, err)
}

// surrealTime renders a timestamp for a <datetime> cast in SurrealQL.
func surrealTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}
