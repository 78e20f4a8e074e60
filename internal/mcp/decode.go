package mcp

import (
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
)

// decode maps a tool call's argument object onto a handler's typed request
// struct. Arguments arrive as map[string]any; round-tripping through JSON
// gives typed fields without per-field assertions, and a wrongly-typed
// argument surfaces as a decode error the handler reports as invalid input.
func decode[T any](req mcp.CallToolRequest) (T, error) {
	var result T
	raw, err := json.Marshal(req.GetArguments())
	if err != nil {
		return result, fmt.Errorf("encode tool arguments: %w", err)
	}
	if err := json.Unmarshal(raw, &result); err != nil {
		return result, fmt.Errorf("decode tool arguments: %w", err)
	}
	return result, nil
}
