package llm

import (
	"context"
)

// debugAnswer is the fixture reply served by the debug backend. It mirrors
// the JSON shape a well-behaved model produces so the parsing stages can be
// verified offline.
const debugAnswer = `{ "sql": "SELECT u.full_name, COUNT(o.id) AS order_count, ` +
	`MAX(o.created_at) AS last_purchase FROM simulator.karpovexpress_users u ` +
	`JOIN simulator.karpovexpress_orders o ON u.id = o.user_id ` +
	`GROUP BY u.full_name ORDER BY order_count DESC LIMIT 5", "error_description": "" }`

// DebugCompleter bypasses network calls entirely and serves a hard-coded
// fixture answer. It exists for offline verification of the response
// parser, never for production use.
type DebugCompleter struct{}

// Complete returns the fixture answer regardless of the prompt.
func (DebugCompleter) Complete(_ context.Context, _ string) (string, error) {
	return debugAnswer, nil
}

// Ensure DebugCompleter implements Completer at compile time.
var _ Completer = DebugCompleter{}
