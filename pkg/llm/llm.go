package llm

import "context"

// ChatModel is a minimal abstraction for chat-based LLMs used by the scan
// report enrichment. It hides concrete providers to preserve dependency
// direction; implementations must honor ctx cancellation.
type ChatModel interface {
	Ask(ctx context.Context, systemPrompt, userPrompt string) (string, error)
}
