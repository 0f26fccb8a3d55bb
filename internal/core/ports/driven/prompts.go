package driven

// PromptAnswer names the question answering template. It binds {context}
// and {question}.
const PromptAnswer = "answer"

// PromptStore serves prompt templates by name.
type PromptStore interface {
	// Load returns the named template. Stores fall back to a built-in
	// template for known names rather than failing.
	Load(name string) (string, error)

	// Reload forgets cached templates.
	Reload()
}

// PromptStoreAware is implemented by services whose prompts can be
// replaced at runtime. Without a store they use built-in templates.
type PromptStoreAware interface {
	SetPromptStore(store PromptStore)
}
