package domain

// Console prompts used both when echoing slide code and when reading input.
const (
	PrimaryPrompt      = ">>> "
	ContinuationPrompt = "... "
)
