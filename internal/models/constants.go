// Package models contains the data types and fixed identifiers shared by sudollama.
package models

// External command invoked for every prompt.
const (
	// DefaultExecutable is the ollama binary looked up on PATH.
	DefaultExecutable = "ollama"

	// RunSubcommand is the ollama subcommand that answers a single prompt.
	RunSubcommand = "run"

	// ModelName is the model every prompt is sent to. It is not configurable.
	ModelName = "sudo-self/coder:latest"
)

// DefaultArgs returns the leading arguments placed before the prompt.
func DefaultArgs() []string {
	return []string{RunSubcommand, ModelName}
}

// Display labels for the two senders
const (
	LabelUser      = "Human"
	LabelAssistant = "Llama"
)

// CodeFence marks an assistant reply that should be shown as a code block.
const CodeFence = "```"
