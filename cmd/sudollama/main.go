// Command sudollama is a terminal chat window for a local Ollama model.
package main

import "github.com/sudo-self/sudollama/internal/commands"

func main() {
	commands.Execute()
}
