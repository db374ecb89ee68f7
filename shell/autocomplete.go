package shell

import (
	"strings"

	"github.com/kballard/go-shellquote"

	"github.com/JimZhouZZY/klotski-sub001/board"
)

// ShellCompleter provides context-aware autocomplete for shell commands
type ShellCompleter struct {
	sc *ShellController
}

func NewShellCompleter(sc *ShellController) *ShellCompleter {
	return &ShellCompleter{sc: sc}
}

// CommandMetadata holds autocomplete information for a command
type CommandMetadata struct {
	Options []string
	Args    []string
}

var commandMetadata = map[string]CommandMetadata{
	"batch": {
		Options: []string{"-n", "-solve", "-seedfile"},
	},
}

var commandNames = []string{
	"show", "moves", "move", "restart", "variants", "shuffle",
	"solve", "hint", "save", "load", "saves", "delete", "batch", "help", "exit",
}

var boolValues = []string{"true", "false"}

// Do implements the readline.AutoComplete interface.
func (c *ShellCompleter) Do(line []rune, pos int) ([][]rune, int) {
	text := string(line[:pos])

	fields, err := shellquote.Split(text)
	if err != nil {
		fields = strings.Fields(text)
	}

	endsWithSpace := len(text) > 0 && text[len(text)-1] == ' '

	var prefix string
	var completions []string

	if len(fields) == 0 || (len(fields) == 1 && !endsWithSpace) {
		// Completing a command name
		if len(fields) == 1 {
			prefix = fields[0]
		}
		completions = commandNames
	} else {
		cmdName := fields[0]

		if !endsWithSpace {
			prefix = fields[len(fields)-1]
		}

		var lastCompleteField string
		if endsWithSpace {
			lastCompleteField = fields[len(fields)-1]
		} else if len(fields) > 1 {
			lastCompleteField = fields[len(fields)-2]
		}

		if strings.HasPrefix(lastCompleteField, "-") {
			switch strings.TrimPrefix(lastCompleteField, "-") {
			case "solve":
				completions = boolValues
			}
		}

		if cmdName == "restart" && completions == nil {
			for _, v := range board.Variants() {
				completions = append(completions, v.Name)
			}
		}

		if completions == nil {
			if metadata, exists := commandMetadata[cmdName]; exists {
				if strings.HasPrefix(prefix, "-") {
					completions = metadata.Options
				} else if len(metadata.Args) > 0 {
					completions = metadata.Args
				} else {
					completions = metadata.Options
				}
			}
		}
	}

	var matches [][]rune
	for _, completion := range completions {
		if strings.HasPrefix(completion, prefix) {
			matches = append(matches, []rune(completion[len(prefix):]))
		}
	}

	return matches, len(prefix)
}
