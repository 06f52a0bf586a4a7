// Package input parses the TUI command prompt.
package input

import "strings"

// PromptCommand describes a command suggestion entry.
type PromptCommand struct {
	Name        string
	Description string
}

// Commands understood by the prompt.
var Commands = []PromptCommand{
	{Name: "/add", Description: "Create a meeting from a short note"},
	{Name: "/goto", Description: "Jump to a date (YYYY-MM-DD, today, friday)"},
	{Name: "/today", Description: "Jump to today"},
	{Name: "/week", Description: "Show the week view"},
	{Name: "/month", Description: "Show the month view"},
	{Name: "/refresh", Description: "Reload meetings"},
}

// Parsed is a prompt line split into its command and argument.
// Text without a leading slash is a quick-add note.
type Parsed struct {
	Name string
	Arg  string
}

// Parse splits a prompt line. Plain text becomes an /add command.
func Parse(line string) Parsed {
	line = strings.TrimSpace(line)
	if !strings.HasPrefix(line, "/") {
		return Parsed{Name: "/add", Arg: line}
	}
	name, arg, _ := strings.Cut(line, " ")
	return Parsed{Name: strings.ToLower(name), Arg: strings.TrimSpace(arg)}
}

// Known reports whether name is one of Commands.
func Known(name string) bool {
	for _, c := range Commands {
		if c.Name == name {
			return true
		}
	}
	return false
}

// PromptMatchingCommands returns commands that match the current input prefix.
func PromptMatchingCommands(input string, commands []PromptCommand) []PromptCommand {
	trimmed := strings.TrimSpace(input)
	if !strings.HasPrefix(trimmed, "/") || strings.Contains(input, " ") {
		return nil
	}

	prefix := strings.ToLower(trimmed)
	var matches []PromptCommand
	for _, cmd := range commands {
		if strings.HasPrefix(cmd.Name, prefix) {
			matches = append(matches, cmd)
		}
	}
	return matches
}

// PromptAutocomplete returns the first matching command and whether it exists.
func PromptAutocomplete(input string, commands []PromptCommand) (string, bool) {
	matches := PromptMatchingCommands(input, commands)
	if len(matches) == 0 {
		return "", false
	}
	return matches[0].Name + " ", true
}
