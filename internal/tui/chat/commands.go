package chat

import "strings"

// Command represents a chat command with autocomplete support.
type Command struct {
	Name        string
	Description string
}

// AvailableCommands returns all available chat commands.
func AvailableCommands() []Command {
	return []Command{
		{Name: CmdChats, Description: "Browse saved conversations"},
		{Name: CmdDelete, Description: "Delete the current conversation"},
		{Name: CmdEdit, Description: "Edit your last message and regenerate"},
		{Name: CmdExit, Description: "Exit the application"},
		{Name: CmdModels, Description: "Change the model"},
		{Name: CmdNew, Description: "Start a new conversation"},
		{Name: CmdQuit, Description: "Exit the application"},
	}
}

// FilterCommands returns commands matching the given prefix.
func FilterCommands(prefix string) []Command {
	if prefix == "" || prefix[0] != '/' {
		return nil
	}
	all := AvailableCommands()
	if prefix == "/" {
		return all
	}
	var filtered []Command
	lowerPrefix := strings.ToLower(prefix)
	for _, cmd := range all {
		if strings.HasPrefix(strings.ToLower(cmd.Name), lowerPrefix) {
			filtered = append(filtered, cmd)
		}
	}
	return filtered
}
