package chat

// Command constants for chat commands.
const (
	CmdNew    = "/new"
	CmdChats  = "/chats"
	CmdModels = "/models"
	CmdEdit   = "/edit"
	CmdDelete = "/delete"
	CmdQuit   = "/quit"
	CmdExit   = "/exit"
)
