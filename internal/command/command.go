package command

import "errors"

// Command errors.
var (
	// ErrUnknownCommand indicates no command is registered under a name.
	ErrUnknownCommand = errors.New("unknown command")

	// ErrDuplicateCommand indicates a name is already registered.
	ErrDuplicateCommand = errors.New("command already registered")

	// ErrInvalidCommand indicates a command without a name or handler.
	ErrInvalidCommand = errors.New("invalid command")
)

// Handler runs a command with its parameters.
type Handler func(params Params) error

// Command is a named, executable application action.
type Command struct {
	// Name is the stable identifier used by shortcuts and menus.
	Name string

	// Description is shown in shortcut listings.
	Description string

	// Run executes the command.
	Run Handler
}

// New creates a command.
func New(name, description string, run Handler) *Command {
	return &Command{Name: name, Description: description, Run: run}
}

// Execute runs the command. Nil params are passed as empty params.
func (c *Command) Execute(params Params) error {
	if params == nil {
		params = Params{}
	}
	return c.Run(params)
}
