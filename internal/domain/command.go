package domain

import (
	"strconv"
	"strings"
)

// Arg is an optional command argument. Valid is false when the table cell was
// empty, which is different from a cell holding the empty string.
type Arg struct {
	Value string
	Valid bool
}

// Some returns a present argument
func Some(value string) Arg {
	return Arg{Value: value, Valid: true}
}

// None is the absent argument
var None = Arg{}

// Command is one row of a command table: name, target and value
type Command struct {
	Name   string
	Target Arg
	Value  Arg
	Row    int // 1-based table row, header included
}

// Args returns the present arguments in slot order
func (c Command) Args() []string {
	args := make([]string, 0, 2)
	if c.Target.Valid {
		args = append(args, c.Target.Value)
	}
	if c.Value.Valid {
		args = append(args, c.Value.Value)
	}
	return args
}

// String renders the command the way it is logged: name followed by quoted args
func (c Command) String() string {
	parts := []string{c.Name}
	for _, a := range c.Args() {
		parts = append(parts, strconv.Quote(a))
	}
	return strings.Join(parts, " ")
}
