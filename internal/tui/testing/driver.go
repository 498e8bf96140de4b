package testing

import (
	"regexp"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

var ansiRegex = regexp.MustCompile(`\x1b\[[0-9;]*[a-zA-Z]`)

// StripANSI removes all ANSI escape codes from a string.
func StripANSI(s string) string {
	return ansiRegex.ReplaceAllString(s, "")
}

// ContainsInOrder checks if the output contains all specified strings in order.
func ContainsInOrder(output string, expected ...string) bool {
	lastIndex := 0
	for _, exp := range expected {
		index := strings.Index(output[lastIndex:], exp)
		if index == -1 {
			return false
		}
		lastIndex += index + len(exp)
	}
	return true
}

// Driver feeds messages to a model without a running program.
type Driver struct {
	Model   tea.Model
	LastCmd tea.Cmd
}

// NewDriver wraps model.
func NewDriver(model tea.Model) *Driver {
	return &Driver{Model: model}
}

// Send applies each message in turn and keeps the last returned command.
func (d *Driver) Send(msgs ...tea.Msg) *Driver {
	for _, msg := range msgs {
		d.Model, d.LastCmd = d.Model.Update(msg)
	}
	return d
}

// Resolve runs the last command and feeds its message back to the model.
// It returns the message, or nil when there was no command. Only use it
// for commands that do not sleep, such as store writes.
func (d *Driver) Resolve() tea.Msg {
	if d.LastCmd == nil {
		return nil
	}
	msg := d.LastCmd()
	d.LastCmd = nil
	if msg != nil {
		d.Send(msg)
	}
	return msg
}

// View renders the model without ANSI codes.
func (d *Driver) View() string {
	return StripANSI(d.Model.View())
}
