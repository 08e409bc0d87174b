package notify

import (
	"fmt"
	"io"
	"os"
	"strings"

	fcolor "github.com/fatih/color"
)

const (
	// ErrorType is printed in red with a ✗ symbol.
	ErrorType MessageType = iota
	// WarningType is printed in yellow with a ⚠ symbol.
	WarningType
	// ActivityType is printed in the default colour with a ► symbol.
	ActivityType
	// SuccessType is printed in green with a ✔ symbol.
	SuccessType
	// InfoType is printed in blue with an ℹ symbol.
	InfoType
	// TitleType is printed in bold, prefixed with an emoji.
	TitleType
)

const defaultTitleEmoji = "🔎"

// MessageType selects the styling of a message.
type MessageType int

// Message is a single notification.
type Message struct {
	Type    MessageType
	Content string
	// Args format Content when non-empty.
	Args []any
	// Emoji replaces the default icon of TitleType messages.
	Emoji string
	// Writer defaults to os.Stderr.
	Writer io.Writer
}

// Errorf writes an error message.
func Errorf(writer io.Writer, format string, args ...any) {
	WriteMessage(Message{Type: ErrorType, Content: format, Args: args, Writer: writer})
}

// Warningf writes a warning message.
func Warningf(writer io.Writer, format string, args ...any) {
	WriteMessage(Message{Type: WarningType, Content: format, Args: args, Writer: writer})
}

// Activityf writes a progress message.
func Activityf(writer io.Writer, format string, args ...any) {
	WriteMessage(Message{Type: ActivityType, Content: format, Args: args, Writer: writer})
}

// Successf writes a success message.
func Successf(writer io.Writer, format string, args ...any) {
	WriteMessage(Message{Type: SuccessType, Content: format, Args: args, Writer: writer})
}

// Infof writes an informational message.
func Infof(writer io.Writer, format string, args ...any) {
	WriteMessage(Message{Type: InfoType, Content: format, Args: args, Writer: writer})
}

// Titlef writes a bold title line.
func Titlef(writer io.Writer, emoji, format string, args ...any) {
	WriteMessage(Message{Type: TitleType, Content: format, Args: args, Emoji: emoji, Writer: writer})
}

// WriteMessage renders msg. Write failures are reported on os.Stderr and
// otherwise ignored.
func WriteMessage(msg Message) {
	writer := msg.Writer
	if writer == nil {
		writer = os.Stderr
	}

	content := msg.Content
	if len(msg.Args) > 0 {
		content = fmt.Sprintf(msg.Content, msg.Args...)
	}

	style := styleFor(msg.Type)

	prefix := style.symbol
	if msg.Type == TitleType {
		prefix = msg.Emoji
		if prefix == "" {
			prefix = defaultTitleEmoji
		}

		prefix += " "
	}

	content = indentMultilineContent(content, prefix)

	_, err := style.color.Fprintf(writer, "%s%s\n", prefix, content)
	handleNotifyError(err)
}

type messageStyle struct {
	symbol string
	color  *fcolor.Color
}

func styleFor(msgType MessageType) messageStyle {
	switch msgType {
	case ErrorType:
		return messageStyle{symbol: "✗ ", color: fcolor.New(fcolor.FgRed)}
	case WarningType:
		return messageStyle{symbol: "⚠ ", color: fcolor.New(fcolor.FgYellow)}
	case ActivityType:
		return messageStyle{symbol: "► ", color: fcolor.New(fcolor.Reset)}
	case SuccessType:
		return messageStyle{symbol: "✔ ", color: fcolor.New(fcolor.FgGreen)}
	case InfoType:
		return messageStyle{symbol: "ℹ ", color: fcolor.New(fcolor.FgBlue)}
	case TitleType:
		return messageStyle{color: fcolor.New(fcolor.Reset, fcolor.Bold)}
	default:
		return messageStyle{color: fcolor.New(fcolor.Reset)}
	}
}

func handleNotifyError(err error) {
	if err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "notify: failed to print message: %v\n", err)
	}
}

// indentMultilineContent aligns continuation lines with the text after prefix.
func indentMultilineContent(content, prefix string) string {
	if prefix == "" || !strings.Contains(content, "\n") {
		return content
	}

	indent := strings.Repeat(" ", len([]rune(prefix)))
	lines := strings.Split(content, "\n")

	for i := 1; i < len(lines); i++ {
		if lines[i] != "" {
			lines[i] = indent + lines[i]
		}
	}

	return strings.Join(lines, "\n")
}
