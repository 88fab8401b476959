package game

import (
	"fmt"
	"regexp"

	"github.com/shufflewick/boardsmith/pkg/element"
)

// Message is one entry in a game's log: a template string carrying
// {{name}} placeholders and the data to resolve them against. The
// substitution is deferred to Render time rather than done at Log time,
// so an element or player renders by whatever its display name is when
// the message is finally read, not whatever it was when the event
// happened.
type Message struct {
	Template string
	Data     map[string]any
}

var placeholderPattern = regexp.MustCompile(`\{\{(\w+)\}\}`)

// Render resolves every {{name}} placeholder in m.Template against m.
// Data. A placeholder with no matching key is left untouched. An
// *element.Player or element.Element value renders as its display
// name; anything else renders via fmt's default verb.
func (m Message) Render() string {
	return placeholderPattern.ReplaceAllStringFunc(m.Template, func(token string) string {
		name := token[2 : len(token)-2]
		v, ok := m.Data[name]
		if !ok {
			return token
		}
		return displayName(v)
	})
}

func displayName(v any) string {
	switch x := v.(type) {
	case *element.Player:
		if x.Name() != "" {
			return x.Name()
		}
		return fmt.Sprintf("Player %d", x.Position())
	case element.Element:
		return x.Name()
	default:
		return fmt.Sprint(x)
	}
}

// Log appends a message to the game's log (action.GameAPI, flow node
// callbacks). key is the template string; data seeds its placeholders.
func (g *Game) Log(key string, data map[string]any) {
	g.messages = append(g.messages, Message{Template: key, Data: data})
}

// Messages returns every logged message in order, oldest first.
func (g *Game) Messages() []Message {
	return append([]Message(nil), g.messages...)
}
