package agent

import (
	"fmt"
	"strings"
	"time"
)

// intent is one known-intent rule: a predicate over the normalised input and
// a deterministic response. Rules are evaluated in declaration order.
type intent struct {
	name    string
	match   func(s string) bool
	respond func(now time.Time) string
}

func containsAny(s string, subs ...string) bool {
	l := strings.ToLower(s)
	for _, sub := range subs {
		if strings.Contains(l, sub) {
			return true
		}
	}
	return false
}

var intents = []intent{
	{
		name:  "time",
		match: func(s string) bool { return containsAny(s, "what time", "current time", "the time") },
		respond: func(now time.Time) string {
			return "It is " + now.Format("15:04:05") + "."
		},
	},
	{
		name:  "date",
		match: func(s string) bool { return containsAny(s, "what date", "today's date", "what day is") },
		respond: func(now time.Time) string {
			return "Today is " + now.Format("Monday, 2 January 2006") + "."
		},
	},
	{
		name:  "identity",
		match: func(s string) bool { return containsAny(s, "who are you", "your name", "what are you") },
		respond: func(time.Time) string {
			return "I'm polo, a command-line assistant. I can chat, run shell commands, and work with files."
		},
	},
	{
		name: "help",
		match: func(s string) bool {
			// Anchored phrases: a bare substring "help" misfires on words
			// like "helpdesk".
			if strings.EqualFold(strings.TrimSpace(s), "help") {
				return true
			}
			return containsAny(s, "help me", "need help", "how do i use")
		},
		respond: func(time.Time) string {
			return "Type a message to chat, prefix a line with the tool prefix to run a tool (e.g. !ls), or use /help for built-in commands."
		},
	},
	{
		name:  "greeting",
		match: func(s string) bool { return containsAny(s, "hello", "hi there", "good morning", "good evening") },
		respond: func(time.Time) string {
			return "Hello! What can I do for you?"
		},
	},
	{
		name:  "thanks",
		match: func(s string) bool { return containsAny(s, "thank", "thx") },
		respond: func(time.Time) string {
			return "You're welcome."
		},
	},
	{
		name:  "farewell",
		match: func(s string) bool { return containsAny(s, "bye", "goodbye", "see you") },
		respond: func(time.Time) string {
			return "Goodbye! Use /exit to leave the session."
		},
	},
}

// chatReply fills the default response template with short-term context.
func chatReply(input string, contextTurns int) string {
	if contextTurns == 0 {
		return fmt.Sprintf("I heard: %q. This is the start of our conversation; ask me about files or prefix a command with the tool prefix.", strings.TrimSpace(input))
	}
	return fmt.Sprintf("I heard: %q. I'm keeping the last %d turns of our conversation in mind.", strings.TrimSpace(input), contextTurns)
}
