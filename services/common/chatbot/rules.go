package chatbot

import (
	"context"
	"regexp"
	"strconv"
	"strings"
)

// Rule pairs an intent predicate with its responder. Services evaluate
// their rule list top to bottom and stop at the first match, so ordering
// is part of each bot's behavior.
type Rule struct {
	Match  func(msg string) bool
	Handle func(ctx context.Context, msg string) string
}

// MatchAny reports whether the message contains any of the given phrases.
// Messages are expected to be lowercased by the caller.
func MatchAny(phrases ...string) func(string) bool {
	return func(msg string) bool {
		for _, p := range phrases {
			if strings.Contains(msg, p) {
				return true
			}
		}
		return false
	}
}

// MatchAll reports whether the message contains every given phrase.
func MatchAll(phrases ...string) func(string) bool {
	return func(msg string) bool {
		for _, p := range phrases {
			if !strings.Contains(msg, p) {
				return false
			}
		}
		return true
	}
}

var petIDPattern = regexp.MustCompile(`\d+`)

// ExtractPetID pulls the first number out of a message, for queries like
// "check health status for pet 7". Returns 0 when there is none.
func ExtractPetID(msg string) int64 {
	m := petIDPattern.FindString(msg)
	if m == "" {
		return 0
	}
	id, err := strconv.ParseInt(m, 10, 64)
	if err != nil {
		return 0
	}
	return id
}

// search keywords that precede the term the user is actually asking about
var searchStopWords = map[string]bool{
	"find": true, "search": true, "show": true, "me": true,
	"looking": true, "for": true,
}

// ExtractSearchTerm returns the first word following a search keyword, for
// queries like "find max" or "show me labrador". Species words are skipped
// so "show me dogs" does not search for a pet named "dogs".
func ExtractSearchTerm(msg string) string {
	words := strings.Fields(msg)
	for i, word := range words {
		if !searchStopWords[word] {
			continue
		}
		if i+1 >= len(words) {
			continue
		}
		next := words[i+1]
		if searchStopWords[next] {
			continue
		}
		switch next {
		case "pet", "pets", "dog", "dogs", "cat", "cats":
			continue
		}
		return next
	}
	return ""
}
