package domain

import "regexp"

// MaxWordLength is the longest word accepted for lookup.
const MaxWordLength = 40

var wordPattern = regexp.MustCompile(`^[A-Za-z-]{1,40}$`)

// ValidateWord reports whether word is an acceptable lookup term:
// 1-40 ASCII letters or hyphens. Returns ErrInvalidWord otherwise.
func ValidateWord(word string) error {
	if !wordPattern.MatchString(word) {
		return ErrInvalidWord
	}
	return nil
}
