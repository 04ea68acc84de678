// Package ids generates the short codes used to identify quizzes and
// clients. Codes are random uppercase strings that are easy to read out
// loud and type on a phone. They are not guaranteed unique; callers that
// need uniqueness must verify it with a conditional create and retry.
package ids

import "math/rand"

// CodeLength is the length of generated quiz and client codes.
const CodeLength = 6

// NewCode returns a fresh random code of CodeLength uppercase letters.
func NewCode() string {
	return NewCodeN(CodeLength)
}

// NewCodeN returns a fresh random code of n uppercase letters.
func NewCodeN(n int) string {
	b := make([]byte, n)
	for i := range b {
		b[i] = byte('A' + rand.Intn(26))
	}
	return string(b)
}
