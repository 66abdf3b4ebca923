package dispatch

import (
	"fmt"
	"strings"
)

// Verb is the logical HTTP method a caller asks for.
type Verb string

const (
	VerbGet    Verb = "get"
	VerbPost   Verb = "post"
	VerbPut    Verb = "put"
	VerbDelete Verb = "delete"
	VerbPatch  Verb = "patch"
)

func (v Verb) String() string {
	return string(v)
}

func (v Verb) Valid() bool {
	switch v {
	case VerbGet, VerbPost, VerbPut, VerbDelete, VerbPatch:
		return true
	default:
		return false
	}
}

// ParseVerb maps a method name such as "GET" or "patch" to a Verb.
func ParseVerb(method string) (Verb, error) {
	verb := Verb(strings.ToLower(strings.TrimSpace(method)))
	if !verb.Valid() {
		return verb, fmt.Errorf("%w: %q", ErrUnknownVerb, method)
	}

	return verb, nil
}
