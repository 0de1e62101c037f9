// Package idx mints the storefront's public identifiers: a short kind
// prefix and a ULID, e.g. "prd_01HQ7T3Z1MZ0JQ3M6MZQ1FQ3ZV". IDs sort by
// creation time within a kind.
package idx

import (
	"crypto/rand"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
)

// Kind is the prefix that says what an ID refers to.
type Kind string

const (
	KindUser    Kind = "usr"
	KindProduct Kind = "prd"
	KindRequest Kind = "req"
	KindEvent   Kind = "evt"
	KindToken   Kind = "tok"
)

const sep = "_"

type ID string

// Zero is the empty ID. Never store it.
const Zero ID = ""

// ErrInvalid reports a malformed ID or one of the wrong kind.
var ErrInvalid = errors.New("idx: invalid id")

var (
	mu      sync.Mutex
	entropy = ulid.Monotonic(rand.Reader, 0)
)

// New returns a new ID of kind k stamped with the current UTC time.
func New(k Kind) ID {
	return NewAt(k, time.Now().UTC())
}

// NewAt returns an ID of kind k stamped with t. Useful in tests.
func NewAt(k Kind, t time.Time) ID {
	mu.Lock()
	u := ulid.MustNew(ulid.Timestamp(t), entropy)
	mu.Unlock()

	return ID(string(k) + sep + u.String())
}

// Parse validates s as an ID of kind k.
func Parse(k Kind, s string) (ID, error) {
	s = strings.TrimSpace(s)

	rest, ok := strings.CutPrefix(s, string(k)+sep)
	if !ok {
		return Zero, ErrInvalid
	}
	if _, err := ulid.ParseStrict(rest); err != nil {
		return Zero, ErrInvalid
	}
	return ID(s), nil
}

// MustParse is Parse for hard-coded IDs in tests.
func MustParse(k Kind, s string) ID {
	id, err := Parse(k, s)
	if err != nil {
		panic(err)
	}
	return id
}

func (id ID) IsZero() bool   { return id == Zero }
func (id ID) String() string { return string(id) }

// Kind returns the prefix of id, or "" if it has none.
func (id ID) Kind() Kind {
	k, _, ok := strings.Cut(string(id), sep)
	if !ok {
		return ""
	}
	return Kind(k)
}

// Time extracts the creation time embedded in id. Invalid IDs yield the
// zero time.
func (id ID) Time() time.Time {
	_, rest, ok := strings.Cut(string(id), sep)
	if !ok {
		return time.Time{}
	}
	u, err := ulid.ParseStrict(rest)
	if err != nil {
		return time.Time{}
	}
	return ulid.Time(u.Time())
}
