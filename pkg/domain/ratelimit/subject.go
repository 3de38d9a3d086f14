package ratelimit

import (
	"fmt"
	"strings"
)

type SubjectKind string

const (
	SubjectKindIP   SubjectKind = "ip"
	SubjectKindUser SubjectKind = "user"
)

// Subject is the throttled identity. It is never written to the store in
// plain text; keys are built from its hash.
type Subject struct {
	Kind  SubjectKind
	Value string
}

func NewIPSubject(address string) Subject {
	return Subject{Kind: SubjectKindIP, Value: address}
}

func NewUserSubject(userID string) Subject {
	return Subject{Kind: SubjectKindUser, Value: userID}
}

func (s Subject) String() string {
	return fmt.Sprintf("%s:%s", s.Kind, s.Value)
}

// ParseSubject reads the "<kind>:<value>" form produced by String.
func ParseSubject(raw string) (Subject, error) {
	kind, value, ok := strings.Cut(strings.TrimSpace(raw), ":")
	if !ok || value == "" {
		return Subject{}, fmt.Errorf("invalid subject %q: expected <kind>:<value>", raw)
	}
	switch SubjectKind(kind) {
	case SubjectKindIP, SubjectKindUser:
		return Subject{Kind: SubjectKind(kind), Value: value}, nil
	default:
		return Subject{}, fmt.Errorf("invalid subject kind %q", kind)
	}
}

// Request carries the caller attributes the resolver needs.
type Request struct {
	UserID         string `json:"user_id,omitempty"`
	NetworkAddress string `json:"network_address"`
}
