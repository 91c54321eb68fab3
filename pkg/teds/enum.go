package teds

import (
	"strconv"
	"strings"
)

// EnumMember is one legal value of an enumerated domain.
type EnumMember struct {
	Value       int64
	Name        string
	Description string
}

// Enumeration restricts a numeric field to a closed set of values.
type Enumeration struct {
	Name    string
	Members []EnumMember
}

// Contains reports whether v is a member value.
func (e *Enumeration) Contains(v int64) bool {
	_, ok := e.member(v)
	return ok
}

// NameOf returns the member name for v.
func (e *Enumeration) NameOf(v int64) (string, bool) {
	m, ok := e.member(v)
	return m.Name, ok
}

// Lookup finds a member by name, ignoring case.
func (e *Enumeration) Lookup(name string) (EnumMember, bool) {
	name = strings.TrimSpace(name)
	for _, m := range e.Members {
		if strings.EqualFold(m.Name, name) {
			return m, true
		}
	}
	return EnumMember{}, false
}

// Names returns member names in declaration order.
func (e *Enumeration) Names() []string {
	names := make([]string, len(e.Members))
	for i, m := range e.Members {
		names[i] = m.Name
	}
	return names
}

// Label renders v as "NAME (v)" when it is a member and as the bare
// number otherwise.
func (e *Enumeration) Label(v int64) string {
	if name, ok := e.NameOf(v); ok {
		return name + " (" + strconv.FormatInt(v, 10) + ")"
	}
	return strconv.FormatInt(v, 10)
}

func (e *Enumeration) member(v int64) (EnumMember, bool) {
	for _, m := range e.Members {
		if m.Value == v {
			return m, true
		}
	}
	return EnumMember{}, false
}
