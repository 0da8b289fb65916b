package auth

import (
	"strings"
)

// ==============================================
// LOGIN IDENTIFIER
// ==============================================

// LoginIDKind distinguishes how a login identifier resolves to a user.
type LoginIDKind int

const (
	LoginIDUsername LoginIDKind = iota
	LoginIDEmail
)

// LoginID is a classified login identifier. An identifier containing '@'
// is an email; anything else is a username. Classification happens once,
// here, instead of string sniffing at call sites.
type LoginID struct {
	Kind  LoginIDKind
	Value string
}

// ClassifyLoginID classifies a raw login identifier. The value is trimmed
// but not lowercased; lookups are case-insensitive at the store.
func ClassifyLoginID(raw string) LoginID {
	v := strings.TrimSpace(raw)
	if strings.Contains(v, "@") {
		return LoginID{Kind: LoginIDEmail, Value: v}
	}
	return LoginID{Kind: LoginIDUsername, Value: v}
}
