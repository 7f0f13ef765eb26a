// Package idnax contains IDNA extensions.
package idnax

import "golang.org/x/net/idna"

// ToASCII converts the given domain to its ASCII form using the
// IDNA lookup profile, which rejects domains containing runes
// that are not allowed inside of a DNS lookup.
func ToASCII(domain string) (string, error) {
	return idna.Lookup.ToASCII(domain)
}
