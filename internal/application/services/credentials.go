package services

import (
	"crypto/rand"
	"io"
	"math/big"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"hospital-admin-api/internal/domain/account"
)

const (
	passwordLength = 12
	// no 0/O/1/I/l
	passwordAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZabcdefghijkmnopqrstuvwxyz23456789!@#$%&*"
)

type CredentialGenerator struct {
	domain string
	random io.Reader
}

func NewCredentialGenerator(domain string) *CredentialGenerator {
	return &CredentialGenerator{
		domain: strings.ToLower(strings.TrimPrefix(strings.TrimSpace(domain), "@")),
		random: rand.Reader,
	}
}

// GenerateCredentials derives the account email and draws a fresh password.
// The email is deterministic, so callers still have to check it is unused.
func (g *CredentialGenerator) GenerateCredentials(firstName, lastName, licenseNumber string) (account.Credentials, error) {
	password, err := g.password()
	if err != nil {
		return account.Credentials{}, err
	}

	return account.Credentials{
		Email:    g.DeriveEmail(firstName, lastName, licenseNumber),
		Password: password,
	}, nil
}

// DeriveEmail: "<first>.<last>.<license>@<domain>", lowercased, whitespace and
// diacritics removed.
func (g *CredentialGenerator) DeriveEmail(firstName, lastName, licenseNumber string) string {
	return emailPart(firstName) + "." + emailPart(lastName) + "." + emailPart(licenseNumber) + "@" + g.domain
}

func (g *CredentialGenerator) password() (string, error) {
	max := big.NewInt(int64(len(passwordAlphabet)))

	b := make([]byte, passwordLength)
	for i := range b {
		n, err := rand.Int(g.random, max)
		if err != nil {
			return "", err
		}
		b[i] = passwordAlphabet[n.Int64()]
	}

	return string(b), nil
}

func emailPart(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, s)
	if err != nil {
		folded = s
	}

	folded = strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, folded)

	return strings.ToLower(folded)
}
