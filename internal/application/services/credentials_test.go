package services

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCredentialGenerator_DeriveEmail(t *testing.T) {
	g := NewCredentialGenerator("@Hospital.Local ")

	tests := []struct {
		name                 string
		first, last, license string
		want                 string
	}{
		{"basic", "Omar", "Said", "L900", "omar.said.l900@hospital.local"},
		{"inner whitespace", " Abd El ", "Rahman\tAli", "L 12", "abdel.rahmanali.l12@hospital.local"},
		{"diacritics folded", "José", "Müller", "x1", "jose.muller.x1@hospital.local"},
		{"already lowercase", "mona", "adel", "abc", "mona.adel.abc@hospital.local"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, g.DeriveEmail(tt.first, tt.last, tt.license))
		})
	}
}

func TestCredentialGenerator_Password(t *testing.T) {
	g := NewCredentialGenerator("hospital.local")

	seen := make(map[string]struct{})
	for i := 0; i < 200; i++ {
		c, err := g.GenerateCredentials("Omar", "Said", "L900")
		require.NoError(t, err)
		require.Len(t, c.Password, passwordLength)
		assert.Equal(t, "omar.said.l900@hospital.local", c.Email)

		for _, r := range c.Password {
			require.True(t, strings.ContainsRune(passwordAlphabet, r), "unexpected rune %q", r)
		}
		assert.NotContainsf(t, c.Password, "0", "ambiguous char")
		assert.NotContains(t, c.Password, "O")
		assert.NotContains(t, c.Password, "1")
		assert.NotContains(t, c.Password, "I")
		assert.NotContains(t, c.Password, "l")

		_, dup := seen[c.Password]
		require.False(t, dup, "password reused")
		seen[c.Password] = struct{}{}
	}
}

func TestCredentialGenerator_RandomSourceFailure(t *testing.T) {
	g := NewCredentialGenerator("hospital.local")
	g.random = bytes.NewReader(nil)

	_, err := g.GenerateCredentials("Omar", "Said", "L900")
	require.Error(t, err)
}
