package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKey(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Müller", "Mueller"},
		{"Haus", "Haus"},
		{"Häuser", "Haeuser"},
		{"GRÖSSE", "GROeSSE"},
		{"straße", "strasse"},
		{"café", "cafe"},
		{"naïve", "naive"},
		{"kṛṣṇa", "krsna"},
		{"dharmakṣetra", "dharmaksetra"},
		{"wohl-bekannt", "wohl-bekannt"},
		{"it's", "its"},
		{"  spaced out  ", "spacedout"},
		{"日本語", ""},
		{"", ""},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, Key(c.in), "Key(%q)", c.in)
	}
}

func TestKeyIdempotent(t *testing.T) {
	inputs := []string{"Müller", "Häuser-Öl", "straße", "kṛṣṇa", "plain", "Ångström", "l'état"}
	for _, in := range inputs {
		once := Key(in)
		assert.Equal(t, once, Key(once), "Key not idempotent for %q", in)
	}
}

func TestKeyPreservesCase(t *testing.T) {
	assert.Equal(t, "Oel", Key("Öl"))
	assert.Equal(t, "oel", Key("öl"))
}
