package cst

import (
	"testing"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/stretchr/testify/require"
)

type fakeGrammar struct{ lang *sitter.Language }

func (g fakeGrammar) Language() *sitter.Language { return g.lang }

func TestRegisterGrammar_RoundTrips(t *testing.T) {
	g := fakeGrammar{}
	RegisterGrammar(".inf-test", g)

	got, ok := LookupGrammar(".inf-test")
	require.True(t, ok)
	require.Equal(t, g, got)
}

func TestLookupGrammar_UnknownExtensionMisses(t *testing.T) {
	_, ok := LookupGrammar(".does-not-exist")
	require.False(t, ok)
}

func TestRegisterGrammar_LaterRegistrationWins(t *testing.T) {
	RegisterGrammar(".inf-override", fakeGrammar{})
	second := fakeGrammar{lang: nil}
	RegisterGrammar(".inf-override", second)

	got, ok := LookupGrammar(".inf-override")
	require.True(t, ok)
	require.Equal(t, second, got)
}
