// Package render turns a parsed document and a resolved style into output
// artifacts.
package render

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEscapeTypst_EmptyString(t *testing.T) {
	result := EscapeTypst("")
	assert.Equal(t, "", result)
}

func TestEscapeTypst_NoSpecialCharacters(t *testing.T) {
	text := "Shipped three releases a year"
	result := EscapeTypst(text)
	assert.Equal(t, text, result)
}

func TestEscapeTypst_AtSign(t *testing.T) {
	result := EscapeTypst("jane@example.com")
	assert.Equal(t, `jane\@example.com`, result)
}

func TestEscapeTypst_Hash(t *testing.T) {
	result := EscapeTypst("issue #42")
	assert.Equal(t, `issue \#42`, result)
}

func TestEscapeTypst_Dollar(t *testing.T) {
	result := EscapeTypst("saved $2M")
	assert.Equal(t, `saved \$2M`, result)
}

func TestEscapeTypst_Backslash(t *testing.T) {
	result := EscapeTypst(`C:\Users\jane`)
	assert.Equal(t, `C:\\Users\\jane`, result)
}

func TestEscapeTypst_MarkupCharacters(t *testing.T) {
	result := EscapeTypst("a*b_c`d")
	assert.Equal(t, "a\\*b\\_c\\`d", result)
}

func TestEscapeTypst_Brackets(t *testing.T) {
	result := EscapeTypst("[tag] <note>")
	assert.Equal(t, `\[tag\] \<note\>`, result)
}

func TestEscapeTypst_UnicodePassesThrough(t *testing.T) {
	result := EscapeTypst("José Martínez — 東京")
	assert.Equal(t, "José Martínez — 東京", result)
}

func TestEscapeTypstString_Quotes(t *testing.T) {
	result := escapeTypstString(`say "hello" \ world`)
	assert.Equal(t, `say \"hello\" \\ world`, result)
}

func TestProfileLink_Handle(t *testing.T) {
	url, label := profileLink("github.com", "janedoe")
	assert.Equal(t, "https://github.com/janedoe", url)
	assert.Equal(t, "github.com/janedoe", label)
}

func TestProfileLink_FullURL(t *testing.T) {
	url, label := profileLink("github.com", "https://github.com/janedoe/")
	assert.Equal(t, "https://github.com/janedoe/", url)
	assert.Equal(t, "github.com/janedoe", label)
}

func TestLinkURL_AddsScheme(t *testing.T) {
	assert.Equal(t, "https://janedoe.dev", linkURL("janedoe.dev"))
	assert.Equal(t, "http://janedoe.dev", linkURL("http://janedoe.dev"))
}
