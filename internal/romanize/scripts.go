package romanize

import "codeberg.org/snonux/lingobridge/internal/lang"

// Script is a Unicode Brahmic block
type Script struct {
	Name string
	Base rune
	// Dravidian scripts distinguish short e/o from long E/O
	shortVowels bool
}

// Supported Brahmic blocks
var (
	Devanagari = Script{Name: "devanagari", Base: 0x0900}
	Bengali    = Script{Name: "bengali", Base: 0x0980}
	Gurmukhi   = Script{Name: "gurmukhi", Base: 0x0A00}
	Gujarati   = Script{Name: "gujarati", Base: 0x0A80}
	Oriya      = Script{Name: "oriya", Base: 0x0B00}
	Tamil      = Script{Name: "tamil", Base: 0x0B80, shortVowels: true}
	Telugu     = Script{Name: "telugu", Base: 0x0C00, shortVowels: true}
	Kannada    = Script{Name: "kannada", Base: 0x0C80, shortVowels: true}
	Malayalam  = Script{Name: "malayalam", Base: 0x0D00, shortVowels: true}
)

var scriptByLang = map[string]Script{
	"hi":  Devanagari,
	"mr":  Devanagari,
	"ne":  Devanagari,
	"mai": Devanagari,
	"bho": Devanagari,
	"awa": Devanagari,
	"mag": Devanagari,
	"hne": Devanagari,
	"doi": Devanagari,
	"bn":  Bengali,
	"as":  Bengali,
	"te":  Telugu,
	"ta":  Tamil,
	"ml":  Malayalam,
	"gu":  Gujarati,
	"kn":  Kannada,
	"pa":  Gurmukhi,
	"or":  Oriya,
}

// ScriptFor returns the Brahmic script used to write a language
func ScriptFor(code string) (Script, bool) {
	s, ok := scriptByLang[lang.Normalize(code)]
	return s, ok
}

// Supported reports whether code has a built-in script table. Urdu is
// written in Perso-Arabic and has none.
func Supported(code string) bool {
	_, ok := ScriptFor(code)
	return ok
}

// contains reports whether r lies in the script's block
func (s Script) contains(r rune) bool {
	return r >= s.Base && r < s.Base+0x80
}
