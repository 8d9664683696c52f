package romanize

import "strings"

// Letter classes within a block
const (
	classNone = iota
	classVowel
	classConsonant
	classSign
	classVirama
	classNukta
	classMark
	classDigit
)

type letter struct {
	class int
	roman string
}

// offsets is indexed by rune - Script.Base
var offsets = map[rune]letter{
	0x01: {classMark, ".N"},
	0x02: {classMark, "M"},
	0x03: {classMark, "H"},

	0x05: {classVowel, "a"},
	0x06: {classVowel, "A"},
	0x07: {classVowel, "i"},
	0x08: {classVowel, "I"},
	0x09: {classVowel, "u"},
	0x0A: {classVowel, "U"},
	0x0B: {classVowel, "RRi"},
	0x0C: {classVowel, "LLi"},
	0x0D: {classVowel, "e"},
	0x0E: {classVowel, "e"},
	0x0F: {classVowel, "e"},
	0x10: {classVowel, "ai"},
	0x11: {classVowel, "o"},
	0x12: {classVowel, "o"},
	0x13: {classVowel, "o"},
	0x14: {classVowel, "au"},

	0x15: {classConsonant, "k"},
	0x16: {classConsonant, "kh"},
	0x17: {classConsonant, "g"},
	0x18: {classConsonant, "gh"},
	0x19: {classConsonant, "~N"},
	0x1A: {classConsonant, "ch"},
	0x1B: {classConsonant, "Ch"},
	0x1C: {classConsonant, "j"},
	0x1D: {classConsonant, "jh"},
	0x1E: {classConsonant, "~n"},
	0x1F: {classConsonant, "T"},
	0x20: {classConsonant, "Th"},
	0x21: {classConsonant, "D"},
	0x22: {classConsonant, "Dh"},
	0x23: {classConsonant, "N"},
	0x24: {classConsonant, "t"},
	0x25: {classConsonant, "th"},
	0x26: {classConsonant, "d"},
	0x27: {classConsonant, "dh"},
	0x28: {classConsonant, "n"},
	0x29: {classConsonant, "n"},
	0x2A: {classConsonant, "p"},
	0x2B: {classConsonant, "ph"},
	0x2C: {classConsonant, "b"},
	0x2D: {classConsonant, "bh"},
	0x2E: {classConsonant, "m"},
	0x2F: {classConsonant, "y"},
	0x30: {classConsonant, "r"},
	0x31: {classConsonant, "R"},
	0x32: {classConsonant, "l"},
	0x33: {classConsonant, "L"},
	0x34: {classConsonant, "zh"},
	0x35: {classConsonant, "v"},
	0x36: {classConsonant, "sh"},
	0x37: {classConsonant, "Sh"},
	0x38: {classConsonant, "s"},
	0x39: {classConsonant, "h"},

	0x3C: {classNukta, ""},
	0x3D: {classMark, ".a"},

	0x3E: {classSign, "A"},
	0x3F: {classSign, "i"},
	0x40: {classSign, "I"},
	0x41: {classSign, "u"},
	0x42: {classSign, "U"},
	0x43: {classSign, "RRi"},
	0x44: {classSign, "RRI"},
	0x45: {classSign, "e"},
	0x46: {classSign, "e"},
	0x47: {classSign, "e"},
	0x48: {classSign, "ai"},
	0x49: {classSign, "o"},
	0x4A: {classSign, "o"},
	0x4B: {classSign, "o"},
	0x4C: {classSign, "au"},
	0x4D: {classVirama, ""},

	0x50: {classMark, "OM"},

	// Precomposed nukta letters
	0x58: {classConsonant, "q"},
	0x59: {classConsonant, "K"},
	0x5A: {classConsonant, "G"},
	0x5B: {classConsonant, "z"},
	0x5C: {classConsonant, ".D"},
	0x5D: {classConsonant, ".Dh"},
	0x5E: {classConsonant, "f"},
	0x5F: {classConsonant, "Y"},

	0x60: {classVowel, "RRI"},
	0x61: {classVowel, "LLI"},
	0x62: {classSign, "LLi"},
	0x63: {classSign, "LLI"},
	0x64: {classMark, "|"},
	0x65: {classMark, "||"},
}

// longVowels overrides the e/o rows for scripts that also have short e/o
var longVowels = map[rune]string{
	0x0F: "E",
	0x13: "O",
	0x47: "E",
	0x4B: "O",
}

// nukta maps a consonant offset to its nukta form
var nukta = map[rune]string{
	0x15: "q",
	0x16: "K",
	0x17: "G",
	0x1C: "z",
	0x21: ".D",
	0x22: ".Dh",
	0x2B: "f",
	0x2F: "Y",
}

// extras covers letters outside the shared layout
var extras = map[rune]letter{
	0x09CE: {classMark, "t"},      // Bengali khanda ta
	0x09F0: {classConsonant, "r"}, // Assamese ra
	0x09F1: {classConsonant, "v"}, // Assamese wa
	0x0A70: {classMark, "M"},      // Gurmukhi tippi
	0x0A72: {classVowel, ""},      // Gurmukhi iri, carries a vowel sign
	0x0A73: {classVowel, ""},      // Gurmukhi ura
	0x0D7A: {classMark, "N"},      // Malayalam chillu letters
	0x0D7B: {classMark, "n"},
	0x0D7C: {classMark, "r"},
	0x0D7D: {classMark, "l"},
	0x0D7E: {classMark, "L"},
	0x0D7F: {classMark, "k"},
}

const gurmukhiAddak = 0x0A71

func isJoiner(r rune) bool {
	return r == 0x200C || r == 0x200D
}

// lookup classifies r relative to script s
func (s Script) lookup(r rune) (letter, bool) {
	if l, ok := extras[r]; ok && s.contains(r) {
		return l, true
	}
	// Devanagari dandas are shared by every script
	if r == 0x0964 || r == 0x0965 {
		return offsets[r-Devanagari.Base], true
	}
	if !s.contains(r) {
		return letter{}, false
	}

	off := r - s.Base
	if off >= 0x66 && off <= 0x6F {
		return letter{classDigit, string('0' + (off - 0x66))}, true
	}

	l, ok := offsets[off]
	if !ok {
		return letter{}, false
	}
	if s.shortVowels {
		if long, ok := longVowels[off]; ok {
			l.roman = long
		}
	}
	return l, true
}

// Transliterate renders text written in script s as ITRANS. Runes outside
// the script pass through unchanged.
func Transliterate(text string, s Script) string {
	runes := []rune(text)

	var b strings.Builder
	b.Grow(len(text))

	inherent := false
	geminate := false

	flush := func() {
		if inherent {
			b.WriteByte('a')
			inherent = false
		}
	}

	for i := 0; i < len(runes); i++ {
		r := runes[i]

		if isJoiner(r) {
			continue
		}
		if r == gurmukhiAddak && s == Gurmukhi {
			flush()
			geminate = true
			continue
		}

		l, ok := s.lookup(r)
		if !ok {
			flush()
			geminate = false
			b.WriteRune(r)
			continue
		}

		switch l.class {
		case classConsonant:
			flush()
			roman := l.roman
			off := r - s.Base
			if i+1 < len(runes) && runes[i+1] == s.Base+0x3C {
				if n, ok := nukta[off]; ok {
					roman = n
				}
				i++
			}
			if geminate && roman != "" {
				b.WriteByte(roman[0])
				geminate = false
			}
			b.WriteString(roman)
			inherent = true
		case classSign:
			inherent = false
			b.WriteString(l.roman)
		case classVirama:
			inherent = false
		case classNukta:
			// A stray nukta has nothing to modify
		default:
			flush()
			geminate = false
			b.WriteString(l.roman)
		}
	}
	flush()

	return b.String()
}
