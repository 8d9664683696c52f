package grammar

import (
	"sort"
	"strings"
	"unicode/utf8"

	"codeberg.org/snonux/lingobridge/internal/lang"
)

// Adjustment is the outcome of a gender rewrite
type Adjustment struct {
	Text    string
	Rules   int  // size of the table that was applied
	Changed bool // whether the text differs from the input
}

type tableKey struct {
	lang   string
	gender lang.Gender
}

var replacers = buildReplacers()

// buildReplacers compiles every table into a single-pass replacer. Longer
// forms are tried first at each position so that "रहीं" is not eaten by "रही",
// and replaced text is never scanned again, so "छु" -> "छिन्" cannot be
// followed by "छ" -> "छिन्" on its own output.
func buildReplacers() map[tableKey]*strings.Replacer {
	out := make(map[tableKey]*strings.Replacer)
	for code, byGender := range tables {
		for gender, rules := range byGender {
			if len(rules) == 0 {
				continue
			}
			ordered := make([]Rule, len(rules))
			copy(ordered, rules)
			sort.SliceStable(ordered, func(i, j int) bool {
				return utf8.RuneCountInString(ordered[i].From) > utf8.RuneCountInString(ordered[j].From)
			})

			pairs := make([]string, 0, len(ordered)*2)
			for _, r := range ordered {
				pairs = append(pairs, r.From, r.To)
			}
			out[tableKey{code, gender}] = strings.NewReplacer(pairs...)
		}
	}
	return out
}

// Adjust rewrites text so that its verb forms match the speaker's gender.
// Text in languages without gendered verbs is returned unchanged.
func Adjust(text, targetLang string, speaker lang.Gender) string {
	return AdjustWithReport(text, targetLang, speaker).Text
}

// AdjustWithReport is Adjust but also says which table ran and whether it
// changed anything
func AdjustWithReport(text, targetLang string, speaker lang.Gender) Adjustment {
	code := lang.Normalize(targetLang)
	if !IsGenderSensitive(code) {
		return Adjustment{Text: text}
	}
	if speaker != lang.Male {
		speaker = lang.Female
	}

	r, ok := replacers[tableKey{code, speaker}]
	if !ok {
		return Adjustment{Text: text}
	}

	adjusted := r.Replace(text)
	return Adjustment{
		Text:    adjusted,
		Rules:   len(tables[code][speaker]),
		Changed: adjusted != text,
	}
}
