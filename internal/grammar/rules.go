package grammar

import "codeberg.org/snonux/lingobridge/internal/lang"

// Rule replaces one inflected form with its counterpart
type Rule struct {
	From string
	To   string
}

// sensitive lists the languages whose verbs inflect for the speaker's gender.
// Gujarati and Marathi qualify but have no table yet and pass through.
var sensitive = map[string]bool{
	"hi": true,
	"ur": true,
	"ne": true,
	"bn": true,
	"gu": true,
	"mr": true,
	"pa": true,
}

var hindiMale = []Rule{
	// present continuous
	{"रही", "रहा"}, {"रहीं", "रहे"},
	// verb endings
	{"करती", "करता"}, {"जाती", "जाता"}, {"आती", "आता"}, {"खाती", "खाता"},
	{"पीती", "पीता"}, {"सोती", "सोता"}, {"बोलती", "बोलता"}, {"देती", "देता"},
	{"लेती", "लेता"}, {"चलती", "चलता"}, {"पढ़ती", "पढ़ता"}, {"लिखती", "लिखता"},
	{"होती", "होता"}, {"कहती", "कहता"}, {"सुनती", "सुनता"}, {"देखती", "देखता"},
	// past tense
	{"गई", "गया"}, {"आई", "आया"}, {"की", "किया"},
}

var hindiFemale = []Rule{
	// present continuous
	{"रहा", "रही"}, {"रहे", "रहीं"},
	// verb endings
	{"करता", "करती"}, {"जाता", "जाती"}, {"आता", "आती"}, {"खाता", "खाती"},
	{"पीता", "पीती"}, {"सोता", "सोती"}, {"बोलता", "बोलती"}, {"देता", "देती"},
	{"लेता", "लेती"}, {"चलता", "चलती"}, {"पढ़ता", "पढ़ती"}, {"लिखता", "लिखती"},
	{"होता", "होती"}, {"कहता", "कहती"}, {"सुनता", "सुनती"}, {"देखता", "देखती"},
	// past tense
	{"गया", "गई"}, {"आया", "आई"}, {"किया", "की"},
}

var punjabiMale = []Rule{
	{"ਕਰਦੀ", "ਕਰਦਾ"}, {"ਜਾਂਦੀ", "ਜਾਂਦਾ"}, {"ਆਉਂਦੀ", "ਆਉਂਦਾ"},
	{"ਰਹੀ", "ਰਿਹਾ"},
}

var punjabiFemale = []Rule{
	{"ਕਰਦਾ", "ਕਰਦੀ"}, {"ਜਾਂਦਾ", "ਜਾਂਦੀ"}, {"ਆਉਂਦਾ", "ਆਉਂਦੀ"},
	{"ਰਿਹਾ", "ਰਹੀ"},
}

var nepaliMale = []Rule{
	{"छिन्", "छु"}, {"छिन्न्", "छु"}, {"छी", "छु"},
	{"गर्छिन्", "गर्छु"}, {"हुन्छिन्", "हुन्छु"},
}

var nepaliFemale = []Rule{
	{"छु", "छिन्"}, {"छ", "छिन्"}, {"गर्छु", "गर्छिन्"},
	{"हुन्छु", "हुन्छिन्"},
}

// tables is keyed by language then gender. Urdu shares the Hindi table; it
// only matches when the engine answers in Devanagari. Bengali verbs barely
// mark gender, so it has no rules.
var tables = map[string]map[lang.Gender][]Rule{
	"hi": {lang.Male: hindiMale, lang.Female: hindiFemale},
	"ur": {lang.Male: hindiMale, lang.Female: hindiFemale},
	"pa": {lang.Male: punjabiMale, lang.Female: punjabiFemale},
	"ne": {lang.Male: nepaliMale, lang.Female: nepaliFemale},
	"bn": {},
}

// IsGenderSensitive reports whether code names a language whose verbs agree
// with the speaker's gender
func IsGenderSensitive(code string) bool {
	return sensitive[lang.Normalize(code)]
}

// Rules returns a copy of the substitution table for a language and gender
func Rules(code string, gender lang.Gender) []Rule {
	byGender, ok := tables[lang.Normalize(code)]
	if !ok {
		return nil
	}
	rules := byGender[gender]
	out := make([]Rule, len(rules))
	copy(out, rules)
	return out
}
