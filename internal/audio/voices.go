package audio

import (
	"sort"

	"codeberg.org/snonux/lingobridge/internal/lang"
)

// DefaultVoice is used when a language has no neural voice
const DefaultVoice = "en-US-JennyNeural"

// VoicePair holds the neural voices for one language
type VoicePair struct {
	Male   string `json:"male"`
	Female string `json:"female"`
}

var edgeVoices = map[string]VoicePair{
	"en": {"en-US-BrianNeural", "en-US-JennyNeural"},
	"hi": {"hi-IN-MadhurNeural", "hi-IN-SwaraNeural"},
	"bn": {"bn-BD-PradeepNeural", "bn-BD-NabanitaNeural"},
	"es": {"es-ES-AlvaroNeural", "es-ES-ElviraNeural"},
	"fr": {"fr-FR-HenriNeural", "fr-FR-DeniseNeural"},
	"de": {"de-DE-ConradNeural", "de-DE-KatjaNeural"},
	"it": {"it-IT-DiegoNeural", "it-IT-ElsaNeural"},
	"pt": {"pt-BR-AntonioNeural", "pt-BR-FranciscaNeural"},
	"ru": {"ru-RU-DmitryNeural", "ru-RU-SvetlanaNeural"},
	"ja": {"ja-JP-KeitaNeural", "ja-JP-NanamiNeural"},
	"ko": {"ko-KR-InJoonNeural", "ko-KR-SunHiNeural"},
	"zh": {"zh-CN-YunxiNeural", "zh-CN-XiaoxiaoNeural"},
	"ar": {"ar-SA-HamedNeural", "ar-SA-ZariyahNeural"},
	"tr": {"tr-TR-AhmetNeural", "tr-TR-EmelNeural"},
	"ur": {"ur-PK-AsadNeural", "ur-PK-UzmaNeural"},
	"ne": {"ne-NP-SagarNeural", "ne-NP-HemkalaNeural"},
	"pa": {"pa-IN-GaganNeural", "pa-IN-HarpreetNeural"},
	"gu": {"gu-IN-NiranjanNeural", "gu-IN-DhwaniNeural"},
	"mr": {"mr-IN-ManoharNeural", "mr-IN-AarohiNeural"},
	"ta": {"ta-IN-ValluvarNeural", "ta-IN-PallaviNeural"},
	"te": {"te-IN-MohanNeural", "te-IN-ShrutiNeural"},
	"ml": {"ml-IN-MidhunNeural", "ml-IN-SobhanaNeural"},
	"kn": {"kn-IN-GaganNeural", "kn-IN-SapnaNeural"},
	"pl": {"pl-PL-MarekNeural", "pl-PL-ZofiaNeural"},
	"nl": {"nl-NL-MaartenNeural", "nl-NL-ColetteNeural"},
	"sv": {"sv-SE-MattiasNeural", "sv-SE-SofieNeural"},
}

// Google serves regional accents from different domains
var googleTLDs = map[string]struct{ male, female string }{
	"en": {"com.au", "co.uk"},
	"hi": {"co.in", "co.in"},
	"bn": {"com.bd", "com.bd"},
	"ne": {"com.np", "com.np"},
	"es": {"com.mx", "es"},
	"fr": {"ca", "fr"},
	"de": {"de", "at"},
	"it": {"it", "it"},
	"pt": {"com.br", "pt"},
	"ru": {"ru", "ru"},
	"ja": {"co.jp", "co.jp"},
	"ko": {"co.kr", "co.kr"},
	"zh": {"com.tw", "com.hk"},
	"ar": {"com.sa", "ae"},
	"tr": {"com.tr", "com.tr"},
	"ur": {"com.pk", "com.pk"},
	"ta": {"co.in", "co.in"},
	"te": {"co.in", "co.in"},
	"ml": {"co.in", "co.in"},
	"gu": {"co.in", "co.in"},
	"kn": {"co.in", "co.in"},
	"mr": {"co.in", "co.in"},
	"pa": {"co.in", "co.in"},
	"pl": {"pl", "pl"},
	"nl": {"nl", "nl"},
	"sv": {"se", "se"},
}

// VoiceFor picks the edge neural voice for a language and gender
func VoiceFor(code string, gender lang.Gender) string {
	pair, ok := edgeVoices[lang.Normalize(code)]
	if !ok {
		return DefaultVoice
	}
	if gender == lang.Male {
		return pair.Male
	}
	return pair.Female
}

// TLDFor returns the Google domain used for a language and gender
func TLDFor(code string, gender lang.Gender) string {
	tld, ok := googleTLDs[lang.Normalize(code)]
	if !ok {
		return "com"
	}
	if gender == lang.Male {
		return tld.male
	}
	return tld.female
}

// Voice is one row of the voice table
type Voice struct {
	Lang string `json:"lang"`
	VoicePair
}

// Voices returns the voice table sorted by language code
func Voices() []Voice {
	out := make([]Voice, 0, len(edgeVoices))
	for code, pair := range edgeVoices {
		out = append(out, Voice{Lang: code, VoicePair: pair})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Lang < out[j].Lang })
	return out
}
