package vocab

var defaultWords = []string{
	"a", "akesi", "ala", "alasa", "ali", "anpa", "ante", "anu", "awen", "e", "en", "esun",
	"ijo", "ike", "ilo", "insa", "jaki", "jan", "jelo", "jo", "kala", "kalama", "kama", "kasi",
	"ken", "kepeken", "kili", "kin", "kiwen", "kijetesantakalu", "ko", "kon", "kule", "kulupu",
	"kute", "la", "lape", "laso", "lawa", "len", "lete", "li", "lili", "linja", "lipu", "loje",
	"lon", "luka", "lukin", "lupa", "ma", "mama", "mani", "meli", "mi", "mije", "moku", "moli",
	"monsi", "mu", "mun", "musi", "mute", "namako", "nanpa", "nasa", "nasin", "nena", "ni",
	"nimi", "noka", "o", "oko", "olin", "ona", "open", "pakala", "pali", "palisa", "pan", "pana",
	"pi", "pilin", "pimeja", "pini", "pipi", "poka", "poki", "pona", "pu", "sama", "seli", "selo",
	"seme", "sewi", "sijelo", "sike", "sin", "sina", "sinpin", "sitelen", "sona", "soweli",
	"suli", "suno", "supa", "suwi", "tan", "taso", "tawa", "telo", "tenpo", "toki", "tomo", "tu",
	"unpa", "uta", "utala", "walo", "wan", "waso", "wawa", "weka", "wile", "ale",
	".", "?", "!", ":", ",",
}

var defaultSyllables = []string{
	"o", "u", "i", "a", "e",
	"mo", "mu", "mi", "ma", "me", "no", "nu", "ni", "na", "ne",
	"po", "pu", "pi", "pa", "pe", "to", "tu", "ta", "te",
	"ko", "ku", "ki", "ka", "ke", "so", "su", "si", "sa", "se",
	"wi", "wa", "we", "lo", "lu", "li", "la", "le", "jo", "ju", "ja", "je",
	"on", "un", "in", "an", "en",
	"mon", "mun", "min", "man", "men", "non", "nun", "nin", "nan", "nen",
	"pon", "pun", "pin", "pan", "pen", "ton", "tun", "tan", "ten",
	"kon", "kun", "kin", "kan", "ken", "son", "sun", "sin", "san", "sen",
	"win", "wan", "wen", "lon", "lun", "lin", "lan", "len",
	"jon", "jun", "jan", "jen",
}

var defaultPrepositions = []string{"tawa", "tan", "lon", "kepeken", "sama", "poka"}

var defaultObjectMarkers = []string{"li", "e"}

var defaultSmallModifiers = []string{"kon", "lili", "mute", "sin"}

var defaultNarrowModifiers = []string{"wan", "tu", "anu", "en", "kin"}

var defaultNarrowSyllables = []string{
	"li", "ni", "si", "lin", "nin", "sin",
	"le", "ne", "se", "len", "nen", "sen",
	"lo", "no", "so", "lon", "non", "son",
	"la", "na", "sa", "lan", "nan", "san",
	"lu", "nu", "su", "lun", "nun", "sun",
}

var defaultSinglePunctuation = []string{"comma", "colon"}

var defaultSentencePunctuation = []string{"period", "exclamation", "question"}

var defaultLargePunctuation = []string{"la", "banner"}
