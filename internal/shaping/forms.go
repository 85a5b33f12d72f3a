package shaping

// Positional presentation forms, indexed by form.
const (
	formIsol = iota
	formFina
	formInit
	formMedi
)

// forms lists the Arabic Presentation Forms for a letter as
// {isolated, final, initial, medial}. A zero entry means the letter has no
// such form: letters without an initial form never join to the next letter.
type forms [4]rune

func (f forms) joinsPrev() bool { return f[formFina] != 0 }
func (f forms) joinsNext() bool { return f[formInit] != 0 }

const (
	lam     = '\u0644'
	tatweel = '\u0640'
	zwj     = '\u200d'
)

var letters = map[rune]forms{
	'ء': {0xFE80, 0, 0, 0},                // HAMZA
	'آ': {0xFE81, 0xFE82, 0, 0},           // ALEF WITH MADDA ABOVE
	'أ': {0xFE83, 0xFE84, 0, 0},           // ALEF WITH HAMZA ABOVE
	'ؤ': {0xFE85, 0xFE86, 0, 0},           // WAW WITH HAMZA ABOVE
	'إ': {0xFE87, 0xFE88, 0, 0},           // ALEF WITH HAMZA BELOW
	'ئ': {0xFE89, 0xFE8A, 0xFE8B, 0xFE8C}, // YEH WITH HAMZA ABOVE
	'ا': {0xFE8D, 0xFE8E, 0, 0},           // ALEF
	'ب': {0xFE8F, 0xFE90, 0xFE91, 0xFE92}, // BEH
	'ة': {0xFE93, 0xFE94, 0, 0},           // TEH MARBUTA
	'ت': {0xFE95, 0xFE96, 0xFE97, 0xFE98}, // TEH
	'ث': {0xFE99, 0xFE9A, 0xFE9B, 0xFE9C}, // THEH
	'ج': {0xFE9D, 0xFE9E, 0xFE9F, 0xFEA0}, // JEEM
	'ح': {0xFEA1, 0xFEA2, 0xFEA3, 0xFEA4}, // HAH
	'خ': {0xFEA5, 0xFEA6, 0xFEA7, 0xFEA8}, // KHAH
	'د': {0xFEA9, 0xFEAA, 0, 0},           // DAL
	'ذ': {0xFEAB, 0xFEAC, 0, 0},           // THAL
	'ر': {0xFEAD, 0xFEAE, 0, 0},           // REH
	'ز': {0xFEAF, 0xFEB0, 0, 0},           // ZAIN
	'س': {0xFEB1, 0xFEB2, 0xFEB3, 0xFEB4}, // SEEN
	'ش': {0xFEB5, 0xFEB6, 0xFEB7, 0xFEB8}, // SHEEN
	'ص': {0xFEB9, 0xFEBA, 0xFEBB, 0xFEBC}, // SAD
	'ض': {0xFEBD, 0xFEBE, 0xFEBF, 0xFEC0}, // DAD
	'ط': {0xFEC1, 0xFEC2, 0xFEC3, 0xFEC4}, // TAH
	'ظ': {0xFEC5, 0xFEC6, 0xFEC7, 0xFEC8}, // ZAH
	'ع': {0xFEC9, 0xFECA, 0xFECB, 0xFECC}, // AIN
	'غ': {0xFECD, 0xFECE, 0xFECF, 0xFED0}, // GHAIN
	tatweel:  {tatweel, tatweel, tatweel, tatweel},
	'ف': {0xFED1, 0xFED2, 0xFED3, 0xFED4}, // FEH
	'ق': {0xFED5, 0xFED6, 0xFED7, 0xFED8}, // QAF
	'ك': {0xFED9, 0xFEDA, 0xFEDB, 0xFEDC}, // KAF
	lam:      {0xFEDD, 0xFEDE, 0xFEDF, 0xFEE0},
	'م': {0xFEE1, 0xFEE2, 0xFEE3, 0xFEE4}, // MEEM
	'ن': {0xFEE5, 0xFEE6, 0xFEE7, 0xFEE8}, // NOON
	'ه': {0xFEE9, 0xFEEA, 0xFEEB, 0xFEEC}, // HEH
	'و': {0xFEED, 0xFEEE, 0, 0},           // WAW
	'ى': {0xFEEF, 0xFEF0, 0xFBE8, 0xFBE9}, // ALEF MAKSURA
	'ي': {0xFEF1, 0xFEF2, 0xFEF3, 0xFEF4}, // YEH

	'ٱ': {0xFB50, 0xFB51, 0, 0},           // ALEF WASLA
	'پ': {0xFB56, 0xFB57, 0xFB58, 0xFB59}, // PEH
	'چ': {0xFB7A, 0xFB7B, 0xFB7C, 0xFB7D}, // TCHEH
	'ژ': {0xFB8A, 0xFB8B, 0, 0},           // JEH
	'ڤ': {0xFB6A, 0xFB6B, 0xFB6C, 0xFB6D}, // VEH
	'ک': {0xFB8E, 0xFB8F, 0xFB90, 0xFB91}, // KEHEH
	'گ': {0xFB92, 0xFB93, 0xFB94, 0xFB95}, // GAF
	'ی': {0xFBFC, 0xFBFD, 0xFBFE, 0xFBFF}, // FARSI YEH

	// Lam-alef ligatures. They only join to the previous letter.
	0xFEF5: {0xFEF5, 0xFEF6, 0, 0},
	0xFEF7: {0xFEF7, 0xFEF8, 0, 0},
	0xFEF9: {0xFEF9, 0xFEFA, 0, 0},
	0xFEFB: {0xFEFB, 0xFEFC, 0, 0},
}

// lamAlef maps the alef following a lam to the isolated ligature form.
var lamAlef = map[rune]rune{
	'آ': 0xFEF5,
	'أ': 0xFEF7,
	'إ': 0xFEF9,
	'ا': 0xFEFB,
}

// transparent reports whether r is skipped when deciding how neighbours join:
// harakat, Quranic annotation marks and superscript alef.
func transparent(r rune) bool {
	switch {
	case r >= 0x0610 && r <= 0x061A:
		return true
	case r >= 0x064B && r <= 0x065F:
		return true
	case r == 0x0670:
		return true
	case r >= 0x06D6 && r <= 0x06DC:
		return true
	case r >= 0x06DF && r <= 0x06E4:
		return true
	case r == 0x06E7 || r == 0x06E8:
		return true
	case r >= 0x06EA && r <= 0x06ED:
		return true
	}
	return false
}
