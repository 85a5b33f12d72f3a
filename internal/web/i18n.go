package web

import "cardrender/internal/config"

// Strings are the display texts of one UI language.
type Strings struct {
	Code           string
	Dir            string
	Title          string
	Sidebar        string
	Greeting       string
	NameLabel      string
	NamesLabel     string
	Generate       string
	Caption        string
	Download       string
	DownloadAll    string
	Toggle         string
	EmptyInput     string
	TooManyNames   string
	NameTooLong    string
	FallbackNotice string
}

var translations = map[string]Strings{
	config.LangEnglish: {
		Code:           "en",
		Dir:            "ltr",
		Title:          "Moneymoon Eid Images! 🎉",
		Sidebar:        "Developed by Moneymoon's team",
		Greeting:       "Moneymoon family wishes you a happy Eid Al-Adha! Please type your name and click the button to get your Eid Al-Adha 2025 greeting card!",
		NameLabel:      "Name:",
		NamesLabel:     "Names (one per line):",
		Generate:       "Generate Eid Image",
		Caption:        "Your Eid Image",
		Download:       "Download the Image!",
		DownloadAll:    "Download all cards",
		Toggle:         "عربي",
		EmptyInput:     "Please enter at least one name.",
		TooManyNames:   "Too many names in one request.",
		NameTooLong:    "One of the names is too long.",
		FallbackNotice: "The card font could not be loaded, a basic font was used instead.",
	},
	config.LangArabic: {
		Code:           "ar",
		Dir:            "rtl",
		Title:          "عيد موني مون!🎉",
		Sidebar:        "تم التطوير بواسطة فريق موني مون",
		Greeting:       "عائلة موني مون تتمنى لكم عيد أضحى سعيد!\nيرجى كتابة اسمك والضغط على الزر للحصول على بطاقة تهنئة عيد الأضحى",
		NameLabel:      "الاسم:",
		NamesLabel:     "الأسماء (اسم في كل سطر):",
		Generate:       "إنشاء بطاقة التهنئة",
		Caption:        "صورتك للعيد",
		Download:       "تحميل الصورة!",
		DownloadAll:    "تحميل جميع البطاقات",
		Toggle:         "EN",
		EmptyInput:     "يرجى إدخال اسم واحد على الأقل.",
		TooManyNames:   "عدد الأسماء كبير جدا.",
		NameTooLong:    "أحد الأسماء طويل جدا.",
		FallbackNotice: "تعذر تحميل خط البطاقة، تم استخدام خط بديل.",
	},
}

// Translations returns the strings for lang, English for unknown values.
func Translations(lang string) Strings {
	if s, ok := translations[lang]; ok {
		return s
	}
	return translations[config.LangEnglish]
}

// Toggle returns the other UI language.
func Toggle(lang string) string {
	if lang == config.LangArabic {
		return config.LangEnglish
	}
	return config.LangArabic
}

// Language normalizes a cookie value, falling back to def.
func Language(value, def string) string {
	if _, ok := translations[value]; ok {
		return value
	}
	if _, ok := translations[def]; ok {
		return def
	}
	return config.LangEnglish
}
