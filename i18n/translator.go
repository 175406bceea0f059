package i18n

// Translator retrieves localized messages for definition error codes.
// data provides optional metadata to embed in the message (for example,
// "property" or "shape").
type Translator interface {
	Message(code string, data map[string]string) string
}

// dictTranslator is the built-in dictionary-based Translator.
type dictTranslator struct{ lang string }

func (t dictTranslator) Message(code string, data map[string]string) string {
	switch t.lang {
	case "ja":
		switch code {
		case "duplicate_property":
			return "プロパティ名が重複しています"
		case "invalid_constraint":
			return "制約が不正です"
		case "default_type_mismatch":
			return "デフォルト値の型が一致しません"
		case "struct_compatibility":
			return "固定レコード表現と互換性がありません"
		case "unresolved_dependency":
			return "未定義のシェイプを参照しています"
		}
	default: // "en"
		switch code {
		case "duplicate_property":
			return "duplicate property"
		case "invalid_constraint":
			return "invalid constraint"
		case "default_type_mismatch":
			return "default does not match the declared type"
		case "struct_compatibility":
			return "incompatible with fixed-record representation"
		case "unresolved_dependency":
			return "shape is not defined yet"
		}
	}
	return code
}

var currentTranslator Translator = dictTranslator{lang: "en"}

// SetLanguage switches the built-in Translator language ("en"/"ja").
func SetLanguage(lang string) {
	if lang != "ja" {
		lang = "en"
	}
	currentTranslator = dictTranslator{lang: lang}
}

// SetTranslator replaces the Translator implementation (not limited to the
// dictionary version).
func SetTranslator(tr Translator) {
	if tr == nil {
		currentTranslator = dictTranslator{lang: "en"}
		return
	}
	currentTranslator = tr
}

// T fetches a message for the given code using the current Translator.
func T(code string, data map[string]string) string { return currentTranslator.Message(code, data) }
