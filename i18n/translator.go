package i18n

import "strings"

// Translator retrieves localized messages for Issue codes.
// data provides optional metadata to embed in the message (for example,
// "tag" or "parent").
type Translator interface {
	Message(code string, data map[string]string) string
}

// dictTranslator is the built-in dictionary-based Translator.
type dictTranslator struct{ lang string }

var messages = map[string]map[string]string{
	"en": {
		"required":             "required element {tag} missing from {parent}",
		"incomplete_aggregate": "cannot emit {parent}: required {tag} is absent",
		"unknown_tag":          "unknown tag {tag} in {parent}",
		"out_of_order":         "tag {tag} out of declared order in {parent}",
		"kind_mismatch":        "{tag} has the wrong shape (leaf versus aggregate)",
		"invalid_format":       "malformed value for {tag}",
		"invalid_type":         "value for {tag} has the wrong type",
		"unknown_message_set":  "unknown message set {tag}",
		"malformed_header":     "malformed header",
		"node_invariant":       "wire node is both leaf and aggregate",
		"max_depth":            "max depth exceeded at {tag}",
		"parse_error":          "parse error",
		"unrecognized_enum":    "unrecognized literal for {tag}",
		"unregistered_type":    "no registered type for {tag}",
		"invalid_schema":       "invalid schema declaration",
	},
	"ja": {
		"required":             "{parent} に必須要素 {tag} がありません",
		"incomplete_aggregate": "必須要素 {tag} が無いため {parent} を出力できません",
		"unknown_tag":          "{parent} 内の未知のタグ {tag} です",
		"out_of_order":         "{parent} 内のタグ {tag} の順序が不正です",
		"kind_mismatch":        "{tag} の形式 (要素/集約) が不正です",
		"invalid_format":       "{tag} の値の書式が不正です",
		"invalid_type":         "{tag} の値の型が不正です",
		"unknown_message_set":  "未知のメッセージセット {tag} です",
		"malformed_header":     "ヘッダが不正です",
		"node_invariant":       "ノードが要素と集約の両方になっています",
		"max_depth":            "{tag} で最大深度を超えました",
		"parse_error":          "解析エラー",
		"unrecognized_enum":    "{tag} の値が列挙に含まれていません",
		"unregistered_type":    "{tag} に対応する型が登録されていません",
		"invalid_schema":       "スキーマ宣言が不正です",
	},
}

func (t dictTranslator) Message(code string, data map[string]string) string {
	msg, ok := messages[t.lang][code]
	if !ok {
		return code
	}
	for k, v := range data {
		if v == "" {
			v = "?"
		}
		msg = strings.ReplaceAll(msg, "{"+k+"}", v)
	}
	return msg
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
