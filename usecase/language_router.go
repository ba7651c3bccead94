package usecase

import (
	"strings"

	"github.com/jututor/server/domain"
)

// TriggerRule maps a lower-case phrase to the language it asks for
type TriggerRule struct {
	Phrase string
	Signal domain.Language
}

// DefaultTriggerRules is the ordered phrase table used by the chat router.
// Matching is plain substring containment on the lower-cased message.
var DefaultTriggerRules = []TriggerRule{
	// Requests for an English answer or translation
	{Phrase: "responda em inglês", Signal: domain.LanguageEnglish},
	{Phrase: "responda em ingles", Signal: domain.LanguageEnglish},
	{Phrase: "responde em inglês", Signal: domain.LanguageEnglish},
	{Phrase: "responde em ingles", Signal: domain.LanguageEnglish},
	{Phrase: "fale em inglês", Signal: domain.LanguageEnglish},
	{Phrase: "fale em ingles", Signal: domain.LanguageEnglish},
	{Phrase: "traduza para o inglês", Signal: domain.LanguageEnglish},
	{Phrase: "traduza para o ingles", Signal: domain.LanguageEnglish},
	{Phrase: "traduza para inglês", Signal: domain.LanguageEnglish},
	{Phrase: "traduza para ingles", Signal: domain.LanguageEnglish},
	{Phrase: "como se diz em inglês", Signal: domain.LanguageEnglish},
	{Phrase: "como se diz em ingles", Signal: domain.LanguageEnglish},
	{Phrase: "em inglês", Signal: domain.LanguageEnglish},
	{Phrase: "em ingles", Signal: domain.LanguageEnglish},
	{Phrase: "translate to english", Signal: domain.LanguageEnglish},
	{Phrase: "translate into english", Signal: domain.LanguageEnglish},
	{Phrase: "how do you say in english", Signal: domain.LanguageEnglish},
	{Phrase: "answer in english", Signal: domain.LanguageEnglish},
	{Phrase: "reply in english", Signal: domain.LanguageEnglish},
	{Phrase: "in english", Signal: domain.LanguageEnglish},

	// Requests for a Portuguese answer or translation
	{Phrase: "responda em português", Signal: domain.LanguagePortuguese},
	{Phrase: "responda em portugues", Signal: domain.LanguagePortuguese},
	{Phrase: "responde em português", Signal: domain.LanguagePortuguese},
	{Phrase: "responde em portugues", Signal: domain.LanguagePortuguese},
	{Phrase: "fale em português", Signal: domain.LanguagePortuguese},
	{Phrase: "fale em portugues", Signal: domain.LanguagePortuguese},
	{Phrase: "traduza para o português", Signal: domain.LanguagePortuguese},
	{Phrase: "traduza para o portugues", Signal: domain.LanguagePortuguese},
	{Phrase: "traduza para português", Signal: domain.LanguagePortuguese},
	{Phrase: "traduza para portugues", Signal: domain.LanguagePortuguese},
	{Phrase: "como se diz em português", Signal: domain.LanguagePortuguese},
	{Phrase: "como se diz em portugues", Signal: domain.LanguagePortuguese},
	{Phrase: "em português", Signal: domain.LanguagePortuguese},
	{Phrase: "em portugues", Signal: domain.LanguagePortuguese},
	{Phrase: "translate to portuguese", Signal: domain.LanguagePortuguese},
	{Phrase: "translate into portuguese", Signal: domain.LanguagePortuguese},
	{Phrase: "how do you say in portuguese", Signal: domain.LanguagePortuguese},
	{Phrase: "answer in portuguese", Signal: domain.LanguagePortuguese},
	{Phrase: "reply in portuguese", Signal: domain.LanguagePortuguese},
	{Phrase: "in portuguese", Signal: domain.LanguagePortuguese},
}

// portugueseAccents are the characters that rule out the looks-English guess
const portugueseAccents = "áéíóúàãõâêôç"

const (
	englishInstruction = "You are Ju's English teacher. " +
		"Answer only in English, with simple vocabulary, in at most two sentences. " +
		"If the student's sentence has an English mistake or asks whether something is correct, " +
		"explain the correction in Portuguese but show the corrected examples in English. " +
		"If the student explicitly asks for a Portuguese translation, answer only in Portuguese."

	portugueseInstruction = "You are Ju's English teacher. " +
		"Answer only in Portuguese, with simple vocabulary, in at most two sentences. " +
		"If the student explicitly asks for an answer or a translation in English, " +
		"answer in English instead, also in at most two sentences."
)

// LanguageRouter decides which language a tutor reply must use
type LanguageRouter struct {
	rules []TriggerRule
}

// NewLanguageRouter creates a router over DefaultTriggerRules
func NewLanguageRouter() *LanguageRouter {
	return NewLanguageRouterWithRules(DefaultTriggerRules)
}

// NewLanguageRouterWithRules creates a router over a custom phrase table.
// Phrases are lower-cased once here.
func NewLanguageRouterWithRules(rules []TriggerRule) *LanguageRouter {
	normalized := make([]TriggerRule, len(rules))
	for i, rule := range rules {
		normalized[i] = TriggerRule{Phrase: strings.ToLower(rule.Phrase), Signal: rule.Signal}
	}
	return &LanguageRouter{rules: normalized}
}

// Classify computes the mode, target language and system instruction for a
// message. It never fails.
func (r *LanguageRouter) Classify(message string) domain.Classification {
	lowered := strings.ToLower(message)

	signals := make(map[domain.Language]bool, 2)
	for _, rule := range r.rules {
		if !signals[rule.Signal] && strings.Contains(lowered, rule.Phrase) {
			signals[rule.Signal] = true
		}
	}

	// English is checked first, so a message matching both asks for English.
	mode := domain.ModeNormal
	var target domain.Language
	switch {
	case signals[domain.LanguageEnglish]:
		mode = domain.ModeToEnglish
		target = domain.LanguageEnglish
	case signals[domain.LanguagePortuguese]:
		mode = domain.ModeToPortuguese
		target = domain.LanguagePortuguese
	case looksEnglish(lowered):
		target = domain.LanguageEnglish
	default:
		target = domain.LanguagePortuguese
	}

	return domain.Classification{
		Mode:              mode,
		TargetLanguage:    target,
		SystemInstruction: instructionFor(target),
	}
}

// ComposePrompt joins the classification's instruction with the message
func ComposePrompt(c domain.Classification, message string) string {
	return c.SystemInstruction + domain.PromptDelimiter + message
}

// looksEnglish expects an already lower-cased message
func looksEnglish(lowered string) bool {
	hasLetter := false
	for _, r := range lowered {
		if r >= 'a' && r <= 'z' {
			hasLetter = true
			continue
		}
		if strings.ContainsRune(portugueseAccents, r) {
			return false
		}
	}
	return hasLetter
}

func instructionFor(lang domain.Language) string {
	if lang == domain.LanguageEnglish {
		return englishInstruction
	}
	return portugueseInstruction
}
