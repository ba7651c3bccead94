package domain

// Language is the language a tutor reply must be written in
type Language string

const (
	LanguageEnglish    Language = "english"
	LanguagePortuguese Language = "portuguese"
)

// Mode tells whether the student asked for a regular answer or a translation
type Mode string

const (
	ModeNormal       Mode = "normal"
	ModeToEnglish    Mode = "toEnglish"
	ModeToPortuguese Mode = "toPortuguese"
)

// Classification is the routing decision for one chat message.
// It is computed per request and never stored.
type Classification struct {
	Mode              Mode
	TargetLanguage    Language
	SystemInstruction string
}

// PromptDelimiter separates the system instruction from the student's message
const PromptDelimiter = "\n\nMensagem do aluno: "
