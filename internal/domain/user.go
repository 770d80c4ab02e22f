package domain

// UserState represents user's current interaction state
type UserState string

const (
	StateIdle            UserState = "idle"
	StateWaitingPassword UserState = "waiting_password"
	StateImportFile      UserState = "import_file"
	StateImportEnglish   UserState = "import_english_column"
	StateImportJapanese  UserState = "import_japanese_column"
	StateQuiz            UserState = "quiz"
	StateFlashcards      UserState = "flashcards"
)
