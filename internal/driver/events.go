package driver

// Stage перечисляет фазы фронтенда для прогресс-событий.
type Stage uint8

const (
	StageQueued Stage = iota
	StageLex
	StageParse
	StageCheck
)

func (s Stage) String() string {
	switch s {
	case StageLex:
		return "lexing"
	case StageParse:
		return "parsing"
	case StageCheck:
		return "checking"
	default:
		return "queued"
	}
}

// Status — состояние файла внутри фазы.
type Status uint8

const (
	StatusQueued Status = iota
	StatusWorking
	StatusDone
	StatusError
)

// Event — единица обратной связи для UI при проверке директории.
type Event struct {
	File   string
	Stage  Stage
	Status Status
}
