package models

// UpdateStatus описывает состояние проверки обновлений приложения.
type UpdateStatus int

const (
	UpdateUnknown UpdateStatus = iota
	UpdateGitNotInstalled
	UpdateNotARepo
	UpdateUnsupportedBranch
	UpdateOffline
	UpdateUncommitted
	UpdateAhead
	UpdateUpToDate
	UpdateAvailable
	UpdateCheckError
)

// String возвращает текст состояния для вывода пользователю.
func (s UpdateStatus) String() string {
	switch s {
	case UpdateGitNotInstalled:
		return "Git Not Installed"
	case UpdateNotARepo:
		return "Not a Git Repo"
	case UpdateUnsupportedBranch:
		return "Unsupported Branch"
	case UpdateOffline:
		return "Offline"
	case UpdateUncommitted:
		return "Uncommitted Changes"
	case UpdateAhead:
		return "Ahead of Remote"
	case UpdateUpToDate:
		return "Up-to-date"
	case UpdateAvailable:
		return "Update Available"
	case UpdateCheckError:
		return "Error Checking Updates"
	default:
		return "Unknown"
	}
}

// SupportedBranches — ветки, на которых работает автообновление.
var SupportedBranches = []string{"main", "nightly"}

// SupportedBranch сообщает, поддерживается ли автообновление на ветке.
func SupportedBranch(name string) bool {
	for _, b := range SupportedBranches {
		if b == name {
			return true
		}
	}
	return false
}

// UpdateDetails — сведения о доступном обновлении.
type UpdateDetails struct {
	Status     UpdateStatus
	Branch     string
	LocalHash  string
	RemoteHash string
	LocalDate  string // дата локального коммита в исходном формате git
	RemoteDate string
	Behind     int    // на сколько коммитов локальная копия отстала
	Subject    string // заголовок удаленного коммита
}
