package validation

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"espmanager/internal/domain/models"
	"espmanager/internal/domain/ports"
)

// Validator проверяет проект прошивки: состав bin-файлов, config.ini и их
// согласованность. Список проблем пересоздается целиком при каждом вызове.
type Validator struct {
	store ports.ConfigStore
	log   ports.Logger
}

// NewValidator создает новый экземпляр Validator
func NewValidator(store ports.ConfigStore, log ports.Logger) *Validator {
	return &Validator{
		store: store,
		log:   log,
	}
}

// Validate выполняет проверки проекта в фиксированном порядке и возвращает
// найденные проблемы и предупреждения. Метод не возвращает ошибок и не
// паникует: любой внутренний сбой превращается в одну синтетическую
// проблему, чтобы вызывающий код всегда получил результат.
func (v *Validator) Validate(projectPath string) (issues []models.Issue, warnings []models.Warning) {
	defer func() {
		if r := recover(); r != nil {
			v.log.Error("паника при проверке проекта %s: %v", projectPath, r)
			issues = []models.Issue{{Kind: models.IssueInternal, Value: fmt.Sprint(r)}}
			warnings = nil
		}
	}()

	if !v.store.Exists(projectPath) {
		issues = append(issues, models.Issue{Kind: models.IssueMissingConfig})
		return issues, warnings
	}

	settings, err := v.store.Load(projectPath)
	switch {
	case errors.Is(err, models.ErrConfigMissing):
		issues = append(issues, models.Issue{Kind: models.IssueMissingConfig})
		return issues, warnings
	case errors.Is(err, models.ErrSectionMissing):
		issues = append(issues, models.Issue{Kind: models.IssueMissingSection})
		return issues, warnings
	case err != nil:
		v.log.Error("не удалось прочитать config.ini проекта %s: %v", projectPath, err)
		issues = append(issues, models.Issue{Kind: models.IssueInternal, Value: err.Error()})
		return issues, warnings
	}

	binFiles, subfolders, err := listProjectDir(projectPath)
	if err != nil {
		v.log.Error("не удалось прочитать папку проекта %s: %v", projectPath, err)
		issues = append(issues, models.Issue{Kind: models.IssueInternal, Value: err.Error()})
		return issues, warnings
	}

	issues = append(issues, DetectConflicts(settings)...)

	for _, name := range binFiles {
		if _, ok := settings.Image(name); !ok {
			issues = append(issues, models.Issue{Kind: models.IssueUnreferencedBinary, Name: name})
		}
	}
	for _, img := range settings.Images {
		if !contains(binFiles, img.File) {
			issues = append(issues, models.Issue{Kind: models.IssueDanglingReference, Name: img.File})
		}
	}

	if len(subfolders) > 0 {
		issues = append(issues, models.Issue{
			Kind:  models.IssueSubfoldersDetected,
			Value: strings.Join(subfolders, ", "),
		})
	}

	for _, img := range settings.Images {
		if !ValidAddress(img.Address) {
			issues = append(issues, models.Issue{
				Kind:  models.IssueInvalidAddress,
				Name:  img.File,
				Value: img.Address,
			})
		}
	}

	raw := settings.BaudRate
	if !isDecimal(raw) {
		issues = append(issues, models.Issue{Kind: models.IssueInvalidBaudRate, Value: raw})
		return issues, warnings
	}

	rate, perr := strconv.Atoi(raw)
	if perr != nil {
		// строка из одних цифр не поместилась в int, значение заведомо
		// выше любой поддерживаемой скорости
		warnings = append(warnings,
			models.Warning{Kind: models.WarnUnusualBaudRate, Value: raw},
			models.Warning{Kind: models.WarnVeryHighBaudRate, Value: raw})
		return issues, warnings
	}

	if !models.SupportedBaudRate(rate) {
		warnings = append(warnings, models.Warning{Kind: models.WarnUnusualBaudRate, Value: raw})
	}
	if rate < 0 {
		issues = append(issues, models.Issue{Kind: models.IssueNegativeBaudRate, Value: raw})
	}
	if rate > models.MaxReliableBaudRate {
		warnings = append(warnings, models.Warning{Kind: models.WarnVeryHighBaudRate, Value: raw})
	}

	return issues, warnings
}

// listProjectDir возвращает bin-файлы и подпапки прямо внутри папки
// проекта. Вложенные уровни не просматриваются.
func listProjectDir(path string) (binFiles, subfolders []string, err error) {
	entries, err := os.ReadDir(path)
	if err != nil {
		return nil, nil, fmt.Errorf("ошибка чтения папки проекта: %w", err)
	}
	for _, e := range entries {
		if e.IsDir() {
			subfolders = append(subfolders, e.Name())
			continue
		}
		if strings.HasSuffix(e.Name(), models.BinExtension) {
			binFiles = append(binFiles, e.Name())
		}
	}
	return binFiles, subfolders, nil
}

func contains(names []string, target string) bool {
	for _, n := range names {
		if n == target {
			return true
		}
	}
	return false
}
