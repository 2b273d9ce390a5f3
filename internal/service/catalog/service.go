package catalog

import (
	"fmt"
	"os"
	"path/filepath"

	"espmanager/internal/domain/models"
	"espmanager/internal/domain/ports"
	"espmanager/internal/service/validation"
)

// Service держит упорядоченный список проектов корневой папки.
// Порядок записей задается порядком обхода папки при сканировании
// и не меняется до следующего сканирования.
type Service struct {
	root      string
	validator *validation.Validator
	log       ports.Logger
	projects  []*models.Project
}

// NewService создает новый экземпляр Service
func NewService(root string, validator *validation.Validator, log ports.Logger) *Service {
	return &Service{
		root:      root,
		validator: validator,
		log:       log,
	}
}

// Root возвращает путь к корневой папке проектов.
func (s *Service) Root() string {
	return s.root
}

// Scan перечитывает корневую папку и перестраивает список проектов,
// проверяя каждый. Если корень отсутствует, список становится пустым
// и возвращается ошибка с models.ErrRootNotFound внутри.
func (s *Service) Scan() ([]*models.Project, error) {
	entries, err := os.ReadDir(s.root)
	if err != nil {
		s.projects = nil
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("папка проектов %s не найдена: %w", s.root, models.ErrRootNotFound)
		}
		return nil, fmt.Errorf("ошибка чтения папки проектов %s: %w", s.root, err)
	}

	projects := make([]*models.Project, 0, len(entries))
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		path := filepath.Join(s.root, e.Name())
		issues, warnings := s.validator.Validate(path)
		projects = append(projects, &models.Project{
			Name:     e.Name(),
			Path:     path,
			Issues:   issues,
			Warnings: warnings,
		})
	}

	s.projects = projects
	s.log.Debug("каталог %s: найдено проектов: %d", s.root, len(projects))
	return s.projects, nil
}

// Projects возвращает список проектов после последнего сканирования.
func (s *Service) Projects() []*models.Project {
	return s.projects
}

// Find возвращает проект каталога по имени папки.
func (s *Service) Find(name string) (*models.Project, bool) {
	for _, p := range s.projects {
		if p.Name == name {
			return p, true
		}
	}
	return nil, false
}

// Revalidate повторно проверяет один проект и заменяет его проблемы и
// предупреждения на месте. Остальные записи и порядок списка не меняются.
func (s *Service) Revalidate(name string) (*models.Project, error) {
	p, ok := s.Find(name)
	if !ok {
		return nil, fmt.Errorf("проект %s не найден в каталоге", name)
	}
	p.Issues, p.Warnings = s.validator.Validate(p.Path)
	return p, nil
}
