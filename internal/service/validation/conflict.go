package validation

import "espmanager/internal/domain/models"

// DetectConflicts находит bin-файлы, которым в config.ini назначен один и
// тот же адрес памяти. Обход идет в порядке ключей файла, владельцем адреса
// считается первый встреченный файл: при трех файлах на одном адресе
// вернется два конфликта, оба указывают на первого владельца.
func DetectConflicts(settings *models.ProjectSettings) []models.Issue {
	owners := make(map[string]string)
	var conflicts []models.Issue
	for _, img := range settings.Images {
		if first, ok := owners[img.Address]; ok {
			conflicts = append(conflicts, models.Issue{
				Kind:  models.IssueAddressConflict,
				Name:  img.File,
				Peer:  first,
				Value: img.Address,
			})
			continue
		}
		owners[img.Address] = img.File
	}
	return conflicts
}
