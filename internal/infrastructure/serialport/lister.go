package serialport

import (
	"fmt"
	"sort"
	"strings"

	"go.bug.st/serial"
	"go.bug.st/serial/enumerator"

	"espmanager/internal/domain/models"
	"espmanager/internal/domain/ports"
)

// Lister реализует интерфейс ports.PortLister через перечисление
// устройств операционной системы.
type Lister struct {
	log ports.Logger
}

// NewLister создает новый экземпляр Lister.
func NewLister(log ports.Logger) ports.PortLister {
	return &Lister{log: log}
}

// List возвращает найденные порты с описаниями, отсортированные по имени.
// Если подробное перечисление недоступно, возвращается хотя бы список имен.
func (l *Lister) List() ([]models.PortInfo, error) {
	details, err := enumerator.GetDetailedPortsList()
	if err != nil {
		l.log.Warn("подробное перечисление портов недоступно: %v", err)
		names, err := serial.GetPortsList()
		if err != nil {
			return nil, fmt.Errorf("ошибка перечисления портов: %w", err)
		}
		sort.Strings(names)
		infos := make([]models.PortInfo, 0, len(names))
		for _, n := range names {
			infos = append(infos, models.PortInfo{Name: n})
		}
		return infos, nil
	}

	infos := make([]models.PortInfo, 0, len(details))
	for _, d := range details {
		info := models.PortInfo{Name: d.Name, Description: describe(d)}
		info.LikelyESP32 = likelyESP32(info.Description)
		infos = append(infos, info)
	}
	sort.Slice(infos, func(i, j int) bool { return infos[i].Name < infos[j].Name })
	return infos, nil
}

// describe собирает описание порта в духе системного менеджера устройств.
func describe(d *enumerator.PortDetails) string {
	if d.Product != "" {
		return d.Product
	}
	if d.IsUSB {
		return fmt.Sprintf("USB VID:PID=%s:%s", d.VID, d.PID)
	}
	return ""
}

// likelyESP32 отмечает порты, чье описание похоже на USB-мост ESP32.
func likelyESP32(description string) bool {
	desc := strings.ToLower(description)
	return strings.Contains(desc, "esp") || strings.Contains(desc, "usb")
}
