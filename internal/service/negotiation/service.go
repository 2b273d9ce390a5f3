package negotiation

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"espmanager/internal/domain/models"
	"espmanager/internal/domain/ports"
	"espmanager/pkg/cleantext"
)

const (
	// syncByte отправляется устройству как узнаваемый шаблон.
	syncByte = 0x55
	// readBudget — максимум байт ответа на одну попытку.
	readBudget = 100
	// probeTimeout — окно чтения ответа одной попытки.
	probeTimeout = time.Second
)

// bootSignatures — подстроки вывода загрузчика ESP32, по которым
// подтверждается совпадение скорости.
var bootSignatures = []string{"ESP", "rst:"}

// Negotiator подбирает рабочую скорость последовательного порта.
// Попытки строго последовательны: следующая начинается только после
// закрытия порта предыдущей.
type Negotiator struct {
	opener ports.PortOpener
	store  ports.ConfigStore
	log    ports.Logger
}

// NewNegotiator создает новый экземпляр Negotiator
func NewNegotiator(opener ports.PortOpener, store ports.ConfigStore, log ports.Logger) *Negotiator {
	return &Negotiator{
		opener: opener,
		store:  store,
		log:    log,
	}
}

// Probe выполняет одну попытку связи: открывает порт, отправляет байт
// синхронизации и ждет сигнатуру загрузчика в ответе. Попытка ограничена
// таймаутом чтения, порт закрывается на любом исходе.
func (n *Negotiator) Probe(portName string, baudRate int) models.ProbeResult {
	result := models.ProbeResult{Port: portName, BaudRate: baudRate}

	port, err := n.opener.Open(portName, baudRate)
	if err != nil {
		n.log.Warn("порт %s не открылся на скорости %d: %v", portName, baudRate, err)
		result.Outcome = models.ProbeDeviceError
		result.Err = err
		return result
	}
	defer port.Close()

	if err := port.SetReadTimeout(probeTimeout); err != nil {
		result.Outcome = models.ProbeDeviceError
		result.Err = err
		return result
	}
	if _, err := port.Write([]byte{syncByte}); err != nil {
		n.log.Warn("ошибка записи в порт %s на скорости %d: %v", portName, baudRate, err)
		result.Outcome = models.ProbeDeviceError
		result.Err = err
		return result
	}

	response, err := readResponse(port, readBudget)
	result.Response = response
	if err != nil {
		n.log.Warn("ошибка чтения из порта %s на скорости %d: %v", portName, baudRate, err)
		result.Outcome = models.ProbeDeviceError
		result.Err = err
		return result
	}

	if text := cleantext.Strip(response); hasBootSignature(text) {
		n.log.Debug("ответ устройства на скорости %d: %s", baudRate, text)
		result.Outcome = models.ProbeConfirmed
	} else {
		result.Outcome = models.ProbeRejected
	}
	return result
}

// Sweep перебирает скорости от большей к меньшей до первого подтверждения.
// Пустой срез rates означает весь список поддерживаемых скоростей. Отмена
// контекста проверяется между попытками, когда порт гарантированно закрыт.
func (n *Negotiator) Sweep(ctx context.Context, portName string, rates []int) (models.SweepResult, error) {
	if len(rates) == 0 {
		rates = models.SupportedBaudRates
	}
	ordered := make([]int, len(rates))
	copy(ordered, rates)
	sort.Sort(sort.Reverse(sort.IntSlice(ordered)))

	result := models.SweepResult{
		ID:   uuid.NewString(),
		Port: portName,
	}
	n.log.Info("перебор %s: порт %s, кандидатов: %d", result.ID, portName, len(ordered))

	for _, rate := range ordered {
		if err := ctx.Err(); err != nil {
			return result, fmt.Errorf("перебор скоростей прерван: %w", err)
		}

		attempt := n.Probe(portName, rate)
		result.Attempts = append(result.Attempts, attempt)

		if attempt.Confirmed() {
			result.State = models.SweepConfirmed
			result.BaudRate = rate
			n.log.Info("перебор %s: скорость %d подтверждена", result.ID, rate)
			return result, nil
		}
	}

	result.State = models.SweepExhausted
	n.log.Warn("перебор %s: ни одна скорость не подтверждена", result.ID)
	return result, nil
}

// Negotiate проверяет связь на известной скорости проекта. Если связи нет,
// через consent запрашивается согласие на перебор; найденная перебором
// скорость сохраняется в config.ini проекта. Возвращенное значение
// используется как скорость для дальнейшей работы с портом.
//
// Отказ от перебора не считается ошибкой: работа продолжается на прежней,
// пусть и неподтвержденной, скорости. При исчерпании кандидатов
// возвращается models.ErrNoWorkingRate, подключаться в этом случае нельзя.
func (n *Negotiator) Negotiate(ctx context.Context, portName string, knownRate int, projectPath string, rates []int, consent func(models.ProbeResult) bool) (int, error) {
	first := n.Probe(portName, knownRate)
	if first.Confirmed() {
		return knownRate, nil
	}

	if consent == nil || !consent(first) {
		return knownRate, nil
	}

	sweep, err := n.Sweep(ctx, portName, rates)
	if err != nil {
		return 0, err
	}
	if sweep.State != models.SweepConfirmed {
		return 0, models.ErrNoWorkingRate
	}

	if projectPath != "" {
		if err := n.store.SetBaudRate(projectPath, sweep.BaudRate); err != nil {
			n.log.Error("не удалось сохранить скорость %d в config.ini: %v", sweep.BaudRate, err)
		} else {
			n.log.Info("скорость %d сохранена в config.ini проекта", sweep.BaudRate)
		}
	}
	return sweep.BaudRate, nil
}

// readResponse накапливает ответ устройства, пока не закончится бюджет
// байтов либо окно чтения. Таймаут порта перед каждым чтением ужимается
// до остатка окна, поэтому попытка не может растянуться на два окна.
// Нулевое чтение означает тишину в линии.
func readResponse(port ports.SerialPort, budget int) ([]byte, error) {
	buf := make([]byte, budget)
	total := 0
	deadline := time.Now().Add(probeTimeout)
	for total < budget {
		remaining := time.Until(deadline)
		if remaining <= 0 {
			break
		}
		if err := port.SetReadTimeout(remaining); err != nil {
			return buf[:total], err
		}
		count, err := port.Read(buf[total:])
		if err != nil {
			return buf[:total], err
		}
		if count == 0 {
			break
		}
		total += count
	}
	return buf[:total], nil
}

func hasBootSignature(text string) bool {
	for _, sig := range bootSignatures {
		if strings.Contains(text, sig) {
			return true
		}
	}
	return false
}
