// Команда espprobe — диагностическая утилита подбора скорости порта.
// Проверяет одну скорость либо перебирает весь список поддерживаемых,
// результат пригоден для скриптов: код возврата 0 только при
// подтвержденной связи.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"

	"espmanager/internal/domain/models"
	"espmanager/internal/domain/ports"
	"espmanager/internal/infrastructure/logger"
	"espmanager/internal/infrastructure/serialport"
	"espmanager/internal/infrastructure/storage"
	"espmanager/internal/service/negotiation"
)

func main() {
	var (
		portName = flag.String("port", "", "имя последовательного порта (обязателен)")
		baudRate = flag.Int("baud", 0, "скорость одиночной проверки, 0 — полный перебор")
		list     = flag.Bool("list", false, "показать найденные порты и выйти")
		verbose  = flag.Bool("v", false, "подробный журнал в stderr")
	)
	flag.Parse()

	log := logger.NewNop()
	if *verbose {
		log = logger.NewStdLogger("espprobe ")
	}

	if *list {
		os.Exit(listPorts(serialport.NewLister(log)))
	}
	if *portName == "" {
		fmt.Fprintln(os.Stderr, "не задан порт: укажите -port")
		flag.Usage()
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	negotiator := negotiation.NewNegotiator(serialport.NewOpener(), storage.NewIniConfigStore(), log)

	if *baudRate > 0 {
		result := negotiator.Probe(*portName, *baudRate)
		fmt.Printf("%s @ %d: %s\n", result.Port, result.BaudRate, result.Outcome)
		if result.Confirmed() {
			os.Exit(0)
		}
		os.Exit(1)
	}

	sweep, err := negotiator.Sweep(ctx, *portName, nil)
	for _, attempt := range sweep.Attempts {
		fmt.Printf("%s @ %d: %s\n", attempt.Port, attempt.BaudRate, attempt.Outcome)
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	if sweep.State == models.SweepConfirmed {
		fmt.Printf("подтвержденная скорость: %d\n", sweep.BaudRate)
		os.Exit(0)
	}
	fmt.Println("рабочая скорость не найдена")
	os.Exit(1)
}

// listPorts печатает найденные порты и возвращает код завершения.
func listPorts(lister ports.PortLister) int {
	infos, err := lister.List()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 2
	}
	if len(infos) == 0 {
		fmt.Println("порты не найдены")
		return 1
	}
	for _, info := range infos {
		marker := ""
		if info.LikelyESP32 {
			marker = " (похоже на ESP32)"
		}
		fmt.Printf("%s — %s%s\n", info.Name, info.Description, marker)
	}
	return 0
}
