// Package ui содержит консольные меню приложения. Слой тонкий:
// вся логика живет в сервисах, здесь только вывод и разбор ввода.
package ui

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// Коды ANSI для подсветки сообщений.
const (
	colorReset  = "\033[0m"
	colorRed    = "\033[91m"
	colorGreen  = "\033[92m"
	colorYellow = "\033[93m"
	colorWhite  = "\033[97m"
)

// Console читает ввод пользователя построчно и печатает сообщения
// с подсветкой по уровню.
type Console struct {
	in  *bufio.Reader
	out io.Writer
}

// NewConsole создает новый экземпляр Console.
func NewConsole(in io.Reader, out io.Writer) *Console {
	return &Console{
		in:  bufio.NewReader(in),
		out: out,
	}
}

// Out возвращает приемник вывода консоли.
func (c *Console) Out() io.Writer {
	return c.out
}

// Print печатает строку без подсветки.
func (c *Console) Print(format string, args ...interface{}) {
	fmt.Fprintf(c.out, format+"\n", args...)
}

// Blank печатает пустую строку.
func (c *Console) Blank() {
	fmt.Fprintln(c.out)
}

// Info печатает информационное сообщение.
func (c *Console) Info(format string, args ...interface{}) {
	c.colored(colorWhite, format, args...)
}

// Success печатает сообщение об успехе.
func (c *Console) Success(format string, args ...interface{}) {
	c.colored(colorGreen, format, args...)
}

// Warn печатает предупреждение.
func (c *Console) Warn(format string, args ...interface{}) {
	c.colored(colorYellow, format, args...)
}

// Error печатает сообщение об ошибке.
func (c *Console) Error(format string, args ...interface{}) {
	c.colored(colorRed, format, args...)
}

// Separator печатает заголовок-разделитель между экранами меню.
func (c *Console) Separator(title string) {
	line := strings.Repeat("=", 12)
	fmt.Fprintf(c.out, "%s %s %s\n", line, title, line)
}

// Prompt печатает приглашение и возвращает введенную строку без
// окружающих пробелов. Обрыв ввода трактуется как команда выхода.
func (c *Console) Prompt(label string) string {
	fmt.Fprintf(c.out, "%s > ", label)
	line, err := c.in.ReadString('\n')
	if err != nil && line == "" {
		return "exit"
	}
	return strings.TrimSpace(line)
}

// Confirm задает вопрос да/нет и переспрашивает при любом другом ответе.
func (c *Console) Confirm(label string) bool {
	for {
		switch strings.ToLower(c.Prompt(label + " (y/n):")) {
		case "y":
			return true
		case "n":
			return false
		}
		c.Warn("Введите 'y' или 'n'.")
	}
}

func (c *Console) colored(color, format string, args ...interface{}) {
	fmt.Fprintf(c.out, color+format+colorReset+"\n", args...)
}
