// Package prompt читает ответы пользователя для интерактивных команд
package prompt

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"golang.org/x/term"
)

// Prompter задает вопросы в out и читает ответы из in.
// Пароль читается без эха, только если in - терминал.
type Prompter struct {
	in   *bufio.Reader
	file *os.File
	out  io.Writer
}

func New(in io.Reader, out io.Writer) *Prompter {
	p := &Prompter{
		in:  bufio.NewReader(in),
		out: out,
	}
	if f, ok := in.(*os.File); ok {
		p.file = f
	}
	return p
}

// Line читает строку без перевода строки
func (p *Prompter) Line(label string) (string, error) {
	fmt.Fprint(p.out, label)

	line, err := p.in.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		return "", fmt.Errorf("ошибка чтения ввода: %w", err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// Password читает пароль
func (p *Prompter) Password(label string) (string, error) {
	if p.file == nil || !term.IsTerminal(int(p.file.Fd())) {
		return p.Line(label)
	}

	fmt.Fprint(p.out, label)
	password, err := term.ReadPassword(int(p.file.Fd()))
	fmt.Fprintln(p.out)
	if err != nil {
		return "", fmt.Errorf("ошибка чтения пароля: %w", err)
	}
	return string(password), nil
}

// Confirm задает вопрос да/нет; по умолчанию нет
func (p *Prompter) Confirm(message string) bool {
	answer, err := p.Line(message + " [y/N]: ")
	if err != nil {
		return false
	}

	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes", "д", "да":
		return true
	default:
		return false
	}
}

// Alert выводит сообщение красным цветом
func (p *Prompter) Alert(message string) {
	Alert(p.out, message)
}

func Alert(w io.Writer, message string) {
	_, _ = color.New(color.FgRed, color.Bold).Fprintln(w, message)
}

// Warn выводит предупреждение желтым цветом
func Warn(w io.Writer, message string) {
	_, _ = color.New(color.FgYellow).Fprintln(w, "⚠️  "+message)
}
