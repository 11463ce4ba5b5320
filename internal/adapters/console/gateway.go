// Package console — настольный режим ассистента: реплики читаются из stdin
// построчно, ответы печатаются в stdout.
package console

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"math/rand"

	"github.com/rs/zerolog"

	"voice-reminder-bot/internal/usecase/dialog"
)

// Announcer печатает реплики ассистента.
type Announcer struct {
	out io.Writer
}

// NewAnnouncer создаёт печатающую доставку.
func NewAnnouncer(out io.Writer) *Announcer {
	return &Announcer{out: out}
}

// Speak выводит сообщение.
func (a *Announcer) Speak(text string) {
	fmt.Fprintf(a.out, "[ассистент] %s\n", text)
}

// Gateway читает реплики из in до конца потока или отмены контекста.
type Gateway struct {
	log    zerolog.Logger
	dialog *dialog.Controller
	ack    []string
	in     io.Reader
	out    io.Writer
}

// NewGateway создаёт консольный шлюз.
func NewGateway(controller *dialog.Controller, ackPhrases []string, in io.Reader, out io.Writer, logger zerolog.Logger) *Gateway {
	return &Gateway{log: logger, dialog: controller, ack: ackPhrases, in: in, out: out}
}

// Run печатает приветствие и обрабатывает строки ввода как реплики.
func (g *Gateway) Run(ctx context.Context) error {
	if len(g.ack) > 0 {
		fmt.Fprintf(g.out, "[ассистент] %s\n", g.ack[rand.Intn(len(g.ack))])
	}
	scanner := bufio.NewScanner(g.in)
	for scanner.Scan() {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		line := scanner.Text()
		if line == "" {
			continue
		}
		g.dialog.HandleUtterance(ctx, line)
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("чтение ввода: %w", err)
	}
	g.log.Info().Msg("console: ввод закончился")
	return nil
}
