package logger

import (
	"fmt"
	"io"
)

// Console presenta mensajes de la integración al operador y los deja en el log.
// Info y Comment se registran con nivel info; Error con nivel error.
type Console struct {
	out io.Writer // puede ser nil: solo log
	log *Logger
}

// NewConsole construye el presentador. out nil escribe únicamente en el log.
func NewConsole(out io.Writer, log *Logger) *Console {
	return &Console{out: out, log: log}
}

// Info mensaje de avance ("Created: A1").
func (c *Console) Info(msg string) {
	c.print(msg)
	c.log.Info().Str("kind", "info").Msg(msg)
}

// Error mensaje de fallo.
func (c *Console) Error(msg string) {
	c.print(msg)
	c.log.Error().Str("kind", "error").Msg(msg)
}

// Comment mensaje informativo que no es un cambio aplicado.
func (c *Console) Comment(msg string) {
	c.print(msg)
	c.log.Info().Str("kind", "comment").Msg(msg)
}

func (c *Console) print(msg string) {
	if c.out != nil {
		fmt.Fprintln(c.out, msg)
	}
}
