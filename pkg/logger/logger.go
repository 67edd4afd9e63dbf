package logger

import (
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Options controla la salida y el nivel del logger.
type Options struct {
	Env     string // development -> consola legible; otro valor -> JSON
	Debug   bool   // true habilita nivel debug
	Service string // nombre del servicio, agregado como campo fijo
}

// New crea el logger estructurado del proceso. En development escribe en
// consola legible; en cualquier otro entorno escribe JSON por línea.
// También reemplaza el logger global de zerolog para librerías que lo usen.
func New(opts Options) zerolog.Logger {
	var w io.Writer = os.Stdout
	if opts.Env == "development" {
		w = zerolog.ConsoleWriter{Out: os.Stdout}
	}

	level := zerolog.InfoLevel
	if opts.Debug {
		level = zerolog.DebugLevel
	}

	zl := zerolog.New(w).Level(level).With().
		Timestamp().
		Str("service", opts.Service).
		Logger()

	log.Logger = zl
	return zl
}
