// Package logger is the logging facade used by the codec and the tools.
package logger

import (
	"log/slog"

	"github.com/rs/zerolog"
)

// Logger is satisfied by every backend in this package. Arguments after msg
// are alternating key/value pairs.
type Logger interface {
	Error(msg string, args ...any)
	Warn(msg string, args ...any)
	Info(msg string, args ...any)
	Debug(msg string, args ...any)
}

type SlogHandler struct {
	logger *slog.Logger
}

// New returns a Logger writing through h.
func New(h slog.Handler) *SlogHandler {
	return &SlogHandler{logger: slog.New(h)}
}

func (handler *SlogHandler) Error(msg string, args ...any) {
	handler.logger.Error(msg, args...)
}

func (handler *SlogHandler) Warn(msg string, args ...any) {
	handler.logger.Warn(msg, args...)
}

func (handler *SlogHandler) Info(msg string, args ...any) {
	handler.logger.Info(msg, args...)
}

func (handler *SlogHandler) Debug(msg string, args ...any) {
	handler.logger.Debug(msg, args...)
}

type ZerologHandler struct {
	logger zerolog.Logger
}

// NewZerolog returns a Logger writing through l.
func NewZerolog(l zerolog.Logger) *ZerologHandler {
	return &ZerologHandler{logger: l}
}

// Nop returns a Logger that discards everything.
func Nop() *ZerologHandler {
	return NewZerolog(zerolog.Nop())
}

func (handler *ZerologHandler) Error(msg string, args ...any) {
	handler.logger.Error().Fields(args).Msg(msg)
}

func (handler *ZerologHandler) Warn(msg string, args ...any) {
	handler.logger.Warn().Fields(args).Msg(msg)
}

func (handler *ZerologHandler) Info(msg string, args ...any) {
	handler.logger.Info().Fields(args).Msg(msg)
}

func (handler *ZerologHandler) Debug(msg string, args ...any) {
	handler.logger.Debug().Fields(args).Msg(msg)
}
