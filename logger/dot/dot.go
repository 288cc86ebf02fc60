package dot

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/briandowns/spinner"
	"github.com/fatih/color"
	"github.com/k1LoW/errors"
	"github.com/mattn/go-colorable"
)

var (
	yellow = color.New(color.FgYellow, color.Bold).SprintFunc()
	gray   = color.New(color.FgHiBlack).SprintFunc()
	green  = color.New(color.FgGreen).SprintFunc()
	red    = color.New(color.FgRed).SprintFunc()
)

var _ slog.Handler = (*dotHandler)(nil)

type dotHandler struct {
	handler slog.Handler
	spinner *spinner.Spinner
	stdout  io.Writer
	mu      *sync.Mutex
}

// New returns a handler that prints one glyph per icon event to stdout.
// A nil stdout writes to the colorable terminal.
func New(h slog.Handler, stdout io.Writer) (_ *dotHandler, err error) {
	defer func() {
		err = errors.WithStack(err)
	}()

	if stdout == nil {
		stdout = colorable.NewColorableStdout()
	}
	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond, spinner.WithWriter(stdout))
	if err := s.Color("yellow"); err != nil {
		return nil, err
	}
	s.Start()
	s.Disable()
	return &dotHandler{
		handler: h,
		spinner: s,
		stdout:  stdout,
		mu:      &sync.Mutex{},
	}, nil
}

func (h *dotHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.handler.Enabled(ctx, level)
}

func (h *dotHandler) Handle(ctx context.Context, r slog.Record) (err error) {
	defer func() {
		err = errors.WithStack(err)
	}()
	h.mu.Lock()
	defer h.mu.Unlock()

	if r.Message == "rendering icon" {
		if !h.spinner.Enabled() {
			h.spinner.Enable()
		}
		return nil
	}
	if h.spinner.Enabled() {
		h.spinner.Disable()
	}
	switch {
	case r.Message == "wrote icon":
		return h.write(green("."))
	case r.Message == "verified icon":
		var status string
		r.Attrs(func(attr slog.Attr) bool {
			if attr.Key == "status" {
				status = attr.Value.String()
				return false
			}
			return true
		})
		switch status {
		case "identical":
			return h.write(green("."))
		case "similar":
			return h.write(yellow("~"))
		case "missing":
			return h.write(gray("-"))
		default:
			return h.write(red("x"))
		}
	case strings.HasPrefix(r.Message, "failed to"):
		return h.write(red("!"))
	case strings.HasSuffix(r.Message, "completed"):
		return h.write("\n")
	}
	return nil
}

func (h *dotHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &dotHandler{handler: h.handler.WithAttrs(attrs), spinner: h.spinner, stdout: h.stdout, mu: h.mu}
}

func (h *dotHandler) WithGroup(name string) slog.Handler {
	return &dotHandler{handler: h.handler.WithGroup(name), spinner: h.spinner, stdout: h.stdout, mu: h.mu}
}

func (h *dotHandler) write(s string) (err error) {
	defer func() {
		err = errors.WithStack(err)
	}()

	_, err = io.WriteString(h.stdout, s)
	return err
}
