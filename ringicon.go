package ringicon

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/k1LoW/errors"
)

// Icon is one square PNG to produce.
type Icon struct {
	Size int    `yaml:"size" json:"size"`
	Path string `yaml:"path" json:"path"`
}

// Validate reports whether the icon has a positive size and an output path.
func (i Icon) Validate() error {
	if i.Size <= 0 {
		return fmt.Errorf("invalid icon size %d for %q: size must be positive", i.Size, i.Path)
	}
	if i.Path == "" {
		return fmt.Errorf("icon of size %d has no output path", i.Size)
	}
	return nil
}

// DefaultIcons are the PWA icons written when nothing else is configured.
func DefaultIcons() []Icon {
	return []Icon{
		{Size: 192, Path: "public/icon-192.png"},
		{Size: 512, Path: "public/icon-512.png"},
	}
}

type Generator struct {
	icons  []Icon
	logger *slog.Logger
}

type Option func(*Generator) error

func WithIcons(icons []Icon) Option {
	return func(g *Generator) error {
		if len(icons) == 0 {
			return fmt.Errorf("no icons to generate")
		}
		for _, i := range icons {
			if err := i.Validate(); err != nil {
				return err
			}
		}
		g.icons = icons
		return nil
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(g *Generator) error {
		g.logger = logger
		return nil
	}
}

// New creates a Generator for DefaultIcons unless WithIcons says otherwise.
func New(opts ...Option) (_ *Generator, err error) {
	defer func() {
		err = errors.WithStack(err)
	}()
	g := &Generator{
		icons:  DefaultIcons(),
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		if err := opt(g); err != nil {
			return nil, err
		}
	}
	return g, nil
}

func (g *Generator) Icons() []Icon {
	return g.icons
}

// Generate renders, encodes and writes every icon in order. Each file is
// completely written before the next icon is rendered. Output directories
// are expected to exist already.
func (g *Generator) Generate(ctx context.Context) (err error) {
	defer func() {
		err = errors.WithStack(err)
	}()
	for _, icon := range g.icons {
		if err := ctx.Err(); err != nil {
			return err
		}
		g.logger.Info("rendering icon", slog.Int("size", icon.Size), slog.String("path", icon.Path))
		b, err := MarshalPNG(LoadRaster(icon.Size))
		if err != nil {
			g.logger.Error("failed to encode icon", slog.Int("size", icon.Size), slog.String("error", err.Error()))
			return err
		}
		if err := os.WriteFile(icon.Path, b, 0o644); err != nil {
			g.logger.Error("failed to write icon", slog.String("path", icon.Path), slog.String("error", err.Error()))
			return fmt.Errorf("failed to write icon %s: %w", icon.Path, err)
		}
		g.logger.Info("wrote icon", slog.Int("size", icon.Size), slog.String("path", icon.Path), slog.Int("bytes", len(b)))
	}
	g.logger.Info("generate completed", slog.Int("icons", len(g.icons)))
	return nil
}
