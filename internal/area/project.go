package area

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// LoadProject reads a project context from a TOML file, starting from the
// default cost context so a file may list only its spaces.
func LoadProject(path string) (Context, error) {
	ctx := DefaultContext()
	ctx.Spaces = nil

	data, err := os.ReadFile(path) //nolint:gosec // user-supplied project file
	if err != nil {
		return ctx, fmt.Errorf("reading project: %w", err)
	}
	if err := toml.Unmarshal(data, &ctx); err != nil {
		return ctx, fmt.Errorf("parsing project: %w", err)
	}
	if err := ctx.Validate(); err != nil {
		return ctx, fmt.Errorf("project %s: %w", path, err)
	}
	return ctx, nil
}

// SaveProject writes a project context as TOML.
func SaveProject(path string, ctx Context) error {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644) //nolint:gosec // user-chosen output
	if err != nil {
		return fmt.Errorf("creating project file: %w", err)
	}
	defer f.Close()

	return toml.NewEncoder(f).Encode(ctx)
}
