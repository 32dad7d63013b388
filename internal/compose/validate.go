package compose

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/compose-spec/compose-go/v2/loader"
	"github.com/compose-spec/compose-go/v2/types"
	"gopkg.in/yaml.v3"
)

var (
	// ErrInvalidYAML means the text is not a YAML mapping.
	ErrInvalidYAML = errors.New("invalid YAML syntax")
	// ErrInvalidCompose means the document violates the Compose schema.
	ErrInvalidCompose = errors.New("invalid compose document")
)

// ValidationError carries the loader's message.
type ValidationError struct {
	Message string
	Err     error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Err, e.Message)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// Validate loads content with the Compose loader without touching Docker.
// env supplies values for ${VAR} interpolation, typically the generated .env.
func Validate(ctx context.Context, project string, content []byte, env map[string]string) (*types.Project, error) {
	var dict map[string]any
	if err := yaml.Unmarshal(content, &dict); err != nil || dict == nil {
		msg := "document is empty"
		if err != nil {
			msg = err.Error()
		}
		return nil, &ValidationError{Message: msg, Err: ErrInvalidYAML}
	}

	p, err := loader.LoadWithContext(ctx, types.ConfigDetails{
		WorkingDir:  ".",
		ConfigFiles: []types.ConfigFile{{Filename: "docker-compose.yml", Content: content, Config: dict}},
		Environment: env,
	}, func(opts *loader.Options) {
		opts.SetProjectName(loader.NormalizeProjectName(project), true)
		opts.SkipValidation = false
		opts.SkipInterpolation = false
		opts.SkipNormalization = true
		opts.SkipExtends = true
	})
	if err != nil {
		return nil, &ValidationError{Message: err.Error(), Err: ErrInvalidCompose}
	}
	return p, nil
}

// ParseEnv reads KEY=VALUE lines, ignoring blanks and # comments.
func ParseEnv(content string) map[string]string {
	env := make(map[string]string)
	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if k, v, ok := strings.Cut(line, "="); ok {
			env[k] = v
		}
	}
	return env
}
