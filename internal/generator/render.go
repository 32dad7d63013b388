package generator

import (
	"bytes"
	"fmt"
	"io/fs"
	"strings"
	"sync"
	"text/template"
	"unicode"
)

// Renderer parses and caches text templates.
//
// Service blobs are mostly shell, YAML and source snippets that use {{ }}
// themselves, so the delimiters are configurable.
type Renderer struct {
	funcMap     template.FuncMap
	left, right string
	cache       map[string]*template.Template
	mu          sync.RWMutex
}

// NewRenderer creates a renderer using the standard {{ }} delimiters.
func NewRenderer() *Renderer {
	return NewRendererWithDelims("{{", "}}")
}

// NewRendererWithDelims creates a renderer with custom action delimiters.
func NewRendererWithDelims(left, right string) *Renderer {
	return &Renderer{
		funcMap: defaultFuncMap(),
		left:    left,
		right:   right,
		cache:   make(map[string]*template.Template),
	}
}

// RenderString renders a template from a string.
// The name is used for caching and error messages.
func (r *Renderer) RenderString(name, text string, data any) ([]byte, error) {
	tmpl, err := r.load("string:"+name, name, func() ([]byte, error) { return []byte(text), nil })
	if err != nil {
		return nil, err
	}
	return r.executeTemplate(tmpl, data)
}

// RenderFS renders a template read from fsys, typically an embed.FS.
// Templates are cached by path, so one Renderer should serve one filesystem.
func (r *Renderer) RenderFS(fsys fs.FS, path string, data any) ([]byte, error) {
	tmpl, err := r.load("fs:"+path, path, func() ([]byte, error) {
		b, err := fs.ReadFile(fsys, path)
		if err != nil {
			return nil, fmt.Errorf("failed to read template from fs '%s': %w", path, err)
		}
		return b, nil
	})
	if err != nil {
		return nil, err
	}
	return r.executeTemplate(tmpl, data)
}

// ClearCache drops every parsed template.
func (r *Renderer) ClearCache() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.cache = make(map[string]*template.Template)
}

func (r *Renderer) load(key, name string, read func() ([]byte, error)) (*template.Template, error) {
	r.mu.RLock()
	tmpl, ok := r.cache[key]
	r.mu.RUnlock()
	if ok {
		return tmpl, nil
	}

	src, err := read()
	if err != nil {
		return nil, err
	}
	tmpl, err = template.New(name).Delims(r.left, r.right).Funcs(r.funcMap).
		Option("missingkey=error").Parse(string(src))
	if err != nil {
		return nil, fmt.Errorf("failed to parse template '%s': %w", name, err)
	}

	r.mu.Lock()
	r.cache[key] = tmpl
	r.mu.Unlock()
	return tmpl, nil
}

func (r *Renderer) executeTemplate(tmpl *template.Template, data any) ([]byte, error) {
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("failed to render template '%s': %w", tmpl.Name(), err)
	}
	return buf.Bytes(), nil
}

func defaultFuncMap() template.FuncMap {
	return template.FuncMap{
		"snakeCase": SnakeCase, // MyApp → my_app
		"kebabCase": KebabCase, // my_app → my-app
		"title":     Title,
		"upper":     strings.ToUpper,
		"lower":     strings.ToLower,
		"quote":     Quote,
		"join":      strings.Join,
		"replace":   strings.ReplaceAll,
		"hasPrefix": strings.HasPrefix,
		"default":   Default,
	}
}

// SnakeCase converts names like MyApp or my-app to my_app.
func SnakeCase(s string) string {
	var b strings.Builder
	for i, r := range s {
		switch {
		case r == '-' || r == ' ' || r == '.':
			b.WriteRune('_')
		case unicode.IsUpper(r):
			if i > 0 {
				prev := rune(s[i-1])
				if unicode.IsLower(prev) || unicode.IsDigit(prev) {
					b.WriteRune('_')
				}
			}
			b.WriteRune(unicode.ToLower(r))
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

// KebabCase is SnakeCase with dashes.
func KebabCase(s string) string {
	return strings.ReplaceAll(SnakeCase(s), "_", "-")
}

// Title capitalizes the first letter of each word.
func Title(s string) string {
	words := strings.Fields(strings.NewReplacer("_", " ", "-", " ").Replace(s))
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

// Quote wraps a string in double quotes.
func Quote(s string) string {
	return fmt.Sprintf("%q", s)
}

// Default returns def when val is nil or an empty string.
func Default(def, val any) any {
	if val == nil {
		return def
	}
	if s, ok := val.(string); ok && s == "" {
		return def
	}
	return val
}
