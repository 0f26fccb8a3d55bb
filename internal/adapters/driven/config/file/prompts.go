package file

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/custodia-labs/profilerag/internal/core/domain"
	"github.com/custodia-labs/profilerag/internal/core/ports/driven"
	"github.com/custodia-labs/profilerag/internal/logger"
)

var _ driven.PromptStore = (*PromptStore)(nil)

// ErrEmptyPrompt is returned for a template file with no content.
var ErrEmptyPrompt = errors.New("prompt file is empty")

// ErrMissingPlaceholder is returned when a template lacks a placeholder
// its caller binds.
var ErrMissingPlaceholder = errors.New("prompt is missing a placeholder")

// builtinPrompts seed the prompt directory and stand in for any file that
// is missing, empty or malformed.
var builtinPrompts = map[string]string{
	driven.PromptAnswer: domain.DefaultAnswerPrompt,
}

var requiredPlaceholders = map[string][]string{
	driven.PromptAnswer: {"{context}", "{question}"},
}

const promptReadme = `# profilerag prompts

Templates used when answering questions with a language model.

  answer.txt   question answering prompt

Placeholders:

  {context}    the retrieved profile chunks, separated by blank lines
  {question}   the question as asked

Edits are picked up on the next question. Delete a file to restore the
default. A file that is empty or lacks a placeholder is ignored.
`

// PromptStore serves templates from <dir>/<name>.txt. The directory is
// seeded with the built-in templates on first use. A file is re-read when
// its modification time changes, so edits reach long-running commands.
type PromptStore struct {
	dir string

	seedOnce sync.Once

	mu    sync.Mutex
	cache map[string]cachedPrompt
}

type cachedPrompt struct {
	text    string
	modTime time.Time
}

// NewPromptStore returns a store rooted at dir, or ~/.profilerag/prompts
// when dir is empty. Nothing is written until the first Load.
func NewPromptStore(dir string) (*PromptStore, error) {
	if dir == "" {
		base, err := DefaultDir()
		if err != nil {
			return nil, err
		}
		dir = filepath.Join(base, "prompts")
	}
	return &PromptStore{dir: dir, cache: make(map[string]cachedPrompt)}, nil
}

// Dir returns the prompt directory.
func (s *PromptStore) Dir() string {
	return s.dir
}

// Load returns the named template. Built-in names never fail: a bad or
// unreadable file yields the built-in template.
func (s *PromptStore) Load(name string) (string, error) {
	s.seedOnce.Do(s.seed)

	text, err := s.read(name)
	if err == nil {
		err = checkPlaceholders(name, text)
	}
	if err == nil {
		return text, nil
	}

	if builtin, ok := builtinPrompts[name]; ok {
		if !errors.Is(err, fs.ErrNotExist) {
			logger.Warn("Prompt %s: %v; using built-in template", name, err)
		}
		return builtin, nil
	}
	return "", fmt.Errorf("load prompt %q: %w", name, err)
}

// Reload drops cached templates.
func (s *PromptStore) Reload() {
	s.mu.Lock()
	s.cache = make(map[string]cachedPrompt)
	s.mu.Unlock()
}

func (s *PromptStore) path(name string) string {
	return filepath.Join(s.dir, name+".txt")
}

func (s *PromptStore) read(name string) (string, error) {
	path := s.path(name)
	info, err := os.Stat(path)
	if err != nil {
		return "", err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if c, ok := s.cache[name]; ok && c.modTime.Equal(info.ModTime()) {
		return c.text, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	text := strings.TrimSpace(string(data))
	if text == "" {
		return "", ErrEmptyPrompt
	}
	s.cache[name] = cachedPrompt{text: text, modTime: info.ModTime()}
	return text, nil
}

// seed writes the built-in templates and README without touching files
// the user already has. Failures are logged; Load falls back regardless.
func (s *PromptStore) seed() {
	if err := os.MkdirAll(s.dir, 0700); err != nil {
		logger.Debug("Prompt directory unavailable: %v", err)
		return
	}
	files := map[string]string{"README.md": promptReadme}
	for name, text := range builtinPrompts {
		files[name+".txt"] = text
	}
	for file, text := range files {
		if err := writeIfMissing(filepath.Join(s.dir, file), text); err != nil {
			logger.Debug("Seed prompt %s: %v", file, err)
		}
	}
}

func writeIfMissing(path, content string) error {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0600)
	if errors.Is(err, fs.ErrExist) {
		return nil
	}
	if err != nil {
		return err
	}
	if _, err := f.WriteString(content); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func checkPlaceholders(name, text string) error {
	for _, p := range requiredPlaceholders[name] {
		if !strings.Contains(text, p) {
			return fmt.Errorf("%w: %s", ErrMissingPlaceholder, p)
		}
	}
	return nil
}
