// internal/words/words.go
//
// Dictionary loading for the hangman engine.
//
// Responsibilities:
//   - Read word lists (one word per line) from a file or the embedded default.
//   - Normalise to lowercase, drop blanks, comments and words with non-letters.
//   - Answer length queries (which lengths exist, how many words each).
//
// Sources (FromEnv):
//   1. If DICTIONARY_FILE is set, load that file.
//   2. Otherwise fall back to the embedded assets/dictionary.txt.
//
// The embedded list is parsed once (sync.Once) and shared.

package words

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"
	"sync"
	"unicode"
	"unicode/utf8"

	"github.com/rs/zerolog/log"

	"github.com/robalobadob/hangman/assets"
	"github.com/robalobadob/hangman/internal/game"
)

// ErrEmpty is returned when a source yields no usable words.
var ErrEmpty = errors.New("words: dictionary is empty")

// Dictionary is an immutable, deduplicated word list.
type Dictionary struct {
	words    []string    // sorted
	byLength map[int]int // rune length -> count
}

var (
	defaultOnce sync.Once
	defaultDict *Dictionary
	defaultErr  error
)

// Load reads one word per line from r.
func Load(r io.Reader) (*Dictionary, error) {
	seen := make(map[string]struct{})
	var list []string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		w, ok := normalize(sc.Text())
		if !ok {
			continue
		}
		if _, dup := seen[w]; dup {
			continue
		}
		seen[w] = struct{}{}
		list = append(list, w)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("words: read: %w", err)
	}
	if len(list) == 0 {
		return nil, ErrEmpty
	}
	return newDictionary(list), nil
}

// LoadFile loads a word list from path.
func LoadFile(path string) (*Dictionary, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("words: open %s: %w", path, err)
	}
	defer f.Close()
	return Load(f)
}

// Default returns the embedded dictionary.
func Default() (*Dictionary, error) {
	defaultOnce.Do(func() {
		f, err := assets.OpenDictionary()
		if err != nil {
			defaultErr = err
			return
		}
		defer f.Close()
		defaultDict, defaultErr = Load(f)
	})
	return defaultDict, defaultErr
}

// FromEnv loads path when it is set and the embedded default otherwise.
func FromEnv(path string) (*Dictionary, error) {
	if path == "" {
		log.Debug().Msg("using embedded dictionary")
		return Default()
	}
	log.Debug().Str("path", path).Msg("loading dictionary file")
	return LoadFile(path)
}

// FromSlice builds a dictionary from an in-memory list, applying the same
// normalisation as Load.
func FromSlice(list []string) *Dictionary {
	seen := make(map[string]struct{}, len(list))
	out := make([]string, 0, len(list))
	for _, line := range list {
		w, ok := normalize(line)
		if !ok {
			continue
		}
		if _, dup := seen[w]; dup {
			continue
		}
		seen[w] = struct{}{}
		out = append(out, w)
	}
	return newDictionary(out)
}

func newDictionary(list []string) *Dictionary {
	slices.Sort(list)
	byLength := make(map[int]int)
	for _, w := range list {
		byLength[utf8.RuneCountInString(w)]++
	}
	return &Dictionary{words: list, byLength: byLength}
}

// normalize trims and lowercases a line. Comments, blank lines and words
// containing anything but letters are rejected.
func normalize(line string) (string, bool) {
	w := game.NormalizeWord(strings.TrimSpace(line))
	if w == "" || strings.HasPrefix(w, "#") {
		return "", false
	}
	for _, r := range w {
		if !unicode.IsLetter(r) {
			return "", false
		}
	}
	return w, true
}

// Words returns the word list in lexicographic order. The slice is shared;
// callers must not modify it.
func (d *Dictionary) Words() []string { return d.words }

// Len is the number of distinct words.
func (d *Dictionary) Len() int { return len(d.words) }

// Count returns how many words have exactly length letters.
func (d *Dictionary) Count(length int) int { return d.byLength[length] }

// Has reports whether any word has exactly length letters.
func (d *Dictionary) Has(length int) bool { return d.byLength[length] > 0 }

// Lengths returns the distinct word lengths, ascending.
func (d *Dictionary) Lengths() []int {
	out := make([]int, 0, len(d.byLength))
	for n := range d.byLength {
		out = append(out, n)
	}
	slices.Sort(out)
	return out
}

// Stats returns the word count per length.
func (d *Dictionary) Stats() map[int]int {
	out := make(map[int]int, len(d.byLength))
	for k, v := range d.byLength {
		out[k] = v
	}
	return out
}
