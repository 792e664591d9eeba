package words

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Normalizes(t *testing.T) {
	src := strings.Join([]string{
		"# comment",
		"  Apple ",
		"apple",
		"",
		"it's",
		"co-op",
		"ZEBRA",
		"ñandú",
		"to",
	}, "\n")

	d, err := Load(strings.NewReader(src))
	require.NoError(t, err)

	if diff := cmp.Diff([]string{"apple", "to", "zebra", "ñandú"}, d.Words()); diff != "" {
		t.Errorf("words (-want +got):\n%s", diff)
	}
	assert.Equal(t, 4, d.Len())
	assert.Equal(t, []int{2, 5}, d.Lengths())
	assert.Equal(t, 3, d.Count(5))
	assert.True(t, d.Has(2))
	assert.False(t, d.Has(3))
	assert.Equal(t, map[int]int{2: 1, 5: 3}, d.Stats())
}

func TestLoad_Empty(t *testing.T) {
	_, err := Load(strings.NewReader("# nothing\n\n123\n"))
	assert.ErrorIs(t, err, ErrEmpty)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dict.txt")
	require.NoError(t, os.WriteFile(path, []byte("cat\ndog\nbird\n"), 0o644))

	d, err := FromEnv(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"bird", "cat", "dog"}, d.Words())

	_, err = LoadFile(filepath.Join(t.TempDir(), "missing.txt"))
	assert.Error(t, err)
}

func TestDefault(t *testing.T) {
	d, err := FromEnv("")
	require.NoError(t, err)
	assert.Greater(t, d.Len(), 1000)
	assert.True(t, d.Has(5))
	for _, w := range d.Words() {
		assert.Equal(t, strings.ToLower(w), w)
	}

	again, err := Default()
	require.NoError(t, err)
	assert.Same(t, d, again)
}

func TestFromSlice(t *testing.T) {
	d := FromSlice([]string{"BB", "aa", "ab", "aa", "a1"})
	assert.Equal(t, []string{"aa", "ab", "bb"}, d.Words())
}

func TestFromSlice_KeepsRuneCount(t *testing.T) {
	d := FromSlice([]string{"İKİ", "Dog"})
	assert.Equal(t, 2, d.Count(3))
	assert.Equal(t, []string{"dog", "iki"}, d.Words())
}
