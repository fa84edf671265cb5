package author

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"testing"

	"bookloader/internal/dump"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockRepo struct {
	mock.Mock
}

func (m *mockRepo) Upsert(ctx context.Context, a Author) error {
	args := m.Called(ctx, a)
	return args.Error(0)
}

func (m *mockRepo) FindByID(ctx context.Context, id string) (Author, bool, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(Author), args.Bool(1), args.Error(2)
}

func writeDump(t *testing.T, lines ...string) string {
	t.Helper()
	var buf bytes.Buffer
	for _, l := range lines {
		buf.WriteString(l)
		buf.WriteByte('\n')
	}
	p := filepath.Join(t.TempDir(), "authors.txt")
	require.NoError(t, os.WriteFile(p, buf.Bytes(), 0o644))
	return p
}

func newTestLoader(repo Repository, strict bool) (*Loader, *bytes.Buffer) {
	var buf bytes.Buffer
	logger := log.New(&buf, "", 0)
	return NewLoader(repo, dump.NewProcessor("author", strict, 0, logger), logger), &buf
}

func TestLoader_Load(t *testing.T) {
	ctx := context.Background()

	t.Run("upserts every author", func(t *testing.T) {
		repo := new(mockRepo)
		l, logs := newTestLoader(repo, false)

		repo.On("Upsert", ctx, Author{ID: "A1", Name: "Jane Doe"}).Return(nil).Once()
		repo.On("Upsert", ctx, Author{ID: "A2", Name: "John Roe", PersonalName: "John"}).Return(nil).Once()

		path := writeDump(t,
			`/type/author	/authors/A1	1	{"key":"/authors/A1","name":"Jane Doe"}`,
			`/type/author	/authors/A2	1	{"key":"/authors/A2","name":"John Roe","personal_name":"John"}`,
		)

		stats, err := l.Load(ctx, path)
		require.NoError(t, err)
		assert.Equal(t, dump.Stats{Read: 2, Loaded: 2}, stats)
		assert.Contains(t, logs.String(), "saving author Jane Doe...")
		repo.AssertExpectations(t)
	})

	t.Run("same line twice keeps one id", func(t *testing.T) {
		repo := NewMemoryRepo()
		l, _ := newTestLoader(repo, false)

		line := `{"key":"/authors/A1","name":"Jane Doe"}`
		stats, err := l.Load(ctx, writeDump(t, line, line))
		require.NoError(t, err)
		assert.Equal(t, 2, stats.Loaded)
		assert.Equal(t, 1, repo.Len())

		a, found, err := repo.FindByID(ctx, "A1")
		require.NoError(t, err)
		assert.True(t, found)
		assert.Equal(t, "Jane Doe", a.Name)
	})

	t.Run("last line wins on key collision", func(t *testing.T) {
		repo := NewMemoryRepo()
		l, _ := newTestLoader(repo, false)

		_, err := l.Load(ctx, writeDump(t,
			`{"key":"/authors/A1","name":"Old Name"}`,
			`{"key":"/authors/A1","name":"New Name"}`,
		))
		require.NoError(t, err)

		a, _, _ := repo.FindByID(ctx, "A1")
		assert.Equal(t, "New Name", a.Name)
	})

	t.Run("malformed line is skipped", func(t *testing.T) {
		repo := new(mockRepo)
		l, logs := newTestLoader(repo, false)

		repo.On("Upsert", ctx, Author{ID: "A2", Name: "Two"}).Return(nil).Once()

		stats, err := l.Load(ctx, writeDump(t,
			`{"name":"no key"}`,
			`{"key":"/authors/A2","name":"Two"}`,
		))
		require.NoError(t, err)
		assert.Equal(t, dump.Stats{Read: 2, Loaded: 1, Failed: 1}, stats)
		assert.Contains(t, logs.String(), `missing "key"`)
		repo.AssertExpectations(t)
	})

	t.Run("strict mode aborts on malformed line", func(t *testing.T) {
		repo := new(mockRepo)
		l, _ := newTestLoader(repo, true)

		_, err := l.Load(ctx, writeDump(t,
			`{"name":"no key"}`,
			`{"key":"/authors/A2","name":"Two"}`,
		))
		assert.ErrorIs(t, err, dump.ErrMalformed)
		repo.AssertNotCalled(t, "Upsert", mock.Anything, mock.Anything)
	})

	t.Run("store error is counted as failed", func(t *testing.T) {
		repo := new(mockRepo)
		l, _ := newTestLoader(repo, false)

		repo.On("Upsert", ctx, mock.Anything).Return(fmt.Errorf("db error"))

		stats, err := l.Load(ctx, writeDump(t, `{"key":"/authors/A1"}`))
		require.NoError(t, err)
		assert.Equal(t, 1, stats.Failed)
	})

	t.Run("missing file", func(t *testing.T) {
		repo := new(mockRepo)
		l, _ := newTestLoader(repo, false)

		_, err := l.Load(ctx, filepath.Join(t.TempDir(), "missing.txt"))
		assert.ErrorIs(t, err, os.ErrNotExist)
	})
}
