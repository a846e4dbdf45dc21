package storage

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRepository(t *testing.T) *Repository {
	t.Helper()
	db, err := NewDatabase(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewRepository(db)
}

func sampleSession(source string) *Session {
	when := time.Date(2024, time.March, 5, 14, 7, 0, 0, time.UTC)
	var cleared *time.Time

	s := NewSession(source)
	s.Add("who", "Ada")
	s.Add("when", &when)
	s.Add("until", cleared)
	s.Add("insured", true)
	return s
}

func TestSession_Add(t *testing.T) {
	s := sampleSession("ask")

	require.Len(t, s.Answers, 4)
	assert.NotEmpty(t, s.ID)
	for i, a := range s.Answers {
		assert.Equal(t, s.ID, a.SessionID)
		assert.Equal(t, i, a.Position)
		assert.NotEmpty(t, a.ID)
	}

	assert.Equal(t, KindText, s.Answers[0].Kind)
	assert.Equal(t, KindDate, s.Answers[1].Kind)
	assert.Equal(t, "2024-03-05T14:07:00Z", s.Answers[1].Value)
	assert.Equal(t, KindDate, s.Answers[2].Kind)
	assert.Empty(t, s.Answers[2].Value)
	assert.Equal(t, Answer{Kind: KindBool, Value: "true"}, Answer{Kind: s.Answers[3].Kind, Value: s.Answers[3].Value})

	values := s.Values()
	assert.Equal(t, "Ada", values["who"])
	assert.Equal(t, time.Date(2024, time.March, 5, 14, 7, 0, 0, time.UTC), values["when"])
	assert.Nil(t, values["until"])
	assert.Equal(t, true, values["insured"])
}

func TestAnswer_Date(t *testing.T) {
	d, err := Answer{Kind: KindDate, Value: "2024-03-05T14:07:00Z"}.Date()
	require.NoError(t, err)
	assert.Equal(t, 2024, d.Year())

	d, err = Answer{Kind: KindDate}.Date()
	require.NoError(t, err)
	assert.Nil(t, d)

	_, err = Answer{Kind: KindText, Value: "x"}.Date()
	assert.Error(t, err)

	_, err = Answer{Kind: KindDate, Value: "soon"}.Date()
	assert.Error(t, err)
}

func TestRepository_SaveAndGetSession(t *testing.T) {
	repo := newTestRepository(t)
	s := sampleSession("trip.yaml")

	require.NoError(t, repo.SaveSession(s))

	got, err := repo.GetSession(s.ID)
	require.NoError(t, err)
	assert.Equal(t, "trip.yaml", got.Source)
	assert.Equal(t, s.CreatedAt.Unix(), got.CreatedAt.Unix())
	require.Len(t, got.Answers, 4)
	for i := range s.Answers {
		assert.Equal(t, s.Answers[i].Name, got.Answers[i].Name)
		assert.Equal(t, s.Answers[i].Kind, got.Answers[i].Kind)
		assert.Equal(t, s.Answers[i].Value, got.Answers[i].Value)
	}

	// saving again replaces answers rather than duplicating them
	s.Answers = s.Answers[:1]
	require.NoError(t, repo.SaveSession(s))
	got, err = repo.GetSession(s.ID)
	require.NoError(t, err)
	assert.Len(t, got.Answers, 1)
}

func TestRepository_GetSession_NotFound(t *testing.T) {
	repo := newTestRepository(t)

	_, err := repo.GetSession("nope")
	assert.ErrorIs(t, err, ErrSessionNotFound)
	assert.ErrorIs(t, repo.DeleteSession("nope"), ErrSessionNotFound)
}

func TestRepository_ListAnswers(t *testing.T) {
	repo := newTestRepository(t)

	older := sampleSession("first")
	older.CreatedAt = time.Now().Add(-time.Hour)
	newer := sampleSession("second")
	require.NoError(t, repo.SaveSession(older))
	require.NoError(t, repo.SaveSession(newer))

	all, err := repo.ListAnswers(0)
	require.NoError(t, err)
	require.Len(t, all, 8)
	assert.Equal(t, newer.ID, all[0].SessionID)
	assert.Equal(t, "insured", all[0].Name)
	assert.Equal(t, older.ID, all[7].SessionID)
	assert.Equal(t, "who", all[7].Name)

	limited, err := repo.ListAnswers(3)
	require.NoError(t, err)
	assert.Len(t, limited, 3)

	byName, err := repo.ListAnswersByName("when", 0)
	require.NoError(t, err)
	require.Len(t, byName, 2)
	assert.Equal(t, newer.ID, byName[0].SessionID)

	require.NoError(t, repo.DeleteSession(newer.ID))
	all, err = repo.ListAnswers(0)
	require.NoError(t, err)
	assert.Len(t, all, 4)
}

func TestFileStore_Transcripts(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "sessions")
	fs := NewFileStore(dir)
	s := sampleSession("ask")

	path, err := fs.WriteTranscript(s)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, s.ID+".yaml"), path)
	assert.FileExists(t, path)

	got, err := fs.ReadTranscript(s.ID)
	require.NoError(t, err)
	assert.Equal(t, s.ID, got.ID)
	assert.Equal(t, "ask", got.Source)
	assert.Equal(t, s.Values(), got.Values())

	ids, err := fs.ListTranscripts()
	require.NoError(t, err)
	assert.Equal(t, []string{s.ID}, ids)

	_, err = fs.ReadTranscript("missing")
	assert.Error(t, err)
}

func TestFileStore_DefaultDirectory(t *testing.T) {
	t.Setenv("DATEPROMPT_DATA_DIR", t.TempDir())
	fs := NewFileStore("")

	ids, err := fs.ListTranscripts()
	require.NoError(t, err)
	assert.Empty(t, ids)
}

func TestMarshal(t *testing.T) {
	s := sampleSession("ask")

	data, err := Marshal(s)
	require.NoError(t, err)

	text := string(data)
	assert.Contains(t, text, "id: "+s.ID)
	assert.Contains(t, text, "name: who")
	assert.Contains(t, text, "value: Ada")
	assert.Contains(t, text, "kind: date")
}
