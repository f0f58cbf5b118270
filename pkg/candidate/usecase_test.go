package candidate

import (
	"context"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memProfiles struct {
	saved Profile
}

func (r *memProfiles) Upsert(_ context.Context, p Profile) error {
	r.saved = p
	return nil
}

func (r *memProfiles) GetByOwner(_ context.Context, ownerID uuid.UUID) (Profile, error) {
	if r.saved.OwnerID != ownerID {
		return Profile{}, ErrNotFound
	}
	return r.saved, nil
}

func (r *memProfiles) SaveResume(_ context.Context, ownerID uuid.UUID, filename, text string) error {
	r.saved.OwnerID = ownerID
	r.saved.ResumeFilename = filename
	r.saved.ResumeText = text
	return nil
}

func TestSaveNormalizesFields(t *testing.T) {
	repo := &memProfiles{}
	uc := NewService(repo)
	p, err := uc.Save(context.Background(), Profile{
		OwnerID:  uuid.New(),
		FullName: "  Иван Иванов  ",
		Skills:   []string{" Go ", "", "React"},
		Location: " Казань ",
	})
	require.NoError(t, err)
	assert.Equal(t, "Иван Иванов", p.FullName)
	assert.Equal(t, []string{"Go", "React"}, p.Skills)
	assert.Equal(t, "Казань", p.Location)
}

func TestAttachResumeTruncatesOnRuneBoundary(t *testing.T) {
	repo := &memProfiles{}
	uc := NewService(repo)
	owner := uuid.New()

	// Длинный кириллический текст: лимит режет посреди руны, если резать
	// по байтам. Сохранённый текст обязан остаться валидным UTF-8.
	long := strings.Repeat("ёжик пишет резюме ", 1000)
	data := buildDocx(t, `<w:document><w:body><w:p><w:r><w:t>`+long+`</w:t></w:r></w:p></w:body></w:document>`)

	text, err := uc.AttachResume(context.Background(), owner, "resume.docx", data)
	require.NoError(t, err)
	assert.LessOrEqual(t, len(text), 12_000)
	assert.True(t, utf8.ValidString(text))
	assert.Equal(t, text, repo.saved.ResumeText)
}

func TestAttachResumeRejectsEmpty(t *testing.T) {
	repo := &memProfiles{}
	uc := NewService(repo)

	data := buildDocx(t, `<w:document><w:body><w:p></w:p></w:body></w:document>`)
	_, err := uc.AttachResume(context.Background(), uuid.New(), "resume.docx", data)
	var ve ErrValidation
	assert.ErrorAs(t, err, &ve)
}
