package candidate

import (
	"archive/zip"
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildDocx(t *testing.T, documentXML string) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	w, err := zw.Create("word/document.xml")
	require.NoError(t, err)
	_, err = w.Write([]byte(documentXML))
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	return buf.Bytes()
}

func TestExtractResumeTextDocx(t *testing.T) {
	data := buildDocx(t, `<w:document><w:body>`+
		`<w:p><w:r><w:t>Иван Иванов</w:t></w:r></w:p>`+
		`<w:p><w:r><w:t>Go,</w:t></w:r><w:r><w:t>PostgreSQL</w:t></w:r></w:p>`+
		`</w:body></w:document>`)

	text, err := ExtractResumeText("resume.docx", data)
	require.NoError(t, err)
	assert.Contains(t, text, "Иван Иванов")
	assert.Contains(t, text, "PostgreSQL")
}

func TestExtractResumeTextDocxWithoutDocument(t *testing.T) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	w, err := zw.Create("word/styles.xml")
	require.NoError(t, err)
	_, err = w.Write([]byte("<styles/>"))
	require.NoError(t, err)
	require.NoError(t, zw.Close())

	_, err = ExtractResumeText("resume.docx", buf.Bytes())
	assert.Error(t, err)
}

func TestExtractResumeTextUnsupported(t *testing.T) {
	_, err := ExtractResumeText("resume.txt", []byte("plain"))
	assert.Error(t, err)
}

func TestExtractResumeTextBrokenPDF(t *testing.T) {
	_, err := ExtractResumeText("resume.pdf", []byte("not a pdf at all"))
	assert.Error(t, err)
}

func TestCollapseWhitespace(t *testing.T) {
	assert.Equal(t, "a b \nc", collapseWhitespace("a \t b \n\n\nc "))
}
