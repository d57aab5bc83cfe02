package book

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleMETS = `<?xml version="1.0" encoding="UTF-8"?>
<mets xmlns="http://www.loc.gov/METS/" xmlns:xlink="http://www.w3.org/1999/xlink">
  <fileSec>
    <fileGrp USE="export">
      <file ID="f1"><FLocat LOCTYPE="URL" xlink:href="page_0001.xml"/></file>
      <file ID="f2"><FLocat LOCTYPE="URL" xlink:href="page_0002.xml"/></file>
      <file ID="f3"><FLocat LOCTYPE="URL" xlink:href="page_0002.jpg"/></file>
      <file ID="f4"><FLocat LOCTYPE="URL" xlink:href="page_0003.xml"/></file>
    </fileGrp>
    <fileGrp USE="thumbnails">
      <file ID="t1"><FLocat LOCTYPE="URL" xlink:href="thumb_0001.xml"/></file>
    </fileGrp>
  </fileSec>
</mets>`

func writeManifest(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "METS.xml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestParseManifest(t *testing.T) {
	path := writeManifest(t, sampleMETS)

	m, err := ParseManifest(path)
	require.NoError(t, err)

	assert.Equal(t, 3, m.TotalPages)
	dir := filepath.Dir(path)
	// Manifest order is preserved; images and other file groups are ignored.
	assert.Equal(t, []string{
		filepath.Join(dir, "page_0001.xml"),
		filepath.Join(dir, "page_0002.xml"),
		filepath.Join(dir, "page_0003.xml"),
	}, m.Pages)
}

func TestParseManifestNoExportGroup(t *testing.T) {
	path := writeManifest(t, `<mets xmlns="http://www.loc.gov/METS/">
		<fileSec><fileGrp USE="images"/></fileSec>
	</mets>`)

	_, err := ParseManifest(path)
	assert.Error(t, err)
}

func TestParseManifestMissingFile(t *testing.T) {
	_, err := ParseManifest(filepath.Join(t.TempDir(), "absent.xml"))
	assert.Error(t, err)
}
