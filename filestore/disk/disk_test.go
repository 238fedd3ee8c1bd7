package disk

import (
	"io/ioutil"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCreateGetDelete(t *testing.T) {
	dd := New(t.TempDir(), "https://api.modulyn.test/files/")

	err := dd.Create("projects/1/developers/d1", "brochure.pdf", strings.NewReader("pdf bytes"))
	assert.Nil(t, err)

	file, err := dd.Get("projects/1/developers/d1", "brochure.pdf")
	assert.Nil(t, err)
	content, err := ioutil.ReadAll(file)
	file.Close()
	assert.Nil(t, err)
	assert.Equal(t, "pdf bytes", string(content))

	size, err := dd.GetObjectSize("projects/1/developers/d1", "brochure.pdf")
	assert.Nil(t, err)
	assert.Equal(t, int64(len("pdf bytes")), size)

	assert.Nil(t, dd.Delete("projects/1/developers/d1", "brochure.pdf"))
	_, err = dd.Get("projects/1/developers/d1", "brochure.pdf")
	assert.NotNil(t, err)
}

func TestCreateOverwritesExistingObject(t *testing.T) {
	dd := New(t.TempDir(), "https://api.modulyn.test/files")

	assert.Nil(t, dd.Create("p", "logo.png", strings.NewReader("v1")))
	assert.Nil(t, dd.Create("p", "logo.png", strings.NewReader("version two")))

	size, err := dd.GetObjectSize("p", "logo.png")
	assert.Nil(t, err)
	assert.Equal(t, int64(len("version two")), size)
}

func TestDeleteMissingObjectIsNoOp(t *testing.T) {
	dd := New(t.TempDir(), "https://api.modulyn.test/files")
	assert.Nil(t, dd.Delete("p", "ghost.pdf"))
}

func TestGetPublicURL(t *testing.T) {
	// Trailing slash on the base is normalized away.
	dd := New("/var/lib/modulyn/uploads", "https://api.modulyn.test/files/")
	assert.Equal(t, "https://api.modulyn.test/files/projects/1/developers/d1/brochure.pdf",
		dd.GetPublicURL("projects/1/developers/d1", "brochure.pdf"))
}
