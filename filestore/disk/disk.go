package disk

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"github.com/vayron-digital/modulyn-one-sub000/filestore"
)

var _ filestore.FileManager = (*DiskDriver)(nil)

// DiskDriver serves uploads from the local filesystem. baseDir is
// analogous to a bucket name, publicBaseURL is the prefix files are
// served from.
type DiskDriver struct {
	baseDir       string
	publicBaseURL string
}

func New(baseDir, publicBaseURL string) *DiskDriver {
	return &DiskDriver{
		baseDir:       baseDir,
		publicBaseURL: strings.TrimSuffix(publicBaseURL, "/"),
	}
}

// Create writes the object, overwriting any existing object on the
// same path. No versioning.
func (dd *DiskDriver) Create(path, fileName string, reader io.Reader) error {
	dir := filepath.Join(dd.baseDir, path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		log.WithError(err).WithField("dir", dir).Error("Failed to create upload dir.")
		return errors.Wrap(err, "create upload dir")
	}

	file, err := os.Create(filepath.Join(dir, fileName))
	if err != nil {
		return errors.Wrap(err, "create upload file")
	}
	defer file.Close()

	_, err = io.Copy(file, reader)
	return errors.Wrap(err, "write upload file")
}

// Get opens an object in read only mode. Caller closes the returned
// io.ReadCloser.
func (dd *DiskDriver) Get(path, fileName string) (io.ReadCloser, error) {
	file, err := os.OpenFile(filepath.Join(dd.baseDir, path, fileName), os.O_RDONLY, 0444)
	if err != nil {
		return nil, errors.Wrap(err, "open object")
	}
	return file, nil
}

func (dd *DiskDriver) Delete(path, fileName string) error {
	err := os.Remove(filepath.Join(dd.baseDir, path, fileName))
	if err != nil && !os.IsNotExist(err) {
		return errors.Wrap(err, "delete object")
	}
	return nil
}

func (dd *DiskDriver) GetObjectSize(path, fileName string) (int64, error) {
	info, err := os.Stat(filepath.Join(dd.baseDir, path, fileName))
	if err != nil {
		return 0, errors.Wrap(err, "stat object")
	}
	return info.Size(), nil
}

func (dd *DiskDriver) GetPublicURL(path, fileName string) string {
	return fmt.Sprintf("%s/%s/%s", dd.publicBaseURL, path, fileName)
}

func (dd *DiskDriver) GetBucketName() string {
	return dd.baseDir
}
