// Package tests runs the data layer against a live development
// store. Connection settings come from the MODULYN_* environment with
// the built-in localhost defaults as fallback.
package tests

import (
	"fmt"
	"math/rand"
	"net/http"
	"os"
	"testing"

	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"

	C "github.com/vayron-digital/modulyn-one-sub000/config"
	M "github.com/vayron-digital/modulyn-one-sub000/model"
	U "github.com/vayron-digital/modulyn-one-sub000/util"
)

func TestMain(m *testing.M) {
	if err := C.Init(&C.Configuration{AppName: "app_server_test"}); err != nil {
		log.WithError(err).Fatal("Failed to initialize config and services.")
		os.Exit(1)
	}

	if C.GetConfig().Env != C.DEVELOPMENT {
		log.Fatal("Tests can run only in development environment.")
		os.Exit(1)
	}

	db := C.GetServices().Db
	err := db.AutoMigrate(&M.Project{}, &M.Lead{}, &M.Note{}, &M.ColdCall{}).Error
	if err != nil {
		log.WithError(err).Fatal("Failed to migrate test tables.")
		os.Exit(1)
	}

	os.Exit(m.Run())
}

func createTestProject(t *testing.T) *M.Project {
	project, errCode := M.CreateProject(&M.Project{Name: U.RandomLowerAphaNumString(15)})
	assert.Equal(t, http.StatusCreated, errCode)
	assert.NotNil(t, project)
	return project
}

// randomPhone returns a random UAE mobile number in E.164 form, so
// fixtures never collide across runs.
func randomPhone() string {
	return fmt.Sprintf("+97150%07d", rand.Intn(10000000))
}
