package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	C "github.com/vayron-digital/modulyn-one-sub000/config"
	M "github.com/vayron-digital/modulyn-one-sub000/model"
)

const maxUploadBytes = 25 << 20

func GetDevelopersHandler(c *gin.Context) {
	projectID := getProjectScope(c)
	if projectID == 0 {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Get developers failed. Invalid project."})
		return
	}

	developers, errCode := M.ListDevelopers(projectID)
	if errCode != http.StatusFound {
		abortWithRemoteError(c, errCode, "Get developers failed.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"rows": developers})
}

func CreateDeveloperHandler(c *gin.Context) {
	projectID := getProjectScope(c)
	if projectID == 0 {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Create developer failed. Invalid project."})
		return
	}

	var developer M.Developer
	if err := decodeJSONBody(c, &developer); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Create developer failed. Json decode failed."})
		return
	}

	if developer.Name == "" {
		abortWithValidationError(c, "Developer name is required.")
		return
	}

	created, errCode := M.CreateDeveloper(projectID, &developer)
	if errCode != http.StatusCreated {
		abortWithRemoteError(c, errCode, "Create developer failed.")
		return
	}

	notifySuccess("Developer created", created.Name)
	c.JSON(http.StatusCreated, created)
}

func DeleteDeveloperHandler(c *gin.Context) {
	projectID := getProjectScope(c)
	if projectID == 0 {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Delete developer failed. Invalid project."})
		return
	}

	if !hasDeleteConfirmation(c) {
		confirmationRequired(c)
		return
	}

	errCode := M.DeleteDeveloper(projectID, c.Params.ByName("id"))
	if errCode != http.StatusAccepted {
		abortWithRemoteError(c, errCode, "Delete developer failed.")
		return
	}

	notifySuccess("Developer deleted", "")
	c.JSON(http.StatusAccepted, gin.H{"status": "deleted"})
}

func GetBrochuresHandler(c *gin.Context) {
	projectID := getProjectScope(c)
	if projectID == 0 {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Get brochures failed. Invalid project."})
		return
	}

	brochures, errCode := M.ListBrochures(projectID, c.Params.ByName("id"))
	if errCode != http.StatusFound {
		abortWithRemoteError(c, errCode, "Get brochures failed.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"rows": brochures})
}

// UploadBrochureHandler stores the multipart file and records it.
// Re-uploading the same file name overwrites the stored object and
// updates the existing row.
func UploadBrochureHandler(c *gin.Context) {
	projectID := getProjectScope(c)
	if projectID == 0 {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Upload failed. Invalid project."})
		return
	}

	developerID := c.Params.ByName("id")
	if _, errCode := M.GetDeveloper(projectID, developerID); errCode != http.StatusFound {
		abortWithRemoteError(c, errCode, "Upload failed. Developer not found.")
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		abortWithValidationError(c, "A file is required.")
		return
	}
	if fileHeader.Size > maxUploadBytes {
		abortWithValidationError(c, "File is too large.")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Upload failed. Unreadable file."})
		return
	}
	defer file.Close()

	fileStore := C.GetServices().FileStore
	path := M.DeveloperStoragePath(projectID, developerID)
	if err := fileStore.Create(path, fileHeader.Filename, file); err != nil {
		log.WithFields(log.Fields{"project_id": projectID,
			"developer_id": developerID}).WithError(err).Error("Failed to store brochure.")
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Upload failed."})
		return
	}

	brochure := M.Brochure{
		DeveloperID: developerID,
		FileName:    fileHeader.Filename,
		FileSize:    fileHeader.Size,
		PublicURL:   fileStore.GetPublicURL(path, fileHeader.Filename),
		UploadedBy:  getAgentScope(c),
	}

	saved, errCode := M.UpsertBrochure(projectID, &brochure)
	if errCode != http.StatusCreated && errCode != http.StatusAccepted {
		abortWithRemoteError(c, errCode, "Upload failed.")
		return
	}

	notifySuccess("Brochure uploaded", saved.FileName)
	c.JSON(errCode, saved)
}

// UploadDeveloperLogoHandler stores the logo and points the developer
// row at its public URL.
func UploadDeveloperLogoHandler(c *gin.Context) {
	projectID := getProjectScope(c)
	if projectID == 0 {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Upload failed. Invalid project."})
		return
	}

	developerID := c.Params.ByName("id")
	if _, errCode := M.GetDeveloper(projectID, developerID); errCode != http.StatusFound {
		abortWithRemoteError(c, errCode, "Upload failed. Developer not found.")
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		abortWithValidationError(c, "A file is required.")
		return
	}
	if fileHeader.Size > maxUploadBytes {
		abortWithValidationError(c, "File is too large.")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Upload failed. Unreadable file."})
		return
	}
	defer file.Close()

	fileStore := C.GetServices().FileStore
	path := M.DeveloperStoragePath(projectID, developerID)
	if err := fileStore.Create(path, fileHeader.Filename, file); err != nil {
		log.WithFields(log.Fields{"project_id": projectID,
			"developer_id": developerID}).WithError(err).Error("Failed to store logo.")
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Upload failed."})
		return
	}

	logoURL := fileStore.GetPublicURL(path, fileHeader.Filename)
	if errCode := M.UpdateDeveloperLogo(projectID, developerID, logoURL); errCode != http.StatusAccepted {
		abortWithRemoteError(c, errCode, "Upload failed.")
		return
	}

	notifySuccess("Logo updated", "")
	c.JSON(http.StatusAccepted, gin.H{"logo_url": logoURL})
}

// DeleteBrochureHandler removes the row first, then the stored
// object. A failed object delete is logged, the row stays gone.
func DeleteBrochureHandler(c *gin.Context) {
	projectID := getProjectScope(c)
	if projectID == 0 {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Delete brochure failed. Invalid project."})
		return
	}

	if !hasDeleteConfirmation(c) {
		confirmationRequired(c)
		return
	}

	brochure, errCode := M.DeleteBrochure(projectID, c.Params.ByName("id"))
	if errCode != http.StatusAccepted {
		abortWithRemoteError(c, errCode, "Delete brochure failed.")
		return
	}

	fileStore := C.GetServices().FileStore
	path := M.DeveloperStoragePath(projectID, brochure.DeveloperID)
	if err := fileStore.Delete(path, brochure.FileName); err != nil {
		log.WithFields(log.Fields{"project_id": projectID,
			"brochure_id": brochure.ID}).WithError(err).Error("Failed to delete brochure object.")
	}

	notifySuccess("Brochure deleted", brochure.FileName)
	c.JSON(http.StatusAccepted, gin.H{"status": "deleted"})
}
