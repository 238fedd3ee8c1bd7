package tests

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	C "github.com/vayron-digital/modulyn-one-sub000/config"
	M "github.com/vayron-digital/modulyn-one-sub000/model"
)

func TestDBConvertColdCallToLeadExactlyOnce(t *testing.T) {
	project := createTestProject(t)
	phone := randomPhone()

	coldCall, errCode := M.CreateColdCall(project.ID, &M.ColdCall{
		Phone: phone, Name: "Walk In Visitor"})
	assert.Equal(t, http.StatusCreated, errCode)
	assert.False(t, coldCall.IsConverted)

	lead, errCode := M.ConvertColdCallToLead(project.ID, coldCall.ID, "agent-1")
	assert.Equal(t, http.StatusCreated, errCode)
	assert.Equal(t, "Walk", lead.FirstName)
	assert.Equal(t, "Visitor", lead.LastName)
	assert.Equal(t, phone, lead.Phone)
	assert.Equal(t, M.LeadStatusNew, lead.Status)
	assert.Equal(t, M.LeadSourceColdCall, lead.Source)
	assert.Equal(t, "agent-1", lead.CreatedBy)

	// The conversion marker is persisted.
	stored, errCode := M.GetColdCall(project.ID, coldCall.ID)
	assert.Equal(t, http.StatusFound, errCode)
	assert.True(t, stored.IsConverted)
	assert.Equal(t, "agent-1", stored.ConvertedBy)
	assert.NotNil(t, stored.ConvertedAt)

	// A second conversion is rejected and creates nothing.
	dupLead, errCode := M.ConvertColdCallToLead(project.ID, coldCall.ID, "agent-2")
	assert.Equal(t, http.StatusConflict, errCode)
	assert.Nil(t, dupLead)

	var leadCount int
	db := C.GetServices().Db
	err := db.Model(&M.Lead{}).Where("project_id = ? AND phone = ?",
		project.ID, phone).Count(&leadCount).Error
	assert.Nil(t, err)
	assert.Equal(t, 1, leadCount)

	// The rejected attempt does not overwrite the original marker.
	stored, errCode = M.GetColdCall(project.ID, coldCall.ID)
	assert.Equal(t, http.StatusFound, errCode)
	assert.Equal(t, "agent-1", stored.ConvertedBy)
}

func TestDBConvertColdCallToLeadMissing(t *testing.T) {
	project := createTestProject(t)

	lead, errCode := M.ConvertColdCallToLead(project.ID, "does-not-exist", "agent-1")
	assert.Equal(t, http.StatusNotFound, errCode)
	assert.Nil(t, lead)
}
