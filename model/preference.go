package model

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/jinzhu/gorm"
	"github.com/jinzhu/gorm/dialects/postgres"
	log "github.com/sirupsen/logrus"

	C "github.com/vayron-digital/modulyn-one-sub000/config"
)

// AgentPreference persists the few pieces of durable client state.
// The only key in use is the sidebar collapse flag.
type AgentPreference struct {
	AgentUUID string         `gorm:"primary_key:true" json:"agent_uuid"`
	Key       string         `gorm:"primary_key:true" json:"key"`
	Value     postgres.Jsonb `json:"value"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
}

const PreferenceKeySidebar = "sidebar_collapsed"

func GetAgentPreference(agentUUID, key string) (*AgentPreference, int) {
	db := C.GetServices().Db

	if agentUUID == "" || key == "" {
		return nil, http.StatusBadRequest
	}

	var pref AgentPreference
	err := db.Where("agent_uuid = ? AND key = ?", agentUUID, key).First(&pref).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, http.StatusNotFound
		}
		log.WithFields(log.Fields{"agent_uuid": agentUUID,
			"key": key}).WithError(err).Error("Failed to get agent preference.")
		return nil, http.StatusInternalServerError
	}

	return &pref, http.StatusFound
}

func SetAgentPreference(agentUUID, key string, value interface{}) (*AgentPreference, int) {
	db := C.GetServices().Db

	if agentUUID == "" || key == "" {
		return nil, http.StatusBadRequest
	}

	raw, err := json.Marshal(value)
	if err != nil {
		return nil, http.StatusBadRequest
	}

	pref, errCode := GetAgentPreference(agentUUID, key)
	if errCode == http.StatusFound {
		pref.Value = postgres.Jsonb{RawMessage: raw}
		if err := db.Save(pref).Error; err != nil {
			log.WithError(err).Error("Failed to update agent preference.")
			return nil, http.StatusInternalServerError
		}
		return pref, http.StatusAccepted
	}
	if errCode != http.StatusNotFound {
		return nil, errCode
	}

	pref = &AgentPreference{
		AgentUUID: agentUUID,
		Key:       key,
		Value:     postgres.Jsonb{RawMessage: raw},
	}
	if err := db.Create(pref).Error; err != nil {
		log.WithError(err).Error("Failed to create agent preference.")
		return nil, http.StatusInternalServerError
	}

	return pref, http.StatusCreated
}
