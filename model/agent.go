package model

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/jinzhu/gorm"
	log "github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	C "github.com/vayron-digital/modulyn-one-sub000/config"
	U "github.com/vayron-digital/modulyn-one-sub000/util"
)

// Agent is a CRM user. Admin rights come from the project mapping
// role, not the agent row.
type Agent struct {
	UUID           string     `gorm:"primary_key:true" json:"uuid"`
	Email          string     `gorm:"not null;unique_index" json:"email"`
	FirstName      string     `json:"first_name"`
	LastName       string     `json:"last_name"`
	Phone          string     `json:"phone"`
	PasswordHash   string     `gorm:"type:varchar(100)" json:"-"`
	IsActive       bool       `gorm:"not null;default:true" json:"is_active"`
	LastLoggedInAt *time.Time `json:"last_logged_in_at"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

func (a *Agent) TableName() string {
	return "agents"
}

type CreateAgentParams struct {
	Email     string
	FirstName string
	LastName  string
	Phone     string
	Password  string
}

const minPasswordLength = 8

func hashPassword(plain string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	return string(hash), err
}

func CreateAgent(params *CreateAgentParams) (*Agent, int) {
	db := C.GetServices().Db

	if !U.IsValidEmail(params.Email) {
		return nil, http.StatusBadRequest
	}

	if len(params.Password) < minPasswordLength {
		return nil, http.StatusBadRequest
	}

	hash, err := hashPassword(params.Password)
	if err != nil {
		log.WithError(err).Error("Failed to hash agent password.")
		return nil, http.StatusInternalServerError
	}

	agent := &Agent{
		UUID:         uuid.New().String(),
		Email:        U.TrimAndLower(params.Email),
		FirstName:    params.FirstName,
		LastName:     params.LastName,
		Phone:        params.Phone,
		PasswordHash: hash,
		IsActive:     true,
	}

	if err := db.Create(agent).Error; err != nil {
		log.WithField("email", agent.Email).WithError(err).Error("Failed to create agent.")
		return nil, http.StatusInternalServerError
	}

	return agent, http.StatusCreated
}

func GetAgentByUUID(agentUUID string) (*Agent, int) {
	db := C.GetServices().Db

	if agentUUID == "" {
		return nil, http.StatusBadRequest
	}

	var agent Agent
	if err := db.Where("uuid = ?", agentUUID).First(&agent).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, http.StatusNotFound
		}
		log.WithField("agent_uuid", agentUUID).WithError(err).Error("Failed to get agent.")
		return nil, http.StatusInternalServerError
	}

	return &agent, http.StatusFound
}

func GetAgentByEmail(email string) (*Agent, int) {
	db := C.GetServices().Db

	if email == "" {
		return nil, http.StatusBadRequest
	}

	var agent Agent
	if err := db.Where("email = ?", U.TrimAndLower(email)).First(&agent).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, http.StatusNotFound
		}
		log.WithField("email", email).WithError(err).Error("Failed to get agent by email.")
		return nil, http.StatusInternalServerError
	}

	return &agent, http.StatusFound
}

// AuthenticateAgent verifies the password for an email. Inactive
// agents cannot sign in.
func AuthenticateAgent(email, password string) (*Agent, int) {
	agent, errCode := GetAgentByEmail(email)
	if errCode != http.StatusFound {
		return nil, http.StatusUnauthorized
	}

	if !agent.IsActive {
		return nil, http.StatusUnauthorized
	}

	if err := bcrypt.CompareHashAndPassword(
		[]byte(agent.PasswordHash), []byte(password)); err != nil {
		return nil, http.StatusUnauthorized
	}

	return agent, http.StatusFound
}

func UpdateAgentLastLogin(agentUUID string) int {
	db := C.GetServices().Db

	now := time.Now().UTC()
	err := db.Model(&Agent{}).Where("uuid = ?", agentUUID).
		Update("last_logged_in_at", &now).Error
	if err != nil {
		log.WithField("agent_uuid", agentUUID).WithError(err).Error("Failed to update last login.")
		return http.StatusInternalServerError
	}

	return http.StatusAccepted
}
