package model

import (
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/google/uuid"
	"github.com/jinzhu/gorm"
	log "github.com/sirupsen/logrus"

	C "github.com/vayron-digital/modulyn-one-sub000/config"
	U "github.com/vayron-digital/modulyn-one-sub000/util"
)

// ChatTemplate is a canned outbound message for a channel.
type ChatTemplate struct {
	ID        string    `gorm:"primary_key:true" json:"id"`
	ProjectID uint64    `gorm:"primary_key:true" json:"project_id"`
	Title     string    `gorm:"not null" json:"title"`
	Body      string    `gorm:"not null" json:"body"`
	Subject   string    `json:"subject"`
	Channel   string    `gorm:"type:varchar(10);not null" json:"channel"`
	CreatedBy string    `json:"created_by"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

const (
	ChannelEmail    = "email"
	ChannelSMS      = "sms"
	ChannelWhatsApp = "whatsapp"
)

func isValidChannel(channel string) bool {
	return channel == ChannelEmail || channel == ChannelSMS || channel == ChannelWhatsApp
}

func ValidateChatTemplate(template *ChatTemplate) (bool, string) {
	if template.Title == "" {
		return false, "Title is required."
	}

	if template.Body == "" {
		return false, "Body is required."
	}

	if !isValidChannel(template.Channel) {
		return false, "Channel must be email, sms or whatsapp."
	}

	return true, ""
}

// BuildOutboundLink composes the deep link the client navigates to
// for a "send" action. Pure, no side effects.
func BuildOutboundLink(channel, target, subject, body string) (string, error) {
	switch channel {
	case ChannelEmail:
		if !U.IsValidEmail(target) {
			return "", fmt.Errorf("invalid email target")
		}
		params := url.Values{}
		if subject != "" {
			params.Set("subject", subject)
		}
		if body != "" {
			params.Set("body", body)
		}
		link := "mailto:" + target
		if encoded := params.Encode(); encoded != "" {
			link += "?" + encoded
		}
		return link, nil

	case ChannelSMS:
		phone, err := U.NormalizePhone(target, C.GetDefaultPhoneRegion())
		if err != nil {
			return "", err
		}
		link := "sms:" + phone
		if body != "" {
			link += "?body=" + url.QueryEscape(body)
		}
		return link, nil

	case ChannelWhatsApp:
		phone, err := U.NormalizePhone(target, C.GetDefaultPhoneRegion())
		if err != nil {
			return "", err
		}
		link := "https://wa.me/" + U.PhoneDigits(phone)
		if body != "" {
			link += "?text=" + url.QueryEscape(body)
		}
		return link, nil
	}

	return "", fmt.Errorf("unknown channel: %s", channel)
}

func ListChatTemplates(projectID uint64) ([]ChatTemplate, int) {
	db := C.GetServices().Db

	if projectID == 0 {
		return nil, http.StatusBadRequest
	}

	var templates []ChatTemplate
	err := db.Where("project_id = ?", projectID).Order("title ASC").Find(&templates).Error
	if err != nil {
		log.WithField("project_id", projectID).WithError(err).Error("Failed to list chat templates.")
		return nil, http.StatusInternalServerError
	}

	return templates, http.StatusFound
}

func CreateChatTemplate(projectID uint64, template *ChatTemplate) (*ChatTemplate, int) {
	db := C.GetServices().Db

	if projectID == 0 || template.ID != "" {
		return nil, http.StatusBadRequest
	}

	if valid, _ := ValidateChatTemplate(template); !valid {
		return nil, http.StatusBadRequest
	}

	template.ID = uuid.New().String()
	template.ProjectID = projectID

	if err := db.Create(template).Error; err != nil {
		log.WithField("project_id", projectID).WithError(err).Error("Failed to create chat template.")
		return nil, http.StatusInternalServerError
	}

	publishChange(projectID, TableChatTemplates)
	return template, http.StatusCreated
}

func GetChatTemplate(projectID uint64, id string) (*ChatTemplate, int) {
	db := C.GetServices().Db

	if projectID == 0 || id == "" {
		return nil, http.StatusBadRequest
	}

	var template ChatTemplate
	err := db.Where("project_id = ? AND id = ?", projectID, id).First(&template).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, http.StatusNotFound
		}
		log.WithFields(log.Fields{"project_id": projectID,
			"template_id": id}).WithError(err).Error("Failed to get chat template.")
		return nil, http.StatusInternalServerError
	}

	return &template, http.StatusFound
}

func DeleteChatTemplate(projectID uint64, id string) int {
	db := C.GetServices().Db

	if projectID == 0 || id == "" {
		return http.StatusBadRequest
	}

	query := db.Where("project_id = ? AND id = ?", projectID, id).Delete(&ChatTemplate{})
	if query.Error != nil {
		log.WithFields(log.Fields{"project_id": projectID,
			"template_id": id}).WithError(query.Error).Error("Failed to delete chat template.")
		return http.StatusInternalServerError
	}

	if query.RowsAffected == 0 {
		return http.StatusNotFound
	}

	publishChange(projectID, TableChatTemplates)
	return http.StatusAccepted
}
