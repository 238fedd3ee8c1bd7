package model

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateChatTemplate(t *testing.T) {
	valid, _ := ValidateChatTemplate(&ChatTemplate{Title: "Follow up", Body: "Hi there", Channel: ChannelEmail})
	assert.True(t, valid)

	valid, _ = ValidateChatTemplate(&ChatTemplate{Body: "Hi", Channel: ChannelEmail})
	assert.False(t, valid)

	valid, _ = ValidateChatTemplate(&ChatTemplate{Title: "Follow up", Channel: ChannelEmail})
	assert.False(t, valid)

	valid, msg := ValidateChatTemplate(&ChatTemplate{Title: "Follow up", Body: "Hi", Channel: "pigeon"})
	assert.False(t, valid)
	assert.NotEmpty(t, msg)
}

func TestBuildOutboundLinkEmail(t *testing.T) {
	link, err := BuildOutboundLink(ChannelEmail, "buyer@example.com", "Listing", "Hi there")
	assert.Nil(t, err)
	assert.True(t, strings.HasPrefix(link, "mailto:buyer@example.com?"))
	assert.Contains(t, link, "subject=Listing")
	assert.Contains(t, link, "body=Hi+there")

	// No params, no question mark.
	link, err = BuildOutboundLink(ChannelEmail, "buyer@example.com", "", "")
	assert.Nil(t, err)
	assert.Equal(t, "mailto:buyer@example.com", link)

	_, err = BuildOutboundLink(ChannelEmail, "not-an-email", "Listing", "Hi")
	assert.NotNil(t, err)
}

func TestBuildOutboundLinkSMS(t *testing.T) {
	link, err := BuildOutboundLink(ChannelSMS, "+14155552671", "", "Call me back")
	assert.Nil(t, err)
	assert.Equal(t, "sms:+14155552671?body=Call+me+back", link)

	// National format resolves through the default region.
	link, err = BuildOutboundLink(ChannelSMS, "050 123 4567", "", "")
	assert.Nil(t, err)
	assert.Equal(t, "sms:+971501234567", link)

	_, err = BuildOutboundLink(ChannelSMS, "12", "", "Hi")
	assert.NotNil(t, err)
}

func TestBuildOutboundLinkWhatsApp(t *testing.T) {
	// wa.me takes digits only, no plus.
	link, err := BuildOutboundLink(ChannelWhatsApp, "+14155552671", "", "Hello!")
	assert.Nil(t, err)
	assert.Equal(t, "https://wa.me/14155552671?text=Hello%21", link)

	link, err = BuildOutboundLink(ChannelWhatsApp, "+14155552671", "", "")
	assert.Nil(t, err)
	assert.Equal(t, "https://wa.me/14155552671", link)
}

func TestBuildOutboundLinkUnknownChannel(t *testing.T) {
	_, err := BuildOutboundLink("pager", "+14155552671", "", "Hi")
	assert.NotNil(t, err)
}
