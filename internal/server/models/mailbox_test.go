package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMailbox_Flags(t *testing.T) {
	assert.False(t, (&Mailbox{}).Admin())
	assert.True(t, (&Mailbox{IsAdmin: 1}).Admin())
	assert.True(t, (&Mailbox{IsGlobalAdmin: 1}).Admin())

	assert.False(t, (&Mailbox{}).IsActive())
	assert.True(t, (&Mailbox{Active: 1}).IsActive())
}
