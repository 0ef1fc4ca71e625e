package validator

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidEmail(t *testing.T) {
	assert.True(t, ValidEmail("h@x.com"))
	assert.True(t, ValidEmail("first.last@example.co.uk"))
	assert.False(t, ValidEmail(""))
	assert.False(t, ValidEmail("not-an-email"))
	assert.False(t, ValidEmail("missing@domain@x.com"))
}

func TestValidName(t *testing.T) {
	assert.True(t, ValidName("Hayden"))
	assert.True(t, ValidName(strings.Repeat("a", 50)))
	assert.False(t, ValidName(""))
	assert.False(t, ValidName(strings.Repeat("a", 51)))
}

func TestValidPassword(t *testing.T) {
	assert.True(t, ValidPassword("abc123"))
	assert.True(t, ValidPassword("ññññññ"))
	assert.False(t, ValidPassword("abc12"))
	// Five runes, but more than six bytes.
	assert.False(t, ValidPassword("ñññññ"))
	assert.False(t, ValidPassword(""))
}

func TestValidHandle(t *testing.T) {
	assert.True(t, ValidHandle("hayden42"))
	assert.True(t, ValidHandle("abc"))
	assert.True(t, ValidHandle(strings.Repeat("a", 20)))
	assert.False(t, ValidHandle("ab"))
	assert.False(t, ValidHandle(strings.Repeat("a", 21)))
	assert.False(t, ValidHandle("has space"))
	assert.False(t, ValidHandle("dash-ed"))
}
