package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPriceLabel(t *testing.T) {
	assert.Equal(t, "Free", Price{IsFree: true}.Label())
	assert.Equal(t, "₹1,500", Price{Min: 1500, Max: 1500}.Label())
	assert.Equal(t, "₹2,499+", Price{Min: 2499, Max: 4999}.Label())
}

func TestCategoryValid(t *testing.T) {
	assert.True(t, CategoryWellness.Valid())
	assert.False(t, Category("Music").Valid())
	assert.False(t, Category("all").Valid())
}

func TestSeatsLeft(t *testing.T) {
	assert.Equal(t, 20, Event{Attendees: 80, MaxAttendees: 100}.SeatsLeft())
	assert.Equal(t, 0, Event{Attendees: 120, MaxAttendees: 100}.SeatsLeft())
}
