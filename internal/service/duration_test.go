package service

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestComputeDuration_Overnight(t *testing.T) {
	assert.Equal(t, "9h 30m", ComputeDuration("22:00", "07:30"))
	assert.Equal(t, "8h 30m", ComputeDuration("22:00", "06:30"))
	assert.Equal(t, "10h 30m", ComputeDuration("23:45", "10:15"))
}

func TestComputeDuration_SameDay(t *testing.T) {
	assert.Equal(t, "8h 0m", ComputeDuration("01:00", "09:00"))
	assert.Equal(t, "0h 1m", ComputeDuration("09:00", "09:01"))
}

func TestComputeDuration_EqualTimesWrapFullDay(t *testing.T) {
	assert.Equal(t, "24h 0m", ComputeDuration("09:00", "09:00"))
	assert.Equal(t, "24h 0m", ComputeDuration("00:00", "00:00"))
}

func TestComputeDuration_MalformedInput(t *testing.T) {
	cases := [][2]string{
		{"", "07:00"},
		{"22:00", ""},
		{"", ""},
		{"2200", "07:00"},
		{"22:00", "0700"},
		{"ab:cd", "07:00"},
		{"22:xx", "07:00"},
		{"-1:30", "07:00"},
	}
	for _, c := range cases {
		assert.Equal(t, "0h 0m", ComputeDuration(c[0], c[1]), "start=%q end=%q", c[0], c[1])
	}
}

func TestComputeDuration_AlwaysWellFormed(t *testing.T) {
	shape := regexp.MustCompile(`^\d+h \d+m$`)
	times := []string{"00:00", "04:30", "09:00", "13:15", "18:59", "23:45"}
	for _, start := range times {
		for _, end := range times {
			out := ComputeDuration(start, end)
			assert.Regexp(t, shape, out, "start=%q end=%q", start, end)
		}
	}
}
