package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUserRoleIsStaff(t *testing.T) {
	assert.False(t, Student.IsStaff())
	assert.True(t, Teacher.IsStaff())
	assert.True(t, Admin.IsStaff())
}
