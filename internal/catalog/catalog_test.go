package catalog

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestServiceByID(t *testing.T) {
	c := Default()

	svc, err := c.ServiceByID("corte")
	require.NoError(t, err)
	assert.Equal(t, "Corte Feminino", svc.Name)
	assert.Equal(t, time.Hour, svc.Duration)
	assert.Equal(t, 45.0, svc.Price)

	_, err = c.ServiceByID("massagem")
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestStaffQualifiedFor(t *testing.T) {
	c := Default()

	qualified, err := c.StaffQualifiedFor("corte")
	require.NoError(t, err)
	require.Len(t, qualified, 1)
	assert.Equal(t, "staff_1", qualified[0].ID)

	qualified, err = c.StaffQualifiedFor("manicure")
	require.NoError(t, err)
	require.Len(t, qualified, 1)
	assert.Equal(t, "staff_3", qualified[0].ID)

	_, err = c.StaffQualifiedFor("nope")
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestStaffQualifiedForDeclarationOrder(t *testing.T) {
	services := []Service{{ID: "svc", Name: "Svc", Duration: time.Hour, Skill: "x"}}
	staff := []StaffMember{
		{ID: "b", Skills: []string{"x"}},
		{ID: "a", Skills: []string{"x"}},
	}
	c := New(services, staff)

	qualified, err := c.StaffQualifiedFor("svc")
	require.NoError(t, err)
	require.Len(t, qualified, 2)
	assert.Equal(t, "b", qualified[0].ID)
	assert.Equal(t, "a", qualified[1].ID)
}

func TestWorkingWindow(t *testing.T) {
	st := StaffMember{ID: "s", StartHour: 9, EndHour: 17}
	date := time.Date(2025, 10, 6, 0, 0, 0, 0, time.UTC)

	start, end := st.WorkingWindow(date)
	assert.Equal(t, time.Date(2025, 10, 6, 9, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.Date(2025, 10, 6, 17, 0, 0, 0, time.UTC), end)
}

func TestWorksOn(t *testing.T) {
	c := Default()
	carla, err := c.StaffByID("staff_2")
	require.NoError(t, err)
	assert.False(t, carla.WorksOn(time.Monday))
	assert.True(t, carla.WorksOn(time.Tuesday))
	assert.False(t, carla.WorksOn(time.Sunday))
}
