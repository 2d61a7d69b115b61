package models_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/veles-works/ems-console/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate_RoundTrip(t *testing.T) {
	t.Parallel()

	// Boundary dates are the ones that drift when a zone sneaks in.
	values := []string{"2023-12-31", "2024-01-01", "2024-02-29", "2022-01-01"}

	for _, value := range values {
		parsed, err := models.ParseDate(value)
		require.NoError(t, err)
		assert.Equal(t, value, parsed.String())

		again, err := models.ParseDate(parsed.String())
		require.NoError(t, err)
		assert.True(t, parsed.Equal(again))
	}
}

func TestParseDate_Invalid(t *testing.T) {
	t.Parallel()

	for _, value := range []string{"", "31-12-2023", "2023-13-01", "yesterday"} {
		_, err := models.ParseDate(value)
		assert.Error(t, err, "expected %q to be rejected", value)
	}
}

func TestDateOnly_JSON(t *testing.T) {
	t.Parallel()

	date := models.NewDate(2023, time.December, 31)

	encoded, err := json.Marshal(date)
	require.NoError(t, err)
	assert.JSONEq(t, `"2023-12-31"`, string(encoded))

	var decoded models.DateOnly
	require.NoError(t, json.Unmarshal(encoded, &decoded))
	assert.True(t, date.Equal(decoded))

	var unset models.DateOnly
	require.NoError(t, json.Unmarshal([]byte(`""`), &unset))
	assert.True(t, unset.IsZero())

	assert.Error(t, json.Unmarshal([]byte(`"not-a-date"`), &decoded))
}

func TestEmployee_DecodeFromAPI(t *testing.T) {
	t.Parallel()

	payload := `{
		"id": 7,
		"employee_id": "E7",
		"user": {"id": 3, "username": "jdoe", "first_name": "Jane", "last_name": "Doe", "email": "jdoe@example.com"},
		"mobile_phone": null,
		"department": {"id": 2, "name": "Engineering"},
		"job_title": "Engineer",
		"employment_type": "Full-time",
		"date_joined": "2022-01-01",
		"employee_status": "Active",
		"profile_picture": "/media/profile_pics/e7.png",
		"date_of_birth": null,
		"gender": "",
		"marital_status": null,
		"home_address": "1 Main St",
		"nationality": "Ukraine",
		"date_created": "2022-01-01T10:00:00Z",
		"date_updated": "2022-06-01T10:00:00Z"
	}`

	var employee models.Employee
	require.NoError(t, json.Unmarshal([]byte(payload), &employee))

	assert.Equal(t, 7, employee.ID)
	assert.Equal(t, "E7", employee.EmployeeID)
	require.NotNil(t, employee.User)
	assert.Equal(t, 3, employee.User.ID)
	assert.Equal(t, "Jane Doe", employee.User.FullName())
	require.NotNil(t, employee.Department)
	assert.Equal(t, 2, employee.Department.ID)
	require.NotNil(t, employee.DateJoined)
	assert.Equal(t, "2022-01-01", employee.DateJoined.String())
	assert.Nil(t, employee.DateOfBirth)
	assert.Empty(t, employee.MobilePhone)
	assert.Equal(t, "Jane Doe", employee.DisplayName())
}

func TestValidChoice(t *testing.T) {
	t.Parallel()

	assert.True(t, models.ValidChoice("", models.Genders()))
	assert.True(t, models.ValidChoice("Prefer Not To Say", models.Genders()))
	assert.False(t, models.ValidChoice("Unknown", models.Genders()))
	assert.True(t, models.ValidChoice(models.EmploymentIntern, models.EmploymentTypes()))
}
