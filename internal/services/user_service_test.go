package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"careercrafter/career-crafter-api/internal/models"
)

func newTestUserService(repo *fakeUserRepo) UserService {
	logger, _ := newTestLogger()
	svc := NewUserService(repo, logger).(*userService)
	svc.bcryptCost = bcrypt.MinCost
	return svc
}

func TestRegister(t *testing.T) {
	repo := &fakeUserRepo{}
	svc := newTestUserService(repo)

	user, err := svc.Register(context.Background(), models.RegisterRequest{
		Name:              "  Ada  ",
		Password:          "secret1",
		Age:               "36",
		Skills:            models.SkillList{"Go", "Golang", "Docker"},
		SalaryExpectation: "60000-90000",
	})
	require.NoError(t, err)

	assert.Equal(t, "Ada", user.Name)
	assert.NotEqual(t, "secret1", user.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("secret1")))
	require.NotNil(t, user.Age)
	assert.Equal(t, 36, *user.Age)
	assert.Equal(t, []string{"go", "docker"}, user.Skills)
	require.NotNil(t, user.SalaryMin)
	require.NotNil(t, user.SalaryMax)
	assert.Equal(t, 60000.0, *user.SalaryMin)
	assert.Equal(t, 90000.0, *user.SalaryMax)
}

func TestRegisterDuplicateName(t *testing.T) {
	svc := newTestUserService(&fakeUserRepo{})
	req := models.RegisterRequest{Name: "ada", Password: "secret1"}

	_, err := svc.Register(context.Background(), req)
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), req)
	assert.ErrorIs(t, err, ErrUserAlreadyExists)
}

func TestRegisterValidation(t *testing.T) {
	tests := []struct {
		name  string
		req   models.RegisterRequest
		field string
	}{
		{"missing name", models.RegisterRequest{Name: " ", Password: "secret1"}, "name"},
		{"short password", models.RegisterRequest{Name: "ada", Password: "abc"}, "password"},
		{"age not a number", models.RegisterRequest{Name: "ada", Password: "secret1", Age: "old"}, "age"},
		{"age out of range", models.RegisterRequest{Name: "ada", Password: "secret1", Age: "150"}, "age"},
		{"bad salary band", models.RegisterRequest{Name: "ada", Password: "secret1", SalaryExpectation: "lots"}, "salaryExpectation"},
		{"non-finite salary", models.RegisterRequest{Name: "ada", Password: "secret1", SalaryExpectation: "NaN"}, "salaryExpectation"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &fakeUserRepo{}
			_, err := newTestUserService(repo).Register(context.Background(), tt.req)

			var validationErr *ValidationError
			require.ErrorAs(t, err, &validationErr)
			assert.Equal(t, tt.field, validationErr.Field)
			assert.Empty(t, repo.users)
		})
	}
}

func TestParseSalaryExpectation(t *testing.T) {
	ptr := func(v float64) *float64 { return &v }

	tests := []struct {
		value   string
		min     *float64
		max     *float64
		wantErr bool
	}{
		{"", nil, nil, false},
		{"0-30000", ptr(0), ptr(30000), false},
		{"30,000 - 60,000", ptr(30000), ptr(60000), false},
		{"90000+", ptr(90000), nil, false},
		{"75000", ptr(75000), ptr(75000), false},
		{"60000-30000", nil, nil, true},
		{"-5", nil, nil, true},
		{"abc+", nil, nil, true},
		{"NaN", nil, nil, true},
		{"Inf", nil, nil, true},
		{"+Inf", nil, nil, true},
		{"NaN+", nil, nil, true},
		{"0-Infinity", nil, nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			lo, hi, err := ParseSalaryExpectation(tt.value)
			if tt.wantErr {
				assert.Equal(t, KindValidation, KindOf(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.min, lo)
			assert.Equal(t, tt.max, hi)
		})
	}
}
