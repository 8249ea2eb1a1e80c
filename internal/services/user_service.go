package services

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"careercrafter/career-crafter-api/internal/models"
	"careercrafter/career-crafter-api/internal/repositories"
)

const (
	minPasswordLength = 6
	maxAge            = 120
)

type UserService interface {
	Register(ctx context.Context, req models.RegisterRequest) (*models.User, error)
}

type userService struct {
	userRepo   repositories.UserRepository
	bcryptCost int
	log        logrus.FieldLogger
}

func NewUserService(userRepo repositories.UserRepository, log logrus.FieldLogger) UserService {
	return &userService{
		userRepo:   userRepo,
		bcryptCost: bcrypt.DefaultCost,
		log:        log,
	}
}

func (s *userService) Register(ctx context.Context, req models.RegisterRequest) (*models.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, NewValidationError("name", "Name is required")
	}
	if len(req.Password) < minPasswordLength {
		return nil, NewValidationError("password", fmt.Sprintf("Password must be at least %d characters", minPasswordLength))
	}

	var age *int
	if req.Age != "" {
		v, ok := req.Age.Int()
		if !ok || v < 0 || v > maxAge {
			return nil, NewValidationError("age", fmt.Sprintf("Age must be a number between 0 and %d", maxAge))
		}
		age = &v
	}

	salaryMin, salaryMax, err := ParseSalaryExpectation(string(req.SalaryExpectation))
	if err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Name:         name,
		PasswordHash: string(hash),
		Age:          age,
		Skills:       NormalizeSkills(req.Skills),
		SalaryMin:    salaryMin,
		SalaryMax:    salaryMax,
	}
	if err := s.userRepo.Create(user); err != nil {
		if errors.Is(err, repositories.ErrDuplicate) {
			return nil, ErrUserAlreadyExists
		}
		return nil, err
	}

	s.log.WithField("user_id", user.ID).Info("user registered")
	return user, nil
}

// ParseSalaryExpectation reads a band such as "30000-60000" or "90000+", or a
// single number. An empty value yields no bounds.
func ParseSalaryExpectation(value string) (salaryMin, salaryMax *float64, err error) {
	value = strings.ReplaceAll(strings.TrimSpace(value), ",", "")
	if value == "" {
		return nil, nil, nil
	}
	invalid := NewValidationError("salaryExpectation", "Salary expectation must be a number or a range such as 30000-60000")

	parse := func(s string) (*float64, bool) {
		v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err != nil || v < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, false
		}
		return &v, true
	}

	if strings.HasSuffix(value, "+") {
		lo, ok := parse(strings.TrimSuffix(value, "+"))
		if !ok {
			return nil, nil, invalid
		}
		return lo, nil, nil
	}

	if lo, hi, found := strings.Cut(value, "-"); found {
		loV, ok1 := parse(lo)
		hiV, ok2 := parse(hi)
		if !ok1 || !ok2 || *hiV < *loV {
			return nil, nil, invalid
		}
		return loV, hiV, nil
	}

	v, ok := parse(value)
	if !ok {
		return nil, nil, invalid
	}
	return v, v, nil
}
