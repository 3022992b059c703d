package service

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strconv"
	"strings"
	"time"

	"github.com/Dan9191/cashflow-service/internal/cashflow"
	"github.com/Dan9191/cashflow-service/internal/config"
	"github.com/Dan9191/cashflow-service/internal/integrations/cbr"
	"github.com/Dan9191/cashflow-service/internal/models"
	"github.com/Dan9191/cashflow-service/internal/repository"
	"github.com/golang-jwt/jwt/v5"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidInput       = errors.New("invalid input")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUnauthenticated    = errors.New("user ID not found in context")
	ErrNotFound           = repository.ErrNotFound
	ErrConflict           = repository.ErrDuplicate
)

// Store is the persistence the service needs
type Store interface {
	CreateUser(ctx context.Context, user *models.User) error
	FindUserByEmail(ctx context.Context, email string) (*models.User, error)
	ListUsers(ctx context.Context) ([]models.User, error)
	AddToWaitlist(ctx context.Context, entry *models.WaitlistEntry) error

	CreateAccount(ctx context.Context, account *models.Account) error
	ListAccounts(ctx context.Context, userID int64) ([]models.Account, error)
	UpdateAccount(ctx context.Context, account *models.Account) error
	DeleteAccount(ctx context.Context, userID, accountID int64) error
	UpdateBalanceByProviderID(ctx context.Context, userID int64, providerAccountID string, balance decimal.Decimal) error

	CreateIncome(ctx context.Context, income *models.Income) error
	ListIncomes(ctx context.Context, userID int64) ([]models.Income, error)
	UpdateIncome(ctx context.Context, income *models.Income) error
	DeleteIncome(ctx context.Context, userID, incomeID int64) error

	CreateExpense(ctx context.Context, expense *models.Expense) error
	ListExpenses(ctx context.Context, userID int64) ([]models.Expense, error)
	UpdateExpense(ctx context.Context, expense *models.Expense) error
	DeleteExpense(ctx context.Context, userID, expenseID int64) error

	CreateLinkedItem(ctx context.Context, item *models.LinkedItem) error
	ListLinkedItems(ctx context.Context, userID int64) ([]models.LinkedItem, error)
}

// RateSource supplies exchange rates for a day
type RateSource interface {
	GetRates(ctx context.Context, on cashflow.Date) (cbr.Rates, error)
}

// Mailer sends transactional emails
type Mailer interface {
	SendWaitlistConfirmation(to string) error
}

// Service handles business logic
type Service struct {
	repo   Store
	log    *logrus.Logger
	config *config.Config
	rates  RateSource
	mailer Mailer
	now    func() time.Time
}

// NewService initializes a new service. rates and mailer may be nil.
func NewService(repo Store, log *logrus.Logger, cfg *config.Config, rates RateSource, mailer Mailer) *Service {
	return &Service{repo: repo, log: log, config: cfg, rates: rates, mailer: mailer, now: time.Now}
}

// WithClock replaces the wall clock used to decide what "today" is
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// Today returns the current calendar day in the configured time zone
func (s *Service) Today() cashflow.Date {
	loc := s.config.Location
	if loc == nil {
		loc = time.UTC
	}
	return cashflow.DateOf(s.now().In(loc))
}

type ctxKey string

const userIDKey ctxKey = "userID"

// WithUserID stores the authenticated user in the context
func WithUserID(ctx context.Context, userID int64) context.Context {
	return context.WithValue(ctx, userIDKey, userID)
}

// UserIDFromContext returns the authenticated user stored by WithUserID
func UserIDFromContext(ctx context.Context) (int64, error) {
	userID, ok := ctx.Value(userIDKey).(int64)
	if !ok || userID <= 0 {
		return 0, ErrUnauthenticated
	}
	return userID, nil
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, fmt.Sprintf(format, args...))
}

func normalizeEmail(address string) (string, error) {
	parsed, err := mail.ParseAddress(strings.TrimSpace(address))
	if err != nil {
		return "", invalid("email %q is not valid", address)
	}
	return strings.ToLower(parsed.Address), nil
}

// Register creates a new user with hashed password
func (s *Service) Register(ctx context.Context, username, email, password string) (*models.User, error) {
	email, err := normalizeEmail(email)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(username) == "" {
		return nil, invalid("username is required")
	}
	if len(password) < 8 {
		return nil, invalid("password must be at least 8 characters")
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Username:     strings.TrimSpace(username),
		Email:        email,
		PasswordHash: string(hashedPassword),
	}
	if err := s.repo.CreateUser(ctx, user); err != nil {
		return nil, err
	}

	s.log.Infof("User registered: %s", user.Email)
	return user, nil
}

// Login authenticates a user and returns a JWT token
func (s *Service) Login(ctx context.Context, email, password string) (string, error) {
	email, err := normalizeEmail(email)
	if err != nil {
		return "", ErrInvalidCredentials
	}
	user, err := s.repo.FindUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return "", ErrInvalidCredentials
		}
		return "", err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", ErrInvalidCredentials
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   strconv.FormatInt(user.ID, 10),
		IssuedAt:  jwt.NewNumericDate(s.now()),
		ExpiresAt: jwt.NewNumericDate(s.now().Add(24 * time.Hour)),
	})
	tokenString, err := token.SignedString([]byte(s.config.JWTSecret))
	if err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}

	s.log.Infof("User logged in: %s", user.Email)
	return tokenString, nil
}

// JoinWaitlist records an email from the landing page and sends a confirmation
func (s *Service) JoinWaitlist(ctx context.Context, address string) (*models.WaitlistEntry, error) {
	email, err := normalizeEmail(address)
	if err != nil {
		return nil, err
	}
	entry := &models.WaitlistEntry{Email: email}
	if err := s.repo.AddToWaitlist(ctx, entry); err != nil {
		return nil, err
	}
	s.log.WithField("email", email).Info("Waitlist signup")

	if s.mailer != nil {
		if err := s.mailer.SendWaitlistConfirmation(email); err != nil {
			s.log.WithError(err).WithField("email", email).Warn("Waitlist confirmation not sent")
		}
	}
	return entry, nil
}
