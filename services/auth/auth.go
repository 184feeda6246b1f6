package auth

import (
	"context"
	"errors"
	"time"

	"github.com/go-redis/redis/v8"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"

	customerRepo "festivo/database/repository/customer"
	vendorRepo "festivo/database/repository/vendor"
	"festivo/models"
	"festivo/utils"
)

const tokenTTL = 72 * time.Hour

var (
	// ErrEmailTaken is returned when the email already has an account.
	ErrEmailTaken = errors.New("email is already registered")
	// ErrInvalidCredentials is returned on a failed signin.
	ErrInvalidCredentials = errors.New("invalid email or password")
)

// CustomerInput and VendorInput are registration payloads after binding.
type CustomerInput struct {
	Name     string
	Email    string
	Password string
	Phone    string
}

type VendorInput struct {
	Name         string
	Email        string
	Password     string
	BusinessName string
	Phone        string
	Address      string
}

// AuthService is the thin authentication boundary: bcrypt-hashed passwords,
// HS256 JWTs and a redis-cached active session per account. OTP and password
// reset are external collaborators and not modelled here.
type AuthService interface {
	RegisterCustomer(ctx context.Context, in CustomerInput) (*models.Customer, string, error)
	LoginCustomer(ctx context.Context, email, password string) (*models.Customer, string, error)
	RegisterVendor(ctx context.Context, in VendorInput) (*models.Vendor, string, error)
	LoginVendor(ctx context.Context, email, password string) (*models.Vendor, string, error)
}

// DefaultAuthService implements AuthService.
type DefaultAuthService struct {
	Customers customerRepo.CustomerRepository
	Vendors   vendorRepo.VendorRepository
	AuthCache *redis.Client
}

func (s *DefaultAuthService) issueToken(role, id string) (string, error) {
	token, err := utils.GenerateToken(id, role, tokenTTL)
	if err != nil {
		return "", err
	}
	if err := utils.SaveAuthSession(s.AuthCache, role, id, utils.HashToken(token)); err != nil {
		return "", err
	}
	return token, nil
}

func (s *DefaultAuthService) RegisterCustomer(ctx context.Context, in CustomerInput) (*models.Customer, string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", err
	}

	c := &models.Customer{
		Name:         in.Name,
		Email:        in.Email,
		PasswordHash: string(hash),
		Phone:        in.Phone,
	}
	if err := s.Customers.Create(ctx, c); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, "", ErrEmailTaken
		}
		return nil, "", err
	}

	token, err := s.issueToken(models.RecipientCustomer, c.ID)
	if err != nil {
		return nil, "", err
	}
	return c, token, nil
}

func (s *DefaultAuthService) LoginCustomer(ctx context.Context, email, password string) (*models.Customer, string, error) {
	c, err := s.Customers.GetByEmail(ctx, email)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, "", ErrInvalidCredentials
	}
	if err != nil {
		return nil, "", err
	}
	if bcrypt.CompareHashAndPassword([]byte(c.PasswordHash), []byte(password)) != nil {
		return nil, "", ErrInvalidCredentials
	}

	token, err := s.issueToken(models.RecipientCustomer, c.ID)
	if err != nil {
		return nil, "", err
	}
	return c, token, nil
}

func (s *DefaultAuthService) RegisterVendor(ctx context.Context, in VendorInput) (*models.Vendor, string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", err
	}

	v := &models.Vendor{
		Name:         in.Name,
		Email:        in.Email,
		PasswordHash: string(hash),
		BusinessName: in.BusinessName,
		Phone:        in.Phone,
		Address:      in.Address,
	}
	if err := s.Vendors.Create(ctx, v); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, "", ErrEmailTaken
		}
		return nil, "", err
	}

	token, err := s.issueToken(models.RecipientVendor, v.ID)
	if err != nil {
		return nil, "", err
	}
	return v, token, nil
}

func (s *DefaultAuthService) LoginVendor(ctx context.Context, email, password string) (*models.Vendor, string, error) {
	v, err := s.Vendors.GetByEmail(ctx, email)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, "", ErrInvalidCredentials
	}
	if err != nil {
		return nil, "", err
	}
	if bcrypt.CompareHashAndPassword([]byte(v.PasswordHash), []byte(password)) != nil {
		return nil, "", ErrInvalidCredentials
	}

	token, err := s.issueToken(models.RecipientVendor, v.ID)
	if err != nil {
		return nil, "", err
	}
	return v, token, nil
}
