package services

import (
	"context"
	"crypto/rand"
	stderrors "errors"
	"math/big"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"google.golang.org/api/idtoken"

	"stayhub/constants"
	"stayhub/dto"
	"stayhub/errors"
	"stayhub/models"
	"stayhub/services/logger"
	"stayhub/store"
	"stayhub/validator"
)

// GoogleVerifier checks a Google ID token for the given audience.
type GoogleVerifier func(ctx context.Context, token, audience string) (*idtoken.Payload, error)

type AuthServiceOptions struct {
	Store          store.Store
	Tokens         *TokenService
	Mailer         Mailer
	Logger         logger.Logger
	GoogleClientID string
	VerifyGoogle   GoogleVerifier
}

type AuthService struct {
	store          store.Store
	tokens         *TokenService
	mailer         Mailer
	logger         logger.Logger
	googleClientID string
	verifyGoogle   GoogleVerifier
}

func NewAuthService(opts AuthServiceOptions) *AuthService {
	if opts.Logger == nil {
		opts.Logger = logger.Default()
	}
	if opts.Mailer == nil {
		opts.Mailer = LogMailer{Logger: opts.Logger}
	}
	if opts.VerifyGoogle == nil {
		opts.VerifyGoogle = idtoken.Validate
	}
	return &AuthService{
		store:          opts.Store,
		tokens:         opts.Tokens,
		mailer:         opts.Mailer,
		logger:         opts.Logger,
		googleClientID: opts.GoogleClientID,
		verifyGoogle:   opts.VerifyGoogle,
	}
}

var errInvalidCredentials = errors.Unauthorized("Invalid credentials")

// Register creates a student account. The referral link and the welcome
// mail are best-effort and never fail the registration.
func (s *AuthService) Register(ctx context.Context, in dto.RegisterInput) (*dto.AuthResult, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	in.Phone = strings.TrimSpace(in.Phone)
	in.City = strings.TrimSpace(in.City)
	if err := validator.Struct(in); err != nil {
		return nil, err
	}
	if err := validator.ValidatePhone(in.Phone); err != nil {
		return nil, err
	}

	if _, err := s.store.Students().GetByEmail(ctx, in.Email); err == nil {
		return nil, errors.Conflict("Email is already registered")
	}
	if _, err := s.store.Students().GetByPhone(ctx, in.Phone); err == nil {
		return nil, errors.Conflict("Phone number is already registered")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, errors.Internal("Failed to hash password", err)
	}
	student := &models.Student{
		ID:           uuid.NewString(),
		Name:         in.Name,
		Email:        in.Email,
		Phone:        in.Phone,
		City:         in.City,
		Password:     string(hash),
		ReferralCode: models.NewReferralCode(),
		IsActive:     true,
	}
	if err := s.store.Students().Create(ctx, student); err != nil {
		if stderrors.Is(err, store.ErrDuplicate) {
			return nil, errors.Conflict("Account already exists")
		}
		return nil, storeErr(err, "Student not found")
	}

	if code := strings.ToUpper(strings.TrimSpace(in.ReferralCode)); code != "" {
		s.linkReferral(ctx, code, student.ID)
	}
	if err := s.mailer.Send(student.Email, "Welcome", welcomeEmail(student.Name, student.ReferralCode)); err != nil {
		s.logger.Warn("welcome mail to %s failed: %v", student.Email, err)
	}

	return s.issue(constants.RoleStudent, studentAccount(student), constants.StudentTokenTTL)
}

func (s *AuthService) linkReferral(ctx context.Context, code, referredID string) {
	referrer, err := s.store.Students().GetByReferralCode(ctx, code)
	if err != nil {
		s.logger.Warn("referral code %s not usable: %v", code, err)
		return
	}
	if referrer.ID == referredID {
		return
	}
	ref := &models.Referral{ID: uuid.NewString(), ReferrerID: referrer.ID, ReferredID: referredID}
	if err := s.store.Referrals().Create(ctx, ref); err != nil {
		s.logger.Warn("referral %s -> %s not recorded: %v", referrer.ID, referredID, err)
	}
}

// Login accepts an email or a 10 digit phone number as identifier.
func (s *AuthService) Login(ctx context.Context, in dto.LoginInput) (*dto.AuthResult, error) {
	if err := validator.Struct(in); err != nil {
		return nil, err
	}
	ident := strings.TrimSpace(in.Identifier)
	var (
		student *models.Student
		err     error
	)
	if strings.Contains(ident, "@") {
		student, err = s.store.Students().GetByEmail(ctx, strings.ToLower(ident))
	} else {
		student, err = s.store.Students().GetByPhone(ctx, ident)
	}
	if err != nil {
		if isStoreNotFound(err) {
			return nil, errInvalidCredentials
		}
		return nil, storeErr(err, "Student not found")
	}
	if !checkPassword(student.Password, in.Password) {
		return nil, errInvalidCredentials
	}
	if !student.IsActive {
		return nil, errors.Forbidden("Account is disabled")
	}
	return s.issue(constants.RoleStudent, studentAccount(student), constants.StudentTokenTTL)
}

// GoogleLogin signs a student in with a Google ID token, creating or
// linking the account by email.
func (s *AuthService) GoogleLogin(ctx context.Context, in dto.GoogleLoginInput) (*dto.AuthResult, error) {
	if s.googleClientID == "" {
		return nil, errors.Validation("Google sign-in is not configured")
	}
	payload, err := s.verifyGoogle(ctx, in.IDToken, s.googleClientID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrCodeUnauthorized, "Invalid Google token", err)
	}
	email, _ := payload.Claims["email"].(string)
	name, _ := payload.Claims["name"].(string)
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return nil, errors.Unauthorized("Google account has no email")
	}

	student, err := s.store.Students().GetByGoogleID(ctx, payload.Subject)
	if err != nil && !isStoreNotFound(err) {
		return nil, storeErr(err, "Student not found")
	}
	if student == nil {
		student, err = s.store.Students().GetByEmail(ctx, email)
		switch {
		case err == nil:
			student.GoogleID = payload.Subject
			if err := s.store.Students().Update(ctx, student); err != nil {
				return nil, storeErr(err, "Student not found")
			}
		case isStoreNotFound(err):
			if name == "" {
				name = strings.Split(email, "@")[0]
			}
			student = &models.Student{
				ID:           uuid.NewString(),
				Name:         name,
				Email:        email,
				GoogleID:     payload.Subject,
				ReferralCode: models.NewReferralCode(),
				IsActive:     true,
			}
			if err := s.store.Students().Create(ctx, student); err != nil {
				return nil, storeErr(err, "Student not found")
			}
			s.logger.Info("student %s created from google sign-in", student.ID)
		default:
			return nil, storeErr(err, "Student not found")
		}
	}
	if !student.IsActive {
		return nil, errors.Forbidden("Account is disabled")
	}
	return s.issue(constants.RoleStudent, studentAccount(student), constants.StudentTokenTTL)
}

func (s *AuthService) VendorLogin(ctx context.Context, in dto.LoginInput) (*dto.AuthResult, error) {
	if err := validator.Struct(in); err != nil {
		return nil, err
	}
	vendor, err := s.store.Vendors().GetByEmail(ctx, strings.ToLower(strings.TrimSpace(in.Identifier)))
	if err != nil {
		if isStoreNotFound(err) {
			return nil, errInvalidCredentials
		}
		return nil, storeErr(err, "Vendor not found")
	}
	if !checkPassword(vendor.Password, in.Password) {
		return nil, errInvalidCredentials
	}
	if !vendor.IsActive {
		return nil, errors.Forbidden("Account is disabled")
	}
	return s.issue(constants.RoleVendor, vendorAccount(vendor), constants.VendorTokenTTL)
}

func (s *AuthService) AdminLogin(ctx context.Context, in dto.LoginInput) (*dto.AuthResult, error) {
	if err := validator.Struct(in); err != nil {
		return nil, err
	}
	admin, err := s.store.Admins().GetByEmail(ctx, strings.ToLower(strings.TrimSpace(in.Identifier)))
	if err != nil {
		if isStoreNotFound(err) {
			return nil, errInvalidCredentials
		}
		return nil, storeErr(err, "Admin not found")
	}
	if !checkPassword(admin.Password, in.Password) {
		return nil, errInvalidCredentials
	}
	account := dto.AccountResponse{ID: admin.ID, Name: admin.Name, Email: admin.Email, Role: constants.RoleAdmin, CreatedAt: admin.CreatedAt}
	return s.issue(constants.RoleAdmin, account, constants.AdminTokenTTL)
}

// CreateVendor creates a vendor with a generated password and mails the
// credentials. The mail is best-effort.
func (s *AuthService) CreateVendor(ctx context.Context, in dto.CreateVendorInput) (*models.Vendor, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	in.Phone = strings.TrimSpace(in.Phone)
	if err := validator.Struct(in); err != nil {
		return nil, err
	}
	if in.Phone != "" {
		if err := validator.ValidatePhone(in.Phone); err != nil {
			return nil, err
		}
	}
	if _, err := s.store.Vendors().GetByEmail(ctx, in.Email); err == nil {
		return nil, errors.Conflict("Vendor email already exists")
	}

	password, err := generatePassword(10)
	if err != nil {
		return nil, errors.Internal("Failed to generate password", err)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, errors.Internal("Failed to hash password", err)
	}
	vendor := &models.Vendor{
		ID:       uuid.NewString(),
		Name:     in.Name,
		Email:    in.Email,
		Phone:    in.Phone,
		Password: string(hash),
		IsActive: true,
	}
	if err := s.store.Vendors().Create(ctx, vendor); err != nil {
		return nil, storeErr(err, "Vendor not found")
	}
	if err := s.mailer.Send(vendor.Email, "Your vendor account", vendorCredentialsEmail(vendor.Name, vendor.Email, password)); err != nil {
		s.logger.Warn("credentials mail to %s failed: %v", vendor.Email, err)
	}
	return vendor, nil
}

func (s *AuthService) ListVendors(ctx context.Context) ([]models.Vendor, error) {
	vendors, err := s.store.Vendors().List(ctx)
	if err != nil {
		return nil, errors.Internal("Failed to list vendors", err)
	}
	return vendors, nil
}

// SeedAdmin creates the first admin when none exists.
func (s *AuthService) SeedAdmin(ctx context.Context, email, password string) error {
	if email == "" || password == "" {
		return nil
	}
	n, err := s.store.Admins().Count(ctx)
	if err != nil {
		return err
	}
	if n > 0 {
		return nil
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	admin := &models.Admin{ID: uuid.NewString(), Name: "Administrator", Email: strings.ToLower(email), Password: string(hash)}
	if err := s.store.Admins().Create(ctx, admin); err != nil {
		return err
	}
	s.logger.Info("seeded admin account %s", admin.Email)
	return nil
}

// Profile returns the logged in student's account.
func (s *AuthService) Profile(ctx context.Context, studentID string) (*dto.AccountResponse, error) {
	student, err := s.store.Students().Get(ctx, studentID)
	if err != nil {
		return nil, storeErr(err, "Student not found")
	}
	account := studentAccount(student)
	return &account, nil
}

func (s *AuthService) Referrals(ctx context.Context, studentID string) ([]models.Referral, error) {
	refs, err := s.store.Referrals().ListByReferrer(ctx, studentID)
	if err != nil {
		return nil, errors.Internal("Failed to list referrals", err)
	}
	return refs, nil
}

func (s *AuthService) issue(role string, account dto.AccountResponse, ttl time.Duration) (*dto.AuthResult, error) {
	token, err := s.tokens.Generate(role, account.ID, account.Email, ttl)
	if err != nil {
		return nil, err
	}
	account.Role = role
	return &dto.AuthResult{Account: account, Token: token}, nil
}

func studentAccount(st *models.Student) dto.AccountResponse {
	return dto.AccountResponse{
		ID:           st.ID,
		Name:         st.Name,
		Email:        st.Email,
		Phone:        st.Phone,
		Role:         constants.RoleStudent,
		ReferralCode: st.ReferralCode,
		CreatedAt:    st.CreatedAt,
	}
}

func vendorAccount(v *models.Vendor) dto.AccountResponse {
	return dto.AccountResponse{
		ID:        v.ID,
		Name:      v.Name,
		Email:     v.Email,
		Phone:     v.Phone,
		Role:      constants.RoleVendor,
		CreatedAt: v.CreatedAt,
	}
}

func checkPassword(hash, password string) bool {
	if hash == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

const passwordAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZabcdefghijkmnopqrstuvwxyz23456789"

func generatePassword(n int) (string, error) {
	var sb strings.Builder
	for i := 0; i < n; i++ {
		idx, err := rand.Int(rand.Reader, big.NewInt(int64(len(passwordAlphabet))))
		if err != nil {
			return "", err
		}
		sb.WriteByte(passwordAlphabet[idx.Int64()])
	}
	return sb.String(), nil
}
