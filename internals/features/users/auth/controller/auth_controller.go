// file: internals/features/users/auth/controller/auth_controller.go
package controller

import (
	"errors"
	"strings"
	"time"

	googleAuthIDTokenVerifier "github.com/futurenda/google-auth-id-token-verifier"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"pelatihanku_backend/internals/aggregate"
	"pelatihanku_backend/internals/configs"
	"pelatihanku_backend/internals/constants"
	dto "pelatihanku_backend/internals/features/users/auth/dto"
	"pelatihanku_backend/internals/docstore"
	helper "pelatihanku_backend/internals/helpers"
)

const accessTokenTTL = 24 * time.Hour

type AuthController struct {
	Store     docstore.Store
	Validator *validator.Validate
}

func NewAuthController(store docstore.Store) *AuthController {
	return &AuthController{
		Store:     store,
		Validator: validator.New(),
	}
}

/* ==========================
   REGISTER
========================== */

// POST /api/auth/register
func (ctrl *AuthController) Register(c *fiber.Ctx) error {
	var body dto.RegisterRequest
	if err := c.BodyParser(&body); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := ctrl.Validator.Struct(&body); err != nil {
		return helper.JsonValidationError(c, err)
	}
	email := strings.ToLower(strings.TrimSpace(body.Email))

	// email harus unik
	existing, err := ctrl.Store.Query(c.UserContext(), aggregate.ColUsers, map[string]any{"email": email}, 1)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	if len(existing) > 0 {
		return helper.JsonError(c, fiber.StatusConflict, "Email sudah terdaftar")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(body.Password), bcrypt.DefaultCost)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal memproses password")
	}

	user := aggregate.UserDoc{
		UserID:       uuid.NewString(),
		Name:         strings.TrimSpace(body.Name),
		Email:        email,
		Role:         constants.RoleTrainee,
		PasswordHash: string(hash),
		Courses:      map[string]aggregate.CourseProgress{},
		CreatedAt:    time.Now().UTC(),
	}
	doc, err := docstore.DataFrom(user)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	if err := ctrl.Store.Set(c.UserContext(), aggregate.ColUsers, user.UserID, doc); err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	return helper.JsonCreated(c, "Registrasi berhasil", dto.FromUserDoc(user))
}

/* ==========================
   LOGIN
========================== */

// POST /api/auth/login
func (ctrl *AuthController) Login(c *fiber.Ctx) error {
	var body dto.LoginRequest
	if err := c.BodyParser(&body); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := ctrl.Validator.Struct(&body); err != nil {
		return helper.JsonValidationError(c, err)
	}

	user, err := ctrl.findByEmail(c, strings.ToLower(strings.TrimSpace(body.Email)))
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Email atau password salah")
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(body.Password)) != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Email atau password salah")
	}

	return ctrl.issueToken(c, user)
}

/* ==========================
   LOGIN GOOGLE
========================== */

// POST /api/auth/google
func (ctrl *AuthController) GoogleLogin(c *fiber.Ctx) error {
	var body dto.GoogleLoginRequest
	if err := c.BodyParser(&body); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := ctrl.Validator.Struct(&body); err != nil {
		return helper.JsonValidationError(c, err)
	}

	// Verifikasi token Google
	v := googleAuthIDTokenVerifier.Verifier{}
	if err := v.VerifyIDToken(body.IDToken, []string{configs.GoogleClientID}); err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Invalid Google ID Token")
	}
	claimSet, err := googleAuthIDTokenVerifier.Decode(body.IDToken)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to decode ID Token")
	}
	email := strings.ToLower(claimSet.Email)

	user, err := ctrl.findByEmail(c, email)
	if err != nil {
		// user belum ada -> buat baru tanpa password lokal
		user = aggregate.UserDoc{
			UserID:    uuid.NewString(),
			Name:      claimSet.Name,
			Email:     email,
			Role:      constants.RoleTrainee,
			Courses:   map[string]aggregate.CourseProgress{},
			CreatedAt: time.Now().UTC(),
		}
		doc, derr := docstore.DataFrom(user)
		if derr != nil {
			return helper.JsonError(c, fiber.StatusInternalServerError, derr.Error())
		}
		if serr := ctrl.Store.Set(c.UserContext(), aggregate.ColUsers, user.UserID, doc); serr != nil {
			return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to create Google user")
		}
	}

	return ctrl.issueToken(c, user)
}

/* ==========================
   ME
========================== */

// GET /api/auth/me
func (ctrl *AuthController) Me(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}
	raw, err := ctrl.Store.Get(c.UserContext(), aggregate.ColUsers, userID)
	if err != nil {
		if errors.Is(err, docstore.ErrNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "User tidak ditemukan")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	var user aggregate.UserDoc
	if err := docstore.DataTo(raw, &user); err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	return helper.JsonOK(c, "ok", dto.FromUserDoc(user))
}

/* ==========================
   Internal
========================== */

func (ctrl *AuthController) findByEmail(c *fiber.Ctx, email string) (aggregate.UserDoc, error) {
	snaps, err := ctrl.Store.Query(c.UserContext(), aggregate.ColUsers, map[string]any{"email": email}, 1)
	if err != nil {
		return aggregate.UserDoc{}, err
	}
	if len(snaps) == 0 {
		return aggregate.UserDoc{}, docstore.ErrNotFound
	}
	var user aggregate.UserDoc
	if err := docstore.DataTo(snaps[0].Data, &user); err != nil {
		return aggregate.UserDoc{}, err
	}
	return user, nil
}

func (ctrl *AuthController) issueToken(c *fiber.Ctx, user aggregate.UserDoc) error {
	exp := time.Now().Add(accessTokenTTL)
	claims := jwt.MapClaims{
		"user_id": user.UserID,
		"role":    user.Role,
		"email":   user.Email,
		"exp":     exp.Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(configs.JWTSecret))
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal membuat token")
	}
	return helper.JsonOK(c, "Login berhasil", dto.TokenResponse{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresAt:   exp,
		User:        dto.FromUserDoc(user),
	})
}
