package services

import (
  "context"
  "fmt"
  "time"

  "github.com/golang-jwt/jwt/v5"
  "github.com/google/uuid"
  "golang.org/x/crypto/bcrypt"
  "gorm.io/gorm"

  "github.com/skillpath/backend/internal/logger"
  "github.com/skillpath/backend/internal/repos"
  "github.com/skillpath/backend/internal/requestdata"
  "github.com/skillpath/backend/internal/types"
  "github.com/skillpath/backend/internal/utils"
)

type JWTClaims struct {
  IsAdmin bool `json:"is_admin"`
  jwt.RegisteredClaims
}

type AuthService interface {
  RegisterUser(ctx context.Context, user *types.User) error
  LoginUser(ctx context.Context, username, password string) (string, string, error)
  RefreshUser(ctx context.Context) (string, string, error)
  LogoutUser(ctx context.Context) error
  SetContextFromToken(ctx context.Context, tokenString string) (context.Context, error)
  GetAccessTTL() time.Duration
  EnsureAdminUser(ctx context.Context, username, email, password string) error
}

type authService struct {
  db            *gorm.DB
  log           *logger.Logger
  userRepo      repos.UserRepo
  userTokenRepo repos.UserTokenRepo
  jwtSecretKey  string
  accessTTL     time.Duration
  refreshTTL    time.Duration
}

func NewAuthService(
  db *gorm.DB,
  baseLog *logger.Logger,
  userRepo repos.UserRepo,
  userTokenRepo repos.UserTokenRepo,
  jwtSecretKey string,
  accessTTL time.Duration,
  refreshTTL time.Duration,
) AuthService {
  serviceLog := baseLog.With("service", "AuthService")
  return &authService{
    db:            db,
    log:           serviceLog,
    userRepo:      userRepo,
    userTokenRepo: userTokenRepo,
    jwtSecretKey:  jwtSecretKey,
    accessTTL:     accessTTL,
    refreshTTL:    refreshTTL,
  }
}

func (as *authService) RegisterUser(ctx context.Context, user *types.User) error {
  utils.NormalizeUserFields(user)
  if vErr := utils.ValidateRegistration(user); vErr != nil {
    return vErr
  }
  usernameExists, err := as.userRepo.UsernameExists(ctx, nil, user.Username)
  if err != nil {
    return fmt.Errorf("Failed to check username: %w", err)
  }
  if usernameExists {
    return fmt.Errorf("Username already exists")
  }
  emailExists, err := as.userRepo.EmailExists(ctx, nil, user.Email)
  if err != nil {
    return fmt.Errorf("Failed to check user email: %w", err)
  }
  if emailExists {
    return fmt.Errorf("Email is already in use")
  }
  if hErr := utils.HashPassword(user); hErr != nil {
    return hErr
  }
  user.ID = uuid.New()
  if _, err := as.userRepo.Create(ctx, nil, []*types.User{user}); err != nil {
    return fmt.Errorf("Failed to create user: %w", err)
  }
  return nil
}

func (as *authService) LoginUser(ctx context.Context, username, password string) (string, string, error) {
  if vErr := utils.ValidateLogin(username, password); vErr != nil {
    return "", "", vErr
  }

  users, err := as.userRepo.GetByUsernames(ctx, nil, []string{username})
  if err != nil {
    return "", "", fmt.Errorf("Error retrieving user by username: %w", err)
  }
  if len(users) == 0 {
    return "", "", fmt.Errorf("Invalid username or password")
  }
  user := users[0]

  if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
    return "", "", fmt.Errorf("Invalid username or password")
  }

  var accessToken string
  var refreshToken string
  err = as.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
    foundTokens, ftErr := as.userTokenRepo.GetByUserIDs(ctx, tx, []uuid.UUID{user.ID})
    if ftErr != nil {
      return fmt.Errorf("Failed to check user tokens: %w", ftErr)
    }
    expiredIDs := make([]uuid.UUID, 0, len(foundTokens))
    for _, tok := range foundTokens {
      if tok != nil && tok.ExpiresAt.Before(time.Now()) {
        expiredIDs = append(expiredIDs, tok.ID)
      }
    }
    if dErr := as.userTokenRepo.FullDeleteByIDs(ctx, tx, expiredIDs); dErr != nil {
      return fmt.Errorf("Failed to delete expired user tokens: %w", dErr)
    }

    tok, genErr := as.generateAccessToken(user)
    if genErr != nil {
      return fmt.Errorf("Generate access token error: %w", genErr)
    }
    accessToken = tok
    refreshToken = uuid.New().String()
    userToken := types.UserToken{
      ID:           uuid.New(),
      UserID:       user.ID,
      AccessToken:  accessToken,
      RefreshToken: refreshToken,
      ExpiresAt:    time.Now().Add(as.refreshTTL),
      CreatedAt:    time.Now(),
    }
    if _, cErr := as.userTokenRepo.Create(ctx, tx, []*types.UserToken{&userToken}); cErr != nil {
      return fmt.Errorf("Create user token error: %w", cErr)
    }
    return nil
  })
  if err != nil {
    return "", "", err
  }
  return accessToken, refreshToken, nil
}

func (as *authService) RefreshUser(ctx context.Context) (string, string, error) {
  rd := requestdata.GetRequestData(ctx)
  if rd == nil {
    return "", "", fmt.Errorf("No request data found in context")
  }
  if rd.RefreshToken == "" {
    return "", "", fmt.Errorf("Refresh token not found in request data")
  }

  var accessToken string
  var newRefreshToken string
  err := as.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
    foundTokens, ftErr := as.userTokenRepo.GetByRefreshTokens(ctx, tx, []string{rd.RefreshToken})
    if ftErr != nil {
      return fmt.Errorf("Error fetching refresh token: %w", ftErr)
    }
    if len(foundTokens) == 0 || foundTokens[0] == nil {
      return fmt.Errorf("Refresh token not found")
    }
    existingToken := foundTokens[0]
    if existingToken.ExpiresAt.Before(time.Now()) {
      if dErr := as.userTokenRepo.FullDeleteByIDs(ctx, tx, []uuid.UUID{existingToken.ID}); dErr != nil {
        return fmt.Errorf("Refresh token expired, error deleting: %w", dErr)
      }
      return fmt.Errorf("Refresh token expired")
    }

    users, uErr := as.userRepo.GetByIDs(ctx, tx, []uuid.UUID{existingToken.UserID})
    if uErr != nil {
      return fmt.Errorf("Failed to load user for refresh: %w", uErr)
    }
    if len(users) == 0 {
      return fmt.Errorf("No user found for the given refresh token")
    }
    user := users[0]

    tok, genErr := as.generateAccessToken(user)
    if genErr != nil {
      return fmt.Errorf("Failed to generate new access token: %w", genErr)
    }
    accessToken = tok
    newRefreshToken = uuid.New().String()
    newUserToken := types.UserToken{
      ID:           uuid.New(),
      UserID:       user.ID,
      AccessToken:  accessToken,
      RefreshToken: newRefreshToken,
      ExpiresAt:    time.Now().Add(as.refreshTTL),
      CreatedAt:    time.Now(),
    }
    if _, cErr := as.userTokenRepo.Create(ctx, tx, []*types.UserToken{&newUserToken}); cErr != nil {
      return fmt.Errorf("Failed to create new user token: %w", cErr)
    }
    if dErr := as.userTokenRepo.FullDeleteByIDs(ctx, tx, []uuid.UUID{existingToken.ID}); dErr != nil {
      return fmt.Errorf("Failed to remove old refresh token: %w", dErr)
    }
    return nil
  })
  if err != nil {
    return "", "", err
  }
  return accessToken, newRefreshToken, nil
}

func (as *authService) LogoutUser(ctx context.Context) error {
  rd := requestdata.GetRequestData(ctx)
  if rd == nil {
    return fmt.Errorf("No request data found in context")
  }
  if rd.TokenString == "" {
    return fmt.Errorf("Token string in request data empty")
  }
  return as.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
    foundTokens, ftErr := as.userTokenRepo.GetByAccessTokens(ctx, tx, []string{rd.TokenString})
    if ftErr != nil {
      return fmt.Errorf("Error finding user token from token string: %w", ftErr)
    }
    if len(foundTokens) == 0 || foundTokens[0] == nil {
      return nil
    }
    if tdErr := as.userTokenRepo.FullDeleteByIDs(ctx, tx, []uuid.UUID{foundTokens[0].ID}); tdErr != nil {
      return fmt.Errorf("Error deleting user token: %w", tdErr)
    }
    return nil
  })
}

func (as *authService) generateAccessToken(user *types.User) (string, error) {
  claims := JWTClaims{
    IsAdmin: user.IsAdmin,
    RegisteredClaims: jwt.RegisteredClaims{
      Subject:   user.ID.String(),
      ExpiresAt: jwt.NewNumericDate(time.Now().Add(as.accessTTL)),
      IssuedAt:  jwt.NewNumericDate(time.Now()),
    },
  }
  token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
  return token.SignedString([]byte(as.jwtSecretKey))
}

func (as *authService) SetContextFromToken(ctx context.Context, tokenString string) (context.Context, error) {
  if tokenString == "" {
    return ctx, fmt.Errorf("Empty token string")
  }
  parsedToken, err := jwt.ParseWithClaims(tokenString, &JWTClaims{}, func(token *jwt.Token) (interface{}, error) {
    return []byte(as.jwtSecretKey), nil
  })
  if err != nil {
    return ctx, fmt.Errorf("Failed to parse token: %w", err)
  }
  claims, ok := parsedToken.Claims.(*JWTClaims)
  if !ok || !parsedToken.Valid {
    return ctx, fmt.Errorf("Invalid or expired JWT token")
  }
  userID, err := uuid.Parse(claims.Subject)
  if err != nil {
    return ctx, fmt.Errorf("Invalid user id in token: %w", err)
  }

  var refreshToken string
  foundTokens, ftErr := as.userTokenRepo.GetByAccessTokens(ctx, nil, []string{tokenString})
  if ftErr != nil {
    return ctx, fmt.Errorf("Failed to fetch user token by access token: %w", ftErr)
  }
  if len(foundTokens) > 0 && foundTokens[0] != nil {
    refreshToken = foundTokens[0].RefreshToken
  }

  rd := &requestdata.RequestData{
    TokenString:  tokenString,
    RefreshToken: refreshToken,
    UserID:       userID,
    IsAdmin:      claims.IsAdmin,
  }
  return requestdata.WithRequestData(ctx, rd), nil
}

func (as *authService) GetAccessTTL() time.Duration {
  return as.accessTTL
}

// EnsureAdminUser seeds the administrator account at startup when it does not
// exist yet.
func (as *authService) EnsureAdminUser(ctx context.Context, username, email, password string) error {
  exists, err := as.userRepo.UsernameExists(ctx, nil, username)
  if err != nil {
    return fmt.Errorf("Failed to check admin user: %w", err)
  }
  if exists {
    return nil
  }
  admin := &types.User{
    Username: username,
    Email:    email,
    Password: password,
    IsAdmin:  true,
  }
  if err := as.RegisterUser(ctx, admin); err != nil {
    return fmt.Errorf("Failed to seed admin user: %w", err)
  }
  as.log.Info("Admin user seeded", "username", username)
  return nil
}
