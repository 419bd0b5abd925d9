package services

import (
  "context"
  "errors"
  "fmt"
  "time"

  "golang.org/x/crypto/bcrypt"

  "github.com/golang-jwt/jwt/v5"
  "github.com/google/uuid"

  "github.com/parley-org/parley-backend/internal/logger"
  "github.com/parley-org/parley-backend/internal/normalization"
  "github.com/parley-org/parley-backend/internal/repos"
  "github.com/parley-org/parley-backend/internal/requestdata"
  "github.com/parley-org/parley-backend/internal/types"
  "github.com/parley-org/parley-backend/internal/utils"
)

type JWTClaims struct {
  jwt.RegisteredClaims
  Username    string      `json:"username,omitempty"`
}

type AuthService interface {
  Register(ctx context.Context, username, password string) (string, *types.User, error)
  Login(ctx context.Context, username, password string) (string, *types.User, error)

  // VerifyToken is purely functional over the signing secret and the clock.
  // Tokens are never revoked early and never refreshed; a failed
  // verification is non-retryable and callers must log in again.
  VerifyToken(tokenString string) (*JWTClaims, error)
  SetContextFromToken(ctx context.Context, tokenString string) (context.Context, error)

  GetAccessTTL() time.Duration
}

type authService struct {
  log               *logger.Logger
  userRepo          repos.UserRepo
  jwtSecretKey      string
  accessTTL         time.Duration
}

func NewAuthService(
  log               *logger.Logger,
  userRepo          repos.UserRepo,
  jwtSecretKey      string,
  accessTTL         time.Duration,
) (AuthService, error) {
  if jwtSecretKey == "" {
    return nil, fmt.Errorf("jwt secret key must not be empty")
  }
  serviceLog := log.With("service", "AuthService")
  return &authService{
    log:            serviceLog,
    userRepo:       userRepo,
    jwtSecretKey:   jwtSecretKey,
    accessTTL:      accessTTL,
  }, nil
}

//----------------------------------------------------------------------------------------------------------------------
// Register
//----------------------------------------------------------------------------------------------------------------------

func (as *authService) Register(ctx context.Context, username, password string) (string, *types.User, error) {
  as.log.Info("Starting Register now...")

  //1) Normalize User Fields
  user := &types.User{Username: username, Password: password}
  utils.NormalizeUserFields(ctx, user)

  //2) Checks on user fields
  if user.Username == "" || user.Password == "" {
    as.log.Warn("Username or password missing for registration, Cannot proceed. Returning error.")
    return "", nil, ErrMissingFields
  }
  exists, eErr := as.userRepo.UsernameExists(ctx, nil, user.Username)
  if eErr != nil {
    as.log.Warn("Failed to check username existence, Cannot proceed. Returning error.", "error", eErr)
    return "", nil, fmt.Errorf("Failed checking username existence: %w", eErr)
  }
  if exists {
    as.log.Warn("Username is already taken, Cannot proceed.", "username", user.Username)
    return "", nil, ErrUsernameTaken
  }

  //3) Hash Password
  if hErr := utils.HashPassword(ctx, as.log, user); hErr != nil {
    return "", nil, hErr
  }

  //4) Create Final User
  user.ID = uuid.New()
  createdUsers, cErr := as.userRepo.Create(ctx, nil, []*types.User{user})
  if cErr != nil {
    // The unique index is the last line of defense against a concurrent
    // registration with the same username.
    if errors.Is(cErr, repos.ErrDuplicateEntry) {
      as.log.Warn("Username taken at insert time, Cannot proceed.", "username", user.Username)
      return "", nil, ErrUsernameTaken
    }
    as.log.Warn("Failed to create user, Cannot proceed. Returning error.", "error", cErr)
    return "", nil, fmt.Errorf("Failed to create user: %w", cErr)
  }
  if len(createdUsers) == 0 {
    as.log.Warn("Failure to actually create user from AuthService")
    return "", nil, fmt.Errorf("Failure to create user in DB")
  }
  user = createdUsers[0]

  //5) Mint Access Token
  token, genErr := as.generateAccessToken(user)
  if genErr != nil {
    as.log.Warn("Generate Access Token Error, Cannot proceed. Returning error.", "error", genErr)
    return "", nil, fmt.Errorf("Generate Access Token Error: %w", genErr)
  }
  as.log.Info("Register complete :)", "userID", user.ID)
  return token, user, nil
}

//----------------------------------------------------------------------------------------------------------------------
// Login
//----------------------------------------------------------------------------------------------------------------------

func (as *authService) Login(ctx context.Context, username, password string) (string, *types.User, error) {
  //1) Normalize Input
  username = normalization.ParseUsername(username)
  password = normalization.ParseInputString(password)

  //2) Input Validations
  if username == "" || password == "" {
    as.log.Warn("Username or password missing for login, Cannot proceed. Returning error.")
    return "", nil, ErrMissingFields
  }

  //3) Find User By Username
  users, uSErr := as.userRepo.GetByUsernames(ctx, nil, []string{username})
  if uSErr != nil {
    as.log.Warn("Failure to retrieve user by username, Cannot proceed. Returning error.", "error", uSErr)
    return "", nil, fmt.Errorf("error retrieving user by username: %w", uSErr)
  }
  if len(users) == 0 {
    as.log.Warn("Invalid username, no users returned", "len(users)", len(users))
    return "", nil, ErrInvalidCredentials
  }
  user := users[0]
  if hErr := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); hErr != nil {
    as.log.Warn("Invalid password, user password and hash dont match, Cannot proceed. Returning error.", "error", hErr)
    return "", nil, ErrInvalidCredentials
  }

  //4) Mint Access Token
  token, genErr := as.generateAccessToken(user)
  if genErr != nil {
    as.log.Warn("Generate Access Token Error, Cannot proceed. Returning error.", "error", genErr)
    return "", nil, fmt.Errorf("Generate Access Token Error: %w", genErr)
  }
  return token, user, nil
}

//----------------------------------------------------------------------------------------------------------------------
// Tokens
//----------------------------------------------------------------------------------------------------------------------

func (as *authService) generateAccessToken(user *types.User) (string, error) {
  claims := JWTClaims{
    RegisteredClaims: jwt.RegisteredClaims{
      Subject: user.ID.String(),
      ExpiresAt: jwt.NewNumericDate(time.Now().Add(as.accessTTL)),
      IssuedAt: jwt.NewNumericDate(time.Now()),
    },
    Username: user.Username,
  }
  token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
  return token.SignedString([]byte(as.jwtSecretKey))
}

func (as *authService) VerifyToken(tokenString string) (*JWTClaims, error) {
  parsedToken, err := jwt.ParseWithClaims(tokenString, &JWTClaims{}, func(token *jwt.Token) (interface{}, error) {
    return []byte(as.jwtSecretKey), nil
  })
  if err != nil {
    return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
  }
  claims, ok := parsedToken.Claims.(*JWTClaims)
  if !ok || !parsedToken.Valid {
    return nil, ErrInvalidToken
  }
  return claims, nil
}

func (as *authService) SetContextFromToken(ctx context.Context, tokenString string) (context.Context, error) {
  claims, err := as.VerifyToken(tokenString)
  if err != nil {
    return ctx, err
  }
  userID, err := uuid.Parse(claims.Subject)
  if err != nil {
    return ctx, fmt.Errorf("%w: invalid user ID in token", ErrInvalidToken)
  }
  rd := &requestdata.RequestData{
    TokenString: tokenString,
    UserID: userID,
    Username: claims.Username,
  }
  ctx = requestdata.WithRequestData(ctx, rd)
  return ctx, nil
}

func (as *authService) GetAccessTTL() time.Duration {
  return as.accessTTL
}
