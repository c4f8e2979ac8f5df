package utils

import (
  "fmt"
  "strings"
  "golang.org/x/crypto/bcrypt"
  "github.com/skillpath/backend/internal/types"
)

func NormalizeUserFields(user *types.User) {
  user.Username = strings.TrimSpace(user.Username)
  user.Email = strings.ToLower(strings.TrimSpace(user.Email))
  user.Password = strings.TrimSpace(user.Password)
}

func ValidateRegistration(user *types.User) error {
  if user == nil {
    return fmt.Errorf("No user given, cannot proceed with registration")
  }
  if user.Username == "" {
    return fmt.Errorf("A username is required to register")
  }
  if user.Email == "" {
    return fmt.Errorf("An email is required to register")
  }
  if user.Password == "" {
    return fmt.Errorf("A password is required to register")
  }
  return nil
}

func ValidateLogin(username, password string) error {
  if username == "" {
    return fmt.Errorf("Username is required to login")
  }
  if password == "" {
    return fmt.Errorf("Password is required to login")
  }
  return nil
}

func HashPassword(user *types.User) error {
  hashedPassword, err := bcrypt.GenerateFromPassword([]byte(user.Password), bcrypt.DefaultCost)
  if err != nil {
    return fmt.Errorf("Failed to hash password")
  }
  user.Password = string(hashedPassword)
  return nil
}
