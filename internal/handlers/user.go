package handlers

import (
  "fmt"
  "net/http"

  "github.com/gin-gonic/gin"

  "github.com/skillpath/backend/internal/requestdata"
  "github.com/skillpath/backend/internal/services"
)

type UserHandler struct {
  userService services.UserService
}

func NewUserHandler(userService services.UserService) *UserHandler {
  return &UserHandler{userService: userService}
}

func (uh *UserHandler) GetMe(c *gin.Context) {
  rd := requestdata.GetRequestData(c.Request.Context())
  if rd == nil {
    RespondError(c, http.StatusUnauthorized, "unauthorized", fmt.Errorf("missing identity"))
    return
  }
  user, err := uh.userService.GetUser(c.Request.Context(), rd.UserID)
  if err != nil {
    RespondError(c, http.StatusNotFound, "not_found", err)
    return
  }
  RespondOK(c, user)
}
