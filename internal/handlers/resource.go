package handlers

import (
  "fmt"
  "net/http"

  "github.com/gin-gonic/gin"
  "github.com/google/uuid"

  "github.com/skillpath/backend/internal/services"
)

type ResourceHandler struct {
  resourceService services.ResourceService
}

func NewResourceHandler(resourceService services.ResourceService) *ResourceHandler {
  return &ResourceHandler{resourceService: resourceService}
}

func (rh *ResourceHandler) List(c *gin.Context) {
  resources, err := rh.resourceService.ListResources(c.Request.Context())
  if err != nil {
    RespondError(c, http.StatusInternalServerError, "internal_error", err)
    return
  }
  RespondOK(c, gin.H{"resources": resources})
}

func (rh *ResourceHandler) Get(c *gin.Context) {
  id, err := uuid.Parse(c.Param("id"))
  if err != nil {
    RespondError(c, http.StatusBadRequest, "bad_request", fmt.Errorf("invalid resource id"))
    return
  }
  resource, err := rh.resourceService.GetResource(c.Request.Context(), id)
  if err != nil {
    RespondError(c, http.StatusInternalServerError, "internal_error", err)
    return
  }
  if resource == nil {
    RespondError(c, http.StatusNotFound, "not_found", fmt.Errorf("resource not found"))
    return
  }
  RespondOK(c, gin.H{"success": true, "resource": resource})
}

func (rh *ResourceHandler) Create(c *gin.Context) {
  var input services.ResourceInput
  if err := c.ShouldBindJSON(&input); err != nil {
    RespondError(c, http.StatusBadRequest, "bad_request", fmt.Errorf("invalid request body"))
    return
  }
  resource, err := rh.resourceService.CreateResource(c.Request.Context(), input)
  if err != nil {
    RespondError(c, http.StatusBadRequest, "bad_request", err)
    return
  }
  RespondOK(c, gin.H{"success": true, "message": "Resource added successfully!", "resource": resource})
}

func (rh *ResourceHandler) Update(c *gin.Context) {
  id, err := uuid.Parse(c.Param("id"))
  if err != nil {
    RespondError(c, http.StatusBadRequest, "bad_request", fmt.Errorf("invalid resource id"))
    return
  }
  var input services.ResourceInput
  if err := c.ShouldBindJSON(&input); err != nil {
    RespondError(c, http.StatusBadRequest, "bad_request", fmt.Errorf("invalid request body"))
    return
  }
  resource, err := rh.resourceService.UpdateResource(c.Request.Context(), id, input)
  if err != nil {
    RespondError(c, http.StatusBadRequest, "bad_request", err)
    return
  }
  RespondOK(c, gin.H{"success": true, "message": "Resource updated successfully!", "resource": resource})
}

func (rh *ResourceHandler) Delete(c *gin.Context) {
  id, err := uuid.Parse(c.Param("id"))
  if err != nil {
    RespondError(c, http.StatusBadRequest, "bad_request", fmt.Errorf("invalid resource id"))
    return
  }
  if err := rh.resourceService.DeleteResource(c.Request.Context(), id); err != nil {
    RespondError(c, http.StatusBadRequest, "bad_request", err)
    return
  }
  RespondOK(c, gin.H{"success": true, "message": "Resource deleted successfully!"})
}

func (rh *ResourceHandler) BulkDelete(c *gin.Context) {
  var req struct {
    ResourceIDs []uuid.UUID `json:"resource_ids"`
  }
  if err := c.ShouldBindJSON(&req); err != nil {
    RespondError(c, http.StatusBadRequest, "bad_request", fmt.Errorf("invalid request body"))
    return
  }
  count, err := rh.resourceService.BulkDeleteResources(c.Request.Context(), req.ResourceIDs)
  if err != nil {
    RespondError(c, http.StatusBadRequest, "bad_request", err)
    return
  }
  RespondOK(c, gin.H{"success": true, "message": fmt.Sprintf("%d resources deleted successfully!", count)})
}
