// controllers/staff.go
package controllers

import (
	"errors"
	"net/http"

	"salonsphere-backend/cache"
	"salonsphere-backend/models"
	"salonsphere-backend/realtime"
	"salonsphere-backend/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type StaffController struct {
	DB  *gorm.DB
	Bus *realtime.Bus
}

func NewStaffController(db *gorm.DB, bus *realtime.Bus) *StaffController {
	return &StaffController{DB: db, Bus: bus}
}

type AddStaffInput struct {
	Email    string `json:"email" binding:"required,email"`
	Name     string `json:"name" binding:"required"`
	Phone    string `json:"phone"`
	Password string `json:"password" binding:"required,min=8"`
}

type UpdateStaffInput struct {
	Name     *string `json:"name"`
	Phone    *string `json:"phone"`
	IsActive *bool   `json:"isActive"`
}

// staffView strips the password hash from responses.
func staffView(u models.User) gin.H {
	return gin.H{
		"id":        u.ID,
		"email":     u.Email,
		"name":      u.Name,
		"phone":     u.Phone,
		"role":      u.Role,
		"isActive":  u.IsActive,
		"lastLogin": u.LastLogin,
	}
}

// GetStaff lists the tenant's staff members
func (st *StaffController) GetStaff(c *gin.Context) {
	tenantUUID, ok := tenantFromContext(c)
	if !ok {
		return
	}

	var staff []models.User
	if err := st.DB.Where("tenant_id = ?", tenantUUID).Order("name").Find(&staff).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve staff")
		return
	}

	response := make([]gin.H, 0, len(staff))
	for _, u := range staff {
		response = append(response, staffView(u))
	}
	c.JSON(http.StatusOK, response)
}

// AddStaff creates a staff account under the tenant
func (st *StaffController) AddStaff(c *gin.Context) {
	tenantUUID, ok := tenantFromContext(c)
	if !ok {
		return
	}

	var input AddStaffInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var existing models.User
	if err := st.DB.Where("email = ?", input.Email).First(&existing).Error; err == nil {
		utils.RespondWithError(c, http.StatusConflict, "Email already registered")
		return
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		return
	}

	user := models.User{
		TenantID: tenantUUID,
		Email:    input.Email,
		Name:     input.Name,
		Phone:    input.Phone,
		Password: input.Password, // Hashed in BeforeCreate hook
		Role:     "staff",
		IsActive: true,
	}

	if err := st.DB.Create(&user).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create staff member")
		return
	}

	publishChange(c.Request.Context(), st.Bus, tenantUUID, cache.EntityStaff, realtime.ActionCreated, user.ID)
	c.JSON(http.StatusCreated, staffView(user))
}

// UpdateStaff updates a staff member
func (st *StaffController) UpdateStaff(c *gin.Context) {
	tenantUUID, ok := tenantFromContext(c)
	if !ok {
		return
	}
	staffUUID, ok := idParam(c)
	if !ok {
		return
	}

	var input UpdateStaffInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var user models.User
	if err := st.DB.Where("tenant_id = ? AND id = ?", tenantUUID, staffUUID).
		First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Staff member not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	if input.Name != nil {
		user.Name = *input.Name
	}
	if input.Phone != nil {
		user.Phone = *input.Phone
	}
	if input.IsActive != nil {
		user.IsActive = *input.IsActive
	}

	if err := st.DB.Save(&user).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update staff member")
		return
	}

	publishChange(c.Request.Context(), st.Bus, tenantUUID, cache.EntityStaff, realtime.ActionUpdated, user.ID)
	c.JSON(http.StatusOK, staffView(user))
}

// DeleteStaff removes a staff member. Owners cannot be removed.
func (st *StaffController) DeleteStaff(c *gin.Context) {
	tenantUUID, ok := tenantFromContext(c)
	if !ok {
		return
	}
	staffUUID, ok := idParam(c)
	if !ok {
		return
	}

	var user models.User
	if err := st.DB.Where("tenant_id = ? AND id = ?", tenantUUID, staffUUID).
		First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Staff member not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	if user.Role == "owner" {
		utils.RespondWithError(c, http.StatusForbidden, "Cannot remove the salon owner")
		return
	}

	if err := st.DB.Delete(&user).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete staff member")
		return
	}

	publishChange(c.Request.Context(), st.Bus, tenantUUID, cache.EntityStaff, realtime.ActionDeleted, staffUUID)
	c.JSON(http.StatusOK, gin.H{"message": "Staff member deleted successfully"})
}
