package handlers

import (
	"errors"
	"strconv"

	"github.com/velcric/scheduler_platform/database"
	"github.com/velcric/scheduler_platform/models"
	"github.com/velcric/scheduler_platform/services"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	defaultWindowDays = 14
	maxWindowDays     = 21
)

type CreateResourceRequest struct {
	Name        string `json:"name" validate:"required,max=200"`
	Description string `json:"description,omitempty"`
}

type CreateRuleRequest struct {
	Weekday        *int   `json:"weekday" validate:"required,min=0,max=6"`
	StartTimeLocal string `json:"start_time_local" validate:"required"`
	EndTimeLocal   string `json:"end_time_local" validate:"required"`
}

type CreateExceptionRequest struct {
	DateLocal      string  `json:"date_local" validate:"required"`
	IsClosed       *bool   `json:"is_closed" validate:"required"`
	StartTimeLocal *string `json:"start_time_local,omitempty"`
	EndTimeLocal   *string `json:"end_time_local,omitempty"`
}

func ListResources(c *fiber.Ctx) error {
	var resources []models.Resource
	err := database.DB.
		Where("is_active = ?", true).
		Order("name").
		Find(&resources).Error
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to list resources"})
	}
	return c.JSON(fiber.Map{"resources": resources})
}

// GetResourceSlots returns the open slots for an active resource over a
// rolling window (?days=, default 14, capped at 21).
func GetResourceSlots(c *fiber.Ctx) error {
	resourceID, err := uuid.Parse(c.Params("resourceId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid resource id"})
	}

	days := defaultWindowDays
	if raw := c.Query("days"); raw != "" {
		days, err = strconv.Atoi(raw)
		if err != nil || days < 1 {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid days parameter"})
		}
		if days > maxWindowDays {
			days = maxWindowDays
		}
	}

	var resource models.Resource
	if err := database.DB.First(&resource, "id = ? AND is_active = ?", resourceID, true).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Resource not found"})
	}

	slots, err := services.Scheduler.ListAvailableSlots(resource.ID, days)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to compute availability"})
	}

	return c.JSON(fiber.Map{"resource": resource, "slots": slots})
}

func CreateResource(c *fiber.Ctx) error {
	ownerID := currentUserID(c)

	var req CreateResourceRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	resource := models.Resource{
		OwnerID:     ownerID,
		Name:        req.Name,
		Description: req.Description,
		IsActive:    true,
	}
	if err := database.DB.Create(&resource).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create resource"})
	}
	return c.Status(fiber.StatusCreated).JSON(resource)
}

func ListMyResources(c *fiber.Ctx) error {
	ownerID := currentUserID(c)

	var resources []models.Resource
	err := database.DB.Where("owner_id = ?", ownerID).Order("name").Find(&resources).Error
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to list resources"})
	}
	return c.JSON(fiber.Map{"resources": resources})
}

// DeactivateResource soft-deactivates; bookings keep referencing the row.
func DeactivateResource(c *fiber.Ctx) error {
	resource, ok := ownedResource(c)
	if !ok {
		return nil
	}

	err := database.DB.Model(resource).Update("is_active", false).Error
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to deactivate resource"})
	}
	return c.JSON(fiber.Map{"message": "Resource deactivated"})
}

func CreateAvailabilityRule(c *fiber.Ctx) error {
	resource, ok := ownedResource(c)
	if !ok {
		return nil
	}

	var req CreateRuleRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	if err := validateInterval(req.StartTimeLocal, req.EndTimeLocal); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	rule := models.AvailabilityRule{
		ResourceID:     resource.ID,
		Weekday:        *req.Weekday,
		StartTimeLocal: req.StartTimeLocal,
		EndTimeLocal:   req.EndTimeLocal,
		IsActive:       true,
	}
	if err := database.DB.Create(&rule).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create rule"})
	}
	return c.Status(fiber.StatusCreated).JSON(rule)
}

func DeleteAvailabilityRule(c *fiber.Ctx) error {
	resource, ok := ownedResource(c)
	if !ok {
		return nil
	}

	ruleID, err := uuid.Parse(c.Params("ruleId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid rule id"})
	}

	result := database.DB.Delete(&models.AvailabilityRule{}, "id = ? AND resource_id = ?", ruleID, resource.ID)
	if result.Error != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to delete rule"})
	}
	if result.RowsAffected == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Rule not found"})
	}
	return c.JSON(fiber.Map{"message": "Rule deleted"})
}

func CreateAvailabilityException(c *fiber.Ctx) error {
	resource, ok := ownedResource(c)
	if !ok {
		return nil
	}

	var req CreateExceptionRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	if _, err := services.ParseLocalDate(req.DateLocal); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	// Override times come together or not at all; when present they must form
	// a valid interval.
	if (req.StartTimeLocal == nil) != (req.EndTimeLocal == nil) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Override start and end times must be provided together"})
	}
	if req.StartTimeLocal != nil {
		if err := validateInterval(*req.StartTimeLocal, *req.EndTimeLocal); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
		}
	}

	exception := models.AvailabilityException{
		ResourceID:     resource.ID,
		DateLocal:      req.DateLocal,
		IsClosed:       *req.IsClosed,
		StartTimeLocal: req.StartTimeLocal,
		EndTimeLocal:   req.EndTimeLocal,
	}
	if err := database.DB.Create(&exception).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "An exception for this date already exists"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create exception"})
	}
	return c.Status(fiber.StatusCreated).JSON(exception)
}

func DeleteAvailabilityException(c *fiber.Ctx) error {
	resource, ok := ownedResource(c)
	if !ok {
		return nil
	}

	exceptionID, err := uuid.Parse(c.Params("exceptionId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid exception id"})
	}

	result := database.DB.Delete(&models.AvailabilityException{}, "id = ? AND resource_id = ?", exceptionID, resource.ID)
	if result.Error != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to delete exception"})
	}
	if result.RowsAffected == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Exception not found"})
	}
	return c.JSON(fiber.Map{"message": "Exception deleted"})
}

// ownedResource loads :resourceId and checks the caller owns it. On failure it
// writes the response and returns ok=false.
func ownedResource(c *fiber.Ctx) (*models.Resource, bool) {
	resourceID, err := uuid.Parse(c.Params("resourceId"))
	if err != nil {
		c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid resource id"})
		return nil, false
	}

	var resource models.Resource
	if err := database.DB.First(&resource, "id = ?", resourceID).Error; err != nil {
		c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Resource not found"})
		return nil, false
	}
	if resource.OwnerID != currentUserID(c) {
		c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Resource not found"})
		return nil, false
	}
	return &resource, true
}

// validateInterval rejects inverted hours up front; data written around the
// API would still just yield zero slots in the arithmetic.
func validateInterval(start, end string) error {
	s, err := services.ParseClock(start)
	if err != nil {
		return err
	}
	e, err := services.ParseClock(end)
	if err != nil {
		return err
	}
	if s.String() >= e.String() {
		return errors.New("start time must be before end time")
	}
	return nil
}
