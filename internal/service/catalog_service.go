package service

import (
	"github.com/spec-kit/maintenance-service/internal/domain"
	"github.com/spec-kit/maintenance-service/internal/repository"
)

// RoleService manages roles.
type RoleService struct {
	*Resource[domain.Role, domain.RolePatch]
}

// NewRoleService constructs the service.
func NewRoleService(repo repository.RoleRepository) *RoleService {
	return &RoleService{NewResource[domain.Role, domain.RolePatch]("role", repo, (*domain.Role).Validate)}
}

// LocationService manages locations.
type LocationService struct {
	*Resource[domain.Location, domain.LocationPatch]
}

// NewLocationService constructs the service.
func NewLocationService(repo repository.LocationRepository) *LocationService {
	return &LocationService{NewResource[domain.Location, domain.LocationPatch]("location", repo, (*domain.Location).Validate)}
}

// SurveyService manages satisfaction surveys.
type SurveyService struct {
	*Resource[domain.Survey, domain.SurveyPatch]
}

// NewSurveyService constructs the service.
func NewSurveyService(repo repository.SurveyRepository) *SurveyService {
	return &SurveyService{NewResource[domain.Survey, domain.SurveyPatch]("survey", repo, (*domain.Survey).Validate)}
}

// AttachmentService manages attachment records.
type AttachmentService struct {
	*Resource[domain.Attachment, domain.AttachmentPatch]
}

// NewAttachmentService constructs the service.
func NewAttachmentService(repo repository.AttachmentRepository) *AttachmentService {
	return &AttachmentService{NewResource[domain.Attachment, domain.AttachmentPatch]("attachment", repo, (*domain.Attachment).Validate)}
}

// RepairTypeService manages the repair type catalog.
type RepairTypeService struct {
	*Resource[domain.RepairType, domain.RepairTypePatch]
}

// NewRepairTypeService constructs the service.
func NewRepairTypeService(repo repository.RepairTypeRepository) *RepairTypeService {
	return &RepairTypeService{NewResource[domain.RepairType, domain.RepairTypePatch]("repair type", repo, (*domain.RepairType).Validate)}
}
