package tasker

import (
	"context"
	"errors"
	"strings"

	"taskhive/database/repository"
	"taskhive/models"
	"taskhive/utils"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
)

// CreateProfile registers the one profile a tasker account may have.
func (s *DefaultTaskerService) CreateProfile(ctx context.Context, userID string, req models.CreateTaskerProfileRequest) (*models.TaskerProfile, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, err
	}

	u, err := s.UserRepo.GetByID(ctx, userID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, utils.ErrNotFound("User")
	}
	if err != nil {
		s.Logger.Error("CreateProfile: user lookup failed", zap.Error(err))
		return nil, utils.ErrServer(err)
	}
	if u.Role != models.RoleTasker {
		return nil, utils.ErrForbidden("Only taskers can create a tasker profile")
	}

	exists, err := s.Repo.ExistsForUser(ctx, userID)
	if err != nil {
		s.Logger.Error("CreateProfile: existence check failed", zap.Error(err))
		return nil, utils.ErrServer(err)
	}
	if exists {
		return nil, utils.ErrConflict("Tasker profile already exists")
	}

	skills := models.NormalizeSkills(req.Skills)
	t := &models.Tasker{
		ID:           uuid.NewString(),
		UserID:       userID,
		Phone:        strings.TrimSpace(req.Phone),
		AddressLine1: strings.TrimSpace(req.AddressLine1),
		AddressLine2: strings.TrimSpace(req.AddressLine2),
		City:         strings.TrimSpace(req.City),
		Region:       strings.TrimSpace(req.Region),
		PostalCode:   strings.TrimSpace(req.PostalCode),
		Country:      strings.TrimSpace(req.Country),
		Category:     req.Category,
		Experience:   strings.TrimSpace(req.Experience),
		HourlyRate:   *req.HourlyRate,
		Bio:          strings.TrimSpace(req.Bio),
		Skills:       skills,
		ProfileImage: req.ProfileImage,
		Status:       models.TaskerStatusPending,
	}
	if err := s.Repo.Create(ctx, t); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, utils.ErrConflict("Tasker profile already exists")
		}
		s.Logger.Error("CreateProfile: insert failed", zap.Error(err))
		return nil, utils.ErrServer(err)
	}

	s.Logger.Info("Tasker profile created", zap.String("userId", userID), zap.String("taskerId", t.ID))
	return &models.TaskerProfile{Tasker: *t, Name: u.Name, Email: u.Email}, nil
}

func (s *DefaultTaskerService) GetProfile(ctx context.Context, userID string) (*models.TaskerProfile, error) {
	p, err := s.Repo.GetProfileByUserID(ctx, userID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, utils.ErrNotFound("Tasker profile")
	}
	if err != nil {
		s.Logger.Error("GetProfile: lookup failed", zap.String("userId", userID), zap.Error(err))
		return nil, utils.ErrServer(err)
	}
	return p, nil
}

// UpdateProfile applies only the fields present in the request.
func (s *DefaultTaskerService) UpdateProfile(ctx context.Context, userID string, req models.UpdateTaskerProfileRequest) (*models.TaskerProfile, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, err
	}
	current, err := s.Repo.GetByUserID(ctx, userID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, utils.ErrNotFound("Tasker profile")
	}
	if err != nil {
		s.Logger.Error("UpdateProfile: lookup failed", zap.String("userId", userID), zap.Error(err))
		return nil, utils.ErrServer(err)
	}

	set := bson.M{}
	setString := func(key string, v *string) {
		if v != nil {
			set[key] = strings.TrimSpace(*v)
		}
	}
	setString("phone", req.Phone)
	setString("addressLine1", req.AddressLine1)
	setString("addressLine2", req.AddressLine2)
	setString("city", req.City)
	setString("region", req.Region)
	setString("postalCode", req.PostalCode)
	setString("country", req.Country)
	setString("category", req.Category)
	setString("experience", req.Experience)
	setString("bio", req.Bio)
	setString("profileImage", req.ProfileImage)
	if req.HourlyRate != nil {
		set["hourlyRate"] = *req.HourlyRate
	}
	if req.Skills != nil {
		set["skills"] = models.NormalizeSkills(*req.Skills)
	}
	if len(set) == 0 {
		return nil, utils.ErrValidation("No fields to update")
	}

	if err := s.Repo.UpdateFields(ctx, current.ID, set); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, utils.ErrNotFound("Tasker profile")
		}
		s.Logger.Error("UpdateProfile: update failed", zap.String("taskerId", current.ID), zap.Error(err))
		return nil, utils.ErrServer(err)
	}

	if s.Images != nil && req.ProfileImage != nil && current.ProfileImage != "" && current.ProfileImage != *req.ProfileImage {
		s.Images.Discard(ctx, current.ProfileImage)
	}
	return s.GetProfile(ctx, userID)
}

func (s *DefaultTaskerService) ProfileExists(ctx context.Context, userID string) (bool, error) {
	exists, err := s.Repo.ExistsForUser(ctx, userID)
	if err != nil {
		s.Logger.Error("ProfileExists: check failed", zap.String("userId", userID), zap.Error(err))
		return false, utils.ErrServer(err)
	}
	return exists, nil
}
