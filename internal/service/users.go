package service

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/Dan9191/finance-tracker/internal/models"
)

// ProfileUpdate holds the profile fields to change; nil fields are kept
type ProfileUpdate struct {
	FullName    *string
	DateOfBirth *string
	PhotoURL    *string
}

func (s *Service) GetProfile(ctx context.Context, userID string) (*models.User, error) {
	return s.store.FindUserByID(ctx, userID)
}

// UpdateProfile applies a partial profile update
func (s *Service) UpdateProfile(ctx context.Context, userID string, in ProfileUpdate) (*models.User, error) {
	user, err := s.store.FindUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if in.FullName != nil {
		user.FullName = *in.FullName
	}
	if in.DateOfBirth != nil {
		user.DateOfBirth = in.DateOfBirth
	}
	if in.PhotoURL != nil {
		user.PhotoURL = in.PhotoURL
	}
	if err := s.store.UpdateUser(ctx, user); err != nil {
		return nil, err
	}
	s.log.WithField("user_id", userID).Info("Profile updated")
	return user, nil
}

// UploadPhoto stores a new profile photo and points the profile at it
func (s *Service) UploadPhoto(ctx context.Context, userID, contentType, filename string, r io.Reader) (*models.User, error) {
	if !strings.HasPrefix(contentType, "image/") {
		return nil, models.ErrNotImage
	}
	user, err := s.store.FindUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	url, err := s.photos.SavePhoto(ctx, userID, filename, r)
	if err != nil {
		return nil, fmt.Errorf("failed to save photo: %w", err)
	}
	user.PhotoURL = &url
	if err := s.store.UpdateUser(ctx, user); err != nil {
		return nil, err
	}
	s.log.WithField("user_id", userID).Infof("Profile photo stored at %s", url)
	return user, nil
}

// ActiveUsers lists the users that receive digests
func (s *Service) ActiveUsers(ctx context.Context) ([]models.User, error) {
	return s.store.ListActiveUsers(ctx)
}
