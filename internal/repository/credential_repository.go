package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"taskdesk/internal/model"
)

type CredentialRepository struct {
	db *gorm.DB
}

func NewCredentialRepository(db *gorm.DB) *CredentialRepository {
	return &CredentialRepository{db: db}
}

// Migrate creates the credentials table if needed
func (r *CredentialRepository) Migrate(ctx context.Context) error {
	return r.db.WithContext(ctx).AutoMigrate(&model.Credential{})
}

// Get retrieves the stored credential of a profile
func (r *CredentialRepository) Get(ctx context.Context, profile string) (*model.Credential, error) {
	var cred model.Credential
	result := r.db.WithContext(ctx).Where("profile = ?", profile).First(&cred)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrCredentialNotFound
		}
		return nil, result.Error
	}
	return &cred, nil
}

// Save stores or replaces the token of a profile
func (r *CredentialRepository) Save(ctx context.Context, profile, token string) error {
	cred := model.Credential{Profile: profile, Token: token}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "profile"}},
		DoUpdates: clause.AssignmentColumns([]string{"token", "updated_at"}),
	}).Create(&cred).Error
}

// Delete removes the token of a profile; deleting a missing one is not an error
func (r *CredentialRepository) Delete(ctx context.Context, profile string) error {
	return r.db.WithContext(ctx).Where("profile = ?", profile).Delete(&model.Credential{}).Error
}

// Profile binds the repository to one profile name
func (r *CredentialRepository) Profile(name string) *ProfileTokens {
	return &ProfileTokens{repo: r, profile: name}
}

// ProfileTokens is the get/set/clear token capability of a single profile.
type ProfileTokens struct {
	repo    *CredentialRepository
	profile string
}

// Get returns the stored token, or "" when there is none.
func (p *ProfileTokens) Get(ctx context.Context) (string, error) {
	cred, err := p.repo.Get(ctx, p.profile)
	if errors.Is(err, ErrCredentialNotFound) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return cred.Token, nil
}

func (p *ProfileTokens) Set(ctx context.Context, token string) error {
	return p.repo.Save(ctx, p.profile, token)
}

func (p *ProfileTokens) Clear(ctx context.Context) error {
	return p.repo.Delete(ctx, p.profile)
}
