// File: services/opportunity/opportunity.go
package opportunity

import (
	"context"

	"go.uber.org/zap"

	opportunityRepo "voluntree/database/repository/opportunity"
	"voluntree/models"
	"voluntree/services/carpool"
	"voluntree/services/directory"
)

// DefaultOpportunityService implements Service over the shared opportunity
// repository.
type DefaultOpportunityService struct {
	Repo      opportunityRepo.OpportunityRepository
	Directory directory.Directory
	Carpool   carpool.Dispatcher
	Logger    *zap.Logger
}

func (s *DefaultOpportunityService) Create(ctx context.Context, req models.CreateOpportunityRequest) (*models.Opportunity, error) {
	if req.Duration < 1 {
		return nil, &ValidationError{Field: "duration", Reason: "must be positive"}
	}
	if err := s.checkHosts(ctx, req.HostOrgID, req.HostUserID); err != nil {
		return nil, err
	}

	opp := &models.Opportunity{
		ScheduledUTC:   req.ScheduledUTC.UTC(),
		Duration:       req.Duration,
		Name:           req.Name,
		Description:    req.Description,
		Address:        req.Address,
		Causes:         req.Causes,
		Tags:           req.Tags,
		Nonprofit:      req.Nonprofit,
		Image:          req.Image,
		Approved:       req.Approved,
		Qualifications: req.Qualifications,
		Visibility:     req.Visibility,
		HostOrgID:      req.HostOrgID,
		HostUserID:     req.HostUserID,
		RedirectURL:    req.RedirectURL,
		TotalSlots:     req.TotalSlots,
		AllowCarpool:   req.AllowCarpool,
	}
	if err := s.Repo.Create(ctx, opp); err != nil {
		return nil, err
	}
	if opp.AllowCarpool && s.Carpool != nil {
		s.Carpool.AttachLater(ctx, opp.ID, "standalone")
	}
	if s.Logger != nil {
		s.Logger.Info("opportunity created",
			zap.String("opportunityId", opp.ID),
			zap.Bool("carpool", opp.AllowCarpool))
	}
	return opp, nil
}

func (s *DefaultOpportunityService) GetByID(ctx context.Context, id string) (*models.Opportunity, error) {
	opp, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if opp == nil {
		return nil, &NotFoundError{ID: id}
	}
	return opp, nil
}

func (s *DefaultOpportunityService) GetAll(ctx context.Context) ([]models.Opportunity, error) {
	return s.Repo.GetAll(ctx)
}

func (s *DefaultOpportunityService) Update(ctx context.Context, id string, req models.UpdateOpportunityRequest) (*models.Opportunity, error) {
	opp, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		opp.Name = *req.Name
	}
	if req.Description != nil {
		opp.Description = *req.Description
	}
	if req.ScheduledUTC != nil {
		opp.ScheduledUTC = req.ScheduledUTC.UTC()
	}
	if req.Duration != nil {
		if *req.Duration < 1 {
			return nil, &ValidationError{Field: "duration", Reason: "must be positive"}
		}
		opp.Duration = *req.Duration
	}
	if req.Address != nil {
		opp.Address = *req.Address
	}
	if req.Nonprofit != nil {
		opp.Nonprofit = *req.Nonprofit
	}
	if req.RedirectURL != nil {
		opp.RedirectURL = *req.RedirectURL
	}
	if req.TotalSlots != nil {
		opp.TotalSlots = *req.TotalSlots
	}

	wasCarpool := opp.AllowCarpool
	if req.AllowCarpool != nil {
		opp.AllowCarpool = *req.AllowCarpool
	}

	if err := s.Repo.Update(ctx, opp); err != nil {
		return nil, err
	}
	if !wasCarpool && opp.AllowCarpool && s.Carpool != nil {
		s.Carpool.AttachLater(ctx, opp.ID, "standalone")
		if s.Logger != nil {
			s.Logger.Info("carpool enabled on opportunity", zap.String("opportunityId", opp.ID))
		}
	}
	return opp, nil
}

func (s *DefaultOpportunityService) Delete(ctx context.Context, id string) error {
	if _, err := s.GetByID(ctx, id); err != nil {
		return err
	}
	return s.Repo.Delete(ctx, id)
}

func (s *DefaultOpportunityService) checkHosts(ctx context.Context, orgID, userID string) error {
	if s.Directory == nil {
		return nil
	}
	if orgID != "" {
		ok, err := s.Directory.OrganizationExists(ctx, orgID)
		if err != nil {
			return err
		}
		if !ok {
			return &ValidationError{Field: "hostOrgId", Reason: "organization does not exist"}
		}
	}
	if userID != "" {
		ok, err := s.Directory.UserExists(ctx, userID)
		if err != nil {
			return err
		}
		if !ok {
			return &ValidationError{Field: "hostUserId", Reason: "user does not exist"}
		}
	}
	return nil
}
