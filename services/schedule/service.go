// File: services/schedule/service.go
package schedule

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	opportunityRepo "voluntree/database/repository/opportunity"
	recurrenceRepo "voluntree/database/repository/recurrence"
	"voluntree/models"
	"voluntree/services/carpool"
	"voluntree/services/directory"
)

const defaultWeekRecurrences = 4

// DefaultScheduleService implements Service over the Mongo repositories.
// Carpool, Cache and Locker are optional; a nil Locker runs remap batches
// unserialized, which is only acceptable in tests.
type DefaultScheduleService struct {
	Recurrences   recurrenceRepo.RecurrenceRepository
	Opportunities opportunityRepo.OpportunityRepository
	Converter     TimeZoneConverter
	Directory     directory.Directory
	Carpool       carpool.Dispatcher
	Cache         DigestCache
	Locker        Locker
	Logger        *zap.Logger
}

func (s *DefaultScheduleService) CreateRecurrence(ctx context.Context, req models.CreateRecurrenceRequest) (*models.RecurrenceDefinition, []models.Opportunity, error) {
	def, err := s.buildDefinition(req)
	if err != nil {
		return nil, nil, err
	}

	if err := s.checkHosts(ctx, def.HostOrgID, def.HostUserID); err != nil {
		return nil, nil, err
	}

	gen := &Generator{Converter: s.Converter}
	opps, err := gen.Generate(def)
	if err != nil {
		return nil, nil, err
	}
	if err := checkUniqueInstants(opps); err != nil {
		return nil, nil, err
	}

	if err := s.Recurrences.CreateWithInstances(ctx, def, opps); err != nil {
		return nil, nil, &StorageError{Op: "recurrence create", Err: err}
	}

	if def.AllowCarpool && s.Carpool != nil {
		for _, opp := range opps {
			s.Carpool.AttachLater(ctx, opp.ID, "recurrence")
		}
	}
	if s.Cache != nil {
		s.Cache.Invalidate(ctx, def.ID)
	}
	if s.Logger != nil {
		s.Logger.Info("recurrence created",
			zap.String("recurrenceId", def.ID),
			zap.Int("instances", len(opps)),
			zap.Bool("carpool", def.AllowCarpool))
	}
	return def, opps, nil
}

func (s *DefaultScheduleService) GetRecurrence(ctx context.Context, id string) (*models.RecurrenceDefinition, error) {
	def, err := s.Recurrences.GetByID(ctx, id)
	if err != nil {
		return nil, &StorageError{Op: "recurrence fetch", Err: err}
	}
	if def == nil {
		return nil, &NotFoundError{Resource: "recurrence", ID: id}
	}
	return def, nil
}

func (s *DefaultScheduleService) ListRecurrences(ctx context.Context) ([]models.RecurrenceDefinition, error) {
	defs, err := s.Recurrences.GetAll(ctx)
	if err != nil {
		return nil, &StorageError{Op: "recurrence list", Err: err}
	}
	return defs, nil
}

func (s *DefaultScheduleService) UpdateTemplate(ctx context.Context, id string, req models.UpdateRecurrenceRequest) (*models.RecurrenceDefinition, []models.Opportunity, error) {
	def, err := s.GetRecurrence(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	opps, err := s.Opportunities.GetByRecurrenceID(ctx, id)
	if err != nil {
		return nil, nil, &StorageError{Op: "opportunity fetch", Err: err}
	}

	fields := map[string]interface{}{}
	if req.Name != nil {
		def.Name = *req.Name
		fields["name"] = *req.Name
	}
	if req.Description != nil {
		def.Description = *req.Description
		fields["description"] = *req.Description
	}
	if req.Address != nil {
		def.Address = *req.Address
		fields["address"] = *req.Address
	}
	if req.Nonprofit != nil {
		def.Nonprofit = *req.Nonprofit
		fields["nonprofit"] = *req.Nonprofit
	}
	if req.RedirectURL != nil {
		def.RedirectURL = *req.RedirectURL
		fields["redirectUrl"] = *req.RedirectURL
	}

	// Newly carpool-enabled opportunities get their carpool record attached
	// after commit; disabling never detaches.
	var newlyCarpooled []string
	if req.AllowCarpool != nil && *req.AllowCarpool {
		def.AllowCarpool = true
		fields["allowCarpool"] = true
		for _, opp := range opps {
			if !opp.AllowCarpool {
				newlyCarpooled = append(newlyCarpooled, opp.ID)
			}
		}
	}

	if err := s.Recurrences.PropagateTemplate(ctx, def, fields); err != nil {
		return nil, nil, &StorageError{Op: "template propagation", Err: err}
	}

	for i := range opps {
		applyTemplateFields(&opps[i], fields)
	}
	if s.Carpool != nil {
		for _, id := range newlyCarpooled {
			s.Carpool.AttachLater(ctx, id, "template-update")
		}
	}
	if s.Cache != nil {
		s.Cache.Invalidate(ctx, id)
	}
	return def, opps, nil
}

func (s *DefaultScheduleService) UpdateVisibility(ctx context.Context, id string, visibility []string) (*models.RecurrenceDefinition, error) {
	def, err := s.GetRecurrence(ctx, id)
	if err != nil {
		return nil, err
	}
	def.Visibility = visibility
	if err := s.Recurrences.Update(ctx, def); err != nil {
		return nil, &StorageError{Op: "visibility update", Err: err}
	}
	return def, nil
}

func (s *DefaultScheduleService) DeleteRecurrence(ctx context.Context, id string) error {
	if _, err := s.GetRecurrence(ctx, id); err != nil {
		return err
	}
	if err := s.Recurrences.Delete(ctx, id); err != nil {
		return &StorageError{Op: "recurrence delete", Err: err}
	}
	if s.Cache != nil {
		s.Cache.Invalidate(ctx, id)
	}
	return nil
}

func (s *DefaultScheduleService) SlotDigest(ctx context.Context, id string) (*models.SlotDigest, error) {
	if s.Cache != nil {
		if digest, ok := s.Cache.Get(ctx, id); ok {
			return digest, nil
		}
	}

	def, err := s.GetRecurrence(ctx, id)
	if err != nil {
		return nil, err
	}
	opps, err := s.Opportunities.GetByRecurrenceID(ctx, id)
	if err != nil {
		return nil, &StorageError{Op: "opportunity fetch", Err: err}
	}

	digest := BuildDigest(def, opps, s.Converter)
	if s.Cache != nil {
		s.Cache.Set(ctx, id, digest)
	}
	return digest, nil
}

func (s *DefaultScheduleService) RemapSlots(ctx context.Context, id string, mappings []models.SlotMapping) (*models.RemapResult, error) {
	if len(mappings) == 0 {
		return nil, NewValidationError("mappings", "must be a non-empty list")
	}
	for _, m := range mappings {
		if m.From.IsZero() || m.To.IsZero() {
			return nil, NewValidationError("mappings", "each mapping must carry non-empty 'from' and 'to' objects")
		}
	}

	var result *models.RemapResult
	run := func() error {
		def, err := s.GetRecurrence(ctx, id)
		if err != nil {
			return err
		}
		opps, err := s.Opportunities.GetByRecurrenceID(ctx, id)
		if err != nil {
			return &StorageError{Op: "opportunity fetch", Err: err}
		}
		if len(opps) == 0 {
			return NewValidationError("recurrenceId", "no opportunities found for this recurrence")
		}

		res, moved := applyRemap(def, opps, mappings, s.Converter)
		if err := s.Recurrences.CommitRemap(ctx, def, moved); err != nil {
			return &StorageError{Op: "remap commit", Err: err}
		}
		result = res
		return nil
	}

	var err error
	if s.Locker != nil {
		err = s.Locker.WithLock(ctx, "remap:"+id, run)
	} else {
		err = run()
	}
	if err != nil {
		return nil, err
	}

	if s.Cache != nil {
		s.Cache.Invalidate(ctx, id)
	}
	if s.Logger != nil {
		s.Logger.Info("slots remapped",
			zap.String("recurrenceId", id),
			zap.Int("updated", result.UpdatedCount),
			zap.Int("conflicts", result.ConflictCount),
			zap.Int("skipped", result.SkippedCount))
	}
	return result, nil
}

// buildDefinition validates the create request and assembles the definition,
// assigning the recurrence id and a stable id per declared slot.
func (s *DefaultScheduleService) buildDefinition(req models.CreateRecurrenceRequest) (*models.RecurrenceDefinition, error) {
	if req.Name == "" {
		return nil, NewValidationError("name", "is required")
	}
	if req.Address == "" {
		return nil, NewValidationError("address", "is required")
	}
	if len(req.Slots) == 0 {
		return nil, NewValidationError("slots", "must declare at least one weekday")
	}

	weekFrequency := req.WeekFrequency
	if weekFrequency == 0 {
		weekFrequency = 1
	}
	if weekFrequency < 1 {
		return nil, NewValidationError("weekFrequency", "must be at least 1")
	}
	weekRecurrences := req.WeekRecurrences
	if weekRecurrences == 0 {
		weekRecurrences = defaultWeekRecurrences
	}
	if weekRecurrences < 1 {
		return nil, NewValidationError("weekRecurrences", "must be at least 1")
	}

	slots := make([]models.DaySlots, 0, len(req.Slots))
	for _, day := range req.Slots {
		if _, err := parseWeekday(day.Weekday); err != nil {
			return nil, NewValidationError("slots", err.Error())
		}
		times := make([]models.SlotTime, 0, len(day.Times))
		for _, pair := range day.Times {
			hh, mm, err := parseClock(pair.Start)
			if err != nil {
				return nil, NewValidationError("slots", err.Error())
			}
			if pair.Duration < 1 {
				return nil, NewValidationError("slots", fmt.Sprintf("duration %d must be positive", pair.Duration))
			}
			times = append(times, models.SlotTime{
				ID:       uuid.New().String(),
				Start:    fmt.Sprintf("%02d:%02d", hh, mm),
				Duration: pair.Duration,
			})
		}
		slots = append(slots, models.DaySlots{Weekday: day.Weekday, Times: times})
	}

	return &models.RecurrenceDefinition{
		ID:             uuid.New().String(),
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

		StartDate:       req.StartDate,
		Slots:           slots,
		WeekFrequency:   weekFrequency,
		WeekRecurrences: weekRecurrences,
	}, nil
}

func (s *DefaultScheduleService) checkHosts(ctx context.Context, orgID, userID string) error {
	if s.Directory == nil {
		return nil
	}
	if orgID != "" {
		ok, err := s.Directory.OrganizationExists(ctx, orgID)
		if err != nil {
			return &StorageError{Op: "host organization check", Err: err}
		}
		if !ok {
			return NewValidationError("hostOrgId", fmt.Sprintf("organization %q does not exist", orgID))
		}
	}
	if userID != "" {
		ok, err := s.Directory.UserExists(ctx, userID)
		if err != nil {
			return &StorageError{Op: "host user check", Err: err}
		}
		if !ok {
			return NewValidationError("hostUserId", fmt.Sprintf("user %q does not exist", userID))
		}
	}
	return nil
}

// checkUniqueInstants rejects a generated batch in which two opportunities
// land on the same UTC instant (duplicate declared slots would cause this).
func checkUniqueInstants(opps []models.Opportunity) error {
	seen := make(map[int64]struct{}, len(opps))
	for _, opp := range opps {
		k := opp.ScheduledUTC.Unix()
		if _, dup := seen[k]; dup {
			return NewValidationError("slots", fmt.Sprintf("duplicate scheduled instant %s", opp.ScheduledUTC.UTC().Format("2006-01-02T15:04Z")))
		}
		seen[k] = struct{}{}
	}
	return nil
}

func applyTemplateFields(opp *models.Opportunity, fields map[string]interface{}) {
	for k, v := range fields {
		switch k {
		case "name":
			opp.Name = v.(string)
		case "description":
			opp.Description = v.(string)
		case "address":
			opp.Address = v.(string)
		case "nonprofit":
			opp.Nonprofit = v.(string)
		case "redirectUrl":
			opp.RedirectURL = v.(string)
		case "allowCarpool":
			opp.AllowCarpool = v.(bool)
		}
	}
}
