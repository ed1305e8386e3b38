package schedule

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"voluntree/models"
)

// memStore is the in-memory backing for the repository fakes, shared so that
// transactional operations observe one consistent state.
type memStore struct {
	mu   sync.Mutex
	defs map[string]models.RecurrenceDefinition
	opps map[string]models.Opportunity
	seq  int
}

func newMemStore() *memStore {
	return &memStore{
		defs: make(map[string]models.RecurrenceDefinition),
		opps: make(map[string]models.Opportunity),
	}
}

func (s *memStore) nextID() string {
	s.seq++
	return fmt.Sprintf("opp-%03d", s.seq)
}

type fakeRecurrenceRepo struct {
	store *memStore
	// failNext makes the next write operation fail, for commit-path tests.
	failNext error
}

func (r *fakeRecurrenceRepo) takeFailure() error {
	err := r.failNext
	r.failNext = nil
	return err
}

func (r *fakeRecurrenceRepo) GetByID(ctx context.Context, id string) (*models.RecurrenceDefinition, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	def, ok := r.store.defs[id]
	if !ok {
		return nil, nil
	}
	return &def, nil
}

func (r *fakeRecurrenceRepo) GetAll(ctx context.Context) ([]models.RecurrenceDefinition, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	out := make([]models.RecurrenceDefinition, 0, len(r.store.defs))
	for _, def := range r.store.defs {
		out = append(out, def)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *fakeRecurrenceRepo) Update(ctx context.Context, def *models.RecurrenceDefinition) error {
	if err := r.takeFailure(); err != nil {
		return err
	}
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.defs[def.ID] = *def
	return nil
}

func (r *fakeRecurrenceRepo) CreateWithInstances(ctx context.Context, def *models.RecurrenceDefinition, opps []models.Opportunity) error {
	if err := r.takeFailure(); err != nil {
		return err
	}
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.defs[def.ID] = *def
	for i := range opps {
		if opps[i].ID == "" {
			opps[i].ID = r.store.nextID()
		}
		r.store.opps[opps[i].ID] = opps[i]
	}
	return nil
}

func (r *fakeRecurrenceRepo) PropagateTemplate(ctx context.Context, def *models.RecurrenceDefinition, fields map[string]interface{}) error {
	if err := r.takeFailure(); err != nil {
		return err
	}
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.defs[def.ID] = *def
	for id, opp := range r.store.opps {
		if opp.RecurrenceID != def.ID {
			continue
		}
		applyTemplateFields(&opp, fields)
		r.store.opps[id] = opp
	}
	return nil
}

func (r *fakeRecurrenceRepo) CommitRemap(ctx context.Context, def *models.RecurrenceDefinition, moved []models.Opportunity) error {
	if err := r.takeFailure(); err != nil {
		return err
	}
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.defs[def.ID] = *def
	for _, opp := range moved {
		r.store.opps[opp.ID] = opp
	}
	return nil
}

func (r *fakeRecurrenceRepo) Delete(ctx context.Context, id string) error {
	if err := r.takeFailure(); err != nil {
		return err
	}
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	delete(r.store.defs, id)
	for oid, opp := range r.store.opps {
		if opp.RecurrenceID == id {
			delete(r.store.opps, oid)
		}
	}
	return nil
}

type fakeOpportunityRepo struct {
	store *memStore
}

func (r *fakeOpportunityRepo) Create(ctx context.Context, opp *models.Opportunity) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if opp.ID == "" {
		opp.ID = r.store.nextID()
	}
	r.store.opps[opp.ID] = *opp
	return nil
}

func (r *fakeOpportunityRepo) GetByID(ctx context.Context, id string) (*models.Opportunity, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	opp, ok := r.store.opps[id]
	if !ok {
		return nil, nil
	}
	return &opp, nil
}

func (r *fakeOpportunityRepo) GetAll(ctx context.Context) ([]models.Opportunity, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	out := make([]models.Opportunity, 0, len(r.store.opps))
	for _, opp := range r.store.opps {
		out = append(out, opp)
	}
	sortOpportunities(out)
	return out, nil
}

func (r *fakeOpportunityRepo) GetByRecurrenceID(ctx context.Context, recurrenceID string) ([]models.Opportunity, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var out []models.Opportunity
	for _, opp := range r.store.opps {
		if opp.RecurrenceID == recurrenceID {
			out = append(out, opp)
		}
	}
	sortOpportunities(out)
	return out, nil
}

func (r *fakeOpportunityRepo) Update(ctx context.Context, opp *models.Opportunity) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.opps[opp.ID] = *opp
	return nil
}

func (r *fakeOpportunityRepo) Delete(ctx context.Context, id string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	delete(r.store.opps, id)
	return nil
}

func sortOpportunities(opps []models.Opportunity) {
	sort.Slice(opps, func(i, j int) bool {
		if !opps[i].ScheduledUTC.Equal(opps[j].ScheduledUTC) {
			return opps[i].ScheduledUTC.Before(opps[j].ScheduledUTC)
		}
		return opps[i].ID < opps[j].ID
	})
}

// recorderDispatcher records carpool attachment requests.
type recorderDispatcher struct {
	calls []string
}

func (d *recorderDispatcher) AttachLater(ctx context.Context, opportunityID, source string) {
	d.calls = append(d.calls, opportunityID+"|"+source)
}

// fakeDigestCache is a map-backed DigestCache counting hits and invalidations.
type fakeDigestCache struct {
	entries       map[string]*models.SlotDigest
	hits          int
	invalidations int
}

func newFakeDigestCache() *fakeDigestCache {
	return &fakeDigestCache{entries: make(map[string]*models.SlotDigest)}
}

func (c *fakeDigestCache) Get(ctx context.Context, recurrenceID string) (*models.SlotDigest, bool) {
	d, ok := c.entries[recurrenceID]
	if ok {
		c.hits++
	}
	return d, ok
}

func (c *fakeDigestCache) Set(ctx context.Context, recurrenceID string, digest *models.SlotDigest) {
	c.entries[recurrenceID] = digest
}

func (c *fakeDigestCache) Invalidate(ctx context.Context, recurrenceID string) {
	delete(c.entries, recurrenceID)
	c.invalidations++
}

// countingLocker runs the callback inline and counts acquisitions.
type countingLocker struct {
	keys []string
}

func (l *countingLocker) WithLock(ctx context.Context, key string, fn func() error) error {
	l.keys = append(l.keys, key)
	return fn()
}

// denyDirectory refuses every host lookup.
type denyDirectory struct{}

func (denyDirectory) OrganizationExists(ctx context.Context, id string) (bool, error) {
	return false, nil
}

func (denyDirectory) UserExists(ctx context.Context, id string) (bool, error) {
	return false, nil
}
