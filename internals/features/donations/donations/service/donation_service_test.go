package service

import (
	"context"
	"errors"
	"sync"
	"testing"

	caseModel "medaid_backend/internals/features/cases/cases/model"
	"medaid_backend/internals/features/donations/donations/dto"
	"medaid_backend/internals/features/donations/donations/model"
	"medaid_backend/internals/features/donations/donations/repository"
	notifModel "medaid_backend/internals/features/home/notifications/model"
	notifService "medaid_backend/internals/features/home/notifications/service"
	userModel "medaid_backend/internals/features/users/user/model"
	helper "medaid_backend/internals/helpers"
	"medaid_backend/internals/helpers/apperr"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

/* ====================== fakes ====================== */

type linkKey struct{ donor, kase uuid.UUID }

type memState struct {
	donors    map[uuid.UUID]userModel.DonorModel
	cases     map[uuid.UUID]caseModel.CaseModel
	donations []model.DonationModel
	links     map[linkKey]bool
}

func (s memState) clone() memState {
	out := memState{
		donors:    make(map[uuid.UUID]userModel.DonorModel, len(s.donors)),
		cases:     make(map[uuid.UUID]caseModel.CaseModel, len(s.cases)),
		donations: append([]model.DonationModel(nil), s.donations...),
		links:     make(map[linkKey]bool, len(s.links)),
	}
	for k, v := range s.donors {
		out.donors[k] = v
	}
	for k, v := range s.cases {
		out.cases[k] = v
	}
	for k, v := range s.links {
		out.links[k] = v
	}
	return out
}

// memStore serializes transactions and only keeps a transaction's writes when
// fn returns nil.
type memStore struct {
	mu         sync.Mutex
	state      memState
	failOnCase bool
}

func newMemStore() *memStore {
	return &memStore{state: memState{
		donors: map[uuid.UUID]userModel.DonorModel{},
		cases:  map[uuid.UUID]caseModel.CaseModel{},
		links:  map[linkKey]bool{},
	}}
}

func (m *memStore) WithinTx(_ context.Context, fn func(tx repository.DonationTx) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	work := m.state.clone()
	if err := fn(&memTx{state: &work, failOnCase: m.failOnCase}); err != nil {
		return err
	}
	m.state = work
	return nil
}

func (m *memStore) List(_ context.Context, f repository.ListFilter) ([]model.DonationModel, int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []model.DonationModel
	for _, d := range m.state.donations {
		if f.DonorID != nil && d.DonationDonorID != *f.DonorID {
			continue
		}
		if f.CaseID != nil && d.DonationCaseID != *f.CaseID {
			continue
		}
		out = append(out, d)
	}
	return out, int64(len(out)), nil
}

type memTx struct {
	state      *memState
	failOnCase bool
}

func (t *memTx) LockCase(id uuid.UUID) (*caseModel.CaseModel, error) {
	c, ok := t.state.cases[id]
	if !ok {
		return nil, apperr.NotFound("case not found")
	}
	return &c, nil
}

func (t *memTx) FindDonor(id uuid.UUID) (*userModel.DonorModel, error) {
	d, ok := t.state.donors[id]
	if !ok {
		return nil, apperr.NotFound("donor not found")
	}
	return &d, nil
}

func (t *memTx) InsertDonation(d *model.DonationModel) error {
	d.DonationID = uuid.New()
	t.state.donations = append(t.state.donations, *d)
	return nil
}

func (t *memTx) MarkDonorHelpedCase(donorID, caseID uuid.UUID) (bool, error) {
	k := linkKey{donorID, caseID}
	if t.state.links[k] {
		return false, nil
	}
	t.state.links[k] = true
	return true, nil
}

func (t *memTx) IncrementDonorStats(id uuid.UUID, amount, helped int64) (*userModel.DonorModel, error) {
	d := t.state.donors[id]
	d.TotalDonations++
	d.TotalAmountDonated += amount
	d.CasesHelped += helped
	t.state.donors[id] = d
	return &d, nil
}

func (t *memTx) IncrementCaseTotal(id uuid.UUID, amount int64) (int64, error) {
	if t.failOnCase {
		return 0, apperr.Internal("failed to update case total", errors.New("connection reset"))
	}
	c := t.state.cases[id]
	c.CaseTotalDonations += amount
	t.state.cases[id] = c
	return c.CaseTotalDonations, nil
}

type memNotifier struct {
	mu      sync.Mutex
	notices []notifService.Notice
}

func (n *memNotifier) Notify(_ context.Context, in notifService.Notice) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.notices = append(n.notices, in)
}

/* ====================== fixture ====================== */

type fixture struct {
	svc      *DonationService
	store    *memStore
	notifier *memNotifier
	donor    uuid.UUID
	kase     uuid.UUID
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := newMemStore()
	donor := userModel.DonorModel{ID: uuid.New(), Name: "Donor", IsActive: true}
	c := caseModel.CaseModel{
		CaseID:           uuid.New(),
		CaseNumber:       "CASE-2025-00001",
		CaseStatus:       caseModel.CaseStatusAccepted,
		CaseIsActive:     true,
		CaseAmountNeeded: 100000,
	}
	store.state.donors[donor.ID] = donor
	store.state.cases[c.CaseID] = c

	n := &memNotifier{}
	return &fixture{
		svc:      NewDonationService(store, n),
		store:    store,
		notifier: n,
		donor:    donor.ID,
		kase:     c.CaseID,
	}
}

func (f *fixture) request(amount int64) dto.CreateDonationRequest {
	return dto.CreateDonationRequest{CaseID: f.kase.String(), Amount: amount, PaymentMethod: "JazzCash"}
}

/* ====================== tests ====================== */

func TestRecordDonation_TwoDonationsSameCase(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	first, err := f.svc.RecordDonation(ctx, f.donor, f.request(1000))
	require.NoError(t, err)
	assert.True(t, first.FirstDonationToCase)
	assert.Equal(t, model.PaymentJazzCash, first.Donation.DonationPaymentMethod)
	assert.Equal(t, model.DonationStatusCompleted, first.Donation.DonationStatus)

	second, err := f.svc.RecordDonation(ctx, f.donor, f.request(1500))
	require.NoError(t, err)
	assert.False(t, second.FirstDonationToCase)

	assert.Equal(t, dto.DonorStats{TotalDonations: 2, TotalAmountDonated: 2500, CasesHelped: 1}, second.Donor)
	assert.Equal(t, int64(2500), second.CaseTotalDonations)

	donor := f.store.state.donors[f.donor]
	assert.Equal(t, int64(2), donor.TotalDonations)
	assert.Equal(t, int64(2500), donor.TotalAmountDonated)
	assert.Equal(t, int64(1), donor.CasesHelped)
	assert.Equal(t, int64(2500), f.store.state.cases[f.kase].CaseTotalDonations)

	require.Len(t, f.notifier.notices, 2)
	n := f.notifier.notices[0]
	assert.Equal(t, f.kase, n.UserID)
	assert.Equal(t, "needy", n.UserModel)
	assert.Equal(t, notifModel.NotificationDonationReceived, n.Type)
}

func TestRecordDonation_SecondCaseCountsAsHelped(t *testing.T) {
	f := newFixture(t)
	other := caseModel.CaseModel{CaseID: uuid.New(), CaseStatus: caseModel.CaseStatusAccepted, CaseIsActive: true}
	f.store.state.cases[other.CaseID] = other

	_, err := f.svc.RecordDonation(context.Background(), f.donor, f.request(1000))
	require.NoError(t, err)
	req := f.request(700)
	req.CaseID = other.CaseID.String()
	r, err := f.svc.RecordDonation(context.Background(), f.donor, req)
	require.NoError(t, err)

	assert.True(t, r.FirstDonationToCase)
	assert.Equal(t, int64(2), r.Donor.CasesHelped)
	assert.Equal(t, int64(700), r.CaseTotalDonations)
}

func TestRecordDonation_Validation(t *testing.T) {
	f := newFixture(t)
	tests := []struct {
		name   string
		mutate func(r *dto.CreateDonationRequest)
	}{
		{name: "zero amount", mutate: func(r *dto.CreateDonationRequest) { r.Amount = 0 }},
		{name: "negative amount", mutate: func(r *dto.CreateDonationRequest) { r.Amount = -5 }},
		{name: "unknown method", mutate: func(r *dto.CreateDonationRequest) { r.PaymentMethod = "bitcoin" }},
		{name: "bad case id", mutate: func(r *dto.CreateDonationRequest) { r.CaseID = "abc" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := f.request(1000)
			tt.mutate(&req)
			_, err := f.svc.RecordDonation(context.Background(), f.donor, req)
			assert.True(t, apperr.Is(err, apperr.KindValidation), "got %v", err)
		})
	}
	assert.Empty(t, f.store.state.donations)
}

func TestRecordDonation_CaseNotOpen(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *caseModel.CaseModel)
	}{
		{name: "pending", mutate: func(c *caseModel.CaseModel) { c.CaseStatus = caseModel.CaseStatusPending }},
		{name: "rejected", mutate: func(c *caseModel.CaseModel) { c.CaseStatus = caseModel.CaseStatusRejected }},
		{name: "inactive", mutate: func(c *caseModel.CaseModel) { c.CaseIsActive = false }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			c := f.store.state.cases[f.kase]
			tt.mutate(&c)
			f.store.state.cases[f.kase] = c

			_, err := f.svc.RecordDonation(context.Background(), f.donor, f.request(1000))
			assert.True(t, apperr.Is(err, apperr.KindPrecondition), "got %v", err)
			assert.Empty(t, f.store.state.donations)
		})
	}
}

func TestRecordDonation_UnknownCase(t *testing.T) {
	f := newFixture(t)
	req := f.request(1000)
	req.CaseID = uuid.NewString()
	_, err := f.svc.RecordDonation(context.Background(), f.donor, req)
	assert.True(t, apperr.Is(err, apperr.KindNotFound))
}

func TestRecordDonation_DonorChecks(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.RecordDonation(context.Background(), uuid.New(), f.request(1000))
	assert.True(t, apperr.Is(err, apperr.KindAuthorization))

	d := f.store.state.donors[f.donor]
	d.IsActive = false
	f.store.state.donors[f.donor] = d
	_, err = f.svc.RecordDonation(context.Background(), f.donor, f.request(1000))
	assert.True(t, apperr.Is(err, apperr.KindAuthorization))
	assert.Empty(t, f.notifier.notices)
}

func TestRecordDonation_RollsBackOnFailure(t *testing.T) {
	f := newFixture(t)
	f.store.failOnCase = true

	_, err := f.svc.RecordDonation(context.Background(), f.donor, f.request(1000))
	require.Error(t, err)
	assert.True(t, apperr.Is(err, apperr.KindInternal))

	assert.Empty(t, f.store.state.donations)
	assert.Empty(t, f.store.state.links)
	assert.Zero(t, f.store.state.donors[f.donor].TotalDonations)
	assert.Zero(t, f.store.state.cases[f.kase].CaseTotalDonations)
	assert.Empty(t, f.notifier.notices)
}

func TestRecordDonation_Concurrent(t *testing.T) {
	f := newFixture(t)
	const workers = 20

	var wg sync.WaitGroup
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			_, err := f.svc.RecordDonation(context.Background(), f.donor, f.request(100))
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	donor := f.store.state.donors[f.donor]
	assert.Equal(t, int64(workers), donor.TotalDonations)
	assert.Equal(t, int64(workers*100), donor.TotalAmountDonated)
	assert.Equal(t, int64(1), donor.CasesHelped)
	assert.Equal(t, int64(workers*100), f.store.state.cases[f.kase].CaseTotalDonations)
	assert.Len(t, f.store.state.donations, workers)
}

func TestListMine(t *testing.T) {
	f := newFixture(t)
	_, err := f.svc.RecordDonation(context.Background(), f.donor, f.request(300))
	require.NoError(t, err)

	other := uuid.New()
	f.store.state.donors[other] = userModel.DonorModel{ID: other, IsActive: true}
	_, err = f.svc.RecordDonation(context.Background(), other, f.request(400))
	require.NoError(t, err)

	rows, total, err := f.svc.ListMine(context.Background(), f.donor, helper.Params{Page: 1, PerPage: 20})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Equal(t, int64(300), rows[0].DonationAmount)

	rows, total, err = f.svc.ListAdmin(context.Background(), repository.ListFilter{CaseID: &f.kase})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Len(t, rows, 2)
}
