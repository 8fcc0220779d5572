package policy

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gatacompleta/GCA-AppointmentService/internal/domain"
	policyRepo "github.com/gatacompleta/GCA-AppointmentService/internal/infra/storage/policy"
	"github.com/gatacompleta/GCA-AppointmentService/internal/integrations/catalogservice"
	"github.com/gatacompleta/GCA-AppointmentService/internal/service/policy/models"
)

type stubLogger struct{}

func (l *stubLogger) Info(format string, v ...interface{})  {}
func (l *stubLogger) Warn(format string, v ...interface{})  {}
func (l *stubLogger) Error(format string, v ...interface{}) {}

type fakePolicyRepo struct {
	policy *domain.CompanyBookingPolicy
	getErr error

	upserted *domain.CompanyBookingPolicy
}

func (r *fakePolicyRepo) GetByCompany(ctx context.Context, companyID int64) (*domain.CompanyBookingPolicy, error) {
	if r.getErr != nil {
		return nil, r.getErr
	}
	return r.policy, nil
}

func (r *fakePolicyRepo) Upsert(ctx context.Context, policy *domain.CompanyBookingPolicy) (*domain.CompanyBookingPolicy, error) {
	r.upserted = policy
	return policy, nil
}

func (r *fakePolicyRepo) Delete(ctx context.Context, companyID int64) error {
	return nil
}

type fakeCatalogClient struct {
	company *catalogservice.Company
	err     error
}

func (c *fakeCatalogClient) GetCompany(ctx context.Context, companyID int64) (*catalogservice.Company, error) {
	if c.err != nil {
		return nil, c.err
	}
	return c.company, nil
}

func managedCompany() *catalogservice.Company {
	return &catalogservice.Company{ID: 1, ManagerIDs: []int64{100}}
}

func TestGet_CustomPolicy(t *testing.T) {
	repo := &fakePolicyRepo{
		policy: &domain.CompanyBookingPolicy{
			CompanyID:               1,
			MinBookingNoticeMinutes: 90,
			AdvanceBookingDays:      14,
		},
	}
	svc := NewService(repo, &fakeCatalogClient{company: managedCompany()}, &stubLogger{})

	resp, err := svc.Get(context.Background(), 1)

	require.NoError(t, err)
	assert.Equal(t, 90, resp.MinBookingNoticeMinutes)
	assert.Equal(t, 14, resp.AdvanceBookingDays)
	assert.False(t, resp.IsDefault)
}

func TestGet_DefaultsWhenNotConfigured(t *testing.T) {
	repo := &fakePolicyRepo{getErr: policyRepo.ErrPolicyNotFound}
	svc := NewService(repo, &fakeCatalogClient{company: managedCompany()}, &stubLogger{})

	resp, err := svc.Get(context.Background(), 1)

	require.NoError(t, err)
	assert.True(t, resp.IsDefault)
	assert.Equal(t, domain.DefaultMinBookingNoticeMinutes, resp.MinBookingNoticeMinutes)
	assert.Equal(t, domain.DefaultAdvanceBookingDays, resp.AdvanceBookingDays)
	assert.Nil(t, resp.CreatedAt)
}

func TestUpdate(t *testing.T) {
	repo := &fakePolicyRepo{}
	svc := NewService(repo, &fakeCatalogClient{company: managedCompany()}, &stubLogger{})

	resp, err := svc.Update(context.Background(), 1, &models.UpdatePolicyRequest{
		UserID:                  100,
		MinBookingNoticeMinutes: 120,
		AdvanceBookingDays:      30,
	})

	require.NoError(t, err)
	assert.Equal(t, 120, resp.MinBookingNoticeMinutes)
	assert.False(t, resp.IsDefault)
	require.NotNil(t, repo.upserted)
	assert.Equal(t, int64(1), repo.upserted.CompanyID)
}

func TestUpdate_NotManager(t *testing.T) {
	svc := NewService(&fakePolicyRepo{}, &fakeCatalogClient{company: managedCompany()}, &stubLogger{})

	_, err := svc.Update(context.Background(), 1, &models.UpdatePolicyRequest{
		UserID:                  7,
		MinBookingNoticeMinutes: 120,
		AdvanceBookingDays:      30,
	})

	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestUpdate_CompanyNotFound(t *testing.T) {
	svc := NewService(&fakePolicyRepo{}, &fakeCatalogClient{err: catalogservice.ErrCompanyNotFound}, &stubLogger{})

	_, err := svc.Update(context.Background(), 99, &models.UpdatePolicyRequest{UserID: 100})

	assert.ErrorIs(t, err, ErrCompanyNotFound)
}

func TestUpdate_OutOfRange(t *testing.T) {
	svc := NewService(&fakePolicyRepo{}, &fakeCatalogClient{company: managedCompany()}, &stubLogger{})

	_, err := svc.Update(context.Background(), 1, &models.UpdatePolicyRequest{
		UserID:                  100,
		MinBookingNoticeMinutes: -1,
		AdvanceBookingDays:      0,
	})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.Update(context.Background(), 1, &models.UpdatePolicyRequest{
		UserID:                  100,
		MinBookingNoticeMinutes: 60,
		AdvanceBookingDays:      domain.MaxAdvanceBookingDays + 1,
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
