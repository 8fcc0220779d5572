package models

import (
	"time"

	"github.com/gatacompleta/GCA-AppointmentService/internal/domain"
	"github.com/gatacompleta/GCA-AppointmentService/pkg/ptr"
)

// UpdatePolicyRequest запрос на обновление правил записи компании
type UpdatePolicyRequest struct {
	UserID                  int64 `json:"userId"`
	MinBookingNoticeMinutes int   `json:"minBookingNoticeMinutes"`
	AdvanceBookingDays      int   `json:"advanceBookingDays"`
}

// PolicyResponse ответ с правилами записи компании
type PolicyResponse struct {
	CompanyID               int64 `json:"companyId"`
	MinBookingNoticeMinutes int   `json:"minBookingNoticeMinutes"`
	AdvanceBookingDays      int   `json:"advanceBookingDays"`

	// IsDefault true, если компания не настраивала собственные правила
	IsDefault bool `json:"isDefault"`

	CreatedAt *time.Time `json:"createdAt,omitempty"`
	UpdatedAt *time.Time `json:"updatedAt,omitempty"`
}

// FromDomainPolicy конвертирует domain модель в DTO
func FromDomainPolicy(p *domain.CompanyBookingPolicy, isDefault bool) *PolicyResponse {
	if p == nil {
		return nil
	}

	resp := &PolicyResponse{
		CompanyID:               p.CompanyID,
		MinBookingNoticeMinutes: p.MinBookingNoticeMinutes,
		AdvanceBookingDays:      p.AdvanceBookingDays,
		IsDefault:               isDefault,
	}

	if !isDefault {
		resp.CreatedAt = ptr.Ptr(p.CreatedAt)
		resp.UpdatedAt = ptr.Ptr(p.UpdatedAt)
	}

	return resp
}
