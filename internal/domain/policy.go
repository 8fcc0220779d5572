package domain

import "time"

// CompanyBookingPolicy правила записи компании.
// Одна запись на компанию; при отсутствии используются значения по умолчанию.
type CompanyBookingPolicy struct {
	ID                      int64
	CompanyID               int64
	MinBookingNoticeMinutes int // минимальный интервал до начала записи "сегодня"
	AdvanceBookingDays      int // 0 = unlimited
	CreatedAt               time.Time
	UpdatedAt               time.Time
}

// HasAdvanceBookingLimit returns true if there's a limit on how far in advance bookings can be made
func (p *CompanyBookingPolicy) HasAdvanceBookingLimit() bool {
	return p.AdvanceBookingDays > 0
}

// DefaultPolicy правила по умолчанию для компаний без собственной конфигурации
func DefaultPolicy(companyID int64) *CompanyBookingPolicy {
	return &CompanyBookingPolicy{
		CompanyID:               companyID,
		MinBookingNoticeMinutes: DefaultMinBookingNoticeMinutes,
		AdvanceBookingDays:      DefaultAdvanceBookingDays,
	}
}
