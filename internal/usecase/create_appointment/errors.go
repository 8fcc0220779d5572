package create_appointment

import "errors"

var (
	ErrCompanyNotFound          = errors.New("create_appointment: company not found")
	ErrServiceNotFound          = errors.New("create_appointment: service not found")
	ErrClientNotFound           = errors.New("create_appointment: client not found")
	ErrInvalidInput             = errors.New("create_appointment: invalid input")
	ErrInvalidDate              = errors.New("create_appointment: invalid date")
	ErrDateTooFarInFuture       = errors.New("create_appointment: date is too far in the future")
	ErrTooLateToBook            = errors.New("create_appointment: booking time is too soon")
	ErrCompanyClosed            = errors.New("create_appointment: company is closed on this date")
	ErrSlotNotAvailable         = errors.New("create_appointment: slot is not available")
	ErrNoEmployeeAvailable      = errors.New("create_appointment: no employee available for service")
	ErrEmployeeNotEligible      = errors.New("create_appointment: employee is not eligible for service")
	ErrAppointmentAlreadyExists = errors.New("create_appointment: appointment already exists for session")
	ErrInternal                 = errors.New("create_appointment: internal error")
)
