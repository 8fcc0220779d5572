package session

import "errors"

var (
	// ErrSessionNotFound возвращается, когда сессия не найдена или истекла
	ErrSessionNotFound = errors.New("session not found")

	// ErrCompanyNotFound возвращается, когда компания не найдена
	ErrCompanyNotFound = errors.New("company not found")

	// ErrServiceNotFound возвращается, когда услуга не найдена
	ErrServiceNotFound = errors.New("service not found")

	// ErrClientNotFound возвращается, когда клиент не найден
	ErrClientNotFound = errors.New("client not found")

	// ErrServiceAlreadyAdded возвращается при повторном добавлении услуги в черновик
	ErrServiceAlreadyAdded = errors.New("service already added to session")

	// ErrServiceNotInSession возвращается, когда услуги нет в черновике
	ErrServiceNotInSession = errors.New("service not in session")

	// ErrManualSelectionNotAllowed возвращается, когда услуга не допускает ручной выбор исполнителя
	ErrManualSelectionNotAllowed = errors.New("manual employee selection not allowed for service")

	// ErrEmployeeNotEligible возвращается, когда исполнитель не закреплён за услугой
	ErrEmployeeNotEligible = errors.New("employee is not eligible for service")

	// ErrTimeNotAvailable возвращается, когда выбранное время недоступно
	ErrTimeNotAvailable = errors.New("selected time is not available")

	// ErrNoServicesSelected возвращается при переходе дальше без выбранных услуг
	ErrNoServicesSelected = errors.New("no services selected")

	// ErrNoTimeSelected возвращается при переходе дальше без выбранного времени
	ErrNoTimeSelected = errors.New("no start time selected")

	// ErrClientRequired возвращается, когда для шага требуется идентификация клиента
	ErrClientRequired = errors.New("client identification required")

	// ErrInvalidStep возвращается при недопустимом переходе между шагами
	ErrInvalidStep = errors.New("invalid wizard step transition")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
