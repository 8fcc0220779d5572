package get_available_hours

import (
	"time"

	"github.com/gatacompleta/GCA-AppointmentService/pkg/types"
)

// Request модель запроса на получение доступных времен начала
type Request struct {
	CompanyID  int64     // ID компании
	ServiceIDs []int64   // ID выбранных услуг, в порядке выбора
	Date       time.Time // Дата записи (без времени)
}

// Response модель ответа со списком доступных времен начала
type Response struct {
	Date                 time.Time          // Дата, на которую запрашивались времена
	CompanyID            int64              // ID компании
	ServiceIDs           []int64            // ID выбранных услуг
	Hours                []types.TimeString // Доступные времена начала, по возрастанию
	StepMinutes          int                // Шаг сетки (минимальная длительность услуги)
	TotalDurationMinutes int                // Суммарная длительность выбранных услуг
	TotalPrice           float64            // Суммарная стоимость выбранных услуг
}
