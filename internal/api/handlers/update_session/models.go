package update_session

// Действия над черновиком записи
const (
	ActionAddService     = "add_service"
	ActionRemoveService  = "remove_service"
	ActionSetDate        = "set_date"
	ActionSetStartTime   = "set_start_time"
	ActionChooseEmployee = "choose_employee"
	ActionSetClient      = "set_client"
)

// UpdateSessionRequest HTTP request model.
// Action определяет мутацию черновика; остальные поля зависят от действия.
type UpdateSessionRequest struct {
	Action     string  `json:"action"`
	ServiceID  *int64  `json:"serviceId,omitempty"`
	EmployeeID *int64  `json:"employeeId,omitempty"`
	Date       *string `json:"date,omitempty"`      // "2025-10-15"
	StartTime  *string `json:"startTime,omitempty"` // "10:00"
	ClientID   *int64  `json:"clientId,omitempty"`
}
