package catalogservice

// Company модель компании (салона) из CatalogService
type Company struct {
	ID         int64       `json:"id"`
	Name       string      `json:"name"`
	Slug       string      `json:"slug"`
	Address    *string     `json:"address,omitempty"`
	DaysOfWeek []DayOfWeek `json:"days_of_weeks"`
	Employees  []Employee  `json:"employees"`
	ManagerIDs []int64     `json:"manager_ids"` // пользователи с правами управления записями
}

// DayOfWeek рабочие часы компании на один день недели.
// До четырех смен; смены задаются по порядку, отсутствующая пара
// означает, что смена не используется.
type DayOfWeek struct {
	DayOfWeek  int     `json:"day_of_week"` // 0 = воскресенье ... 6 = суббота
	StartTime  *string `json:"start_time"`
	EndTime    *string `json:"end_time"`
	StartTime2 *string `json:"start_time_2"`
	EndTime2   *string `json:"end_time_2"`
	StartTime3 *string `json:"start_time_3"`
	EndTime3   *string `json:"end_time_3"`
	StartTime4 *string `json:"start_time_4"`
	EndTime4   *string `json:"end_time_4"`
}

// ShiftPairs возвращает пары (начало, конец) смен в порядке следования
func (d DayOfWeek) ShiftPairs() [][2]*string {
	return [][2]*string{
		{d.StartTime, d.EndTime},
		{d.StartTime2, d.EndTime2},
		{d.StartTime3, d.EndTime3},
		{d.StartTime4, d.EndTime4},
	}
}

// Service модель услуги из CatalogService
type Service struct {
	ID                  int64      `json:"id"`
	CompanyID           int64      `json:"company_id"`
	Name                string     `json:"name"`
	Duration            string     `json:"duration"` // "HH:MM"
	Price               float64    `json:"price"`
	AllowChooseEmployee bool       `json:"allow_choose_employee"`
	AllowRandomEmployee bool       `json:"allow_random_employee"`
	Employees           []Employee `json:"employees"` // сотрудники, выполняющие услугу
}

// Employee модель сотрудника из CatalogService
type Employee struct {
	ID      int64   `json:"id"`
	Name    string  `json:"name"`
	Picture *string `json:"picture,omitempty"`
}

// ErrorResponse модель ошибки от CatalogService
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
