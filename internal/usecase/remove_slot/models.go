package remove_slot

// Request модель запроса на удаление слота из расписания
type Request struct {
	ActorID    int64  // ID пользователя (X-User-ID)
	ProviderID int64  // ID провайдера
	Day        string // День недели, например "MONDAY"
	TimeSlot   string // Метка удаляемого слота
}

// Response расписание на день после удаления
type Response struct {
	ProviderID int64    `json:"providerId"`
	Day        string   `json:"day"`
	TimeSlots  []string `json:"timeSlots"`
}
