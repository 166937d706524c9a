package listingservice

// Listing объявление провайдера (услуга, которую бронируют)
type Listing struct {
	ID          int64    `json:"id"`
	ProviderID  int64    `json:"provider_id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Price       float64  `json:"price"`
	Images      []string `json:"images"`
}

// MainImage первая картинка объявления или пустая строка
func (l *Listing) MainImage() string {
	if len(l.Images) == 0 {
		return ""
	}
	return l.Images[0]
}
