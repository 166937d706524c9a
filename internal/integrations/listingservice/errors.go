package listingservice

import "errors"

var (
	// ErrListingNotFound возвращается, когда объявление не найдено
	ErrListingNotFound = errors.New("listingservice client: listing not found")

	ErrInternal        = errors.New("listingservice client: internal error")
	ErrInvalidResponse = errors.New("listingservice client: invalid response")
)
