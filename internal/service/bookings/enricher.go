package bookings

import (
	"context"

	"github.com/m04kA/SMC-MarketplaceBooking/internal/domain"
	"github.com/m04kA/SMC-MarketplaceBooking/internal/integrations/listingservice"
	"github.com/m04kA/SMC-MarketplaceBooking/internal/integrations/userservice"
	"github.com/m04kA/SMC-MarketplaceBooking/internal/service/bookings/models"
)

// enricher дополняет бронирования данными участников и объявления в момент чтения
// Живет один запрос: повторные ID не запрашиваются дважды
type enricher struct {
	users    UserServiceClient
	listings ListingServiceClient
	logger   Logger

	userCache    map[int64]*userservice.User
	listingCache map[int64]*listingservice.Listing
}

func newEnricher(users UserServiceClient, listings ListingServiceClient, logger Logger) *enricher {
	return &enricher{
		users:        users,
		listings:     listings,
		logger:       logger,
		userCache:    make(map[int64]*userservice.User),
		listingCache: make(map[int64]*listingservice.Listing),
	}
}

func (e *enricher) enrich(ctx context.Context, b *domain.Booking) *models.BookingResponse {
	resp := models.FromDomainBooking(b)

	if customer := e.user(ctx, b.CustomerID); customer != nil {
		resp.CustomerName = customer.UserName
		resp.CustomerEmail = customer.Email
		resp.CustomerAddress = customer.PermanentAddress
		resp.CustomerPhone = customer.Number
	}

	if provider := e.user(ctx, b.ProviderID); provider != nil {
		resp.ProviderName = provider.UserName
		resp.ProviderEmail = provider.Email
		resp.ProviderAddress = provider.PermanentAddress
		resp.ProviderPhone = provider.Number
	}

	if listing := e.listing(ctx, b.ListingID); listing != nil {
		price := listing.Price
		resp.ServiceName = listing.Title
		resp.ServiceDescription = listing.Description
		resp.Price = &price
		resp.ServiceImage = listing.MainImage()
	}

	return resp
}

func (e *enricher) enrichList(ctx context.Context, list []*domain.Booking) *models.BookingListResponse {
	resp := &models.BookingListResponse{
		Bookings: make([]models.BookingResponse, 0, len(list)),
	}
	for _, b := range list {
		resp.Bookings = append(resp.Bookings, *e.enrich(ctx, b))
	}
	return resp
}

// user возвращает nil, если пользователь не найден или UserService недоступен
func (e *enricher) user(ctx context.Context, id int64) *userservice.User {
	if u, ok := e.userCache[id]; ok {
		return u
	}

	u, err := e.users.GetUser(ctx, id)
	if err != nil {
		e.logger.Warn("enrich: user_id=%d unavailable: %v", id, err)
		u = nil
	}
	e.userCache[id] = u

	return u
}

// listing возвращает nil, если объявление не найдено или ListingService недоступен
func (e *enricher) listing(ctx context.Context, id int64) *listingservice.Listing {
	if l, ok := e.listingCache[id]; ok {
		return l
	}

	l, err := e.listings.GetListing(ctx, id)
	if err != nil {
		e.logger.Warn("enrich: listing_id=%d unavailable: %v", id, err)
		l = nil
	}
	e.listingCache[id] = l

	return l
}
