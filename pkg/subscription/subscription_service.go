package subscription

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"Foodgram-Backend/domain"
	"Foodgram-Backend/entities"
)

type (
	SubscriptionService interface {
		Subscribe(ctx context.Context, subscriberID, authorID string, recipesLimit int) (domain.SubscriptionResponse, error)
		Unsubscribe(ctx context.Context, subscriberID, authorID string) error
		GetSubscriptions(ctx context.Context, subscriberID string, page, limit, recipesLimit int) (domain.SubscriptionListResponse, error)
	}

	subscriptionService struct {
		subscriptionRepository SubscriptionRepository
	}
)

func NewSubscriptionService(subscriptionRepository SubscriptionRepository) SubscriptionService {
	return &subscriptionService{subscriptionRepository: subscriptionRepository}
}

func (s *subscriptionService) Subscribe(ctx context.Context, subscriberID, authorID string, recipesLimit int) (domain.SubscriptionResponse, error) {
	author, subscriberUUID, err := s.resolve(ctx, subscriberID, authorID)
	if err != nil {
		return domain.SubscriptionResponse{}, err
	}

	exists, err := s.subscriptionRepository.SubscriptionExists(ctx, subscriberUUID, author.ID)
	if err != nil {
		return domain.SubscriptionResponse{}, err
	}
	if exists {
		return domain.SubscriptionResponse{}, domain.ErrAlreadySubscribed
	}

	// Defensive invariant, the already-subscribed check above makes
	// "already subscribed to self" unreachable but the rule must hold
	// on every add.
	if subscriberUUID == author.ID {
		return domain.SubscriptionResponse{}, domain.ErrSelfSubscription
	}

	sub := &entities.Subscription{
		ID:           uuid.New(),
		SubscriberID: subscriberUUID,
		AuthorID:     author.ID,
	}
	if err := s.subscriptionRepository.CreateSubscription(ctx, sub); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domain.SubscriptionResponse{}, domain.ErrAlreadySubscribed
		}
		return domain.SubscriptionResponse{}, err
	}

	return s.authorResponse(ctx, author, recipesLimit)
}

func (s *subscriptionService) Unsubscribe(ctx context.Context, subscriberID, authorID string) error {
	author, subscriberUUID, err := s.resolve(ctx, subscriberID, authorID)
	if err != nil {
		return err
	}

	deleted, err := s.subscriptionRepository.DeleteSubscription(ctx, subscriberUUID, author.ID)
	if err != nil {
		return err
	}
	if deleted == 0 {
		return domain.ErrNotSubscribed
	}
	return nil
}

func (s *subscriptionService) GetSubscriptions(ctx context.Context, subscriberID string, page, limit, recipesLimit int) (domain.SubscriptionListResponse, error) {
	authors, count, err := s.subscriptionRepository.GetSubscribedAuthors(ctx, subscriberID, page, limit)
	if err != nil {
		return domain.SubscriptionListResponse{}, err
	}

	res := domain.SubscriptionListResponse{
		Authors: make([]domain.SubscriptionResponse, 0, len(authors)),
		Total:   count,
	}
	for _, author := range authors {
		authorRes, err := s.authorResponse(ctx, author, recipesLimit)
		if err != nil {
			return domain.SubscriptionListResponse{}, err
		}
		res.Authors = append(res.Authors, authorRes)
	}
	return res, nil
}

func (s *subscriptionService) resolve(ctx context.Context, subscriberID, authorID string) (*entities.User, uuid.UUID, error) {
	subscriberUUID, err := uuid.Parse(subscriberID)
	if err != nil {
		return nil, uuid.Nil, domain.ErrParseUUID
	}

	author, err := s.subscriptionRepository.GetAuthorByID(ctx, authorID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, uuid.Nil, domain.ErrUserNotFound
		}
		return nil, uuid.Nil, err
	}
	return author, subscriberUUID, nil
}

func (s *subscriptionService) authorResponse(ctx context.Context, author *entities.User, recipesLimit int) (domain.SubscriptionResponse, error) {
	recipes, count, err := s.subscriptionRepository.GetAuthorRecipes(ctx, author.ID, recipesLimit)
	if err != nil {
		return domain.SubscriptionResponse{}, err
	}

	res := domain.SubscriptionResponse{
		UserResponse: domain.UserResponse{
			ID:        author.ID.String(),
			Email:     author.Email,
			Username:  author.Username,
			FirstName: author.FirstName,
			LastName:  author.LastName,
		},
		Recipes:      make([]domain.RecipeSummaryResponse, 0, len(recipes)),
		RecipesCount: count,
	}
	for _, recipe := range recipes {
		res.Recipes = append(res.Recipes, domain.RecipeSummaryResponse{
			ID:          recipe.ID.String(),
			Name:        recipe.Name,
			ImageURL:    recipe.ImageURL,
			CookingTime: recipe.CookingTimeMinutes,
		})
	}
	return res, nil
}
