package domain

import (
	"errors"
)

var (
	MessageSuccessSubscribe        = "subscribed successfully"
	MessageSuccessUnsubscribe      = "unsubscribed successfully"
	MessageSuccessGetSubscriptions = "success get subscriptions"

	MessageFailedSubscribe        = "failed to subscribe"
	MessageFailedUnsubscribe      = "failed to unsubscribe"
	MessageFailedGetSubscriptions = "failed to get subscriptions"

	ErrAlreadySubscribed = errors.New("already subscribed to this author")
	ErrNotSubscribed     = errors.New("no subscription to this author")
	ErrSelfSubscription  = errors.New("cannot subscribe to yourself")
)

type (
	SubscriptionResponse struct {
		UserResponse
		Recipes      []RecipeSummaryResponse `json:"recipes"`
		RecipesCount int64                   `json:"recipes_count"`
	}

	SubscriptionListResponse struct {
		Authors []SubscriptionResponse `json:"authors"`
		Total   int64                  `json:"total"`
	}
)
